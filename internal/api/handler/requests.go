package handler

import (
	"context"
	"errors"
	"net/http"

	"visioblog/backend/internal/lifecycle"

	"github.com/gin-gonic/gin"
)

type createRequestInput struct {
	Content       string `json:"content" binding:"required"`
	ScheduledDate string `json:"scheduled_date" binding:"required"`
	ScheduledTime string `json:"scheduled_time" binding:"required"`
}

// CreateRequest registers a new video chat request for the authenticated user.
func (h *Handler) CreateRequest(c *gin.Context) {
	var in createRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID, _ := callerIdentity(c)
	req, err := h.Lifecycle.Create(c.Request.Context(), userID, in.Content, in.ScheduledDate, in.ScheduledTime)
	if errors.Is(err, lifecycle.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "requester not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, req)
}

// ListMyRequests returns the authenticated user's own requests.
func (h *Handler) ListMyRequests(c *gin.Context) {
	userID, _ := callerIdentity(c)
	reqs, err := h.Lifecycle.Requests(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list requests"})
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// ListPendingRequests returns the requests waiting on an admin decision.
func (h *Handler) ListPendingRequests(c *gin.Context) {
	reqs, err := h.Lifecycle.Pending(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list requests"})
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// ValidateRequest accepts a pending request.
func (h *Handler) ValidateRequest(c *gin.Context) {
	h.transition(c, h.Lifecycle.Validate)
}

// RefuseRequest declines a pending request.
func (h *Handler) RefuseRequest(c *gin.Context) {
	h.transition(c, h.Lifecycle.Refuse)
}

// DeleteRequest removes a request regardless of its status.
func (h *Handler) DeleteRequest(c *gin.Context) {
	err := h.Lifecycle.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, lifecycle.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete request"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, id string) error) {
	err := op(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, lifecycle.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
	case errors.Is(err, lifecycle.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "request was already decided"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "transition failed"})
	default:
		c.Status(http.StatusNoContent)
	}
}
