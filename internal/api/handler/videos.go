package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListVideos serves the cached video catalog, falling back to PostgreSQL when
// the Redis cache is cold.
func (h *Handler) ListVideos(c *gin.Context) {
	videos, warm, err := h.Storage.GetCachedVideoList()
	if err != nil {
		log.Printf("WARNING: video cache read failed: %v", err)
	}
	if !warm {
		videos, err = h.Storage.GetVideos()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load videos"})
			return
		}
	}
	c.JSON(http.StatusOK, videos)
}
