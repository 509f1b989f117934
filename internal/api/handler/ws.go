package handler

import (
	"errors"
	"net/http"

	"visioblog/backend/internal/visiohub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and registers it with the signaling
// hub. The session gate runs on every attempt; a denied caller gets the
// reason back and the socket is closed.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	requestID := c.Param("request_id")
	userID, role := callerIdentity(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
		return
	}

	client := visiohub.NewWebSocketClient(h.Hub, conn, userID, role, requestID)

	if err := h.Hub.Join(requestID, client); err != nil {
		var denied *visiohub.DeniedError
		reason := "join_failed"
		if errors.As(err, &denied) {
			reason = string(denied.Reason)
		} else if errors.Is(err, visiohub.ErrRoomFull) {
			reason = "room_full"
		}
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason))
		conn.Close()
		return
	}

	client.Run()
}
