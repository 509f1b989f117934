package visiohub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"visioblog/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// SDP offers carry the full media description and run to several KB.
	maxMessageSize = 16 * 1024

	// sendQueueSize bounds the per-connection outbound queue. A peer that
	// falls this far behind gets disconnected by the relay.
	sendQueueSize = 64
)

// WebSocketClient carries one peer of a signaling session over a websocket.
type WebSocketClient struct {
	UserID string
	Role   models.Role
	RoomID string
	Conn   *websocket.Conn
	Hub    *Hub
	Send   chan models.SignalMessage

	closeOnce sync.Once
}

func NewWebSocketClient(hub *Hub, conn *websocket.Conn, userID string, role models.Role, roomID string) *WebSocketClient {
	return &WebSocketClient{
		UserID: userID,
		Role:   role,
		RoomID: roomID,
		Conn:   conn,
		Hub:    hub,
		Send:   make(chan models.SignalMessage, sendQueueSize),
	}
}

func (c *WebSocketClient) GetUserID() string                           { return c.UserID }
func (c *WebSocketClient) GetRole() models.Role                        { return c.Role }
func (c *WebSocketClient) GetRoomID() string                           { return c.RoomID }
func (c *WebSocketClient) GetSendChannel() chan<- models.SignalMessage { return c.Send }

// Run starts the pumps. The read pump owns the connection's lifetime: when it
// returns, the client has left its room.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close shuts down the Send channel, which stops the write pump and closes
// the websocket. Safe to call more than once; the hub and the read pump may
// both tear the client down.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.Leave(c.RoomID, c)
		c.Close()
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message from %s: %v", c.UserID, err)
			}
			break
		}

		var msg models.SignalMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Error decoding JSON from client %s: %v", c.UserID, err)
			continue
		}

		switch msg.Type {
		case models.SignalOffer, models.SignalAnswer, models.SignalIceCandidate:
			c.Hub.Relay(c.RoomID, c, msg)
		case models.SignalEndChat:
			c.Hub.EndChat(c.RoomID, c, msg)
		default:
			log.Printf("Dropping unknown signal type %q from client %s", msg.Type, c.UserID)
		}
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(message)
			if err != nil {
				log.Printf("Error encoding JSON for client %s: %v", c.UserID, err)
				continue
			}

			// One signal per frame: the peers parse each frame as a single
			// JSON document.
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
