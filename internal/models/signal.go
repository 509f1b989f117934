package models

import "encoding/json"

// Signal message types exchanged between the two peers of a room. The payload
// is whatever the browsers' negotiation protocol produces; the server never
// inspects it.
const (
	SignalOffer        = "offer"
	SignalAnswer       = "answer"
	SignalIceCandidate = "ice-candidate"
	SignalEndChat      = "end-chat"
)

// SignalMessage is one unit of the signaling exchange, addressed by room
// (= chat request id) and relayed verbatim to the other occupant.
type SignalMessage struct {
	Type     string          `json:"type"`
	RoomID   string          `json:"room_id"`
	SenderID string          `json:"sender_id,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}
