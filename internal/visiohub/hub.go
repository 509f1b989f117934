// Package visiohub keeps the in-memory registry of live signaling rooms, one
// per validated chat request, and relays negotiation messages between the two
// peers of a room. Nothing here is persisted: a room exists only while at
// least one of its connections does.
package visiohub

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"visioblog/backend/internal/config"
	"visioblog/backend/internal/models"
	"visioblog/backend/internal/session"
	"visioblog/backend/internal/storage"
)

// room holds the occupants of one signaling session. At most two connections:
// the requester's and the admin's.
type room struct {
	occupants []Client
}

// Hub owns all active rooms. Join, relay and leave all run under the same
// mutex so a relay never walks an occupant list being mutated concurrently.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]*room

	Storage storage.Storage
	Loc     *time.Location

	// now is the clock used for the join-window check, injectable in tests.
	now func() time.Time
}

func NewHub(s storage.Storage, loc *time.Location) *Hub {
	if loc == nil {
		loc = time.UTC
	}
	return &Hub{
		rooms:   make(map[string]*room),
		Storage: s,
		Loc:     loc,
		now:     time.Now,
	}
}

// SetClock replaces the hub's clock. Tests use this to walk through the
// pre-appointment window.
func (h *Hub) SetClock(now func() time.Time) {
	h.now = now
}

// Join authorizes the client against the request's session gate and, if
// allowed, registers it as a room occupant. The gate is re-evaluated on every
// attempt: a requester refused as too early may be admitted moments later.
func (h *Hub) Join(requestID string, c Client) error {
	req, err := h.Storage.GetRequestByID(requestID)
	if err != nil && !errors.Is(err, storage.ErrRequestNotFound) {
		return fmt.Errorf("loading chat request %s: %w", requestID, err)
	}

	// A missing request falls through as nil and is denied as not validated.
	decision := session.Authorize(req, c.GetUserID(), c.GetRole(), h.now(), h.Loc)
	if !decision.Allowed {
		return &DeniedError{Reason: decision.Reason}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[requestID]
	if !ok {
		r = &room{}
		h.rooms[requestID] = r
	}
	for _, occ := range r.occupants {
		if occ == c {
			return nil // already joined over this connection
		}
	}
	if len(r.occupants) >= config.RoomCapacity {
		return ErrRoomFull
	}
	r.occupants = append(r.occupants, c)
	log.Printf("Client %s (%s) joined room %s (%d occupant(s))", c.GetUserID(), c.GetRole(), requestID, len(r.occupants))
	return nil
}

// Relay forwards msg verbatim to every occupant of the room except the
// sender. With no other occupant the message is dropped; there is no
// buffering or replay, the browsers' negotiation protocol retries on its own.
func (h *Hub) Relay(requestID string, sender Client, msg models.SignalMessage) {
	msg.RoomID = requestID
	msg.SenderID = sender.GetUserID()

	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[requestID]
	if !ok {
		return
	}
	for _, occ := range r.occupants {
		if occ == sender {
			continue
		}
		select {
		case occ.GetSendChannel() <- msg:
		default:
			// The peer stopped draining its outbound queue. Disconnect it
			// instead of letting one slow peer stall the relay.
			log.Printf("Client %s in room %s is not keeping up, disconnecting", occ.GetUserID(), requestID)
			h.removeLocked(requestID, occ)
			occ.Close()
		}
	}
}

// EndChat handles the explicit end-of-chat signal: the other occupant is told
// and the room entry is dropped. Transports are left to close themselves.
func (h *Hub) EndChat(requestID string, sender Client, msg models.SignalMessage) {
	h.Relay(requestID, sender, msg)

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[requestID]; ok {
		delete(h.rooms, requestID)
		log.Printf("Room %s ended by %s", requestID, sender.GetUserID())
	}
}

// Leave removes the client from its room; the last one out deletes the room
// entry. Transport failures funnel through here too, they are not errors.
func (h *Hub) Leave(requestID string, c Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(requestID, c)
}

func (h *Hub) removeLocked(requestID string, c Client) {
	r, ok := h.rooms[requestID]
	if !ok {
		return
	}
	for i, occ := range r.occupants {
		if occ == c {
			r.occupants = append(r.occupants[:i], r.occupants[i+1:]...)
			break
		}
	}
	if len(r.occupants) == 0 {
		delete(h.rooms, requestID)
	}
}

// OccupantCount reports how many connections currently sit in a room.
func (h *Hub) OccupantCount(requestID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[requestID]; ok {
		return len(r.occupants)
	}
	return 0
}
