package visiohub

import (
	"errors"
	"fmt"

	"visioblog/backend/internal/session"
)

// ErrRoomFull is returned when a third distinct connection tries to join a
// room that already holds both parties.
var ErrRoomFull = errors.New("room already has two occupants")

// DeniedError carries the gate's refusal reason so the transport layer can
// report it before closing the connection.
type DeniedError struct {
	Reason session.DenyReason
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("session join denied: %s", e.Reason)
}
