package visiohub

import "visioblog/backend/internal/models"

// Client is the interface for one peer connection taking part in a signaling
// session. It abstracts the underlying transport so the hub can be exercised
// in tests without a network.
type Client interface {
	// GetUserID returns the authenticated identity behind the connection.
	GetUserID() string
	// GetRole returns the caller's role as established upstream.
	GetRole() models.Role
	// GetRoomID returns the chat request id whose room this client occupies.
	GetRoomID() string

	// GetSendChannel returns the channel the hub pushes outbound signaling
	// messages into. The channel is buffered; a peer that stops draining it
	// gets disconnected rather than stalling the relay.
	GetSendChannel() chan<- models.SignalMessage

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's outbound channel, which ends its write
	// pump and in turn the underlying transport.
	Close()
}
