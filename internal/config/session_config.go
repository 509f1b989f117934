package config

import "time"

const (
	// JoinLeadTime is how long before the agreed slot a requester may enter the
	// session. Admins are not time-gated. There is no hard close: a call may
	// run as long as both parties stay connected.
	JoinLeadTime = 30 * time.Minute

	// RoomCapacity is the number of peers a signaling room can hold. The
	// negotiation protocol is strictly one-to-one.
	RoomCapacity = 2
)
