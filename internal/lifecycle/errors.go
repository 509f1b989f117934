package lifecycle

import "errors"

var (
	// ErrNotFound means the request id or the requester identity did not
	// resolve. Surfaced to the caller as-is, never retried.
	ErrNotFound = errors.New("chat request or requester not found")

	// ErrInvalidState means a transition was attempted on a request that
	// already left the Pending state. The stored status is left untouched.
	ErrInvalidState = errors.New("chat request is not pending")
)
