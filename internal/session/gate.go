// Package session decides who may enter the live video session of a chat
// request, and when. The check is pure: no shared state, safe to evaluate
// concurrently and re-evaluated on every join attempt.
package session

import (
	"time"

	"visioblog/backend/internal/config"
	"visioblog/backend/internal/models"
)

// DenyReason tells the caller why a join attempt was refused.
type DenyReason string

const (
	DenyNotValidated DenyReason = "not_validated"
	DenyTooEarly     DenyReason = "too_early"
	DenyForbidden    DenyReason = "forbidden"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func allow() Decision            { return Decision{Allowed: true} }
func deny(r DenyReason) Decision { return Decision{Reason: r} }

// Authorize evaluates the join policy for one attempt at time now.
//
//   - the request must exist and be validated;
//   - the owner admin may always enter, including early, to prepare the call;
//   - the requester may enter from JoinLeadTime before the agreed slot onward
//     (there is no hard close: call duration is not fixed);
//   - everyone else is refused.
//
// The slot is interpreted in loc.
func Authorize(req *models.ChatRequest, callerID string, role models.Role, now time.Time, loc *time.Location) Decision {
	if req == nil || req.Status != models.StatusValidated {
		return deny(DenyNotValidated)
	}

	switch role {
	case models.RoleAdmin:
		if callerID != req.OwnerAdminID {
			return deny(DenyForbidden)
		}
		return allow()

	case models.RoleUser:
		if callerID != req.RequesterID {
			return deny(DenyForbidden)
		}
		scheduledAt, err := req.ScheduledAt(loc)
		if err != nil {
			// A slot the calendar cannot parse never opens.
			return deny(DenyNotValidated)
		}
		if now.Before(scheduledAt.Add(-config.JoinLeadTime)) {
			return deny(DenyTooEarly)
		}
		return allow()

	default:
		return deny(DenyForbidden)
	}
}
