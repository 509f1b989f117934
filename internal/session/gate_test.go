package session_test

import (
	"testing"
	"time"

	"visioblog/backend/internal/config"
	"visioblog/backend/internal/models"
	"visioblog/backend/internal/session"

	"github.com/stretchr/testify/assert"
)

func validatedRequest() *models.ChatRequest {
	return &models.ChatRequest{
		ID:            "req-1",
		RequesterID:   "user-1",
		ScheduledDate: "2025-03-01",
		ScheduledTime: "18:00",
		Status:        models.StatusValidated,
		OwnerAdminID:  "admin-1",
	}
}

func at(hour, min int) time.Time {
	return time.Date(2025, 3, 1, hour, min, 0, 0, time.UTC)
}

func TestAuthorize_RequestMustBeValidated(t *testing.T) {
	tests := []struct {
		name string
		req  *models.ChatRequest
	}{
		{"missing request", nil},
		{"pending request", &models.ChatRequest{ID: "r", RequesterID: "user-1", Status: models.StatusPending}},
		{"refused request", &models.ChatRequest{ID: "r", RequesterID: "user-1", Status: models.StatusRefused}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := session.Authorize(tt.req, "user-1", models.RoleUser, at(18, 0), time.UTC)
			assert.False(t, d.Allowed)
			assert.Equal(t, session.DenyNotValidated, d.Reason)
		})
	}
}

func TestAuthorize_AdminOwnerNotTimeGated(t *testing.T) {
	// Hours before the slot, the owner may still enter to prepare.
	d := session.Authorize(validatedRequest(), "admin-1", models.RoleAdmin, at(8, 0), time.UTC)
	assert.True(t, d.Allowed)
}

func TestAuthorize_AdminMustOwnRequest(t *testing.T) {
	for _, now := range []time.Time{at(8, 0), at(18, 0), at(23, 0)} {
		d := session.Authorize(validatedRequest(), "admin-2", models.RoleAdmin, now, time.UTC)
		assert.False(t, d.Allowed)
		assert.Equal(t, session.DenyForbidden, d.Reason)
	}
}

func TestAuthorize_UserJoinWindow(t *testing.T) {
	req := validatedRequest()
	opensAt := at(18, 0).Add(-config.JoinLeadTime)

	tests := []struct {
		name    string
		now     time.Time
		allowed bool
		reason  session.DenyReason
	}{
		{"morning of the appointment", at(10, 0), false, session.DenyTooEarly},
		{"one second before the window", opensAt.Add(-time.Second), false, session.DenyTooEarly},
		{"window opens", opensAt, true, ""},
		{"ten minutes before the slot", at(17, 50), true, ""},
		{"at the slot", at(18, 0), true, ""},
		{"call running late", at(19, 30), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := session.Authorize(req, "user-1", models.RoleUser, tt.now, time.UTC)
			assert.Equal(t, tt.allowed, d.Allowed)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestAuthorize_UserMustBeRequester(t *testing.T) {
	d := session.Authorize(validatedRequest(), "user-2", models.RoleUser, at(18, 0), time.UTC)
	assert.False(t, d.Allowed)
	assert.Equal(t, session.DenyForbidden, d.Reason)
}

func TestAuthorize_UnknownRole(t *testing.T) {
	d := session.Authorize(validatedRequest(), "user-1", models.Role("bot"), at(18, 0), time.UTC)
	assert.False(t, d.Allowed)
	assert.Equal(t, session.DenyForbidden, d.Reason)
}

func TestAuthorize_UnparsableSlotNeverOpens(t *testing.T) {
	req := validatedRequest()
	req.ScheduledTime = "six"

	d := session.Authorize(req, "user-1", models.RoleUser, at(18, 0), time.UTC)
	assert.False(t, d.Allowed)
	assert.Equal(t, session.DenyNotValidated, d.Reason)
}
