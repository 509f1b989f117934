package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestStatus is the lifecycle state of a video-chat request.
// A request starts Pending and moves exactly once to Validated or Refused.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusValidated RequestStatus = "validated"
	StatusRefused   RequestStatus = "refused"
)

// Layouts for the scheduled date and time columns.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ChatRequest is a user's request for a live video session with the blog owner.
// The content and proposed slot are set at creation and never change; only the
// status moves, and only out of Pending.
type ChatRequest struct {
	ID          string `gorm:"primaryKey" json:"id"` // UUID
	RequesterID string `gorm:"not null;index" json:"requester_id"`
	Pseudo      string `gorm:"not null" json:"pseudo"`
	// Content is the free-text reason the user gave for the session.
	Content string `gorm:"type:text;not null" json:"content"`
	// ScheduledDate / ScheduledTime are the proposed slot, stored the way the
	// calendar handles them ("2006-01-02" and "15:04").
	ScheduledDate string        `gorm:"not null" json:"scheduled_date"`
	ScheduledTime string        `gorm:"not null" json:"scheduled_time"`
	Status        RequestStatus `gorm:"not null;default:pending;index" json:"status"`
	// OwnerAdminID is the administrator who will host the call.
	OwnerAdminID string    `gorm:"not null" json:"owner_admin_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func (r *ChatRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// ScheduledAt combines the date and time columns into a single instant in the
// given location.
func (r *ChatRequest) ScheduledAt(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, r.ScheduledDate+" "+r.ScheduledTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("request %s has an invalid slot %q %q: %w", r.ID, r.ScheduledDate, r.ScheduledTime, err)
	}
	return t, nil
}

// Terminal reports whether the request has left the Pending state.
func (r *ChatRequest) Terminal() bool {
	return r.Status == StatusValidated || r.Status == StatusRefused
}
