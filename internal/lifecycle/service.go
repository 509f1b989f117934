// Package lifecycle implements the state machine of video-chat requests:
// creation by a user, validation or refusal by the administrator. State is
// committed first, notifications are dispatched after and best-effort.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"visioblog/backend/internal/models"
	"visioblog/backend/internal/storage"
)

// Service drives chat request transitions against the persistent store.
type Service struct {
	Storage   storage.Storage
	Notifiers []Notifier
	Loc       *time.Location
}

func NewService(s storage.Storage, loc *time.Location, notifiers ...Notifier) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		Storage:   s,
		Notifiers: notifiers,
		Loc:       loc,
	}
}

// Create registers a new pending request for the given user and proposed
// slot, then notifies both the requester (reception confirmation) and the
// owner admin (alert with the request content).
func (s *Service) Create(ctx context.Context, requesterID, content, date, timeOfDay string) (*models.ChatRequest, error) {
	user, err := s.Storage.GetUserByID(requesterID)
	if errors.Is(err, storage.ErrUserNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolving requester %s: %w", requesterID, err)
	}

	admin, err := s.Storage.GetDefaultAdmin()
	if err != nil {
		return nil, fmt.Errorf("resolving owner admin: %w", err)
	}

	req := &models.ChatRequest{
		RequesterID:   user.ID,
		Pseudo:        user.Pseudo,
		Content:       content,
		ScheduledDate: date,
		ScheduledTime: timeOfDay,
		Status:        models.StatusPending,
		OwnerAdminID:  admin.ID,
		CreatedAt:     time.Now(),
	}
	// Reject slots the calendar cannot parse before anything is persisted.
	if _, err := req.ScheduledAt(s.Loc); err != nil {
		return nil, err
	}

	if err := s.Storage.SaveRequest(req); err != nil {
		return nil, fmt.Errorf("saving chat request: %w", err)
	}

	s.notify(ctx, KindCreated, req, Recipient{Pseudo: user.Pseudo, Email: user.Email, Role: models.RoleUser})
	s.notify(ctx, KindCreated, req, Recipient{Pseudo: admin.Pseudo, Email: admin.Email, Role: models.RoleAdmin})
	return req, nil
}

// Validate moves a pending request to Validated and mails the requester the
// agreed slot with the join link. A request already validated or refused is
// rejected with ErrInvalidState, never re-applied.
func (s *Service) Validate(ctx context.Context, id string) error {
	return s.transition(ctx, id, models.StatusValidated, KindValidated)
}

// Refuse moves a pending request to Refused and notifies the requester,
// without a join link.
func (s *Service) Refuse(ctx context.Context, id string) error {
	return s.transition(ctx, id, models.StatusRefused, KindRefused)
}

func (s *Service) transition(ctx context.Context, id string, to models.RequestStatus, kind Kind) error {
	req, err := s.Storage.GetRequestByID(id)
	if errors.Is(err, storage.ErrRequestNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("loading chat request %s: %w", id, err)
	}

	user, err := s.Storage.GetUserByID(req.RequesterID)
	if errors.Is(err, storage.ErrUserNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("resolving requester %s: %w", req.RequesterID, err)
	}

	// Compare-and-set out of Pending only. If two admins act at once, exactly
	// one statement flips the row; the other sees zero rows affected.
	ok, err := s.Storage.UpdateRequestStatus(id, models.StatusPending, to)
	if err != nil {
		return fmt.Errorf("updating chat request %s: %w", id, err)
	}
	if !ok {
		return ErrInvalidState
	}

	req.Status = to
	s.notify(ctx, kind, req, Recipient{Pseudo: user.Pseudo, Email: user.Email, Role: models.RoleUser})
	return nil
}

// Delete removes a request regardless of its status. No notification is sent.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Storage.GetRequestByID(id); err != nil {
		if errors.Is(err, storage.ErrRequestNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("loading chat request %s: %w", id, err)
	}
	return s.Storage.DeleteRequest(id)
}

// Requests returns all requests made by one user, oldest first.
func (s *Service) Requests(ctx context.Context, requesterID string) ([]models.ChatRequest, error) {
	return s.Storage.GetRequestsByRequester(requesterID)
}

// Pending returns the requests still waiting on an admin decision.
func (s *Service) Pending(ctx context.Context) ([]models.ChatRequest, error) {
	return s.Storage.GetRequestsByStatus(models.StatusPending)
}

// notify fans the event out to every configured channel. Failures are logged
// and swallowed: the state transition already committed and stays committed.
func (s *Service) notify(ctx context.Context, kind Kind, req *models.ChatRequest, to Recipient) {
	for _, n := range s.Notifiers {
		if err := n.Notify(ctx, kind, req, to); err != nil {
			log.Printf("ERROR: notification %s for request %s to %s failed: %v", kind, req.ID, to.Email, err)
		}
	}
}
