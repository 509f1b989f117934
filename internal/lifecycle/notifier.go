package lifecycle

import (
	"context"

	"visioblog/backend/internal/models"
)

// Kind names the lifecycle event a notification is about.
type Kind string

const (
	KindCreated   Kind = "created"
	KindValidated Kind = "validated"
	KindRefused   Kind = "refused"
)

// Recipient is who a notification is addressed to. For KindCreated the
// service emits two notifications: a confirmation to the requester and an
// alert to the owner admin, distinguished by Role.
type Recipient struct {
	Pseudo string
	Email  string
	Role   models.Role
}

// Notifier delivers a lifecycle notification. Implementations are best-effort
// external channels (mail, Telegram); the service logs failures and never lets
// them affect the state transition.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, req *models.ChatRequest, to Recipient) error
}
