// Package mailer delivers lifecycle notifications by email through SendGrid.
// It implements lifecycle.Notifier; senders treat every call as best-effort.
package mailer

import (
	"context"
	"fmt"

	"visioblog/backend/internal/lifecycle"
	"visioblog/backend/internal/localization"
	"visioblog/backend/internal/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Service struct {
	apiKey   string
	from     string
	fromName string
	// baseURL is the public address of the blog, used to build the join link
	// sent in validation mails.
	baseURL   string
	lang      string
	localizer *localization.Localizer
}

func NewService(apiKey, from, fromName, baseURL, lang string, l *localization.Localizer) *Service {
	return &Service{
		apiKey:    apiKey,
		from:      from,
		fromName:  fromName,
		baseURL:   baseURL,
		lang:      lang,
		localizer: l,
	}
}

// Notify builds the mail matching the lifecycle event and sends it.
func (s *Service) Notify(ctx context.Context, kind lifecycle.Kind, req *models.ChatRequest, to lifecycle.Recipient) error {
	var subject, body string

	switch {
	case kind == lifecycle.KindCreated && to.Role == models.RoleAdmin:
		subject = s.localizer.GetString(s.lang, "mail.created.admin.subject")
		body = s.localizer.Format(s.lang, "mail.created.admin.body", to.Pseudo, req.Pseudo, req.Content)

	case kind == lifecycle.KindCreated:
		subject = s.localizer.GetString(s.lang, "mail.created.user.subject")
		body = s.localizer.Format(s.lang, "mail.created.user.body", to.Pseudo)

	case kind == lifecycle.KindValidated:
		joinLink := fmt.Sprintf("%s/chat/session/%s", s.baseURL, req.ID)
		subject = s.localizer.GetString(s.lang, "mail.validated.subject")
		body = s.localizer.Format(s.lang, "mail.validated.body",
			to.Pseudo, req.ScheduledDate, req.ScheduledTime, joinLink)

	case kind == lifecycle.KindRefused:
		subject = s.localizer.GetString(s.lang, "mail.refused.subject")
		body = s.localizer.Format(s.lang, "mail.refused.body", to.Pseudo)

	default:
		return fmt.Errorf("unknown notification kind %q", kind)
	}

	return s.send(ctx, to, subject, body)
}

func (s *Service) send(ctx context.Context, to lifecycle.Recipient, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(to.Pseudo, to.Email)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
