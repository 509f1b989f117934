// Package telegram pushes owner alerts to the blog administrator's Telegram
// account and answers a couple of read-only commands, so new video chat
// requests reach the owner even away from the mailbox.
package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"

	"visioblog/backend/internal/lifecycle"
	"visioblog/backend/internal/localization"
	"visioblog/backend/internal/models"
	"visioblog/backend/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotService receives Telegram updates from the owner and sends alerts back.
type BotService struct {
	BotAPI      *tgbotapi.BotAPI
	Storage     storage.Storage
	OwnerChatID int64
	Localizer   *localization.Localizer
	Lang        string
}

func NewBotService(token string, ownerChatID int64, s storage.Storage, l *localization.Localizer, lang string) (*BotService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("Authorized on Telegram account %s", bot.Self.UserName)

	return &BotService{
		BotAPI:      bot,
		Storage:     s,
		OwnerChatID: ownerChatID,
		Localizer:   l,
		Lang:        lang,
	}, nil
}

// Notify implements lifecycle.Notifier. Only the owner alert on creation goes
// out over Telegram; the requester-facing kinds are handled by mail.
func (s *BotService) Notify(ctx context.Context, kind lifecycle.Kind, req *models.ChatRequest, to lifecycle.Recipient) error {
	if kind != lifecycle.KindCreated || to.Role != models.RoleAdmin {
		return nil
	}
	if s.OwnerChatID == 0 {
		return nil
	}

	text := s.Localizer.Format(s.Lang, "telegram.created.alert",
		req.Pseudo, req.ScheduledDate, req.ScheduledTime, req.Content)
	_, err := s.BotAPI.Send(tgbotapi.NewMessage(s.OwnerChatID, text))
	return err
}

// Run consumes the update stream. It only reacts to commands coming from the
// owner's chat.
func (s *BotService) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	for update := range s.BotAPI.GetUpdatesChan(u) {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}
		if update.Message.Chat.ID != s.OwnerChatID {
			continue
		}

		switch update.Message.Command() {
		case "pending":
			s.replyPending(update.Message.Chat.ID)
		}
	}
}

func (s *BotService) replyPending(chatID int64) {
	reqs, err := s.Storage.GetRequestsByStatus(models.StatusPending)
	if err != nil {
		log.Printf("ERROR: listing pending requests for Telegram: %v", err)
		return
	}

	if len(reqs) == 0 {
		s.send(chatID, s.Localizer.GetString(s.Lang, "telegram.pending.empty"))
		return
	}

	var b strings.Builder
	b.WriteString(s.Localizer.GetString(s.Lang, "telegram.pending.header"))
	for _, r := range reqs {
		fmt.Fprintf(&b, "\n- %s: %s %s (%s)", r.Pseudo, r.ScheduledDate, r.ScheduledTime, r.ID)
	}
	s.send(chatID, b.String())
}

func (s *BotService) send(chatID int64, text string) {
	if _, err := s.BotAPI.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("ERROR: sending Telegram message: %v", err)
	}
}
