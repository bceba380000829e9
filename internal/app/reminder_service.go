package app

import (
	"context"
	"fmt"

	"grammar_reminder_bot/internal/domain/reminder"
	domainTelegram "grammar_reminder_bot/internal/domain/telegram"
	"grammar_reminder_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

type ReminderPicker interface {
	Pick() reminder.Entry
}

// ReminderService performs one reminder firing.
type ReminderService struct {
	picker         ReminderPicker
	client         domainTelegram.Client
	reminderChatID int64
	logger         *logrus.Entry
}

func NewReminderService(picker ReminderPicker, client domainTelegram.Client, reminderChatID int64, logger *logrus.Entry) *ReminderService {
	return &ReminderService{
		picker:         picker,
		client:         client,
		reminderChatID: reminderChatID,
		logger:         logger,
	}
}

func (s *ReminderService) Enabled() bool { return s.reminderChatID != 0 }

// SendReminder posts one random reminder to the reminder chat. Without a
// configured chat it does nothing and returns nil.
func (s *ReminderService) SendReminder(ctx context.Context) error {
	if !s.Enabled() {
		s.logger.Debug("REMINDER_CHAT_ID not set, skipping reminder")
		metrics.IncReminderFiring("skipped")
		return nil
	}

	entry := s.picker.Pick()
	err := s.client.SendMessage(ctx, s.reminderChatID, entry.Markdown(), telebot.ModeMarkdown)
	metrics.IncDelivery("reminder", err)
	if err != nil {
		metrics.IncReminderFiring("failed")
		return fmt.Errorf("failed to send reminder to chat %d: %w", s.reminderChatID, err)
	}

	metrics.IncReminderFiring("sent")
	s.logger.WithField("chat_id", s.reminderChatID).Info("Reminder sent")
	return nil
}
