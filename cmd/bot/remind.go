package main

import (
	"fmt"

	"grammar_reminder_bot/internal/app"
	"grammar_reminder_bot/internal/domain/reminder"
	"grammar_reminder_bot/internal/infra/logger"
	"grammar_reminder_bot/internal/infra/telegram"

	"github.com/spf13/cobra"
	"gopkg.in/telebot.v3"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Post one reminder to REMINDER_CHAT_ID right now",
	RunE:  runRemind,
}

func runRemind(cmd *cobra.Command, _ []string) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	if !cfg.RemindersEnabled() {
		return fmt.Errorf("REMINDER_CHAT_ID is not set")
	}

	catalog, err := reminder.LoadDefault()
	if err != nil {
		return fmt.Errorf("could not load reminder catalog: %w", err)
	}

	bot, err := telebot.NewBot(telebot.Settings{Token: cfg.TelegramToken, Offline: true})
	if err != nil {
		return fmt.Errorf("could not create Telegram bot: %w", err)
	}

	svc := app.NewReminderService(catalog, telegram.NewTelebotAdapter(bot), cfg.ReminderChatID, logger.Component("reminder"))
	return svc.SendReminder(cmd.Context())
}
