// internal/infra/telegram/client.go
package telegram

import (
	"context"

	domainTelegram "grammar_reminder_bot/internal/domain/telegram"

	"gopkg.in/telebot.v3"
)

var _ domainTelegram.Client = (*TelebotAdapter)(nil)

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
// One adapter wraps the process-wide bot and is shared by every sender.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to a user, group or channel chat.
func (tba *TelebotAdapter) SendMessage(ctx context.Context, chatID int64, text string, mode telebot.ParseMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := tba.bot.Send(telebot.ChatID(chatID), text, &telebot.SendOptions{ParseMode: mode})
	return err
}
