package telegram

import (
	"context"

	"gopkg.in/telebot.v3"
)

// Client is the single outbound capability shared by the quiz flow and the
// reminder scheduler: send a text message to a chat. Implementations must be
// safe for concurrent use and must report delivery failures to the caller.
type Client interface {
	SendMessage(ctx context.Context, chatID int64, text string, mode telebot.ParseMode) error
}
