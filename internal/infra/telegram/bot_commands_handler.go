// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"context"
	"errors"

	"grammar_reminder_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const (
	msgUsage          = "Привет! Напиши /quiz здесь (в личном чате), чтобы выбрать предложения для отправки в группу."
	msgQuizDisabled   = "❌ TARGET_CHAT_ID не настроен."
	msgGenerating     = "⏳ Генерирую предложения..."
	msgChoose         = "Выбери, что отправить в группу:"
	msgQuizNotStarted = "❌ Не удалось подготовить предложения. Попробуй ещё раз."
)

// RegisterBotCommands wires /start, /help and /quiz. All three are answered
// only in a private chat with the bot.
func RegisterBotCommands(
	ctx context.Context,
	b *telebot.Bot,
	quizService *app.QuizService,
	baseLogger *logrus.Entry,
) {
	private := b.Group()
	private.Use(privateOnly)

	usage := func(c telebot.Context) error {
		baseLogger.WithFields(logrus.Fields{
			"command":   c.Text(),
			"sender_id": c.Sender().ID,
		}).Info("Processing usage command")
		return c.Send(msgUsage)
	}
	private.Handle("/start", usage)
	private.Handle("/help", usage)

	private.Handle("/quiz", func(c telebot.Context) error {
		logCtx := baseLogger.WithFields(logrus.Fields{
			"command": "/quiz",
			"chat_id": c.Chat().ID,
		})
		logCtx.Info("Processing /quiz command")

		if !quizService.Enabled() {
			logCtx.Warn("Quiz requested but TARGET_CHAT_ID is not configured")
			return c.Send(msgQuizDisabled)
		}
		if err := c.Send(msgGenerating); err != nil {
			logCtx.WithError(err).Warn("Failed to send progress message")
		}

		options, err := quizService.StartQuiz(ctx, c.Chat().ID)
		if err != nil {
			if errors.Is(err, app.ErrQuizDisabled) {
				return c.Send(msgQuizDisabled)
			}
			logCtx.WithError(err).Error("Failed to start quiz")
			return c.Send(msgQuizNotStarted)
		}
		return c.Send(msgChoose, QuizKeyboard(options))
	})
}

// QuizKeyboard lays out one inline button per row, in batch order.
func QuizKeyboard(options []app.Option) *telebot.ReplyMarkup {
	rows := make([][]telebot.InlineButton, len(options))
	for i, o := range options {
		rows[i] = []telebot.InlineButton{{Text: o.Label, Data: o.Data}}
	}
	return &telebot.ReplyMarkup{InlineKeyboard: rows}
}

func privateOnly(next telebot.HandlerFunc) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		if c.Chat() == nil || c.Chat().Type != telebot.ChatPrivate {
			return nil
		}
		return next(c)
	}
}
