// internal/infra/telegram/quiz_response_handlers.go
package telegram

import (
	"context"
	"fmt"
	"strings"

	"grammar_reminder_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const (
	msgSent          = "✅ Отправлено в группу!"
	msgNotFound      = "❌ Предложение не найдено."
	msgDeliveryError = "❌ Ошибка при отправке."
	msgUnknownAction = "Неизвестное действие."
)

// RegisterQuizResponseHandlers handles presses on the quiz keyboard.
func RegisterQuizResponseHandlers(ctx context.Context, b *telebot.Bot, quizService *app.QuizService, baseLogger *logrus.Entry) {
	b.Handle(telebot.OnCallback, func(c telebot.Context) error {
		data := c.Callback().Data

		if !strings.HasPrefix(data, app.SelectionAction+"_") {
			c.Bot().OnError(fmt.Errorf("unhandled callback data: %s", data), c)
			return c.Respond(&telebot.CallbackResponse{Text: msgUnknownAction})
		}

		logCtx := baseLogger.WithFields(logrus.Fields{"chat_id": c.Chat().ID, "data": data})
		if err := c.Respond(); err != nil {
			logCtx.WithError(err).Warn("Failed to acknowledge callback")
		}

		switch quizService.SelectSentence(ctx, c.Chat().ID, data) {
		case app.OutcomeSent:
			if _, err := c.Bot().EditReplyMarkup(c.Message(), nil); err != nil {
				logCtx.WithError(err).Warn("Failed to remove quiz keyboard")
			}
			return c.Send(msgSent)
		case app.OutcomeNotFound:
			return c.Edit(msgNotFound)
		default:
			return c.Edit(msgDeliveryError)
		}
	})
}
