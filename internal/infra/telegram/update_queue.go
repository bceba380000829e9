package telegram

import (
	"errors"

	"gopkg.in/telebot.v3"
)

var ErrQueueFull = errors.New("update queue is full")

// UpdateQueue is a telebot.Poller fed by the inbound webhook endpoint instead
// of getUpdates. Updates are handed to the bot's handler loop in arrival order.
type UpdateQueue struct {
	updates chan telebot.Update
}

func NewUpdateQueue(size int) *UpdateQueue {
	return &UpdateQueue{updates: make(chan telebot.Update, size)}
}

// Enqueue never blocks; a full buffer is reported as ErrQueueFull.
func (q *UpdateQueue) Enqueue(u telebot.Update) error {
	select {
	case q.updates <- u:
		return nil
	default:
		return ErrQueueFull
	}
}

// Poll implements telebot.Poller.
func (q *UpdateQueue) Poll(_ *telebot.Bot, dest chan telebot.Update, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case u := <-q.updates:
			select {
			case dest <- u:
			case <-stop:
				return
			}
		}
	}
}
