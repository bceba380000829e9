package app

import (
	"context"
	"errors"
	"io"
	"sync"

	"grammar_reminder_bot/internal/domain/grammar"
	"grammar_reminder_bot/internal/domain/reminder"
	"grammar_reminder_bot/internal/domain/session"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

type sentMessage struct {
	chatID int64
	text   string
	mode   telebot.ParseMode
}

type fakeClient struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (c *fakeClient) SendMessage(_ context.Context, chatID int64, text string, mode telebot.ParseMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, sentMessage{chatID: chatID, text: text, mode: mode})
	return nil
}

func (c *fakeClient) messages() []sentMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]sentMessage, len(c.sent))
	copy(out, c.sent)
	return out
}

type fakeCompleter struct {
	reply   string
	err     error
	prompts []string
	mu      sync.Mutex
	block   bool
}

func (c *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	c.mu.Lock()
	c.prompts = append(c.prompts, prompt)
	c.mu.Unlock()
	if c.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return c.reply, c.err
}

func (c *fakeCompleter) Provider() string { return "fake" }

// echoGenerator returns "sentence for <label>" so tests can check ordering.
type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, p grammar.Pattern) string {
	return "sentence for " + p.Label
}

type fixedSampler struct {
	patterns []grammar.Pattern
	err      error
}

func (s fixedSampler) Sample(n int) ([]grammar.Pattern, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.patterns[:n], nil
}

type failingSessions struct{}

func (failingSessions) Put(context.Context, session.Batch) error {
	return errors.New("session backend down")
}

func (failingSessions) Get(context.Context, int64) (session.Batch, error) {
	return session.Batch{}, errors.New("session backend down")
}

type fixedPicker struct{ entry reminder.Entry }

func (p fixedPicker) Pick() reminder.Entry { return p.entry }

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
