package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"grammar_reminder_bot/internal/domain/grammar"
	"grammar_reminder_bot/internal/domain/session"
	domainTelegram "grammar_reminder_bot/internal/domain/telegram"
	"grammar_reminder_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gopkg.in/telebot.v3"
)

const (
	// BatchSize is the number of candidate sentences offered per /quiz.
	BatchSize = 6
	// LabelMaxRunes caps the button preview; longer sentences get an ellipsis.
	LabelMaxRunes = 22
	// SelectionAction tags callback payloads produced by the quiz keyboard.
	SelectionAction = "send"
)

var ErrQuizDisabled = errors.New("quiz target chat is not configured")
var ErrMalformedSelection = errors.New("malformed selection reference")

// SelectionOutcome is the user-visible result of pressing a quiz button.
type SelectionOutcome string

const (
	OutcomeSent     SelectionOutcome = "sent"
	OutcomeNotFound SelectionOutcome = "not_found"
	OutcomeFailed   SelectionOutcome = "failed"
)

// Option is one selectable quiz button.
type Option struct {
	Label string
	Data  string
}

type PatternSampler interface {
	Sample(n int) ([]grammar.Pattern, error)
}

type SentenceSource interface {
	Generate(ctx context.Context, p grammar.Pattern) string
}

// QuizService drives the operator's selection flow: generate a batch,
// remember it for the conversation, then forward the chosen sentence to the
// target group.
type QuizService struct {
	sampler      PatternSampler
	generator    SentenceSource
	sessions     session.Repository
	client       domainTelegram.Client
	targetChatID int64
	logger       *logrus.Entry
}

func NewQuizService(
	sampler PatternSampler,
	generator SentenceSource,
	sessions session.Repository,
	client domainTelegram.Client,
	targetChatID int64,
	logger *logrus.Entry,
) *QuizService {
	return &QuizService{
		sampler:      sampler,
		generator:    generator,
		sessions:     sessions,
		client:       client,
		targetChatID: targetChatID,
		logger:       logger,
	}
}

// Enabled reports whether chosen sentences have somewhere to go.
func (s *QuizService) Enabled() bool { return s.targetChatID != 0 }

// StartQuiz generates a fresh batch for the conversation, replacing any
// previous one, and returns the buttons to present.
func (s *QuizService) StartQuiz(ctx context.Context, conversationID int64) ([]Option, error) {
	if !s.Enabled() {
		return nil, ErrQuizDisabled
	}

	patterns, err := s.sampler.Sample(BatchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to sample grammar patterns: %w", err)
	}

	batch := session.NewBatch(conversationID, s.generateAll(ctx, patterns))
	if err := s.sessions.Put(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to store quiz batch: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"chat_id":  conversationID,
		"batch_id": batch.ID,
		"size":     len(batch.Sentences),
	}).Info("Quiz batch generated")

	return BuildOptions(batch.Sentences), nil
}

// generateAll runs one generation per pattern concurrently; out[i] always
// belongs to patterns[i].
func (s *QuizService) generateAll(ctx context.Context, patterns []grammar.Pattern) []string {
	out := make([]string, len(patterns))
	var g errgroup.Group
	for i, p := range patterns {
		g.Go(func() error {
			out[i] = s.generator.Generate(ctx, p)
			return nil
		})
	}
	_ = g.Wait() // Generate never fails
	return out
}

// SelectSentence resolves a callback payload against the conversation's
// current batch and forwards the sentence to the target chat. A batch stays
// valid after a successful send, so pressing again re-delivers.
func (s *QuizService) SelectSentence(ctx context.Context, conversationID int64, data string) SelectionOutcome {
	log := s.logger.WithFields(logrus.Fields{"chat_id": conversationID, "data": data})

	outcome := s.selectSentence(ctx, conversationID, data, log)
	metrics.IncSelection(string(outcome))
	return outcome
}

func (s *QuizService) selectSentence(ctx context.Context, conversationID int64, data string, log *logrus.Entry) SelectionOutcome {
	index, err := ParseSelection(data)
	if err != nil {
		log.WithError(err).Warn("Rejected selection")
		return OutcomeNotFound
	}
	log = log.WithField("index", index)

	batch, err := s.sessions.Get(ctx, conversationID)
	if err != nil {
		log.WithError(err).Error("Failed to load quiz batch")
		return OutcomeNotFound
	}
	sentence, ok := batch.Sentence(index)
	if !ok {
		log.WithField("batch_size", len(batch.Sentences)).Info("Selection does not match the current batch")
		return OutcomeNotFound
	}
	log = log.WithField("batch_id", batch.ID)

	if !s.Enabled() {
		log.WithError(ErrQuizDisabled).Error("Cannot deliver selected sentence")
		return OutcomeFailed
	}

	err = s.client.SendMessage(ctx, s.targetChatID, sentence, telebot.ModeDefault)
	metrics.IncDelivery("quiz", err)
	if err != nil {
		log.WithError(err).Error("Failed to deliver selected sentence")
		return OutcomeFailed
	}
	log.Info("Selected sentence delivered to target chat")
	return OutcomeSent
}

// SelectionData builds the callback payload for the sentence at index.
func SelectionData(index int) string {
	return SelectionAction + "_" + strconv.Itoa(index)
}

// ParseSelection extracts the index from a "send_<index>" payload.
func ParseSelection(data string) (int, error) {
	raw, ok := strings.CutPrefix(data, SelectionAction+"_")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSelection, data)
	}
	if raw == "" || strings.TrimLeft(raw, "0123456789") != "" {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSelection, data)
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrMalformedSelection, data, err)
	}
	return index, nil
}

// PreviewLabel truncates a sentence to LabelMaxRunes characters plus "…".
func PreviewLabel(sentence string) string {
	runes := []rune(sentence)
	if len(runes) <= LabelMaxRunes {
		return sentence
	}
	return string(runes[:LabelMaxRunes]) + "…"
}

// BuildOptions maps a batch to its buttons, index i for sentence i.
func BuildOptions(sentences []string) []Option {
	opts := make([]Option, len(sentences))
	for i, sentence := range sentences {
		opts[i] = Option{Label: PreviewLabel(sentence), Data: SelectionData(i)}
	}
	return opts
}
