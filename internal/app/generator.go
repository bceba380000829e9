package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"grammar_reminder_bot/internal/domain/grammar"
	"grammar_reminder_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
)

var errEmptyCompletion = errors.New("generation service returned an empty sentence")

// TextCompleter is a text-generation backend answering a single prompt.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Provider() string
}

// SentenceGenerator turns a grammar pattern into one practice sentence. It
// never fails: any backend problem is logged and answered with a canned sentence.
type SentenceGenerator struct {
	completer TextCompleter
	fallbacks []string
	timeout   time.Duration
	logger    *logrus.Entry
}

func NewSentenceGenerator(completer TextCompleter, fallbacks []string, timeout time.Duration, logger *logrus.Entry) (*SentenceGenerator, error) {
	if completer == nil {
		return nil, errors.New("sentence generator needs a text completer")
	}
	if len(fallbacks) == 0 {
		return nil, errors.New("sentence generator needs at least one fallback sentence")
	}
	return &SentenceGenerator{
		completer: completer,
		fallbacks: fallbacks,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

// Generate returns a cleaned sentence illustrating p, or a fallback sentence.
func (g *SentenceGenerator) Generate(ctx context.Context, p grammar.Pattern) string {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	raw, err := g.completer.Complete(ctx, BuildPrompt(p.Description()))
	if err == nil {
		if sentence := CleanSentence(raw); sentence != "" {
			metrics.ObserveGeneration(g.completer.Provider(), time.Since(start), false)
			return sentence
		}
		err = errEmptyCompletion
	}

	metrics.ObserveGeneration(g.completer.Provider(), time.Since(start), true)
	g.logger.WithError(err).WithFields(logrus.Fields{
		"provider": g.completer.Provider(),
		"pattern":  p.Label,
	}).Error("Sentence generation failed, serving a fallback sentence")
	return g.fallbacks[rand.IntN(len(g.fallbacks))]
}

// BuildPrompt renders the instruction sent to the generation service.
func BuildPrompt(description string) string {
	return fmt.Sprintf(`You are an English teacher creating grammar practice.
Generate ONE clear Russian sentence that demonstrates this grammar structure.
Rules:
- Use ONLY simple, everyday A2-B1 Russian vocabulary (no rare/advanced words).
- Include context like 'вчера', 'завтра', 'когда я был ребёнком' if needed.
- DO NOT include English, labels, or explanations.
- Output ONLY the Russian sentence, nothing else.

Grammar: %s`, description)
}

var quoteStripper = strings.NewReplacer(`"`, "", "«", "", "»", "", "“", "", "”", "", "„", "")

// CleanSentence strips quote glyphs and surrounding whitespace from raw model output.
func CleanSentence(raw string) string {
	return strings.TrimSpace(quoteStripper.Replace(strings.TrimSpace(raw)))
}
