package llm

import (
	"context"
	"errors"
	"fmt"

	"grammar_reminder_bot/internal/app"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const (
	// Sampling parameters shared by every provider.
	temperature = 0.6
	maxTokens   = 55
)

var _ app.TextCompleter = (*OpenAICompleter)(nil)

// OpenAICompleter talks to any OpenAI-compatible chat completions API
// (DeepSeek by default).
type OpenAICompleter struct {
	client   openai.Client
	model    string
	provider string
}

func NewOpenAICompleter(provider, apiKey, baseURL, model string, opts ...option.RequestOption) (*OpenAICompleter, error) {
	if apiKey == "" {
		return nil, errors.New("openai-compatible completer: empty api key")
	}
	if model == "" {
		return nil, errors.New("openai-compatible completer: empty model")
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// No retries; the generator applies its own deadline and fallback.
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	reqOpts = append(reqOpts, opts...)

	return &OpenAICompleter{
		client:   openai.NewClient(reqOpts...),
		model:    model,
		provider: provider,
	}, nil
}

func (c *OpenAICompleter) Provider() string { return c.provider }

func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion failed: %w", c.provider, err)
	}
	for _, choice := range resp.Choices {
		if choice.Message.Content != "" {
			return choice.Message.Content, nil
		}
	}
	return "", fmt.Errorf("%s chat completion returned no content", c.provider)
}
