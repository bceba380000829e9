package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"grammar_reminder_bot/internal/domain/session"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var _ session.Repository = (*SessionRepository)(nil)

// SessionRepository keeps quiz batches as JSON under quiz_batch:<chat>. Keys
// are written without expiry.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

type storedBatch struct {
	ID             uuid.UUID `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	Sentences      []string  `json:"sentences"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r *SessionRepository) key(conversationID int64) string {
	return fmt.Sprintf("quiz_batch:%d", conversationID)
}

func (r *SessionRepository) Put(ctx context.Context, b session.Batch) error {
	data, err := json.Marshal(storedBatch(b))
	if err != nil {
		return fmt.Errorf("failed to encode quiz batch: %w", err)
	}
	if err := r.client.Set(ctx, r.key(b.ConversationID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store quiz batch: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, conversationID int64) (session.Batch, error) {
	data, err := r.client.Get(ctx, r.key(conversationID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return session.Batch{}, nil
		}
		return session.Batch{}, fmt.Errorf("failed to load quiz batch: %w", err)
	}
	var sb storedBatch
	if err := json.Unmarshal(data, &sb); err != nil {
		return session.Batch{}, fmt.Errorf("failed to decode quiz batch: %w", err)
	}
	return session.Batch(sb), nil
}
