package memory

import (
	"context"
	"sync"

	"grammar_reminder_bot/internal/domain/session"
)

var _ session.Repository = (*SessionRepository)(nil)

// SessionRepository keeps quiz batches in process memory. Entries live until
// replaced or until the process exits.
type SessionRepository struct {
	mu      sync.RWMutex
	batches map[int64]session.Batch
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{batches: make(map[int64]session.Batch)}
}

func (r *SessionRepository) Put(_ context.Context, b session.Batch) error {
	sentences := make([]string, len(b.Sentences))
	copy(sentences, b.Sentences)
	b.Sentences = sentences

	r.mu.Lock()
	r.batches[b.ConversationID] = b
	r.mu.Unlock()
	return nil
}

func (r *SessionRepository) Get(_ context.Context, conversationID int64) (session.Batch, error) {
	r.mu.RLock()
	b, ok := r.batches[conversationID]
	r.mu.RUnlock()
	if !ok {
		return session.Batch{}, nil
	}
	return b, nil
}
