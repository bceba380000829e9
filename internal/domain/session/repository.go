package session

import "context"

// Repository keeps at most one batch per conversation.
type Repository interface {
	// Put replaces whatever batch the conversation had before.
	Put(ctx context.Context, b Batch) error
	// Get returns the current batch for the conversation, or an empty Batch
	// if there is none. Errors are reserved for backend failures.
	Get(ctx context.Context, conversationID int64) (Batch, error)
}
