// internal/infra/database/postgres_session_repository.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"grammar_reminder_bot/internal/domain/session"

	"github.com/lib/pq"
)

var _ session.Repository = (*PostgresSessionRepository)(nil)

const sessionSchema = `CREATE TABLE IF NOT EXISTS quiz_sessions (
    conversation_id BIGINT PRIMARY KEY,
    batch_id        UUID        NOT NULL,
    sentences       TEXT[]      NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL
)`

// PostgresSessionRepository stores one quiz batch per conversation so a
// pending selection survives a restart.
type PostgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(db *sql.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

// EnsureSchema creates the quiz_sessions table if it does not exist yet.
func (r *PostgresSessionRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sessionSchema); err != nil {
		return fmt.Errorf("error creating quiz_sessions table: %w", err)
	}
	return nil
}

func (r *PostgresSessionRepository) Put(ctx context.Context, b session.Batch) error {
	query := `INSERT INTO quiz_sessions (conversation_id, batch_id, sentences, created_at)
               VALUES ($1, $2, $3, $4)
               ON CONFLICT (conversation_id) DO UPDATE
               SET batch_id = EXCLUDED.batch_id, sentences = EXCLUDED.sentences, created_at = EXCLUDED.created_at`
	_, err := r.db.ExecContext(ctx, query, b.ConversationID, b.ID, pq.Array(b.Sentences), b.CreatedAt)
	if err != nil {
		return fmt.Errorf("error storing quiz batch: %w", err)
	}
	return nil
}

func (r *PostgresSessionRepository) Get(ctx context.Context, conversationID int64) (session.Batch, error) {
	query := `SELECT conversation_id, batch_id, sentences, created_at
               FROM quiz_sessions WHERE conversation_id = $1`
	var b session.Batch
	err := r.db.QueryRowContext(ctx, query, conversationID).Scan(&b.ConversationID, &b.ID, pq.Array(&b.Sentences), &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Batch{}, nil
		}
		return session.Batch{}, fmt.Errorf("error getting quiz batch: %w", err)
	}
	return b, nil
}
