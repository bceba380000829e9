package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"grammar_reminder_bot/internal/domain/session"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_Key(t *testing.T) {
	r := NewSessionRepository(nil)
	assert.Equal(t, "quiz_batch:42", r.key(42))
	assert.Equal(t, "quiz_batch:-1001234567890", r.key(-1001234567890))
}

func TestStoredBatch_RoundTrip(t *testing.T) {
	b := session.NewBatch(42, []string{"Если пойдёт дождь, я останусь дома."})

	data, err := json.Marshal(storedBatch(b))
	require.NoError(t, err)

	var sb storedBatch
	require.NoError(t, json.Unmarshal(data, &sb))
	got := session.Batch(sb)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, b.Sentences, got.Sentences)
	assert.True(t, b.CreatedAt.Equal(got.CreatedAt))
}

func TestSessionRepository_BackendDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	r := NewSessionRepository(client)

	_, err := r.Get(context.Background(), 42)
	assert.Error(t, err)
	assert.Error(t, r.Put(context.Background(), session.NewBatch(42, []string{"x"})))
}
