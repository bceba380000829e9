package session

import (
	"time"

	"github.com/google/uuid"
)

// Batch is the ordered list of candidate sentences generated for one /quiz
// request. A sentence's position is the index carried by its selection button.
type Batch struct {
	ID             uuid.UUID
	ConversationID int64
	Sentences      []string
	CreatedAt      time.Time
}

func NewBatch(conversationID int64, sentences []string) Batch {
	return Batch{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Sentences:      sentences,
		CreatedAt:      time.Now().UTC(),
	}
}

// Empty reports whether there is nothing to select from.
func (b Batch) Empty() bool { return len(b.Sentences) == 0 }

// Sentence returns the candidate at index, or false when index is outside [0, len).
func (b Batch) Sentence(index int) (string, bool) {
	if index < 0 || index >= len(b.Sentences) {
		return "", false
	}
	return b.Sentences[index], true
}
