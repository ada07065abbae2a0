// Package mentor implements the conversational core: the chat session
// state machine that sequences classification, response generation,
// quiz offers, and reward grants, and persists the transcript.
package mentor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Aditi-N-28/ArthaMind/internal/docstore"
	"github.com/Aditi-N-28/ArthaMind/internal/topics"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one transcript entry.
type ChatMessage struct {
	ID        string       `json:"id"`
	Role      string       `json:"role"`
	Content   string       `json:"content"`
	Timestamp int64        `json:"timestamp"` // unix millis
	TopicTag  topics.Topic `json:"topicTag,omitempty"`
}

// transcriptDoc is the users/{uid}/chat/history document.
type transcriptDoc struct {
	Messages []ChatMessage `json:"messages"`
}

const welcomeText = "Hello! I'm Maarg, your AI financial mentor. I'm here to help you make smarter money decisions. Ask me anything about investments, savings, loans, or financial planning!"

// TranscriptRepo loads and saves chat transcripts.
type TranscriptRepo struct {
	store docstore.Store
}

func NewTranscriptRepo(store docstore.Store) *TranscriptRepo {
	return &TranscriptRepo{store: store}
}

// Load returns the user's transcript. A user with no history gets a
// fresh transcript seeded with the welcome message; it is not persisted
// until the first exchange.
func (r *TranscriptRepo) Load(ctx context.Context, userID string) ([]ChatMessage, error) {
	raw, err := r.store.Get(ctx, userID, docstore.PathChatHistory)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return []ChatMessage{newMessage(RoleAssistant, welcomeText, time.Now())}, nil
		}
		return nil, fmt.Errorf("loading chat history: %w", err)
	}

	var doc transcriptDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding chat history: %w", err)
	}
	if len(doc.Messages) == 0 {
		return []ChatMessage{newMessage(RoleAssistant, welcomeText, time.Now())}, nil
	}
	return doc.Messages, nil
}

// Save merge-writes the full transcript array.
func (r *TranscriptRepo) Save(ctx context.Context, userID string, msgs []ChatMessage) error {
	return r.store.Set(ctx, userID, docstore.PathChatHistory, transcriptDoc{Messages: msgs}, docstore.SetOptions{Merge: true})
}

func newMessage(role, content string, at time.Time) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: at.UnixMilli(),
	}
}
