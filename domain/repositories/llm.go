package repositories

import (
	"context"
	"encoding/json"
)

// LargeLanguageModel abstracts any chat/LLM provider.
type LargeLanguageModel interface {
	// Complete sends the messages to the provider and returns the reply.
	Complete(ctx context.Context, messages []ChatMessage) (Reply, error)
}

// ModelResolver selects the model for a provider name. Resolution fails
// with a configuration error when the provider's key is not set.
type ModelResolver interface {
	Model(provider string) (LargeLanguageModel, error)
}

// Reply carries the extracted reply text together with the provider's raw
// response so proxy endpoints can return it verbatim.
type Reply struct {
	Text string
	Raw  json.RawMessage
}

// ChatMessage is a single message exchanged with a model.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Role defines the type of message sender.
type Role string

const (
	UserRole      Role = "user"
	AssistantRole Role = "assistant"
)
