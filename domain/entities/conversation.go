package entities

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// ConversationMessage is a single entry in a dashboard session's chat log.
type ConversationMessage struct {
	Role           MessageRole `json:"role"`
	Content        string      `json:"content"`
	SourceLanguage Language    `json:"source_language,omitempty"`
	TargetLanguage Language    `json:"target_language,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
}

// Conversation is an append-only message log scoped to one browser session.
// It lives in memory only and is never persisted server-side. Concurrent
// requests may share one session, so the log carries its own lock.
type Conversation struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	messages []ConversationMessage
}

// NewConversation creates an empty conversation with a fresh ID.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}
}

// Append adds a message to the log and returns it.
func (c *Conversation) Append(role MessageRole, content string, source, target Language) ConversationMessage {
	msg := ConversationMessage{
		Role:           role,
		Content:        content,
		SourceLanguage: source,
		TargetLanguage: target,
		Timestamp:      time.Now(),
	}
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
	return msg
}

// Messages returns a copy of the log, safe to read while appends continue.
func (c *Conversation) Messages() []ConversationMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ConversationMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the current number of messages.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}
