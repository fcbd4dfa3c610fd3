// Package model defines data structures for the waitlist platform.
package model

import (
	"time"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in a conversation. Messages are immutable
// once appended to a conversation's history.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id,omitempty"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	Sequence       uint64    `json:"sequence,omitempty"`
}

// Conversation describes a chat-widget session.
type Conversation struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	MessageCount  int       `json:"message_count"`
	EmailCaptured bool      `json:"email_captured"`
	AwaitingReply bool      `json:"awaiting_reply"`
}

// SendMessageRequest is the request to send a new chat message.
type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessageResponse is returned immediately after a submit is
// accepted; the assistant reply appears in the history later.
type SendMessageResponse struct {
	Message       *Message `json:"message"`
	AwaitingReply bool     `json:"awaiting_reply"`
}

// ListMessagesResponse is the response for listing conversation messages.
type ListMessagesResponse struct {
	Messages      []Message `json:"messages"`
	AwaitingReply bool      `json:"awaiting_reply"`
	LastSequence  uint64    `json:"last_sequence"`
}

// ChatRequest is the request body for the stateless chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply from the stateless chat endpoint.
type ChatResponse struct {
	Message string `json:"message"`
	Intent  string `json:"intent"`
}
