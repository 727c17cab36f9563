// Package session defines the conversation data model shared by the workflow
// engine and the front-ends.
//
// A conversation is an ordered, append-only sequence of role-tagged messages.
// The sequence is owned by the caller: the workflow engine receives it by
// value and returns a new slice with messages appended, so two sessions can
// never alias each other's history.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a message.
type Role string

// Valid message roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation entry. Immutable once created; ordering
// within a conversation is significant and must be preserved exactly.
type Message struct {
	Role    Role
	Content string
}

// System returns a system message.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// User returns a user message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Assistant returns an assistant message.
func Assistant(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Session describes one conversation held by a front-end.
type Session struct {
	ID        uuid.UUID
	Title     string
	CreatedAt time.Time
	Messages  []Message
}

// NewSession creates an empty session with a fresh identifier.
func NewSession(title string) *Session {
	return &Session{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: time.Now(),
	}
}

// Append adds a user/assistant exchange to the session history.
func (s *Session) Append(userInput, assistantResponse string) {
	s.Messages = append(s.Messages, User(userInput), Assistant(assistantResponse))
}

// Replace swaps the session history for the slice returned by a workflow run.
func (s *Session) Replace(messages []Message) {
	s.Messages = messages
}

// Len returns the number of messages in the session.
func (s *Session) Len() int {
	return len(s.Messages)
}

// Clear removes all messages, keeping the session identity.
func (s *Session) Clear() {
	s.Messages = nil
}
