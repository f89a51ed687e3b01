// Package chatui is the client side of the chat relay: a conversation
// session, an HTTP relay client and a terminal UI.
package chatui

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// Roles of conversation entries.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one conversation entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RelayClient sends the conversation history and returns the assistant reply.
type RelayClient interface {
	Send(ctx context.Context, history []Message) (string, error)
}

// Session holds the local conversation. Submissions may overlap; replies are
// appended in arrival order.
type Session struct {
	relay  RelayClient
	logger *slog.Logger

	mu       sync.Mutex
	messages []Message
	typing   bool
}

// NewSession creates an empty session. A nil logger uses slog.Default.
func NewSession(relay RelayClient, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{relay: relay, logger: logger}
}

// Begin appends input as a user message and marks the session as typing.
// It returns a snapshot of the history to send, or false when input is blank.
func (s *Session) Begin(input string) ([]Message, bool) {
	if strings.TrimSpace(input) == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, Message{Role: RoleUser, Content: input})
	s.typing = true

	history := make([]Message, len(s.messages))
	copy(history, s.messages)
	return history, true
}

// Finish records the outcome of a relay call. The reply is appended only
// when err is nil. Typing is cleared either way.
func (s *Session) Finish(reply string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Error("chat relay failed", "error", err)
	} else {
		s.messages = append(s.messages, Message{Role: RoleAssistant, Content: reply})
	}
	s.typing = false
}

// Submit runs one turn: Begin, the relay call, Finish. Blank input is
// ignored. The relay error is returned after it has been logged.
func (s *Session) Submit(ctx context.Context, input string) error {
	history, ok := s.Begin(input)
	if !ok {
		return nil
	}
	reply, err := s.relay.Send(ctx, history)
	s.Finish(reply, err)
	return err
}

// Messages returns a copy of the conversation.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Typing reports whether a reply is awaited.
func (s *Session) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing
}
