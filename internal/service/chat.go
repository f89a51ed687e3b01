package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_completion_client.go -package=mocks reupyog-ai/internal/service CompletionClient
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_relay_log.go -package=mocks reupyog-ai/internal/service RelayLog
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_service.go -package=mocks -mock_names=ChatService=MockChatService reupyog-ai/internal/service ChatService

import (
	"context"
	"time"

	"github.com/google/uuid"

	"reupyog-ai/internal/contextutil"
	"reupyog-ai/internal/llm"
	"reupyog-ai/internal/storage"
)

// SystemInstruction is sent as the first message of every completion request.
const SystemInstruction = `
You are ReUpyog's AI Assistant for https://reupyog.in.
Answer only about ReUpyog: refurbished products, buy-back, repair clinics, sustainability, orders/returns, and site help.
Be concise, friendly, and give step-by-step instructions when useful.
Prefer facts and links from reupyog.in (do not invent links). If unrelated, politely redirect to ReUpyog topics.`

// Generation parameters used for every relay call.
const (
	Model       = "gpt-4o"
	Temperature = 0.6
	MaxTokens   = 500
)

// CompletionClient is an interface for the completion provider.
// This interface is defined from the service layer's perspective (consumer-first).
type CompletionClient interface {
	// Complete sends the messages and returns the first choice's text.
	Complete(ctx context.Context, messages []llm.Message, params llm.Params) (string, error)
}

// RelayLog stores metadata about relay calls.
type RelayLog interface {
	Record(ctx context.Context, rec storage.RelayRecord) error
}

// Message is one conversation entry supplied by the caller.
type Message struct {
	Role    string
	Content string
}

// RelayRequest represents a chat relay request in the domain layer.
type RelayRequest struct {
	Messages []Message
}

// RelayResponse represents a chat relay response in the domain layer.
type RelayResponse struct {
	Reply string
}

// ChatService relays conversations to the completion provider.
type ChatService interface {
	// Relay prepends the system instruction to the conversation and returns the provider's reply.
	Relay(ctx context.Context, req RelayRequest) (RelayResponse, error)
	// Reject records a request whose message list could not be read and
	// returns the validation error to send back.
	Reject(ctx context.Context, cause error) error
}

// chatService implements ChatService.
type chatService struct {
	client   CompletionClient
	relayLog RelayLog
	now      func() time.Time
}

// NewChatService creates a new ChatService. relayLog may be nil.
func NewChatService(client CompletionClient, relayLog RelayLog) ChatService {
	return &chatService{
		client:   client,
		relayLog: relayLog,
		now:      time.Now,
	}
}

// Relay validates the conversation, forwards it to the provider and returns the reply.
func (s *chatService) Relay(ctx context.Context, req RelayRequest) (RelayResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)
	start := s.now()

	rec := s.newRecord(ctx, start)
	rec.MessageCount = len(req.Messages)

	if err := validateMessages(req.Messages); err != nil {
		logger.WarnContext(ctx, "invalid chat relay request", "error", err)
		rec.Outcome = storage.OutcomeInvalid
		rec.ErrorMessage = err.Message
		s.record(ctx, rec, start)
		return RelayResponse{}, err
	}

	reply, err := s.client.Complete(ctx, buildMessages(req.Messages), llm.Params{
		Model:       Model,
		MaxTokens:   MaxTokens,
		Temperature: Temperature,
	})
	if err != nil {
		msg := ProviderErrorMessage(err)
		logger.ErrorContext(ctx, "failed to get completion", "error", err, "message_count", len(req.Messages))
		rec.Outcome = storage.OutcomeProviderError
		rec.ErrorMessage = msg
		s.record(ctx, rec, start)
		return RelayResponse{}, &ProviderError{Message: msg, Err: err}
	}

	rec.Outcome = storage.OutcomeOK
	rec.ReplyLength = len(reply)
	s.record(ctx, rec, start)

	logger.InfoContext(ctx, "chat relay processed successfully", "message_count", len(req.Messages), "reply_length", len(reply))
	return RelayResponse{Reply: reply}, nil
}

// Reject records an invalid outcome for a request rejected before Relay.
func (s *chatService) Reject(ctx context.Context, cause error) error {
	start := s.now()
	verr := &ValidationError{Field: "messages", Message: MsgMessagesRequired}
	contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid chat relay request", "error", cause)

	rec := s.newRecord(ctx, start)
	rec.Outcome = storage.OutcomeInvalid
	rec.ErrorMessage = verr.Message
	s.record(ctx, rec, start)
	return verr
}

// newRecord starts a relay record. Each record gets its own ID because
// clients may resend the same request ID.
func (s *chatService) newRecord(ctx context.Context, start time.Time) storage.RelayRecord {
	return storage.RelayRecord{
		ID:        uuid.NewString(),
		RequestID: contextutil.RequestIDFromContext(ctx),
		CreatedAt: start.UTC(),
	}
}

// record writes rec to the relay log. Failures are logged only.
func (s *chatService) record(ctx context.Context, rec storage.RelayRecord, start time.Time) {
	if s.relayLog == nil {
		return
	}
	rec.DurationMS = s.now().Sub(start).Milliseconds()
	if err := s.relayLog.Record(ctx, rec); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to record relay", "error", err, "relay_id", rec.ID)
	}
}

// buildMessages prepends the system instruction to the caller's conversation.
func buildMessages(msgs []Message) []llm.Message {
	out := make([]llm.Message, 0, len(msgs)+1)
	out = append(out, llm.Message{Role: llm.RoleSystem, Content: SystemInstruction})
	for _, m := range msgs {
		out = append(out, llm.Message{Role: m.Role, Content: m.Content})
	}
	return out
}

func validateMessages(msgs []Message) *ValidationError {
	for _, m := range msgs {
		switch m.Role {
		case llm.RoleUser, llm.RoleAssistant, llm.RoleSystem:
		default:
			return &ValidationError{Field: "messages.role", Message: MsgUnsupportedRole}
		}
	}
	return nil
}
