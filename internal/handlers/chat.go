package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"reupyog-ai/internal/contextutil"
	"reupyog-ai/internal/service"
)

// ChatHandler handles HTTP requests for the chat relay.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ChatMessage is one conversation entry in the request payload.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents the HTTP request payload for chat.
// Messages is kept raw so that a missing field and a non-array value can be
// told apart from malformed elements.
type ChatRequest struct {
	Messages json.RawMessage `json:"messages"`
}

// ChatResponse represents the HTTP response payload for chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles HTTP requests for chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	messages, err := decodeMessages(r)
	if err != nil {
		h.handleServiceError(w, ctx, h.chatService.Reject(ctx, err))
		return
	}

	// Convert HTTP request to service request
	svcReq := service.RelayRequest{
		Messages: make([]service.Message, 0, len(messages)),
	}
	for _, m := range messages {
		svcReq.Messages = append(svcReq.Messages, service.Message{Role: m.Role, Content: m.Content})
	}

	svcResp, err := h.chatService.Relay(ctx, svcReq)
	if err != nil {
		h.handleServiceError(w, ctx, err)
		return
	}

	writeJSON(w, ctx, http.StatusOK, ChatResponse{Reply: svcResp.Reply})
}

var (
	errMessagesNotArray = errors.New("messages must be an array")
	errMessageNotObject = errors.New("messages must contain objects")
)

// decodeMessages reads the messages array from the request body. An
// unparsable body, a missing or null field, a non-array value and
// non-object elements are all rejected.
func decodeMessages(r *http.Request) ([]ChatMessage, error) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}

	raw := bytes.TrimSpace(req.Messages)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, errMessagesNotArray
	}

	var elems []*ChatMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, err
	}

	messages := make([]ChatMessage, 0, len(elems))
	for _, m := range elems {
		if m == nil {
			return nil, errMessageNotObject
		}
		messages = append(messages, *m)
	}
	return messages, nil
}

// handleServiceError maps service errors to HTTP status codes and responses.
func (h *ChatHandler) handleServiceError(w http.ResponseWriter, ctx context.Context, err error) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		logger.WarnContext(ctx, "chat request rejected", "error", err)
		writeError(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	logger.ErrorContext(ctx, "chat relay failed", "error", err)

	var providerErr *service.ProviderError
	if errors.As(err, &providerErr) {
		writeError(w, http.StatusInternalServerError, providerErr.Message)
		return
	}

	if errors.Is(err, service.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, service.MsgMessagesRequired)
		return
	}

	writeError(w, http.StatusInternalServerError, service.MsgProviderFallback)
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, ctx context.Context, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
