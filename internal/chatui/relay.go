package chatui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// ErrMissingReply is returned when a successful response carries no reply.
var ErrMissingReply = errors.New("response has no reply")

// RelayError is a non-200 response from the relay endpoint.
type RelayError struct {
	StatusCode int
	// Message is the server's error text, empty when the body had none.
	Message string
}

func (e *RelayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay returned %d", e.StatusCode)
	}
	return fmt.Sprintf("relay returned %d: %s", e.StatusCode, e.Message)
}

// HTTPRelay posts the conversation to a ReUpyog server's /api/chat endpoint.
type HTTPRelay struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPRelay creates a relay client for the server at baseURL. Requests
// have no timeout.
func NewHTTPRelay(baseURL string) *HTTPRelay {
	return &HTTPRelay{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{},
	}
}

type relayRequest struct {
	Messages []Message `json:"messages"`
}

// Send posts history and returns the reply text.
func (r *HTTPRelay) Send(ctx context.Context, history []Message) (string, error) {
	if history == nil {
		history = []Message{}
	}
	body, err := json.Marshal(relayRequest{Messages: history})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &RelayError{
			StatusCode: resp.StatusCode,
			Message:    gjson.GetBytes(data, "error").String(),
		}
	}

	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("invalid response body: %q", truncate(string(data), 120))
	}
	reply := gjson.GetBytes(data, "reply")
	if !reply.Exists() {
		return "", ErrMissingReply
	}
	return reply.String(), nil
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
