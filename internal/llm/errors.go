package llm

import (
	"errors"
	"fmt"

	openai "github.com/openai/openai-go/v3"
	"github.com/tidwall/gjson"
)

// APIError is an error response returned by the completion provider.
type APIError struct {
	StatusCode int
	Type       string
	// Message is the provider's nested error.message, empty when the body had none.
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("provider returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider returned %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// translateError converts SDK errors into *APIError. Transport errors are
// wrapped and returned unchanged otherwise.
func translateError(err error) error {
	var sdkErr *openai.Error
	if !errors.As(err, &sdkErr) {
		return fmt.Errorf("failed to send request: %w", err)
	}

	apiErr := &APIError{
		StatusCode: sdkErr.StatusCode,
		Type:       sdkErr.Type,
		Message:    sdkErr.Message,
		Err:        err,
	}
	if apiErr.Message == "" {
		apiErr.Message = nestedField(sdkErr.RawJSON(), "message")
	}
	if apiErr.Type == "" {
		apiErr.Type = nestedField(sdkErr.RawJSON(), "type")
	}
	return apiErr
}

// nestedField reads error.<name> from a provider error body, or <name> when
// raw is already the inner error object.
func nestedField(raw, name string) string {
	if v := gjson.Get(raw, "error."+name); v.Exists() {
		return v.String()
	}
	return gjson.Get(raw, name).String()
}
