package service

import (
	"errors"
	"fmt"

	"reupyog-ai/internal/llm"
)

// Messages returned to clients of the relay endpoint.
const (
	MsgMessagesRequired = "Invalid request. Messages are required."
	MsgUnsupportedRole  = "Invalid request. Unsupported message role."
	MsgProviderFallback = "Something went wrong. Please try again later."
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrExternalService is returned when the completion provider call fails.
	ErrExternalService = errors.New("external service error")
)

// ValidationError represents a validation error with a field name.
// Message is safe to show to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ProviderError is returned when the completion provider call fails.
// Message is what the caller sees: the provider's nested message or the fallback.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("completion provider failed: %v", e.Err)
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrExternalService
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ProviderErrorMessage extracts the provider's nested error message from err,
// falling back to a static string when none is present.
func ProviderErrorMessage(err error) string {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return MsgProviderFallback
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
