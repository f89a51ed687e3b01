package storage

import "time"

// Relay outcomes.
const (
	OutcomeOK            = "ok"
	OutcomeInvalid       = "invalid"
	OutcomeProviderError = "provider_error"
)

// RelayRecord is the metadata of one relay call. Message content is never stored.
type RelayRecord struct {
	ID           string // UUID, unique per record
	RequestID    string // X-Request-ID of the HTTP request; clients may reuse it
	MessageCount int    // Number of caller-supplied messages
	Outcome      string // One of the Outcome* constants
	ReplyLength  int
	DurationMS   int64
	ErrorMessage string // Message returned to the caller on failure
	CreatedAt    time.Time
}

// RelaySummary aggregates the relay log.
type RelaySummary struct {
	Total          int        `json:"total"`
	OK             int        `json:"ok"`
	Invalid        int        `json:"invalid"`
	ProviderErrors int        `json:"provider_errors"`
	LastRelayAt    *time.Time `json:"last_relay_at,omitempty"`
}
