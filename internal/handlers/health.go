package handlers

import (
	"context"
	"net/http"
	"time"

	"reupyog-ai/internal/contextutil"
	"reupyog-ai/internal/storage"
)

// RelayStats reports on the relay log database.
type RelayStats interface {
	Ping(ctx context.Context) error
	Summary(ctx context.Context) (storage.RelaySummary, error)
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	stats              RelayStats
	healthCheckTimeout time.Duration
	now                func() time.Time
}

// NewHealthHandler creates a new HealthHandler. stats may be nil when the
// relay log is disabled.
func NewHealthHandler(stats RelayStats) *HealthHandler {
	return &HealthHandler{
		stats:              stats,
		healthCheckTimeout: 5 * time.Second,
		now:                time.Now,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// Relay totals from the relay log, absent when it is disabled or unreachable
	Relays *storage.RelaySummary `json:"relays,omitempty"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
// Returns 200 OK if healthy, 503 Service Unavailable otherwise. The
// completion provider is not probed.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Checks:    make(map[string]string),
	}

	switch {
	case h.stats == nil:
		response.Checks["relay_log"] = "disabled"
	case h.stats.Ping(checkCtx) != nil:
		logger.WarnContext(ctx, "relay log health check failed")
		response.Checks["relay_log"] = "error"
		response.Issues = append(response.Issues, "relay_log_unavailable")
	default:
		response.Checks["relay_log"] = "ok"
		summary, err := h.stats.Summary(checkCtx)
		if err != nil {
			logger.WarnContext(ctx, "failed to summarize relay log", "error", err)
			response.Checks["relay_log"] = "error"
			response.Issues = append(response.Issues, "relay_log_unreadable")
		} else {
			response.Relays = &summary
		}
	}

	httpStatus := http.StatusOK
	if len(response.Issues) > 0 {
		response.Status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, ctx, httpStatus, response)
}
