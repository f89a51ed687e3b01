package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// timeLayout is fixed-width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// RelayLogRepo provides methods for relay log operations.
type RelayLogRepo struct {
	db *sql.DB
}

// NewRelayLogRepo creates a new RelayLogRepo.
func NewRelayLogRepo(db *sql.DB) *RelayLogRepo {
	return &RelayLogRepo{db: db}
}

// Record inserts a relay record.
func (r *RelayLogRepo) Record(ctx context.Context, rec RelayRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO relay_log (id, request_id, message_count, outcome, reply_length, duration_ms, error_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, nullString(rec.RequestID), rec.MessageCount, rec.Outcome, rec.ReplyLength, rec.DurationMS,
		nullString(rec.ErrorMessage), createdAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert relay record: %w", err)
	}
	return nil
}

// GetByID returns the relay record with the given ID, or sql.ErrNoRows.
func (r *RelayLogRepo) GetByID(ctx context.Context, id string) (RelayRecord, error) {
	var rec RelayRecord
	var requestID, errMsg sql.NullString
	var createdAt string

	err := r.db.QueryRowContext(ctx,
		`SELECT id, request_id, message_count, outcome, reply_length, duration_ms, error_message, created_at
		 FROM relay_log WHERE id = ?`,
		id,
	).Scan(&rec.ID, &requestID, &rec.MessageCount, &rec.Outcome, &rec.ReplyLength, &rec.DurationMS, &errMsg, &createdAt)
	if err != nil {
		return RelayRecord{}, err
	}

	rec.RequestID = requestID.String
	rec.ErrorMessage = errMsg.String
	rec.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return RelayRecord{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return rec, nil
}

// Summary aggregates all relay records by outcome.
func (r *RelayLogRepo) Summary(ctx context.Context) (RelaySummary, error) {
	var summary RelaySummary
	var lastRelay sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
			MAX(created_at)
		 FROM relay_log`,
		OutcomeOK, OutcomeInvalid, OutcomeProviderError,
	).Scan(&summary.Total, &summary.OK, &summary.Invalid, &summary.ProviderErrors, &lastRelay)
	if err != nil {
		return RelaySummary{}, fmt.Errorf("failed to summarize relay log: %w", err)
	}

	if lastRelay.Valid {
		t, err := time.Parse(timeLayout, lastRelay.String)
		if err != nil {
			return RelaySummary{}, fmt.Errorf("failed to parse created_at: %w", err)
		}
		summary.LastRelayAt = &t
	}

	return summary, nil
}

// Ping verifies the database is reachable.
func (r *RelayLogRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
