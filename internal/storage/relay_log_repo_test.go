package storage

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRelayLogRepo_RecordAndGet(t *testing.T) {
	repo := NewRelayLogRepo(newTestDB(t))
	ctx := context.Background()

	createdAt := time.Date(2026, 10, 18, 9, 30, 0, 123456000, time.UTC)
	rec := RelayRecord{
		ID:           uuid.NewString(),
		RequestID:    uuid.NewString(),
		MessageCount: 3,
		Outcome:      OutcomeProviderError,
		DurationMS:   812,
		ErrorMessage: "Incorrect API key provided",
		CreatedAt:    createdAt,
	}

	if err := repo.Record(ctx, rec); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != rec {
		t.Errorf("GetByID() = %+v, want %+v", got, rec)
	}
}

func TestRelayLogRepo_RecordDuplicateID(t *testing.T) {
	repo := NewRelayLogRepo(newTestDB(t))
	ctx := context.Background()

	rec := RelayRecord{ID: "dup", Outcome: OutcomeOK, CreatedAt: time.Now()}
	if err := repo.Record(ctx, rec); err != nil {
		t.Fatalf("Record() first insert error = %v", err)
	}
	if err := repo.Record(ctx, rec); err == nil {
		t.Error("Record() duplicate ID should fail")
	}
}

func TestRelayLogRepo_SharedRequestID(t *testing.T) {
	repo := NewRelayLogRepo(newTestDB(t))
	ctx := context.Background()

	requestID := uuid.NewString()
	records := []RelayRecord{
		{ID: uuid.NewString(), RequestID: requestID, MessageCount: 1, Outcome: OutcomeOK, CreatedAt: time.Now()},
		{ID: uuid.NewString(), RequestID: requestID, MessageCount: 3, Outcome: OutcomeOK, CreatedAt: time.Now()},
	}
	for _, rec := range records {
		if err := repo.Record(ctx, rec); err != nil {
			t.Fatalf("Record(%s) error = %v", rec.ID, err)
		}
	}

	for _, rec := range records {
		got, err := repo.GetByID(ctx, rec.ID)
		if err != nil {
			t.Fatalf("GetByID(%s) error = %v", rec.ID, err)
		}
		if got.RequestID != requestID || got.MessageCount != rec.MessageCount {
			t.Errorf("GetByID(%s) = %+v", rec.ID, got)
		}
	}

	summary, err := repo.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.Total != 2 {
		t.Errorf("Summary().Total = %d, want 2", summary.Total)
	}
}

func TestRelayLogRepo_GetByID_NotFound(t *testing.T) {
	repo := NewRelayLogRepo(newTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetByID() error = %v, want sql.ErrNoRows", err)
	}
}

func TestRelayLogRepo_Summary(t *testing.T) {
	repo := NewRelayLogRepo(newTestDB(t))
	ctx := context.Background()

	empty, err := repo.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary() on empty log error = %v", err)
	}
	if empty.Total != 0 || empty.LastRelayAt != nil {
		t.Errorf("Summary() on empty log = %+v", empty)
	}

	base := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	records := []RelayRecord{
		{ID: "a", Outcome: OutcomeOK, CreatedAt: base},
		{ID: "b", Outcome: OutcomeOK, CreatedAt: base.Add(500 * time.Millisecond)},
		{ID: "c", Outcome: OutcomeInvalid, CreatedAt: base.Add(time.Second)},
		{ID: "d", Outcome: OutcomeProviderError, CreatedAt: base.Add(2 * time.Second)},
	}
	for _, rec := range records {
		if err := repo.Record(ctx, rec); err != nil {
			t.Fatalf("Record(%s) error = %v", rec.ID, err)
		}
	}

	summary, err := repo.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.Total != 4 || summary.OK != 2 || summary.Invalid != 1 || summary.ProviderErrors != 1 {
		t.Errorf("Summary() = %+v", summary)
	}
	if summary.LastRelayAt == nil || !summary.LastRelayAt.Equal(base.Add(2*time.Second)) {
		t.Errorf("Summary().LastRelayAt = %v, want %v", summary.LastRelayAt, base.Add(2*time.Second))
	}
}

func TestRelayLogRepo_ConcurrentRecord(t *testing.T) {
	repo := NewRelayLogRepo(newTestDB(t))
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Record(ctx, RelayRecord{ID: uuid.NewString(), Outcome: OutcomeOK, CreatedAt: time.Now()})
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent Record() error = %v", err)
		}
	}

	summary, err := repo.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.Total != writers {
		t.Errorf("Summary().Total = %d, want %d", summary.Total, writers)
	}
}

func TestRelayLogRepo_Ping(t *testing.T) {
	db := newTestDB(t)
	repo := NewRelayLogRepo(db)

	if err := repo.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	_ = db.Close()
	if err := repo.Ping(context.Background()); err == nil {
		t.Error("Ping() on closed database should fail")
	}
}
