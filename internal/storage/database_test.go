package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
)

// newTestDB opens a migrated database in a temp directory.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "valid path",
			path:    dbPath,
			wantErr: false,
		},
		{
			name:    "invalid path",
			path:    "/invalid/path/to/db.db",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := New(tt.path)

			if tt.wantErr {
				if err == nil {
					t.Errorf("New() expected error, got nil")
				}
				if db != nil {
					_ = db.Close()
				}
				return
			}

			if err != nil {
				t.Errorf("New() unexpected error: %v", err)
				return
			}

			if db == nil {
				t.Fatal("New() returned nil database")
			}

			// Verify connection pool settings
			if db.Stats().MaxOpenConnections != 25 {
				t.Errorf("New() MaxOpenConnections = %v, want 25", db.Stats().MaxOpenConnections)
			}

			_ = db.Close()
		})
	}
}

func TestNew_EnablesWAL(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("Failed to read journal mode: %v", err)
	}
	if !strings.EqualFold(mode, "wal") {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestMigrate(t *testing.T) {
	db := newTestDB(t)

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='relay_log'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check table relay_log: %v", err)
	}
	if count != 1 {
		t.Error("Migrate() table relay_log not created")
	}

	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_relay_log_created_at'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check index: %v", err)
	}
	if count != 1 {
		t.Error("Migrate() index idx_relay_log_created_at not created")
	}

	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_relay_log_request_id'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check index: %v", err)
	}
	if count != 1 {
		t.Error("Migrate() index idx_relay_log_request_id not created")
	}
}

func TestMigrate_AddsRequestIDColumn(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "legacy.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// relay_log as it looked before request_id was split from id
	_, err = db.Exec(`CREATE TABLE relay_log (
		id TEXT PRIMARY KEY,
		message_count INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		reply_length INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		error_message TEXT,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		t.Fatalf("Failed to create legacy table: %v", err)
	}
	_, err = db.Exec(`INSERT INTO relay_log (id, message_count, outcome, created_at)
		VALUES ('legacy-1', 2, 'ok', '2026-10-01T08:00:00.000000Z')`)
	if err != nil {
		t.Fatalf("Failed to insert legacy row: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() second run error = %v", err)
	}

	repo := NewRelayLogRepo(db)
	got, err := repo.GetByID(context.Background(), "legacy-1")
	if err != nil {
		t.Fatalf("GetByID() legacy row error = %v", err)
	}
	if got.RequestID != "" || got.MessageCount != 2 {
		t.Errorf("GetByID() legacy row = %+v", got)
	}

	if err := repo.Record(context.Background(), RelayRecord{ID: "new-1", RequestID: "req-1", Outcome: OutcomeOK}); err != nil {
		t.Fatalf("Record() after upgrade error = %v", err)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() second run error = %v", err)
	}

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='relay_log'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check table relay_log: %v", err)
	}
	if count != 1 {
		t.Error("Migrate() table relay_log not found after second run")
	}
}

func TestMigrate_NoContentColumns(t *testing.T) {
	db := newTestDB(t)

	var schema string
	if err := db.QueryRow("SELECT sql FROM sqlite_master WHERE type='table' AND name='relay_log'").Scan(&schema); err != nil {
		t.Fatalf("Failed to get relay_log schema: %v", err)
	}
	for _, col := range []string{"content", "messages", "reply TEXT"} {
		if strings.Contains(schema, col) {
			t.Errorf("relay_log schema should not store conversation text, found %q", col)
		}
	}
}
