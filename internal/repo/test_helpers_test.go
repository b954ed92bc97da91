package repo

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
)

// createTestDB opens a fresh database file with the schema applied.
func createTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.sqlite3")
	db, err := Open(context.Background(), Config{Path: path}, discardLogger())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema() failed: %v", err)
	}
	return db
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }
