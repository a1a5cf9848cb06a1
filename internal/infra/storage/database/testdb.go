package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/m04kA/ShareIt-BookingService/internal/config"
	"github.com/m04kA/ShareIt-BookingService/pkg/psqlbuilder"
)

// NewTestDB создает чистую sqlite базу во временном каталоге теста со схемой
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "shareit.db")
	db, err := Open(context.Background(), psqlbuilder.SQLite, config.SQLiteDSN(path), Options{MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := EnsureSchema(context.Background(), db, psqlbuilder.SQLite); err != nil {
		db.Close()
		t.Fatalf("creating test database schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}
