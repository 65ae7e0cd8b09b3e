// Package dbtest provides a migrated SQLite database for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/mementoapp/memento/internal/db"
)

// Connection returns a SQLite connection string for a fresh database file
// inside a per-test temp directory, with foreign keys enforced.
func Connection(t testing.TB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "memento.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

// New opens a fresh, fully migrated database that is closed when the test ends.
func New(t testing.TB) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", Connection(t))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return database
}
