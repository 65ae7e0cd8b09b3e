package db

import (
	"path/filepath"
	"testing"
)

func TestMigrationsUpAndDown(t *testing.T) {
	connection := filepath.Join(t.TempDir(), "data", "memento.db") + "?_pragma=foreign_keys(1)"

	database, err := Init("sqlite", connection)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer func() { _ = Close(database) }()

	err = RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	for _, table := range []string{"users", "albums", "album_members", "images", "audio"} {
		var count int
		err := database.Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = $1`, table)
		if err != nil {
			t.Fatalf("query for table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("expected table %s to exist", table)
		}
	}

	// Running again is a no-op.
	err = RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("second RunMigrations() error = %v", err)
	}

	err = MigrateDown(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("MigrateDown() error = %v", err)
	}

	var count int
	err = database.Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'images'`)
	if err != nil {
		t.Fatalf("query after down: %v", err)
	}
	if count != 0 {
		t.Error("expected images table to be dropped by the last down migration")
	}
}

func TestGetDialect(t *testing.T) {
	tests := map[string]string{
		"sqlite": "sqlite3",
		"pgx":    "postgres",
		"mysql":  "mysql",
	}
	for driver, want := range tests {
		if got := getDialect(driver); got != want {
			t.Errorf("getDialect(%q) = %q, want %q", driver, got, want)
		}
	}
}
