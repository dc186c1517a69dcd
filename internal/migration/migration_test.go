package migration

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

var testMigrations = []Migration{
	{Version: 1, Name: "create_test", SQL: "CREATE TABLE test (id INTEGER);"},
	{Version: 2, Name: "add_column", SQL: "ALTER TABLE test ADD COLUMN name TEXT;"},
}

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetCurrentVersion_FreshDatabase(t *testing.T) {
	runner := NewRunner(setupTestDB(t), testMigrations)

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 on fresh database, got %d", version)
	}
}

func TestApplyMigrations(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, testMigrations)

	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 applied migrations, got %d", applied)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatal(err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	// Schema actually changed
	if _, err := db.Exec("INSERT INTO test (id, name) VALUES (1, 'a')"); err != nil {
		t.Errorf("migrated schema not usable: %v", err)
	}
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	runner := NewRunner(setupTestDB(t), testMigrations)

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatal(err)
	}
	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected no pending migrations on second run, got %d", applied)
	}
}

func TestApplyMigrations_PartialUpgrade(t *testing.T) {
	db := setupTestDB(t)

	// Apply only v1, then hand the full set to a new runner
	first := NewRunner(db, testMigrations[:1])
	if _, err := first.ApplyMigrations(nil); err != nil {
		t.Fatal(err)
	}

	second := NewRunner(db, testMigrations)
	applied, err := second.ApplyMigrations(nil)
	if err != nil {
		t.Fatal(err)
	}
	if applied != 1 {
		t.Errorf("expected 1 pending migration, got %d", applied)
	}
}

func TestValidateVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, testMigrations)

	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected outdated schema to fail validation")
	}

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatal(err)
	}
	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("up-to-date schema failed validation: %v", err)
	}

	// A database from a newer binary must also be rejected
	if err := runner.SetVersion(99); err != nil {
		t.Fatal(err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected too-new schema to fail validation")
	}
}
