package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
)

// Migration represents a single database schema migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Runner applies an ordered set of migrations and tracks the applied
// version in a schema_version table. The same runner serves both backends;
// migrations are plain DDL valid for sqlite and postgres alike.
type Runner struct {
	db         *sql.DB
	migrations []Migration
}

// NewRunner creates a new migration runner
func NewRunner(db *sql.DB, migrations []Migration) *Runner {
	return &Runner{db: db, migrations: migrations}
}

// EnsureSchemaVersionTable creates the schema_version table if it doesn't exist
func (r *Runner) EnsureSchemaVersionTable() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`)
	return err
}

// GetCurrentVersion returns the current schema version from the database.
// Returns 0 if no version is set (fresh database).
func (r *Runner) GetCurrentVersion() (int, error) {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return 0, fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	var version int
	err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

// SetVersion sets the current schema version in the database
func (r *Runner) SetVersion(version int) error {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	if _, err := r.db.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear version: %w", err)
	}
	if _, err := r.db.Exec(fmt.Sprintf("INSERT INTO schema_version (version) VALUES (%d)", version)); err != nil {
		return fmt.Errorf("failed to set version: %w", err)
	}
	return nil
}

// ApplyMigrations runs all pending migrations in version order. The logf
// callback receives a progress line per applied migration.
func (r *Runner) ApplyMigrations(logf func(msg string)) (int, error) {
	current, err := r.GetCurrentVersion()
	if err != nil {
		return 0, err
	}

	pending := make([]Migration, 0, len(r.migrations))
	for _, m := range r.migrations {
		if m.Version > current {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	applied := 0
	for _, m := range pending {
		if _, err := r.db.Exec(m.SQL); err != nil {
			return applied, fmt.Errorf("migration %03d_%s failed: %w", m.Version, m.Name, err)
		}
		if err := r.SetVersion(m.Version); err != nil {
			return applied, err
		}
		if logf != nil {
			logf(fmt.Sprintf("Applied migration %03d_%s", m.Version, m.Name))
		}
		applied++
	}

	return applied, nil
}

// LatestVersion returns the highest known migration version.
func (r *Runner) LatestVersion() int {
	latest := 0
	for _, m := range r.migrations {
		if m.Version > latest {
			latest = m.Version
		}
	}
	return latest
}

// ValidateVersion checks that the database schema matches the latest known
// migration. A database ahead of the binary is as fatal as one behind it.
func (r *Runner) ValidateVersion() error {
	current, err := r.GetCurrentVersion()
	if err != nil {
		return err
	}
	latest := r.LatestVersion()
	if current < latest {
		return fmt.Errorf("database schema is outdated (version %d, expected %d): run 'focusflow init'", current, latest)
	}
	if current > latest {
		return fmt.Errorf("database schema version %d is newer than this binary supports (%d)", current, latest)
	}
	return nil
}
