package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema versions:
// v1: single-row profile table
// v2: profile_history table, one row per saved revision
const CurrentSchemaVersion = 2

// migration upgrades a database from version-1 to version.
type migration struct {
	version     int
	description string
	stmts       []string
}

var migrations = []migration{
	{
		version:     1,
		description: "profile table",
		stmts: []string{`
		CREATE TABLE IF NOT EXISTS profile (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			revision TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			profile_json TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`},
	},
	{
		version:     2,
		description: "profile revision history",
		stmts: []string{`
		CREATE TABLE IF NOT EXISTS profile_history (
			revision TEXT PRIMARY KEY,
			completed INTEGER NOT NULL DEFAULT 0,
			profile_json TEXT NOT NULL,
			saved_at TEXT NOT NULL
		)`,
			`CREATE INDEX IF NOT EXISTS idx_profile_history_saved ON profile_history(saved_at)`,
		},
	},
}

// schemaVersion returns the recorded schema version, 0 for a new database.
func schemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_versions (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return 0, fmt.Errorf("failed to create schema_versions table: %w", err)
	}

	var version sql.NullInt64
	if err := db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_versions").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(version.Int64), nil
}

// migrate applies every pending migration, each in its own transaction.
func migrate(ctx context.Context, db *sql.DB) (from, to int, err error) {
	from, err = schemaVersion(ctx, db)
	if err != nil {
		return 0, 0, err
	}
	to = from
	for _, m := range migrations {
		if m.version <= from {
			continue
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return from, to, fmt.Errorf("failed to begin migration v%d: %w", m.version, err)
		}
		for _, stmt := range m.stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				tx.Rollback()
				return from, to, fmt.Errorf("migration v%d (%s): %w", m.version, m.description, err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.version, m.description); err != nil {
			tx.Rollback()
			return from, to, fmt.Errorf("failed to record schema version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return from, to, fmt.Errorf("failed to commit migration v%d: %w", m.version, err)
		}
		to = m.version
	}
	return from, to, nil
}
