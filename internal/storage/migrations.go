package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the schema version Migrate must reach.
const ExpectedSchemaVersion = 3

// Migration moves the schema from Version-1 to Version inside a transaction.
type Migration struct {
	Up          func(ctx context.Context, tx *sql.Tx) error
	Description string
	Version     int
}

func execAll(ctx context.Context, tx *sql.Tx, queries ...string) error {
	for _, q := range queries {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial applicant schema",
		Up: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx,
				`CREATE TABLE IF NOT EXISTS applicants (
					id TEXT PRIMARY KEY,
					position INTEGER NOT NULL,
					name TEXT NOT NULL,
					phone TEXT NOT NULL,
					email TEXT NOT NULL,
					job_position TEXT NOT NULL,
					status TEXT NOT NULL,
					address TEXT NOT NULL,
					rating INTEGER NOT NULL DEFAULT 0,
					tags TEXT,
					created_at INTEGER NOT NULL
				)`,
				`CREATE INDEX idx_applicants_position ON applicants(position)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Add avatar path",
		Up: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, `ALTER TABLE applicants ADD COLUMN avatar_path TEXT NOT NULL DEFAULT ''`)
		},
	},
	{
		Version:     3,
		Description: "Enforce unique applicant names",
		Up: func(ctx context.Context, tx *sql.Tx) error {
			return execAll(ctx, tx, `CREATE UNIQUE INDEX idx_applicants_name ON applicants(lower(trim(name)))`)
		},
	},
}

// Migrate applies every pending migration in order, each in its own
// transaction, and checks that the schema ends at ExpectedSchemaVersion.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	pending, err := s.PendingMigrations(ctx)
	if err != nil {
		return err
	}

	for _, m := range pending {
		if err := s.apply(ctx, m); err != nil {
			return err
		}
		slog.Info("Applied migration", "version", m.Version, "description", m.Description)
	}

	version, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if version != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, version)
	}
	return nil
}

func (s *SQLiteStorage) apply(ctx context.Context, m Migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := m.Up(ctx, tx); err != nil {
		return fmt.Errorf("migration %d failed: %w", m.Version, err)
	}
	// PRAGMA does not accept bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
		return fmt.Errorf("failed to update schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}

// PendingMigrations lists the migrations not yet applied.
func (s *SQLiteStorage) PendingMigrations(ctx context.Context) ([]Migration, error) {
	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return nil, err
	}
	var pending []Migration
	for _, m := range migrations {
		if m.Version > currentVersion {
			pending = append(pending, m)
		}
	}
	return pending, nil
}
