// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/playadb/internal/logging"
)

// Migration is one versioned schema change applied after the base tables.
type Migration struct {
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SQL         string    `json:"-"`
	AppliedAt   time.Time `json:"applied_at"`
}

const schemaMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// migrations lists every schema change in order. The list is append-only:
// a released entry is never edited or removed.
var migrations = []Migration{
	{
		Version:     1,
		Name:        "event_occurrences_event_index",
		Description: "Index occurrences by owning event",
		SQL:         `CREATE INDEX IF NOT EXISTS idx_event_occurrences_event ON event_occurrences(event_id);`,
	},
	{
		Version:     2,
		Name:        "event_occurrences_window_index",
		Description: "Index occurrences by time window for day queries",
		SQL:         `CREATE INDEX IF NOT EXISTS idx_event_occurrences_window ON event_occurrences(start_time, end_time);`,
	},
}

func scanMigration(row rowScanner) (Migration, error) {
	var m Migration
	err := row.Scan(&m.Version, &m.Name, &m.Description, &m.AppliedAt)
	return m, err
}

// runMigrations applies every migration not yet recorded in
// schema_migrations. Each migration and its bookkeeping row commit together.
func (db *DB) runMigrations() error {
	ctx, cancel := schemaContext()
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, schemaMigrationsTable); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	history, err := collectRows(ctx, db.conn,
		`SELECT version, name, COALESCE(description, ''), applied_at FROM schema_migrations ORDER BY version`,
		nil, scanMigration)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}
	applied := make(map[int]struct{}, len(history))
	for _, m := range history {
		applied[m.Version] = struct{}{}
	}

	newMigrations := 0
	for _, m := range migrations {
		if _, ok := applied[m.Version]; ok {
			continue
		}
		if err := db.applyMigration(ctx, m); err != nil {
			return err
		}
		newMigrations++
	}

	if newMigrations > 0 {
		logging.Info().Int("count", newMigrations).Int("version", migrations[len(migrations)-1].Version).
			Msg("Applied database migrations")
	}
	return nil
}

func (db *DB) applyMigration(ctx context.Context, m Migration) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration v%d: %w", m.Version, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return fmt.Errorf("failed to execute migration v%d (%s): %w", m.Version, m.Name, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, description) VALUES (?, ?, ?)`,
		m.Version, m.Name, m.Description); err != nil {
		return fmt.Errorf("failed to record migration v%d: %w", m.Version, err)
	}
	return tx.Commit()
}

// SchemaVersion returns the highest applied migration version.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var version int
	err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version)
	if err != nil {
		return 0, storageErr("schema version", err)
	}
	return version, nil
}

// MigrationHistory returns every applied migration in order.
func (db *DB) MigrationHistory(ctx context.Context) ([]Migration, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	return queryList(ctx, db.conn, "list", "schema_migrations",
		`SELECT version, name, COALESCE(description, ''), applied_at FROM schema_migrations ORDER BY version`,
		nil, scanMigration)
}
