// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/playadb/internal/metrics"
	"github.com/tomtom215/playadb/internal/models"
)

// defaultQueryTimeout bounds storage calls whose context has no deadline.
const defaultQueryTimeout = 30 * time.Second

// ensureContext creates a context with 30-second timeout if none provided
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), defaultQueryTimeout)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, defaultQueryTimeout)
	}

	return ctx, func() {}
}

// Checkpoint flushes the write-ahead log into the database file.
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx, "CHECKPOINT")
	if err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// GetDatabasePath returns the configured database path.
func (db *DB) GetDatabasePath() string {
	if db.cfg == nil {
		return ""
	}
	return db.cfg.Path
}

// RecordCounts holds the row count of every directory table.
type RecordCounts struct {
	Art         int `json:"art"`
	Camps       int `json:"camps"`
	Events      int `json:"events"`
	Occurrences int `json:"occurrences"`
	Favorites   int `json:"favorites"`
}

// GetRecordCounts returns the row count of every directory table.
func (db *DB) GetRecordCounts(ctx context.Context) (*RecordCounts, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	counts := &RecordCounts{}
	targets := []struct {
		table string
		dst   *int
	}{
		{TableArt, &counts.Art},
		{TableCamps, &counts.Camps},
		{TableEvents, &counts.Events},
		{TableOccurrences, &counts.Occurrences},
		{TableFavorites, &counts.Favorites},
	}

	for _, target := range targets {
		n, err := countRows(ctx, db.conn, target.table)
		if err != nil {
			return nil, err
		}
		*target.dst = n
	}
	return counts, nil
}

// CountRows returns the number of rows in table.
func (db *DB) CountRows(ctx context.Context, table string) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return countRows(ctx, db.conn, table)
}

// CountRowsTx counts rows in table as seen by q.
func CountRowsTx(ctx context.Context, q Querier, table string) (int, error) {
	return countRows(ctx, q, table)
}

func countRows(ctx context.Context, q Querier, table string) (int, error) {
	if !knownTable(table) {
		return 0, fmt.Errorf("unknown table %q", table)
	}

	start := time.Now()
	var n int
	err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	metrics.RecordDBQuery("count", table, time.Since(start), err)
	if err != nil {
		return 0, storageErr("count "+table, err)
	}
	return n, nil
}

func knownTable(table string) bool {
	switch table {
	case TableArt, TableCamps, TableEvents, TableOccurrences, TableUpdateInfo, TableFavorites:
		return true
	}
	return false
}

// TableFor returns the entity table holding objects of type t.
func TableFor(t models.ObjectType) (string, error) {
	switch t {
	case models.ObjectTypeArt:
		return TableArt, nil
	case models.ObjectTypeCamp:
		return TableCamps, nil
	case models.ObjectTypeEvent:
		return TableEvents, nil
	}
	return "", fmt.Errorf("no table for object type %q", t)
}
