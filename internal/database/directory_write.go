// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package database

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/playadb/internal/database/query"
	"github.com/tomtom215/playadb/internal/metrics"
	"github.com/tomtom215/playadb/internal/models"
)

// deleteBatchSize caps the number of bound uids per DELETE statement.
const deleteBatchSize = 500

func upsertSQL(table, columns string) string {
	n := strings.Count(columns, ",") + 1
	return fmt.Sprintf("INSERT OR REPLACE INTO %s (%s) VALUES (%s)", table, columns, query.Placeholders(n))
}

// execBatch prepares sqlText once and executes it for every argument row.
func execBatch(ctx context.Context, q Querier, table, sqlText string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	start := time.Now()
	err := func() error {
		stmt, err := q.PrepareContext(ctx, sqlText)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer closeWithLog(stmt, "prepared statement")

		for i, args := range rows {
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
		}
		return nil
	}()
	metrics.RecordDBQuery("upsert", table, time.Since(start), err)
	return storageErr("upsert "+table, err)
}

// UpsertArt writes art rows with full-row replace semantics.
func UpsertArt(ctx context.Context, q Querier, art []models.ArtObject) error {
	rows := make([][]any, len(art))
	for i := range art {
		rows[i] = artArgs(&art[i])
	}
	return execBatch(ctx, q, TableArt, upsertSQL(TableArt, artColumns), rows)
}

// UpsertCamps writes camp rows with full-row replace semantics.
func UpsertCamps(ctx context.Context, q Querier, camps []models.CampObject) error {
	rows := make([][]any, len(camps))
	for i := range camps {
		rows[i] = campArgs(&camps[i])
	}
	return execBatch(ctx, q, TableCamps, upsertSQL(TableCamps, campColumns), rows)
}

// UpsertEvents writes event rows with full-row replace semantics.
func UpsertEvents(ctx context.Context, q Querier, events []models.EventObject) error {
	rows := make([][]any, len(events))
	for i := range events {
		rows[i] = eventArgs(&events[i])
	}
	return execBatch(ctx, q, TableEvents, upsertSQL(TableEvents, eventColumns), rows)
}

// existingKeys returns every value of column in table as seen by q.
func existingKeys(ctx context.Context, q Querier, table, column string) (map[string]struct{}, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM %s", column, table))
	if err != nil {
		return nil, storageErr("scan "+table, err)
	}
	defer closeQuietly(rows)

	keys := make(map[string]struct{})
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, storageErr("scan "+table, err)
		}
		keys[k] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("scan "+table, err)
	}
	return keys, nil
}

// deleteKeys removes rows of table whose column value is in keys.
func deleteKeys(ctx context.Context, q Querier, table, column string, keys []string) error {
	start := time.Now()
	var err error
	for lo := 0; lo < len(keys) && err == nil; lo += deleteBatchSize {
		hi := lo + deleteBatchSize
		if hi > len(keys) {
			hi = len(keys)
		}
		where, args := query.NewWhereBuilder().AddIn(column, keys[lo:hi]).BuildWithPrefix()
		_, err = q.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s %s", table, where), args...)
	}
	metrics.RecordDBQuery("delete", table, time.Since(start), err)
	return storageErr("delete "+table, err)
}

// DeleteMissing deletes rows of an entity table whose uid is not in keep and
// returns how many were removed.
func DeleteMissing(ctx context.Context, q Querier, table string, keep []string) (int, error) {
	switch table {
	case TableArt, TableCamps, TableEvents:
	default:
		return 0, fmt.Errorf("DeleteMissing: %q is not an entity table", table)
	}

	existing, err := existingKeys(ctx, q, table, "uid")
	if err != nil {
		return 0, err
	}
	for _, uid := range keep {
		delete(existing, uid)
	}
	if len(existing) == 0 {
		return 0, nil
	}

	stale := sortedKeys(existing)
	if err := deleteKeys(ctx, q, table, "uid", stale); err != nil {
		return 0, err
	}
	return len(stale), nil
}

// ReplaceOccurrences makes event_occurrences hold exactly occs. Rows whose
// id is not in occs are deleted and new ids inserted. Occurrence ids are
// derived from their content, so an id already present is left untouched.
func ReplaceOccurrences(ctx context.Context, q Querier, occs []models.EventOccurrence) (inserted, deleted int, err error) {
	existing, err := existingKeys(ctx, q, TableOccurrences, "id")
	if err != nil {
		return 0, 0, err
	}

	var rows [][]any
	for i := range occs {
		o := &occs[i]
		if _, ok := existing[o.ID]; ok {
			delete(existing, o.ID)
			continue
		}
		rows = append(rows, []any{o.ID, o.EventID, o.Seq, o.StartTime.UTC(), o.EndTime.UTC()})
	}

	if len(existing) > 0 {
		if err := deleteKeys(ctx, q, TableOccurrences, "id", sortedKeys(existing)); err != nil {
			return 0, 0, err
		}
	}

	sqlText := fmt.Sprintf("INSERT INTO event_occurrences (%s) VALUES (%s) ON CONFLICT (id) DO NOTHING",
		occurrenceColumns, query.Placeholders(5))
	if err := execBatch(ctx, q, TableOccurrences, sqlText, rows); err != nil {
		return 0, 0, err
	}
	return len(rows), len(existing), nil
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
