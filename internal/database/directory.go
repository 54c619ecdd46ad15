// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/playadb/internal/database/query"
	"github.com/tomtom215/playadb/internal/metrics"
	"github.com/tomtom215/playadb/internal/models"
)

// queryList runs a SELECT and decodes every row with scan.
func queryList[T any](ctx context.Context, q Querier, op, table, sqlText string, args []any, scan func(rowScanner) (T, error)) ([]T, error) {
	start := time.Now()
	out, err := collectRows(ctx, q, sqlText, args, scan)
	metrics.RecordDBQuery(op, table, time.Since(start), err)
	if err != nil {
		return nil, storageErr(op+" "+table, err)
	}
	return out, nil
}

func collectRows[T any](ctx context.Context, q Querier, sqlText string, args []any, scan func(rowScanner) (T, error)) ([]T, error) {
	rows, err := q.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows)

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// ListArt returns every art object ordered by name.
func (db *DB) ListArt(ctx context.Context) ([]models.ArtObject, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return queryList(ctx, db.conn, "list", TableArt,
		"SELECT "+artColumns+" FROM art ORDER BY name, uid", nil, scanArt)
}

// ListCamps returns every camp ordered by name.
func (db *DB) ListCamps(ctx context.Context) ([]models.CampObject, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return queryList(ctx, db.conn, "list", TableCamps,
		"SELECT "+campColumns+" FROM camps ORDER BY name, uid", nil, scanCamp)
}

// ListEvents returns every event ordered by name.
func (db *DB) ListEvents(ctx context.Context) ([]models.EventObject, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return queryList(ctx, db.conn, "list", TableEvents,
		"SELECT "+eventColumns+" FROM events ORDER BY name, uid", nil, scanEvent)
}

// ArtByUIDs returns the art objects with the given uids. Unknown uids are
// skipped.
func (db *DB) ArtByUIDs(ctx context.Context, uids []string) ([]models.ArtObject, error) {
	if len(uids) == 0 {
		return []models.ArtObject{}, nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	where, args := query.NewWhereBuilder().AddIn("uid", uids).BuildWithPrefix()
	return queryList(ctx, db.conn, "get", TableArt,
		"SELECT "+artColumns+" FROM art "+where+" ORDER BY name, uid", args, scanArt)
}

// CampsByUIDs returns the camps with the given uids. Unknown uids are
// skipped.
func (db *DB) CampsByUIDs(ctx context.Context, uids []string) ([]models.CampObject, error) {
	if len(uids) == 0 {
		return []models.CampObject{}, nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	where, args := query.NewWhereBuilder().AddIn("uid", uids).BuildWithPrefix()
	return queryList(ctx, db.conn, "get", TableCamps,
		"SELECT "+campColumns+" FROM camps "+where+" ORDER BY name, uid", args, scanCamp)
}

// EventsByUIDs returns the events with the given uids. Unknown uids are
// skipped.
func (db *DB) EventsByUIDs(ctx context.Context, uids []string) ([]models.EventObject, error) {
	if len(uids) == 0 {
		return []models.EventObject{}, nil
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	where, args := query.NewWhereBuilder().AddIn("uid", uids).BuildWithPrefix()
	return queryList(ctx, db.conn, "get", TableEvents,
		"SELECT "+eventColumns+" FROM events "+where+" ORDER BY name, uid", args, scanEvent)
}

// GetEntities resolves refs into tagged entities, preserving the order of
// refs. Refs that no longer resolve are skipped.
func (db *DB) GetEntities(ctx context.Context, refs []models.EntityRef) ([]models.Entity, error) {
	byType := make(map[models.ObjectType][]string)
	for _, ref := range refs {
		byType[ref.Type] = append(byType[ref.Type], ref.UID)
	}

	found := make(map[models.EntityRef]models.Entity, len(refs))

	if uids := byType[models.ObjectTypeArt]; len(uids) > 0 {
		art, err := db.ArtByUIDs(ctx, uids)
		if err != nil {
			return nil, err
		}
		for i := range art {
			found[models.EntityRef{UID: art[i].UID, Type: models.ObjectTypeArt}] = models.NewArtEntity(&art[i])
		}
	}

	if uids := byType[models.ObjectTypeCamp]; len(uids) > 0 {
		camps, err := db.CampsByUIDs(ctx, uids)
		if err != nil {
			return nil, err
		}
		for i := range camps {
			found[models.EntityRef{UID: camps[i].UID, Type: models.ObjectTypeCamp}] = models.NewCampEntity(&camps[i])
		}
	}

	if uids := byType[models.ObjectTypeEvent]; len(uids) > 0 {
		events, err := db.EventsByUIDs(ctx, uids)
		if err != nil {
			return nil, err
		}
		for i := range events {
			found[models.EntityRef{UID: events[i].UID, Type: models.ObjectTypeEvent}] = models.NewEventEntity(&events[i])
		}
	}

	out := make([]models.Entity, 0, len(found))
	for _, ref := range refs {
		if e, ok := found[ref]; ok {
			out = append(out, e)
			delete(found, ref)
		}
	}
	return out, nil
}

// EventsOverlapping returns the events with at least one occurrence whose
// [start, end) interval intersects the half-open window [from, to).
func (db *DB) EventsOverlapping(ctx context.Context, from, to time.Time) ([]models.EventObject, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	where, args := query.NewWhereBuilder().
		AddTimeOverlap("o.start_time", "o.end_time", from, to).
		BuildWithPrefix()

	sqlText := fmt.Sprintf(`SELECT %s FROM events
		WHERE uid IN (SELECT o.event_id FROM event_occurrences o %s)
		ORDER BY name, uid`, eventColumns, where)
	return queryList(ctx, db.conn, "day", TableEvents, sqlText, args, scanEvent)
}

// OccurrencesOverlapping returns (event, occurrence) pairs whose occurrence
// intersects [from, to), ordered by start time and then source order.
func (db *DB) OccurrencesOverlapping(ctx context.Context, from, to time.Time) ([]models.EventWithOccurrence, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	where, args := query.NewWhereBuilder().
		AddTimeOverlap("o.start_time", "o.end_time", from, to).
		BuildWithPrefix()

	sqlText := fmt.Sprintf(`SELECT %s, %s
		FROM event_occurrences o JOIN events e ON e.uid = o.event_id
		%s
		ORDER BY o.start_time, o.seq, o.event_id`,
		prefixColumns("o", occurrenceColumns), prefixColumns("e", eventColumns), where)

	return queryList(ctx, db.conn, "day", TableOccurrences, sqlText, args, func(row rowScanner) (models.EventWithOccurrence, error) {
		var (
			pair models.EventWithOccurrence
			o    = &pair.Occurrence
		)
		dest := []any{&o.ID, &o.EventID, &o.Seq, &o.StartTime, &o.EndTime}
		ev, err := scanEvent(prefixScanner{row: row, prefix: dest})
		if err != nil {
			return pair, err
		}
		o.StartTime = o.StartTime.UTC()
		o.EndTime = o.EndTime.UTC()
		pair.Event = ev
		return pair, nil
	})
}

// OccurrencesForEvent returns the occurrences of one event in source order.
func (db *DB) OccurrencesForEvent(ctx context.Context, eventUID string) ([]models.EventOccurrence, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	where, args := query.NewWhereBuilder().AddEquals("event_id", eventUID).BuildWithPrefix()
	return queryList(ctx, db.conn, "get", TableOccurrences,
		"SELECT "+occurrenceColumns+" FROM event_occurrences "+where+" ORDER BY seq", args, scanOccurrence)
}

// EventsHostedBy returns the events hosted by a camp or located at an art
// object.
func (db *DB) EventsHostedBy(ctx context.Context, host models.EntityRef) ([]models.EventObject, error) {
	var column string
	switch host.Type {
	case models.ObjectTypeCamp:
		column = "hosted_by_camp"
	case models.ObjectTypeArt:
		column = "located_at_art"
	default:
		return []models.EventObject{}, nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	where, args := query.NewWhereBuilder().AddEquals(column, host.UID).BuildWithPrefix()
	return queryList(ctx, db.conn, "hosted", TableEvents,
		"SELECT "+eventColumns+" FROM events "+where+" ORDER BY name, uid", args, scanEvent)
}

// prefixScanner scans the leading prefix destinations before handing the
// remaining columns to an entity scanner.
type prefixScanner struct {
	row    rowScanner
	prefix []any
}

func (p prefixScanner) Scan(dest ...any) error {
	all := make([]any, 0, len(p.prefix)+len(dest))
	all = append(all, p.prefix...)
	all = append(all, dest...)
	return p.row.Scan(all...)
}

// prefixColumns qualifies every column in a comma separated list.
func prefixColumns(alias, columns string) string {
	names := strings.Split(columns, ",")
	for i, name := range names {
		names[i] = alias + "." + strings.TrimSpace(name)
	}
	return strings.Join(names, ", ")
}

var _ Querier = (*sql.DB)(nil)
var _ Querier = (*sql.Tx)(nil)
