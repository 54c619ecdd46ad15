// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/tomtom215/playadb/internal/metrics"
	"github.com/tomtom215/playadb/internal/models"
)

// FavoriteFlag returns the stored favorite flag for ref. A ref that was
// never toggled is not a favorite.
func FavoriteFlag(ctx context.Context, q Querier, ref models.EntityRef) (bool, error) {
	start := time.Now()
	var flag bool
	err := q.QueryRowContext(ctx,
		"SELECT is_favorite FROM favorites WHERE uid = ? AND object_type = ?",
		ref.UID, string(ref.Type)).Scan(&flag)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
	}
	metrics.RecordDBQuery("get", TableFavorites, time.Since(start), err)
	if err != nil {
		return false, storageErr("get favorite", err)
	}
	return flag, nil
}

// SetFavoriteFlag stores the favorite flag for ref.
func SetFavoriteFlag(ctx context.Context, q Querier, ref models.EntityRef, flag bool) error {
	start := time.Now()
	_, err := q.ExecContext(ctx,
		"INSERT OR REPLACE INTO favorites (uid, object_type, is_favorite) VALUES (?, ?, ?)",
		ref.UID, string(ref.Type), flag)
	metrics.RecordDBQuery("upsert", TableFavorites, time.Since(start), err)
	return storageErr("set favorite", err)
}

// IsFavorite reads the favorite flag for ref from the committed state.
func (db *DB) IsFavorite(ctx context.Context, ref models.EntityRef) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return FavoriteFlag(ctx, db.conn, ref)
}

// ListFavoriteRefs returns every ref currently flagged as favorite, whether
// or not the object still exists.
func (db *DB) ListFavoriteRefs(ctx context.Context) ([]models.EntityRef, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	return queryList(ctx, db.conn, "list", TableFavorites,
		`SELECT uid, object_type FROM favorites WHERE is_favorite
		ORDER BY CASE object_type WHEN 'art' THEN 0 WHEN 'camp' THEN 1 ELSE 2 END, uid`,
		nil, func(row rowScanner) (models.EntityRef, error) {
			var (
				ref        models.EntityRef
				objectType string
			)
			if err := row.Scan(&ref.UID, &objectType); err != nil {
				return ref, err
			}
			ref.Type = models.ObjectType(objectType)
			return ref, nil
		})
}
