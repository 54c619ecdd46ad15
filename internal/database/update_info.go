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

const updateInfoColumns = "data_type, total_count, last_updated, fetch_date, fetch_status"

func scanUpdateInfo(row rowScanner) (models.UpdateInfo, error) {
	var (
		info                   models.UpdateInfo
		dataType, status       string
		lastUpdated, fetchDate sql.NullTime
	)
	if err := row.Scan(&dataType, &info.TotalCount, &lastUpdated, &fetchDate, &status); err != nil {
		return info, err
	}
	info.DataType = models.DataType(dataType)
	info.FetchStatus = models.FetchStatus(status)
	info.LastUpdated = timePtrFrom(lastUpdated)
	info.FetchDate = timePtrFrom(fetchDate)
	return info, nil
}

func timePtrFrom(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func timePtrArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

// UpdateInfoRows returns the stored bookkeeping rows, art first.
func UpdateInfoRows(ctx context.Context, q Querier) ([]models.UpdateInfo, error) {
	return queryList(ctx, q, "list", TableUpdateInfo,
		`SELECT `+updateInfoColumns+` FROM update_info
		ORDER BY CASE data_type WHEN 'art' THEN 0 WHEN 'camp' THEN 1 ELSE 2 END`,
		nil, scanUpdateInfo)
}

// UpdateInfoRow returns the bookkeeping row for dataType, or nil when none
// was written yet.
func UpdateInfoRow(ctx context.Context, q Querier, dataType models.DataType) (*models.UpdateInfo, error) {
	start := time.Now()
	info, err := scanUpdateInfo(q.QueryRowContext(ctx,
		"SELECT "+updateInfoColumns+" FROM update_info WHERE data_type = ?", string(dataType)))
	if errors.Is(err, sql.ErrNoRows) {
		metrics.RecordDBQuery("get", TableUpdateInfo, time.Since(start), nil)
		return nil, nil
	}
	metrics.RecordDBQuery("get", TableUpdateInfo, time.Since(start), err)
	if err != nil {
		return nil, storageErr("get update info", err)
	}
	return &info, nil
}

// PutUpdateInfo overwrites the bookkeeping row for info.DataType.
func PutUpdateInfo(ctx context.Context, q Querier, info *models.UpdateInfo) error {
	start := time.Now()
	_, err := q.ExecContext(ctx,
		"INSERT OR REPLACE INTO update_info ("+updateInfoColumns+") VALUES (?, ?, ?, ?, ?)",
		string(info.DataType), info.TotalCount, timePtrArg(info.LastUpdated), timePtrArg(info.FetchDate),
		string(info.FetchStatus))
	metrics.RecordDBQuery("upsert", TableUpdateInfo, time.Since(start), err)
	return storageErr("put update info", err)
}

// GetUpdateInfoRows reads the committed bookkeeping rows.
func (db *DB) GetUpdateInfoRows(ctx context.Context) ([]models.UpdateInfo, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return UpdateInfoRows(ctx, db.conn)
}

// GetUpdateInfoRow reads the committed bookkeeping row for dataType.
func (db *DB) GetUpdateInfoRow(ctx context.Context, dataType models.DataType) (*models.UpdateInfo, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return UpdateInfoRow(ctx, db.conn, dataType)
}
