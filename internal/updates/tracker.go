// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package updates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/playadb/internal/database"
	"github.com/tomtom215/playadb/internal/logging"
	"github.com/tomtom215/playadb/internal/models"
)

// ErrInvalidTransition is returned when a status change is not allowed by
// the fetch state machine.
var ErrInvalidTransition = errors.New("invalid fetch status transition")

// transitions lists the allowed fetch status changes. fetching -> fetching
// lets a new import recover a row left behind by a crashed process.
var transitions = map[models.FetchStatus][]models.FetchStatus{
	models.FetchStatusUnknown:  {models.FetchStatusFetching},
	models.FetchStatusFetching: {models.FetchStatusFetching, models.FetchStatusComplete, models.FetchStatusFailed},
	models.FetchStatusComplete: {models.FetchStatusFetching},
	models.FetchStatusFailed:   {models.FetchStatusFetching},
}

// CanTransition reports whether a row in status from may move to status to.
func CanTransition(from, to models.FetchStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Tracker reads and writes the per-data-type update bookkeeping.
// Only the importer calls the Mark* methods; everything else reads.
type Tracker struct {
	db  *database.DB
	now func() time.Time
}

// NewTracker creates a Tracker over db.
func NewTracker(db *database.DB) *Tracker {
	return &Tracker{db: db, now: time.Now}
}

// unknownInfo is the row reported for a data type that was never imported.
func unknownInfo(dt models.DataType) models.UpdateInfo {
	return models.UpdateInfo{DataType: dt, FetchStatus: models.FetchStatusUnknown}
}

// GetUpdateInfo returns exactly one row per data type in art, camp, event
// order. Data types without a stored row are reported as unknown with a
// zero count.
func (t *Tracker) GetUpdateInfo(ctx context.Context) ([]models.UpdateInfo, error) {
	rows, err := t.db.GetUpdateInfoRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read update info: %w", err)
	}

	byType := make(map[models.DataType]models.UpdateInfo, len(rows))
	for _, row := range rows {
		byType[row.DataType] = row
	}

	out := make([]models.UpdateInfo, 0, len(models.ObjectTypes))
	for _, dt := range models.ObjectTypes {
		if row, ok := byType[dt]; ok {
			out = append(out, row)
			continue
		}
		out = append(out, unknownInfo(dt))
	}
	return out, nil
}

// Get returns the row for one data type.
func (t *Tracker) Get(ctx context.Context, dt models.DataType) (*models.UpdateInfo, error) {
	if !dt.Valid() {
		return nil, fmt.Errorf("unknown data type %q", dt)
	}
	row, err := t.db.GetUpdateInfoRow(ctx, dt)
	if err != nil {
		return nil, fmt.Errorf("failed to read update info for %s: %w", dt, err)
	}
	if row == nil {
		info := unknownInfo(dt)
		return &info, nil
	}
	return row, nil
}

// current reads the row for dt inside q, defaulting to unknown.
func current(ctx context.Context, q database.Querier, dt models.DataType) (models.UpdateInfo, error) {
	row, err := database.UpdateInfoRow(ctx, q, dt)
	if err != nil {
		return models.UpdateInfo{}, err
	}
	if row == nil {
		return unknownInfo(dt), nil
	}
	return *row, nil
}

// transition moves dt to status inside q, applying mutate to the row.
func transition(ctx context.Context, q database.Querier, dt models.DataType, to models.FetchStatus, mutate func(*models.UpdateInfo)) error {
	info, err := current(ctx, q, dt)
	if err != nil {
		return err
	}
	if !CanTransition(info.FetchStatus, to) {
		return fmt.Errorf("%w: %s %s -> %s", ErrInvalidTransition, dt, info.FetchStatus, to)
	}

	info.FetchStatus = to
	if mutate != nil {
		mutate(&info)
	}
	if err := database.PutUpdateInfo(ctx, q, &info); err != nil {
		return err
	}

	logging.Debug().
		Str("data_type", string(dt)).
		Str("status", string(to)).
		Int("total_count", info.TotalCount).
		Msg("Update status changed")
	return nil
}

// MarkFetching moves every given data type to fetching in its own committed
// transaction so readers can observe the import in progress. Counts and
// dates of the previous import are kept.
func (t *Tracker) MarkFetching(ctx context.Context, types []models.DataType) error {
	return t.db.WriteTx(ctx, func(tx *sql.Tx) error {
		for _, dt := range types {
			if err := transition(ctx, tx, dt, models.FetchStatusFetching, nil); err != nil {
				return err
			}
		}
		return nil
	})
}

// MarkCompleteTx records a successful import of dt inside the import
// transaction tx.
func (t *Tracker) MarkCompleteTx(ctx context.Context, tx database.Querier, dt models.DataType, count int, lastUpdated, fetchDate time.Time) error {
	return transition(ctx, tx, dt, models.FetchStatusComplete, func(info *models.UpdateInfo) {
		lu := lastUpdated.UTC()
		fd := fetchDate.UTC()
		info.TotalCount = count
		info.LastUpdated = &lu
		info.FetchDate = &fd
	})
}

// MarkFailed moves the given data types from fetching to failed in a
// separate transaction. The previous totalCount is kept since the
// committed rows did not change; fetchDate records the attempt.
func (t *Tracker) MarkFailed(ctx context.Context, types []models.DataType) error {
	now := t.now().UTC()
	return t.db.WriteTx(ctx, func(tx *sql.Tx) error {
		for _, dt := range types {
			err := transition(ctx, tx, dt, models.FetchStatusFailed, func(info *models.UpdateInfo) {
				info.FetchDate = &now
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}
