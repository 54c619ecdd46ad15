// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package playaimport

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/playadb/internal/database"
	"github.com/tomtom215/playadb/internal/logging"
	"github.com/tomtom215/playadb/internal/metrics"
	"github.com/tomtom215/playadb/internal/models"
	"github.com/tomtom215/playadb/internal/updates"
)

// Importer replaces the stored directory with a new bundle in one
// transaction.
type Importer struct {
	db      *database.DB
	tracker *updates.Tracker
	source  Source
	mapper  *Mapper
	now     func() time.Time

	mu      sync.RWMutex
	running bool
	stats   *ImportStats
}

// NewImporter creates an Importer. source may be nil when only
// ImportFromData is used.
func NewImporter(db *database.DB, tracker *updates.Tracker, source Source) *Importer {
	return &Importer{
		db:      db,
		tracker: tracker,
		source:  source,
		mapper:  NewMapper(),
		now:     time.Now,
	}
}

// ImportFromPlayaAPI fetches a bundle from the configured source and
// imports it.
func (i *Importer) ImportFromPlayaAPI(ctx context.Context) (*ImportStats, error) {
	return i.run(ctx, func(ctx context.Context) (*models.PlayaBundle, error) {
		if i.source == nil {
			return nil, &ImportError{Kind: KindSourceUnavailable, Err: errors.New("no source configured")}
		}
		bundle, err := i.source.Fetch(ctx)
		if err != nil {
			var ie *ImportError
			if errors.As(err, &ie) {
				return nil, ie
			}
			return nil, &ImportError{Kind: KindSourceUnavailable, Err: err}
		}
		return bundle, nil
	})
}

// ImportFromData imports already-decoded records.
func (i *Importer) ImportFromData(ctx context.Context, art []models.PlayaArt, camps []models.PlayaCamp, events []models.PlayaEvent) (*ImportStats, error) {
	return i.run(ctx, func(context.Context) (*models.PlayaBundle, error) {
		return &models.PlayaBundle{Art: art, Camps: camps, Events: events}, nil
	})
}

// begin claims the importer for one run.
func (i *Importer) begin(correlationID string) (*ImportStats, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.running {
		return nil, ErrImportInProgress
	}
	i.running = true
	i.stats = &ImportStats{
		CorrelationID: correlationID,
		Deleted:       make(map[models.DataType]int),
		StartTime:     i.now(),
	}
	return i.stats, nil
}

func (i *Importer) finish() {
	i.mu.Lock()
	i.running = false
	i.stats.EndTime = i.now()
	i.mu.Unlock()
}

func (i *Importer) run(ctx context.Context, load func(context.Context) (*models.PlayaBundle, error)) (*ImportStats, error) {
	ctx = logging.ContextWithNewCorrelationID(ctx)
	stats, err := i.begin(logging.CorrelationIDFromContext(ctx))
	if err != nil {
		return nil, err
	}
	defer i.finish()

	log := logging.Ctx(ctx)
	log.Info().Msg("Starting directory import")

	if err := i.tracker.MarkFetching(ctx, models.ObjectTypes); err != nil {
		return i.fail(ctx, &ImportError{Kind: KindWriteFailed, Err: fmt.Errorf("mark fetching: %w", err)})
	}

	bundle, err := load(ctx)
	if err != nil {
		var ie *ImportError
		if !errors.As(err, &ie) {
			ie = &ImportError{Kind: KindSourceUnavailable, Err: err}
		}
		return i.fail(ctx, ie)
	}

	dir, err := i.mapper.MapBundle(bundle)
	if err != nil {
		var ie *ImportError
		if !errors.As(err, &ie) {
			ie = &ImportError{Kind: KindMalformedRecord, Err: err}
		}
		return i.fail(ctx, ie)
	}

	unresolved := resolveHosts(dir)
	for _, u := range unresolved {
		log.Warn().
			Str("event_uid", u.EventUID).
			Str("host_type", string(u.Host.Type)).
			Str("host_uid", u.Host.UID).
			Msg("Event host not found, storing event without host")
	}

	fetchDate := i.now().UTC()
	lastUpdated := fetchDate
	if bundle.LastUpdated != nil {
		lastUpdated = bundle.LastUpdated.UTC()
	}

	var res *writeResult
	err = i.db.ReplaceTx(ctx, func(tx *sql.Tx) error {
		var err error
		res, err = i.write(ctx, tx, dir, lastUpdated, fetchDate)
		return err
	})
	if err != nil {
		return i.fail(ctx, &ImportError{Kind: KindWriteFailed, Err: err})
	}

	i.mu.Lock()
	stats.Art = res.counts[models.ObjectTypeArt]
	stats.Camps = res.counts[models.ObjectTypeCamp]
	stats.Events = res.counts[models.ObjectTypeEvent]
	stats.Occurrences = res.occurrences
	stats.Deleted = res.deleted
	stats.UnresolvedHosts = unresolved
	stats.EndTime = i.now()
	i.mu.Unlock()

	metrics.RecordImport(stats.Duration(), map[string]int{
		string(models.ObjectTypeArt):   stats.Art,
		string(models.ObjectTypeCamp):  stats.Camps,
		string(models.ObjectTypeEvent): stats.Events,
		"occurrence":                   stats.Occurrences,
	}, len(unresolved))

	log.Info().
		Int("art", stats.Art).
		Int("camps", stats.Camps).
		Int("events", stats.Events).
		Int("occurrences", stats.Occurrences).
		Int("unresolved_hosts", len(unresolved)).
		Dur("duration", stats.Duration()).
		Msg("Directory import completed")

	return i.GetStats(), nil
}

// writeResult holds the row counts observed inside the import transaction.
type writeResult struct {
	counts      map[models.DataType]int
	deleted     map[models.DataType]int
	occurrences int
}

// write performs every statement of one import inside tx.
func (i *Importer) write(ctx context.Context, tx *sql.Tx, dir *Directory, lastUpdated, fetchDate time.Time) (*writeResult, error) {
	if err := database.UpsertArt(ctx, tx, dir.Art); err != nil {
		return nil, err
	}
	if err := database.UpsertCamps(ctx, tx, dir.Camps); err != nil {
		return nil, err
	}
	if err := database.UpsertEvents(ctx, tx, dir.Events); err != nil {
		return nil, err
	}

	keep := map[string][]string{
		database.TableArt:    make([]string, 0, len(dir.Art)),
		database.TableCamps:  make([]string, 0, len(dir.Camps)),
		database.TableEvents: make([]string, 0, len(dir.Events)),
	}
	for _, a := range dir.Art {
		keep[database.TableArt] = append(keep[database.TableArt], a.UID)
	}
	for _, c := range dir.Camps {
		keep[database.TableCamps] = append(keep[database.TableCamps], c.UID)
	}
	for _, e := range dir.Events {
		keep[database.TableEvents] = append(keep[database.TableEvents], e.UID)
	}

	res := &writeResult{
		counts:  make(map[models.DataType]int, len(models.ObjectTypes)),
		deleted: make(map[models.DataType]int),
	}
	for _, dt := range models.ObjectTypes {
		table, err := database.TableFor(dt)
		if err != nil {
			return nil, err
		}
		removed, err := database.DeleteMissing(ctx, tx, table, keep[table])
		if err != nil {
			return nil, err
		}
		if removed > 0 {
			res.deleted[dt] = removed
		}
		n, err := database.CountRowsTx(ctx, tx, table)
		if err != nil {
			return nil, err
		}
		res.counts[dt] = n
	}

	if _, _, err := database.ReplaceOccurrences(ctx, tx, dir.Occurrences); err != nil {
		return nil, err
	}
	occCount, err := database.CountRowsTx(ctx, tx, database.TableOccurrences)
	if err != nil {
		return nil, err
	}
	res.occurrences = occCount

	for _, dt := range models.ObjectTypes {
		if err := i.tracker.MarkCompleteTx(ctx, tx, dt, res.counts[dt], lastUpdated, fetchDate); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// fail records the failure and returns it. The failed status is written in
// its own transaction, detached from ctx so a canceled caller still leaves
// the bookkeeping consistent.
func (i *Importer) fail(ctx context.Context, ie *ImportError) (*ImportStats, error) {
	log := logging.Ctx(ctx)
	log.Error().Err(ie).Str("kind", string(ie.Kind)).Msg("Directory import failed")
	metrics.RecordImportFailure(string(ie.Kind))

	if err := i.tracker.MarkFailed(context.WithoutCancel(ctx), models.ObjectTypes); err != nil {
		log.Warn().Err(err).Msg("Failed to record failed import status")
	}

	return i.GetStats(), ie
}

// GetStats returns a copy of the statistics of the current or last run.
func (i *Importer) GetStats() *ImportStats {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.stats == nil {
		return &ImportStats{}
	}

	stats := *i.stats
	stats.Deleted = make(map[models.DataType]int, len(i.stats.Deleted))
	for k, v := range i.stats.Deleted {
		stats.Deleted[k] = v
	}
	stats.UnresolvedHosts = append([]UnresolvedHostError(nil), i.stats.UnresolvedHosts...)
	return &stats
}

// IsRunning reports whether an import is in progress.
func (i *Importer) IsRunning() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.running
}
