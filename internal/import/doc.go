// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

// Package playaimport loads the organizer's yearly directory export (art,
// camps, events with their occurrence sets) into the store.
//
// # Pipeline
//
//	Source (DirSource / StaticSource)
//	       ↓
//	Mapper: validate, convert, derive occurrence ids
//	       ↓
//	resolveHosts: inherit host GPS, drop unknown host references
//	       ↓
//	database.ReplaceTx: upsert, delete stale uids, replace occurrences,
//	                    mark update info complete
//
// Everything after the fetch runs in one transaction. A malformed record or
// a storage failure rolls it back, leaves the previous directory in place
// and marks the update info failed.
//
// # Usage
//
//	tracker := updates.NewTracker(db)
//	imp := playaimport.NewImporter(db, tracker, playaimport.NewDirSource(&cfg.Import))
//	stats, err := imp.ImportFromPlayaAPI(ctx)
//	if errors.Is(err, playaimport.ErrMalformedRecord) {
//	    var se *playaimport.SourceError
//	    errors.As(err, &se)
//	}
//
// Re-importing identical data is idempotent: occurrence ids are derived from
// their content, and entity rows are replaced wholesale.
//
// # Thread Safety
//
// One Importer runs one import at a time; a concurrent call returns
// ErrImportInProgress.
package playaimport
