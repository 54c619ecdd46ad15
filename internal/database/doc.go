// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

/*
Package database is the storage adapter for the festival directory.

It owns the DuckDB handle, the schema, the row codecs for art, camps,
events, occurrences, favorites and update bookkeeping, and the in-process
spatial grid and text trie used for region and search lookups.

# Schema

	art(uid PK, ...)             camps(uid PK, ...)        events(uid PK, ...)
	event_occurrences(id PK, event_id, seq, start_time, end_time)
	update_info(data_type PK, total_count, last_updated, fetch_date, fetch_status)
	favorites(uid, object_type PK, is_favorite)

Timestamps are stored as UTC TIMESTAMP values. References from events to
camps and art, and from occurrences to events, are enforced by the importer.

# Transactions

Writes go through WriteTx or ReplaceTx, which hold a writer mutex so that
writers queue and never interleave. ReplaceTx additionally rebuilds the
spatial and text indexes from the rows visible inside the transaction and
swaps them in at commit time:

	err := db.ReplaceTx(ctx, func(tx *sql.Tx) error {
	    if err := database.UpsertArt(ctx, tx, art); err != nil {
	        return err
	    }
	    _, err := database.DeleteMissing(ctx, tx, database.TableArt, keep)
	    return err
	})

Readers use the pooled connection and observe the last committed snapshot.
Lookups that combine an index with row reads run inside Indexed so both
belong to the same committed generation:

	err := db.Indexed(func(ix database.Indexes) error {
	    entities, err = db.GetEntities(ctx, ix.InRegion(region))
	    return err
	})

# Errors

Failures reading or writing the store are returned as *StorageError.
Storage calls without a deadline get a 30 second timeout.
*/
package database
