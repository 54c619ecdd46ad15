// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package database

import (
	"context"
	"fmt"
	"time"
)

// Table names.
const (
	TableArt         = "art"
	TableCamps       = "camps"
	TableEvents      = "events"
	TableOccurrences = "event_occurrences"
	TableUpdateInfo  = "update_info"
	TableFavorites   = "favorites"
)

// schemaContext creates a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the directory schema.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the DDL for every table. Secondary
// indexes are added by migrations.
//
// Entity tables carry only their primary key: DuckDB rejects
// INSERT OR REPLACE on rows whose other indexed columns would change.
// Host references are checked by the importer instead of FOREIGN KEY
// clauses so stale rows can be deleted in any order inside one transaction.
func getTableCreationQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS art (
			uid TEXT PRIMARY KEY,
			year INTEGER NOT NULL,
			name TEXT NOT NULL,
			artist TEXT,
			description TEXT,
			category TEXT,
			program TEXT,
			donation_link TEXT,
			location_string TEXT,
			gps_lat DOUBLE,
			gps_lon DOUBLE,
			contact_email TEXT,
			hometown TEXT,
			url TEXT,
			guided_tours BOOLEAN NOT NULL DEFAULT false,
			self_guided_tour_map BOOLEAN NOT NULL DEFAULT false
		);`,

		`CREATE TABLE IF NOT EXISTS camps (
			uid TEXT PRIMARY KEY,
			year INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			url TEXT,
			contact_email TEXT,
			hometown TEXT,
			landmark TEXT,
			frontage TEXT,
			intersection TEXT,
			intersection_type TEXT,
			dimensions TEXT,
			exact_location TEXT,
			location_string TEXT,
			gps_lat DOUBLE,
			gps_lon DOUBLE
		);`,

		`CREATE TABLE IF NOT EXISTS events (
			uid TEXT PRIMARY KEY,
			year INTEGER NOT NULL,
			event_id BIGINT NOT NULL DEFAULT 0,
			name TEXT NOT NULL,
			description TEXT,
			print_description TEXT,
			event_type_label TEXT,
			event_type_code TEXT,
			slug TEXT,
			hosted_by_camp TEXT,
			located_at_art TEXT,
			other_location TEXT,
			check_location BOOLEAN NOT NULL DEFAULT false,
			url TEXT,
			all_day BOOLEAN NOT NULL DEFAULT false,
			contact TEXT,
			gps_lat DOUBLE,
			gps_lon DOUBLE,
			CHECK (hosted_by_camp IS NULL OR located_at_art IS NULL)
		);`,

		`CREATE TABLE IF NOT EXISTS event_occurrences (
			id TEXT PRIMARY KEY,
			event_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			start_time TIMESTAMP NOT NULL,
			end_time TIMESTAMP NOT NULL,
			CHECK (end_time > start_time)
		);`,

		`CREATE TABLE IF NOT EXISTS update_info (
			data_type TEXT PRIMARY KEY,
			total_count INTEGER NOT NULL DEFAULT 0,
			last_updated TIMESTAMP,
			fetch_date TIMESTAMP,
			fetch_status TEXT NOT NULL DEFAULT 'unknown'
		);`,

		`CREATE TABLE IF NOT EXISTS favorites (
			uid TEXT NOT NULL,
			object_type TEXT NOT NULL,
			is_favorite BOOLEAN NOT NULL DEFAULT false,
			PRIMARY KEY (uid, object_type)
		);`,
	}
}
