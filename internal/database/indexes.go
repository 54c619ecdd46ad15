// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/tomtom215/playadb/internal/cache"
	"github.com/tomtom215/playadb/internal/logging"
	"github.com/tomtom215/playadb/internal/metrics"
	"github.com/tomtom215/playadb/internal/models"
)

// indexSnapshot holds index input read from one transaction.
type indexSnapshot struct {
	spatial []cache.SpatialEntry
	docs    []cache.TrieDocument
}

// indexSources lists, per object type, the columns fed into the indexes.
// The text columns are the searchable fields of each kind.
var indexSources = []struct {
	objectType models.ObjectType
	query      string
}{
	{models.ObjectTypeArt, `SELECT uid, gps_lat, gps_lon, name, COALESCE(artist, ''), COALESCE(description, ''), COALESCE(contact_email, '') FROM art`},
	{models.ObjectTypeCamp, `SELECT uid, gps_lat, gps_lon, name, '', COALESCE(description, ''), COALESCE(contact_email, '') FROM camps`},
	{models.ObjectTypeEvent, `SELECT uid, gps_lat, gps_lon, name, '', COALESCE(description, ''), COALESCE(contact, '') FROM events`},
}

// loadIndexSnapshot reads every directory row visible to q.
func loadIndexSnapshot(ctx context.Context, q Querier) (*indexSnapshot, error) {
	snap := &indexSnapshot{}

	for _, src := range indexSources {
		if err := snap.load(ctx, q, src.objectType, src.query); err != nil {
			return nil, err
		}
	}
	return snap, nil
}

func (s *indexSnapshot) load(ctx context.Context, q Querier, objectType models.ObjectType, query string) error {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to read %s for indexing: %w", objectType, err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		var (
			uid                                   string
			lat, lon                              sql.NullFloat64
			name, artist, description, contactRef string
		)
		if err := rows.Scan(&uid, &lat, &lon, &name, &artist, &description, &contactRef); err != nil {
			return fmt.Errorf("failed to scan %s for indexing: %w", objectType, err)
		}

		ref := models.EntityRef{UID: uid, Type: objectType}
		key := ref.String()
		if lat.Valid && lon.Valid {
			s.spatial = append(s.spatial, cache.SpatialEntry{ID: key, Lat: lat.Float64, Lon: lon.Float64, Data: ref})
		}
		s.docs = append(s.docs, cache.TrieDocument{
			ID:   key,
			Data: ref,
			Text: []string{name, artist, description, contactRef},
		})
	}
	return rows.Err()
}

// swapIndexesLocked installs snap as the current index generation. Caller
// holds indexMu for writing.
func (db *DB) swapIndexesLocked(snap *indexSnapshot) {
	db.grid.Replace(snap.spatial)
	db.text.Replace(snap.docs)
	db.generation++

	metrics.SetIndexEntries("spatial", db.grid.Size())
	metrics.SetIndexEntries("text_tokens", db.text.Size())

	logging.Debug().
		Uint64("generation", db.generation).
		Int("spatial_entries", db.grid.Size()).
		Int("text_tokens", db.text.Size()).
		Msg("Directory indexes rebuilt")
}

// RebuildIndexes reloads the spatial and text indexes from the committed
// rows.
func (db *DB) RebuildIndexes(ctx context.Context) error {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	snap, err := loadIndexSnapshot(ctx, db.conn)
	if err != nil {
		return err
	}

	db.indexMu.Lock()
	db.swapIndexesLocked(snap)
	db.indexMu.Unlock()
	return nil
}

// Indexes is a read view over one index generation. It is only valid inside
// the callback passed to DB.Indexed.
type Indexes struct {
	grid       *cache.SpatialHashGrid
	text       *cache.Trie
	generation uint64
}

// Indexed runs fn with the current index generation. Directory rows read
// through db inside fn belong to the same committed state as the indexes.
func (db *DB) Indexed(fn func(ix Indexes) error) error {
	db.indexMu.RLock()
	defer db.indexMu.RUnlock()

	return fn(Indexes{grid: db.grid, text: db.text, generation: db.generation})
}

// Generation counts index rebuilds since open.
func (ix Indexes) Generation() uint64 {
	return ix.generation
}

// InRegion returns the objects whose coordinate lies inside r, edges
// inclusive.
func (ix Indexes) InRegion(r models.Region) []models.EntityRef {
	return spatialRefs(ix.grid.QueryRect(r.MinLat, r.MinLon, r.MaxLat, r.MaxLon))
}

// Near returns the objects within radiusM meters of c.
func (ix Indexes) Near(c models.Coordinate, radiusM float64) []models.EntityRef {
	return spatialRefs(ix.grid.QueryNearby(c.Lat, c.Lon, radiusM))
}

// Search returns the objects for which every token prefix-matches at least
// one indexed token. No tokens means no matches.
func (ix Indexes) Search(tokens []string) []models.EntityRef {
	if len(tokens) == 0 {
		return nil
	}

	matched := ix.text.CollectPrefix(tokens[0])
	for _, tok := range tokens[1:] {
		if len(matched) == 0 {
			break
		}
		next := ix.text.CollectPrefix(tok)
		for id := range matched {
			if _, ok := next[id]; !ok {
				delete(matched, id)
			}
		}
	}

	refs := make([]models.EntityRef, 0, len(matched))
	for _, data := range matched {
		if ref, ok := data.(models.EntityRef); ok {
			refs = append(refs, ref)
		}
	}
	sortRefs(refs)
	return refs
}

// Suggest returns indexed tokens starting with prefix, most common first.
func (ix Indexes) Suggest(prefix string, limit int) []cache.TrieResult {
	return ix.text.AutocompleteWithLimit(prefix, limit)
}

func spatialRefs(entries []*cache.SpatialEntry) []models.EntityRef {
	refs := make([]models.EntityRef, 0, len(entries))
	for _, e := range entries {
		if ref, ok := e.Data.(models.EntityRef); ok {
			refs = append(refs, ref)
		}
	}
	sortRefs(refs)
	return refs
}

// typeOrder ranks object types for stable result ordering.
var typeOrder = map[models.ObjectType]int{
	models.ObjectTypeArt:   0,
	models.ObjectTypeCamp:  1,
	models.ObjectTypeEvent: 2,
}

func sortRefs(refs []models.EntityRef) {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Type != refs[j].Type {
			return typeOrder[refs[i].Type] < typeOrder[refs[j].Type]
		}
		return refs[i].UID < refs[j].UID
	})
}
