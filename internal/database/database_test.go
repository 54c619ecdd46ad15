// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/playadb/internal/config"
	"github.com/tomtom215/playadb/internal/models"
)

// testDBSemaphore limits concurrent DuckDB instances across tests.
var testDBSemaphore = make(chan struct{}, 1)

// testDBMutex serializes database creation.
var testDBMutex sync.Mutex

// setupTestDB creates an in-memory database that lives for the whole test.
// The semaphore is held until cleanup so DuckDB CGO work never overlaps.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	db := openTestDB(t, &config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB"})
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

func openTestDB(t *testing.T, cfg *config.DatabaseConfig) *DB {
	t.Helper()

	type result struct {
		db  *DB
		err error
	}

	resultCh := make(chan result, 1)
	go func() {
		testDBMutex.Lock()
		db, err := New(cfg, &config.IndexConfig{CellSizeM: 100})
		testDBMutex.Unlock()
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		return res.db
	case <-time.After(120 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 120s")
		return nil
	}
}

func strPtr(s string) *string { return &s }

func sampleArt() models.ArtObject {
	return models.ArtObject{
		UID:               "a2Id0000000cbObEAI",
		Name:              "Temple of the Deep",
		Year:              2025,
		Artist:            "Miguel Arguello",
		Description:       "A meditative space for grief and remembrance",
		Category:          "Open Playa",
		Program:           "Honorarium",
		LocationString:    "12:00 2500'",
		GPS:               &models.Coordinate{Lat: 40.7862, Lon: -119.2065},
		GuidedTours:       true,
		SelfGuidedTourMap: false,
		ContactEmail:      "temple@example.org",
		URL:               "https://example.org/temple",
	}
}

func sampleCamp() models.CampObject {
	return models.CampObject{
		UID:          "a1XVI000001vN7N2AU",
		Name:         "Camp Mystic",
		Year:         2025,
		Description:  "Tea, shade and live music",
		ContactEmail: "hello@mystic.example",
		Hometown:     "Reno",
		Landmark:     "Big blue dome",
		Location: models.CampLocation{
			Frontage:       "Esplanade",
			Intersection:   "6:30",
			LocationString: "Esplanade & 6:30",
		},
		GPS: &models.Coordinate{Lat: 40.7870, Lon: -119.2070},
	}
}

func sampleEvent() models.EventObject {
	return models.EventObject{
		UID:            "ev-sunrise-yoga",
		Name:           "Sunrise Yoga",
		Year:           2025,
		EventID:        48213,
		Description:    "Gentle flow as the sun comes up",
		EventTypeLabel: "Class/Workshop",
		EventTypeCode:  "work",
		HostedByCamp:   strPtr("a1XVI000001vN7N2AU"),
		Contact:        "yogi@mystic.example",
		GPS:            &models.Coordinate{Lat: 40.7870, Lon: -119.2070},
	}
}

func occurrence(id, eventUID string, seq int, start time.Time, d time.Duration) models.EventOccurrence {
	return models.EventOccurrence{ID: id, EventID: eventUID, Seq: seq, StartTime: start, EndTime: start.Add(d)}
}

// seedDirectory writes the sample directory through ReplaceTx.
func seedDirectory(t *testing.T, db *DB, occs []models.EventOccurrence) {
	t.Helper()
	ctx := context.Background()

	err := db.ReplaceTx(ctx, func(tx *sql.Tx) error {
		if err := UpsertArt(ctx, tx, []models.ArtObject{sampleArt()}); err != nil {
			return err
		}
		if err := UpsertCamps(ctx, tx, []models.CampObject{sampleCamp()}); err != nil {
			return err
		}
		if err := UpsertEvents(ctx, tx, []models.EventObject{sampleEvent()}); err != nil {
			return err
		}
		_, _, err := ReplaceOccurrences(ctx, tx, occs)
		return err
	})
	checkNoError(t, err)
}

func TestNew_EmptySchema(t *testing.T) {
	db := setupTestDB(t)

	counts, err := db.GetRecordCounts(context.Background())
	checkNoError(t, err)
	if *counts != (RecordCounts{}) {
		t.Errorf("fresh database should be empty, got %+v", counts)
	}

	checkNoError(t, db.Ping(context.Background()))
	checkStringEqual(t, "path", db.GetDatabasePath(), ":memory:")
}

func TestReplaceTx_RoundTripsFields(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedDirectory(t, db, nil)

	art, err := db.ListArt(ctx)
	checkNoError(t, err)
	checkSliceLen(t, "art", len(art), 1)
	want := sampleArt()
	got := art[0]
	checkStringEqual(t, "uid", got.UID, want.UID)
	checkStringEqual(t, "artist", got.Artist, want.Artist)
	checkStringEqual(t, "program", got.Program, want.Program)
	if !got.GuidedTours || got.SelfGuidedTourMap {
		t.Errorf("booleans not preserved: %+v", got)
	}
	if got.GPS == nil || *got.GPS != *want.GPS {
		t.Errorf("GPS = %v, want %v", got.GPS, want.GPS)
	}

	camps, err := db.ListCamps(ctx)
	checkNoError(t, err)
	checkSliceLen(t, "camps", len(camps), 1)
	if camps[0].Location != sampleCamp().Location {
		t.Errorf("Location = %+v, want %+v", camps[0].Location, sampleCamp().Location)
	}

	events, err := db.ListEvents(ctx)
	checkNoError(t, err)
	checkSliceLen(t, "events", len(events), 1)
	ev := events[0]
	if ev.HostedByCamp == nil || *ev.HostedByCamp != "a1XVI000001vN7N2AU" {
		t.Errorf("HostedByCamp = %v", ev.HostedByCamp)
	}
	if ev.LocatedAtArt != nil {
		t.Errorf("LocatedAtArt = %v, want nil", *ev.LocatedAtArt)
	}
	if ev.EventID != 48213 {
		t.Errorf("EventID = %d, want 48213", ev.EventID)
	}
}

func TestUpsert_FullRowReplace(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedDirectory(t, db, nil)

	updated := sampleArt()
	updated.Artist = ""
	updated.GPS = nil
	err := db.WriteTx(ctx, func(tx *sql.Tx) error {
		return UpsertArt(ctx, tx, []models.ArtObject{updated})
	})
	checkNoError(t, err)

	art, err := db.ArtByUIDs(ctx, []string{updated.UID})
	checkNoError(t, err)
	checkSliceLen(t, "art", len(art), 1)
	checkStringEqual(t, "artist", art[0].Artist, "")
	if art[0].HasGPSLocation() {
		t.Errorf("GPS should be cleared by full-row replace, got %v", art[0].GPS)
	}
}

func TestDeleteMissing(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	second := sampleArt()
	second.UID = "art-2"
	second.Name = "Second Piece"

	err := db.WriteTx(ctx, func(tx *sql.Tx) error {
		return UpsertArt(ctx, tx, []models.ArtObject{sampleArt(), second})
	})
	checkNoError(t, err)

	var removed int
	err = db.WriteTx(ctx, func(tx *sql.Tx) error {
		var err error
		removed, err = DeleteMissing(ctx, tx, TableArt, []string{second.UID})
		return err
	})
	checkNoError(t, err)
	checkIntEqual(t, "removed", removed, 1)

	n, err := db.CountRows(ctx, TableArt)
	checkNoError(t, err)
	checkIntEqual(t, "art rows", n, 1)

	err = db.WriteTx(ctx, func(tx *sql.Tx) error {
		_, err := DeleteMissing(ctx, tx, TableFavorites, nil)
		return err
	})
	checkError(t, err)
}

func TestReplaceOccurrences(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	thu := time.Date(2025, 8, 28, 17, 0, 0, 0, time.UTC)

	seedDirectory(t, db, []models.EventOccurrence{
		occurrence("occ-1", "ev-sunrise-yoga", 0, thu, 2*time.Hour),
		occurrence("occ-2", "ev-sunrise-yoga", 1, thu.Add(24*time.Hour), 2*time.Hour),
	})

	var inserted, deleted int
	err := db.WriteTx(ctx, func(tx *sql.Tx) error {
		var err error
		inserted, deleted, err = ReplaceOccurrences(ctx, tx, []models.EventOccurrence{
			occurrence("occ-1", "ev-sunrise-yoga", 0, thu, 2*time.Hour),
			occurrence("occ-3", "ev-sunrise-yoga", 1, thu.Add(48*time.Hour), time.Hour),
		})
		return err
	})
	checkNoError(t, err)
	checkIntEqual(t, "inserted", inserted, 1)
	checkIntEqual(t, "deleted", deleted, 1)

	occs, err := db.OccurrencesForEvent(ctx, "ev-sunrise-yoga")
	checkNoError(t, err)
	checkSliceLen(t, "occurrences", len(occs), 2)
	checkStringEqual(t, "first", occs[0].ID, "occ-1")
	checkStringEqual(t, "second", occs[1].ID, "occ-3")
	if !occs[1].StartTime.Equal(thu.Add(48 * time.Hour)) {
		t.Errorf("StartTime = %v", occs[1].StartTime)
	}
}

func TestEventsOverlapping_HalfOpenWindow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	start := time.Date(2025, 8, 28, 17, 0, 0, 0, time.UTC)

	seedDirectory(t, db, []models.EventOccurrence{
		occurrence("occ-1", "ev-sunrise-yoga", 0, start, 2*time.Hour),
	})

	tests := []struct {
		name     string
		from, to time.Time
		want     int
	}{
		{"contains", start.Add(-time.Hour), start.Add(3 * time.Hour), 1},
		{"partial overlap", start.Add(time.Hour), start.Add(5 * time.Hour), 1},
		{"ends at window start", start.Add(2 * time.Hour), start.Add(4 * time.Hour), 0},
		{"starts at window end", start.Add(-2 * time.Hour), start, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := db.EventsOverlapping(ctx, tt.from, tt.to)
			checkNoError(t, err)
			checkSliceLen(t, "events", len(events), tt.want)

			pairs, err := db.OccurrencesOverlapping(ctx, tt.from, tt.to)
			checkNoError(t, err)
			checkSliceLen(t, "pairs", len(pairs), tt.want)
		})
	}
}

func TestOccurrencesOverlapping_Ordering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	start := time.Date(2025, 8, 28, 17, 0, 0, 0, time.UTC)

	seedDirectory(t, db, []models.EventOccurrence{
		occurrence("occ-late", "ev-sunrise-yoga", 0, start.Add(3*time.Hour), time.Hour),
		occurrence("occ-tie-b", "ev-sunrise-yoga", 2, start, time.Hour),
		occurrence("occ-tie-a", "ev-sunrise-yoga", 1, start, 2*time.Hour),
	})

	pairs, err := db.OccurrencesOverlapping(ctx, start.Add(-time.Hour), start.Add(24*time.Hour))
	checkNoError(t, err)
	checkSliceLen(t, "pairs", len(pairs), 3)

	wantOrder := []string{"occ-tie-a", "occ-tie-b", "occ-late"}
	for i, want := range wantOrder {
		checkStringEqual(t, "occurrence", pairs[i].Occurrence.ID, want)
		checkStringEqual(t, "event", pairs[i].Event.UID, "ev-sunrise-yoga")
	}
}

func TestIndexed_RegionAndSearch(t *testing.T) {
	db := setupTestDB(t)
	seedDirectory(t, db, nil)

	err := db.Indexed(func(ix Indexes) error {
		if ix.Generation() == 0 {
			t.Error("generation should advance after ReplaceTx")
		}

		region := models.Region{MinLat: 40.7860, MinLon: -119.2068, MaxLat: 40.7865, MaxLon: -119.2060}
		refs := ix.InRegion(region)
		if len(refs) != 1 || refs[0].Type != models.ObjectTypeArt {
			t.Errorf("InRegion() = %v, want only the art object", refs)
		}

		wide := models.Region{MinLat: 40.78, MinLon: -119.21, MaxLat: 40.79, MaxLon: -119.20}
		checkSliceLen(t, "wide region", len(ix.InRegion(wide)), 3)

		refs = ix.Search([]string{"sunr", "yoga"})
		if len(refs) != 1 || refs[0].UID != "ev-sunrise-yoga" {
			t.Errorf("Search(sunr yoga) = %v", refs)
		}

		checkSliceLen(t, "artist search", len(ix.Search([]string{"arguello"})), 1)
		checkSliceLen(t, "no tokens", len(ix.Search(nil)), 0)
		checkSliceLen(t, "no match", len(ix.Search([]string{"sunrise", "temple"})), 0)

		near := ix.Near(models.Coordinate{Lat: 40.7870, Lon: -119.2070}, 20)
		checkSliceLen(t, "near camp", len(near), 2)

		if s := ix.Suggest("te", 5); len(s) == 0 || s[0].Value != "tea" && s[0].Value != "temple" {
			t.Errorf("Suggest(te) = %v", s)
		}
		return nil
	})
	checkNoError(t, err)
}

func TestWriteTx_RollbackOnError(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedDirectory(t, db, nil)

	var before uint64
	_ = db.Indexed(func(ix Indexes) error {
		before = ix.Generation()
		return nil
	})

	boom := errors.New("boom")
	err := db.ReplaceTx(ctx, func(tx *sql.Tx) error {
		if _, err := DeleteMissing(ctx, tx, TableArt, nil); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("ReplaceTx() error = %v, want boom", err)
	}

	n, err := db.CountRows(ctx, TableArt)
	checkNoError(t, err)
	checkIntEqual(t, "art rows after rollback", n, 1)

	_ = db.Indexed(func(ix Indexes) error {
		if ix.Generation() != before {
			t.Errorf("generation changed on rollback: %d -> %d", before, ix.Generation())
		}
		return nil
	})
}

func TestFavoriteFlags(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	ref := models.EntityRef{UID: "a1XVI000001vN7N2AU", Type: models.ObjectTypeCamp}

	fav, err := db.IsFavorite(ctx, ref)
	checkNoError(t, err)
	if fav {
		t.Error("untouched ref should not be a favorite")
	}

	checkNoError(t, db.WriteTx(ctx, func(tx *sql.Tx) error {
		return SetFavoriteFlag(ctx, tx, ref, true)
	}))
	checkNoError(t, db.WriteTx(ctx, func(tx *sql.Tx) error {
		return SetFavoriteFlag(ctx, tx, models.EntityRef{UID: "x", Type: models.ObjectTypeArt}, false)
	}))

	fav, err = db.IsFavorite(ctx, ref)
	checkNoError(t, err)
	if !fav {
		t.Error("ref should be a favorite after SetFavoriteFlag(true)")
	}

	refs, err := db.ListFavoriteRefs(ctx)
	checkNoError(t, err)
	if len(refs) != 1 || refs[0] != ref {
		t.Errorf("ListFavoriteRefs() = %v, want [%v]", refs, ref)
	}
}

func TestUpdateInfoRows(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	missing, err := db.GetUpdateInfoRow(ctx, models.ObjectTypeArt)
	checkNoError(t, err)
	if missing != nil {
		t.Fatalf("GetUpdateInfoRow() = %+v, want nil", missing)
	}

	now := time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
	for _, dt := range []models.DataType{models.ObjectTypeEvent, models.ObjectTypeArt} {
		info := &models.UpdateInfo{DataType: dt, TotalCount: 3, FetchDate: &now, FetchStatus: models.FetchStatusComplete}
		checkNoError(t, db.WriteTx(ctx, func(tx *sql.Tx) error { return PutUpdateInfo(ctx, tx, info) }))
	}

	rows, err := db.GetUpdateInfoRows(ctx)
	checkNoError(t, err)
	checkSliceLen(t, "rows", len(rows), 2)
	if rows[0].DataType != models.ObjectTypeArt || rows[1].DataType != models.ObjectTypeEvent {
		t.Errorf("rows not ordered art first: %+v", rows)
	}
	if rows[0].LastUpdated != nil {
		t.Errorf("LastUpdated = %v, want nil", rows[0].LastUpdated)
	}
	if rows[0].FetchDate == nil || !rows[0].FetchDate.Equal(now) {
		t.Errorf("FetchDate = %v, want %v", rows[0].FetchDate, now)
	}
}

func TestGetEntities_PreservesOrderAndSkipsMissing(t *testing.T) {
	db := setupTestDB(t)
	seedDirectory(t, db, nil)

	refs := []models.EntityRef{
		{UID: "ev-sunrise-yoga", Type: models.ObjectTypeEvent},
		{UID: "gone", Type: models.ObjectTypeCamp},
		{UID: "a2Id0000000cbObEAI", Type: models.ObjectTypeArt},
	}
	entities, err := db.GetEntities(context.Background(), refs)
	checkNoError(t, err)
	checkSliceLen(t, "entities", len(entities), 2)
	if entities[0].Type != models.ObjectTypeEvent || entities[1].Type != models.ObjectTypeArt {
		t.Errorf("order not preserved: %v, %v", entities[0].Ref(), entities[1].Ref())
	}
}

func TestEventsHostedBy(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	seedDirectory(t, db, nil)

	events, err := db.EventsHostedBy(ctx, models.EntityRef{UID: "a1XVI000001vN7N2AU", Type: models.ObjectTypeCamp})
	checkNoError(t, err)
	checkSliceLen(t, "hosted", len(events), 1)

	events, err = db.EventsHostedBy(ctx, models.EntityRef{UID: "a2Id0000000cbObEAI", Type: models.ObjectTypeArt})
	checkNoError(t, err)
	checkSliceLen(t, "located at art", len(events), 0)
}

func TestRebuildIndexesOnOpen(t *testing.T) {
	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	cfg := &config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "playa.duckdb"), MaxMemory: "256MB"}

	db := openTestDB(t, cfg)
	seedDirectory(t, db, nil)
	checkNoError(t, db.Close())

	reopened := openTestDB(t, cfg)
	defer func() { checkNoError(t, reopened.Close()) }()

	err := reopened.Indexed(func(ix Indexes) error {
		checkSliceLen(t, "search after reopen", len(ix.Search([]string{"mystic"})), 2)
		return nil
	})
	checkNoError(t, err)
}

func TestMigrations_AppliedOnce(t *testing.T) {
	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	cfg := &config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "playa.duckdb"), MaxMemory: "256MB"}
	ctx := context.Background()

	db := openTestDB(t, cfg)
	version, err := db.SchemaVersion(ctx)
	checkNoError(t, err)
	checkIntEqual(t, "schema version", version, len(migrations))
	checkNoError(t, db.Close())

	reopened := openTestDB(t, cfg)
	defer func() { checkNoError(t, reopened.Close()) }()

	history, err := reopened.MigrationHistory(ctx)
	checkNoError(t, err)
	checkSliceLen(t, "migration history", len(history), len(migrations))
	for i, m := range history {
		checkIntEqual(t, "migration version", m.Version, migrations[i].Version)
		checkStringEqual(t, "migration name", m.Name, migrations[i].Name)
		if m.AppliedAt.IsZero() {
			t.Errorf("migration v%d has no applied_at", m.Version)
		}
	}
}

func TestMaxOpenConns_ReservesWriterConnection(t *testing.T) {
	for _, cpus := range []int{1, 2, 8} {
		if got := maxOpenConns(cpus); got < 3 || got <= cpus {
			t.Errorf("maxOpenConns(%d) = %d, want room for two readers and a writer", cpus, got)
		}
	}
}

func TestReadsDuringOpenReplaceTx(t *testing.T) {
	db := setupTestDB(t)
	db.conn.SetMaxOpenConns(maxOpenConns(1))
	seedDirectory(t, db, nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	releaseWriter := sync.OnceFunc(func() { close(release) })
	defer releaseWriter()

	done := make(chan error, 1)
	go func() {
		ctx := context.Background()
		done <- db.ReplaceTx(ctx, func(tx *sql.Tx) error {
			pending := sampleArt()
			pending.UID = "art-pending"
			pending.Name = "Pending Pavilion"
			if err := UpsertArt(ctx, tx, []models.ArtObject{pending}); err != nil {
				return err
			}
			close(entered)
			<-release
			return nil
		})
	}()

	select {
	case <-entered:
	case err := <-done:
		t.Fatalf("ReplaceTx() returned before the callback blocked: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	art, err := db.ListArt(ctx)
	checkNoError(t, err)
	checkSliceLen(t, "art visible during open write", len(art), 1)

	err = db.Indexed(func(ix Indexes) error {
		entities, err := db.GetEntities(ctx, ix.Search([]string{"temple"}))
		if err != nil {
			return err
		}
		checkSliceLen(t, "indexed lookup during open write", len(entities), 1)
		checkSliceLen(t, "uncommitted row indexed", len(ix.Search([]string{"pavilion"})), 0)
		return nil
	})
	checkNoError(t, err)

	releaseWriter()
	checkNoError(t, <-done)

	art, err = db.ListArt(context.Background())
	checkNoError(t, err)
	checkSliceLen(t, "art after commit", len(art), 2)

	err = db.Indexed(func(ix Indexes) error {
		checkSliceLen(t, "committed row indexed", len(ix.Search([]string{"pavilion"})), 1)
		return nil
	})
	checkNoError(t, err)
}
