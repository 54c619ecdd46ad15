// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/playadb/internal/models"
)

const (
	testArtJSON = `[{"uid": "a2Id0000000cbObEAI", "name": "Temple of the Deep", "year": 2025,
		"artist": "Miguel Arguello", "location": {"gps_latitude": 40.7862, "gps_longitude": -119.2065}}]`
	testCampJSON = `[{"uid": "a1XVI000001vN7N2AU", "name": "Camp Mystic", "year": 2025,
		"location": {"gps_latitude": 40.787, "gps_longitude": -119.207}}]`
	testEventJSON = `[{"uid": "ev-sunrise-yoga", "title": "Sunrise Yoga", "year": 2025,
		"hosted_by_camp": "a1XVI000001vN7N2AU",
		"occurrence_set": [
			{"start_time": "2025-08-28T10:00:00-07:00", "end_time": "2025-08-28T12:00:00-07:00"},
			{"start_time": "2025-08-29T10:00:00-07:00", "end_time": "2025-08-29T12:00:00-07:00"}
		]}]`
)

// setupCLI points the configuration at a fresh export and database file.
func setupCLI(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	exportDir := filepath.Join(dir, "export")
	if err := os.MkdirAll(exportDir, 0o750); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	for name, content := range map[string]string{
		"art.json":   testArtJSON,
		"camp.json":  testCampJSON,
		"event.json": testEventJSON,
	} {
		if err := os.WriteFile(filepath.Join(exportDir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
	}

	t.Setenv("CONFIG_PATH", filepath.Join(dir, "missing.yaml"))
	t.Setenv("PLAYADB_DB_PATH", filepath.Join(dir, "playa.duckdb"))
	t.Setenv("IMPORT_DATA_DIR", exportDir)
	t.Setenv("FESTIVAL_TIMEZONE", "America/Los_Angeles")
	t.Setenv("LOG_LEVEL", "error")
}

// run executes one CLI invocation and returns its stdout.
func run(t *testing.T, args ...string) []byte {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--compact"}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("playadb %v: %v", args, err)
	}
	return out.Bytes()
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("Unmarshal(%s) error = %v", data, err)
	}
	return v
}

func TestCLI_ImportAndQuery(t *testing.T) {
	setupCLI(t)

	summary := decode[map[string]any](t, run(t, "import"))
	if summary["art"] != float64(1) || summary["camps"] != float64(1) || summary["events"] != float64(1) {
		t.Errorf("import summary = %v", summary)
	}
	if summary["occurrences"] != float64(2) {
		t.Errorf("occurrences = %v, want 2", summary["occurrences"])
	}

	events := decode[[]models.EventObject](t, run(t, "events", "--day", "2025-08-28"))
	if len(events) != 1 || events[0].GPS == nil || events[0].GPS.Lat != 40.787 {
		t.Errorf("events on Thursday = %+v", events)
	}
	if none := decode[[]models.EventObject](t, run(t, "events", "--day", "2025-08-30")); len(none) != 0 {
		t.Errorf("events on Saturday = %+v, want none", none)
	}

	schedule := decode[[]models.EventWithOccurrence](t, run(t, "events", "--day", "2025-08-29", "--schedule"))
	if len(schedule) != 1 || schedule[0].Occurrence.Seq != 1 {
		t.Errorf("schedule = %+v", schedule)
	}

	found := decode[[]models.Entity](t, run(t, "search", "temple", "deep"))
	if len(found) != 1 || found[0].Type != models.ObjectTypeArt || found[0].Art == nil {
		t.Errorf("search = %+v", found)
	}

	inRegion := decode[[]models.Entity](t, run(t, "region", "--min-lat=40.78", "--min-lon=-119.21", "--max-lat=40.79", "--max-lon=-119.20"))
	if len(inRegion) != 3 {
		t.Errorf("region = %d objects, want 3", len(inRegion))
	}

	near := decode[[]models.Entity](t, run(t, "near", "--lat=40.7862", "--lon=-119.2065", "--radius", "30"))
	if len(near) != 1 || near[0].UID() != "a2Id0000000cbObEAI" {
		t.Errorf("near = %+v, want the temple only", near)
	}

	obj := decode[models.Entity](t, run(t, "get", "camp", "a1XVI000001vN7N2AU"))
	if obj.Camp == nil || obj.Camp.Name != "Camp Mystic" {
		t.Errorf("get camp = %+v", obj)
	}

	info := decode[[]models.UpdateInfo](t, run(t, "updates"))
	if len(info) != 3 {
		t.Fatalf("updates = %+v", info)
	}
	for _, row := range info {
		if row.FetchStatus != models.FetchStatusComplete || row.TotalCount != 1 {
			t.Errorf("update info %s = %+v", row.DataType, row)
		}
	}

	stats := decode[storeStats](t, run(t, "stats"))
	if stats.SchemaVersion < 1 || stats.Counts == nil || stats.Counts.Events != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestCLI_Favorites(t *testing.T) {
	setupCLI(t)
	run(t, "import")

	toggled := decode[map[string]any](t, run(t, "favorite", "toggle", "art", "a2Id0000000cbObEAI"))
	if toggled["favorite"] != true {
		t.Errorf("toggle = %v, want favorite true", toggled)
	}

	favs := decode[[]models.Entity](t, run(t, "favorite", "list"))
	if len(favs) != 1 || favs[0].UID() != "a2Id0000000cbObEAI" {
		t.Errorf("favorite list = %+v", favs)
	}

	run(t, "favorite", "toggle", "art", "a2Id0000000cbObEAI")
	if favs := decode[[]models.Entity](t, run(t, "favorite", "list")); len(favs) != 0 {
		t.Errorf("favorite list after second toggle = %+v", favs)
	}
}

func TestParseRef(t *testing.T) {
	ref, err := parseRef("camps", "a1XVI000001vN7N2AU")
	if err != nil {
		t.Fatalf("parseRef() error = %v", err)
	}
	if ref.Type != models.ObjectTypeCamp {
		t.Errorf("Type = %s, want camp", ref.Type)
	}

	if _, err := parseRef("stage", "x"); err == nil {
		t.Error("parseRef() should reject unknown types")
	}
	if _, err := parseRef("art", ""); err == nil {
		t.Error("parseRef() should reject an empty uid")
	}
}

func TestParseDay(t *testing.T) {
	now := time.Date(2025, 8, 27, 23, 30, 0, 0, time.FixedZone("PDT", -7*60*60))

	day, err := parseDay("today", now)
	if err != nil {
		t.Fatalf("parseDay(today) error = %v", err)
	}
	if y, m, d := day.Date(); y != 2025 || m != time.August || d != 27 {
		t.Errorf("parseDay(today) = %v, want 2025-08-27", day)
	}

	day, err = parseDay("2025-08-30", now)
	if err != nil {
		t.Fatalf("parseDay() error = %v", err)
	}
	if day.Day() != 30 {
		t.Errorf("parseDay() = %v", day)
	}

	if _, err := parseDay("Saturday", now); err == nil {
		t.Error("parseDay() should reject weekday names")
	}
}
