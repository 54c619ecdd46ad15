// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package models

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestRegionContains(t *testing.T) {
	t.Parallel()

	r := Region{MinLat: 40.78, MinLon: -119.21, MaxLat: 40.79, MaxLon: -119.20}

	tests := []struct {
		name string
		c    Coordinate
		want bool
	}{
		{"center", Coordinate{40.785, -119.205}, true},
		{"min corner", Coordinate{40.78, -119.21}, true},
		{"max corner", Coordinate{40.79, -119.20}, true},
		{"north of box", Coordinate{40.7901, -119.205}, false},
		{"west of box", Coordinate{40.785, -119.2101}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.c); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestRegionValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		r       Region
		wantErr bool
	}{
		{"valid", Region{40.78, -119.21, 40.79, -119.20}, false},
		{"degenerate point", Region{40.78, -119.21, 40.78, -119.21}, false},
		{"inverted lat", Region{40.79, -119.21, 40.78, -119.20}, true},
		{"inverted lon", Region{40.78, -119.20, 40.79, -119.21}, true},
		{"lat out of range", Region{-91, 0, 10, 10}, true},
		{"lon out of range", Region{0, 0, 10, 181}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEntityAccessors(t *testing.T) {
	t.Parallel()

	gps := &Coordinate{Lat: 40.7862, Lon: -119.2065}
	art := NewArtEntity(&ArtObject{UID: "a1", Name: "Temple", GPS: gps})
	camp := NewCampEntity(&CampObject{UID: "c1", Name: "Camp Hug"})
	event := NewEventEntity(&EventObject{UID: "e1", Name: "Yoga"})

	if art.UID() != "a1" || art.Name() != "Temple" || art.GPS() != gps {
		t.Errorf("art accessors = (%q, %q, %v)", art.UID(), art.Name(), art.GPS())
	}
	if camp.Ref() != (EntityRef{UID: "c1", Type: ObjectTypeCamp}) {
		t.Errorf("camp ref = %v", camp.Ref())
	}
	if camp.GPS() != nil {
		t.Errorf("camp GPS = %v, want nil", camp.GPS())
	}
	if event.Ref().String() != "event:e1" {
		t.Errorf("event ref string = %q", event.Ref().String())
	}
}

func TestEventHostRef(t *testing.T) {
	t.Parallel()

	camp := "c1"
	art := "a1"

	ref, ok := (&EventObject{HostedByCamp: &camp}).HostRef()
	if !ok || ref != (EntityRef{UID: "c1", Type: ObjectTypeCamp}) {
		t.Errorf("camp host = %v, %v", ref, ok)
	}
	ref, ok = (&EventObject{LocatedAtArt: &art}).HostRef()
	if !ok || ref != (EntityRef{UID: "a1", Type: ObjectTypeArt}) {
		t.Errorf("art host = %v, %v", ref, ok)
	}
	if _, ok := (&EventObject{}).HostRef(); ok {
		t.Error("expected no host for event without references")
	}
}

func TestOccurrenceOverlaps(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 8, 28, 7, 0, 0, 0, time.UTC)
	next := day.Add(24 * time.Hour)

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside", day.Add(3 * time.Hour), day.Add(5 * time.Hour), true},
		{"spans start", day.Add(-time.Hour), day.Add(time.Hour), true},
		{"spans end", next.Add(-time.Hour), next.Add(time.Hour), true},
		{"ends at day start", day.Add(-2 * time.Hour), day, false},
		{"starts at day end", next, next.Add(time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := EventOccurrence{StartTime: tt.start, EndTime: tt.end}
			if got := o.Overlaps(day, next); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseObjectType(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]ObjectType{"art": ObjectTypeArt, "camps": ObjectTypeCamp, "event": ObjectTypeEvent} {
		got, err := ParseObjectType(in)
		if err != nil || got != want {
			t.Errorf("ParseObjectType(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseObjectType("stage"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestPlayaEventDecode(t *testing.T) {
	t.Parallel()

	raw := `{
		"uid": "e1", "title": "Sunrise Set", "event_id": 42, "year": 2025,
		"event_type": {"label": "Music/Party", "abbr": "prty"},
		"hosted_by_camp": "c1",
		"occurrence_set": [{"start_time": "2025-08-28T05:00:00-07:00", "end_time": "2025-08-28T07:00:00-07:00"}]
	}`

	var ev PlayaEvent
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if ev.HostedByCamp == nil || *ev.HostedByCamp != "c1" {
		t.Errorf("HostedByCamp = %v", ev.HostedByCamp)
	}
	if ev.LocatedAtArt != nil {
		t.Errorf("LocatedAtArt = %v, want nil", *ev.LocatedAtArt)
	}
	if ev.EventType == nil || ev.EventType.Abbr != "prty" {
		t.Errorf("EventType = %+v", ev.EventType)
	}
	if len(ev.OccurrenceSet) != 1 {
		t.Fatalf("OccurrenceSet len = %d", len(ev.OccurrenceSet))
	}
}

func TestPlayaLocationCoordinate(t *testing.T) {
	t.Parallel()

	lat, lon := 40.7870, -119.2070
	if c := (&PlayaLocation{GPSLatitude: &lat, GPSLongitude: &lon}).Coordinate(); c == nil || c.Lat != lat || c.Lon != lon {
		t.Errorf("Coordinate() = %v", c)
	}
	if c := (&PlayaLocation{GPSLatitude: &lat}).Coordinate(); c != nil {
		t.Errorf("half-set coordinate = %v, want nil", c)
	}
	var nilLoc *PlayaLocation
	if nilLoc.Coordinate() != nil {
		t.Error("nil location should have no coordinate")
	}
}
