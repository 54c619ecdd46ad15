// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package query

import (
	"testing"
	"time"
)

func TestWhereBuilder_Empty(t *testing.T) {
	wb := NewWhereBuilder()

	if !wb.IsEmpty() {
		t.Error("Expected new builder to be empty")
	}

	if wb.Count() != 0 {
		t.Errorf("Expected count 0, got %d", wb.Count())
	}

	whereClause, args := wb.Build()
	if whereClause != "1=1" {
		t.Errorf("Expected '1=1' for empty builder, got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestWhereBuilder_AddIn(t *testing.T) {
	wb := NewWhereBuilder()
	uids := []string{"a1", "a2", "a3"}

	wb.AddIn("uid", uids)

	whereClause, args := wb.Build()
	expected := "uid IN (?, ?, ?)"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 3 {
		t.Fatalf("Expected 3 args, got %d", len(args))
	}
	for i, uid := range uids {
		if args[i] != uid {
			t.Errorf("Expected arg[%d] = %q, got %v", i, uid, args[i])
		}
	}
}

func TestWhereBuilder_AddInEmptyMatchesNothing(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddIn("uid", nil)

	whereClause, args := wb.Build()
	if whereClause != "1=0" {
		t.Errorf("Expected '1=0', got %q", whereClause)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestWhereBuilder_AddTimeOverlap(t *testing.T) {
	loc := time.FixedZone("PDT", -7*3600)
	from := time.Date(2025, 8, 25, 0, 0, 0, 0, loc)
	to := from.Add(24 * time.Hour)

	wb := NewWhereBuilder()
	wb.AddTimeOverlap("start_time", "end_time", from, to)

	whereClause, args := wb.Build()
	expected := "start_time < ? AND end_time > ?"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 2 {
		t.Fatalf("Expected 2 args, got %d", len(args))
	}
	if got := args[0].(time.Time); !got.Equal(to) || got.Location() != time.UTC {
		t.Errorf("args[0] = %v, want %v in UTC", got, to)
	}
	if got := args[1].(time.Time); !got.Equal(from) {
		t.Errorf("args[1] = %v, want %v", got, from)
	}
}

func TestWhereBuilder_Combined(t *testing.T) {
	start := time.Date(2025, 8, 25, 7, 0, 0, 0, time.UTC)

	wb := NewWhereBuilder().
		AddTimeOverlap("o.start_time", "o.end_time", start, start.Add(time.Hour)).
		AddEquals("e.hosted_by_camp", "c1").
		AddIn("e.uid", []string{"e1", "e2"})

	whereClause, args := wb.BuildWithPrefix()
	expected := "WHERE o.start_time < ? AND o.end_time > ? AND e.hosted_by_camp = ? AND e.uid IN (?, ?)"
	if whereClause != expected {
		t.Errorf("Expected %q, got %q", expected, whereClause)
	}
	if len(args) != 5 {
		t.Errorf("Expected 5 args, got %d", len(args))
	}
	if wb.Count() != 4 {
		t.Errorf("Expected count 4, got %d", wb.Count())
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "?"},
		{3, "?, ?, ?"},
	}
	for _, tt := range tests {
		if got := Placeholders(tt.n); got != tt.want {
			t.Errorf("Placeholders(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
