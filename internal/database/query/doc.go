// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

// Package query provides SQL query building utilities for the database package.
//
// The WhereBuilder assembles parameterized WHERE clauses for the directory
// tables so every filter reaches DuckDB as a bound argument:
//
//	wb := query.NewWhereBuilder()
//	wb.AddTimeOverlap("o.start_time", "o.end_time", dayStart, dayEnd)
//	wb.AddIn("e.uid", []string{"a1", "a2"})
//	whereClause, args := wb.Build()
//	// Result: "o.start_time < ? AND o.end_time > ? AND e.uid IN (?, ?)"
//	// Args: [dayEnd, dayStart, "a1", "a2"]
//
// Time windows are half-open: an interval that ends exactly where the window
// starts does not overlap it.
//
// # Thread Safety
//
// WhereBuilder is not safe for concurrent use. Create one per query.
package query
