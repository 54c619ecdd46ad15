// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

// Package updates tracks import bookkeeping per data type (art, camp,
// event): how many rows the last import wrote, when it ran, and whether it
// is fetching, complete or failed.
//
// State machine:
//
//	unknown -> fetching -> complete | failed
//	complete | failed -> fetching
//
// The importer is the only writer. Queries only read.
package updates
