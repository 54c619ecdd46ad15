// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

/*
Package playaquery provides the read-only query surface over an imported
festival directory.

# Operations

Listings:
  - FetchArt, FetchCamps, FetchEvents: every row of one kind
  - FetchObject: one object by (uid, type)

Schedule:
  - FetchEventsOn: events with an occurrence touching one festival day
  - FetchEventOccurrencesOn: (event, occurrence) pairs for a day, by start time
  - FetchOccurrences: the occurrence set of one event
  - FetchEventsHostedBy: events at a camp or art object

Map and search (served from the in-process indexes):
  - FetchObjectsIn: objects inside a lat/lon rectangle
  - FetchObjectsNear: objects within a radius
  - SearchObjects: every query token must prefix-match the object
  - Suggest: autocomplete over indexed words

# Festival Days

Days are evaluated in the festival time zone passed to New. An occurrence
from 23:00 to 01:00 belongs to both days it touches.

# Example

	engine := playaquery.New(db, loc)
	events, err := engine.FetchEventsOn(ctx, time.Date(2025, 8, 28, 0, 0, 0, 0, time.UTC))
	objs, err := engine.FetchObjectsIn(ctx, models.Region{MinLat: 40.78, MinLon: -119.22, MaxLat: 40.79, MaxLon: -119.20})
	hits, err := engine.SearchObjects(ctx, "temple deep")

Index lookups and row fetches run under the same index generation, so a
concurrent import never mixes old hits with new rows.
*/
package playaquery
