// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

/*
Package models defines data structures for the PlayaDB festival directory.

This package holds the persisted directory entities, the bookkeeping rows
that track imports and favorites, and the source records decoded from the
organizer's yearly export. It has no dependencies on storage or transport.

Key Components:

  - ArtObject, CampObject, EventObject: directory entities keyed by uid
  - EventOccurrence: one concrete [start, end) interval owned by an event
  - Entity: tagged union over the three kinds, used by search and map queries
  - UpdateInfo: per-data-type import status (unknown, fetching, complete, failed)
  - Favorite: user flag keyed by (uid, object type), kept across re-imports
  - PlayaArt, PlayaCamp, PlayaEvent: source records from the organizer API

Model Categories:

1. Directory Models:
  - Entities carry an optional GPS *Coordinate; HasGPSLocation reports presence
  - Events reference at most one host (camp or art) and inherit its coordinate

2. Bookkeeping Models:
  - UpdateInfo and Favorite are written by the importer and favorites service

3. Source Models:
  - Decoded from art.json, camp.json, event.json
  - Validated with go-playground/validator struct tags before mapping

Usage Example - Working with the tagged union:

	import "github.com/tomtom215/playadb/internal/models"

	for _, e := range results {
	    switch e.Type {
	    case models.ObjectTypeArt:
	        fmt.Println("art:", e.Art.Name, e.Art.Artist)
	    case models.ObjectTypeCamp:
	        fmt.Println("camp:", e.Camp.Name, e.Camp.Location.Frontage)
	    case models.ObjectTypeEvent:
	        fmt.Println("event:", e.Event.Name)
	    }
	}

Usage Example - Bounding regions:

	region := models.Region{MinLat: 40.78, MinLon: -119.22, MaxLat: 40.80, MaxLon: -119.19}
	if err := region.Validate(); err != nil {
	    return err
	}
	inside := region.Contains(*art.GPS)

Thread Safety:

Model types are plain values with no internal synchronization. Values
returned by the query engine are copies owned by the caller.
*/
package models
