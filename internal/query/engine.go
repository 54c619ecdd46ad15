// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package playaquery

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tomtom215/playadb/internal/cache"
	"github.com/tomtom215/playadb/internal/database"
	"github.com/tomtom215/playadb/internal/logging"
	"github.com/tomtom215/playadb/internal/models"
	"github.com/tomtom215/playadb/internal/validation"
)

// ErrInvalidRegion is returned for a bounding rectangle or search circle
// that is out of range or inverted.
var ErrInvalidRegion = errors.New("invalid region")

// DefaultSuggestLimit caps Suggest when the caller passes a non-positive limit.
const DefaultSuggestLimit = 10

// Engine answers read-only directory queries. It is safe for concurrent use.
type Engine struct {
	db  *database.DB
	loc *time.Location
}

// New creates an Engine. Calendar days are evaluated in festivalLoc; nil
// means UTC.
func New(db *database.DB, festivalLoc *time.Location) *Engine {
	if festivalLoc == nil {
		festivalLoc = time.UTC
	}
	return &Engine{db: db, loc: festivalLoc}
}

// Location returns the festival time zone.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// FetchArt returns every art object.
func (e *Engine) FetchArt(ctx context.Context) ([]models.ArtObject, error) {
	return e.db.ListArt(ctx)
}

// FetchCamps returns every camp.
func (e *Engine) FetchCamps(ctx context.Context) ([]models.CampObject, error) {
	return e.db.ListCamps(ctx)
}

// FetchEvents returns every event.
func (e *Engine) FetchEvents(ctx context.Context) ([]models.EventObject, error) {
	return e.db.ListEvents(ctx)
}

// DayBounds returns the festival-local [start, end) window of one festival
// day. A value at midnight in its own location is read as a calendar date,
// so a date parsed in UTC names the same festival day. Any other value is
// an instant and selects the festival day it falls on.
func (e *Engine) DayBounds(day time.Time) (time.Time, time.Time) {
	if h, mi, sec := day.Clock(); h != 0 || mi != 0 || sec != 0 || day.Nanosecond() != 0 {
		day = day.In(e.loc)
	}
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, e.loc)
	return start, start.AddDate(0, 0, 1)
}

// FetchEventsOn returns the events with at least one occurrence touching
// the given festival day. An occurrence running past midnight counts for
// both days.
func (e *Engine) FetchEventsOn(ctx context.Context, day time.Time) ([]models.EventObject, error) {
	from, to := e.DayBounds(day)
	return e.db.EventsOverlapping(ctx, from, to)
}

// FetchEventOccurrencesOn returns the (event, occurrence) pairs of one
// festival day ordered by start time, ties in source order.
func (e *Engine) FetchEventOccurrencesOn(ctx context.Context, day time.Time) ([]models.EventWithOccurrence, error) {
	from, to := e.DayBounds(day)
	return e.db.OccurrencesOverlapping(ctx, from, to)
}

// FetchOccurrences returns the occurrences of one event in source order.
func (e *Engine) FetchOccurrences(ctx context.Context, eventUID string) ([]models.EventOccurrence, error) {
	return e.db.OccurrencesForEvent(ctx, eventUID)
}

// FetchEventsHostedBy returns the events hosted by a camp or located at an
// art object.
func (e *Engine) FetchEventsHostedBy(ctx context.Context, host models.EntityRef) ([]models.EventObject, error) {
	if err := host.Validate(); err != nil {
		return nil, err
	}
	return e.db.EventsHostedBy(ctx, host)
}

// FetchObject returns one object, or nil when it does not exist.
func (e *Engine) FetchObject(ctx context.Context, ref models.EntityRef) (*models.Entity, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	entities, err := e.db.GetEntities(ctx, []models.EntityRef{ref})
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, nil
	}
	return &entities[0], nil
}

// FetchObjectsIn returns every object whose coordinate lies inside r, edges
// included. Results are ordered art, camp, event and then by uid.
func (e *Engine) FetchObjectsIn(ctx context.Context, r models.Region) ([]models.Entity, error) {
	if verr := validation.ValidateStruct(&r); verr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegion, verr)
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegion, err)
	}

	return e.lookup(ctx, func(ix database.Indexes) []models.EntityRef {
		return ix.InRegion(r)
	})
}

// FetchObjectsNear returns every object within radiusM meters of c.
func (e *Engine) FetchObjectsNear(ctx context.Context, c models.Coordinate, radiusM float64) ([]models.Entity, error) {
	if math.IsNaN(radiusM) || radiusM <= 0 {
		return nil, fmt.Errorf("%w: radius must be positive, got %f", ErrInvalidRegion, radiusM)
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return nil, fmt.Errorf("%w: coordinate out of range: %s", ErrInvalidRegion, c)
	}

	return e.lookup(ctx, func(ix database.Indexes) []models.EntityRef {
		return ix.Near(c, radiusM)
	})
}

// SearchObjects returns the objects matching every token of q by prefix
// across name, artist, description and contact. A blank query matches
// nothing.
func (e *Engine) SearchObjects(ctx context.Context, q string) ([]models.Entity, error) {
	tokens := cache.Tokenize(q)
	if len(tokens) == 0 {
		return []models.Entity{}, nil
	}

	logging.Ctx(ctx).Debug().Strs("tokens", tokens).Msg("Searching directory")

	return e.lookup(ctx, func(ix database.Indexes) []models.EntityRef {
		return ix.Search(tokens)
	})
}

// Suggest returns indexed words starting with prefix, most common first.
func (e *Engine) Suggest(ctx context.Context, prefix string, limit int) ([]cache.TrieResult, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []cache.TrieResult{}, nil
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}

	var out []cache.TrieResult
	err := e.db.Indexed(func(ix database.Indexes) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		out = ix.Suggest(prefix, limit)
		return nil
	})
	if out == nil {
		out = []cache.TrieResult{}
	}
	return out, err
}

// lookup resolves index hits to rows while holding the index generation,
// so hits and rows come from the same committed import.
func (e *Engine) lookup(ctx context.Context, find func(ix database.Indexes) []models.EntityRef) ([]models.Entity, error) {
	var out []models.Entity
	err := e.db.Indexed(func(ix database.Indexes) error {
		refs := find(ix)
		if len(refs) == 0 {
			out = []models.Entity{}
			return nil
		}
		var err error
		out, err = e.db.GetEntities(ctx, refs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
