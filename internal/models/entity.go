// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package models

import (
	"errors"
	"fmt"
)

// EntityRef identifies one directory object across the three tables.
type EntityRef struct {
	UID  string     `json:"uid"`
	Type ObjectType `json:"type"`
}

// String formats the reference as "type:uid".
func (r EntityRef) String() string {
	return string(r.Type) + ":" + r.UID
}

// Validate checks that the reference names a known object type and a uid.
func (r EntityRef) Validate() error {
	if r.UID == "" {
		return errors.New("entity ref: uid is required")
	}
	if !r.Type.Valid() {
		return fmt.Errorf("entity ref: unknown object type %q", r.Type)
	}
	return nil
}

// Entity is a tagged union over the three directory kinds. Exactly one of
// Art, Camp, Event is non-nil and Type says which one. Callers switch on
// Type instead of type-asserting.
type Entity struct {
	Type  ObjectType   `json:"type"`
	Art   *ArtObject   `json:"art,omitempty"`
	Camp  *CampObject  `json:"camp,omitempty"`
	Event *EventObject `json:"event,omitempty"`
}

// NewArtEntity wraps an art object.
func NewArtEntity(a *ArtObject) Entity {
	return Entity{Type: ObjectTypeArt, Art: a}
}

// NewCampEntity wraps a camp object.
func NewCampEntity(c *CampObject) Entity {
	return Entity{Type: ObjectTypeCamp, Camp: c}
}

// NewEventEntity wraps an event object.
func NewEventEntity(e *EventObject) Entity {
	return Entity{Type: ObjectTypeEvent, Event: e}
}

// UID returns the uid of the wrapped object.
func (e Entity) UID() string {
	switch e.Type {
	case ObjectTypeArt:
		return e.Art.UID
	case ObjectTypeCamp:
		return e.Camp.UID
	case ObjectTypeEvent:
		return e.Event.UID
	}
	return ""
}

// Name returns the display name of the wrapped object.
func (e Entity) Name() string {
	switch e.Type {
	case ObjectTypeArt:
		return e.Art.Name
	case ObjectTypeCamp:
		return e.Camp.Name
	case ObjectTypeEvent:
		return e.Event.Name
	}
	return ""
}

// GPS returns the coordinate of the wrapped object, or nil when it has none.
func (e Entity) GPS() *Coordinate {
	switch e.Type {
	case ObjectTypeArt:
		return e.Art.GPS
	case ObjectTypeCamp:
		return e.Camp.GPS
	case ObjectTypeEvent:
		return e.Event.GPS
	}
	return nil
}

// Ref returns the (uid, type) key of the wrapped object.
func (e Entity) Ref() EntityRef {
	return EntityRef{UID: e.UID(), Type: e.Type}
}

// Region is a latitude/longitude bounding rectangle. Edges are inclusive.
type Region struct {
	MinLat float64 `json:"min_lat" validate:"latitude"`
	MinLon float64 `json:"min_lon" validate:"longitude"`
	MaxLat float64 `json:"max_lat" validate:"latitude,gtefield=MinLat"`
	MaxLon float64 `json:"max_lon" validate:"longitude,gtefield=MinLon"`
}

// Contains reports whether c lies inside the rectangle (edges included).
func (r Region) Contains(c Coordinate) bool {
	return c.Lat >= r.MinLat && c.Lat <= r.MaxLat &&
		c.Lon >= r.MinLon && c.Lon <= r.MaxLon
}

// Validate rejects rectangles with out-of-range or inverted bounds.
func (r Region) Validate() error {
	if r.MinLat < -90 || r.MaxLat > 90 {
		return fmt.Errorf("region latitude out of range: [%f, %f]", r.MinLat, r.MaxLat)
	}
	if r.MinLon < -180 || r.MaxLon > 180 {
		return fmt.Errorf("region longitude out of range: [%f, %f]", r.MinLon, r.MaxLon)
	}
	if r.MinLat > r.MaxLat || r.MinLon > r.MaxLon {
		return fmt.Errorf("region bounds inverted: min (%f, %f) max (%f, %f)",
			r.MinLat, r.MinLon, r.MaxLat, r.MaxLon)
	}
	return nil
}
