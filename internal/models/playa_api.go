// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package models

import "time"

// Playa Directory API Models
// These structures mirror the yearly directory export published by the event
// organizer. Field names follow the public API JSON keys.

// ============================================================================
// Bundle
// ============================================================================

// PlayaBundle is one decoded directory export: the three collections plus
// the optional export timestamp.
type PlayaBundle struct {
	Art         []PlayaArt   `json:"art"`
	Camps       []PlayaCamp  `json:"camp"`
	Events      []PlayaEvent `json:"event"`
	LastUpdated *time.Time   `json:"last_updated,omitempty"` // Export time reported by the source, if any
}

// ============================================================================
// Art - GET /api/v1/art
// ============================================================================

// PlayaArt is a single art record
type PlayaArt struct {
	UID               string         `json:"uid" validate:"required,playa_uid,max=64"`
	Name              string         `json:"name" validate:"required"`
	Year              int            `json:"year" validate:"gte=0"`
	URL               string         `json:"url,omitempty"`
	ContactEmail      string         `json:"contact_email,omitempty"`
	Hometown          string         `json:"hometown,omitempty"`
	Description       string         `json:"description,omitempty"`
	Artist            string         `json:"artist,omitempty"`
	Category          string         `json:"category,omitempty"`
	Program           string         `json:"program,omitempty"`
	DonationLink      string         `json:"donation_link,omitempty"`
	Location          *PlayaLocation `json:"location,omitempty" validate:"omitempty"`
	LocationString    string         `json:"location_string,omitempty"`
	GuidedTours       bool           `json:"guided_tours"`
	SelfGuidedTourMap bool           `json:"self_guided_tour_map"`
}

// ============================================================================
// Camps - GET /api/v1/camp
// ============================================================================

// PlayaCamp is a single camp record
type PlayaCamp struct {
	UID            string         `json:"uid" validate:"required,playa_uid,max=64"`
	Name           string         `json:"name" validate:"required"`
	Year           int            `json:"year" validate:"gte=0"`
	URL            string         `json:"url,omitempty"`
	ContactEmail   string         `json:"contact_email,omitempty"`
	Hometown       string         `json:"hometown,omitempty"`
	Description    string         `json:"description,omitempty"`
	Landmark       string         `json:"landmark,omitempty"`
	Location       *PlayaLocation `json:"location,omitempty" validate:"omitempty"`
	LocationString string         `json:"location_string,omitempty"`
}

// PlayaLocation is the nested location object shared by art and camp records.
// Art uses the clock position fields, camps use the street grid fields.
type PlayaLocation struct {
	Hour             *int     `json:"hour,omitempty"`              // Clock position (art)
	Minute           *int     `json:"minute,omitempty"`            // Clock position (art)
	Distance         *int     `json:"distance,omitempty"`          // Feet from the Man (art)
	Category         string   `json:"category,omitempty"`          // Open playa, keyhole, etc.
	Frontage         string   `json:"frontage,omitempty"`          // Street the camp faces
	Intersection     string   `json:"intersection,omitempty"`      // Cross street
	IntersectionType string   `json:"intersection_type,omitempty"` // "&", "@", ...
	Dimensions       string   `json:"dimensions,omitempty"`        // Lot size, e.g. "50 x 100"
	ExactLocation    string   `json:"exact_location,omitempty"`    // Free-form placement note
	GPSLatitude      *float64 `json:"gps_latitude,omitempty" validate:"omitempty,latitude"`
	GPSLongitude     *float64 `json:"gps_longitude,omitempty" validate:"omitempty,longitude"`
}

// Coordinate returns the GPS point when both latitude and longitude are present.
func (l *PlayaLocation) Coordinate() *Coordinate {
	if l == nil || l.GPSLatitude == nil || l.GPSLongitude == nil {
		return nil
	}
	return &Coordinate{Lat: *l.GPSLatitude, Lon: *l.GPSLongitude}
}

// ============================================================================
// Events - GET /api/v1/event
// ============================================================================

// PlayaEvent is a single event record with its occurrence set
type PlayaEvent struct {
	UID              string            `json:"uid" validate:"required,playa_uid,max=64"`
	Title            string            `json:"title" validate:"required"`
	EventID          int64             `json:"event_id"`
	Year             int               `json:"year" validate:"gte=0"`
	Description      string            `json:"description,omitempty"`
	PrintDescription string            `json:"print_description,omitempty"`
	EventType        *PlayaEventType   `json:"event_type,omitempty"`
	Slug             string            `json:"slug,omitempty"`
	HostedByCamp     *string           `json:"hosted_by_camp,omitempty" validate:"omitempty,excluded_with=LocatedAtArt"`
	LocatedAtArt     *string           `json:"located_at_art,omitempty" validate:"omitempty,excluded_with=HostedByCamp"`
	OtherLocation    string            `json:"other_location,omitempty"`
	CheckLocation    bool              `json:"check_location"`
	URL              string            `json:"url,omitempty"`
	AllDay           bool              `json:"all_day"`
	Contact          string            `json:"contact,omitempty"`
	OccurrenceSet    []PlayaOccurrence `json:"occurrence_set" validate:"dive"`
}

// PlayaEventType is the category label attached to an event
type PlayaEventType struct {
	Label string `json:"label"` // Human readable, e.g. "Music/Party"
	Abbr  string `json:"abbr"`  // Short code, e.g. "prty"
}

// PlayaOccurrence is one scheduled interval. Times are RFC3339 strings with
// an offset; the mapper parses and normalizes them to UTC.
type PlayaOccurrence struct {
	StartTime string `json:"start_time" validate:"required,rfc3339"`
	EndTime   string `json:"end_time" validate:"required,rfc3339"`
}
