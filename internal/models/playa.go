// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package models

import (
	"fmt"
	"time"
)

// ObjectType identifies which directory table an entity belongs to.
type ObjectType string

const (
	ObjectTypeArt   ObjectType = "art"
	ObjectTypeCamp  ObjectType = "camp"
	ObjectTypeEvent ObjectType = "event"
)

// ObjectTypes lists every directory kind in canonical order (art, camp, event).
var ObjectTypes = []ObjectType{ObjectTypeArt, ObjectTypeCamp, ObjectTypeEvent}

// Valid reports whether t is one of the three known object types.
func (t ObjectType) Valid() bool {
	switch t {
	case ObjectTypeArt, ObjectTypeCamp, ObjectTypeEvent:
		return true
	}
	return false
}

// ParseObjectType converts user input ("art", "camps", "event") into an ObjectType.
func ParseObjectType(s string) (ObjectType, error) {
	switch s {
	case "art":
		return ObjectTypeArt, nil
	case "camp", "camps":
		return ObjectTypeCamp, nil
	case "event", "events":
		return ObjectTypeEvent, nil
	}
	return "", fmt.Errorf("unknown object type %q", s)
}

// Coordinate is a WGS84 point. Latitude first, matching the organizer's API.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// String formats the coordinate as "lat,lon" with six decimals.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}

// ArtObject is one art installation from the yearly directory.
type ArtObject struct {
	UID               string      `json:"uid"`
	Name              string      `json:"name"`
	Year              int         `json:"year"`
	Artist            string      `json:"artist,omitempty"`
	Description       string      `json:"description,omitempty"`
	Category          string      `json:"category,omitempty"`
	Program           string      `json:"program,omitempty"`
	DonationLink      string      `json:"donation_link,omitempty"`
	LocationString    string      `json:"location_string,omitempty"`
	GPS               *Coordinate `json:"gps,omitempty"`
	GuidedTours       bool        `json:"guided_tours"`
	SelfGuidedTourMap bool        `json:"self_guided_tour_map"`
	ContactEmail      string      `json:"contact_email,omitempty"`
	Hometown          string      `json:"hometown,omitempty"`
	URL               string      `json:"url,omitempty"`
}

// HasGPSLocation reports whether the art object can be placed on the map.
func (a *ArtObject) HasGPSLocation() bool {
	return a != nil && a.GPS != nil
}

// CampLocation is the street-grid placement of a camp.
type CampLocation struct {
	Frontage         string `json:"frontage,omitempty"`
	Intersection     string `json:"intersection,omitempty"`
	IntersectionType string `json:"intersection_type,omitempty"`
	Dimensions       string `json:"dimensions,omitempty"`
	ExactLocation    string `json:"exact_location,omitempty"`
	LocationString   string `json:"location_string,omitempty"`
}

// CampObject is one theme camp from the yearly directory.
type CampObject struct {
	UID          string       `json:"uid"`
	Name         string       `json:"name"`
	Year         int          `json:"year"`
	Description  string       `json:"description,omitempty"`
	URL          string       `json:"url,omitempty"`
	ContactEmail string       `json:"contact_email,omitempty"`
	Hometown     string       `json:"hometown,omitempty"`
	Landmark     string       `json:"landmark,omitempty"`
	Location     CampLocation `json:"location"`
	GPS          *Coordinate  `json:"gps,omitempty"`
}

// HasGPSLocation reports whether the camp can be placed on the map.
func (c *CampObject) HasGPSLocation() bool {
	return c != nil && c.GPS != nil
}

// EventObject is one scheduled event. An event is hosted by at most one of a
// camp or an art installation; when that host has coordinates the event
// carries the same coordinates.
type EventObject struct {
	UID              string      `json:"uid"`
	Name             string      `json:"name"`
	Year             int         `json:"year"`
	EventID          int64       `json:"event_id"`
	Description      string      `json:"description,omitempty"`
	PrintDescription string      `json:"print_description,omitempty"`
	EventTypeLabel   string      `json:"event_type_label,omitempty"`
	EventTypeCode    string      `json:"event_type_code,omitempty"`
	Slug             string      `json:"slug,omitempty"`
	HostedByCamp     *string     `json:"hosted_by_camp,omitempty"`
	LocatedAtArt     *string     `json:"located_at_art,omitempty"`
	OtherLocation    string      `json:"other_location,omitempty"`
	CheckLocation    bool        `json:"check_location"`
	URL              string      `json:"url,omitempty"`
	AllDay           bool        `json:"all_day"`
	Contact          string      `json:"contact,omitempty"`
	GPS              *Coordinate `json:"gps,omitempty"`
}

// HasGPSLocation reports whether the event can be placed on the map.
func (e *EventObject) HasGPSLocation() bool {
	return e != nil && e.GPS != nil
}

// HostRef returns the reference of the camp or art object hosting the event.
func (e *EventObject) HostRef() (EntityRef, bool) {
	switch {
	case e.HostedByCamp != nil:
		return EntityRef{UID: *e.HostedByCamp, Type: ObjectTypeCamp}, true
	case e.LocatedAtArt != nil:
		return EntityRef{UID: *e.LocatedAtArt, Type: ObjectTypeArt}, true
	}
	return EntityRef{}, false
}

// EventOccurrence is one concrete [StartTime, EndTime) interval of an event.
// Times are held in UTC; Seq is the position in the source occurrence set.
type EventOccurrence struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Seq       int       `json:"seq"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Overlaps reports whether the occurrence intersects the half-open window [from, to).
func (o EventOccurrence) Overlaps(from, to time.Time) bool {
	return o.StartTime.Before(to) && o.EndTime.After(from)
}

// Duration returns the length of the occurrence.
func (o EventOccurrence) Duration() time.Duration {
	return o.EndTime.Sub(o.StartTime)
}

// EventWithOccurrence pairs an event with one of its occurrences.
type EventWithOccurrence struct {
	Event      EventObject     `json:"event"`
	Occurrence EventOccurrence `json:"occurrence"`
}
