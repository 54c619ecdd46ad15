// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package database

import (
	"database/sql"

	"github.com/tomtom215/playadb/internal/models"
)

// Column lists shared by the row codecs. Scan order matches these lists.
const (
	artColumns = `uid, year, name, artist, description, category, program, donation_link,
		location_string, gps_lat, gps_lon, guided_tours, self_guided_tour_map,
		contact_email, hometown, url`

	campColumns = `uid, year, name, description, url, contact_email, hometown, landmark,
		frontage, intersection, intersection_type, dimensions, exact_location,
		location_string, gps_lat, gps_lon`

	eventColumns = `uid, year, event_id, name, description, print_description,
		event_type_label, event_type_code, slug, hosted_by_camp, located_at_art,
		other_location, check_location, url, all_day, contact, gps_lat, gps_lon`

	occurrenceColumns = `id, event_id, seq, start_time, end_time`
)

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func coordinateFrom(lat, lon sql.NullFloat64) *models.Coordinate {
	if !lat.Valid || !lon.Valid {
		return nil
	}
	return &models.Coordinate{Lat: lat.Float64, Lon: lon.Float64}
}

func coordinateArgs(c *models.Coordinate) (lat, lon any) {
	if c == nil {
		return nil, nil
	}
	return c.Lat, c.Lon
}

func stringPtrFrom(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func stringPtrArg(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func scanArt(row rowScanner) (models.ArtObject, error) {
	var (
		a                                          models.ArtObject
		artist, description, category, program     sql.NullString
		donation, locationString, email, home, url sql.NullString
		lat, lon                                   sql.NullFloat64
	)
	err := row.Scan(&a.UID, &a.Year, &a.Name, &artist, &description, &category, &program, &donation,
		&locationString, &lat, &lon, &a.GuidedTours, &a.SelfGuidedTourMap,
		&email, &home, &url)
	if err != nil {
		return a, err
	}
	a.Artist = artist.String
	a.Description = description.String
	a.Category = category.String
	a.Program = program.String
	a.DonationLink = donation.String
	a.LocationString = locationString.String
	a.GPS = coordinateFrom(lat, lon)
	a.ContactEmail = email.String
	a.Hometown = home.String
	a.URL = url.String
	return a, nil
}

func artArgs(a *models.ArtObject) []any {
	lat, lon := coordinateArgs(a.GPS)
	return []any{a.UID, a.Year, a.Name, a.Artist, a.Description, a.Category, a.Program, a.DonationLink,
		a.LocationString, lat, lon, a.GuidedTours, a.SelfGuidedTourMap,
		a.ContactEmail, a.Hometown, a.URL}
}

func scanCamp(row rowScanner) (models.CampObject, error) {
	var (
		c                                              models.CampObject
		description, url, email, home, landmark        sql.NullString
		frontage, intersection, intersectionType, dims sql.NullString
		exact, locationString                          sql.NullString
		lat, lon                                       sql.NullFloat64
	)
	err := row.Scan(&c.UID, &c.Year, &c.Name, &description, &url, &email, &home, &landmark,
		&frontage, &intersection, &intersectionType, &dims, &exact,
		&locationString, &lat, &lon)
	if err != nil {
		return c, err
	}
	c.Description = description.String
	c.URL = url.String
	c.ContactEmail = email.String
	c.Hometown = home.String
	c.Landmark = landmark.String
	c.Location = models.CampLocation{
		Frontage:         frontage.String,
		Intersection:     intersection.String,
		IntersectionType: intersectionType.String,
		Dimensions:       dims.String,
		ExactLocation:    exact.String,
		LocationString:   locationString.String,
	}
	c.GPS = coordinateFrom(lat, lon)
	return c, nil
}

func campArgs(c *models.CampObject) []any {
	lat, lon := coordinateArgs(c.GPS)
	loc := c.Location
	return []any{c.UID, c.Year, c.Name, c.Description, c.URL, c.ContactEmail, c.Hometown, c.Landmark,
		loc.Frontage, loc.Intersection, loc.IntersectionType, loc.Dimensions, loc.ExactLocation,
		loc.LocationString, lat, lon}
}

func scanEvent(row rowScanner) (models.EventObject, error) {
	var (
		e                                         models.EventObject
		description, printDescription             sql.NullString
		typeLabel, typeCode, slug                 sql.NullString
		hostedByCamp, locatedAtArt, otherLocation sql.NullString
		url, contact                              sql.NullString
		lat, lon                                  sql.NullFloat64
	)
	err := row.Scan(&e.UID, &e.Year, &e.EventID, &e.Name, &description, &printDescription,
		&typeLabel, &typeCode, &slug, &hostedByCamp, &locatedAtArt,
		&otherLocation, &e.CheckLocation, &url, &e.AllDay, &contact, &lat, &lon)
	if err != nil {
		return e, err
	}
	e.Description = description.String
	e.PrintDescription = printDescription.String
	e.EventTypeLabel = typeLabel.String
	e.EventTypeCode = typeCode.String
	e.Slug = slug.String
	e.HostedByCamp = stringPtrFrom(hostedByCamp)
	e.LocatedAtArt = stringPtrFrom(locatedAtArt)
	e.OtherLocation = otherLocation.String
	e.URL = url.String
	e.Contact = contact.String
	e.GPS = coordinateFrom(lat, lon)
	return e, nil
}

func eventArgs(e *models.EventObject) []any {
	lat, lon := coordinateArgs(e.GPS)
	return []any{e.UID, e.Year, e.EventID, e.Name, e.Description, e.PrintDescription,
		e.EventTypeLabel, e.EventTypeCode, e.Slug, stringPtrArg(e.HostedByCamp), stringPtrArg(e.LocatedAtArt),
		e.OtherLocation, e.CheckLocation, e.URL, e.AllDay, e.Contact, lat, lon}
}

func scanOccurrence(row rowScanner) (models.EventOccurrence, error) {
	var o models.EventOccurrence
	if err := row.Scan(&o.ID, &o.EventID, &o.Seq, &o.StartTime, &o.EndTime); err != nil {
		return o, err
	}
	o.StartTime = o.StartTime.UTC()
	o.EndTime = o.EndTime.UTC()
	return o, nil
}
