// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package playaimport

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/playadb/internal/models"
	"github.com/tomtom215/playadb/internal/validation"
)

// occurrenceNamespace scopes the name-based occurrence IDs.
var occurrenceNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/tomtom215/playadb/event-occurrence"))

// errDuplicateUID marks a uid seen twice in one collection.
var errDuplicateUID = errors.New("duplicate uid")

// Directory is a fully mapped bundle ready to be written.
type Directory struct {
	Art         []models.ArtObject
	Camps       []models.CampObject
	Events      []models.EventObject
	Occurrences []models.EventOccurrence
}

// Mapper converts organizer source records into directory rows.
type Mapper struct{}

// NewMapper creates a new Mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// OccurrenceID derives the stable id of the index-th occurrence of an
// event. Identical input always yields the same id.
func OccurrenceID(eventUID string, start, end time.Time, index int) string {
	name := fmt.Sprintf("%s|%s|%s|%d",
		eventUID,
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339),
		index,
	)
	return uuid.NewSHA1(occurrenceNamespace, []byte(name)).String()
}

// MapBundle maps and validates every record. The first malformed record
// fails the whole bundle with an *ImportError wrapping a *SourceError.
func (m *Mapper) MapBundle(b *models.PlayaBundle) (*Directory, error) {
	dir := &Directory{
		Art:    make([]models.ArtObject, 0, len(b.Art)),
		Camps:  make([]models.CampObject, 0, len(b.Camps)),
		Events: make([]models.EventObject, 0, len(b.Events)),
	}

	seen := make(map[string]struct{}, len(b.Art))
	for i := range b.Art {
		art, err := m.MapArt(&b.Art[i])
		if err == nil {
			err = checkUnique(seen, art.UID)
		}
		if err != nil {
			return nil, malformed(models.ObjectTypeArt, &SourceError{DataType: models.ObjectTypeArt, Index: i, UID: b.Art[i].UID, Err: err})
		}
		dir.Art = append(dir.Art, art)
	}

	seen = make(map[string]struct{}, len(b.Camps))
	for i := range b.Camps {
		camp, err := m.MapCamp(&b.Camps[i])
		if err == nil {
			err = checkUnique(seen, camp.UID)
		}
		if err != nil {
			return nil, malformed(models.ObjectTypeCamp, &SourceError{DataType: models.ObjectTypeCamp, Index: i, UID: b.Camps[i].UID, Err: err})
		}
		dir.Camps = append(dir.Camps, camp)
	}

	seen = make(map[string]struct{}, len(b.Events))
	for i := range b.Events {
		event, occs, err := m.MapEvent(&b.Events[i])
		if err == nil {
			err = checkUnique(seen, event.UID)
		}
		if err != nil {
			return nil, malformed(models.ObjectTypeEvent, &SourceError{DataType: models.ObjectTypeEvent, Index: i, UID: b.Events[i].UID, Err: err})
		}
		dir.Events = append(dir.Events, event)
		dir.Occurrences = append(dir.Occurrences, occs...)
	}

	return dir, nil
}

func checkUnique(seen map[string]struct{}, uid string) error {
	if _, dup := seen[uid]; dup {
		return errDuplicateUID
	}
	seen[uid] = struct{}{}
	return nil
}

// MapArt converts one art record.
func (m *Mapper) MapArt(rec *models.PlayaArt) (models.ArtObject, error) {
	if verr := validation.ValidateStruct(rec); verr != nil {
		return models.ArtObject{}, verr
	}

	art := models.ArtObject{
		UID:               rec.UID,
		Name:              rec.Name,
		Year:              rec.Year,
		Artist:            rec.Artist,
		Description:       rec.Description,
		Category:          rec.Category,
		Program:           rec.Program,
		DonationLink:      rec.DonationLink,
		LocationString:    rec.LocationString,
		GPS:               rec.Location.Coordinate(),
		GuidedTours:       rec.GuidedTours,
		SelfGuidedTourMap: rec.SelfGuidedTourMap,
		ContactEmail:      rec.ContactEmail,
		Hometown:          rec.Hometown,
		URL:               rec.URL,
	}
	if art.Category == "" && rec.Location != nil {
		art.Category = rec.Location.Category
	}
	return art, nil
}

// MapCamp converts one camp record.
func (m *Mapper) MapCamp(rec *models.PlayaCamp) (models.CampObject, error) {
	if verr := validation.ValidateStruct(rec); verr != nil {
		return models.CampObject{}, verr
	}

	camp := models.CampObject{
		UID:          rec.UID,
		Name:         rec.Name,
		Year:         rec.Year,
		Description:  rec.Description,
		URL:          rec.URL,
		ContactEmail: rec.ContactEmail,
		Hometown:     rec.Hometown,
		Landmark:     rec.Landmark,
		Location:     models.CampLocation{LocationString: rec.LocationString},
		GPS:          rec.Location.Coordinate(),
	}
	if loc := rec.Location; loc != nil {
		camp.Location.Frontage = loc.Frontage
		camp.Location.Intersection = loc.Intersection
		camp.Location.IntersectionType = loc.IntersectionType
		camp.Location.Dimensions = loc.Dimensions
		camp.Location.ExactLocation = loc.ExactLocation
	}
	return camp, nil
}

// MapEvent converts one event record and its occurrence set. The event's
// GPS is left unset; it is inherited from the host later.
func (m *Mapper) MapEvent(src *models.PlayaEvent) (models.EventObject, []models.EventOccurrence, error) {
	rec := *src
	rec.HostedByCamp = blankToNil(rec.HostedByCamp)
	rec.LocatedAtArt = blankToNil(rec.LocatedAtArt)

	if verr := validation.ValidateStruct(&rec); verr != nil {
		return models.EventObject{}, nil, verr
	}

	event := models.EventObject{
		UID:              rec.UID,
		Name:             rec.Title,
		Year:             rec.Year,
		EventID:          rec.EventID,
		Description:      rec.Description,
		PrintDescription: rec.PrintDescription,
		Slug:             rec.Slug,
		HostedByCamp:     rec.HostedByCamp,
		LocatedAtArt:     rec.LocatedAtArt,
		OtherLocation:    rec.OtherLocation,
		CheckLocation:    rec.CheckLocation,
		URL:              rec.URL,
		AllDay:           rec.AllDay,
		Contact:          rec.Contact,
	}
	if rec.EventType != nil {
		event.EventTypeLabel = rec.EventType.Label
		event.EventTypeCode = rec.EventType.Abbr
	}

	occs := make([]models.EventOccurrence, 0, len(rec.OccurrenceSet))
	for i, o := range rec.OccurrenceSet {
		occ, err := mapOccurrence(rec.UID, i, o)
		if err != nil {
			return models.EventObject{}, nil, fmt.Errorf("occurrence_set[%d]: %w", i, err)
		}
		occs = append(occs, occ)
	}
	return event, occs, nil
}

func mapOccurrence(eventUID string, index int, o models.PlayaOccurrence) (models.EventOccurrence, error) {
	start, err := time.Parse(time.RFC3339, o.StartTime)
	if err != nil {
		return models.EventOccurrence{}, fmt.Errorf("start_time: %w", err)
	}
	end, err := time.Parse(time.RFC3339, o.EndTime)
	if err != nil {
		return models.EventOccurrence{}, fmt.Errorf("end_time: %w", err)
	}
	if !end.After(start) {
		return models.EventOccurrence{}, fmt.Errorf("end_time %s is not after start_time %s", o.EndTime, o.StartTime)
	}

	return models.EventOccurrence{
		ID:        OccurrenceID(eventUID, start, end, index),
		EventID:   eventUID,
		Seq:       index,
		StartTime: start.UTC(),
		EndTime:   end.UTC(),
	}, nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
