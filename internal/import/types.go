// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package playaimport

import (
	"time"

	"github.com/tomtom215/playadb/internal/models"
)

// ImportStats holds statistics about an import operation.
type ImportStats struct {
	// CorrelationID ties log lines of one import run together.
	CorrelationID string

	// Art, Camps, Events are the row counts written per data type.
	Art    int
	Camps  int
	Events int

	// Occurrences is the number of event occurrences written.
	Occurrences int

	// Deleted counts rows removed because their uid vanished from the source.
	Deleted map[models.DataType]int

	// UnresolvedHosts lists events stored without their host reference.
	UnresolvedHosts []UnresolvedHostError

	// StartTime is when the import started.
	StartTime time.Time

	// EndTime is when the import completed (zero if still running).
	EndTime time.Time
}

// Duration returns the duration of the import operation.
func (s *ImportStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// Count returns the number of rows written for dt.
func (s *ImportStats) Count(dt models.DataType) int {
	switch dt {
	case models.ObjectTypeArt:
		return s.Art
	case models.ObjectTypeCamp:
		return s.Camps
	case models.ObjectTypeEvent:
		return s.Events
	}
	return 0
}

// TotalRecords returns the number of entity rows written.
func (s *ImportStats) TotalRecords() int {
	return s.Art + s.Camps + s.Events
}

// RecordsPerSecond returns the import rate.
func (s *ImportStats) RecordsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.TotalRecords()) / duration
}

// ImportSummary is the JSON form of ImportStats.
type ImportSummary struct {
	CorrelationID   string         `json:"correlation_id"`
	Art             int            `json:"art"`
	Camps           int            `json:"camps"`
	Events          int            `json:"events"`
	Occurrences     int            `json:"occurrences"`
	Deleted         map[string]int `json:"deleted,omitempty"`
	UnresolvedHosts []string       `json:"unresolved_hosts,omitempty"`
	RecordsPerSec   float64        `json:"records_per_second"`
	ElapsedSeconds  float64        `json:"elapsed_seconds"`
	StartTime       time.Time      `json:"start_time"`
}

// ToSummary converts ImportStats to an ImportSummary with calculated fields.
func (s *ImportStats) ToSummary() *ImportSummary {
	summary := &ImportSummary{
		CorrelationID:  s.CorrelationID,
		Art:            s.Art,
		Camps:          s.Camps,
		Events:         s.Events,
		Occurrences:    s.Occurrences,
		RecordsPerSec:  s.RecordsPerSecond(),
		ElapsedSeconds: s.Duration().Seconds(),
		StartTime:      s.StartTime,
	}

	if len(s.Deleted) > 0 {
		summary.Deleted = make(map[string]int, len(s.Deleted))
		for dt, n := range s.Deleted {
			summary.Deleted[string(dt)] = n
		}
	}
	for _, u := range s.UnresolvedHosts {
		summary.UnresolvedHosts = append(summary.UnresolvedHosts, u.Error())
	}
	return summary
}
