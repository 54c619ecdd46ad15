// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package playaimport

import (
	"errors"
	"fmt"

	"github.com/tomtom215/playadb/internal/models"
)

// Kind classifies why an import failed.
type Kind string

const (
	// KindSourceUnavailable means the source data could not be read at all.
	KindSourceUnavailable Kind = "source_unavailable"
	// KindMalformedRecord means a record failed to parse or validate.
	KindMalformedRecord Kind = "malformed_record"
	// KindWriteFailed means the store rejected the import transaction.
	KindWriteFailed Kind = "write_failed"
)

// Sentinels matched by errors.Is against an *ImportError of the same kind.
var (
	ErrSourceUnavailable = errors.New("import source unavailable")
	ErrMalformedRecord   = errors.New("malformed source record")
	ErrWriteFailed       = errors.New("import write failed")
)

// ErrImportInProgress is returned when an import is started on an Importer
// that is already running one.
var ErrImportInProgress = errors.New("import already in progress")

// ImportError is the typed failure of one import call. When it is returned
// the store is unchanged from its last committed state.
type ImportError struct {
	Kind     Kind
	DataType models.DataType // Empty when the failure is not tied to one data type
	Err      error
}

func (e *ImportError) Error() string {
	if e.DataType != "" {
		return fmt.Sprintf("import %s (%s): %v", e.Kind, e.DataType, e.Err)
	}
	return fmt.Sprintf("import %s: %v", e.Kind, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the kind sentinels.
func (e *ImportError) Is(target error) bool {
	switch target {
	case ErrSourceUnavailable:
		return e.Kind == KindSourceUnavailable
	case ErrMalformedRecord:
		return e.Kind == KindMalformedRecord
	case ErrWriteFailed:
		return e.Kind == KindWriteFailed
	}
	return false
}

// SourceError pinpoints a malformed upstream record.
type SourceError struct {
	DataType models.DataType
	Index    int    // Position in the source collection
	UID      string // Empty when the record has no usable uid
	Err      error
}

func (e *SourceError) Error() string {
	if e.UID != "" {
		return fmt.Sprintf("%s[%d] uid=%s: %v", e.DataType, e.Index, e.UID, e.Err)
	}
	return fmt.Sprintf("%s[%d]: %v", e.DataType, e.Index, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// UnresolvedHostError records an event whose host reference does not match
// any imported camp or art object. It never aborts an import: the event is
// stored without host and GPS.
type UnresolvedHostError struct {
	EventUID string
	Host     models.EntityRef
}

func (e UnresolvedHostError) Error() string {
	return fmt.Sprintf("event %s references unknown %s %q", e.EventUID, e.Host.Type, e.Host.UID)
}

func malformed(dt models.DataType, err error) *ImportError {
	return &ImportError{Kind: KindMalformedRecord, DataType: dt, Err: err}
}
