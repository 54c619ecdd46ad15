// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package models

import "time"

// DataType names one of the imported collections tracked by UpdateInfo.
// It shares the art/camp/event vocabulary with ObjectType.
type DataType = ObjectType

// FetchStatus is the import state of one data type.
//
// Transitions: unknown -> fetching -> complete | failed, and from complete or
// failed back to fetching when the next import starts.
type FetchStatus string

const (
	FetchStatusUnknown  FetchStatus = "unknown"
	FetchStatusFetching FetchStatus = "fetching"
	FetchStatusComplete FetchStatus = "complete"
	FetchStatusFailed   FetchStatus = "failed"
)

// Valid reports whether s is a known status.
func (s FetchStatus) Valid() bool {
	switch s {
	case FetchStatusUnknown, FetchStatusFetching, FetchStatusComplete, FetchStatusFailed:
		return true
	}
	return false
}

// UpdateInfo is the per-data-type import bookkeeping row.
type UpdateInfo struct {
	DataType    DataType    `json:"data_type"`
	TotalCount  int         `json:"total_count"`
	LastUpdated *time.Time  `json:"last_updated,omitempty"`
	FetchDate   *time.Time  `json:"fetch_date,omitempty"`
	FetchStatus FetchStatus `json:"fetch_status"`
}

// Favorite is a user flag keyed by (uid, object type). It is not touched by
// re-import, so a favorite can outlive the object it points at.
type Favorite struct {
	UID        string     `json:"uid"`
	ObjectType ObjectType `json:"object_type"`
	IsFavorite bool       `json:"is_favorite"`
}

// Ref returns the key of the favorite.
func (f Favorite) Ref() EntityRef {
	return EntityRef{UID: f.UID, Type: f.ObjectType}
}
