// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/tomtom215/playadb/internal/models"
)

func TestStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := storageErr("upsert art", cause)

	if !IsStorageError(err) {
		t.Fatal("IsStorageError() = false for a StorageError")
	}
	if !errors.Is(err, cause) {
		t.Error("StorageError should unwrap to its cause")
	}
	checkStringEqual(t, "message", err.Error(), "storage upsert art: disk full")

	wrapped := fmt.Errorf("import: %w", err)
	if !IsStorageError(wrapped) {
		t.Error("IsStorageError() should see through wrapping")
	}

	if storageErr("noop", nil) != nil {
		t.Error("storageErr(nil) should be nil")
	}
	if IsStorageError(cause) {
		t.Error("plain errors are not storage errors")
	}
}

func TestTableFor(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want string
	}{
		{"art", TableArt},
		{"camp", TableCamps},
		{"event", TableEvents},
	} {
		got, err := TableFor(models.ObjectType(tt.in))
		checkNoError(t, err)
		checkStringEqual(t, tt.in, got, tt.want)
	}

	if _, err := TableFor("favorites"); err == nil {
		t.Error("TableFor(favorites) should fail")
	}
}
