// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package playaimport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/playadb/internal/config"
	"github.com/tomtom215/playadb/internal/models"
)

// Source supplies one decoded directory bundle per import.
type Source interface {
	Fetch(ctx context.Context) (*models.PlayaBundle, error)
}

// DirSource reads the organizer export (one JSON array per data type) from
// a local directory.
type DirSource struct {
	Dir       string
	ArtFile   string
	CampFile  string
	EventFile string
}

// NewDirSource creates a DirSource from import configuration.
func NewDirSource(cfg *config.ImportConfig) *DirSource {
	return &DirSource{
		Dir:       cfg.DataDir,
		ArtFile:   cfg.ArtFile,
		CampFile:  cfg.CampFile,
		EventFile: cfg.EventFile,
	}
}

// Fetch decodes the three export files. The bundle's LastUpdated is the
// newest modification time among them.
func (s *DirSource) Fetch(ctx context.Context) (*models.PlayaBundle, error) {
	bundle := &models.PlayaBundle{}

	var newest time.Time
	files := []struct {
		dataType models.DataType
		name     string
		dst      any
	}{
		{models.ObjectTypeArt, s.ArtFile, &bundle.Art},
		{models.ObjectTypeCamp, s.CampFile, &bundle.Camps},
		{models.ObjectTypeEvent, s.EventFile, &bundle.Events},
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(s.Dir, f.name)
		modTime, err := decodeFile(path, f.dst)
		if err != nil {
			return nil, &ImportError{Kind: KindSourceUnavailable, DataType: f.dataType, Err: err}
		}
		if modTime.After(newest) {
			newest = modTime
		}
	}

	if !newest.IsZero() {
		lu := newest.UTC()
		bundle.LastUpdated = &lu
	}
	return bundle, nil
}

func decodeFile(path string, dst any) (time.Time, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return time.Time{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return time.Time{}, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := json.NewDecoder(f).Decode(dst); err != nil {
		return time.Time{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return info.ModTime(), nil
}

// StaticSource serves a bundle that is already in memory.
type StaticSource struct {
	Bundle *models.PlayaBundle
}

// Fetch returns the wrapped bundle.
func (s StaticSource) Fetch(ctx context.Context) (*models.PlayaBundle, error) {
	if s.Bundle == nil {
		return nil, &ImportError{Kind: KindSourceUnavailable, Err: fmt.Errorf("no bundle")}
	}
	return s.Bundle, nil
}
