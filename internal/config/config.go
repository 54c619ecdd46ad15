// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package config

import (
	"fmt"
	"time"
)

// Config holds all PlayaDB configuration loaded from defaults, an optional
// YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Configuration Categories:
//
//  1. Storage:
//     - Database: DuckDB file path and memory limit
//     - Index: In-process spatial grid tuning
//
//  2. Festival:
//     - Festival: Year and IANA time zone used for per-day event lookups
//
//  3. Import:
//     - Import: Directory and file names of the organizer export
//
//  4. Observability:
//     - Logging: Log levels and output formats
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return fmt.Errorf("failed to load configuration: %w", err)
//	}
//	db, err := database.New(&cfg.Database, &cfg.Index)
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Festival FestivalConfig `koanf:"festival"`
	Import   ImportConfig   `koanf:"import"`
	Index    IndexConfig    `koanf:"index"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path"`       // Database file, or ":memory:"
	MaxMemory string `koanf:"max_memory"` // DuckDB max_memory setting, e.g. "512MB"
	Threads   int    `koanf:"threads"`    // Number of DuckDB threads (0 = use NumCPU)
}

// IsMemory reports whether the database is an in-memory instance.
func (c *DatabaseConfig) IsMemory() bool {
	return c.Path == ":memory:" || c.Path == ""
}

// FestivalConfig describes the event the directory belongs to.
type FestivalConfig struct {
	// Year of the directory being imported.
	Year int `koanf:"year"`

	// Timezone is the IANA zone in which calendar days are interpreted.
	// Default: America/Los_Angeles
	Timezone string `koanf:"timezone"`
}

// Location loads the configured time zone.
func (c *FestivalConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid festival timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ImportConfig holds settings for reading the organizer export from disk.
type ImportConfig struct {
	DataDir   string `koanf:"data_dir"`
	ArtFile   string `koanf:"art_file"`
	CampFile  string `koanf:"camp_file"`
	EventFile string `koanf:"event_file"`
}

// IndexConfig tunes the in-process spatial and text indexes.
type IndexConfig struct {
	// CellSizeM is the spatial grid cell edge in meters.
	CellSizeM float64 `koanf:"cell_size_m"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: console (the CLI is interactive)
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration using the layered Koanf loader.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
