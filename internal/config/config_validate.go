// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateFestival(); err != nil {
		return err
	}

	if err := c.validateImport(); err != nil {
		return err
	}

	if err := c.validateIndex(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateDatabase validates DuckDB settings
func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("PLAYADB_DB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative, got %d", c.Database.Threads)
	}
	return nil
}

// validateFestival validates the festival year and time zone
func (c *Config) validateFestival() error {
	if c.Festival.Year < 1986 || c.Festival.Year > 2100 {
		return fmt.Errorf("FESTIVAL_YEAR must be between 1986 and 2100, got %d", c.Festival.Year)
	}
	if _, err := c.Festival.Location(); err != nil {
		return fmt.Errorf("FESTIVAL_TIMEZONE is invalid: %w", err)
	}
	return nil
}

// validateImport validates the export file names
func (c *Config) validateImport() error {
	for name, value := range map[string]string{
		"IMPORT_ART_FILE":   c.Import.ArtFile,
		"IMPORT_CAMP_FILE":  c.Import.CampFile,
		"IMPORT_EVENT_FILE": c.Import.EventFile,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	return nil
}

// validateIndex validates spatial index tuning
func (c *Config) validateIndex() error {
	if c.Index.CellSizeM <= 0 {
		return fmt.Errorf("INDEX_CELL_SIZE_M must be positive, got %f", c.Index.CellSizeM)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// validateLogLevel validates the log level configuration
func (c *Config) validateLogLevel() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}

// validateLogFormat validates the log format configuration
func (c *Config) validateLogFormat() error {
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
