// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

/*
Package config provides centralized configuration management for PlayaDB.

# Configuration Sources

Configuration is layered with Koanf v2, later layers overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - Optional YAML file: $CONFIG_PATH, config.yaml, config.yml, /etc/playadb/config.yaml
  - Environment variables

# Environment Variables

Database (DatabaseConfig):
  - PLAYADB_DB_PATH / DUCKDB_PATH: Database file (default: playadb.duckdb)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 512MB)
  - DUCKDB_THREADS: DuckDB worker threads (default: NumCPU)

Festival (FestivalConfig):
  - FESTIVAL_YEAR: Directory year (default: 2025)
  - FESTIVAL_TIMEZONE: IANA zone for calendar days (default: America/Los_Angeles)

Import (ImportConfig):
  - IMPORT_DATA_DIR: Directory holding the export (default: data)
  - IMPORT_ART_FILE, IMPORT_CAMP_FILE, IMPORT_EVENT_FILE: File names

Index (IndexConfig):
  - INDEX_CELL_SIZE_M: Spatial grid cell edge in meters (default: 100)

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: console)
  - LOG_CALLER: Include caller file:line (default: false)

# Example YAML

	database:
	  path: /var/lib/playadb/playa.duckdb
	festival:
	  year: 2025
	  timezone: America/Los_Angeles
	import:
	  data_dir: /var/lib/playadb/export
*/
package config
