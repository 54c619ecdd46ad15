// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

/*
Command playadb imports the festival directory export into a local DuckDB
store and queries it from the command line.

Every command prints JSON on stdout; logs go to stderr.

# Commands

	playadb import [--dir DIR]             replace the directory from the export files
	playadb art | camps                    list art or camps
	playadb events [--day D] [--schedule]  list events, optionally for one festival day
	playadb get <type> <uid>               show one object
	playadb occurrences <event-uid>        scheduled times of an event
	playadb hosted <camp|art> <uid>        events at a camp or art installation
	playadb search <words...>              prefix search over names and descriptions
	playadb suggest <prefix>               autocomplete a search word
	playadb region --min-lat --min-lon \
	    --max-lat --max-lon                objects inside a rectangle
	playadb near --lat --lon [--radius M]  objects around a point
	playadb favorite toggle <type> <uid>   flip a favorite
	playadb favorite list [--refs]         list favorites
	playadb updates                        import status per data type
	playadb stats                          row counts

Configuration comes from defaults, an optional config.yaml and environment
variables (see package config). The --db flag overrides the database path.

Coordinates are flags rather than positional arguments so negative
longitudes are not taken for flags; write them as --lon=-119.2065.
*/
package main
