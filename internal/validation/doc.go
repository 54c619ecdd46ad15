// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

/*
Package validation provides struct validation for PlayaDB.

It wraps a singleton go-playground/validator v10 instance and translates
validator errors into readable messages. The importer validates every
decoded source record before mapping, and the query engine validates
caller-supplied map regions.

# Custom Validators

  - rfc3339: string parses as an RFC3339 timestamp with offset
  - playa_uid: non-blank identifier without surrounding whitespace

# Usage

	if err := validation.ValidateStruct(&rec); err != nil {
	    return fmt.Errorf("art[%d]: %w", i, err)
	}
*/
package validation
