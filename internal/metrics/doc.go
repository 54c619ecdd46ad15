// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

/*
Package metrics provides Prometheus instrumentation for PlayaDB.

All collectors are registered with the default registry through promauto.
The embedding application decides whether and how to expose them.

# Metric Catalog

Storage:
  - playadb_query_duration_seconds{operation,table}: histogram
  - playadb_query_errors_total{operation,table,error_type}: counter

Import:
  - playadb_import_duration_seconds: histogram
  - playadb_import_records_total{data_type}: counter
  - playadb_import_failures_total{kind}: counter
  - playadb_unresolved_hosts_total: counter

Indexes and favorites:
  - playadb_index_entries{index}: gauge (spatial, text)
  - playadb_favorite_toggles_total{object_type}: counter

# Usage

	start := time.Now()
	rows, err := conn.QueryContext(ctx, query)
	metrics.RecordDBQuery("select", "art", time.Since(start), err)
*/
package metrics
