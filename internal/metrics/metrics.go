// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package metrics

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the directory store:
// - Storage query performance (DuckDB)
// - Import runs and record throughput
// - In-process index sizes
// - Favorites activity

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playadb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playadb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// Import Metrics
	ImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "playadb_import_duration_seconds",
			Help:    "Duration of directory imports in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	ImportRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playadb_import_records_total",
			Help: "Total number of directory records written by imports",
		},
		[]string{"data_type"},
	)

	ImportFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playadb_import_failures_total",
			Help: "Total number of failed imports by error kind",
		},
		[]string{"kind"},
	)

	UnresolvedHosts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "playadb_unresolved_hosts_total",
			Help: "Total number of events whose host camp or art was not found",
		},
	)

	// Index Metrics
	IndexEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "playadb_index_entries",
			Help: "Number of entries in the in-process spatial and text indexes",
		},
		[]string{"index"}, // "spatial", "text"
	)

	// Favorites Metrics
	FavoriteToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playadb_favorite_toggles_total",
			Help: "Total number of favorite toggles by object type",
		},
		[]string{"object_type"},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, classifyError(err)).Inc()
	}
}

// classifyError maps an error onto a small label set to keep cardinality bounded.
func classifyError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "constraint"):
		return "constraint"
	case strings.Contains(msg, "conflict"):
		return "conflict"
	case strings.Contains(msg, "closed"), strings.Contains(msg, "connection"):
		return "connection"
	default:
		return "other"
	}
}

// RecordImport records one finished import run. counts is keyed by data type.
func RecordImport(duration time.Duration, counts map[string]int, unresolved int) {
	ImportDuration.Observe(duration.Seconds())
	for dataType, n := range counts {
		ImportRecords.WithLabelValues(dataType).Add(float64(n))
	}
	UnresolvedHosts.Add(float64(unresolved))
}

// RecordImportFailure records a failed import by error kind.
func RecordImportFailure(kind string) {
	ImportFailures.WithLabelValues(kind).Inc()
}

// SetIndexEntries publishes the size of an in-process index.
func SetIndexEntries(index string, n int) {
	IndexEntries.WithLabelValues(index).Set(float64(n))
}

// RecordFavoriteToggle records a favorites flip.
func RecordFavoriteToggle(objectType string) {
	FavoriteToggles.WithLabelValues(objectType).Inc()
}
