// PlayaDB - Festival Directory Storage and Query Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playadb

package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("select", "art_test", "timeout"))

	RecordDBQuery("select", "art_test", 5*time.Millisecond, nil)
	RecordDBQuery("select", "art_test", 5*time.Millisecond, fmt.Errorf("scan: %w", context.DeadlineExceeded))

	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("select", "art_test", "timeout"))
	if after-before != 1 {
		t.Errorf("timeout errors increased by %f, want 1", after-before)
	}
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{context.DeadlineExceeded, "timeout"},
		{context.Canceled, "canceled"},
		{errors.New("Constraint Error: duplicate key"), "constraint"},
		{errors.New("Transaction conflict on update"), "conflict"},
		{errors.New("sql: database is closed"), "connection"},
		{errors.New("boom"), "other"},
	}

	for _, tt := range tests {
		if got := classifyError(tt.err); got != tt.want {
			t.Errorf("classifyError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestRecordImport(t *testing.T) {
	before := testutil.ToFloat64(ImportRecords.WithLabelValues("camp"))
	unresolvedBefore := testutil.ToFloat64(UnresolvedHosts)

	RecordImport(time.Second, map[string]int{"art": 2, "camp": 3, "event": 4}, 1)

	if got := testutil.ToFloat64(ImportRecords.WithLabelValues("camp")) - before; got != 3 {
		t.Errorf("camp records increased by %f, want 3", got)
	}
	if got := testutil.ToFloat64(UnresolvedHosts) - unresolvedBefore; got != 1 {
		t.Errorf("unresolved hosts increased by %f, want 1", got)
	}
}

func TestSetIndexEntries(t *testing.T) {
	SetIndexEntries("spatial", 42)
	if got := testutil.ToFloat64(IndexEntries.WithLabelValues("spatial")); got != 42 {
		t.Errorf("spatial index entries = %f, want 42", got)
	}
}

func TestRecordImportFailureAndToggle(t *testing.T) {
	failBefore := testutil.ToFloat64(ImportFailures.WithLabelValues("malformed_record"))
	toggleBefore := testutil.ToFloat64(FavoriteToggles.WithLabelValues("art"))

	RecordImportFailure("malformed_record")
	RecordFavoriteToggle("art")

	if got := testutil.ToFloat64(ImportFailures.WithLabelValues("malformed_record")) - failBefore; got != 1 {
		t.Errorf("import failures increased by %f, want 1", got)
	}
	if got := testutil.ToFloat64(FavoriteToggles.WithLabelValues("art")) - toggleBefore; got != 1 {
		t.Errorf("favorite toggles increased by %f, want 1", got)
	}
}

func TestMetricGathering(t *testing.T) {
	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint() error = %v", err)
	}
	for _, p := range problems {
		t.Errorf("metric lint problem: %s: %s", p.Metric, p.Text)
	}
}
