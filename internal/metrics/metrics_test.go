// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
	}{
		{"select ok", "select", "movies", nil},
		{"insert failed", "insert", "series", errors.New("constraint violation")},
		{"long error truncated", "update", "movies", errors.New(strings.Repeat("x", 120))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordDBQuery(tt.operation, tt.table, 3*time.Millisecond, tt.err)
			if tt.err == nil {
				return
			}
			label := tt.err.Error()
			if len(label) > 50 {
				label = label[:50]
			}
			if got := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, label)); got < 1 {
				t.Errorf("error counter = %v, want >= 1", got)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/movie", "200"))
	RecordAPIRequest("GET", "/api/movie", 200, 12*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/movie", "200"))
	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active = %v, want %v", got, before)
	}
}

func TestRecordBatchItem(t *testing.T) {
	ok := BatchItemsTotal.WithLabelValues("posters", "ok")
	fb := BatchItemsTotal.WithLabelValues("posters", "fallback")
	okBefore, fbBefore := testutil.ToFloat64(ok), testutil.ToFloat64(fb)

	RecordBatchItem("posters", false)
	RecordBatchItem("posters", true)
	RecordBatchItem("posters", true)

	if d := testutil.ToFloat64(ok) - okBefore; d != 1 {
		t.Errorf("ok delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(fb) - fbBefore; d != 2 {
		t.Errorf("fallback delta = %v, want 2", d)
	}
}

func TestRecordEventPublished(t *testing.T) {
	topic := "marquee.catalog.movie.created"
	RecordEventPublished(topic, nil)
	RecordEventPublished(topic, errors.New("nats down"))

	if got := testutil.ToFloat64(EventsPublished.WithLabelValues(topic, "ok")); got < 1 {
		t.Errorf("ok = %v", got)
	}
	if got := testutil.ToFloat64(EventsPublished.WithLabelValues(topic, "error")); got < 1 {
		t.Errorf("error = %v", got)
	}
}
