// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/logging"
)

func TestRequestLoggerFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		level  string
	}{
		{"success", http.StatusOK, `{"ok":true}`, "info"},
		{"client error", http.StatusNotFound, `{"success":false}`, "info"},
		{"server error", http.StatusBadGateway, `{"success":false}`, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := logging.NewTestLogger(&buf)
			handler := RequestID(RequestLoggerWith(logger)(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/movie/search?q=nolan", nil)
			req.Header.Set("User-Agent", "marquee-test/1.0")
			rec := httptest.NewRecorder()
			handler(rec, req)

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
			}

			checks := map[string]interface{}{
				"level":          tt.level,
				"method":         "GET",
				"url":            "/api/movie/search?q=nolan",
				"status":         float64(tt.status),
				"content_length": float64(len(tt.body)),
				"user_agent":     "marquee-test/1.0",
				"request_id":     rec.Header().Get(RequestIDHeader),
			}
			for key, want := range checks {
				if entry[key] != want {
					t.Errorf("%s = %v, want %v", key, entry[key], want)
				}
			}
			if _, ok := entry["duration_ms"].(float64); !ok {
				t.Errorf("duration_ms missing: %v", entry)
			}
		})
	}
}
