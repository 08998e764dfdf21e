// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/testinfra"
)

func TestCORSPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		policy  config.CORSPolicy
		origin  string
		allowed bool
	}{
		{"allow all", config.CORSPolicy{AllowAll: true}, "http://anything.test", true},
		{"list hit", config.CORSPolicy{Origins: []string{"http://a.test", "http://b.test"}}, "http://b.test", true},
		{"list miss", config.CORSPolicy{Origins: []string{"http://a.test"}}, "http://c.test", false},
		{"regex hit", config.CORSPolicy{Pattern: regexp.MustCompile(`^https://.*\.marquee\.test$`)}, "https://app.marquee.test", true},
		{"regex miss", config.CORSPolicy{Pattern: regexp.MustCompile(`^https://.*\.marquee\.test$`)}, "https://evil.test", false},
		{"deny all", config.CORSPolicy{}, "http://a.test", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mw := DefaultChiMiddlewareConfig()
			mw.CORSPolicy = tt.policy
			mw.RateLimitDisabled = true
			s := newTestServerWith(t, serverOptions{token: testinfra.MockToken, mw: mw})

			req := httptest.NewRequest(http.MethodOptions, "/api/movie", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			s.handler.ServeHTTP(rec, req)

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if tt.allowed && got != tt.origin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.origin)
			}
			if !tt.allowed && got != "" {
				t.Errorf("origin %q should be refused, got %q", tt.origin, got)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()
	mw := DefaultChiMiddlewareConfig()
	mw.CORSPolicy = config.CORSPolicy{AllowAll: true}
	mw.RateLimitRequests = 2
	mw.RateLimitWindow = time.Minute
	s := newTestServerWith(t, serverOptions{token: testinfra.MockToken, mw: mw})

	for i := 0; i < 2; i++ {
		expectStatus(t, s.do(t, http.MethodGet, "/api/movie", ""), http.StatusOK)
	}
	rec := s.do(t, http.MethodGet, "/api/movie", "")
	expectStatus(t, rec, http.StatusTooManyRequests)
	if code := errorCode(t, rec); code != ErrCodeTooManyRequests {
		t.Errorf("code = %s", code)
	}

	// Health probes sit outside the limiter.
	expectStatus(t, s.do(t, http.MethodGet, "/api/health/live", ""), http.StatusOK)
}

func TestRateLimitDisabledIsNoop(t *testing.T) {
	t.Parallel()
	m := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	h := m.RateLimit()(next)
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusTeapot {
			t.Fatalf("request %d: status %d", i, rec.Code)
		}
	}
}

func TestChiMiddlewareConfigFrom(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{
		CORS:     config.CORSConfig{AllowedOrigins: "http://a.test, http://b.test"},
		Security: config.SecurityConfig{RateLimitReqs: 7, RateLimitWindow: 30 * time.Second},
	}
	mc, err := ChiMiddlewareConfigFrom(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if mc.RateLimitRequests != 7 || mc.RateLimitWindow != 30*time.Second {
		t.Errorf("rate limit = %d/%v", mc.RateLimitRequests, mc.RateLimitWindow)
	}
	if !mc.CORSPolicy.Allows("http://b.test") || mc.CORSPolicy.Allows("http://c.test") {
		t.Errorf("policy = %+v", mc.CORSPolicy)
	}

	cfg.CORS.AllowedOrigins = "/([/"
	if _, err := ChiMiddlewareConfigFrom(cfg); err == nil {
		t.Error("expected an invalid regex to fail")
	}
}
