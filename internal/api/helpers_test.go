// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/kvstore"
	"github.com/tomtom215/marquee/internal/testinfra"
	"github.com/tomtom215/marquee/internal/tmdb"
)

type testServer struct {
	handler http.Handler
	store   *kvstore.Store
	remote  *testinfra.MockTMDBServer
}

type serverOptions struct {
	token  string
	health *HealthChecks
	mw     *ChiMiddlewareConfig
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, serverOptions{token: testinfra.MockToken})
}

func newTestServerWith(t *testing.T, opts serverOptions) *testServer {
	t.Helper()

	store, err := kvstore.OpenInMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	srv := testinfra.NewMockTMDBServer(t)
	client := tmdb.NewClient(config.TMDBConfig{
		BearerToken:  opts.token,
		BaseURL:      srv.URL(),
		ImageBaseURL: tmdb.DefaultImageBase,
		Language:     "fr-FR",
	}, config.ProxyConfig{})

	health := HealthChecks{Ping: store.Ping, HasCredential: opts.token != ""}
	if opts.health != nil {
		health = *opts.health
	}

	mwCfg := opts.mw
	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
		mwCfg.CORSPolicy = config.CORSPolicy{AllowAll: true}
		mwCfg.RateLimitDisabled = true
	}

	cat := catalog.New(store, client, catalog.Options{})
	router := NewRouter(NewHandler(cat, health), NewChiMiddleware(mwCfg))

	return &testServer{handler: router.SetupChi(), store: store, remote: srv}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

// errorCode returns error.code from an error envelope.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	apiErr, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing error object in %s", rec.Body.String())
	}
	code, _ := apiErr["code"].(string)
	return code
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body %s", rec.Code, want, rec.Body.String())
	}
}
