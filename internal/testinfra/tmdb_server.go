// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package testinfra

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

// MockToken is the bearer token MockTMDBServer accepts.
const MockToken = "mock-tmdb-token"

// apiPrefix mirrors the version segment of the real base URL.
const apiPrefix = "/3"

// CapturedRequest represents a captured TMDB request.
type CapturedRequest struct {
	Method  string
	Path    string
	Query   url.Values
	Headers http.Header
}

// MockTMDBServer provides a fake TMDB API for tests.
type MockTMDBServer struct {
	Server *httptest.Server

	mu       sync.Mutex
	captures []CapturedRequest
	movies   map[int64]map[string]any
	series   map[int64]map[string]any
	searches map[string][]map[string]any
	failures map[string]int
	delays   map[string]time.Duration

	inFlight atomic.Int32
	peak     atomic.Int32
}

// NewMockTMDBServer starts a server that is closed when the test ends.
func NewMockTMDBServer(t *testing.T) *MockTMDBServer {
	t.Helper()

	m := &MockTMDBServer{
		captures: make([]CapturedRequest, 0),
		movies:   make(map[int64]map[string]any),
		series:   make(map[int64]map[string]any),
		searches: make(map[string][]map[string]any),
		failures: make(map[string]int),
		delays:   make(map[string]time.Duration),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.Server.Close)
	return m
}

// URL returns the API base URL, including the version segment.
func (m *MockTMDBServer) URL() string {
	return m.Server.URL + apiPrefix
}

// AddMovie registers /movie/{id}. An empty posterPath is served as null and
// an empty director leaves the crew without one.
func (m *MockTMDBServer) AddMovie(id int64, title, posterPath, director string) {
	crew := []map[string]any{{"id": 1, "name": "Composer", "job": "Original Music Composer"}}
	if director != "" {
		crew = append(crew, map[string]any{"id": 2, "name": director, "job": "Director"})
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.movies[id] = map[string]any{
		"id":           id,
		"title":        title,
		"overview":     title + " overview",
		"release_date": "2010-07-15",
		"poster_path":  nullIfEmpty(posterPath),
		"vote_average": 8.4,
		"credits":      map[string]any{"cast": []any{}, "crew": crew},
	}
}

// AddSeries registers /tv/{id}. An empty creator leaves created_by empty.
func (m *MockTMDBServer) AddSeries(id int64, name, posterPath, creator string) {
	createdBy := []map[string]any{}
	if creator != "" {
		createdBy = append(createdBy, map[string]any{"id": 3, "name": creator})
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.series[id] = map[string]any{
		"id":             id,
		"name":           name,
		"overview":       name + " overview",
		"first_air_date": "2011-04-17",
		"poster_path":    nullIfEmpty(posterPath),
		"vote_average":   8.5,
		"created_by":     createdBy,
		"credits":        map[string]any{"cast": []any{}},
	}
}

// SetSearch sets the results of a search endpoint such as "/search/multi".
func (m *MockTMDBServer) SetSearch(endpoint string, results ...map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches[endpoint] = results
}

// MovieResult builds a search hit with media_type "movie".
func MovieResult(id int64, title, posterPath string) map[string]any {
	return map[string]any{
		"id": id, "media_type": "movie", "title": title,
		"poster_path": nullIfEmpty(posterPath), "overview": title + " overview",
		"release_date": "2010-07-15", "vote_average": 8.4,
	}
}

// SeriesResult builds a search hit with media_type "tv".
func SeriesResult(id int64, name, posterPath string) map[string]any {
	return map[string]any{
		"id": id, "media_type": "tv", "name": name,
		"poster_path": nullIfEmpty(posterPath), "overview": name + " overview",
		"first_air_date": "2011-04-17", "vote_average": 8.5,
	}
}

// PersonResult builds a search hit the catalog must ignore.
func PersonResult(id int64, name string) map[string]any {
	return map[string]any{"id": id, "media_type": "person", "name": name}
}

// Fail makes every request to path answer with status.
func (m *MockTMDBServer) Fail(path string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[path] = status
}

// Delay holds every request to path for d before answering.
func (m *MockTMDBServer) Delay(path string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delays[path] = d
}

// Captures returns all captured requests.
func (m *MockTMDBServer) Captures() []CapturedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]CapturedRequest, len(m.captures))
	copy(result, m.captures)
	return result
}

// CountRequests counts captured requests whose path starts with prefix.
func (m *MockTMDBServer) CountRequests(prefix string) int {
	n := 0
	for _, c := range m.Captures() {
		if strings.HasPrefix(c.Path, prefix) {
			n++
		}
	}
	return n
}

// PeakConcurrency is the highest number of requests served at once.
func (m *MockTMDBServer) PeakConcurrency() int {
	return int(m.peak.Load())
}

func (m *MockTMDBServer) handle(w http.ResponseWriter, r *http.Request) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		p := m.peak.Load()
		if n <= p || m.peak.CompareAndSwap(p, n) {
			break
		}
	}

	path := strings.TrimPrefix(r.URL.Path, apiPrefix)

	m.mu.Lock()
	m.captures = append(m.captures, CapturedRequest{
		Method:  r.Method,
		Path:    path,
		Query:   r.URL.Query(),
		Headers: r.Header.Clone(),
	})
	status, failing := m.failures[path]
	delay := m.delays[path]
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if r.Header.Get("Authorization") != "Bearer "+MockToken {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"success": false, "status_code": 7, "status_message": "Invalid API key: You must be granted a valid key.",
		})
		return
	}
	if failing {
		writeJSON(w, status, map[string]any{"success": false, "status_message": "injected failure"})
		return
	}

	switch {
	case strings.HasPrefix(path, "/search/"):
		m.mu.Lock()
		results := m.searches[path]
		m.mu.Unlock()
		if results == nil {
			results = []map[string]any{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"page": 1, "results": results, "total_results": len(results)})
	case strings.HasPrefix(path, "/movie/"):
		m.serveDetails(w, path, "/movie/", m.movies)
	case strings.HasPrefix(path, "/tv/"):
		m.serveDetails(w, path, "/tv/", m.series)
	default:
		notFound(w)
	}
}

func (m *MockTMDBServer) serveDetails(w http.ResponseWriter, path, prefix string, store map[int64]map[string]any) {
	id, err := strconv.ParseInt(strings.TrimPrefix(path, prefix), 10, 64)
	if err != nil {
		notFound(w)
		return
	}
	m.mu.Lock()
	body, ok := store[id]
	m.mu.Unlock()
	if !ok {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"success": false, "status_code": 34, "status_message": "The resource you requested could not be found.",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json;charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
