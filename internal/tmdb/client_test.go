// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*config.TMDBConfig)) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.TMDBConfig{
		BearerToken:  "test-token",
		BaseURL:      srv.URL + "/3",
		ImageBaseURL: DefaultImageBase,
		Language:     "fr-FR",
	}
	for _, m := range mutate {
		m(&cfg)
	}
	return NewClient(cfg, config.ProxyConfig{})
}

func TestClientMissingTokenFailsWithoutRequest(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}, func(cfg *config.TMDBConfig) { cfg.BearerToken = "  " })

	_, err := c.MovieDetails(context.Background(), 27205)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
	var ae *AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %T, want *AuthError", err)
	}
	if hits.Load() != 0 {
		t.Errorf("server hit %d times, want 0", hits.Load())
	}
}

func TestClientRequestShape(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/3/movie/27205" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("language"); got != "fr-FR" {
			t.Errorf("language = %q", got)
		}
		if got := r.URL.Query().Get("append_to_response"); got != "credits" {
			t.Errorf("append_to_response = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 27205, "title": "Inception", "poster_path": "/inception.jpg",
			"credits": {"cast": [], "crew": [
				{"id": 1, "name": "Hans Zimmer", "job": "Original Music Composer"},
				{"id": 525, "name": "Christopher Nolan", "job": "Director"}
			]}
		}`))
	})

	d, err := c.Details(context.Background(), models.KindMovie, 27205)
	if err != nil {
		t.Fatalf("Details() error = %v", err)
	}
	if d.DisplayTitle() != "Inception" || d.ExternalID() != 27205 {
		t.Errorf("unexpected details %+v", d)
	}
	if d.Credit() == nil || *d.Credit() != "Christopher Nolan" {
		t.Errorf("Credit() = %v, want Christopher Nolan", d.Credit())
	}
	if u := c.ImageURL(d.Poster(), SizeW500); u == nil || *u != "https://image.tmdb.org/t/p/w500/inception.jpg" {
		t.Errorf("ImageURL = %v", u)
	}
}

func TestClientSeriesCredit(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/3/tv/1399" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id":1399,"name":"Game of Thrones","created_by":[{"id":9813,"name":"David Benioff"},{"id":228068,"name":"D. B. Weiss"}]}`))
	})

	d, err := c.Details(context.Background(), models.KindSeries, 1399)
	if err != nil {
		t.Fatal(err)
	}
	if d.Credit() == nil || *d.Credit() != "David Benioff" {
		t.Errorf("Credit() = %v", d.Credit())
	}
}

func TestClientErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantAuth   bool
		wantStatus int
	}{
		{"unauthorized", http.StatusUnauthorized, `{"status_message":"Invalid API key"}`, true, 0},
		{"not found", http.StatusNotFound, `{"status_message":"not found"}`, false, 404},
		{"server error", http.StatusInternalServerError, "boom", false, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.SeriesDetails(context.Background(), 1)
			if tt.wantAuth {
				if !errors.Is(err, ErrUnauthorized) {
					t.Fatalf("error = %v, want auth error", err)
				}
				return
			}
			var se *ServiceError
			if !errors.As(err, &se) {
				t.Fatalf("error = %v, want *ServiceError", err)
			}
			if se.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", se.StatusCode, tt.wantStatus)
			}
			if !strings.Contains(se.Error(), tt.body) {
				t.Errorf("Error() = %q should include body", se.Error())
			}
		})
	}
}

func TestClientTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClient(config.TMDBConfig{BearerToken: "t", BaseURL: base, Language: "fr-FR"}, config.ProxyConfig{})
	_, err := c.SearchMulti(context.Background(), "dune")

	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *ServiceError", err)
	}
	if se.StatusCode != 0 || se.Unwrap() == nil {
		t.Errorf("transport failure should carry a cause and no status: %+v", se)
	}
}

func TestClientTimeout(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, func(cfg *config.TMDBConfig) { cfg.Timeout = 50 * time.Millisecond })

	_, err := c.MovieDetails(context.Background(), 1)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("error = %v, want deadline exceeded", err)
	}
}

func TestClientUsesOutboundProxy(t *testing.T) {
	t.Parallel()

	var (
		hits     atomic.Int32
		seenHost atomic.Value
		seenAuth atomic.Value
	)
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		seenHost.Store(r.URL.Host)
		seenAuth.Store(r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":27205,"title":"Inception"}`))
	}))
	t.Cleanup(proxy.Close)

	// The remote host is never resolved; the proxy answers for it.
	c := NewClient(config.TMDBConfig{
		BearerToken: "test-token",
		BaseURL:     "http://tmdb.example.invalid/3",
		Language:    "fr-FR",
	}, config.ProxyConfig{URL: proxy.URL})

	m, err := c.MovieDetails(context.Background(), 27205)
	if err != nil {
		t.Fatalf("MovieDetails via proxy: %v", err)
	}
	if m.Title != "Inception" {
		t.Errorf("Title = %q, want Inception", m.Title)
	}
	if hits.Load() != 1 {
		t.Fatalf("proxy hit %d times, want 1", hits.Load())
	}
	if host, _ := seenHost.Load().(string); host != "tmdb.example.invalid" {
		t.Errorf("proxied host = %q, want tmdb.example.invalid", host)
	}
	if auth, _ := seenAuth.Load().(string); auth != "Bearer test-token" {
		t.Errorf("Authorization = %q", auth)
	}
}

func TestClientErrorBodySnippet(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 4096)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(long))
	})

	_, err := c.MovieDetails(context.Background(), 1)
	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *ServiceError", err)
	}
	if !strings.HasSuffix(se.Body, "(truncated)") {
		t.Errorf("Body should be marked truncated: %q", se.Body[len(se.Body)-20:])
	}
	if got := strings.Count(se.Body, "x"); got != maxErrorBodySize {
		t.Errorf("Body kept %d bytes of payload, want %d", got, maxErrorBodySize)
	}
	if len(se.Error()) > 1024 {
		t.Errorf("Error() is %d bytes, want a short snippet", len(se.Error()))
	}
}

func TestReadBodyForErrorExactLimit(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("y", maxErrorBodySize)
	if got := readBodyForError(strings.NewReader(body)); got != body {
		t.Errorf("a body of exactly the limit should be kept whole, got %d bytes", len(got))
	}
}

func TestSearchMultiFiltersPeople(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/3/search/multi" || r.URL.Query().Get("query") != "nolan" {
			t.Errorf("unexpected request %s", r.URL)
		}
		_, _ = w.Write([]byte(`{"page":1,"results":[
			{"id":525,"media_type":"person","name":"Christopher Nolan"},
			{"id":27205,"media_type":"movie","title":"Inception"},
			{"id":1399,"media_type":"tv","name":"Game of Thrones"}
		]}`))
	})

	results, err := c.SearchMulti(context.Background(), "nolan")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if k, _ := results[1].Kind(); k != models.KindSeries {
		t.Errorf("second result kind = %q", k)
	}
}

func TestSearchTagsMediaType(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/3/search/tv" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"results":[{"id":1,"name":"Dark"}]}`))
	})

	results, err := c.Search(context.Background(), models.KindSeries, "dark")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].MediaType != "tv" {
		t.Errorf("results = %+v", results)
	}
}

func TestImageURL(t *testing.T) {
	t.Parallel()

	empty := ""
	path := "/abc.jpg"
	if ImageURL(nil, SizeW500) != nil || ImageURL(&empty, SizeW500) != nil {
		t.Error("missing path should give nil")
	}
	for size, want := range map[ImageSize]string{
		SizeW500:     "https://image.tmdb.org/t/p/w500/abc.jpg",
		SizeW780:     "https://image.tmdb.org/t/p/w780/abc.jpg",
		SizeOriginal: "https://image.tmdb.org/t/p/original/abc.jpg",
	} {
		if got := ImageURL(&path, size); got == nil || *got != want {
			t.Errorf("ImageURL(%s) = %v, want %s", size, got, want)
		}
	}
}
