// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// API is the remote metadata contract the catalog depends on. Client and
// CircuitBreakerClient implement it.
type API interface {
	Search(ctx context.Context, kind models.Kind, query string) ([]Result, error)
	SearchMulti(ctx context.Context, query string) ([]Result, error)
	MovieDetails(ctx context.Context, id int64) (*MovieDetails, error)
	SeriesDetails(ctx context.Context, id int64) (*SeriesDetails, error)
	Details(ctx context.Context, kind models.Kind, id int64) (Details, error)
}

var _ API = (*Client)(nil)

// Client talks to TMDB over HTTP.
type Client struct {
	baseURL    string
	imageBase  string
	token      string
	language   string
	timeout    time.Duration
	limiter    *rate.Limiter
	httpClient *http.Client
}

// NewClient builds a client from configuration. A missing bearer token is
// not an error here; every call reports it instead.
func NewClient(cfg config.TMDBConfig, proxy config.ProxyConfig) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if fn := proxy.ProxyFunc(); fn != nil {
		transport.Proxy = func(r *http.Request) (*url.URL, error) { return fn(r.URL) }
		logging.Info().
			Str("proxy", proxy.Redacted()).
			Str("no_proxy", proxy.NoProxy).
			Msg("TMDB requests will use an outbound proxy")
	} else {
		transport.Proxy = nil
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.RateBurst, 1))
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		imageBase:  strings.TrimSuffix(cfg.ImageBaseURL, "/"),
		token:      strings.TrimSpace(cfg.BearerToken),
		language:   cfg.Language,
		timeout:    cfg.Timeout,
		limiter:    limiter,
		httpClient: &http.Client{Transport: transport},
	}
}

// ImageURL builds a poster URL against the configured image host.
func (c *Client) ImageURL(path *string, size ImageSize) *string {
	return imageURL(c.imageBase, path, size)
}

// Search runs /search/movie or /search/tv. Results are tagged with the
// TMDB media type so they can be mixed with SearchMulti output.
func (c *Client) Search(ctx context.Context, kind models.Kind, query string) ([]Result, error) {
	endpoint, mediaType := "/search/movie", "movie"
	if kind == models.KindSeries {
		endpoint, mediaType = "/search/tv", "tv"
	}

	var page searchPage
	if err := c.get(ctx, endpoint, url.Values{"query": {query}}, &page); err != nil {
		return nil, err
	}
	for i := range page.Results {
		page.Results[i].MediaType = mediaType
	}
	return page.Results, nil
}

// SearchMulti runs /search/multi and drops everything that is not a movie
// or a series.
func (c *Client) SearchMulti(ctx context.Context, query string) ([]Result, error) {
	var page searchPage
	if err := c.get(ctx, "/search/multi", url.Values{"query": {query}}, &page); err != nil {
		return nil, err
	}
	kept := make([]Result, 0, len(page.Results))
	for _, r := range page.Results {
		if r.MediaType == "movie" || r.MediaType == "tv" {
			kept = append(kept, r)
		}
	}
	return kept, nil
}

// MovieDetails fetches /movie/{id} with credits.
func (c *Client) MovieDetails(ctx context.Context, id int64) (*MovieDetails, error) {
	var m MovieDetails
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10), url.Values{"append_to_response": {"credits"}}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// SeriesDetails fetches /tv/{id} with credits.
func (c *Client) SeriesDetails(ctx context.Context, id int64) (*SeriesDetails, error) {
	var s SeriesDetails
	if err := c.get(ctx, "/tv/"+strconv.FormatInt(id, 10), url.Values{"append_to_response": {"credits"}}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Details dispatches on kind.
func (c *Client) Details(ctx context.Context, kind models.Kind, id int64) (Details, error) {
	return detailsFor(ctx, c, kind, id)
}

// detailsFor avoids returning a typed nil inside the Details interface.
func detailsFor(ctx context.Context, api API, kind models.Kind, id int64) (Details, error) {
	if kind == models.KindSeries {
		s, err := api.SeriesDetails(ctx, id)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	m, err := api.MovieDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// get performs one GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	start := time.Now()
	metricEndpoint := metricName(endpoint)

	if c.token == "" {
		metrics.RecordTMDBRequest(metricEndpoint, metrics.OutcomeAuthError, 0)
		return &AuthError{Reason: "TMDB_BEARER_TOKEN is not configured"}
	}

	if c.limiter != nil {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			metrics.RecordTMDBRequest(metricEndpoint, metrics.OutcomeTransport, time.Since(start))
			return &ServiceError{Endpoint: endpoint, Err: fmt.Errorf("rate limiter: %w", err)}
		}
		metrics.TMDBRateLimitWait.Observe(time.Since(waitStart).Seconds())
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	q := url.Values{"language": {c.language}}
	for k, v := range params {
		q[k] = v
	}
	fullURL := c.baseURL + endpoint + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, http.NoBody)
	if err != nil {
		return &ServiceError{Endpoint: endpoint, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	logging.Ctx(ctx).Debug().Str("endpoint", endpoint).Str("query", q.Get("query")).Msg("TMDB request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordTMDBRequest(metricEndpoint, metrics.OutcomeTransport, time.Since(start))
		return &ServiceError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		metrics.RecordTMDBRequest(metricEndpoint, metrics.OutcomeAuthError, time.Since(start))
		return &AuthError{Reason: "bearer token rejected: " + strings.TrimSpace(readBodyForError(resp.Body))}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordTMDBRequest(metricEndpoint, metrics.OutcomeHTTPError, time.Since(start))
		body := readBodyForError(resp.Body)
		logging.Ctx(ctx).Warn().Str("endpoint", endpoint).Int("status", resp.StatusCode).Str("body", body).Msg("TMDB request failed")
		return &ServiceError{Endpoint: endpoint, StatusCode: resp.StatusCode, Status: resp.Status, Body: body}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordTMDBRequest(metricEndpoint, metrics.OutcomeTransport, time.Since(start))
		return &ServiceError{Endpoint: endpoint, StatusCode: resp.StatusCode, Status: resp.Status, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	metrics.RecordTMDBRequest(metricEndpoint, metrics.OutcomeSuccess, time.Since(start))
	return nil
}

// metricName collapses ids out of the path to keep label cardinality flat.
func metricName(endpoint string) string {
	switch {
	case strings.HasPrefix(endpoint, "/movie/"):
		return "/movie/{id}"
	case strings.HasPrefix(endpoint, "/tv/"):
		return "/tv/{id}"
	default:
		return endpoint
	}
}
