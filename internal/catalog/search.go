// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/batch"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/tmdb"
)

// Search limits.
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 50
)

// SearchOptions tunes a single-kind search.
type SearchOptions struct {
	// Credits resolves the director (movies) or creator (series) of every hit.
	Credits bool
}

// ParseLimit reads a limit query parameter. Empty, zero and non-numeric
// values give DefaultSearchLimit; fractions are truncated and the result is
// clamped to [1, MaxSearchLimit].
func ParseLimit(raw string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return DefaultSearchLimit
	}
	return clampLimit(math.Trunc(f))
}

// normalizeLimit treats a non-positive limit as unset.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultSearchLimit
	}
	return clampLimit(float64(limit))
}

func clampLimit(f float64) int {
	switch {
	case f < 1:
		return 1
	case f > MaxSearchLimit:
		return MaxSearchLimit
	default:
		return int(f)
	}
}

// Search queries TMDB for one kind and merges the local records in.
func (s *Service) Search(ctx context.Context, query string, limit int, opts SearchOptions) (*models.SearchResponse, error) {
	start := time.Now()
	defer func() {
		metrics.RecordCatalogOperation("search", string(s.kind), time.Since(start))
	}()

	query = strings.TrimSpace(query)
	limit = normalizeLimit(limit)
	if query == "" {
		return emptySearch(query, limit), nil
	}

	hits, err := s.remote.Search(ctx, s.kind, query)
	if err != nil {
		return nil, fmt.Errorf("search %s %q: %w", s.kind, query, err)
	}
	return s.merge(ctx, query, limit, hits, opts.Credits)
}

// GlobalSearch queries TMDB across movies and series. Credits are always
// resolved.
func (c *Catalog) GlobalSearch(ctx context.Context, query string, limit int) (*models.SearchResponse, error) {
	start := time.Now()
	defer func() {
		metrics.RecordCatalogOperation("global_search", "all", time.Since(start))
	}()

	query = strings.TrimSpace(query)
	limit = normalizeLimit(limit)
	if query == "" {
		return emptySearch(query, limit), nil
	}

	hits, err := c.remote.SearchMulti(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return c.merge(ctx, query, limit, hits, true)
}

func emptySearch(query string, limit int) *models.SearchResponse {
	return &models.SearchResponse{Query: query, Limit: limit, Results: []models.SearchResult{}}
}

// merge truncates the hits, attaches local records and optionally credits.
// TMDB relevance order is kept.
func (c *Catalog) merge(ctx context.Context, query string, limit int, hits []tmdb.Result, credits bool) (*models.SearchResponse, error) {
	if len(hits) > limit {
		hits = hits[:limit]
	}

	results := make([]models.SearchResult, 0, len(hits))
	idsByKind := make(map[models.Kind][]int64, len(models.Kinds))
	for i := range hits {
		r, ok := toSearchResult(&hits[i])
		if !ok {
			continue
		}
		results = append(results, r)
		idsByKind[r.ResultKind()] = append(idsByKind[r.ResultKind()], r.ResultExternalID())
	}

	for _, kind := range models.Kinds {
		ids := idsByKind[kind]
		if len(ids) == 0 {
			continue
		}
		found, err := c.store.FindByExternalIDs(ctx, kind, ids)
		if err != nil {
			return nil, fmt.Errorf("match local %s records: %w", kind, err)
		}
		for _, r := range results {
			if r.ResultKind() == kind {
				r.SetLocal(found[r.ResultExternalID()])
			}
		}
	}

	if credits {
		c.resolveCredits(ctx, results)
	}

	return &models.SearchResponse{
		Query:   query,
		Limit:   limit,
		Total:   len(results),
		Results: results,
	}, nil
}

// resolveCredits sets the director or creator of each result. Failures
// leave it null.
func (c *Catalog) resolveCredits(ctx context.Context, results []models.SearchResult) {
	names := batch.RunE(ctx, "credits", results, c.enrichLimit,
		func(ctx context.Context, _ int, r models.SearchResult) (*string, error) {
			details, err := c.remote.Details(ctx, r.ResultKind(), r.ResultExternalID())
			if err != nil {
				return nil, err
			}
			return details.Credit(), nil
		},
		func(int, models.SearchResult, error) *string { return nil },
	)
	for i, r := range results {
		r.SetDirector(names[i])
	}
}

func toSearchResult(hit *tmdb.Result) (models.SearchResult, bool) {
	kind, ok := hit.Kind()
	if !ok {
		return nil, false
	}
	switch kind {
	case models.KindSeries:
		return &models.SeriesSearchResult{
			Type:         models.KindSeries,
			ExternalID:   hit.ID,
			Title:        firstNonEmpty(hit.Name, hit.Title),
			PosterPath:   nilIfEmpty(hit.PosterPath),
			Overview:     nilIfEmptyString(hit.Overview),
			FirstAirDate: hit.FirstAirDate,
			VoteAverage:  hit.VoteAverage,
		}, true
	default:
		return &models.MovieSearchResult{
			Type:        models.KindMovie,
			ExternalID:  hit.ID,
			Title:       firstNonEmpty(hit.Title, hit.Name),
			PosterPath:  nilIfEmpty(hit.PosterPath),
			Overview:    nilIfEmptyString(hit.Overview),
			ReleaseDate: hit.ReleaseDate,
			VoteAverage: hit.VoteAverage,
		}, true
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func nilIfEmptyString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
