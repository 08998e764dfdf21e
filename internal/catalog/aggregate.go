// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marquee/internal/batch"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/tmdb"
)

// Summarize returns the statistics and enriched items of one view.
//
// The four store reads run concurrently and any failure fails the call.
// Poster enrichment runs afterwards and never fails it.
func (s *Service) Summarize(ctx context.Context, view models.View) (*models.AggregateSummary, error) {
	start := time.Now()
	defer func() {
		metrics.RecordCatalogOperation("summarize", string(s.kind), time.Since(start))
	}()

	filter := models.FilterFor(view)

	var (
		items     []models.Record
		stats     models.AggregateStats
		withImage int
		unrated   int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.store.FindMany(gctx, s.kind, filter)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.store.Aggregate(gctx, s.kind, filter)
		return err
	})
	g.Go(func() error {
		var err error
		withImage, err = s.store.Count(gctx, s.kind, filter.WithExternalID())
		return err
	})
	// Rated records have a rating by definition.
	if view != models.ViewRated {
		g.Go(func() error {
			var err error
			unrated, err = s.store.Count(gctx, s.kind, filter.WithUnrated())
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("summarize %s %s: %w", s.kind, view, err)
	}

	count := stats.Count
	if count == 0 {
		count = len(items)
	}

	return &models.AggregateSummary{
		Count:             count,
		AvgRating:         round2(stats.AvgRating),
		MaxRating:         round2(stats.MaxRating),
		MinRating:         round2(stats.MinRating),
		LastUpdatedAt:     stats.LastUpdatedAt,
		FirstCreatedAt:    stats.FirstCreatedAt,
		WithImageCount:    withImage,
		MissingImageCount: max(0, count-withImage),
		UnratedCount:      unrated,
		RatedCount:        max(0, count-unrated),
		Items:             s.enrichPosters(ctx, items),
	}, nil
}

// enrichPosters attaches poster info to linked records.
func (s *Service) enrichPosters(ctx context.Context, items []models.Record) []models.EnrichedRecord {
	return batch.RunE(ctx, "poster", items, s.enrichLimit,
		func(ctx context.Context, _ int, rec models.Record) (models.EnrichedRecord, error) {
			out := models.EnrichedRecord{Record: rec}
			if rec.ExternalID == nil {
				return out, nil
			}
			details, err := s.remote.Details(ctx, s.kind, *rec.ExternalID)
			if err != nil {
				return out, err
			}
			poster := details.Poster()
			out.TMDB = &models.PosterInfo{
				PosterPath: poster,
				PosterURL:  s.imageURL(poster, tmdb.SizeW500),
			}
			return out, nil
		},
		func(_ int, rec models.Record, _ error) models.EnrichedRecord {
			return models.EnrichedRecord{Record: rec}
		},
	)
}

func round2(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := math.Round(*v*100) / 100
	return &r
}
