// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package storetest checks that a catalog.Store implementation behaves like
// every other one. Engines call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/models"
)

// Opener returns an empty store. It should register its own cleanup.
type Opener func(t *testing.T) catalog.Store

// Run executes the conformance suite, one fresh store per subtest.
func Run(t *testing.T, open Opener) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, s catalog.Store)
	}{
		{"CreateAppliesDefaults", testCreateDefaults},
		{"FindByIDNotFound", testFindByIDNotFound},
		{"DuplicateExternalID", testDuplicateExternalID},
		{"FindByExternalIDs", testFindByExternalIDs},
		{"FindManyFilters", testFindManyFilters},
		{"AggregateAndCount", testAggregateAndCount},
		{"AggregateEmpty", testAggregateEmpty},
		{"UpdatePartial", testUpdatePartial},
		{"UpdateClearsNullable", testUpdateClearsNullable},
		{"Delete", testDelete},
		{"KindsAreIsolated", testKindsIsolated},
		{"Ping", testPing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, open(t))
		})
	}
}

func ptr[T any](v T) *T { return &v }

func mustCreate(t *testing.T, s catalog.Store, kind models.Kind, in models.NewRecord) *models.Record {
	t.Helper()
	rec, err := s.Create(context.Background(), kind, in)
	if err != nil {
		t.Fatalf("Create(%q) error = %v", in.Title, err)
	}
	return rec
}

// seed inserts a mixed collection:
//
//	A: wishlist, rated 4.5, tmdb 1
//	B: rated 3, tmdb 2
//	C: wishlist, unrated
//	D: rating 0, tmdb 4
func seed(t *testing.T, s catalog.Store, kind models.Kind) []*models.Record {
	t.Helper()
	return []*models.Record{
		mustCreate(t, s, kind, models.NewRecord{Title: "A", ExternalID: ptr[int64](1), Rating: ptr(4.5), Wishlist: ptr(true)}),
		mustCreate(t, s, kind, models.NewRecord{Title: "B", ExternalID: ptr[int64](2), Rating: ptr(3.0)}),
		mustCreate(t, s, kind, models.NewRecord{Title: "C", Wishlist: ptr(true)}),
		mustCreate(t, s, kind, models.NewRecord{Title: "D", ExternalID: ptr[int64](4), Rating: ptr(0.0)}),
	}
}

func testCreateDefaults(t *testing.T, s catalog.Store) {
	rec := mustCreate(t, s, models.KindMovie, models.NewRecord{Title: "Inception"})

	if rec.ID <= 0 {
		t.Errorf("ID = %d, want positive", rec.ID)
	}
	if rec.Title != "Inception" || rec.Rating != nil || rec.Review != nil || rec.ExternalID != nil {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.Wishlist || rec.Watched || rec.ViewCount != 0 {
		t.Errorf("defaults not applied: %+v", rec)
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}

	got, err := s.FindByID(context.Background(), models.KindMovie, rec.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Title != rec.Title || !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("FindByID() = %+v, want %+v", got, rec)
	}
}

func testFindByIDNotFound(t *testing.T, s catalog.Store) {
	ctx := context.Background()
	if _, err := s.FindByID(ctx, models.KindMovie, 999); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("FindByID() error = %v, want ErrNotFound", err)
	}
	if _, err := s.FindByExternalID(ctx, models.KindMovie, 999); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("FindByExternalID() error = %v, want ErrNotFound", err)
	}
	if _, err := s.Update(ctx, models.KindMovie, 999, models.Patch{Title: ptr("x")}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
	if _, err := s.Delete(ctx, models.KindMovie, 999); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func testDuplicateExternalID(t *testing.T, s catalog.Store) {
	ctx := context.Background()
	mustCreate(t, s, models.KindMovie, models.NewRecord{Title: "Inception", ExternalID: ptr[int64](27205)})
	other := mustCreate(t, s, models.KindMovie, models.NewRecord{Title: "Other"})

	_, err := s.Create(ctx, models.KindMovie, models.NewRecord{Title: "Again", ExternalID: ptr[int64](27205)})
	if !errors.Is(err, models.ErrDuplicateExternalID) {
		t.Errorf("Create() error = %v, want ErrDuplicateExternalID", err)
	}

	_, err = s.Update(ctx, models.KindMovie, other.ID, models.Patch{ExternalID: models.Some[int64](27205)})
	if !errors.Is(err, models.ErrDuplicateExternalID) {
		t.Errorf("Update() error = %v, want ErrDuplicateExternalID", err)
	}

	// Untracked records never collide.
	mustCreate(t, s, models.KindMovie, models.NewRecord{Title: "Local 1"})
	mustCreate(t, s, models.KindMovie, models.NewRecord{Title: "Local 2"})
}

func testFindByExternalIDs(t *testing.T, s catalog.Store) {
	ctx := context.Background()
	recs := seed(t, s, models.KindMovie)

	got, err := s.FindByExternalID(ctx, models.KindMovie, 2)
	if err != nil || got.ID != recs[1].ID {
		t.Fatalf("FindByExternalID(2) = %+v, %v", got, err)
	}

	found, err := s.FindByExternalIDs(ctx, models.KindMovie, []int64{1, 3, 4, 99})
	if err != nil {
		t.Fatalf("FindByExternalIDs() error = %v", err)
	}
	if len(found) != 2 || found[1].Title != "A" || found[4].Title != "D" {
		t.Errorf("FindByExternalIDs() = %v", found)
	}

	empty, err := s.FindByExternalIDs(ctx, models.KindMovie, nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("FindByExternalIDs(nil) = %v, %v", empty, err)
	}
}

func testFindManyFilters(t *testing.T, s catalog.Store) {
	ctx := context.Background()
	seed(t, s, models.KindMovie)

	tests := []struct {
		view models.View
		want []string
	}{
		{models.ViewAll, []string{"A", "B", "C", "D"}},
		{models.ViewWishlist, []string{"A", "C"}},
		{models.ViewNonWishlist, []string{"B", "D"}},
		{models.ViewRated, []string{"A", "B"}},
	}

	for _, tt := range tests {
		recs, err := s.FindMany(ctx, models.KindMovie, models.FilterFor(tt.view))
		if err != nil {
			t.Fatalf("FindMany(%s) error = %v", tt.view, err)
		}
		if len(recs) != len(tt.want) {
			t.Errorf("FindMany(%s) returned %d records, want %d", tt.view, len(recs), len(tt.want))
			continue
		}
		for i := range recs {
			if recs[i].Title != tt.want[i] {
				t.Errorf("FindMany(%s)[%d] = %q, want %q", tt.view, i, recs[i].Title, tt.want[i])
			}
		}
	}
}

func testAggregateAndCount(t *testing.T, s catalog.Store) {
	ctx := context.Background()
	recs := seed(t, s, models.KindMovie)

	stats, err := s.Aggregate(ctx, models.KindMovie, models.Filter{})
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if stats.Count != 4 {
		t.Errorf("Count = %d, want 4", stats.Count)
	}
	// Nulls are ignored: (4.5 + 3 + 0) / 3
	if stats.AvgRating == nil || math.Abs(*stats.AvgRating-2.5) > 1e-9 {
		t.Errorf("AvgRating = %v, want 2.5", stats.AvgRating)
	}
	if stats.MinRating == nil || *stats.MinRating != 0 || stats.MaxRating == nil || *stats.MaxRating != 4.5 {
		t.Errorf("Min/Max = %v/%v", stats.MinRating, stats.MaxRating)
	}
	if stats.FirstCreatedAt == nil || !stats.FirstCreatedAt.Equal(recs[0].CreatedAt) {
		t.Errorf("FirstCreatedAt = %v, want %v", stats.FirstCreatedAt, recs[0].CreatedAt)
	}
	if stats.LastUpdatedAt == nil || !stats.LastUpdatedAt.Equal(recs[3].UpdatedAt) {
		t.Errorf("LastUpdatedAt = %v, want %v", stats.LastUpdatedAt, recs[3].UpdatedAt)
	}

	rated, err := s.Aggregate(ctx, models.KindMovie, models.FilterFor(models.ViewRated))
	if err != nil {
		t.Fatal(err)
	}
	if rated.Count != 2 || rated.AvgRating == nil || *rated.AvgRating != 3.75 {
		t.Errorf("rated aggregate = %+v", rated)
	}

	counts := []struct {
		name   string
		filter models.Filter
		want   int
	}{
		{"with image", models.Filter{}.WithExternalID(), 3},
		{"unrated", models.Filter{}.WithUnrated(), 1},
		{"wishlist with image", models.FilterFor(models.ViewWishlist).WithExternalID(), 1},
		{"wishlist unrated", models.FilterFor(models.ViewWishlist).WithUnrated(), 1},
		{"non wishlist unrated", models.FilterFor(models.ViewNonWishlist).WithUnrated(), 0},
	}
	for _, c := range counts {
		got, err := s.Count(ctx, models.KindMovie, c.filter)
		if err != nil {
			t.Fatalf("Count(%s) error = %v", c.name, err)
		}
		if got != c.want {
			t.Errorf("Count(%s) = %d, want %d", c.name, got, c.want)
		}
	}
}

func testAggregateEmpty(t *testing.T, s catalog.Store) {
	stats, err := s.Aggregate(context.Background(), models.KindSeries, models.Filter{})
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if stats.Count != 0 || stats.AvgRating != nil || stats.MinRating != nil || stats.MaxRating != nil ||
		stats.FirstCreatedAt != nil || stats.LastUpdatedAt != nil {
		t.Errorf("empty aggregate = %+v", stats)
	}

	recs, err := s.FindMany(context.Background(), models.KindSeries, models.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("FindMany on empty store = %#v, want empty slice", recs)
	}
}

func testUpdatePartial(t *testing.T, s catalog.Store) {
	ctx := context.Background()
	rec := mustCreate(t, s, models.KindSeries, models.NewRecord{
		Title: "Dark", ExternalID: ptr[int64](70523), Rating: ptr(4.0), Review: ptr("great"), ViewCount: ptr(2),
	})

	updated, err := s.Update(ctx, models.KindSeries, rec.ID, models.Patch{Title: ptr("Dark (2017)"), Watched: ptr(true)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Dark (2017)" || !updated.Watched {
		t.Errorf("patched fields not written: %+v", updated)
	}
	if updated.Rating == nil || *updated.Rating != 4 || updated.Review == nil || *updated.Review != "great" ||
		updated.ViewCount != 2 || updated.ExternalID == nil || *updated.ExternalID != 70523 {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if updated.UpdatedAt.Before(rec.UpdatedAt) || !updated.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("timestamps: created %v -> %v, updated %v -> %v", rec.CreatedAt, updated.CreatedAt, rec.UpdatedAt, updated.UpdatedAt)
	}
}

func testUpdateClearsNullable(t *testing.T, s catalog.Store) {
	ctx := context.Background()
	rec := mustCreate(t, s, models.KindMovie, models.NewRecord{
		Title: "Heat", ExternalID: ptr[int64](949), Rating: ptr(4.0), Review: ptr("tense"),
	})

	updated, err := s.Update(ctx, models.KindMovie, rec.ID, models.Patch{
		ExternalID: models.Null[int64](),
		Rating:     models.Null[float64](),
		Review:     models.Null[string](),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ExternalID != nil || updated.Rating != nil || updated.Review != nil {
		t.Errorf("nullable fields not cleared: %+v", updated)
	}

	if _, err := s.FindByExternalID(ctx, models.KindMovie, 949); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("cleared tmdbId still resolvable: %v", err)
	}
	// The freed id can be reused.
	mustCreate(t, s, models.KindMovie, models.NewRecord{Title: "Heat (1995)", ExternalID: ptr[int64](949)})
}

func testDelete(t *testing.T, s catalog.Store) {
	ctx := context.Background()
	rec := mustCreate(t, s, models.KindMovie, models.NewRecord{Title: "Alien", ExternalID: ptr[int64](348)})

	deleted, err := s.Delete(ctx, models.KindMovie, rec.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted.ID != rec.ID || deleted.Title != "Alien" {
		t.Errorf("Delete() = %+v, want the removed record", deleted)
	}
	if _, err := s.FindByID(ctx, models.KindMovie, rec.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("FindByID after delete error = %v", err)
	}
	if _, err := s.FindByExternalID(ctx, models.KindMovie, 348); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("FindByExternalID after delete error = %v", err)
	}
}

func testKindsIsolated(t *testing.T, s catalog.Store) {
	ctx := context.Background()
	mustCreate(t, s, models.KindMovie, models.NewRecord{Title: "Shared", ExternalID: ptr[int64](1399)})
	mustCreate(t, s, models.KindSeries, models.NewRecord{Title: "Shared", ExternalID: ptr[int64](1399)})

	movies, err := s.Count(ctx, models.KindMovie, models.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	series, err := s.Count(ctx, models.KindSeries, models.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if movies != 1 || series != 1 {
		t.Errorf("counts = %d movies, %d series, want 1 and 1", movies, series)
	}
}

func testPing(t *testing.T, s catalog.Store) {
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
