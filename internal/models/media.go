// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import (
	"errors"
	"fmt"
	"time"
)

// Kind distinguishes the two catalog collections. Records of different
// kinds never share an id space.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "serie"
)

// Kinds lists every kind in display order.
var Kinds = []Kind{KindMovie, KindSeries}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindMovie || k == KindSeries
}

// Table is the storage name for the kind's collection.
func (k Kind) Table() string {
	if k == KindSeries {
		return "series"
	}
	return "movies"
}

// ParseKind accepts the API spelling ("movie", "serie") as well as TMDB's
// media types ("movie", "tv").
func ParseKind(s string) (Kind, error) {
	switch s {
	case "movie":
		return KindMovie, nil
	case "serie", "series", "tv":
		return KindSeries, nil
	default:
		return "", fmt.Errorf("unknown media kind %q", s)
	}
}

var (
	// ErrNotFound is returned by stores when no record has the given id.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateExternalID is returned when a write would give two records
	// of the same kind the same TMDB id.
	ErrDuplicateExternalID = errors.New("tmdbId already used by another record")
)

// Record is one user-curated catalog entry. Movies and series share the shape.
type Record struct {
	ID         int64     `json:"id"`
	ExternalID *int64    `json:"tmdbId"`
	Title      string    `json:"title"`
	Rating     *float64  `json:"rating"`
	Wishlist   bool      `json:"wishlist"`
	Watched    bool      `json:"watched"`
	ViewCount  int       `json:"viewCount"`
	Review     *string   `json:"review"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// HasExternalID reports whether the record is linked to TMDB.
func (r *Record) HasExternalID() bool {
	return r.ExternalID != nil
}

// NewRecord is the input to Store.Create. Nil pointers take the defaults:
// no rating, no review, not wishlisted, unwatched, zero views.
type NewRecord struct {
	ExternalID *int64
	Title      string
	Rating     *float64
	Wishlist   *bool
	Watched    *bool
	ViewCount  *int
	Review     *string
}

// Build materializes the record with defaults applied. ID and timestamps are
// left for the store.
func (n NewRecord) Build() Record {
	rec := Record{
		ExternalID: n.ExternalID,
		Title:      n.Title,
		Rating:     n.Rating,
		Review:     n.Review,
	}
	if n.Wishlist != nil {
		rec.Wishlist = *n.Wishlist
	}
	if n.Watched != nil {
		rec.Watched = *n.Watched
	}
	if n.ViewCount != nil {
		rec.ViewCount = *n.ViewCount
	}
	return rec
}

// Patch is a partial update. Unset fields keep their stored value. The
// nullable columns use Optional so an explicit JSON null clears them.
type Patch struct {
	ExternalID Optional[int64]   `json:"tmdbId"`
	Title      *string           `json:"title"`
	Rating     Optional[float64] `json:"rating"`
	Wishlist   *bool             `json:"wishlist"`
	Watched    *bool             `json:"watched"`
	ViewCount  *int              `json:"viewCount"`
	Review     Optional[string]  `json:"review"`
}

// IsEmpty reports whether the patch changes nothing.
func (p *Patch) IsEmpty() bool {
	return !p.ExternalID.Set && p.Title == nil && !p.Rating.Set &&
		p.Wishlist == nil && p.Watched == nil && p.ViewCount == nil && !p.Review.Set
}

// Apply writes the patch onto rec. Timestamps are not touched.
func (p *Patch) Apply(rec *Record) {
	if p.ExternalID.Set {
		rec.ExternalID = p.ExternalID.Value
	}
	if p.Title != nil {
		rec.Title = *p.Title
	}
	if p.Rating.Set {
		rec.Rating = p.Rating.Value
	}
	if p.Wishlist != nil {
		rec.Wishlist = *p.Wishlist
	}
	if p.Watched != nil {
		rec.Watched = *p.Watched
	}
	if p.ViewCount != nil {
		rec.ViewCount = *p.ViewCount
	}
	if p.Review.Set {
		rec.Review = p.Review.Value
	}
}
