// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

import "time"

// AggregateStats are the scalar statistics a store computes over a filter.
// Rating fields ignore null ratings and are nil when no rating exists.
type AggregateStats struct {
	Count          int
	AvgRating      *float64
	MinRating      *float64
	MaxRating      *float64
	FirstCreatedAt *time.Time
	LastUpdatedAt  *time.Time
}

// PosterInfo is the TMDB enrichment attached to summary items.
type PosterInfo struct {
	PosterPath *string `json:"poster_path"`
	PosterURL  *string `json:"poster_url"`
}

// EnrichedRecord is a record with optional poster enrichment. The tmdb key
// is omitted entirely when enrichment was skipped or failed.
type EnrichedRecord struct {
	Record
	TMDB *PosterInfo `json:"tmdb,omitempty"`
}

// AggregateSummary is the response of the collection endpoints.
type AggregateSummary struct {
	Count             int              `json:"count"`
	AvgRating         *float64         `json:"avgRating"`
	MaxRating         *float64         `json:"maxRating"`
	MinRating         *float64         `json:"minRating"`
	LastUpdatedAt     *time.Time       `json:"lastUpdatedAt"`
	FirstCreatedAt    *time.Time       `json:"firstCreatedAt"`
	WithImageCount    int              `json:"withImageCount"`
	MissingImageCount int              `json:"missingImageCount"`
	UnratedCount      int              `json:"unratedCount"`
	RatedCount        int              `json:"ratedCount"`
	Items             []EnrichedRecord `json:"items"`
}

// RecordWithDetails is the single-record response: the record plus the full
// TMDB payload when it could be fetched.
type RecordWithDetails struct {
	Record
	TMDB interface{} `json:"tmdb,omitempty"`
}

// RemoteLookup pairs the local record (or null) with the TMDB details.
type RemoteLookup struct {
	Local *Record     `json:"local"`
	TMDB  interface{} `json:"tmdb"`
}
