// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

// SearchResult is one merged search hit. The concrete types are
// *MovieSearchResult and *SeriesSearchResult; the JSON "type" field
// discriminates them.
type SearchResult interface {
	ResultKind() Kind
	ResultExternalID() int64
	SetLocal(*Record)
	SetDirector(*string)
}

// MovieSearchResult is a movie hit.
type MovieSearchResult struct {
	Type        Kind    `json:"type"`
	ExternalID  int64   `json:"tmdbId"`
	Title       string  `json:"title"`
	PosterPath  *string `json:"poster_path"`
	Overview    *string `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Local       *Record `json:"local"`
	Director    *string `json:"director"`
}

func (m *MovieSearchResult) ResultKind() Kind         { return KindMovie }
func (m *MovieSearchResult) ResultExternalID() int64  { return m.ExternalID }
func (m *MovieSearchResult) SetLocal(r *Record)       { m.Local = r }
func (m *MovieSearchResult) SetDirector(name *string) { m.Director = name }

// SeriesSearchResult is a series hit. Director carries the first creator.
type SeriesSearchResult struct {
	Type         Kind    `json:"type"`
	ExternalID   int64   `json:"tmdbId"`
	Title        string  `json:"title"`
	PosterPath   *string `json:"poster_path"`
	Overview     *string `json:"overview"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
	Local        *Record `json:"local"`
	Director     *string `json:"director"`
}

func (s *SeriesSearchResult) ResultKind() Kind         { return KindSeries }
func (s *SeriesSearchResult) ResultExternalID() int64  { return s.ExternalID }
func (s *SeriesSearchResult) SetLocal(r *Record)       { s.Local = r }
func (s *SeriesSearchResult) SetDirector(name *string) { s.Director = name }

// SearchResponse wraps merged hits. Total is the number of returned results.
type SearchResponse struct {
	Query   string         `json:"query"`
	Limit   int            `json:"limit"`
	Total   int            `json:"total"`
	Results []SearchResult `json:"results"`
}
