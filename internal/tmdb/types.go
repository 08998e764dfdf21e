// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package tmdb

import "github.com/tomtom215/marquee/internal/models"

// Genre is a TMDB genre.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CastMember is one billed actor.
type CastMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
}

// CrewMember is one crew credit.
type CrewMember struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Job  string `json:"job"`
}

// Credits is the append_to_response=credits payload.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew,omitempty"`
}

// Creator is a series creator.
type Creator struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MovieDetails is /movie/{id}.
type MovieDetails struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Overview     string   `json:"overview"`
	ReleaseDate  string   `json:"release_date"`
	Runtime      *int     `json:"runtime,omitempty"`
	Genres       []Genre  `json:"genres"`
	PosterPath   *string  `json:"poster_path"`
	BackdropPath *string  `json:"backdrop_path"`
	VoteAverage  float64  `json:"vote_average"`
	VoteCount    int      `json:"vote_count"`
	Credits      *Credits `json:"credits,omitempty"`
}

// SeriesDetails is /tv/{id}.
type SeriesDetails struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Overview         string    `json:"overview"`
	FirstAirDate     string    `json:"first_air_date"`
	NumberOfSeasons  *int      `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes *int      `json:"number_of_episodes,omitempty"`
	EpisodeRunTime   []int     `json:"episode_run_time,omitempty"`
	Genres           []Genre   `json:"genres"`
	PosterPath       *string   `json:"poster_path"`
	BackdropPath     *string   `json:"backdrop_path"`
	VoteAverage      float64   `json:"vote_average"`
	VoteCount        int       `json:"vote_count"`
	CreatedBy        []Creator `json:"created_by,omitempty"`
	Credits          *Credits  `json:"credits,omitempty"`
}

// Details is the part of a details payload the catalog relies on.
type Details interface {
	ExternalID() int64
	DisplayTitle() string
	Poster() *string
	// Credit is the director of a movie or the first creator of a series.
	Credit() *string
}

func (m *MovieDetails) ExternalID() int64    { return m.ID }
func (m *MovieDetails) DisplayTitle() string { return m.Title }
func (m *MovieDetails) Poster() *string      { return m.PosterPath }

// Credit returns the first crew member credited as Director.
func (m *MovieDetails) Credit() *string {
	if m.Credits == nil {
		return nil
	}
	for _, c := range m.Credits.Crew {
		if c.Job == "Director" {
			name := c.Name
			return &name
		}
	}
	return nil
}

func (s *SeriesDetails) ExternalID() int64    { return s.ID }
func (s *SeriesDetails) DisplayTitle() string { return s.Name }
func (s *SeriesDetails) Poster() *string      { return s.PosterPath }

// Credit returns the first creator.
func (s *SeriesDetails) Credit() *string {
	if len(s.CreatedBy) == 0 {
		return nil
	}
	name := s.CreatedBy[0].Name
	return &name
}

// Result is one search hit. MediaType is set for multi search and filled
// in by Client for single-kind search.
type Result struct {
	ID           int64   `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   *string `json:"poster_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	VoteAverage  float64 `json:"vote_average"`
}

// Kind maps the TMDB media type to a catalog kind.
func (r *Result) Kind() (models.Kind, bool) {
	switch r.MediaType {
	case "movie":
		return models.KindMovie, true
	case "tv":
		return models.KindSeries, true
	default:
		return "", false
	}
}

type searchPage struct {
	Page    int      `json:"page"`
	Results []Result `json:"results"`
}
