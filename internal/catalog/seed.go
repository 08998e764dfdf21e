// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"fmt"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

type demoMovie struct {
	title     string
	tmdbID    int64
	wishlist  bool
	rating    float64
	viewCount int
	watched   bool
}

var demoMovies = []demoMovie{
	{"Inception", 27205, false, 4.5, 2, true},
	{"Interstellar", 157336, true, 5, 1, true},
	{"The Dark Knight", 155, false, 4.8, 3, true},
	{"Pulp Fiction", 680, false, 4.7, 2, true},
	{"Fight Club", 550, true, 4.2, 1, false},
	{"Forrest Gump", 13, false, 4.9, 4, true},
	{"The Matrix", 603, false, 4.6, 2, true},
	{"The Godfather", 238, true, 5, 1, false},
	{"Gladiator", 98, false, 4.3, 2, true},
	{"La La Land", 313369, true, 4.1, 1, false},
}

// SeedDemo fills an empty movie collection with ten well-known films and
// returns how many were inserted. A collection that already holds movies
// is left alone.
func SeedDemo(ctx context.Context, store Store) (int, error) {
	n, err := store.Count(ctx, models.KindMovie, models.Filter{})
	if err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	if n > 0 {
		logging.Debug().Int("movies", n).Msg("Catalog not empty, skipping demo seed")
		return 0, nil
	}

	for i, m := range demoMovies {
		ext, rating := m.tmdbID, m.rating
		wishlist, views, watched := m.wishlist, m.viewCount, m.watched
		_, err := store.Create(ctx, models.KindMovie, models.NewRecord{
			ExternalID: &ext,
			Title:      m.title,
			Rating:     &rating,
			Wishlist:   &wishlist,
			ViewCount:  &views,
			Watched:    &watched,
		})
		if err != nil {
			return i, fmt.Errorf("seed %q: %w", m.title, err)
		}
	}

	logging.Info().Int("movies", len(demoMovies)).Msg("Seeded demo catalog")
	return len(demoMovies), nil
}
