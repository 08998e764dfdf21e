// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"

	"github.com/tomtom215/marquee/internal/models"
)

// Store is the persistence contract. internal/database (DuckDB) and
// internal/kvstore (Badger) both implement it.
//
// A missing id yields models.ErrNotFound and a clashing tmdbId yields
// models.ErrDuplicateExternalID. FindMany returns records in id order.
type Store interface {
	Create(ctx context.Context, kind models.Kind, rec models.NewRecord) (*models.Record, error)
	FindByID(ctx context.Context, kind models.Kind, id int64) (*models.Record, error)
	FindByExternalID(ctx context.Context, kind models.Kind, externalID int64) (*models.Record, error)
	// FindByExternalIDs returns the records that exist, keyed by tmdbId.
	FindByExternalIDs(ctx context.Context, kind models.Kind, externalIDs []int64) (map[int64]*models.Record, error)
	FindMany(ctx context.Context, kind models.Kind, filter models.Filter) ([]models.Record, error)
	Aggregate(ctx context.Context, kind models.Kind, filter models.Filter) (models.AggregateStats, error)
	Count(ctx context.Context, kind models.Kind, filter models.Filter) (int, error)
	Update(ctx context.Context, kind models.Kind, id int64, patch models.Patch) (*models.Record, error)
	// Delete removes the record and returns it as it was.
	Delete(ctx context.Context, kind models.Kind, id int64) (*models.Record, error)
	Ping(ctx context.Context) error
	Close() error
}
