// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"errors"

	"github.com/tomtom215/marquee/internal/batch"
	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/tmdb"
)

// ErrMissingExternalID rejects an upsert without a positive tmdbId.
var ErrMissingExternalID = errors.New("tmdbId is required")

// Publisher receives catalog change events. *events.Bus implements it,
// including as a nil pointer.
type Publisher interface {
	Publish(ctx context.Context, kind models.Kind, action events.Action, rec *models.Record) error
}

// Options are the optional collaborators of a Catalog.
type Options struct {
	// Events receives change events. Nil disables publishing.
	Events Publisher
	// ImageURL builds poster URLs. Defaults to tmdb.ImageURL.
	ImageURL func(path *string, size tmdb.ImageSize) *string
	// EnrichLimit caps concurrent TMDB calls per request. Defaults to
	// batch.DefaultLimit.
	EnrichLimit int
}

// Catalog ties the store and the remote client together.
type Catalog struct {
	store       Store
	remote      tmdb.API
	events      Publisher
	imageURL    func(path *string, size tmdb.ImageSize) *string
	enrichLimit int
}

// New builds a Catalog.
func New(store Store, remote tmdb.API, opts Options) *Catalog {
	c := &Catalog{
		store:       store,
		remote:      remote,
		events:      opts.Events,
		imageURL:    opts.ImageURL,
		enrichLimit: opts.EnrichLimit,
	}
	if c.imageURL == nil {
		c.imageURL = tmdb.ImageURL
	}
	if c.enrichLimit <= 0 {
		c.enrichLimit = batch.DefaultLimit
	}
	return c
}

// Store returns the underlying store.
func (c *Catalog) Store() Store {
	return c.store
}

// Service returns the operations for one kind.
func (c *Catalog) Service(kind models.Kind) *Service {
	return &Service{Catalog: c, kind: kind}
}

// Service is a Catalog bound to one kind.
type Service struct {
	*Catalog
	kind models.Kind
}

// Kind returns the bound kind.
func (s *Service) Kind() models.Kind {
	return s.kind
}

func (c *Catalog) publish(ctx context.Context, kind models.Kind, action events.Action, rec *models.Record) {
	if c.events == nil {
		return
	}
	if err := c.events.Publish(ctx, kind, action, rec); err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Str("kind", string(kind)).
			Str("action", string(action)).
			Int64("record_id", rec.ID).
			Msg("Failed to publish catalog event")
	}
}
