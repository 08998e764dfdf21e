// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

// Create inserts a record.
func (s *Service) Create(ctx context.Context, in models.NewRecord) (*models.Record, error) {
	rec, err := s.store.Create(ctx, s.kind, in)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.kind, err)
	}
	s.publish(ctx, s.kind, events.ActionCreated, rec)
	return rec, nil
}

// Get returns a record. Linked records carry the TMDB details when they
// could be fetched; otherwise the plain record is returned.
func (s *Service) Get(ctx context.Context, id int64) (*models.RecordWithDetails, error) {
	rec, err := s.store.FindByID(ctx, s.kind, id)
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", s.kind, id, err)
	}

	out := &models.RecordWithDetails{Record: *rec}
	if rec.ExternalID == nil {
		return out, nil
	}

	details, err := s.remote.Details(ctx, s.kind, *rec.ExternalID)
	metrics.RecordBatchItem("record_details", err != nil)
	if err != nil {
		logging.Ctx(ctx).Debug().
			Err(err).
			Str("kind", string(s.kind)).
			Int64("tmdb_id", *rec.ExternalID).
			Msg("TMDB details unavailable, returning plain record")
		return out, nil
	}
	out.TMDB = details
	return out, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id int64, patch models.Patch) (*models.Record, error) {
	rec, err := s.store.Update(ctx, s.kind, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", s.kind, id, err)
	}
	s.publish(ctx, s.kind, events.ActionUpdated, rec)
	return rec, nil
}

// Delete removes a record and returns it.
func (s *Service) Delete(ctx context.Context, id int64) (*models.Record, error) {
	rec, err := s.store.Delete(ctx, s.kind, id)
	if err != nil {
		return nil, fmt.Errorf("delete %s %d: %w", s.kind, id, err)
	}
	s.publish(ctx, s.kind, events.ActionDeleted, rec)
	return rec, nil
}

// UpsertInput is the payload of an upsert by TMDB id. Nil fields keep the
// stored value, or take the default for a new record.
type UpsertInput struct {
	ExternalID    int64
	TitleOverride string
	Rating        *float64
	Wishlist      *bool
	Review        *string
	ViewCount     *int
	Watched       *bool
}

// UpsertFromRemote creates or refreshes the record linked to a TMDB id.
// The title comes from TitleOverride when it is not blank, otherwise from
// TMDB, and a remote failure fails the call.
func (s *Service) UpsertFromRemote(ctx context.Context, in UpsertInput) (*models.Record, error) {
	if in.ExternalID <= 0 {
		return nil, ErrMissingExternalID
	}

	title := strings.TrimSpace(in.TitleOverride)
	if title == "" {
		details, err := s.remote.Details(ctx, s.kind, in.ExternalID)
		if err != nil {
			return nil, fmt.Errorf("fetch %s %d from TMDB: %w", s.kind, in.ExternalID, err)
		}
		title = details.DisplayTitle()
	}

	existing, err := s.store.FindByExternalID(ctx, s.kind, in.ExternalID)
	switch {
	case err == nil:
		return s.mergeUpsert(ctx, existing.ID, title, in)
	case !errors.Is(err, models.ErrNotFound):
		return nil, fmt.Errorf("upsert %s %d: %w", s.kind, in.ExternalID, err)
	}

	ext := in.ExternalID
	rec, err := s.store.Create(ctx, s.kind, models.NewRecord{
		ExternalID: &ext,
		Title:      title,
		Rating:     in.Rating,
		Wishlist:   in.Wishlist,
		Watched:    in.Watched,
		ViewCount:  in.ViewCount,
		Review:     in.Review,
	})
	if errors.Is(err, models.ErrDuplicateExternalID) {
		// Lost a race with a concurrent upsert of the same id.
		existing, ferr := s.store.FindByExternalID(ctx, s.kind, in.ExternalID)
		if ferr != nil {
			return nil, fmt.Errorf("upsert %s %d: %w", s.kind, in.ExternalID, ferr)
		}
		return s.mergeUpsert(ctx, existing.ID, title, in)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert %s %d: %w", s.kind, in.ExternalID, err)
	}
	s.publish(ctx, s.kind, events.ActionCreated, rec)
	return rec, nil
}

func (s *Service) mergeUpsert(ctx context.Context, id int64, title string, in UpsertInput) (*models.Record, error) {
	patch := models.Patch{
		Title:     &title,
		Wishlist:  in.Wishlist,
		Watched:   in.Watched,
		ViewCount: in.ViewCount,
	}
	if in.Rating != nil {
		patch.Rating = models.Some(*in.Rating)
	}
	if in.Review != nil {
		patch.Review = models.Some(*in.Review)
	}
	rec, err := s.store.Update(ctx, s.kind, id, patch)
	if err != nil {
		return nil, fmt.Errorf("upsert %s %d: %w", s.kind, in.ExternalID, err)
	}
	s.publish(ctx, s.kind, events.ActionUpdated, rec)
	return rec, nil
}

// LookupRemote returns the TMDB details of an id next to the local record,
// if any. Nothing is written.
func (s *Service) LookupRemote(ctx context.Context, externalID int64) (*models.RemoteLookup, error) {
	var (
		local   *models.Record
		details interface{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := s.remote.Details(gctx, s.kind, externalID)
		if err != nil {
			return fmt.Errorf("fetch %s %d from TMDB: %w", s.kind, externalID, err)
		}
		details = d
		return nil
	})
	g.Go(func() error {
		rec, err := s.store.FindByExternalID(gctx, s.kind, externalID)
		switch {
		case err == nil:
			local = rec
		case !errors.Is(err, models.ErrNotFound):
			return fmt.Errorf("lookup %s %d: %w", s.kind, externalID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &models.RemoteLookup{Local: local, TMDB: details}, nil
}
