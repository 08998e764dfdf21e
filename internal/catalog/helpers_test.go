// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/kvstore"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/testinfra"
	"github.com/tomtom215/marquee/internal/tmdb"
)

type fixture struct {
	cat    *catalog.Catalog
	store  *kvstore.Store
	remote *testinfra.MockTMDBServer
	events *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithToken(t, testinfra.MockToken)
}

func newFixtureWithToken(t *testing.T, token string) *fixture {
	t.Helper()

	store, err := kvstore.OpenInMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	srv := testinfra.NewMockTMDBServer(t)
	client := tmdb.NewClient(config.TMDBConfig{
		BearerToken:  token,
		BaseURL:      srv.URL(),
		ImageBaseURL: tmdb.DefaultImageBase,
		Language:     "fr-FR",
	}, config.ProxyConfig{})

	pub := &recordingPublisher{}
	return &fixture{
		cat:    catalog.New(store, client, catalog.Options{Events: pub}),
		store:  store,
		remote: srv,
		events: pub,
	}
}

func (f *fixture) create(t *testing.T, kind models.Kind, in models.NewRecord) *models.Record {
	t.Helper()
	rec, err := f.store.Create(context.Background(), kind, in)
	if err != nil {
		t.Fatalf("create %q: %v", in.Title, err)
	}
	return rec
}

func ptr[T any](v T) *T { return &v }

type publishedEvent struct {
	kind   models.Kind
	action events.Action
	id     int64
}

// recordingPublisher captures published events and can be told to fail.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	fail   bool
}

func (p *recordingPublisher) Publish(_ context.Context, kind models.Kind, action events.Action, rec *models.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, publishedEvent{kind: kind, action: action, id: rec.ID})
	return nil
}

func (p *recordingPublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

// faultyStore fails selected reads and counts Count calls.
type faultyStore struct {
	catalog.Store
	failAggregate bool

	mu           sync.Mutex
	unratedCalls int
}

func (s *faultyStore) Aggregate(ctx context.Context, kind models.Kind, f models.Filter) (models.AggregateStats, error) {
	if s.failAggregate {
		return models.AggregateStats{}, errors.New("aggregate exploded")
	}
	return s.Store.Aggregate(ctx, kind, f)
}

func (s *faultyStore) Count(ctx context.Context, kind models.Kind, f models.Filter) (int, error) {
	if f.Unrated {
		s.mu.Lock()
		s.unratedCalls++
		s.mu.Unlock()
	}
	return s.Store.Count(ctx, kind, f)
}
