// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/database"
	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/kvstore"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/tmdb"
)

// app holds everything main wires together.
type app struct {
	store   catalog.Store
	badger  *kvstore.Store // set when DATABASE_ENGINE=badger
	bus     *events.Bus
	breaker *tmdb.CircuitBreakerClient
	catalog *catalog.Catalog
	handler http.Handler
}

// openStore opens the configured record store.
func openStore(cfg *config.DatabaseConfig) (catalog.Store, *kvstore.Store, error) {
	switch cfg.Engine {
	case config.EngineBadger:
		kv, err := kvstore.Open(cfg.BadgerPath)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv, nil
	case config.EngineDuckDB, "":
		db, err := database.New(cfg)
		if err != nil {
			return nil, nil, err
		}
		return db, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown database engine %q", cfg.Engine)
	}
}

// newRemote builds the TMDB client, wrapped in a circuit breaker unless
// TMDB_CIRCUIT_BREAKER=false.
func newRemote(cfg *config.Config) (*tmdb.Client, tmdb.API, *tmdb.CircuitBreakerClient) {
	client := tmdb.NewClient(cfg.TMDB, cfg.Proxy)
	if !cfg.TMDB.CircuitBreaker {
		return client, client, nil
	}
	breaker := tmdb.NewCircuitBreakerClient(client, tmdb.BreakerSettings{})
	return client, breaker, breaker
}

// newApp opens the store and the bus and builds the HTTP handler. The
// caller owns the result and must Close it.
func newApp(ctx context.Context, cfg *config.Config, version string) (*app, error) {
	store, kv, err := openStore(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a := &app{store: store, badger: kv}

	if cfg.Database.SeedDemoData {
		n, err := catalog.SeedDemo(ctx, store)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
		if n > 0 {
			logging.Info().Int("movies", n).Msg("Seeded demo catalog")
		}
	}

	bus, err := events.New(cfg.Events)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("event bus: %w", err)
	}
	a.bus = bus

	client, remote, breaker := newRemote(cfg)
	a.breaker = breaker
	if !cfg.TMDB.HasCredential() {
		logging.Warn().Msg("TMDB_BEARER_TOKEN is not set; remote lookups will answer 401")
	}
	if cfg.Proxy.ProxyURL() != "" {
		logging.Info().Str("proxy", cfg.Proxy.Redacted()).Msg("TMDB requests go through a proxy")
	}

	a.catalog = catalog.New(store, remote, catalog.Options{
		Events:   bus,
		ImageURL: client.ImageURL,
	})

	mwCfg, err := api.ChiMiddlewareConfigFrom(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	handler := api.NewHandler(a.catalog, api.HealthChecks{
		Ping:          store.Ping,
		BreakerOpen:   a.breakerOpen,
		HasCredential: cfg.TMDB.HasCredential(),
		Version:       version,
	})
	a.handler = api.NewRouter(handler, api.NewChiMiddleware(mwCfg)).SetupChi()
	return a, nil
}

func (a *app) breakerOpen() bool {
	return a.breaker != nil && a.breaker.State() == gobreaker.StateOpen
}

// newHTTPServer builds the listener. Server.Timeout bounds reads and writes.
func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
}

// Close releases the bus and the store. It is safe on a partly built app.
func (a *app) Close() {
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}
}
