// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Command server runs the Marquee HTTP API.

Marquee keeps a personal catalog of movies and series, enriched with
metadata and posters from TMDB.

# Startup

 1. Configuration: defaults, then config.yaml, then the environment (koanf)
 2. Logging: zerolog, JSON or console
 3. Store: DuckDB (DATABASE_ENGINE=duckdb) or Badger (DATABASE_ENGINE=badger)
 4. TMDB client with an outbound rate limiter and a circuit breaker
 5. Event bus: in-process, or NATS when EVENTS_NATS_URL is set
 6. Supervisor tree running the audit consumer, Badger GC and the HTTP server

# Configuration

	PORT=3000                    # or HTTP_PORT
	TMDB_BEARER_TOKEN=<token>    # TMDB v4 read access token
	TMDB_LANGUAGE=fr-FR
	TMDB_TIMEOUT=0               # per request, 0 waits indefinitely
	CORS_ALLOWED_ORIGINS=        # empty, comma list, or /regex/
	DATABASE_ENGINE=duckdb       # or badger
	DUCKDB_PATH=./data/marquee.duckdb
	EVENTS_ENABLED=true
	EVENTS_NATS_URL=             # empty keeps events in process
	LOG_LEVEL=info
	LOG_FORMAT=json

A missing TMDB token is not fatal. Local CRUD keeps working and every
remote lookup answers 401 REMOTE_AUTH_ERROR until a token is configured.

# Signals

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains for
up to ten seconds, then the event bus and the store are closed.
*/
package main
