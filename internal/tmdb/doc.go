// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package tmdb is a small client for The Movie Database REST API v3.
//
// Client performs a single attempt per call: no retries and, unless
// TMDB_TIMEOUT is set, no timeout beyond the caller's context. Every
// request carries the configured language and the bearer token. Failures
// are typed:
//
//   - *AuthError when the token is missing or rejected (errors.Is ErrUnauthorized)
//   - *ServiceError for non-2xx responses and transport failures
//
// CircuitBreakerClient decorates any API with sony/gobreaker so a failing
// upstream is short-circuited instead of hammered by enrichment batches.
package tmdb
