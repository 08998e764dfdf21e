// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides the HTTP middleware shared by every route.

  - RequestID: assigns or propagates X-Request-ID and stores it in the context
  - RequestLogger: one structured access log line per request
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern

All three use the http.HandlerFunc shape; internal/api adapts them to chi's
func(http.Handler) http.Handler.
*/
package middleware
