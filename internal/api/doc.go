// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package api serves the Marquee HTTP API with the chi router.

Every catalog route lives under /api. The movie and series collections
share one set of handlers bound to a models.Kind:

	POST   /api/{kind}                create
	POST   /api/{kind}/tmdb           upsert by tmdbId
	GET    /api/{kind}                summary of every record
	GET    /api/{kind}/wishlist       summary of the wishlist
	GET    /api/{kind}/unlisted       summary of everything not wishlisted
	GET    /api/{kind}/rated          summary of rated records
	GET    /api/{kind}/search         TMDB search merged with local records
	GET    /api/{kind}/tmdb/{tmdbId}  TMDB details next to the local record
	GET    /api/{kind}/{id}           one record, with TMDB details when linked
	PUT    /api/{kind}/{id}           partial update
	DELETE /api/{kind}/{id}           delete
	GET    /api/search                multi-kind search with credits

where {kind} is "movie" or "serie". Health probes are served under
/api/health, Prometheus metrics on /metrics and Swagger UI on /swagger/.

# Responses

Successful responses are the bare JSON resource. Errors use the envelope

	{"success": false, "error": {"code", "message", "details", "request_id"},
	 "meta": {"request_id", "timestamp", "duration_ms"}}

and respondServiceError maps domain errors to status codes in one place.

# Middleware

The global stack is RequestID, RealIP, RequestLogger, Recoverer, CORS and
Prometheus metrics. Catalog routes are additionally rate limited per IP
through httprate.
*/
package api
