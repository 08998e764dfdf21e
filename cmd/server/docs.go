// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// @title Marquee API
// @version 1.0
// @description Personal movie and series catalog backed by TMDB metadata.
// @description
// @description Successful responses are the bare resource. Errors use the envelope
// @description `{"success": false, "error": {"code", "message", "details", "request_id"}, "meta": {...}}`.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/marquee/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @host localhost:3000
// @BasePath /api
// @schemes http https
//
// @tag.name Catalog
// @tag.description Movie and series records, summaries and TMDB upserts
//
// @tag.name Search
// @tag.description TMDB search merged with the local catalog
//
// @tag.name Core
// @tag.description Health probes
package main
