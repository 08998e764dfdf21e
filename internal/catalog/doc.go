// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package catalog holds the domain operations on top of a Store and the TMDB
client: collection summaries, record CRUD, upsert by TMDB id and search
merging.

# Services

A Catalog owns the shared dependencies; Service binds them to one kind:

	cat := catalog.New(store, remote, catalog.Options{Events: bus})
	movies := cat.Service(models.KindMovie)
	summary, err := movies.Summarize(ctx, models.ViewWishlist)

# Enrichment

Poster and director enrichment runs through internal/batch with
batch.DefaultLimit concurrent TMDB calls. Enrichment never fails the
request: an item whose lookup fails is returned without the extra data.
Primary remote lookups (LookupRemote and the title fetch of
UpsertFromRemote) do return the remote error.

# Events

Every successful mutation is published to the configured Publisher.
Publishing problems are logged and do not affect the result.
*/
package catalog
