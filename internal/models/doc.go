// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package models holds the catalog's data types.

A Record is one movie or series in the personal catalog, keyed by an
auto-assigned id and optionally linked to TMDB through ExternalID (the
tmdbId JSON field). NewRecord and Patch are the create and update inputs;
Patch uses Optional so that an explicit JSON null can clear a nullable
field while an absent key leaves it alone.

Views (all, wishlist, non_wishlist, rated) select the records a summary
covers, and AggregateSummary is the response of the collection endpoints.
SearchResult is the tagged union of movie and series hits returned by the
search endpoints.
*/
package models
