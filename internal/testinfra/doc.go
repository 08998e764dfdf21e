// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package testinfra provides test infrastructure shared across packages.
//
// # Mock TMDB Server
//
// MockTMDBServer is an httptest server that speaks enough of the TMDB v3
// API for the catalog: details with credits, single-kind search and multi
// search. It captures every request and can inject failures per path:
//
//	func TestSummaryDegrades(t *testing.T) {
//	    srv := testinfra.NewMockTMDBServer(t)
//	    srv.AddMovie(27205, "Inception", "/inception.jpg", "Christopher Nolan")
//	    srv.Fail("/movie/27205", http.StatusInternalServerError)
//
//	    client := tmdb.NewClient(config.TMDBConfig{
//	        BaseURL:     srv.URL(),
//	        BearerToken: testinfra.MockToken,
//	        Language:    "fr-FR",
//	    }, config.ProxyConfig{})
//	    // ...
//	}
//
// Requests without "Authorization: Bearer <MockToken>" get a 401, as TMDB
// answers for a bad token. The server closes itself through t.Cleanup.
package testinfra
