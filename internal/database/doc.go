// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package database is the DuckDB record store, the default catalog engine.
//
// # Overview
//
// Movies and series live in two tables of identical shape, "movies" and
// "series". Each has a sequence-backed BIGINT id and a UNIQUE tmdb_id, so
// the database rejects a second record pointing at the same TMDB entry.
//
// # Files
//
//   - database.go: connection lifecycle (open, ping, checkpoint, close)
//   - database_schema.go: sequences and tables
//   - records.go: catalog.Store methods
//   - errors.go: close helpers and constraint error detection
//   - query/: WHERE clause construction from models.Filter
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
//	rec, err := db.Create(ctx, models.KindMovie, models.NewRecord{Title: "Inception"})
//
// Every write returns the stored row through RETURNING. Query durations and
// failures are exported through metrics.RecordDBQuery.
//
// # Testing
//
// Tests open ":memory:" databases; nothing touches the filesystem.
package database
