// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/marquee/internal/models"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates one sequence and one table per kind.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, kind := range models.Kinds {
		for _, query := range tableCreationQueries(kind.Table()) {
			if _, err := db.conn.ExecContext(ctx, query); err != nil {
				return fmt.Errorf("failed to execute query: %s: %w", query, err)
			}
		}
	}
	return nil
}

// tableCreationQueries returns the DDL for one catalog table. Timestamps are
// plain TIMESTAMP in UTC, written by the application, so no ICU extension
// is needed at WAL replay.
func tableCreationQueries(table string) []string {
	return []string{
		fmt.Sprintf(`CREATE SEQUENCE IF NOT EXISTS %s_id_seq START 1`, table),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %[1]s (
			id BIGINT PRIMARY KEY DEFAULT nextval('%[1]s_id_seq'),
			tmdb_id BIGINT UNIQUE,
			title TEXT NOT NULL,
			rating DOUBLE,
			wishlist BOOLEAN NOT NULL DEFAULT false,
			watched BOOLEAN NOT NULL DEFAULT false,
			view_count INTEGER NOT NULL DEFAULT 0,
			review TEXT,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`, table),
	}
}
