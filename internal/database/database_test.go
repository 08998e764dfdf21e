// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/catalog/storetest"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/models"
)

var _ catalog.Store = (*DB)(nil)

// testDBSemaphore serializes DuckDB tests; concurrent CGO calls from many
// in-memory databases can hang under CI resource pressure.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates an in-memory database held for the whole test.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "256MB",
		Threads:   2,
	}

	type result struct {
		db  *DB
		err error
	}
	resultCh := make(chan result, 1)
	go func() {
		db, err := New(cfg)
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		t.Cleanup(func() {
			if err := res.db.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
		})
		return res.db
	case <-time.After(120 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 120s")
		return nil
	}
}

func TestStoreConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) catalog.Store {
		return setupTestDB(t)
	})
}

func TestNewCreatesDirectoryAndReopens(t *testing.T) {
	testDBSemaphore <- struct{}{}
	defer func() { <-testDBSemaphore }()

	path := filepath.Join(t.TempDir(), "nested", "marquee.duckdb")
	cfg := &config.DatabaseConfig{Path: path, MaxMemory: "256MB", Threads: 1}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	rec, err := db.Create(context.Background(), models.KindMovie, models.NewRecord{Title: "Persisted"})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	db, err = New(cfg)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer db.Close()

	got, err := db.FindByID(context.Background(), models.KindMovie, rec.ID)
	if err != nil || got.Title != "Persisted" {
		t.Errorf("FindByID after reopen = %+v, %v", got, err)
	}

	next, err := db.Create(context.Background(), models.KindMovie, models.NewRecord{Title: "Next"})
	if err != nil {
		t.Fatal(err)
	}
	if next.ID <= rec.ID {
		t.Errorf("sequence restarted: got id %d after %d", next.ID, rec.ID)
	}
}

func TestUnknownKindRejected(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.FindMany(context.Background(), models.Kind("book"), models.Filter{})
	if err == nil {
		t.Fatal("expected an error for an unknown kind")
	}
	if errors.Is(err, models.ErrNotFound) {
		t.Errorf("unknown kind should not look like a missing record: %v", err)
	}
}

func TestIsUniqueConstraintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"duplicate key", errors.New(`Constraint Error: Duplicate key "tmdb_id: 1" violates unique constraint`), true},
		{"unique constraint", errors.New("UNIQUE constraint failed"), true},
		{"other", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueConstraintError(tt.err); got != tt.want {
				t.Errorf("isUniqueConstraintError() = %v, want %v", got, tt.want)
			}
		})
	}
}
