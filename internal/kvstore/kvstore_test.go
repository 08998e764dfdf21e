// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package kvstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/catalog/storetest"
	"github.com/tomtom215/marquee/internal/models"
)

var _ catalog.Store = (*Store)(nil)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return s
}

func TestStoreConformance(t *testing.T) {
	t.Parallel()
	storetest.Run(t, func(t *testing.T) catalog.Store {
		return setupTestStore(t)
	})
}

func TestPersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	ext := int64(27205)
	first, err := s.Create(context.Background(), models.KindMovie, models.NewRecord{Title: "Inception", ExternalID: &ext})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.RunGC(); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	got, err := s.FindByExternalID(context.Background(), models.KindMovie, ext)
	if err != nil || got.ID != first.ID {
		t.Fatalf("FindByExternalID after reopen = %+v, %v", got, err)
	}
	next, err := s.Create(context.Background(), models.KindMovie, models.NewRecord{Title: "Next"})
	if err != nil {
		t.Fatal(err)
	}
	if next.ID <= first.ID {
		t.Errorf("id %d reused after reopen (first was %d)", next.ID, first.ID)
	}
}

func TestConcurrentCreateSameExternalID(t *testing.T) {
	t.Parallel()
	s := setupTestStore(t)

	const writers = 8
	ext := int64(155)
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		duplicate int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(context.Background(), models.KindMovie, models.NewRecord{Title: "The Dark Knight", ExternalID: &ext})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, models.ErrDuplicateExternalID):
				duplicate++
			default:
				t.Errorf("Create() unexpected error = %v", err)
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Errorf("created = %d, want exactly 1 (duplicates: %d)", created, duplicate)
	}
	n, err := s.Count(context.Background(), models.KindMovie, models.Filter{})
	if err != nil || n != 1 {
		t.Errorf("Count() = %d, %v, want 1", n, err)
	}
}

func TestPingAfterClose(t *testing.T) {
	t.Parallel()

	s, err := OpenInMemory()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Ping(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Ping() after close = %v, want ErrClosed", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestGCServiceStopsOnCancel(t *testing.T) {
	t.Parallel()
	s := setupTestStore(t)

	svc := NewGCService(s, 5*time.Millisecond)
	if svc.String() != "kvstore-gc" {
		t.Errorf("String() = %q", svc.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want deadline exceeded", err)
	}
}
