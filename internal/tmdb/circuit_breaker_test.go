// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package tmdb

import (
	"context"
	"errors"
	"net/http"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/models"
)

// stubAPI returns err from every call.
type stubAPI struct {
	err   error
	calls int
}

func (s *stubAPI) Search(context.Context, models.Kind, string) ([]Result, error) {
	s.calls++
	return nil, s.err
}

func (s *stubAPI) SearchMulti(context.Context, string) ([]Result, error) {
	s.calls++
	return nil, s.err
}

func (s *stubAPI) MovieDetails(_ context.Context, id int64) (*MovieDetails, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &MovieDetails{ID: id, Title: "ok"}, nil
}

func (s *stubAPI) SeriesDetails(_ context.Context, id int64) (*SeriesDetails, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &SeriesDetails{ID: id, Name: "ok"}, nil
}

func (s *stubAPI) Details(ctx context.Context, kind models.Kind, id int64) (Details, error) {
	return detailsFor(ctx, s, kind, id)
}

func TestCircuitBreakerOpensOnServerErrors(t *testing.T) {
	stub := &stubAPI{err: &ServiceError{Endpoint: "/movie/1", StatusCode: 500, Status: "500 Internal Server Error"}}
	cb := NewCircuitBreakerClient(stub, BreakerSettings{})

	for i := 0; i < 10; i++ {
		if _, err := cb.MovieDetails(context.Background(), 1); err == nil {
			t.Fatal("expected failure")
		}
	}
	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want open", cb.State())
	}

	callsBefore := stub.calls
	_, err := cb.MovieDetails(context.Background(), 1)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("error = %v, want ErrOpenState", err)
	}
	var se *ServiceError
	if !errors.As(err, &se) || se.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("rejection should be a 503 ServiceError, got %v", err)
	}
	if stub.calls != callsBefore {
		t.Error("open breaker must not call the wrapped client")
	}
}

func TestCircuitBreakerIgnoresCallerErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"auth", &AuthError{Reason: "missing"}},
		{"not found", &ServiceError{StatusCode: 404, Status: "404 Not Found"}},
		{"canceled", context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := NewCircuitBreakerClient(&stubAPI{err: tt.err}, BreakerSettings{})
			for i := 0; i < 20; i++ {
				_, _ = cb.SeriesDetails(context.Background(), 1)
			}
			if cb.State() != gobreaker.StateClosed {
				t.Errorf("state = %v, want closed", cb.State())
			}
		})
	}
}

func TestCircuitBreakerPassesResults(t *testing.T) {
	cb := NewCircuitBreakerClient(&stubAPI{}, BreakerSettings{})

	d, err := cb.Details(context.Background(), models.KindSeries, 42)
	if err != nil {
		t.Fatal(err)
	}
	if d.ExternalID() != 42 || d.DisplayTitle() != "ok" {
		t.Errorf("unexpected details %+v", d)
	}
}
