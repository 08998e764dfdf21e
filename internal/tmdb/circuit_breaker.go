// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

var _ API = (*CircuitBreakerClient)(nil)

// BreakerName labels the breaker in logs and metrics.
const BreakerName = "tmdb-api"

// CircuitBreakerClient wraps an API with a circuit breaker. When TMDB keeps
// failing, calls are rejected immediately with a 503 ServiceError until
// the breaker half-opens again.
//
// The breaker uses wall-clock time for its interval and timeout.
type CircuitBreakerClient struct {
	client API
	cb     *gobreaker.CircuitBreaker[any]
	name   string
}

// BreakerSettings tunes the breaker. Zero fields take the defaults used in
// production: 3 half-open probes, 1 minute interval, 2 minute open timeout,
// trip at 60% failures over at least 10 requests.
type BreakerSettings struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

func (s BreakerSettings) withDefaults() BreakerSettings {
	if s.MaxRequests == 0 {
		s.MaxRequests = 3
	}
	if s.Interval == 0 {
		s.Interval = time.Minute
	}
	if s.Timeout == 0 {
		s.Timeout = 2 * time.Minute
	}
	if s.MinRequests == 0 {
		s.MinRequests = 10
	}
	if s.FailureRatio == 0 {
		s.FailureRatio = 0.6
	}
	return s
}

// NewCircuitBreakerClient wraps client.
func NewCircuitBreakerClient(client API, settings BreakerSettings) *CircuitBreakerClient {
	s := settings.withDefaults()

	metrics.CircuitBreakerState.WithLabelValues(BreakerName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(BreakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        BreakerName,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= s.FailureRatio {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("[CIRCUIT BREAKER] Opening TMDB circuit")
				return true
			}
			return false
		},
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] TMDB state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{client: client, cb: cb, name: BreakerName}
}

// isBreakerSuccess keeps caller mistakes out of the failure count: a bad
// token, an unknown id or a cancelled request say nothing about TMDB health.
func isBreakerSuccess(err error) bool {
	if err == nil || errors.Is(err, ErrUnauthorized) || errors.Is(err, context.Canceled) {
		return true
	}
	var se *ServiceError
	if errors.As(err, &se) && se.IsClientError() {
		return true
	}
	return false
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// State exposes the breaker state for readiness checks.
func (c *CircuitBreakerClient) State() gobreaker.State {
	return c.cb.State()
}

func (c *CircuitBreakerClient) execute(endpoint string, fn func() (any, error)) (any, error) {
	result, err := c.cb.Execute(fn)
	if err == nil {
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "success").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(0)
		return result, nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.CircuitBreakerRequests.WithLabelValues(c.name, "rejected").Inc()
		logging.Debug().Err(err).Str("endpoint", endpoint).Msg("[CIRCUIT BREAKER] TMDB request rejected")
		return nil, &ServiceError{
			Endpoint:   endpoint,
			StatusCode: http.StatusServiceUnavailable,
			Status:     fmt.Sprintf("%d circuit %s", http.StatusServiceUnavailable, c.cb.State()),
			Err:        err,
		}
	}

	metrics.CircuitBreakerRequests.WithLabelValues(c.name, "failure").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.name).Set(float64(c.cb.Counts().ConsecutiveFailures))
	return nil, err
}

// Search implements API.
func (c *CircuitBreakerClient) Search(ctx context.Context, kind models.Kind, query string) ([]Result, error) {
	res, err := c.execute("/search/"+string(kind), func() (any, error) {
		return c.client.Search(ctx, kind, query)
	})
	if err != nil {
		return nil, err
	}
	results, _ := res.([]Result)
	return results, nil
}

// SearchMulti implements API.
func (c *CircuitBreakerClient) SearchMulti(ctx context.Context, query string) ([]Result, error) {
	res, err := c.execute("/search/multi", func() (any, error) {
		return c.client.SearchMulti(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	results, _ := res.([]Result)
	return results, nil
}

// MovieDetails implements API.
func (c *CircuitBreakerClient) MovieDetails(ctx context.Context, id int64) (*MovieDetails, error) {
	res, err := c.execute("/movie/{id}", func() (any, error) {
		return c.client.MovieDetails(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	m, ok := res.(*MovieDetails)
	if !ok {
		return nil, errors.New("circuit breaker: unexpected result type for MovieDetails")
	}
	return m, nil
}

// SeriesDetails implements API.
func (c *CircuitBreakerClient) SeriesDetails(ctx context.Context, id int64) (*SeriesDetails, error) {
	res, err := c.execute("/tv/{id}", func() (any, error) {
		return c.client.SeriesDetails(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	s, ok := res.(*SeriesDetails)
	if !ok {
		return nil, errors.New("circuit breaker: unexpected result type for SeriesDetails")
	}
	return s, nil
}

// Details implements API.
func (c *CircuitBreakerClient) Details(ctx context.Context, kind models.Kind, id int64) (Details, error) {
	return detailsFor(ctx, c, kind, id)
}
