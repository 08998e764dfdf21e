// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"time"
)

// HealthChecks are the probes behind /api/health/ready.
type HealthChecks struct {
	// Ping checks the record store.
	Ping func(ctx context.Context) error
	// BreakerOpen reports an open TMDB circuit breaker.
	BreakerOpen func() bool
	// HasCredential reports whether a TMDB token is configured.
	HasCredential bool
	// Version is reported by /api/health.
	Version string
}

// HealthStatus is the body of /api/health and /api/health/ready.
type HealthStatus struct {
	Status            string  `json:"status"`
	Version           string  `json:"version,omitempty"`
	DatabaseConnected bool    `json:"database_connected"`
	TMDBCircuitOpen   bool    `json:"tmdb_circuit_open"`
	TMDBCredential    bool    `json:"tmdb_credential"`
	Uptime            float64 `json:"uptime"`
}

const pingTimeout = 2 * time.Second

func (h *Handler) status(ctx context.Context) HealthStatus {
	dbConnected := true
	if h.health.Ping != nil {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		dbConnected = h.health.Ping(pctx) == nil
		cancel()
	}
	breakerOpen := h.health.BreakerOpen != nil && h.health.BreakerOpen()

	st := HealthStatus{
		Status:            "healthy",
		Version:           h.health.Version,
		DatabaseConnected: dbConnected,
		TMDBCircuitOpen:   breakerOpen,
		TMDBCredential:    h.health.HasCredential,
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if !dbConnected || breakerOpen || !h.health.HasCredential {
		st.Status = "degraded"
	}
	return st
}

// Health reports the state of every dependency. It always answers 200.
//
// @Summary Get system health status
// @Description Returns store connectivity, TMDB circuit state, credential presence and uptime
// @Tags Core
// @Produce json
// @Success 200 {object} HealthStatus
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).OK(h.status(r.Context()))
}

// HealthLive answers 200 while the process runs.
//
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).OK(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady answers 200 only when the store answers, the TMDB breaker is
// not open and a credential is configured.
//
// @Summary Readiness probe
// @Tags Core
// @Produce json
// @Success 200 {object} HealthStatus
// @Failure 503 {object} APIResponse
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	st := h.status(r.Context())
	if st.Status != "healthy" {
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Service is not ready", st)
		return
	}
	st.Status = "ready"
	NewResponseWriter(w, r).OK(st)
}
