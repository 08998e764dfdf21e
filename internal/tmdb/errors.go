// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package tmdb

import (
	"errors"
	"fmt"
	"io"
)

// ErrUnauthorized matches every *AuthError.
var ErrUnauthorized = errors.New("tmdb: unauthorized")

// AuthError means the bearer token is missing or was rejected.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return "tmdb: " + e.Reason
}

// Is makes errors.Is(err, ErrUnauthorized) hold.
func (e *AuthError) Is(target error) bool {
	return target == ErrUnauthorized
}

// ServiceError is any other failed call. StatusCode is zero for transport
// failures, in which case Err holds the cause.
type ServiceError struct {
	Endpoint   string
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("tmdb %s: communication failed: %v", e.Endpoint, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("tmdb %s: %s - %s", e.Endpoint, e.Status, e.Body)
	}
	return fmt.Sprintf("tmdb %s: %s", e.Endpoint, e.Status)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsClientError reports a 4xx answer. These are the caller's fault and do
// not count against the circuit breaker.
func (e *ServiceError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// maxErrorBodySize bounds the body snippet kept on a ServiceError.
const maxErrorBodySize = 512

// readBodyForError reads a short snippet of an error response for diagnostics.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize+1))
	if err != nil {
		return "(failed to read response body)"
	}
	if len(body) > maxErrorBodySize {
		return string(body[:maxErrorBodySize]) + "... (truncated)"
	}
	return string(body)
}
