// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/tmdb"
	"github.com/tomtom215/marquee/internal/validation"
)

// errBadJSON marks a body that could not be decoded.
var errBadJSON = errors.New("malformed JSON body")

// respondServiceError maps an error from the catalog to a response. 5xx
// errors are logged with the request id; their messages stay generic.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)

	var (
		verr    *validation.RequestValidationError
		authErr *tmdb.AuthError
		svcErr  *tmdb.ServiceError
	)

	switch {
	case errors.As(err, &verr):
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidation, verr.Error(), verr.Details())
	case errors.Is(err, catalog.ErrMissingExternalID):
		rw.Error(http.StatusBadRequest, ErrCodeValidation, err.Error())
	case errors.Is(err, errBadJSON):
		rw.BadRequest(err.Error())
	case errors.Is(err, models.ErrNotFound):
		rw.NotFound("Record not found")
	case errors.Is(err, models.ErrDuplicateExternalID):
		rw.Error(http.StatusConflict, ErrCodeConflict, models.ErrDuplicateExternalID.Error())
	case errors.As(err, &authErr):
		logging.Ctx(r.Context()).Warn().Err(err).Msg("TMDB rejected the credential")
		rw.Error(http.StatusUnauthorized, ErrCodeRemoteAuth, "TMDB credential missing or rejected")
	case errors.As(err, &svcErr):
		logging.Ctx(r.Context()).Error().Err(err).Int("upstream_status", svcErr.StatusCode).Msg("TMDB request failed")
		rw.ErrorWithDetails(http.StatusBadGateway, ErrCodeExternalServiceFail, "External service unavailable: tmdb",
			map[string]interface{}{"upstream_status": svcErr.StatusCode})
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		rw.Error(http.StatusInternalServerError, ErrCodeDatabaseError, "A database error occurred")
	}
}
