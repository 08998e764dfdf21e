// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/models"
)

// Handler serves the catalog routes.
type Handler struct {
	catalog   *catalog.Catalog
	health    HealthChecks
	startTime time.Time
}

// NewHandler creates a Handler. Zero HealthChecks fields are skipped by the
// readiness probe.
func NewHandler(c *catalog.Catalog, health HealthChecks) *Handler {
	return &Handler{
		catalog:   c,
		health:    health,
		startTime: time.Now(),
	}
}

type kindKey struct{}

// withKind resolves the {kind} path segment. Unknown kinds are 404s so that
// /api/anything behaves like any other missing route.
func withKind(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind, err := models.ParseKind(chi.URLParam(r, "kind"))
		if err != nil {
			NewResponseWriter(w, r).NotFound("Route not found")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), kindKey{}, kind)))
	})
}

func (h *Handler) service(r *http.Request) *catalog.Service {
	kind, _ := r.Context().Value(kindKey{}).(models.Kind)
	return h.catalog.Service(kind)
}

// CreateRecord creates a record.
//
// @Summary Create a record
// @Tags Catalog
// @Accept json
// @Produce json
// @Param kind path string true "movie or serie"
// @Param body body CreateRecordRequest true "Record"
// @Success 201 {object} models.Record
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /{kind} [post]
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}

	rec, err := h.service(r).Create(r.Context(), req.toNewRecord())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(rec)
}

// UpsertRecord creates or refreshes the record of one TMDB id.
//
// @Summary Upsert a record by TMDB id
// @Description Uses titleOverride when given, otherwise fetches the title from TMDB. Supplied fields are merged over an existing record.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param kind path string true "movie or serie"
// @Param body body UpsertRequest true "Upsert"
// @Success 201 {object} models.Record
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 502 {object} APIResponse
// @Router /{kind}/tmdb [post]
func (h *Handler) UpsertRecord(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}

	rec, err := h.service(r).UpsertFromRemote(r.Context(), req.toInput())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(rec)
}

// ListAll summarizes every record of a kind.
//
// @Summary Summarize all records
// @Tags Catalog
// @Produce json
// @Param kind path string true "movie or serie"
// @Success 200 {object} models.AggregateSummary
// @Failure 500 {object} APIResponse
// @Router /{kind} [get]
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, models.ViewAll)
}

// ListWishlist summarizes the wishlist.
//
// @Summary Summarize the wishlist
// @Tags Catalog
// @Produce json
// @Param kind path string true "movie or serie"
// @Success 200 {object} models.AggregateSummary
// @Router /{kind}/wishlist [get]
func (h *Handler) ListWishlist(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, models.ViewWishlist)
}

// ListUnlisted summarizes the records outside the wishlist.
//
// @Summary Summarize records not on the wishlist
// @Tags Catalog
// @Produce json
// @Param kind path string true "movie or serie"
// @Success 200 {object} models.AggregateSummary
// @Router /{kind}/unlisted [get]
func (h *Handler) ListUnlisted(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, models.ViewNonWishlist)
}

// ListRated summarizes the records with a positive rating.
//
// @Summary Summarize rated records
// @Tags Catalog
// @Produce json
// @Param kind path string true "movie or serie"
// @Success 200 {object} models.AggregateSummary
// @Router /{kind}/rated [get]
func (h *Handler) ListRated(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, models.ViewRated)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request, view models.View) {
	sum, err := h.service(r).Summarize(r.Context(), view)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).OK(sum)
}

// Search searches TMDB for one kind and marks the hits already in the
// catalog.
//
// @Summary Search TMDB for one kind
// @Tags Search
// @Produce json
// @Param kind path string true "movie or serie"
// @Param q query string false "Query"
// @Param limit query int false "Result cap, 1 to 50" default(20)
// @Param credits query bool false "Resolve director or creator"
// @Success 200 {object} models.SearchResponse
// @Failure 502 {object} APIResponse
// @Router /{kind}/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	credits, _ := strconv.ParseBool(q.Get("credits"))

	res, err := h.service(r).Search(r.Context(), q.Get("q"), catalog.ParseLimit(q.Get("limit")),
		catalog.SearchOptions{Credits: credits})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).OK(res)
}

// GlobalSearch searches movies and series together.
//
// @Summary Search TMDB across kinds
// @Tags Search
// @Produce json
// @Param q query string false "Query"
// @Param limit query int false "Result cap, 1 to 50" default(20)
// @Success 200 {object} models.SearchResponse
// @Failure 502 {object} APIResponse
// @Router /search [get]
func (h *Handler) GlobalSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.catalog.GlobalSearch(r.Context(), q.Get("q"), catalog.ParseLimit(q.Get("limit")))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).OK(res)
}

// LookupTMDB returns the local record and the TMDB details of one id
// without creating anything.
//
// @Summary Look up a TMDB id
// @Tags Catalog
// @Produce json
// @Param kind path string true "movie or serie"
// @Param tmdbId path int true "TMDB id"
// @Success 200 {object} models.RemoteLookup
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 502 {object} APIResponse
// @Router /{kind}/tmdb/{tmdbId} [get]
func (h *Handler) LookupTMDB(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "tmdbId")
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}

	res, err := h.service(r).LookupRemote(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).OK(res)
}

// GetRecord returns one record, with TMDB details when available.
//
// @Summary Get a record
// @Tags Catalog
// @Produce json
// @Param kind path string true "movie or serie"
// @Param id path int true "Record id"
// @Success 200 {object} models.RecordWithDetails
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /{kind}/{id} [get]
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}

	rec, err := h.service(r).Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).OK(rec)
}

// UpdateRecord applies a partial update. Omitted fields are kept and an
// explicit null clears rating, review or tmdbId.
//
// @Summary Update a record
// @Tags Catalog
// @Accept json
// @Produce json
// @Param kind path string true "movie or serie"
// @Param id path int true "Record id"
// @Param body body models.Patch true "Fields to change"
// @Success 200 {object} models.Record
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /{kind}/{id} [put]
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}

	var req UpdateRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		respondServiceError(w, r, err)
		return
	}

	rec, err := h.service(r).Update(r.Context(), id, req.Patch)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).OK(rec)
}

// DeleteRecord deletes a record and returns it.
//
// @Summary Delete a record
// @Tags Catalog
// @Produce json
// @Param kind path string true "movie or serie"
// @Param id path int true "Record id"
// @Success 200 {object} models.Record
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /{kind}/{id} [delete]
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}

	rec, err := h.service(r).Delete(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).OK(rec)
}
