// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/validation"
)

const maxBodyBytes = 1 << 20

// CreateRecordRequest is the body of POST /api/{kind}.
type CreateRecordRequest struct {
	Title     string   `json:"title" validate:"notblank,max=500"`
	TMDBID    *int64   `json:"tmdbId" validate:"omitempty,gt=0"`
	Rating    *float64 `json:"rating"`
	Wishlist  *bool    `json:"wishlist"`
	Watched   *bool    `json:"watched"`
	ViewCount *int     `json:"viewCount" validate:"omitempty,gte=0"`
	Review    *string  `json:"review" validate:"omitempty,max=10000"`
}

func (req *CreateRecordRequest) toNewRecord() models.NewRecord {
	return models.NewRecord{
		ExternalID: req.TMDBID,
		Title:      req.Title,
		Rating:     req.Rating,
		Wishlist:   req.Wishlist,
		Watched:    req.Watched,
		ViewCount:  req.ViewCount,
		Review:     req.Review,
	}
}

// UpsertRequest is the body of POST /api/{kind}/tmdb. A missing tmdbId is
// reported by the catalog so the error code matches the other validation
// failures.
type UpsertRequest struct {
	TMDBID        int64    `json:"tmdbId"`
	TitleOverride string   `json:"titleOverride" validate:"max=500"`
	Rating        *float64 `json:"rating"`
	Wishlist      *bool    `json:"wishlist"`
	Review        *string  `json:"review" validate:"omitempty,max=10000"`
	ViewCount     *int     `json:"viewCount" validate:"omitempty,gte=0"`
	Watched       *bool    `json:"watched"`
}

func (req *UpsertRequest) toInput() catalog.UpsertInput {
	return catalog.UpsertInput{
		ExternalID:    req.TMDBID,
		TitleOverride: req.TitleOverride,
		Rating:        req.Rating,
		Wishlist:      req.Wishlist,
		Review:        req.Review,
		ViewCount:     req.ViewCount,
		Watched:       req.Watched,
	}
}

// UpdateRecordRequest is the body of PUT /api/{kind}/{id}. It mirrors
// models.Patch so that an explicit null clears rating, review and tmdbId.
type UpdateRecordRequest struct {
	models.Patch
}

// Validate runs the same rules as CreateRecordRequest over the fields that
// are present. Rating accepts any number.
func (req *UpdateRecordRequest) Validate() error {
	var fields []validation.FieldError
	p := &req.Patch
	if p.Title != nil {
		fields = append(fields, validation.Var("title", *p.Title, "notblank,max=500")...)
	}
	if p.ExternalID.Set && p.ExternalID.Value != nil {
		fields = append(fields, validation.Var("tmdbId", *p.ExternalID.Value, "gt=0")...)
	}
	if p.ViewCount != nil {
		fields = append(fields, validation.Var("viewCount", *p.ViewCount, "gte=0")...)
	}
	if p.Review.Set && p.Review.Value != nil {
		fields = append(fields, validation.Var("review", *p.Review.Value, "max=10000")...)
	}
	if len(fields) > 0 {
		return &validation.RequestValidationError{Fields: fields}
	}
	return nil
}

// decodeJSON reads a JSON body into dst. Unknown fields are ignored.
func decodeJSON(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", errBadJSON, err)
	}
	if len(body) == 0 {
		return fmt.Errorf("%w: empty body", errBadJSON)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", errBadJSON, err)
	}
	return nil
}

// decodeAndValidate decodes the body and runs the validator tags.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := decodeJSON(r, dst); err != nil {
		return err
	}
	return validation.Struct(dst)
}

// pathInt64 parses a numeric path parameter.
func pathInt64(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return id, nil
}
