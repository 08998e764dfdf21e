// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package models

// View names a collection subset served by the aggregate endpoints.
type View string

const (
	ViewAll         View = "all"
	ViewWishlist    View = "wishlist"
	ViewNonWishlist View = "non_wishlist"
	ViewRated       View = "rated"
)

// Filter is a conjunction of record predicates. The zero Filter matches
// everything.
type Filter struct {
	// Wishlist restricts to wishlist == *Wishlist.
	Wishlist *bool
	// Rated keeps records with rating > 0.
	Rated bool
	// Unrated keeps records with no rating.
	Unrated bool
	// HasExternalID keeps records linked to TMDB.
	HasExternalID bool
}

// FilterFor returns the base filter of a view.
func FilterFor(v View) Filter {
	yes, no := true, false
	switch v {
	case ViewWishlist:
		return Filter{Wishlist: &yes}
	case ViewNonWishlist:
		return Filter{Wishlist: &no}
	case ViewRated:
		return Filter{Rated: true}
	default:
		return Filter{}
	}
}

// WithExternalID narrows f to linked records.
func (f Filter) WithExternalID() Filter {
	f.HasExternalID = true
	return f
}

// WithUnrated narrows f to records without a rating.
func (f Filter) WithUnrated() Filter {
	f.Unrated = true
	return f
}

// Match evaluates f against one record. SQL stores translate the same
// predicates into a WHERE clause; they must agree with Match.
func (f Filter) Match(r *Record) bool {
	if f.Wishlist != nil && r.Wishlist != *f.Wishlist {
		return false
	}
	if f.Rated && (r.Rating == nil || *r.Rating <= 0) {
		return false
	}
	if f.Unrated && r.Rating != nil {
		return false
	}
	if f.HasExternalID && r.ExternalID == nil {
		return false
	}
	return true
}
