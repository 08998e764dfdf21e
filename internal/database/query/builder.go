// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package query builds parameterized SQL fragments for the database package.
package query

import (
	"strings"

	"github.com/tomtom215/marquee/internal/models"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
//
//	wb := query.NewWhereBuilder().AddFilter(models.FilterFor(models.ViewRated))
//	where, args := wb.BuildWithPrefix()
//	// WHERE rating IS NOT NULL AND rating > 0
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates an empty builder.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddClause adds a raw condition with its arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddFilter translates a catalog filter. It must agree with
// models.Filter.Match.
func (wb *WhereBuilder) AddFilter(f models.Filter) *WhereBuilder {
	if f.Wishlist != nil {
		wb.AddClause("wishlist = ?", *f.Wishlist)
	}
	if f.Rated {
		wb.AddClause("rating IS NOT NULL AND rating > 0")
	}
	if f.Unrated {
		wb.AddClause("rating IS NULL")
	}
	if f.HasExternalID {
		wb.AddClause("tmdb_id IS NOT NULL")
	}
	return wb
}

// AddInt64In adds "column IN (?, ...)". An empty list matches nothing.
func (wb *WhereBuilder) AddInt64In(column string, values []int64) *WhereBuilder {
	if len(values) == 0 {
		return wb.AddClause("1=0")
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		wb.args = append(wb.args, v)
	}
	wb.clauses = append(wb.clauses, column+" IN ("+strings.Join(placeholders, ", ")+")")
	return wb
}

// Build joins the clauses with AND. An empty builder yields "1=1".
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix is Build with a leading "WHERE ".
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

// IsEmpty reports whether no clause has been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}
