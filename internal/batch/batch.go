// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package batch runs a slice of independent tasks with a fixed concurrency cap.

Results are written by index into a pre-sized slice, so out[i] always belongs
to items[i] no matter which task finishes first. A failing or panicking task
never stops the batch; it yields a fallback value instead.

	posters := batch.RunE(ctx, "posters", records, batch.DefaultLimit,
		func(ctx context.Context, _ int, r models.Record) (Enriched, error) {
			return enrich(ctx, r)
		},
		func(_ int, r models.Record, _ error) Enriched {
			return Enriched{Record: r}
		})
*/
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// DefaultLimit is the enrichment concurrency used across the catalog.
const DefaultLimit = 5

// Run calls task for every item with at most limit tasks in flight and
// returns the results in input order. A limit <= 0 means DefaultLimit.
// A panicking task yields the zero value for its slot.
func Run[T, R any](ctx context.Context, items []T, limit int, task func(ctx context.Context, i int, item T) R) []R {
	return RunE(ctx, "", items, limit,
		func(ctx context.Context, i int, item T) (R, error) {
			return task(ctx, i, item), nil
		},
		func(int, T, error) R {
			var zero R
			return zero
		})
}

// RunE is Run for tasks that can fail. Each failing item gets
// fallback(i, item, err) in its slot. name labels the batch in logs and
// metrics; an empty name skips metrics.
func RunE[T, R any](
	ctx context.Context,
	name string,
	items []T,
	limit int,
	task func(ctx context.Context, i int, item T) (R, error),
	fallback func(i int, item T, err error) R,
) []R {
	out := make([]R, len(items))
	if len(items) == 0 {
		return out
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var g errgroup.Group
	g.SetLimit(limit)

	for i := range items {
		g.Go(func() error {
			res, err := runOne(ctx, i, items[i], task)
			if err != nil {
				logging.Ctx(ctx).Debug().Err(err).Str("batch", name).Int("index", i).Msg("Batch item failed, using fallback")
				out[i] = fallback(i, items[i], err)
			} else {
				out[i] = res
			}
			if name != "" {
				metrics.RecordBatchItem(name, err != nil)
			}
			// Errors stay per item; returning one would only be reported by Wait.
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// runOne converts a panic in task into an error.
func runOne[T, R any](ctx context.Context, i int, item T, task func(context.Context, int, T) (R, error)) (res R, err error) {
	defer func() {
		if p := recover(); p != nil {
			logging.Ctx(ctx).Error().Interface("panic", p).Int("index", i).Msg("Batch task panicked")
			err = fmt.Errorf("batch task %d panicked: %v", i, p)
		}
	}()
	return task(ctx, i, item)
}
