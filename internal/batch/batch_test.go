// Marquee - Personal Movie and Series Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package batch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/marquee/internal/metrics"
)

func TestRunPreservesOrderWithSlowItems(t *testing.T) {
	t.Parallel()

	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	slow := map[int]bool{1: true, 4: true, 8: true}

	var finished []int
	done := make(chan int, len(items))

	out := Run(context.Background(), items, 5, func(_ context.Context, _ int, n int) int {
		if slow[n] {
			time.Sleep(30 * time.Millisecond)
		}
		done <- n
		return n * 10
	})
	close(done)
	for n := range done {
		finished = append(finished, n)
	}

	if len(out) != len(items) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(items))
	}
	for i, v := range out {
		if v != items[i]*10 {
			t.Errorf("out[%d] = %d, want %d", i, v, items[i]*10)
		}
	}
	pos := make(map[int]int, len(finished))
	for i, n := range finished {
		pos[n] = i
	}
	if pos[1] < pos[2] {
		t.Errorf("slow item 1 finished before fast item 2: %v", finished)
	}
}

func TestRunRespectsLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items int
		limit int
		want  int32
	}{
		{"limit below n", 20, 3, 3},
		{"default limit", 20, 0, DefaultLimit},
		{"limit above n", 4, 10, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var inFlight, peak atomic.Int32
			release := make(chan struct{})
			started := make(chan struct{}, tt.items)

			go func() {
				// Let the pool saturate before releasing everyone.
				for i := int32(0); i < tt.want; i++ {
					<-started
				}
				time.Sleep(20 * time.Millisecond)
				close(release)
			}()

			Run(context.Background(), make([]struct{}, tt.items), tt.limit, func(context.Context, int, struct{}) bool {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				started <- struct{}{}
				<-release
				inFlight.Add(-1)
				return true
			})

			if got := peak.Load(); got != tt.want {
				t.Errorf("peak concurrency = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRunEmpty(t *testing.T) {
	t.Parallel()

	called := false
	out := Run(context.Background(), []string(nil), 5, func(context.Context, int, string) int {
		called = true
		return 1
	})
	if out == nil || len(out) != 0 {
		t.Errorf("out = %#v, want empty non-nil slice", out)
	}
	if called {
		t.Error("task should not run for an empty batch")
	}
}

func TestRunEFallback(t *testing.T) {
	t.Parallel()

	errOdd := errors.New("odd")
	out := RunE(context.Background(), "test-fallback", []int{1, 2, 3, 4}, 2,
		func(_ context.Context, _ int, n int) (string, error) {
			if n%2 == 1 {
				return "", errOdd
			}
			return "ok", nil
		},
		func(i int, n int, err error) string {
			if !errors.Is(err, errOdd) {
				t.Errorf("fallback got err %v", err)
			}
			return "fallback"
		})

	want := []string{"fallback", "ok", "fallback", "ok"}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %q, want %q", i, out[i], want[i])
		}
	}

	if got := testutil.ToFloat64(metrics.BatchItemsTotal.WithLabelValues("test-fallback", "fallback")); got != 2 {
		t.Errorf("fallback count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.BatchItemsTotal.WithLabelValues("test-fallback", "ok")); got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
}

func TestRunERecoversPanics(t *testing.T) {
	t.Parallel()

	out := RunE(context.Background(), "", []int{1, 2, 3}, 0,
		func(_ context.Context, _ int, n int) (int, error) {
			if n == 2 {
				panic("boom")
			}
			return n, nil
		},
		func(int, int, error) int { return -1 })

	want := []int{1, -1, 3}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}
