// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workpool runs independent jobs on a bounded number of goroutines.
package workpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map calls fn for every item with at most workers calls in flight and
// returns the results in input order. fn must handle its own failures;
// Map never stops early. Items not yet started when ctx is cancelled are
// still passed to fn, which sees the cancelled context.
func Map[T, R any](ctx context.Context, items []T, workers int, fn func(context.Context, T) R) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}
	if workers <= 0 || workers > len(items) {
		workers = len(items)
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, item := range items {
		g.Go(func() error {
			results[i] = fn(ctx, item)
			return nil
		})
	}
	g.Wait()
	return results
}
