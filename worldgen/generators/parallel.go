// SPDX-FileCopyrightText: 2022 Jice
// SPDX-License-Identifier: MIT

package generators

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// forEachRowChunk splits rows [0, h) into contiguous chunks, one per worker,
// and runs fn concurrently. Each chunk owns a disjoint row range of the
// output, so fn needs no locking as long as it only writes its own rows.
// Cancelling ctx stops scheduling further chunks.
func forEachRowChunk(ctx context.Context, h int, fn func(y0, y1 int) error) error {
	workers := minInt(runtime.NumCPU(), h)
	if workers <= 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(0, h)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	chunk := (h + workers - 1) / workers
	for y0 := 0; y0 < h; y0 += chunk {
		y0 := y0
		y1 := minInt(y0+chunk, h)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(y0, y1)
		})
	}
	return g.Wait()
}
