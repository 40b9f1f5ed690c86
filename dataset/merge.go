package dataset

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/hupe1980/apcluster/graph"
)

// Merge concatenates several similarity sources into one relation.
// Sources are loaded concurrently, at most concurrency at a time
// (<= 0 selects GOMAXPROCS); results are concatenated in reader order.
//
// Duplicate triples across sources are not deduplicated — the same caller
// responsibility as duplicate edges within one source.
func Merge(readers []Reader, concurrency int64) Reader {
	if concurrency <= 0 {
		concurrency = int64(runtime.GOMAXPROCS(0))
	}

	return ReaderFunc(func(ctx context.Context) ([]graph.Similarity, error) {
		parts := make([][]graph.Similarity, len(readers))
		sem := semaphore.NewWeighted(concurrency)

		g, gctx := errgroup.WithContext(ctx)
		for i, r := range readers {
			g.Go(func() error {
				if err := sem.Acquire(gctx, 1); err != nil {
					return err
				}
				defer sem.Release(1)

				sims, err := r.Read(gctx)
				if err != nil {
					return err
				}
				parts[i] = sims

				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		var total int
		for _, p := range parts {
			total += len(p)
		}

		out := make([]graph.Similarity, 0, total)
		for _, p := range parts {
			out = append(out, p...)
		}

		return out, nil
	})
}
