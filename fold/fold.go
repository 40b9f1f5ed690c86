package fold

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// serialThreshold is the input size below which the fan-out is skipped and
// the serial path is used regardless of the configured worker count.
const serialThreshold = 1024

// Options tunes the execution of a fold.
type Options struct {
	// Workers is the number of concurrent workers. Values <= 0 select
	// runtime.GOMAXPROCS(0).
	Workers int
}

func (o Options) workers(n int) int {
	w := o.Workers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	if n < serialThreshold || w < 2 {
		return 1
	}
	if w > n {
		w = n
	}

	return w
}

// GroupReduce groups items by key and combines the values of each group with
// an associative, commutative reducer. The key and value functions receive
// the item's index in items, so callers can fold positional information
// (e.g. edge identity) into the reduced value.
func GroupReduce[T any, K comparable, V any](
	ctx context.Context,
	items []T,
	key func(i int, item T) K,
	value func(i int, item T) V,
	combine func(a, b V) V,
	opts Options,
) (map[K]V, error) {
	workers := opts.workers(len(items))
	if workers == 1 {
		return groupReduceRange(ctx, items, 0, len(items), key, value, combine)
	}

	partials := make([]map[K]V, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo, hi := chunk(len(items), workers, w)
		g.Go(func() error {
			m, err := groupReduceRange(gctx, items, lo, hi, key, value, combine)
			if err != nil {
				return err
			}
			partials[w] = m

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := partials[0]
	for _, m := range partials[1:] {
		for k, v := range m {
			if acc, ok := out[k]; ok {
				out[k] = combine(acc, v)
			} else {
				out[k] = v
			}
		}
	}

	return out, nil
}

func groupReduceRange[T any, K comparable, V any](
	ctx context.Context,
	items []T,
	lo, hi int,
	key func(i int, item T) K,
	value func(i int, item T) V,
	combine func(a, b V) V,
) (map[K]V, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[K]V)
	for i := lo; i < hi; i++ {
		k := key(i, items[i])
		v := value(i, items[i])
		if acc, ok := out[k]; ok {
			out[k] = combine(acc, v)
		} else {
			out[k] = v
		}
	}

	return out, nil
}

// Transform applies fn to every item and returns the results in input order.
// Workers write disjoint ranges of the result slice, so the output order is
// stable no matter how many workers run.
func Transform[T, R any](
	ctx context.Context,
	items []T,
	fn func(i int, item T) R,
	opts Options,
) ([]R, error) {
	out := make([]R, len(items))

	workers := opts.workers(len(items))
	if workers == 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i, item := range items {
			out[i] = fn(i, item)
		}

		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo, hi := chunk(len(items), workers, w)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				out[i] = fn(i, items[i])
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// chunk splits n items into workers contiguous ranges and returns the w-th.
func chunk(n, workers, w int) (lo, hi int) {
	size := (n + workers - 1) / workers
	lo = w * size
	hi = lo + size
	if hi > n {
		hi = n
	}
	if lo > n {
		lo = n
	}

	return lo, hi
}
