package dataset

import (
	"context"

	"github.com/hupe1980/apcluster/graph"
)

// Reader is a bulk-loadable similarity source. Read returns the complete
// relation; it is called once per clustering run.
type Reader interface {
	Read(ctx context.Context) ([]graph.Similarity, error)
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func(ctx context.Context) ([]graph.Similarity, error)

// Read implements Reader.
func (f ReaderFunc) Read(ctx context.Context) ([]graph.Similarity, error) {
	return f(ctx)
}

// Slice wraps an in-memory relation. The slice is returned as-is; callers
// must not mutate it while a run is in flight.
func Slice(sims []graph.Similarity) Reader {
	return ReaderFunc(func(context.Context) ([]graph.Similarity, error) {
		return sims, nil
	})
}
