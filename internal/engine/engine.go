package engine

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/hupe1980/apcluster/fold"
	"github.com/hupe1980/apcluster/graph"
)

// ErrEmptyInput is returned when the snapshot contains no vertices.
var ErrEmptyInput = errors.New("empty input: similarity relation contains no vertices")

// Options configures a message-passing run.
type Options struct {
	// MaxIterations bounds the loop even when the convergence tolerance is
	// never reached.
	MaxIterations int

	// Damping blends each update with the previous value:
	// new = damping*update + (1-damping)*old. Must lie in (0, 1); the
	// facade validates before calling Run.
	Damping float64

	// Workers is passed through to the fold operations. <= 0 selects
	// GOMAXPROCS.
	Workers int

	// Logger receives rate-limited checkpoint diagnostics. nil disables
	// logging.
	Logger *slog.Logger

	// OnCheckpoint, if non-nil, observes every convergence checkpoint.
	// It is diagnostic only and never influences termination.
	OnCheckpoint func(iteration int, deltaAvailability, deltaResponsibility float64)
}

// Result is the outcome of a run.
type Result struct {
	// Snapshot is the final edge state.
	Snapshot *graph.Snapshot

	// Iterations is the number of iterations actually executed.
	Iterations int

	// Converged reports whether a convergence check terminated the loop
	// before the iteration budget was exhausted.
	Converged bool
}

// Run iterates the responsibility/availability update on snap until the
// convergence monitor signals a fixed point or MaxIterations is reached.
// The input snapshot is never mutated.
func Run(ctx context.Context, snap *graph.Snapshot, opts Options) (*Result, error) {
	if snap == nil || snap.VertexCount() == 0 {
		return nil, ErrEmptyInput
	}

	mon := newMonitor(snap, opts)
	foldOpts := fold.Options{Workers: opts.Workers}

	res := &Result{Snapshot: snap}
	for iter := 1; iter <= opts.MaxIterations; iter++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		next, err := step(ctx, res.Snapshot, opts.Damping, foldOpts)
		if err != nil {
			return nil, err
		}
		res.Snapshot = next
		res.Iterations = iter

		stop, err := mon.observe(ctx, iter, next)
		if err != nil {
			return nil, err
		}
		if stop {
			res.Converged = true
			break
		}
	}

	return res, nil
}

// step produces the next snapshot: Step A (responsibilities) over the
// current snapshot, then Step B (availabilities) over Step A's complete
// output. Each fold acts as a barrier, so Step B never sees a partial mix.
func step(ctx context.Context, snap *graph.Snapshot, damping float64, opts fold.Options) (*graph.Snapshot, error) {
	afterA, err := updateResponsibilities(ctx, snap.Edges, damping, opts)
	if err != nil {
		return nil, err
	}

	afterB, err := updateAvailabilities(ctx, afterA, damping, opts)
	if err != nil {
		return nil, err
	}

	return snap.Derive(afterB), nil
}

// exclusiveMax summarizes a source vertex's outgoing candidate values so
// that, for any one edge, the maximum over the remaining edges can be read
// off directly: the overall best for every edge except the best edge
// itself, which sees the runner-up.
//
// Exclusion is by edge identity, not by value: when two outgoing edges tie
// on the candidate value, only the edge actually holding bestIndex falls
// back to second — the other tied edge still sees the shared best value.
// bestIndex is the lowest snapshot index attaining the maximum, which makes
// the merge order-independent and the result reproducible.
type exclusiveMax struct {
	best      float64
	bestIndex int
	second    float64
}

func mergeExclusiveMax(a, b exclusiveMax) exclusiveMax {
	if b.best > a.best || (b.best == a.best && b.bestIndex < a.bestIndex) {
		a, b = b, a
	}

	return exclusiveMax{
		best:      a.best,
		bestIndex: a.bestIndex,
		second:    math.Max(a.second, math.Max(b.best, b.second)),
	}
}

// without returns the maximum candidate among the source's outgoing edges
// with edge i removed, or 0 when no other edge remains.
func (m exclusiveMax) without(i int) float64 {
	max := m.best
	if i == m.bestIndex {
		max = m.second
	}
	if math.IsInf(max, -1) {
		return 0
	}

	return max
}

func updateResponsibilities(ctx context.Context, edges []graph.Edge, damping float64, opts fold.Options) ([]graph.Edge, error) {
	maxima, err := fold.GroupReduce(ctx, edges,
		func(_ int, e graph.Edge) int64 { return e.Source },
		func(i int, e graph.Edge) exclusiveMax {
			return exclusiveMax{best: e.Candidate(), bestIndex: i, second: math.Inf(-1)}
		},
		mergeExclusiveMax,
		opts,
	)
	if err != nil {
		return nil, err
	}

	return fold.Transform(ctx, edges, func(i int, e graph.Edge) graph.Edge {
		update := e.Similarity - maxima[e.Source].without(i)
		e.Responsibility = damping*update + (1-damping)*e.Responsibility

		return e
	}, opts)
}

func updateAvailabilities(ctx context.Context, edges []graph.Edge, damping float64, opts fold.Options) ([]graph.Edge, error) {
	// Per-target support: raw responsibility from the self-loop, clamped
	// positive responsibility from everything else.
	support, err := fold.GroupReduce(ctx, edges,
		func(_ int, e graph.Edge) int64 { return e.Target },
		func(_ int, e graph.Edge) float64 {
			if e.Source == e.Target {
				return e.Responsibility
			}

			return math.Max(e.Responsibility, 0)
		},
		func(a, b float64) float64 { return a + b },
		opts,
	)
	if err != nil {
		return nil, err
	}

	return fold.Transform(ctx, edges, func(_ int, e graph.Edge) graph.Edge {
		var update float64
		if e.Source == e.Target {
			update = support[e.Target] - e.Responsibility
		} else {
			update = math.Min(0, support[e.Target]-math.Max(e.Responsibility, 0))
		}
		e.Availability = damping*update + (1-damping)*e.Availability

		return e
	}, opts)
}
