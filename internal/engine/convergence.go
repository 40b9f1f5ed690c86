package engine

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"golang.org/x/time/rate"

	"github.com/hupe1980/apcluster/fold"
	"github.com/hupe1980/apcluster/graph"
)

// checkInterval is the iteration cadence of the convergence test. Between
// check iterations the loop always continues.
const checkInterval = 10

// monitor performs the periodic convergence test. It retains the snapshot
// from the previous check (the only prior snapshot kept alive) and the delta
// pair measured at that check.
type monitor struct {
	tolerance float64
	workers   fold.Options

	checkpoint *graph.Snapshot
	lastDelta  [2]float64

	logger  *slog.Logger
	logRate *rate.Limiter
	onCheck func(iteration int, deltaAvailability, deltaResponsibility float64)
}

func newMonitor(initial *graph.Snapshot, opts Options) *monitor {
	return &monitor{
		// The tolerance shrinks with the vertex count but is floored so
		// very large graphs still get a meaningful threshold.
		tolerance:  math.Max(1e-5/float64(initial.VertexCount()), 1e-8),
		workers:    fold.Options{Workers: opts.Workers},
		checkpoint: initial,
		logger:     opts.Logger,
		logRate:    rate.NewLimiter(rate.Limit(1), 5),
		onCheck:    opts.OnCheckpoint,
	}
}

// observe inspects the snapshot after iteration iter and reports whether
// the loop should stop. Only every checkInterval-th iteration is tested.
func (m *monitor) observe(ctx context.Context, iter int, snap *graph.Snapshot) (bool, error) {
	if iter%checkInterval != 0 {
		return false, nil
	}

	cur, err := aggregate(ctx, snap, m.workers)
	if err != nil {
		return false, err
	}
	prev, err := aggregate(ctx, m.checkpoint, m.workers)
	if err != nil {
		return false, err
	}

	// Summation order is fixed so repeated runs accumulate identical
	// floating-point results.
	vertices := make([]int64, 0, len(cur))
	for v := range cur {
		vertices = append(vertices, v)
	}
	sort.Slice(vertices, func(i, j int) bool { return vertices[i] < vertices[j] })

	var delta [2]float64
	for _, v := range vertices {
		c, p := cur[v], prev[v]
		delta[0] += c[0] - p[0]
		delta[1] += c[1] - p[1]
	}

	diffA := math.Abs(delta[0] - m.lastDelta[0])
	diffR := math.Abs(delta[1] - m.lastDelta[1])
	converged := diffA <= m.tolerance && diffR <= m.tolerance

	if m.onCheck != nil {
		m.onCheck(iter, delta[0], delta[1])
	}
	if m.logger != nil && (converged || m.logRate.Allow()) {
		m.logger.Debug("convergence checkpoint",
			"iteration", iter,
			"delta_availability", delta[0],
			"delta_responsibility", delta[1],
			"tolerance", m.tolerance,
			"converged", converged,
		)
	}

	if converged {
		return true, nil
	}

	// The superseded checkpoint snapshot is released here; only the new
	// one is retained for the next 10-iteration-lag comparison.
	m.checkpoint = snap
	m.lastDelta = delta

	return false, nil
}

// aggregate sums (availability, responsibility) over each vertex's outgoing
// edges.
func aggregate(ctx context.Context, snap *graph.Snapshot, opts fold.Options) (map[int64][2]float64, error) {
	return fold.GroupReduce(ctx, snap.Edges,
		func(_ int, e graph.Edge) int64 { return e.Source },
		func(_ int, e graph.Edge) [2]float64 { return [2]float64{e.Availability, e.Responsibility} },
		func(a, b [2]float64) [2]float64 { return [2]float64{a[0] + b[0], a[1] + b[1]} },
		opts,
	)
}
