package apcluster

import (
	"context"
	"time"

	"github.com/hupe1980/apcluster/dataset"
	"github.com/hupe1980/apcluster/fold"
	"github.com/hupe1980/apcluster/graph"
	"github.com/hupe1980/apcluster/internal/engine"
	"github.com/hupe1980/apcluster/model"
)

// AffinityPropagation clusters entities connected by pairwise similarities
// via damped message passing. Instances are immutable after New and safe
// for concurrent Runs.
type AffinityPropagation struct {
	opts options
}

// New creates a clusterer, validating the configuration:
//   - damping must lie in (0, 1)
//   - max iterations must be positive
//   - worker count must be non-negative
func New(optFns ...Option) (*AffinityPropagation, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	if o.damping <= 0 || o.damping >= 1 {
		return nil, &ErrInvalidDamping{Damping: o.damping}
	}
	if o.maxIterations < 1 {
		return nil, &ErrInvalidMaxIterations{MaxIterations: o.maxIterations}
	}
	if o.workers < 0 {
		return nil, &ErrInvalidWorkers{Workers: o.workers}
	}

	return &AffinityPropagation{opts: o}, nil
}

// Run clusters the given similarity relation and returns the resulting
// model. The relation is read once; sims is not retained or mutated.
//
// Returns ErrEmptyInput for an empty relation and ctx.Err() if the context
// is cancelled mid-run.
func (ap *AffinityPropagation) Run(ctx context.Context, sims []graph.Similarity) (*model.ClusterModel, error) {
	start := time.Now()

	m, res, err := ap.run(ctx, sims)

	vertices := 0
	clusters := 0
	iterations := 0
	converged := false
	if res != nil {
		vertices = res.Snapshot.VertexCount()
		iterations = res.Iterations
		converged = res.Converged
	}
	if m != nil {
		clusters = m.ClusterCount()
	}

	ap.opts.logger.LogRun(ctx, vertices, clusters, iterations, converged, time.Since(start), err)
	ap.opts.metrics.RecordRun(time.Since(start), clusters, err)

	return m, err
}

// RunDataset loads the similarity relation from a bulk dataset handle and
// clusters it.
func (ap *AffinityPropagation) RunDataset(ctx context.Context, r dataset.Reader) (*model.ClusterModel, error) {
	sims, err := r.Read(ctx)
	if err != nil {
		return nil, err
	}

	return ap.Run(ctx, sims)
}

func (ap *AffinityPropagation) run(ctx context.Context, sims []graph.Similarity) (*model.ClusterModel, *engine.Result, error) {
	if len(sims) == 0 {
		return nil, nil, ErrEmptyInput
	}

	if ap.opts.preference != nil {
		sims = graph.EmbedPreferences(sims, *ap.opts.preference)
	} else {
		sims = graph.DeterminePreferences(sims)
	}

	snap := graph.Build(sims, graph.BuildOptions{
		Symmetric: ap.opts.symmetric,
		Normalize: ap.opts.normalize,
	})

	res, err := engine.Run(ctx, snap, engine.Options{
		MaxIterations: ap.opts.maxIterations,
		Damping:       ap.opts.damping,
		Workers:       ap.opts.workers,
		Logger:        ap.opts.logger.Logger,
		OnCheckpoint:  ap.opts.metrics.RecordCheckpoint,
	})
	if err != nil {
		return nil, nil, err
	}

	rows, err := selectExemplars(ctx, res.Snapshot, fold.Options{Workers: ap.opts.workers})
	if err != nil {
		return nil, res, err
	}

	return model.New(rows), res, nil
}
