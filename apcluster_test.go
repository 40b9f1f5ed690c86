package apcluster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/apcluster/dataset"
	"github.com/hupe1980/apcluster/graph"
	"github.com/hupe1980/apcluster/testutil"
)

func TestNewValidation(t *testing.T) {
	t.Run("damping bounds", func(t *testing.T) {
		for _, damping := range []float64{0, 1, -0.5, 1.5} {
			_, err := New(WithDamping(damping))
			var e *ErrInvalidDamping
			require.ErrorAs(t, err, &e, "damping %g", damping)
			assert.Equal(t, damping, e.Damping)
		}
	})

	t.Run("max iterations", func(t *testing.T) {
		_, err := New(WithMaxIterations(0))
		var e *ErrInvalidMaxIterations
		require.ErrorAs(t, err, &e)
	})

	t.Run("workers", func(t *testing.T) {
		_, err := New(WithWorkers(-1))
		var e *ErrInvalidWorkers
		require.ErrorAs(t, err, &e)
	})

	t.Run("defaults are valid", func(t *testing.T) {
		_, err := New()
		require.NoError(t, err)
	})
}

func TestRunEmptyInput(t *testing.T) {
	ap, err := New()
	require.NoError(t, err)

	_, err = ap.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.True(t, IsEmptyInput(err))
}

func TestRunPartitionProperty(t *testing.T) {
	sims := testutil.TwoBlobs(4, 3)

	ap, err := New(WithMaxIterations(200))
	require.NoError(t, err)

	m, err := ap.Run(context.Background(), sims)
	require.NoError(t, err)

	// Every input vertex lands in exactly one cluster.
	seen := make(map[int64]int)
	for _, c := range m.MaterializeClusters() {
		for _, member := range c.Members {
			seen[member]++
		}
	}
	require.Len(t, seen, 7)
	for id := int64(0); id < 7; id++ {
		assert.Equal(t, 1, seen[id], "vertex %d", id)
	}
}

func TestRunHighPreferenceYieldsSingletons(t *testing.T) {
	// Preference 0 dwarfs every cross similarity, so each vertex becomes
	// its own exemplar.
	sims := []graph.Similarity{
		{Source: 0, Target: 1, Value: -50},
		{Source: 0, Target: 2, Value: -50},
		{Source: 1, Target: 2, Value: -50},
	}

	ap, err := New(WithPreference(0))
	require.NoError(t, err)

	m, err := ap.Run(context.Background(), sims)
	require.NoError(t, err)

	assert.Equal(t, 3, m.ClusterCount())
	for id := int64(0); id < 3; id++ {
		set := m.FindCluster(id)
		assert.Equal(t, uint64(1), set.GetCardinality())
		assert.True(t, set.Contains(uint64(id)))
	}
}

func TestRunNotFoundSemantics(t *testing.T) {
	ap, err := New(WithPreference(0))
	require.NoError(t, err)

	m, err := ap.Run(context.Background(), testutil.TwoBlobs(2, 2))
	require.NoError(t, err)

	assert.Equal(t, int64(-1), m.FindClusterID(999))
	assert.True(t, m.FindCluster(999).IsEmpty())
}

func TestRunClusterCountMatchesDistinctExemplars(t *testing.T) {
	ap, err := New(WithMaxIterations(150))
	require.NoError(t, err)

	m, err := ap.Run(context.Background(), testutil.NewRNG(7).Triangle(12, 10))
	require.NoError(t, err)

	exemplars := make(map[int64]struct{})
	for _, a := range m.Assignments() {
		exemplars[a.Exemplar] = struct{}{}
	}
	assert.Equal(t, len(exemplars), m.ClusterCount())
}

func TestRunReproducible(t *testing.T) {
	rng := testutil.NewRNG(42)
	sims := rng.Triangle(10, 5)

	ap, err := New(WithMaxIterations(120), WithWorkers(4))
	require.NoError(t, err)

	first, err := ap.Run(context.Background(), sims)
	require.NoError(t, err)
	second, err := ap.Run(context.Background(), sims)
	require.NoError(t, err)

	// Identical input, configuration, and tie-break order reproduce the
	// same member-to-exemplar partition.
	assert.Equal(t, first.Assignments(), second.Assignments())
}

func TestRunMaterializeRoundTrip(t *testing.T) {
	ap, err := New(WithMaxIterations(150))
	require.NoError(t, err)

	m, err := ap.Run(context.Background(), testutil.TwoBlobs(3, 3))
	require.NoError(t, err)

	for _, c := range m.MaterializeClusters() {
		for _, member := range c.Members {
			assert.Equal(t, c.ID, m.FindClusterID(member))
			set := m.FindCluster(member)
			assert.Equal(t, uint64(len(c.Members)), set.GetCardinality())
		}
	}
}

func TestRunDataset(t *testing.T) {
	ap, err := New(WithPreference(0))
	require.NoError(t, err)

	m, err := ap.RunDataset(context.Background(), dataset.Slice(testutil.TwoBlobs(2, 2)))
	require.NoError(t, err)

	assert.Equal(t, 4, m.ClusterCount())
}

func TestRunRecordsMetrics(t *testing.T) {
	collector := &BasicMetricsCollector{}

	ap, err := New(
		WithMaxIterations(30),
		WithMetricsCollector(collector),
	)
	require.NoError(t, err)

	_, err = ap.Run(context.Background(), testutil.TwoBlobs(3, 2))
	require.NoError(t, err)

	assert.Equal(t, int64(1), collector.RunCount.Load())
	assert.Zero(t, collector.RunErrors.Load())
	assert.GreaterOrEqual(t, collector.CheckpointCount.Load(), int64(1))

	_, err = ap.Run(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, int64(1), collector.RunErrors.Load())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ap, err := New()
	require.NoError(t, err)

	_, err = ap.Run(ctx, testutil.TwoBlobs(3, 3))
	assert.ErrorIs(t, err, context.Canceled)
}
