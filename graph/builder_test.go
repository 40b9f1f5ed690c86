package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSymmetricExpansion(t *testing.T) {
	sims := []Similarity{
		{Source: 1, Target: 2, Value: -1.5},
		{Source: 3, Target: 3, Value: -7},
	}

	snap := Build(sims, BuildOptions{Symmetric: true})
	require.Len(t, snap.Edges, 3)

	assert.Equal(t, Edge{Source: 1, Target: 2, Message: Message{Similarity: -1.5}}, snap.Edges[0])
	assert.Equal(t, Edge{Source: 2, Target: 1, Message: Message{Similarity: -1.5}}, snap.Edges[1])
	// Self-loops get a single edge even under symmetric expansion.
	assert.Equal(t, Edge{Source: 3, Target: 3, Message: Message{Similarity: -7}}, snap.Edges[2])

	assert.Equal(t, 3, snap.VertexCount())
}

func TestBuildAsymmetric(t *testing.T) {
	sims := []Similarity{
		{Source: 1, Target: 2, Value: -1},
		{Source: 2, Target: 1, Value: -4},
	}

	snap := Build(sims, BuildOptions{Symmetric: false})
	require.Len(t, snap.Edges, 2)
	assert.Equal(t, -1.0, snap.Edges[0].Similarity)
	assert.Equal(t, -4.0, snap.Edges[1].Similarity)
}

func TestBuildZeroState(t *testing.T) {
	snap := Build([]Similarity{{Source: 1, Target: 2, Value: 3}}, BuildOptions{})

	for _, e := range snap.Edges {
		assert.Zero(t, e.Availability)
		assert.Zero(t, e.Responsibility)
	}
}

func TestBuildNormalize(t *testing.T) {
	sims := []Similarity{
		{Source: 1, Target: 2, Value: 2},
		{Source: 1, Target: 3, Value: 6},
		{Source: 2, Target: 3, Value: 5},
	}

	snap := Build(sims, BuildOptions{Normalize: true})
	require.Len(t, snap.Edges, 3)

	assert.InDelta(t, 0.25, snap.Edges[0].Similarity, 1e-12)
	assert.InDelta(t, 0.75, snap.Edges[1].Similarity, 1e-12)
	assert.InDelta(t, 1.0, snap.Edges[2].Similarity, 1e-12)
}

func TestBuildNormalizeZeroSum(t *testing.T) {
	sims := []Similarity{
		{Source: 1, Target: 2, Value: 2},
		{Source: 1, Target: 3, Value: -2},
	}

	snap := Build(sims, BuildOptions{Normalize: true})

	// 2 + (-2) == 0: the source's edges stay unscaled.
	assert.Equal(t, 2.0, snap.Edges[0].Similarity)
	assert.Equal(t, -2.0, snap.Edges[1].Similarity)
}

func TestSnapshotDerive(t *testing.T) {
	snap := Build([]Similarity{{Source: 1, Target: 2, Value: 1}}, BuildOptions{Symmetric: true})
	require.Equal(t, 2, snap.VertexCount())

	edges := append([]Edge(nil), snap.Edges...)
	edges[0].Responsibility = 42

	next := snap.Derive(edges)
	assert.Equal(t, 2, next.VertexCount())
	assert.Equal(t, 42.0, next.Edges[0].Responsibility)
	// The original snapshot is untouched.
	assert.Zero(t, snap.Edges[0].Responsibility)
}
