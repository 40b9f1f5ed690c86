package apcluster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/apcluster/fold"
	"github.com/hupe1980/apcluster/graph"
	"github.com/hupe1980/apcluster/model"
)

func snapshotOf(edges []graph.Edge) *graph.Snapshot {
	return graph.NewSnapshot(edges)
}

func TestSelectExemplarsArgmax(t *testing.T) {
	// Vertex 1 scores best toward 2; vertex 2 and 3 score best toward
	// themselves.
	edges := []graph.Edge{
		{Source: 1, Target: 1, Message: graph.Message{Availability: 0, Responsibility: -1}},
		{Source: 1, Target: 2, Message: graph.Message{Availability: 1, Responsibility: 1}},
		{Source: 2, Target: 2, Message: graph.Message{Availability: 2, Responsibility: 0}},
		{Source: 2, Target: 1, Message: graph.Message{Availability: 0, Responsibility: -3}},
		{Source: 3, Target: 3, Message: graph.Message{Availability: 1, Responsibility: 1}},
		{Source: 3, Target: 2, Message: graph.Message{Availability: 0, Responsibility: 0}},
	}

	rows, err := selectExemplars(context.Background(), snapshotOf(edges), fold.Options{Workers: 1})
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []model.Assignment{
		{ClusterID: 0, Exemplar: 2, Member: 1},
		{ClusterID: 0, Exemplar: 2, Member: 2},
		{ClusterID: 1, Exemplar: 3, Member: 3},
	}, rows)
}

func TestSelectExemplarsTieBreaksToFirstEdge(t *testing.T) {
	// Both outgoing edges of vertex 1 score 2; the first edge in snapshot
	// order wins.
	edges := []graph.Edge{
		{Source: 1, Target: 5, Message: graph.Message{Availability: 1, Responsibility: 1}},
		{Source: 1, Target: 1, Message: graph.Message{Availability: 2, Responsibility: 0}},
		{Source: 5, Target: 5, Message: graph.Message{Availability: 1, Responsibility: 0}},
	}

	rows, err := selectExemplars(context.Background(), snapshotOf(edges), fold.Options{Workers: 1})
	require.NoError(t, err)

	byMember := make(map[int64]int64)
	for _, r := range rows {
		byMember[r.Member] = r.Exemplar
	}
	assert.Equal(t, int64(5), byMember[1])
	assert.Equal(t, int64(5), byMember[5])
}

func TestSelectExemplarsDenseClusterIDs(t *testing.T) {
	edges := []graph.Edge{
		{Source: 10, Target: 10, Message: graph.Message{Availability: 1}},
		{Source: 20, Target: 20, Message: graph.Message{Availability: 1}},
		{Source: 30, Target: 30, Message: graph.Message{Availability: 1}},
	}

	rows, err := selectExemplars(context.Background(), snapshotOf(edges), fold.Options{Workers: 1})
	require.NoError(t, err)

	ids := make(map[int64]bool)
	for _, r := range rows {
		ids[r.ClusterID] = true
	}
	assert.Equal(t, map[int64]bool{0: true, 1: true, 2: true}, ids)
}
