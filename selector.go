package apcluster

import (
	"context"
	"sort"

	"github.com/hupe1980/apcluster/fold"
	"github.com/hupe1980/apcluster/graph"
	"github.com/hupe1980/apcluster/model"
)

// choice tracks the best-scoring outgoing edge of one source vertex.
// Ties break toward the lowest snapshot edge index; together with the
// stable edge order this makes exemplar selection reproducible for
// identical input and configuration.
type choice struct {
	score float64
	index int
}

func mergeChoice(a, b choice) choice {
	if b.score > a.score || (b.score == a.score && b.index < a.index) {
		return b
	}

	return a
}

// selectExemplars converts the converged edge state into the assignment
// relation: each vertex picks the outgoing edge (self-loop included)
// maximizing availability + responsibility, vertices are grouped by chosen
// exemplar, and each distinct exemplar gets a dense zero-based cluster id
// in ascending-exemplar order.
func selectExemplars(ctx context.Context, snap *graph.Snapshot, opts fold.Options) ([]model.Assignment, error) {
	choices, err := fold.GroupReduce(ctx, snap.Edges,
		func(_ int, e graph.Edge) int64 { return e.Source },
		func(i int, e graph.Edge) choice { return choice{score: e.Score(), index: i} },
		mergeChoice,
		opts,
	)
	if err != nil {
		return nil, err
	}

	// Isolated targets (vertices with no outgoing edges) cannot occur once
	// preferences are embedded: every vertex owns at least its self-loop.
	byExemplar := make(map[int64][]int64, len(choices))
	for member, c := range choices {
		exemplar := snap.Edges[c.index].Target
		byExemplar[exemplar] = append(byExemplar[exemplar], member)
	}

	exemplars := make([]int64, 0, len(byExemplar))
	for e := range byExemplar {
		exemplars = append(exemplars, e)
	}
	sort.Slice(exemplars, func(i, j int) bool { return exemplars[i] < exemplars[j] })

	out := make([]model.Assignment, 0, len(choices))
	for clusterID, exemplar := range exemplars {
		members := byExemplar[exemplar]
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
		for _, member := range members {
			out = append(out, model.Assignment{
				ClusterID: int64(clusterID),
				Exemplar:  exemplar,
				Member:    member,
			})
		}
	}

	return out, nil
}
