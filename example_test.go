package apcluster_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/apcluster"
	"github.com/hupe1980/apcluster/graph"
)

func Example() {
	// One triangle of a symmetric similarity matrix. The constant
	// preference 0 dominates every pairwise similarity, so each vertex
	// elects itself as exemplar.
	sims := []graph.Similarity{
		{Source: 0, Target: 1, Value: -50},
		{Source: 0, Target: 2, Value: -50},
		{Source: 1, Target: 2, Value: -50},
	}

	ap, err := apcluster.New(
		apcluster.WithPreference(0),
		apcluster.WithMaxIterations(200),
	)
	if err != nil {
		panic(err)
	}

	m, err := ap.Run(context.Background(), sims)
	if err != nil {
		panic(err)
	}

	fmt.Println(m.ClusterCount())
	// Output: 3
}
