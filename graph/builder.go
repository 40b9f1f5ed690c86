package graph

// BuildOptions controls how the similarity relation is expanded into edges.
type BuildOptions struct {
	// Symmetric treats the input as one triangle of a symmetric similarity
	// matrix: every off-diagonal triple (i, j, s) yields both directed edges
	// i→j and j→i with similarity s. Supplying both triangles under
	// Symmetric doubles edge weights in aggregation; this is not validated
	// and is the caller's responsibility to avoid.
	Symmetric bool

	// Normalize rescales each vertex's outgoing similarities by dividing by
	// their sum. A source whose similarities sum to exactly zero is left
	// unscaled.
	Normalize bool
}

// Build expands the similarity relation into the initial message-passing
// snapshot. Every produced edge starts with zero availability and zero
// responsibility.
//
// Duplicate (source, target) pairs are not deduplicated; they silently
// accumulate during aggregation.
func Build(sims []Similarity, opts BuildOptions) *Snapshot {
	n := len(sims)
	if opts.Symmetric {
		n *= 2
	}

	edges := make([]Edge, 0, n)
	for _, s := range sims {
		edges = append(edges, Edge{
			Source:  s.Source,
			Target:  s.Target,
			Message: Message{Similarity: s.Value},
		})
		if opts.Symmetric && s.Source != s.Target {
			edges = append(edges, Edge{
				Source:  s.Target,
				Target:  s.Source,
				Message: Message{Similarity: s.Value},
			})
		}
	}

	if opts.Normalize {
		normalize(edges)
	}

	return NewSnapshot(edges)
}

// normalize divides every edge's similarity by the sum of its source's
// outgoing similarities, skipping sources whose sum is exactly zero.
func normalize(edges []Edge) {
	sums := make(map[int64]float64, len(edges))
	for _, e := range edges {
		sums[e.Source] += e.Similarity
	}

	for i := range edges {
		if sum := sums[edges[i].Source]; sum != 0 {
			edges[i].Similarity /= sum
		}
	}
}
