package graph

// Similarity is one row of the input similarity relation: how well suited
// Target is to be the exemplar for Source. The relation may be asymmetric.
type Similarity struct {
	Source int64
	Target int64
	Value  float64
}

// Message is the per-edge algorithm state.
type Message struct {
	// Similarity is the (possibly normalized) input similarity.
	Similarity float64
	// Availability accumulates evidence that the edge's target is an
	// appropriate exemplar, given support from other vertices.
	Availability float64
	// Responsibility accumulates evidence that the edge's target is the
	// exemplar for the edge's source.
	Responsibility float64
}

// Edge is a directed edge with its message state. A self-loop (Source ==
// Target) represents the source vertex's preference.
type Edge struct {
	Source int64
	Target int64
	Message
}

// Candidate returns similarity + availability, the value responsibility
// updates compete over.
func (e Edge) Candidate() float64 {
	return e.Similarity + e.Availability
}

// Score returns availability + responsibility, the value exemplar selection
// maximizes.
func (e Edge) Score() float64 {
	return e.Availability + e.Responsibility
}

// Snapshot is the full edge set at one iteration. Snapshots are immutable;
// each iteration derives a brand-new one rather than mutating the previous.
//
// Edge order is stable for the lifetime of a run: every derived snapshot
// keeps edge i at index i. Tie-break rules in the engine and the exemplar
// selector are defined in terms of this order.
type Snapshot struct {
	Edges []Edge

	vertexCount int
}

// NewSnapshot wraps edges in a snapshot, counting the distinct vertex ids
// appearing as a source or target. The caller must not mutate edges
// afterwards.
func NewSnapshot(edges []Edge) *Snapshot {
	seen := make(map[int64]struct{}, len(edges))
	for _, e := range edges {
		seen[e.Source] = struct{}{}
		seen[e.Target] = struct{}{}
	}

	return &Snapshot{Edges: edges, vertexCount: len(seen)}
}

// Derive produces the next iteration's snapshot from an updated edge slice.
// The edges must span the same vertex set as the receiver; the cached vertex
// count is carried over instead of being recounted.
func (s *Snapshot) Derive(edges []Edge) *Snapshot {
	return &Snapshot{Edges: edges, vertexCount: s.vertexCount}
}

// VertexCount returns the number of distinct vertex ids in the snapshot.
func (s *Snapshot) VertexCount() int {
	return s.vertexCount
}
