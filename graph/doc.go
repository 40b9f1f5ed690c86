// Package graph builds the edge-labeled message-passing graph that affinity
// propagation iterates over.
//
// The graph is edge-centric: all algorithm state lives on directed edges as
// (similarity, availability, responsibility) triples, and a self-loop edge
// (i, i) carries vertex i's preference — its intrinsic likelihood of being
// chosen as an exemplar. There is no separate vertex registry; the vertex set
// is derived entirely from the similarity relation.
package graph
