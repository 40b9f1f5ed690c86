// Package apcluster provides embeddable affinity-propagation clustering
// for Go.
//
// Affinity propagation discovers clusters in a set of entities connected by
// pairwise similarity values without requiring the number of clusters up
// front. Clusters emerge from a damped message-passing fixed point computed
// over a directed graph whose edges carry similarity, availability, and
// responsibility values; each vertex ends up choosing an exemplar, and
// vertices sharing an exemplar form a cluster.
//
// # Quick start
//
//	sims := []graph.Similarity{
//	    {Source: 1, Target: 2, Value: -0.5},
//	    {Source: 1, Target: 3, Value: -4.0},
//	    {Source: 2, Target: 3, Value: -3.5},
//	}
//
//	ap, err := apcluster.New(
//	    apcluster.WithMaxIterations(200),
//	    apcluster.WithDamping(0.5),
//	)
//	if err != nil {
//	    panic(err)
//	}
//
//	m, err := ap.Run(context.Background(), sims)
//	if err != nil {
//	    panic(err)
//	}
//	fmt.Println(m.ClusterCount())
//
// By default the input is treated as one triangle of a symmetric similarity
// matrix and every vertex's preference (its self-similarity) is set to the
// median of the supplied values. WithPreference substitutes a constant:
// lower values produce fewer, larger clusters; higher values produce more.
//
// # Data loading
//
// RunDataset accepts a dataset.Reader, which abstracts bulk-loadable
// similarity sources: in-memory slices, CSV streams, or (optionally
// compressed) blobs in local, in-memory, S3, or MinIO object stores.
//
// # Caveats
//
// Affinity propagation is a heuristic: it may oscillate instead of
// converging (raise damping or iterations), it does not guarantee a
// specific cluster count, and cluster ids are run-local labels. Non-finite
// similarity values are passed through unvalidated; NaN in particular makes
// score comparisons undefined.
package apcluster
