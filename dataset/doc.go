// Package dataset provides bulk-loadable handles for similarity relations.
//
// A Reader abstracts where the triples come from: an in-memory slice, a CSV
// stream, a (possibly compressed) blob in an object store, or several of
// those merged. The clustering facade consumes any Reader via RunDataset.
package dataset
