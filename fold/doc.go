// Package fold provides the bulk collection operations the message-passing
// engine is built on: keyed group-and-reduce and order-preserving parallel
// transformation.
//
// Reducers must be associative and commutative — the order in which workers
// combine partial results is unspecified, and results must not depend on it.
// Both operations act as a barrier: they return only once every element has
// been processed, so callers never observe a partial view.
//
// The serial and parallel paths produce identical results; the parallel path
// fans out over chunks with an errgroup and merges per-worker partials after
// the group waits.
package fold
