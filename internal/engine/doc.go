// Package engine runs the damped affinity-propagation message-passing loop
// to a fixed point or an iteration budget.
//
// Each iteration derives a brand-new edge snapshot: responsibilities first,
// then availabilities computed from the fully-materialized responsibility
// output. Loop state (current snapshot, convergence checkpoint) is threaded
// through the iteration as values; nothing is shared or mutated in place.
package engine
