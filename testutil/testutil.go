package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/apcluster/graph"
)

// RNG encapsulates a seeded random number generator. It is thread-safe and
// resettable, so tests can replay identical inputs.
type RNG struct {
	mu   sync.Mutex
	rand *rand.Rand
	seed int64
}

// NewRNG creates an RNG with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{rand: rand.New(rand.NewSource(seed)), seed: seed}
}

// Reset rewinds the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Float64 returns a pseudo-random number in [0.0, 1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rand.Float64()
}

// Intn returns a non-negative pseudo-random number in [0, n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rand.Intn(n)
}

// Triangle generates one triangle of a random symmetric similarity relation
// over vertex ids 0..vertices-1, with values in [-scale, 0).
func (r *RNG) Triangle(vertices int, scale float64) []graph.Similarity {
	var sims []graph.Similarity
	for i := 0; i < vertices; i++ {
		for j := i + 1; j < vertices; j++ {
			sims = append(sims, graph.Similarity{
				Source: int64(i),
				Target: int64(j),
				Value:  -r.Float64() * scale,
			})
		}
	}

	return sims
}

// TwoBlobs generates one triangle of a similarity relation with two well
// separated groups: ids 0..sizeA-1 and sizeA..sizeA+sizeB-1. Similarities
// are negative squared distances of points on a line, so within-group
// values dwarf cross-group values.
func TwoBlobs(sizeA, sizeB int) []graph.Similarity {
	position := func(id int) float64 {
		if id < sizeA {
			return float64(id)
		}

		return 100 + float64(id-sizeA)
	}

	n := sizeA + sizeB
	var sims []graph.Similarity
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := position(i) - position(j)
			sims = append(sims, graph.Similarity{
				Source: int64(i),
				Target: int64(j),
				Value:  -d * d,
			})
		}
	}

	return sims
}
