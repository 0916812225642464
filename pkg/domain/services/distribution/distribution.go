// Package distribution turns concentration parameters into sampling
// distributions over finite index sets. One weight vector is generated per
// axis (periods, nodes, items); the generation order on a shared RNG is part
// of the reproducibility contract and is owned by the caller.
package distribution

import (
	"math"
	"math/rand"
	"sort"
)

// ConcentrationWeights produces a probability vector of length n that sums
// to 1.0, skewed by concentration c in [0, 1].
//
// c == 0 returns the exact uniform distribution 1/n and consumes no
// randomness; callers depend on that when replaying seeded runs. For c > 0,
// each slot draws a base weight from U[0.5, 1.5) and raises it to the power
// 1 + 3c before normalization, so small c gives mild skew and c near 1
// concentrates mass on the slots with large base draws.
func ConcentrationWeights(rng *rand.Rand, n int, c float64) []float64 {
	weights := make([]float64, n)

	if c == 0 {
		uniform := 1.0 / float64(n)
		for i := range weights {
			weights[i] = uniform
		}
		return weights
	}

	exponent := 1.0 + c*3.0
	total := 0.0
	for i := range weights {
		base := 0.5 + rng.Float64()
		weights[i] = math.Pow(base, exponent)
		total += weights[i]
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// IndexSampler draws indices from a fixed weight vector. Each Next call
// consumes exactly one uniform draw from the supplied RNG.
type IndexSampler struct {
	cumulative []float64
}

// NewIndexSampler builds a sampler over the given weights. Weights need not
// sum to exactly 1.0; the sampler normalizes against the running total.
func NewIndexSampler(weights []float64) *IndexSampler {
	cumulative := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		total += w
		cumulative[i] = total
	}
	return &IndexSampler{cumulative: cumulative}
}

// Next returns an index in [0, len(weights)) with probability proportional
// to its weight.
func (s *IndexSampler) Next(rng *rand.Rand) int {
	total := s.cumulative[len(s.cumulative)-1]
	x := rng.Float64() * total
	idx := sort.SearchFloat64s(s.cumulative, x)
	if idx >= len(s.cumulative) {
		idx = len(s.cumulative) - 1
	}
	return idx
}
