package distribution

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcentrationWeightsZeroIsExactUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	weights := ConcentrationWeights(rng, 8, 0)
	require.Len(t, weights, 8)
	for _, w := range weights {
		assert.Equal(t, 1.0/8.0, w)
	}

	assert.Equal(t, []float64{0.5, 0.5}, ConcentrationWeights(rng, 2, 0))
}

func TestConcentrationWeightsZeroConsumesNoRandomness(t *testing.T) {
	rngA := rand.New(rand.NewSource(99))
	rngB := rand.New(rand.NewSource(99))

	ConcentrationWeights(rngA, 16, 0)

	// The stream must be untouched: the next draw matches a fresh RNG with
	// the same seed.
	assert.Equal(t, rngB.Float64(), rngA.Float64())
}

func TestConcentrationWeightsSumToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, c := range []float64{0.1, 0.3, 0.5, 0.9, 1.0} {
		weights := ConcentrationWeights(rng, 20, c)
		require.Len(t, weights, 20)

		sum := 0.0
		for _, w := range weights {
			assert.Greater(t, w, 0.0)
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-12, "concentration %f", c)
	}
}

func TestConcentrationWeightsDeterministic(t *testing.T) {
	a := ConcentrationWeights(rand.New(rand.NewSource(7)), 10, 0.4)
	b := ConcentrationWeights(rand.New(rand.NewSource(7)), 10, 0.4)
	assert.Equal(t, a, b)
}

func TestHigherConcentrationSkewsMore(t *testing.T) {
	mild := ConcentrationWeights(rand.New(rand.NewSource(5)), 50, 0.1)
	sharp := ConcentrationWeights(rand.New(rand.NewSource(5)), 50, 1.0)

	spread := func(w []float64) float64 {
		lo, hi := w[0], w[0]
		for _, v := range w {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		return hi - lo
	}

	// Same base draws, higher exponent: the sharp vector spreads wider.
	assert.Greater(t, spread(sharp), spread(mild))
}

func TestIndexSamplerStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	weights := ConcentrationWeights(rng, 7, 0.5)
	sampler := NewIndexSampler(weights)

	for i := 0; i < 1000; i++ {
		idx := sampler.Next(rng)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, 7)
	}
}

func TestIndexSamplerFollowsWeights(t *testing.T) {
	// Nearly all mass on index 2.
	sampler := NewIndexSampler([]float64{0.001, 0.001, 0.997, 0.001})
	rng := rand.New(rand.NewSource(11))

	counts := make([]int, 4)
	const draws = 10000
	for i := 0; i < draws; i++ {
		counts[sampler.Next(rng)]++
	}

	assert.Greater(t, counts[2], draws*9/10)
}

func TestIndexSamplerSingleIndex(t *testing.T) {
	sampler := NewIndexSampler([]float64{1.0})
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		assert.Equal(t, 0, sampler.Next(rng))
	}
}
