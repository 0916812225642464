package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateUniformAcrossBuckets(t *testing.T) {
	m := Estimate(Params{
		Nodes:           3,
		Items:           100,
		Periods:         4,
		DefaultCapacity: 1000,
		Utilization:     0.8,
	})

	require.Equal(t, 12, m.Len())
	for _, k := range m.Keys() {
		assert.Equal(t, 800.0, m.At(k.Node, k.Period))
	}
	assert.InDelta(t, 9600.0, m.Total(), 1e-9)
}

func TestEstimateDeductsSetupOverhead(t *testing.T) {
	m := Estimate(Params{
		Nodes:              1,
		Items:              100,
		Periods:            1,
		DefaultCapacity:    1000,
		SetupCapacityUsage: 2.0,
		DemandIntensity:    0.5,
		Utilization:        1.0,
	})

	// 100 items at 0.5 intensity expect 50 setups of 2.0 each.
	assert.Equal(t, 900.0, m.At(0, 0))
}

func TestEstimateClampsNegativeToZero(t *testing.T) {
	m := Estimate(Params{
		Nodes:              2,
		Items:              1000,
		Periods:            2,
		DefaultCapacity:    100,
		SetupCapacityUsage: 1.0,
		DemandIntensity:    1.0,
		Utilization:        0.9,
	})

	for _, k := range m.Keys() {
		assert.Equal(t, 0.0, m.At(k.Node, k.Period))
	}
	assert.Equal(t, 0.0, m.Total())
}

func TestKeysAscendingOrder(t *testing.T) {
	m := NewMap(2, 3)
	keys := m.Keys()

	expected := []Key{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1}, {1, 2},
	}
	assert.Equal(t, expected, keys)
}

func TestMapSetAndAt(t *testing.T) {
	m := NewMap(2, 2)
	m.Set(1, 0, 42.5)

	assert.Equal(t, 42.5, m.At(1, 0))
	assert.Equal(t, 0.0, m.At(0, 1))
	assert.InDelta(t, 42.5, m.Total(), 1e-9)
}
