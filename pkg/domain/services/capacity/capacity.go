// Package capacity derives the per-(node, period) production capacity that
// generated demand is allowed to consume.
package capacity

// Key identifies one (node, period) capacity bucket.
type Key struct {
	Node   int
	Period int
}

// Map holds the available capacity for every (node, period) pair. It is
// immutable after construction; consumption is tracked separately by the
// sampler. Keys iterate in ascending (node, period) order, which is the
// order the sampler's fallback scan relies on.
type Map struct {
	nodes     int
	periods   int
	available []float64
}

// NewMap creates a zero-valued capacity map for nodes × periods buckets.
func NewMap(nodes, periods int) *Map {
	return &Map{
		nodes:     nodes,
		periods:   periods,
		available: make([]float64, nodes*periods),
	}
}

// At returns the available capacity for (node, period).
func (m *Map) At(node, period int) float64 {
	return m.available[node*m.periods+period]
}

// Set assigns the available capacity for (node, period).
func (m *Map) Set(node, period int, v float64) {
	m.available[node*m.periods+period] = v
}

// Keys returns every (node, period) key in ascending (node, period) order.
func (m *Map) Keys() []Key {
	keys := make([]Key, 0, m.nodes*m.periods)
	for u := 0; u < m.nodes; u++ {
		for t := 0; t < m.periods; t++ {
			keys = append(keys, Key{Node: u, Period: t})
		}
	}
	return keys
}

// Len returns the number of (node, period) buckets.
func (m *Map) Len() int {
	return len(m.available)
}

// Total returns the summed available capacity over all buckets.
func (m *Map) Total() float64 {
	total := 0.0
	for _, v := range m.available {
		total += v
	}
	return total
}

// Params are the inputs to capacity estimation.
type Params struct {
	Nodes   int
	Items   int
	Periods int

	// DefaultCapacity is the raw capacity per node-period before setup
	// overhead is deducted.
	DefaultCapacity float64

	// SetupCapacityUsage is the capacity consumed by one production setup
	// (unit sY).
	SetupCapacityUsage float64

	// DemandIntensity is the fraction of the (nodes, items, periods) space
	// that will carry demand; it scales the setup overhead estimate.
	DemandIntensity float64

	// Utilization is the fraction of net capacity made available to
	// generated demand.
	Utilization float64
}

// Estimate computes the available capacity for every (node, period).
//
// The expected number of setups per period is Items × DemandIntensity: each
// item triggers at most one setup per period, scaled by how often it carries
// demand. Net capacity is the default capacity minus that overhead, floored
// at zero, and the target utilization fraction of the remainder is made
// available. The uniform capacity model yields the same value for every
// bucket; node- and period-specific scarcity comes from the sampling
// weights, not from differentiated capacity.
func Estimate(p Params) *Map {
	avgSetupsPerPeriod := float64(p.Items) * p.DemandIntensity
	setupOverhead := avgSetupsPerPeriod * p.SetupCapacityUsage

	available := p.DefaultCapacity - setupOverhead
	if available < 0 {
		available = 0
	}
	available *= p.Utilization

	m := NewMap(p.Nodes, p.Periods)
	for u := 0; u < p.Nodes; u++ {
		for t := 0; t < p.Periods; t++ {
			m.Set(u, t, available)
		}
	}
	return m
}
