// Package demandgen generates the sparse demand table of a lot-sizing test
// instance. The capacity-driven mode sizes every demand point against a
// per-(node, period) capacity budget so that generated instances are
// feasible by construction; the remaining modes are simple density-based
// samplers with no feasibility guarantee.
package demandgen

import (
	"fmt"
	"math/rand"

	"github.com/lotsizing/casegen/pkg/domain/entities"
	"github.com/lotsizing/casegen/pkg/domain/services/capacity"
	"github.com/lotsizing/casegen/pkg/domain/services/distribution"
)

// Mode selects the demand generation strategy.
type Mode int

const (
	// CapacityDriven allocates demand against a capacity budget and
	// guarantees the generated instance is feasible.
	CapacityDriven Mode = iota
	// AllCombinations visits every (node, item, period) cell and keeps it
	// with probability equal to the demand intensity.
	AllCombinations
	// SparseRandom picks a uniform random subset of cells sized by the
	// demand intensity.
	SparseRandom
	// PerItemPerPeriod emits at most one demand row per (item, period) on a
	// random node.
	PerItemPerPeriod
	// PerNodePerPeriod emits a batch of item demands per (node, period).
	PerNodePerPeriod
)

var modeNames = map[Mode]string{
	CapacityDriven:   "capacity",
	AllCombinations:  "all",
	SparseRandom:     "sparse",
	PerItemPerPeriod: "per-item",
	PerNodePerPeriod: "per-node",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMode maps a mode name from configuration to a Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown demand generation mode %q", s)
}

// Config holds every parameter the generator consumes. Bounds validation is
// the config layer's job; the generator only guards the degenerate zero
// cases described on Generate.
type Config struct {
	Nodes   int
	Items   int
	Periods int

	Mode Mode
	Seed uint64

	// Capacity model (capacity-driven mode).
	DefaultCapacity     float64 // raw capacity per node-period
	UnitCapacityUsage   float64 // capacity consumed per unit of demand (sX)
	SetupCapacityUsage  float64 // capacity consumed per production setup (sY)
	CapacityUtilization float64 // fraction of net capacity offered to demand, [0, 1]

	// Shape (capacity-driven mode).
	DemandIntensity    float64 // fraction of the (U, I, T) space to populate, [0, 1]
	TimeConcentration  float64 // [0, 1]
	NodeConcentration  float64 // [0, 1]
	ItemConcentration  float64 // [0, 1]
	DemandSizeVariance float64 // relative spread of generated amounts, [0, 1]

	// Amount range for the non-capacity-aware modes.
	MinAmount float64
	MaxAmount float64
}

// feasibilityTolerance is the relative slack the verifier allows before it
// declares a capacity bucket overcommitted.
const feasibilityTolerance = 0.01

// FeasibilityError reports a capacity bucket whose recomputed usage exceeds
// its budget beyond tolerance. It indicates a defect in the sampler, never
// bad user input, and must abort the generation run.
type FeasibilityError struct {
	Node     int
	Period   int
	Usage    float64
	Capacity float64
}

func (e *FeasibilityError) Error() string {
	return fmt.Sprintf(
		"feasibility check failed at node %d period %d: usage %.4f exceeds capacity %.4f",
		e.Node, e.Period, e.Usage, e.Capacity)
}

// Generate produces the demand table for the configured mode.
//
// All randomness comes from a single stream seeded with cfg.Seed; two calls
// with the same Config produce identical entry sequences. In capacity-driven
// mode the draw order is fixed: period weights, node weights, item weights,
// then per demand point the period, node, item and amount draws in that
// order. Skipped points consume no amount draw.
//
// A degenerate config (zero demand points, or no available capacity) yields
// an empty table and no error. The only error Generate returns is a
// *FeasibilityError, which means the sampler itself is broken.
func Generate(cfg Config) ([]entities.DemandEntry, error) {
	rng := rand.New(rand.NewSource(int64(cfg.Seed)))

	switch cfg.Mode {
	case CapacityDriven:
		return generateCapacityDriven(cfg, rng)
	case AllCombinations:
		return generateAllCombinations(cfg, rng), nil
	case SparseRandom:
		return generateSparseRandom(cfg, rng), nil
	case PerItemPerPeriod:
		return generatePerItemPerPeriod(cfg, rng), nil
	case PerNodePerPeriod:
		return generatePerNodePerPeriod(cfg, rng), nil
	default:
		return nil, fmt.Errorf("unknown demand generation mode %d", cfg.Mode)
	}
}

func generateCapacityDriven(cfg Config, rng *rand.Rand) ([]entities.DemandEntry, error) {
	totalPoints := int(float64(cfg.Nodes*cfg.Items*cfg.Periods) * cfg.DemandIntensity)
	if totalPoints == 0 {
		return nil, nil
	}

	capMap := capacity.Estimate(capacity.Params{
		Nodes:              cfg.Nodes,
		Items:              cfg.Items,
		Periods:            cfg.Periods,
		DefaultCapacity:    cfg.DefaultCapacity,
		SetupCapacityUsage: cfg.SetupCapacityUsage,
		DemandIntensity:    cfg.DemandIntensity,
		Utilization:        cfg.CapacityUtilization,
	})

	// Weight generation order is part of the seed contract: periods, then
	// nodes, then items.
	periodWeights := distribution.ConcentrationWeights(rng, cfg.Periods, cfg.TimeConcentration)
	nodeWeights := distribution.ConcentrationWeights(rng, cfg.Nodes, cfg.NodeConcentration)
	itemWeights := distribution.ConcentrationWeights(rng, cfg.Items, cfg.ItemConcentration)

	entries := samplePoints(cfg, rng, capMap, periodWeights, nodeWeights, itemWeights, totalPoints)

	if err := verifyFeasibility(cfg, entries, capMap); err != nil {
		return nil, err
	}
	return entries, nil
}

// samplePoints runs the allocation loop: it draws (period, node, item) from
// the weighted distributions, sizes each amount against the remaining
// capacity of its bucket, and tracks consumption.
func samplePoints(
	cfg Config,
	rng *rand.Rand,
	capMap *capacity.Map,
	periodWeights, nodeWeights, itemWeights []float64,
	totalPoints int,
) []entities.DemandEntry {
	totalCapacity := capMap.Total()
	if totalCapacity <= 0 {
		return nil
	}

	// Demand consumes unitUsage capacity per unit. A zero unitUsage means
	// demand is capacity-free; amounts are then sized as if one unit
	// consumed one capacity unit, and saturation cannot occur.
	unitUsage := cfg.UnitCapacityUsage
	sizingDivisor := unitUsage
	if sizingDivisor <= 0 {
		sizingDivisor = 1.0
	}

	avgPointCapacity := totalCapacity / float64(totalPoints)
	avgAmount := avgPointCapacity / sizingDivisor

	minAmount := avgAmount * (1.0 - cfg.DemandSizeVariance)
	maxAmount := avgAmount * (1.0 + cfg.DemandSizeVariance)
	if minAmount < 1.0 {
		minAmount = 1.0
	}
	if maxAmount < minAmount+1.0 {
		maxAmount = minAmount + 1.0
	}

	periodSampler := distribution.NewIndexSampler(periodWeights)
	nodeSampler := distribution.NewIndexSampler(nodeWeights)
	itemSampler := distribution.NewIndexSampler(itemWeights)

	keys := capMap.Keys()
	used := make([]float64, capMap.Len())
	bucket := func(u, t int) int { return u*cfg.Periods + t }

	entries := make([]entities.DemandEntry, 0, totalPoints)

	for point := 0; point < totalPoints; point++ {
		t := periodSampler.Next(rng)
		u := nodeSampler.Next(rng)
		i := itemSampler.Next(rng)

		remaining := capMap.At(u, t) - used[bucket(u, t)]
		if remaining <= 0 {
			// The sampled bucket is saturated; fall back to the first
			// bucket in ascending (node, period) order that still has
			// room. If none does, drop this point.
			found := false
			for _, k := range keys {
				r := capMap.At(k.Node, k.Period) - used[bucket(k.Node, k.Period)]
				if r > 0 {
					u, t = k.Node, k.Period
					remaining = r
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}

		maxPossible := remaining / sizingDivisor
		if unitUsage > 0 && maxPossible < 1.0 {
			// The bucket cannot fit the minimum viable amount of 1.0.
			// Dropping the point keeps the capacity invariant exact
			// instead of leaning on the verifier's tolerance.
			continue
		}

		amount := minAmount + rng.Float64()*(maxAmount-minAmount)
		if unitUsage > 0 && amount > maxPossible {
			amount = maxPossible
		}

		used[bucket(u, t)] += amount * unitUsage
		entries = append(entries, entities.DemandEntry{
			Node:   u,
			Item:   i,
			Period: t,
			Amount: amount,
		})
	}

	return entries
}

// verifyFeasibility recomputes per-bucket capacity usage from the emitted
// entries and checks it against the budget. It is a runtime assertion of
// the sampler's own invariant and should never fire.
func verifyFeasibility(cfg Config, entries []entities.DemandEntry, capMap *capacity.Map) error {
	usage := make([]float64, capMap.Len())
	for _, e := range entries {
		usage[e.Node*cfg.Periods+e.Period] += e.Amount * cfg.UnitCapacityUsage
	}

	for _, k := range capMap.Keys() {
		budget := capMap.At(k.Node, k.Period)
		use := usage[k.Node*cfg.Periods+k.Period]
		if use > budget*(1.0+feasibilityTolerance) {
			return &FeasibilityError{
				Node:     k.Node,
				Period:   k.Period,
				Usage:    use,
				Capacity: budget,
			}
		}
	}
	return nil
}
