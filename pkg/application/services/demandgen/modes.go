package demandgen

import (
	"math/rand"

	"github.com/lotsizing/casegen/pkg/domain/entities"
)

// The density-based modes share a common amount range. They make no
// feasibility promise; instances they produce may be unsolvable under tight
// capacity.

func (c Config) amountRange() (float64, float64) {
	minAmount, maxAmount := c.MinAmount, c.MaxAmount
	if minAmount < 1.0 {
		minAmount = 1.0
	}
	if maxAmount < minAmount {
		maxAmount = minAmount
	}
	return minAmount, maxAmount
}

func drawAmount(rng *rand.Rand, minAmount, maxAmount float64) float64 {
	return minAmount + rng.Float64()*(maxAmount-minAmount)
}

func generateAllCombinations(cfg Config, rng *rand.Rand) []entities.DemandEntry {
	minAmount, maxAmount := cfg.amountRange()
	var entries []entities.DemandEntry

	for u := 0; u < cfg.Nodes; u++ {
		for i := 0; i < cfg.Items; i++ {
			for t := 0; t < cfg.Periods; t++ {
				if rng.Float64() < cfg.DemandIntensity {
					entries = append(entries, entities.DemandEntry{
						Node:   u,
						Item:   i,
						Period: t,
						Amount: drawAmount(rng, minAmount, maxAmount),
					})
				}
			}
		}
	}
	return entries
}

func generateSparseRandom(cfg Config, rng *rand.Rand) []entities.DemandEntry {
	minAmount, maxAmount := cfg.amountRange()

	type cell struct{ u, i, t int }
	cells := make([]cell, 0, cfg.Nodes*cfg.Items*cfg.Periods)
	for u := 0; u < cfg.Nodes; u++ {
		for i := 0; i < cfg.Items; i++ {
			for t := 0; t < cfg.Periods; t++ {
				cells = append(cells, cell{u, i, t})
			}
		}
	}

	rng.Shuffle(len(cells), func(a, b int) {
		cells[a], cells[b] = cells[b], cells[a]
	})

	count := int(float64(len(cells)) * cfg.DemandIntensity)
	if count > len(cells) {
		count = len(cells)
	}

	entries := make([]entities.DemandEntry, 0, count)
	for _, c := range cells[:count] {
		entries = append(entries, entities.DemandEntry{
			Node:   c.u,
			Item:   c.i,
			Period: c.t,
			Amount: drawAmount(rng, minAmount, maxAmount),
		})
	}
	return entries
}

func generatePerItemPerPeriod(cfg Config, rng *rand.Rand) []entities.DemandEntry {
	minAmount, maxAmount := cfg.amountRange()
	var entries []entities.DemandEntry

	for i := 0; i < cfg.Items; i++ {
		for t := 0; t < cfg.Periods; t++ {
			if rng.Float64() < cfg.DemandIntensity {
				entries = append(entries, entities.DemandEntry{
					Node:   rng.Intn(cfg.Nodes),
					Item:   i,
					Period: t,
					Amount: drawAmount(rng, minAmount, maxAmount),
				})
			}
		}
	}
	return entries
}

func generatePerNodePerPeriod(cfg Config, rng *rand.Rand) []entities.DemandEntry {
	minAmount, maxAmount := cfg.amountRange()
	var entries []entities.DemandEntry

	for u := 0; u < cfg.Nodes; u++ {
		for t := 0; t < cfg.Periods; t++ {
			if rng.Float64() >= cfg.DemandIntensity {
				continue
			}

			count := int(float64(cfg.Items) * cfg.DemandIntensity)
			if count < 1 {
				count = 1
			}

			items := rng.Perm(cfg.Items)
			if count > len(items) {
				count = len(items)
			}
			for _, i := range items[:count] {
				entries = append(entries, entities.DemandEntry{
					Node:   u,
					Item:   i,
					Period: t,
					Amount: drawAmount(rng, minAmount, maxAmount),
				})
			}
		}
	}
	return entries
}
