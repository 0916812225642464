// Package entities defines the lot-sizing case model: the full set of
// parameters and sparse tables that make up one generated test instance.
// All indices are 0-based.
package entities

import (
	"fmt"
)

// DemandEntry is one sparse demand record. Keys absent from the demand
// table mean zero demand; duplicate (Node, Item, Period) keys are legal and
// are aggregated by consumers.
type DemandEntry struct {
	Node   int
	Item   int
	Period int
	Amount float64
}

// CapacityOverride replaces the default capacity for one (node, period).
type CapacityOverride struct {
	Node   int
	Period int
	Value  float64
}

// InitialStockOverride replaces the default initial stock for one
// (node, item).
type InitialStockOverride struct {
	Node  int
	Item  int
	Value float64
}

// TransferCost is the per-unit cost of moving an item between two nodes in
// a period. Only meaningful when the case enables transfer.
type TransferCost struct {
	FromNode int
	ToNode   int
	Item     int
	Period   int
	Cost     float64
}

// BigMEntry bounds the transfer quantity for an (item, period) pair.
type BigMEntry struct {
	Item   int
	Period int
	Value  float64
}

// SolverParams are passed through to the downstream MIP solver unchanged.
type SolverParams struct {
	MIPGap        float64
	TimeLimitSec  int
	Threads       int
	SeparationEps float64
	MaxIterations int
}

// Case is a complete lot-sizing instance ready for serialization.
type Case struct {
	// Scale.
	Nodes   int
	Items   int
	Periods int

	EnableTransfer bool

	// Per-item cost vectors; each must have length Items.
	ProductionCost []float64 // cX
	SetupCost      []float64 // cY
	HoldingCost    []float64 // cI

	// Per-item capacity usage vectors; each must have length Items.
	UnitCapacityUsage  []float64 // sX
	SetupCapacityUsage []float64 // sY

	// Defaults plus sparse overrides.
	DefaultCapacity       float64
	DefaultInitialStock   float64
	CapacityOverrides     []CapacityOverride
	InitialStockOverrides []InitialStockOverride

	// Sparse demand table.
	Demand []DemandEntry

	// Transfer tables, only valid when EnableTransfer is set.
	TransferCosts []TransferCost
	BigM          []BigMEntry

	Solver SolverParams
}

// UniformVector returns a length-n vector with every element set to v.
// Cases generated from scalar config parameters use it to fill the per-item
// cost and capacity usage vectors.
func UniformVector(n int, v float64) []float64 {
	vec := make([]float64, n)
	for i := range vec {
		vec[i] = v
	}
	return vec
}

// Validate checks dimensions, vector lengths, index bounds and value signs.
// It mirrors the checks consumers of the CSV schema rely on: a Case that
// passes Validate serializes into a well-formed instance.
func (c *Case) Validate() error {
	if c.Nodes <= 0 || c.Items <= 0 || c.Periods <= 0 {
		return fmt.Errorf("nodes, items and periods must be positive, got (%d, %d, %d)",
			c.Nodes, c.Items, c.Periods)
	}

	vectors := []struct {
		name string
		vec  []float64
	}{
		{"production cost (cX)", c.ProductionCost},
		{"setup cost (cY)", c.SetupCost},
		{"holding cost (cI)", c.HoldingCost},
		{"unit capacity usage (sX)", c.UnitCapacityUsage},
		{"setup capacity usage (sY)", c.SetupCapacityUsage},
	}
	for _, v := range vectors {
		if len(v.vec) != c.Items {
			return fmt.Errorf("%s vector length must equal item count %d, got %d",
				v.name, c.Items, len(v.vec))
		}
	}

	if c.DefaultCapacity < 0 {
		return fmt.Errorf("default capacity must be non-negative, got %f", c.DefaultCapacity)
	}
	if c.DefaultInitialStock < 0 {
		return fmt.Errorf("default initial stock must be non-negative, got %f", c.DefaultInitialStock)
	}
	if c.Solver.MIPGap < 0 {
		return fmt.Errorf("mip_gap must be non-negative, got %f", c.Solver.MIPGap)
	}
	if c.Solver.TimeLimitSec <= 0 {
		return fmt.Errorf("time_limit_sec must be positive, got %d", c.Solver.TimeLimitSec)
	}
	if c.Solver.MaxIterations <= 0 {
		return fmt.Errorf("max_iters must be positive, got %d", c.Solver.MaxIterations)
	}

	for _, d := range c.Demand {
		if d.Node < 0 || d.Node >= c.Nodes {
			return fmt.Errorf("demand node out of range: %d", d.Node)
		}
		if d.Item < 0 || d.Item >= c.Items {
			return fmt.Errorf("demand item out of range: %d", d.Item)
		}
		if d.Period < 0 || d.Period >= c.Periods {
			return fmt.Errorf("demand period out of range: %d", d.Period)
		}
		if d.Amount < 0 {
			return fmt.Errorf("demand amount must be non-negative at (%d, %d, %d), got %f",
				d.Node, d.Item, d.Period, d.Amount)
		}
	}

	for _, o := range c.CapacityOverrides {
		if o.Node < 0 || o.Node >= c.Nodes {
			return fmt.Errorf("capacity override node out of range: %d", o.Node)
		}
		if o.Period < 0 || o.Period >= c.Periods {
			return fmt.Errorf("capacity override period out of range: %d", o.Period)
		}
		if o.Value < 0 {
			return fmt.Errorf("capacity override must be non-negative at (%d, %d), got %f",
				o.Node, o.Period, o.Value)
		}
	}

	for _, o := range c.InitialStockOverrides {
		if o.Node < 0 || o.Node >= c.Nodes {
			return fmt.Errorf("initial stock override node out of range: %d", o.Node)
		}
		if o.Item < 0 || o.Item >= c.Items {
			return fmt.Errorf("initial stock override item out of range: %d", o.Item)
		}
		if o.Value < 0 {
			return fmt.Errorf("initial stock override must be non-negative at (%d, %d), got %f",
				o.Node, o.Item, o.Value)
		}
	}

	if c.EnableTransfer {
		for _, tc := range c.TransferCosts {
			if tc.FromNode < 0 || tc.FromNode >= c.Nodes {
				return fmt.Errorf("transfer cost source node out of range: %d", tc.FromNode)
			}
			if tc.ToNode < 0 || tc.ToNode >= c.Nodes {
				return fmt.Errorf("transfer cost target node out of range: %d", tc.ToNode)
			}
			if tc.Item < 0 || tc.Item >= c.Items {
				return fmt.Errorf("transfer cost item out of range: %d", tc.Item)
			}
			if tc.Period < 0 || tc.Period >= c.Periods {
				return fmt.Errorf("transfer cost period out of range: %d", tc.Period)
			}
			if tc.Cost < 0 {
				return fmt.Errorf("transfer cost must be non-negative at (%d, %d, %d, %d), got %f",
					tc.FromNode, tc.ToNode, tc.Item, tc.Period, tc.Cost)
			}
		}
		for _, m := range c.BigM {
			if m.Item < 0 || m.Item >= c.Items {
				return fmt.Errorf("bigM item out of range: %d", m.Item)
			}
			if m.Period < 0 || m.Period >= c.Periods {
				return fmt.Errorf("bigM period out of range: %d", m.Period)
			}
			if m.Value <= 0 {
				return fmt.Errorf("bigM value must be positive at (%d, %d), got %f",
					m.Item, m.Period, m.Value)
			}
		}
	} else {
		if len(c.TransferCosts) > 0 {
			return fmt.Errorf("transfer costs given but transfer is not enabled")
		}
		if len(c.BigM) > 0 {
			return fmt.Errorf("bigM entries given but transfer is not enabled")
		}
	}

	return nil
}
