package csvcase

import (
	"fmt"
	"io"

	"github.com/lotsizing/casegen/pkg/domain/entities"
)

// Emit validates the case and writes it section by section in the schema
// order the solver expects: meta, cost, cap_usage, capacity, init, demand,
// transfer tables when enabled, then solver parameters.
//
// Capacity and initial stock write the default value for every key first and
// the sparse overrides after, so a reader applying rows in order ends up
// with the override values.
func Emit(w io.Writer, c *entities.Case) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid case: %w", err)
	}

	sw := NewWriter(w)

	// meta
	transferFlag := 0
	if c.EnableTransfer {
		transferFlag = 1
	}
	metaRows := []struct {
		key   string
		value int
	}{
		{"U", c.Nodes},
		{"I", c.Items},
		{"T", c.Periods},
		{"enable_transfer", transferFlag},
	}
	for _, row := range metaRows {
		if err := sw.WriteInt("meta", row.key, NoIndex, NoIndex, NoIndex, NoIndex, row.value); err != nil {
			return err
		}
	}

	// cost and cap_usage, one row per item per vector
	itemVectors := []struct {
		section string
		key     string
		vec     []float64
	}{
		{"cost", "cX", c.ProductionCost},
		{"cost", "cY", c.SetupCost},
		{"cost", "cI", c.HoldingCost},
		{"cap_usage", "sX", c.UnitCapacityUsage},
		{"cap_usage", "sY", c.SetupCapacityUsage},
	}
	for _, v := range itemVectors {
		for i := 0; i < c.Items; i++ {
			if err := sw.WriteValue(v.section, v.key, NoIndex, NoIndex, i, NoIndex, v.vec[i]); err != nil {
				return err
			}
		}
	}

	// capacity: defaults for the full table, then overrides
	for u := 0; u < c.Nodes; u++ {
		for t := 0; t < c.Periods; t++ {
			if err := sw.WriteValue("capacity", "C", u, NoIndex, NoIndex, t, c.DefaultCapacity); err != nil {
				return err
			}
		}
	}
	for _, o := range c.CapacityOverrides {
		if err := sw.WriteValue("capacity", "C", o.Node, NoIndex, NoIndex, o.Period, o.Value); err != nil {
			return err
		}
	}

	// initial stock: defaults then overrides
	for u := 0; u < c.Nodes; u++ {
		for i := 0; i < c.Items; i++ {
			if err := sw.WriteValue("init", "I0", u, NoIndex, i, NoIndex, c.DefaultInitialStock); err != nil {
				return err
			}
		}
	}
	for _, o := range c.InitialStockOverrides {
		if err := sw.WriteValue("init", "I0", o.Node, NoIndex, o.Item, NoIndex, o.Value); err != nil {
			return err
		}
	}

	// demand: sparse rows only, absence means zero
	for _, d := range c.Demand {
		if err := sw.WriteValue("demand", "Demand", d.Node, NoIndex, d.Item, d.Period, d.Amount); err != nil {
			return err
		}
	}

	if c.EnableTransfer {
		for _, tc := range c.TransferCosts {
			if err := sw.WriteValue("transfer", "cT", tc.FromNode, tc.ToNode, tc.Item, tc.Period, tc.Cost); err != nil {
				return err
			}
		}
		for _, m := range c.BigM {
			if err := sw.WriteValue("bigM", "M", NoIndex, NoIndex, m.Item, m.Period, m.Value); err != nil {
				return err
			}
		}
	}

	// solver
	if err := sw.WriteValue("solver", "mip_gap", NoIndex, NoIndex, NoIndex, NoIndex, c.Solver.MIPGap); err != nil {
		return err
	}
	if err := sw.WriteInt("solver", "time_limit_sec", NoIndex, NoIndex, NoIndex, NoIndex, c.Solver.TimeLimitSec); err != nil {
		return err
	}
	if err := sw.WriteInt("solver", "threads", NoIndex, NoIndex, NoIndex, NoIndex, c.Solver.Threads); err != nil {
		return err
	}
	if err := sw.WriteValue("solver", "sep_violation_eps", NoIndex, NoIndex, NoIndex, NoIndex, c.Solver.SeparationEps); err != nil {
		return err
	}
	if err := sw.WriteInt("solver", "max_iters", NoIndex, NoIndex, NoIndex, NoIndex, c.Solver.MaxIterations); err != nil {
		return err
	}

	return sw.Flush()
}
