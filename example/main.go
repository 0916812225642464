// Library usage example: generate capacity-driven demand in memory and emit
// the case to stdout without touching the CLI.
package main

import (
	"fmt"
	"os"

	"github.com/lotsizing/casegen/pkg/application/services/demandgen"
	"github.com/lotsizing/casegen/pkg/domain/entities"
	"github.com/lotsizing/casegen/pkg/infrastructure/csvcase"
)

func main() {
	cfg := demandgen.Config{
		Nodes:               2,
		Items:               10,
		Periods:             6,
		Mode:                demandgen.CapacityDriven,
		Seed:                7,
		DefaultCapacity:     500,
		UnitCapacityUsage:   1,
		CapacityUtilization: 0.8,
		DemandIntensity:     0.3,
		TimeConcentration:   0.2,
		NodeConcentration:   0.2,
		ItemConcentration:   0.2,
		DemandSizeVariance:  0.3,
		MinAmount:           10,
		MaxAmount:           50,
	}

	demand, err := demandgen.Generate(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	c := &entities.Case{
		Nodes:              cfg.Nodes,
		Items:              cfg.Items,
		Periods:            cfg.Periods,
		ProductionCost:     entities.UniformVector(cfg.Items, 1),
		SetupCost:          entities.UniformVector(cfg.Items, 60),
		HoldingCost:        entities.UniformVector(cfg.Items, 1),
		UnitCapacityUsage:  entities.UniformVector(cfg.Items, 1),
		SetupCapacityUsage: entities.UniformVector(cfg.Items, 0),
		DefaultCapacity:    500,
		Demand:             demand,
		Solver: entities.SolverParams{
			MIPGap:        1e-6,
			TimeLimitSec:  60,
			SeparationEps: 1e-8,
			MaxIterations: 50,
		},
	}

	if err := csvcase.Emit(os.Stdout, c); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
