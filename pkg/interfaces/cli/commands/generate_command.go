// Package commands implements the CLI command layer: each command wires
// scenario configuration, demand generation, case serialization and the run
// catalog together.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lotsizing/casegen/pkg/application/services/demandgen"
	"github.com/lotsizing/casegen/pkg/domain/entities"
	"github.com/lotsizing/casegen/pkg/infrastructure/catalog"
	"github.com/lotsizing/casegen/pkg/infrastructure/config"
	"github.com/lotsizing/casegen/pkg/infrastructure/csvcase"
	"github.com/lotsizing/casegen/pkg/infrastructure/logging"
)

// GenerateResult summarizes a completed generation run.
type GenerateResult struct {
	CaseFile   string
	DemandRows int
	Elapsed    time.Duration
}

// GenerateCommand generates one case file from a scenario.
type GenerateCommand struct {
	scenario *config.Scenario
	logLevel string
	now      func() time.Time
}

// NewGenerateCommand creates a generate command for the given scenario.
func NewGenerateCommand(scenario *config.Scenario, logLevel string) *GenerateCommand {
	return &GenerateCommand{
		scenario: scenario,
		logLevel: logLevel,
		now:      time.Now,
	}
}

// Execute runs the full generation pipeline and returns a summary.
func (cmd *GenerateCommand) Execute(ctx context.Context) (*GenerateResult, error) {
	if err := cmd.scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	start := cmd.now()

	runLog, err := logging.OpenRunLog(cmd.scenario.Output.Dir, start)
	if err != nil {
		return nil, err
	}
	defer runLog.Close()

	logger := logging.NewLogger(cmd.logLevel, io.MultiWriter(os.Stderr, runLog))
	logger.Info("generation started",
		"mode", cmd.scenario.Demand.Mode,
		"nodes", cmd.scenario.Scale.Nodes,
		"items", cmd.scenario.Scale.Items,
		"periods", cmd.scenario.Scale.Periods,
		"seed", cmd.scenario.Demand.Seed,
	)

	demand, err := demandgen.Generate(cmd.scenario.GeneratorConfig())
	if err != nil {
		var feasErr *demandgen.FeasibilityError
		if errors.As(err, &feasErr) {
			logger.Error("generated demand exceeds capacity",
				"node", feasErr.Node,
				"period", feasErr.Period,
				"usage", feasErr.Usage,
				"capacity", feasErr.Capacity,
			)
		}
		return nil, fmt.Errorf("generating demand: %w", err)
	}
	logger.Info("demand generated", "rows", len(demand))

	lotCase := cmd.buildCase(demand)
	if err := lotCase.Validate(); err != nil {
		return nil, fmt.Errorf("generated case failed validation: %w", err)
	}

	caseFile := filepath.Join(cmd.scenario.Output.Dir, logging.CaseFilename(start))
	if err := cmd.writeCase(lotCase, caseFile); err != nil {
		return nil, err
	}
	logger.Info("case written", "file", caseFile)

	if cmd.scenario.Output.Catalog {
		if err := cmd.recordRun(ctx, len(demand), caseFile); err != nil {
			// The case file is already on disk; a catalog failure should
			// not discard the run.
			logger.Warn("catalog update failed", "error", err)
		}
	}

	elapsed := time.Since(start)
	logger.Info("generation finished", "elapsed", elapsed)

	return &GenerateResult{
		CaseFile:   caseFile,
		DemandRows: len(demand),
		Elapsed:    elapsed,
	}, nil
}

// buildCase assembles the full case from the scenario's scalar parameters
// and the generated demand table.
func (cmd *GenerateCommand) buildCase(demand []entities.DemandEntry) *entities.Case {
	s := cmd.scenario
	items := s.Scale.Items
	return &entities.Case{
		Nodes:               s.Scale.Nodes,
		Items:               items,
		Periods:             s.Scale.Periods,
		EnableTransfer:      s.Transfer.Enabled,
		ProductionCost:      entities.UniformVector(items, s.Costs.UnitProduction),
		SetupCost:           entities.UniformVector(items, s.Costs.UnitSetup),
		HoldingCost:         entities.UniformVector(items, s.Costs.UnitHolding),
		UnitCapacityUsage:   entities.UniformVector(items, s.Capacity.UnitUsage),
		SetupCapacityUsage:  entities.UniformVector(items, s.Capacity.SetupUsage),
		DefaultCapacity:     s.Capacity.Default,
		DefaultInitialStock: s.Capacity.DefaultInitStock,
		Demand:              demand,
		Solver: entities.SolverParams{
			MIPGap:        s.Solver.MIPGap,
			TimeLimitSec:  s.Solver.TimeLimitSec,
			Threads:       s.Solver.Threads,
			SeparationEps: s.Solver.SeparationEps,
			MaxIterations: s.Solver.MaxIterations,
		},
	}
}

func (cmd *GenerateCommand) writeCase(lotCase *entities.Case, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating case file: %w", err)
	}
	defer f.Close()

	if err := csvcase.Emit(f, lotCase); err != nil {
		return fmt.Errorf("writing case: %w", err)
	}
	return nil
}

func (cmd *GenerateCommand) recordRun(ctx context.Context, demandRows int, caseFile string) error {
	cat, err := catalog.Open(cmd.scenario.Output.Dir)
	if err != nil {
		return err
	}
	defer cat.Close()

	_, err = cat.Record(ctx, catalog.Run{
		Mode:        cmd.scenario.Demand.Mode,
		Seed:        cmd.scenario.Demand.Seed,
		Nodes:       cmd.scenario.Scale.Nodes,
		Items:       cmd.scenario.Scale.Items,
		Periods:     cmd.scenario.Scale.Periods,
		Intensity:   cmd.scenario.Demand.Intensity,
		Utilization: cmd.scenario.Demand.Utilization,
		DemandRows:  demandRows,
		CaseFile:    caseFile,
	})
	return err
}
