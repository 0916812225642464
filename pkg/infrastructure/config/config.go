// Package config loads generator scenarios from YAML files with defaults
// and environment variable overrides. A scenario fully describes one case
// generation run; CLI flags may override individual fields afterwards.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lotsizing/casegen/pkg/application/services/demandgen"
)

// Scenario is the top-level YAML document.
type Scenario struct {
	Scale    ScaleConfig    `yaml:"scale"`
	Costs    CostConfig     `yaml:"costs"`
	Capacity CapacityConfig `yaml:"capacity"`
	Demand   DemandConfig   `yaml:"demand"`
	Transfer TransferConfig `yaml:"transfer"`
	Solver   SolverConfig   `yaml:"solver"`
	Output   OutputConfig   `yaml:"output"`
}

// ScaleConfig sets the problem dimensions.
type ScaleConfig struct {
	Nodes   int `yaml:"nodes"`
	Items   int `yaml:"items"`
	Periods int `yaml:"periods"`
}

// CostConfig sets the uniform per-item cost scalars.
type CostConfig struct {
	UnitProduction float64 `yaml:"unit_production"` // cX
	UnitSetup      float64 `yaml:"unit_setup"`      // cY
	UnitHolding    float64 `yaml:"unit_holding"`    // cI
}

// CapacityConfig sets the capacity model.
type CapacityConfig struct {
	Default          float64 `yaml:"default"`
	UnitUsage        float64 `yaml:"unit_usage"`  // sX
	SetupUsage       float64 `yaml:"setup_usage"` // sY
	DefaultInitStock float64 `yaml:"default_initial_stock"`
}

// DemandConfig sets the demand generation parameters.
type DemandConfig struct {
	Mode        string              `yaml:"mode"`
	Seed        uint64              `yaml:"seed"`
	Intensity   float64             `yaml:"intensity"`
	Utilization float64             `yaml:"utilization"`
	Variance    float64             `yaml:"variance"`
	MinAmount   float64             `yaml:"min_amount"`
	MaxAmount   float64             `yaml:"max_amount"`
	Spread      ConcentrationConfig `yaml:"concentration"`
}

// ConcentrationConfig sets the per-axis concentration parameters.
type ConcentrationConfig struct {
	Time float64 `yaml:"time"`
	Node float64 `yaml:"node"`
	Item float64 `yaml:"item"`
}

// TransferConfig enables the transfer tables.
type TransferConfig struct {
	Enabled bool `yaml:"enabled"`
}

// SolverConfig passes through MIP solver parameters.
type SolverConfig struct {
	MIPGap        float64 `yaml:"mip_gap"`
	TimeLimitSec  int     `yaml:"time_limit_sec"`
	Threads       int     `yaml:"threads"`
	SeparationEps float64 `yaml:"sep_violation_eps"`
	MaxIterations int     `yaml:"max_iters"`
}

// OutputConfig controls where artifacts land.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	Catalog bool   `yaml:"catalog"`
}

// Default returns a Scenario with the generator's standard parameters: a
// mid-size instance at 85% utilization with mild concentration.
func Default() *Scenario {
	return &Scenario{
		Scale: ScaleConfig{Nodes: 5, Items: 300, Periods: 20},
		Costs: CostConfig{
			UnitProduction: 1.0,
			UnitSetup:      60.0,
			UnitHolding:    1.0,
		},
		Capacity: CapacityConfig{
			Default:    1440.0,
			UnitUsage:  1.0,
			SetupUsage: 0.0,
		},
		Demand: DemandConfig{
			Mode:        "capacity",
			Seed:        42,
			Intensity:   0.15,
			Utilization: 0.85,
			Variance:    0.3,
			MinAmount:   10.0,
			MaxAmount:   100.0,
			Spread: ConcentrationConfig{
				Time: 0.2,
				Node: 0.3,
				Item: 0.3,
			},
		},
		Solver: SolverConfig{
			MIPGap:        1e-6,
			TimeLimitSec:  60,
			Threads:       0,
			SeparationEps: 1e-8,
			MaxIterations: 50,
		},
		Output: OutputConfig{Dir: "output", Catalog: true},
	}
}

// LoadFromFile loads a scenario from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	scenario := Default()
	if err := yaml.Unmarshal(data, scenario); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}

	applyEnvOverrides(scenario)
	return scenario, nil
}

// Load returns the defaults with environment overrides applied; used when
// no scenario file is given.
func Load() *Scenario {
	scenario := Default()
	applyEnvOverrides(scenario)
	return scenario
}

// Validate checks the bounds the generator relies on having been enforced
// upstream.
func (s *Scenario) Validate() error {
	if s.Scale.Nodes <= 0 || s.Scale.Items <= 0 || s.Scale.Periods <= 0 {
		return fmt.Errorf("scale dimensions must be positive, got (%d, %d, %d)",
			s.Scale.Nodes, s.Scale.Items, s.Scale.Periods)
	}
	if s.Capacity.Default < 0 {
		return fmt.Errorf("default capacity must be non-negative, got %f", s.Capacity.Default)
	}
	if s.Capacity.UnitUsage < 0 || s.Capacity.SetupUsage < 0 {
		return fmt.Errorf("capacity usage parameters must be non-negative, got sX=%f sY=%f",
			s.Capacity.UnitUsage, s.Capacity.SetupUsage)
	}
	if s.Capacity.DefaultInitStock < 0 {
		return fmt.Errorf("default initial stock must be non-negative, got %f", s.Capacity.DefaultInitStock)
	}

	unitRanges := []struct {
		name  string
		value float64
	}{
		{"utilization", s.Demand.Utilization},
		{"intensity", s.Demand.Intensity},
		{"variance", s.Demand.Variance},
		{"time concentration", s.Demand.Spread.Time},
		{"node concentration", s.Demand.Spread.Node},
		{"item concentration", s.Demand.Spread.Item},
	}
	for _, r := range unitRanges {
		if r.value < 0 || r.value > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %f", r.name, r.value)
		}
	}

	if _, err := demandgen.ParseMode(s.Demand.Mode); err != nil {
		return err
	}

	if s.Demand.MinAmount < 0 || s.Demand.MaxAmount < s.Demand.MinAmount {
		return fmt.Errorf("amount range invalid: [%f, %f]", s.Demand.MinAmount, s.Demand.MaxAmount)
	}

	if s.Solver.MIPGap < 0 {
		return fmt.Errorf("mip_gap must be non-negative, got %f", s.Solver.MIPGap)
	}
	if s.Solver.TimeLimitSec <= 0 {
		return fmt.Errorf("time_limit_sec must be positive, got %d", s.Solver.TimeLimitSec)
	}
	if s.Solver.MaxIterations <= 0 {
		return fmt.Errorf("max_iters must be positive, got %d", s.Solver.MaxIterations)
	}

	if s.Output.Dir == "" {
		return fmt.Errorf("output dir must not be empty")
	}

	return nil
}

// GeneratorConfig translates the scenario into the demand generator's
// input. The mode must already have passed Validate.
func (s *Scenario) GeneratorConfig() demandgen.Config {
	mode, _ := demandgen.ParseMode(s.Demand.Mode)
	return demandgen.Config{
		Nodes:               s.Scale.Nodes,
		Items:               s.Scale.Items,
		Periods:             s.Scale.Periods,
		Mode:                mode,
		Seed:                s.Demand.Seed,
		DefaultCapacity:     s.Capacity.Default,
		UnitCapacityUsage:   s.Capacity.UnitUsage,
		SetupCapacityUsage:  s.Capacity.SetupUsage,
		CapacityUtilization: s.Demand.Utilization,
		DemandIntensity:     s.Demand.Intensity,
		TimeConcentration:   s.Demand.Spread.Time,
		NodeConcentration:   s.Demand.Spread.Node,
		ItemConcentration:   s.Demand.Spread.Item,
		DemandSizeVariance:  s.Demand.Variance,
		MinAmount:           s.Demand.MinAmount,
		MaxAmount:           s.Demand.MaxAmount,
	}
}

// applyEnvOverrides applies CASEGEN_* environment variables on top of the
// loaded scenario.
func applyEnvOverrides(s *Scenario) {
	if v := os.Getenv("CASEGEN_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			s.Demand.Seed = n
		}
	}
	if v := os.Getenv("CASEGEN_MODE"); v != "" {
		s.Demand.Mode = v
	}
	if v := os.Getenv("CASEGEN_OUTPUT_DIR"); v != "" {
		s.Output.Dir = v
	}
	if v := os.Getenv("CASEGEN_CATALOG"); v != "" {
		s.Output.Catalog = v == "true" || v == "1"
	}
}
