// Command casegen generates feasible-by-construction lot-sizing test cases.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lotsizing/casegen/pkg/infrastructure/config"
	"github.com/lotsizing/casegen/pkg/interfaces/cli/commands"
)

var version = "0.2.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "casegen",
		Short: "Lot-sizing test case generator",
		Long: `casegen generates test instances for the multi-node capacitated
lot-sizing problem. Demand is sampled against estimated per-node capacity so
every emitted case is feasible by construction.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Scenario YAML file (defaults apply when omitted)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newGenerateCmd(),
		newRunsCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadScenario(cmd *cobra.Command) (*config.Scenario, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Load(), nil
	}
	return config.LoadFromFile(path)
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one case file from a scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			applyGenerateFlags(cmd, scenario)

			logLevel, _ := cmd.Flags().GetString("log-level")
			result, err := commands.NewGenerateCommand(scenario, logLevel).Execute(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("wrote %s (%d demand rows) in %s\n",
				result.CaseFile, result.DemandRows, result.Elapsed.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().Int("nodes", 0, "Number of nodes (overrides scenario)")
	cmd.Flags().Int("items", 0, "Number of items (overrides scenario)")
	cmd.Flags().Int("periods", 0, "Number of periods (overrides scenario)")
	cmd.Flags().Uint64("seed", 0, "Random seed (overrides scenario)")
	cmd.Flags().String("mode", "", "Demand mode: capacity, all, sparse, per-item, per-node")
	cmd.Flags().Float64("intensity", -1, "Demand intensity in [0, 1]")
	cmd.Flags().Float64("utilization", -1, "Target capacity utilization in [0, 1]")
	cmd.Flags().String("output", "", "Output directory")
	cmd.Flags().Bool("transfer", false, "Emit transfer cost and bigM tables")

	return cmd
}

// applyGenerateFlags overlays explicitly set flags on top of the loaded
// scenario. Flags not set keep the scenario's values.
func applyGenerateFlags(cmd *cobra.Command, s *config.Scenario) {
	if cmd.Flags().Changed("nodes") {
		s.Scale.Nodes, _ = cmd.Flags().GetInt("nodes")
	}
	if cmd.Flags().Changed("items") {
		s.Scale.Items, _ = cmd.Flags().GetInt("items")
	}
	if cmd.Flags().Changed("periods") {
		s.Scale.Periods, _ = cmd.Flags().GetInt("periods")
	}
	if cmd.Flags().Changed("seed") {
		s.Demand.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	if cmd.Flags().Changed("mode") {
		s.Demand.Mode, _ = cmd.Flags().GetString("mode")
	}
	if cmd.Flags().Changed("intensity") {
		s.Demand.Intensity, _ = cmd.Flags().GetFloat64("intensity")
	}
	if cmd.Flags().Changed("utilization") {
		s.Demand.Utilization, _ = cmd.Flags().GetFloat64("utilization")
	}
	if cmd.Flags().Changed("output") {
		s.Output.Dir, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("transfer") {
		s.Transfer.Enabled, _ = cmd.Flags().GetBool("transfer")
	}
}

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded generation runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			return commands.NewRunsCommand(scenario.Output.Dir, limit, os.Stdout).Execute(cmd.Context())
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum runs to show (0 for all)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("casegen version %s\n", version)
		},
	}
}
