package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethpandaops/reportoor/internal/actions"
)

var (
	selftestOutput  string
	selftestVerbose bool
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run the built-in demo engine through the pipeline",
	Long: `Run a small scripted set of demo tests through the full collection and
reporting pipeline.

The script covers every outcome (pass, fail, error, skip) and writes on
both output streams, so the generated reports show every element shape.
Useful for checking a CI integration end to end before wiring up a real
engine.

Examples:
  ./bin/reportoor selftest
  ./bin/reportoor selftest --output /tmp/demo-reports`,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := actions.SelfTest(newLogger(selftestVerbose), selftestOutput, true); err != nil {
			return fmt.Errorf("selftest failed: %w", err)
		}
		return nil
	},
}

func init() {
	selftestCmd.Flags().StringVarP(&selftestOutput, "output", "o", "", "Report destination (defaults to the configured output)")
	selftestCmd.Flags().BoolVarP(&selftestVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(selftestCmd)
}
