package actions

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/reportoor/internal/config"
	"github.com/ethpandaops/reportoor/pkg/runner"
)

// SelfTest exercises the full collection and reporting pipeline with the
// built-in demonstration engine. The script covers every outcome, so the
// generated reports intentionally contain a failure and an error.
func SelfTest(log *logrus.Logger, output string, showTables bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if output != "" {
		cfg.Output = output
	}

	run, err := runner.New(log, cfg.RunnerConfig())
	if err != nil {
		return fmt.Errorf("failed to create runner: %w", err)
	}

	report, err := run.Run(context.Background(), runner.NewDemoEngine())
	if err != nil {
		return fmt.Errorf("failed to run demo engine: %w", err)
	}

	if showTables {
		printReport(log, report)
	}

	fmt.Printf("\n✅ Demo reports written to '%s'\n", cfg.Output)
	return nil
}
