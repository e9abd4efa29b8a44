// Package actions contains the core business logic for reportoor operations
package actions

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/reportoor/internal/config"
	"github.com/ethpandaops/reportoor/internal/summary"
	"github.com/ethpandaops/reportoor/pkg/events"
	"github.com/ethpandaops/reportoor/pkg/runner"
)

var (
	// ErrEventsPathNotSet is returned when no event log path is provided
	ErrEventsPathNotSet = errors.New("event log path is not set")
	// ErrRunFailed is returned when a replayed run finishes with failures or errors
	ErrRunFailed = errors.New("test run finished with faults")
)

// ReplayOptions control how an event log is replayed into reports
type ReplayOptions struct {
	// EventsPath is the JSONL event log to replay, "-" for stdin
	EventsPath string
	// ConfigFile optionally overlays a YAML config file on the environment
	ConfigFile string
	// Output overrides the configured report destination when set
	Output string
	// Stream writes report documents to stdout instead of files
	Stream bool
	// Suffix overrides the configured report suffix when set
	Suffix string
	// Verbosity overrides the configured console verbosity when >= 0
	Verbosity int
	// PerTestCapture attaches captured output to individual tests instead
	// of whole suites
	PerTestCapture bool
	// NoTiming disables elapsed-time measurement for the run
	NoTiming bool
	// Encoding overrides the configured document charset when set
	Encoding string
	// ShowTables prints suite and summary tables after the run
	ShowTables bool
}

// Replay reads a recorded event log, replays it through the collection
// pipeline and writes XML reports for it
func Replay(log *logrus.Logger, opts ReplayOptions) error {
	if opts.EventsPath == "" {
		return ErrEventsPathNotSet
	}

	cfg, err := config.LoadWithFile(opts.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if opts.Output != "" {
		cfg.Output = opts.Output
	}
	if opts.Suffix != "" {
		cfg.Suffix = opts.Suffix
	}
	if opts.Verbosity >= 0 {
		cfg.Verbosity = opts.Verbosity
	}
	if opts.PerTestCapture {
		cfg.PerTestCapture = true
	}
	if opts.NoTiming {
		cfg.Timing = false
	}
	if opts.Encoding != "" {
		cfg.Encoding = opts.Encoding
	}

	recorded, err := readEvents(opts.EventsPath)
	if err != nil {
		return err
	}

	runnerCfg := cfg.RunnerConfig()
	if opts.Stream {
		runnerCfg.Stream = os.Stdout
	}

	run, err := runner.New(log, runnerCfg)
	if err != nil {
		return fmt.Errorf("failed to create runner: %w", err)
	}

	report, err := run.Run(context.Background(), events.NewReplayEngine(recorded))
	if err != nil {
		return fmt.Errorf("failed to replay event log: %w", err)
	}

	if opts.ShowTables {
		printReport(log, report)
	}

	if !report.Summary.Successful() {
		return fmt.Errorf("%w: failures=%d, errors=%d",
			ErrRunFailed, report.Summary.Failed, report.Summary.Errored)
	}

	return nil
}

// readEvents decodes the event log from a file or stdin
func readEvents(path string) ([]events.Event, error) {
	if path == "-" {
		return events.Decode(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return events.Decode(f)
}

// printReport renders the suite and summary tables to stdout
func printReport(log *logrus.Logger, report *runner.Report) {
	renderer := summary.NewRenderer(log)
	formatter := summary.NewFormatter(
		os.Stdout,
		summary.NewSuiteFormatter(log, renderer),
		summary.NewSummaryFormatter(log, renderer),
	)

	formatter.PrintSuiteResults(report.Groups)
	formatter.PrintSummary(report.Summary)
}
