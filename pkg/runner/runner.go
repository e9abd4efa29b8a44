// Package runner orchestrates a full test run: stream capture,
// progress output, result collection and report generation.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/reportoor/pkg/capture"
	"github.com/ethpandaops/reportoor/pkg/junit"
	"github.com/ethpandaops/reportoor/pkg/result"
	"github.com/ethpandaops/reportoor/pkg/sink"
)

var (
	separatorThick = strings.Repeat("=", 70)
	separatorThin  = strings.Repeat("-", 70)
)

// Config controls a test run end to end.
type Config struct {
	// Output is the report destination descriptor: a path ending in
	// ".xml" selects a single combined file, anything else a directory
	// of per-suite files. Ignored when Stream is set.
	Output string
	// Stream overrides Output and writes standalone suite documents to
	// the given writer.
	Stream io.Writer
	// Console receives progress text and the run summary. Defaults to
	// os.Stderr.
	Console io.Writer
	// Stdout and Stderr are the process streams test output duplicates
	// onto while being captured. Default os.Stdout and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	// Suffix tags report file names and suite names. Empty selects a
	// timestamp at construction time.
	Suffix string
	// Verbosity selects progress style: 0 silent, 1 dot markers, 2 and
	// above one line per test.
	Verbosity int
	// PerTestCapture attaches captured output to individual test cases
	// instead of one aggregate block per suite.
	PerTestCapture bool
	// Timing records wall-clock durations. When false every duration
	// reports as zero.
	Timing bool
	// Descriptions prefers the engine-supplied test description over
	// the raw identifier in progress and fault listings.
	Descriptions bool
	// Encoding is the charset reports declare and encode to. Empty
	// selects UTF-8.
	Encoding string
	// StripANSI removes terminal escape sequences from report text.
	StripANSI bool
	// Properties lists run-level key/value pairs embedded in every
	// suite element.
	Properties map[string]string
}

// DefaultConfig mirrors the defaults of the reportoor CLI: per-suite
// report files under ./reports, dot progress, timing on.
func DefaultConfig() Config {
	return Config{
		Output:       "reports",
		Verbosity:    1,
		Timing:       true,
		Descriptions: true,
		Encoding:     junit.DefaultEncoding,
	}
}

// Report aggregates everything a run produced: the tallied summary and
// the per-suite record groups behind the generated documents.
type Report struct {
	Summary result.Summary
	Groups  []result.SuiteGroup
}

// Runner executes an engine and turns the collected results into
// reports. A runner handles one run at a time.
type Runner interface {
	Run(ctx context.Context, engine Engine) (*Report, error)
}

type runner struct {
	log     logrus.FieldLogger
	cfg     Config
	encoder *junit.Encoder
	console io.Writer
	stdout  io.Writer
	stderr  io.Writer
}

// New validates the config and creates a runner.
func New(log logrus.FieldLogger, cfg Config) (Runner, error) {
	if cfg.Output == "" {
		cfg.Output = "reports"
	}

	if cfg.Suffix == "" {
		cfg.Suffix = time.Now().Format("20060102150405")
	}

	encoder, err := junit.NewEncoder(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}

	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	return &runner{
		log:     log.WithField("component", "runner"),
		cfg:     cfg,
		encoder: encoder,
		console: console,
		stdout:  stdout,
		stderr:  stderr,
	}, nil
}

// Run captures the standard streams, executes the engine, prints the
// textual summary and writes the XML reports.
func (r *runner) Run(ctx context.Context, engine Engine) (*Report, error) {
	log := r.log.WithField("run_id", uuid.New().String())

	handle := capture.Acquire(log, &r.stdout, &r.stderr)
	defer handle.Release()

	if out, ok := engine.(OutputSink); ok {
		out.SetOutput(r.stdout, r.stderr)
	}

	collector := result.NewCollector(log,
		result.WithTiming(r.cfg.Timing),
		result.WithCapture(handle),
		result.WithPerTestCapture(r.cfg.PerTestCapture),
		result.WithProgress(r.progressPrinter()),
	)

	fmt.Fprintln(r.console)
	fmt.Fprintln(r.console, "Running tests...")
	fmt.Fprintln(r.console, separatorThin)

	if err := collector.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start collector: %w", err)
	}

	log.WithFields(logrus.Fields{
		"output":  r.cfg.Output,
		"suffix":  r.cfg.Suffix,
		"charset": r.encoder.Name(),
	}).Info("Starting test run")

	if err := engine.Run(ctx, collector); err != nil {
		return nil, fmt.Errorf("failed to run test engine: %w", err)
	}

	if err := collector.Stop(); err != nil {
		return nil, fmt.Errorf("failed to stop collector: %w", err)
	}

	report := &Report{
		Summary: collector.Summary(),
		Groups:  collector.Suites(),
	}

	r.writeRunSummary(collector.Results(), report.Summary)

	fmt.Fprintln(r.console, "Generating XML reports...")

	if err := r.writeReports(log, handle, report.Groups); err != nil {
		return report, err
	}

	log.WithFields(logrus.Fields{
		"total":    report.Summary.Total,
		"failures": report.Summary.Failed,
		"errors":   report.Summary.Errored,
		"skipped":  report.Summary.Skipped,
		"elapsed":  report.Summary.Elapsed,
	}).Info("Test run complete")

	return report, nil
}

// progressPrinter returns the per-test callback matching the configured
// verbosity, or nil for silent runs.
func (r *runner) progressPrinter() func(result.Record) {
	switch {
	case r.cfg.Verbosity >= 2:
		return func(rec result.Record) {
			fmt.Fprintf(r.console, "  %s ... %s (%.3fs)\n",
				r.describe(rec), verboseWord(rec.Outcome), rec.Elapsed.Seconds())
		}
	case r.cfg.Verbosity == 1:
		return func(rec result.Record) {
			fmt.Fprint(r.console, shortMark(rec.Outcome))
		}
	default:
		return nil
	}
}

func (r *runner) describe(rec result.Record) string {
	if r.cfg.Descriptions {
		return rec.Description
	}

	return rec.ID
}

// writeRunSummary prints the fault listings, the tally line and the
// final verdict.
func (r *runner) writeRunSummary(records []result.Record, summary result.Summary) {
	if r.cfg.Verbosity >= 1 {
		fmt.Fprintln(r.console)
	}

	r.writeFaultList("ERROR", filterByOutcome(records, result.OutcomeError))
	r.writeFaultList("FAIL", filterByOutcome(records, result.OutcomeFailure))

	fmt.Fprintln(r.console, separatorThin)

	plural := "s"
	if summary.Total == 1 {
		plural = ""
	}

	fmt.Fprintf(r.console, "Ran %d test%s in %.3fs\n", summary.Total, plural, summary.Elapsed.Seconds())
	fmt.Fprintln(r.console)

	infos := make([]string, 0, 3)

	if summary.Successful() {
		fmt.Fprint(r.console, "OK")
	} else {
		fmt.Fprint(r.console, "FAILED")

		if summary.Failed > 0 {
			infos = append(infos, fmt.Sprintf("failures=%d", summary.Failed))
		}

		if summary.Errored > 0 {
			infos = append(infos, fmt.Sprintf("errors=%d", summary.Errored))
		}
	}

	if summary.Skipped > 0 {
		infos = append(infos, fmt.Sprintf("skipped=%d", summary.Skipped))
	}

	if len(infos) > 0 {
		fmt.Fprintf(r.console, " (%s)\n", strings.Join(infos, ", "))
	} else {
		fmt.Fprintln(r.console)
	}

	fmt.Fprintln(r.console)
}

// writeFaultList prints one block per record: separator, headline with
// elapsed time and description, separator, trace.
func (r *runner) writeFaultList(flavour string, records []result.Record) {
	for _, rec := range records {
		trace := ""
		if rec.Fault != nil {
			trace = rec.Fault.Trace
		}

		fmt.Fprintln(r.console, separatorThick)
		fmt.Fprintf(r.console, "%s [%.3fs]: %s\n", flavour, rec.Elapsed.Seconds(), r.describe(rec))
		fmt.Fprintln(r.console, separatorThin)
		fmt.Fprintln(r.console, trace)
	}
}

// writeReports renders the grouped results and delivers them to the
// configured destination.
func (r *runner) writeReports(log logrus.FieldLogger, handle *capture.Handle, groups []result.SuiteGroup) error {
	opts := []junit.RenderOption{
		junit.WithSuffix(r.cfg.Suffix),
		junit.WithStripANSI(r.cfg.StripANSI),
	}

	if len(r.cfg.Properties) > 0 {
		opts = append(opts, junit.WithProperties(r.cfg.Properties))
	}

	if !r.cfg.PerTestCapture {
		opts = append(opts, junit.WithAggregateOutput(handle.Stdout(), handle.Stderr()))
	}

	renderer := junit.NewRenderer(log, opts...)
	dest := sink.New(log, r.target(), r.encoder, r.cfg.Suffix)

	if err := dest.Write(groups, renderer); err != nil {
		return err
	}

	log.WithField("suites", len(groups)).Info("Reports generated")

	return nil
}

func (r *runner) target() sink.Target {
	if r.cfg.Stream != nil {
		return sink.StreamTarget{W: r.cfg.Stream}
	}

	return sink.TargetForPath(r.cfg.Output)
}

func filterByOutcome(records []result.Record, outcome result.Outcome) []result.Record {
	filtered := make([]result.Record, 0, len(records))

	for _, rec := range records {
		if rec.Outcome == outcome {
			filtered = append(filtered, rec)
		}
	}

	return filtered
}

func verboseWord(o result.Outcome) string {
	switch o {
	case result.OutcomeSuccess:
		return "OK"
	case result.OutcomeFailure:
		return "FAIL"
	case result.OutcomeError:
		return "ERROR"
	case result.OutcomeSkipped:
		return "SKIP"
	default:
		return string(o)
	}
}

func shortMark(o result.Outcome) string {
	switch o {
	case result.OutcomeSuccess:
		return "."
	case result.OutcomeFailure:
		return "F"
	case result.OutcomeError:
		return "E"
	case result.OutcomeSkipped:
		return "S"
	default:
		return "?"
	}
}

// Compile-time interface compliance check
var _ Runner = (*runner)(nil)
