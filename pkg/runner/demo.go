package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/ethpandaops/reportoor/pkg/result"
)

// DemoEngine runs a small scripted set of tests covering every outcome,
// with output on both streams. The selftest command uses it to exercise
// the full collection and reporting pipeline without an external
// engine.
type DemoEngine struct {
	stdout io.Writer
	stderr io.Writer
}

// NewDemoEngine creates a demo engine. Output is discarded until the
// runner provides the captured streams.
func NewDemoEngine() *DemoEngine {
	return &DemoEngine{stdout: io.Discard, stderr: io.Discard}
}

// SetOutput routes the scripted test output through the given streams.
func (e *DemoEngine) SetOutput(stdout, stderr io.Writer) {
	e.stdout = stdout
	e.stderr = stderr
}

type demoStep struct {
	id          string
	description string
	emit        func(e *DemoEngine)
	outcome     func(c result.Collector, id string)
}

func demoScript() []demoStep {
	return []demoStep{
		{
			id:          "demo.ArithmeticSuite.test_addition",
			description: "Adds two integers",
			emit: func(e *DemoEngine) {
				fmt.Fprintln(e.stdout, "2 + 2 = 4")
			},
			outcome: func(c result.Collector, id string) {
				c.TestSucceeded(id)
			},
		},
		{
			id:          "demo.ArithmeticSuite.test_division",
			description: "Divides with remainder",
			outcome: func(c result.Collector, id string) {
				c.TestFailed(id, result.Fault{
					Kind:    "AssertionFault",
					Message: "expected quotient 2, got 3",
					Trace:   "assertion failed in test_division\nexpected quotient 2, got 3\n",
				})
			},
		},
		{
			id:          "demo.ArithmeticSuite.test_multiplication",
			description: "Multiplies via the fast path",
			emit: func(e *DemoEngine) {
				fmt.Fprintln(e.stderr, "fast path enabled")
			},
			outcome: func(c result.Collector, id string) {
				c.TestSucceeded(id)
			},
		},
		{
			id:          "demo.StorageSuite.test_read_missing_key",
			description: "Reads a key that does not exist",
			outcome: func(c result.Collector, id string) {
				c.TestErrored(id, result.Fault{
					Kind:    "KeyNotFoundFault",
					Message: "key \"answer\" absent",
					Trace:   "lookup failed in test_read_missing_key\nkey \"answer\" absent\n",
				})
			},
		},
		{
			id:          "demo.StorageSuite.test_write_readonly",
			description: "Writes to a read-only mount",
			outcome: func(c result.Collector, id string) {
				c.TestSkipped(id, "storage mounted read-only")
			},
		},
	}
}

// Run plays the script in order, one test at a time.
func (e *DemoEngine) Run(ctx context.Context, c result.Collector) error {
	for _, step := range demoScript() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c.TestStarted(step.id, step.description)

		if step.emit != nil {
			step.emit(e)
		}

		step.outcome(c, step.id)
		c.TestStopped(step.id)
	}

	return nil
}

// Compile-time interface compliance checks
var (
	_ Engine     = (*DemoEngine)(nil)
	_ OutputSink = (*DemoEngine)(nil)
)
