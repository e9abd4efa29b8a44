package events

import (
	"context"
	"fmt"
	"io"

	"github.com/ethpandaops/reportoor/pkg/result"
)

// ReplayEngine feeds a decoded event log through a collector in order.
// It satisfies the runner's engine contract; output events write to the
// streams the runner hands over, so captured output matches what a live
// engine would have produced.
type ReplayEngine struct {
	events []Event
	stdout io.Writer
	stderr io.Writer
}

// NewReplayEngine creates an engine over already decoded events.
func NewReplayEngine(events []Event) *ReplayEngine {
	return &ReplayEngine{events: events, stdout: io.Discard, stderr: io.Discard}
}

// SetOutput routes output events through the given streams.
func (e *ReplayEngine) SetOutput(stdout, stderr io.Writer) {
	e.stdout = stdout
	e.stderr = stderr
}

// Run applies every event to the collector. Fault kinds default to the
// action name when the log omits them.
func (e *ReplayEngine) Run(ctx context.Context, c result.Collector) error {
	for _, ev := range e.events {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		switch ev.Action {
		case ActionStart:
			c.TestStarted(ev.Test, ev.Description)
		case ActionPass:
			c.TestSucceeded(ev.Test)
		case ActionFail:
			c.TestFailed(ev.Test, faultFor(ev, "failure"))
		case ActionError:
			c.TestErrored(ev.Test, faultFor(ev, "error"))
		case ActionSkip:
			c.TestSkipped(ev.Test, ev.Reason)
		case ActionStop:
			c.TestStopped(ev.Test)
		case ActionOutput:
			if err := e.writeOutput(ev); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *ReplayEngine) writeOutput(ev Event) error {
	dest := e.stdout
	if ev.Stream == "stderr" {
		dest = e.stderr
	}

	if _, err := io.WriteString(dest, ev.Text); err != nil {
		return fmt.Errorf("failed to replay output: %w", err)
	}

	return nil
}

func faultFor(ev Event, defaultKind string) result.Fault {
	kind := ev.Kind
	if kind == "" {
		kind = defaultKind
	}

	return result.Fault{Kind: kind, Message: ev.Message, Trace: ev.Trace}
}
