// Package result records per-test outcomes, timing and captured output
// across a run and groups them by originating suite.
package result

import (
	"fmt"
	"strings"
	"time"
)

// Outcome classifies how a test finished.
type Outcome string

const (
	// OutcomeSuccess marks a test that passed.
	OutcomeSuccess Outcome = "success"
	// OutcomeFailure marks an assertion failure.
	OutcomeFailure Outcome = "failure"
	// OutcomeError marks an unexpected error raised by the test.
	OutcomeError Outcome = "error"
	// OutcomeSkipped marks a test that was not executed.
	OutcomeSkipped Outcome = "skipped"
)

// Valid reports whether o is one of the defined outcomes.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeSuccess, OutcomeFailure, OutcomeError, OutcomeSkipped:
		return true
	default:
		return false
	}
}

// Fault is the diagnostic payload of a non-success outcome: the error
// category, a short message, and the full formatted trace. Skips carry
// kind "skip" with the reason as message and no trace.
type Fault struct {
	Kind    string
	Message string
	Trace   string
}

// FaultFromError builds a Fault from a Go error, using the concrete type
// name as the kind.
func FaultFromError(err error) Fault {
	if err == nil {
		return Fault{}
	}

	return Fault{
		Kind:    strings.TrimPrefix(fmt.Sprintf("%T", err), "*"),
		Message: err.Error(),
	}
}

// skipFault wraps a skip reason in the diagnostic payload shape.
func skipFault(reason string) Fault {
	return Fault{Kind: "skip", Message: reason}
}

// mainModulePrefix is dropped from suite names so tests defined in an
// entrypoint module report under their bare class name.
const mainModulePrefix = "__main__."

// SplitID derives the owning suite and method name from a fully
// qualified test identifier. The suite is everything before the last
// dot; identifiers without a dot are their own suite.
func SplitID(id string) (suite, method string) {
	idx := strings.LastIndex(id, ".")
	if idx < 0 {
		return id, id
	}

	return strings.TrimPrefix(id[:idx], mainModulePrefix), id[idx+1:]
}

// Record is the snapshot of one completed test. Immutable once the
// collector finalizes it.
type Record struct {
	ID          string
	Description string
	Suite       string
	Outcome     Outcome
	Fault       *Fault
	Elapsed     time.Duration
	Index       int
	Stdout      string
	Stderr      string
}

// Method returns the trailing segment of the test identifier.
func (r Record) Method() string {
	_, method := SplitID(r.ID)

	return method
}
