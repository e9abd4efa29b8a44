package summary

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/ethpandaops/reportoor/pkg/result"
)

func newTestLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func sampleGroups() []result.SuiteGroup {
	return []result.SuiteGroup{
		{
			Suite: "pkg.OrderSuite",
			Records: []result.Record{
				{
					ID:      "pkg.OrderSuite.test_submit",
					Suite:   "pkg.OrderSuite",
					Outcome: result.OutcomeSuccess,
					Elapsed: 120 * time.Millisecond,
					Index:   0,
				},
				{
					ID:      "pkg.OrderSuite.test_rollback",
					Suite:   "pkg.OrderSuite",
					Outcome: result.OutcomeFailure,
					Fault: &result.Fault{
						Kind:    "AssertionError",
						Message: "rollback left a dangling lock",
						Trace:   "trace line\n",
					},
					Elapsed: 80 * time.Millisecond,
					Index:   1,
				},
			},
		},
		{
			Suite: "pkg.AuditSuite",
			Records: []result.Record{
				{
					ID:      "pkg.AuditSuite.test_log_rotation",
					Suite:   "pkg.AuditSuite",
					Outcome: result.OutcomeSkipped,
					Fault:   &result.Fault{Kind: "skip", Message: "rotation disabled"},
					Index:   2,
				},
			},
		},
	}
}

func TestSuiteFormatter_Format(t *testing.T) {
	// Disable colors for consistent testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	log := newTestLogger()
	formatter := NewSuiteFormatter(log, NewRenderer(log))

	output := formatter.Format(sampleGroups())

	assert.Contains(t, output, "▸ Suite Results")
	assert.Contains(t, output, "pkg.OrderSuite")
	assert.Contains(t, output, "pkg.AuditSuite")
	assert.Contains(t, output, "SUITE")
	assert.Contains(t, output, "DURATION")

	// Faulted tests get a detail section
	assert.Contains(t, output, "▸ Failure Details")
	assert.Contains(t, output, "✗ FAIL pkg.OrderSuite.test_rollback")
	assert.Contains(t, output, "AssertionError: rollback left a dangling lock")
}

func TestSuiteFormatter_FormatEmpty(t *testing.T) {
	log := newTestLogger()
	formatter := NewSuiteFormatter(log, NewRenderer(log))

	assert.Equal(t, "No tests executed", formatter.Format(nil))
}

func TestSuiteFormatter_FormatAllPassing(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	log := newTestLogger()
	formatter := NewSuiteFormatter(log, NewRenderer(log))

	groups := []result.SuiteGroup{
		{
			Suite: "pkg.CleanSuite",
			Records: []result.Record{
				{
					ID:      "pkg.CleanSuite.test_ok",
					Suite:   "pkg.CleanSuite",
					Outcome: result.OutcomeSuccess,
					Elapsed: 5 * time.Millisecond,
				},
			},
		},
	}

	output := formatter.Format(groups)
	assert.Contains(t, output, "pkg.CleanSuite")
	assert.NotContains(t, output, "▸ Failure Details")
}

func TestSuiteFormatter_TruncatesLongMessages(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	log := newTestLogger()
	formatter := NewSuiteFormatter(log, NewRenderer(log))

	groups := []result.SuiteGroup{
		{
			Suite: "pkg.NoisySuite",
			Records: []result.Record{
				{
					ID:      "pkg.NoisySuite.test_verbose_failure",
					Suite:   "pkg.NoisySuite",
					Outcome: result.OutcomeFailure,
					Fault: &result.Fault{
						Kind:    "AssertionError",
						Message: strings.Repeat("x", 200),
					},
				},
			},
		},
	}

	output := formatter.Format(groups)
	assert.Contains(t, output, strings.Repeat("x", 117)+"...")
	assert.NotContains(t, output, strings.Repeat("x", 118))
}

func TestSummaryFormatter_Format(t *testing.T) {
	// Disable colors for consistent testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	log := newTestLogger()
	formatter := NewSummaryFormatter(log, NewRenderer(log))

	output := formatter.Format(result.Summary{
		Total:   5,
		Passed:  2,
		Failed:  1,
		Errored: 1,
		Skipped: 1,
		Elapsed: 1500 * time.Millisecond,
	})

	assert.Contains(t, output, "▸ Summary")
	assert.Contains(t, output, "Total Tests")
	assert.Contains(t, output, "40.0%")
	assert.Contains(t, output, "Total Duration")
	assert.Contains(t, output, "1.5s")
}

func TestSummaryFormatter_FormatAllPassed(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	log := newTestLogger()
	formatter := NewSummaryFormatter(log, NewRenderer(log))

	output := formatter.Format(result.Summary{
		Total:   3,
		Passed:  3,
		Elapsed: 90 * time.Millisecond,
	})

	assert.Contains(t, output, "3 (100.0%)")
	assert.Contains(t, output, "90ms")
}

func TestSummaryFormatter_FormatEmptyRun(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	log := newTestLogger()
	formatter := NewSummaryFormatter(log, NewRenderer(log))

	output := formatter.Format(result.Summary{})
	assert.Contains(t, output, "0 (0.0%)")
}
