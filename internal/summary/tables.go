package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/reportoor/pkg/result"
)

// SuiteFormatter formats per-suite results as a table.
type SuiteFormatter struct {
	log      logrus.FieldLogger
	renderer Renderer
	colors   *ColorHelper
}

// NewSuiteFormatter creates a new suite table formatter.
func NewSuiteFormatter(log logrus.FieldLogger, renderer Renderer) *SuiteFormatter {
	return &SuiteFormatter{
		log:      log.WithField("component", "summary.suite_formatter"),
		renderer: renderer,
		colors:   NewColorHelper(),
	}
}

// Format converts suite groups into a formatted table string with a
// failure detail section when anything went wrong.
func (f *SuiteFormatter) Format(groups []result.SuiteGroup) string {
	if len(groups) == 0 {
		return "No tests executed"
	}

	var (
		headers = []string{"Suite", "Tests", "Passed", "Failed", "Errors", "Skipped", "Duration"}
		rows    = make([][]string, 0, len(groups))
		faulted = make([]result.Record, 0)
	)

	for _, group := range groups {
		tally := tallyGroup(group)

		for _, rec := range group.Records {
			if rec.Outcome == result.OutcomeFailure || rec.Outcome == result.OutcomeError {
				faulted = append(faulted, rec)
			}
		}

		rows = append(rows, []string{
			group.Suite,
			f.colors.Bold(fmt.Sprintf("%d", len(group.Records))),
			f.passCell(tally.passed),
			f.faultCell(tally.failed),
			f.faultCell(tally.errored),
			f.skipCell(tally.skipped),
			Duration(tally.elapsed),
		})
	}

	output := "\n" + f.colors.Header("▸ Suite Results") + "\n\n" + f.renderer.RenderToString(headers, rows)

	// Add detailed failure section if there are any failures
	if len(faulted) > 0 {
		output += f.formatFaultDetails(faulted)
	}

	return output
}

func (f *SuiteFormatter) passCell(n int) string {
	text := fmt.Sprintf("%d", n)
	if n > 0 {
		return f.colors.Success(text)
	}
	return text
}

func (f *SuiteFormatter) faultCell(n int) string {
	text := fmt.Sprintf("%d", n)
	if n > 0 {
		return f.colors.Failure(text)
	}
	return f.colors.Success(text)
}

func (f *SuiteFormatter) skipCell(n int) string {
	text := fmt.Sprintf("%d", n)
	if n > 0 {
		return f.colors.Warning(text)
	}
	return text
}

// formatFaultDetails creates a detailed section listing every failed or
// errored test
func (f *SuiteFormatter) formatFaultDetails(records []result.Record) string {
	var builder strings.Builder

	builder.WriteString("\n\n" + f.colors.Header("▸ Failure Details") + "\n\n")

	for i, rec := range records {
		if i > 0 {
			builder.WriteString("\n")
		}

		builder.WriteString(fmt.Sprintf("%s %s (%s)\n",
			f.colors.FormatOutcome(rec.Outcome),
			rec.ID,
			Duration(rec.Elapsed),
		))

		if rec.Fault == nil {
			builder.WriteString(fmt.Sprintf("  %s: no fault details recorded\n", f.colors.Failure("Error")))
			continue
		}

		// Truncate long messages
		message := rec.Fault.Message
		if len(message) > 120 {
			message = message[:117] + "..."
		}

		builder.WriteString(fmt.Sprintf("  %s: %s\n", f.colors.Failure(rec.Fault.Kind), message))
	}

	return builder.String()
}

type groupTally struct {
	passed  int
	failed  int
	errored int
	skipped int
	elapsed time.Duration
}

func tallyGroup(group result.SuiteGroup) groupTally {
	var t groupTally

	for _, rec := range group.Records {
		switch rec.Outcome {
		case result.OutcomeSuccess:
			t.passed++
		case result.OutcomeFailure:
			t.failed++
		case result.OutcomeError:
			t.errored++
		case result.OutcomeSkipped:
			t.skipped++
		}

		t.elapsed += rec.Elapsed
	}

	return t
}

// SummaryFormatter formats aggregate run statistics as a table.
type SummaryFormatter struct {
	log      logrus.FieldLogger
	renderer Renderer
	colors   *ColorHelper
}

// NewSummaryFormatter creates a new summary table formatter.
func NewSummaryFormatter(log logrus.FieldLogger, renderer Renderer) *SummaryFormatter {
	return &SummaryFormatter{
		log:      log.WithField("component", "summary.summary_formatter"),
		renderer: renderer,
		colors:   NewColorHelper(),
	}
}

// Format converts a run summary into a formatted table string.
func (f *SummaryFormatter) Format(s result.Summary) string {
	var passRate float64
	if s.Total > 0 {
		passRate = float64(s.Passed) / float64(s.Total) * 100.0
	}

	// Format values with colors
	passedValue := fmt.Sprintf("%d (%s)", s.Passed, f.colors.FormatPercentage(passRate))
	if s.Passed == s.Total {
		passedValue = f.colors.Success(fmt.Sprintf("%d (%.1f%%)", s.Passed, passRate))
	}

	failedValue := fmt.Sprintf("%d", s.Failed)
	if s.Failed > 0 {
		failedValue = f.colors.Failure(failedValue)
	} else {
		failedValue = f.colors.Success(failedValue)
	}

	erroredValue := fmt.Sprintf("%d", s.Errored)
	if s.Errored > 0 {
		erroredValue = f.colors.Failure(erroredValue)
	} else {
		erroredValue = f.colors.Success(erroredValue)
	}

	skippedValue := fmt.Sprintf("%d", s.Skipped)
	if s.Skipped > 0 {
		skippedValue = f.colors.Warning(skippedValue)
	}

	var (
		headers = []string{"Metric", "Value"}
		rows    = [][]string{
			{"Total Tests", f.colors.Bold(fmt.Sprintf("%d", s.Total))},
			{"Passed", passedValue},
			{"Failed", failedValue},
			{"Errors", erroredValue},
			{"Skipped", skippedValue},
			{"Total Duration", Duration(s.Elapsed)},
		}
	)

	return "\n" + f.colors.Header("▸ Summary") + "\n\n" + f.renderer.RenderToString(headers, rows)
}
