package summary

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/ethpandaops/reportoor/pkg/result"
)

// Formatter provides clean, human-friendly output
type Formatter interface {
	PrintPhase(phase string)
	PrintProgress(message string, duration time.Duration)
	PrintSuccess(message string)
	PrintError(message string, err error)
	PrintSuiteResults(groups []result.SuiteGroup)
	PrintSummary(s result.Summary)
}

type formatter struct {
	writer io.Writer

	suiteFormatter   *SuiteFormatter
	summaryFormatter *SummaryFormatter

	// Colors
	green *color.Color
	red   *color.Color
	blue  *color.Color
	gray  *color.Color
}

// NewFormatter creates a new output formatter
func NewFormatter(
	writer io.Writer,
	suiteFormatter *SuiteFormatter,
	summaryFormatter *SummaryFormatter,
) Formatter {
	return &formatter{
		writer:           writer,
		suiteFormatter:   suiteFormatter,
		summaryFormatter: summaryFormatter,
		green:            color.New(color.FgGreen),
		red:              color.New(color.FgRed),
		blue:             color.New(color.FgBlue),
		gray:             color.New(color.FgHiBlack),
	}
}

// PrintPhase prints phase separator
func (f *formatter) PrintPhase(phase string) {
	f.blue.Fprintf(f.writer, "\n▸ %s\n", phase)
}

// PrintProgress prints progress with timing
func (f *formatter) PrintProgress(message string, duration time.Duration) {
	if duration > 0 {
		f.gray.Fprintf(f.writer, "%s (%s)\n", message, Duration(duration))
	} else {
		fmt.Fprintf(f.writer, "%s\n", message)
	}
}

// PrintSuccess prints green message
func (f *formatter) PrintSuccess(message string) {
	f.green.Fprintf(f.writer, "%s\n", message)
}

// PrintError prints red message + error details
func (f *formatter) PrintError(message string, err error) {
	f.red.Fprintf(f.writer, "%s", message)
	if err != nil {
		f.red.Fprintf(f.writer, ": %v", err)
	}
	fmt.Fprintf(f.writer, "\n")
}

// PrintSuiteResults prints the per-suite results table
func (f *formatter) PrintSuiteResults(groups []result.SuiteGroup) {
	fmt.Fprintln(f.writer, f.suiteFormatter.Format(groups))
}

// PrintSummary prints the aggregate statistics table
func (f *formatter) PrintSummary(s result.Summary) {
	fmt.Fprintln(f.writer, f.summaryFormatter.Format(s))
}

// Compile-time interface compliance check
var _ Formatter = (*formatter)(nil)
