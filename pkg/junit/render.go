package junit

import (
	"sort"
	"strconv"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/reportoor/pkg/result"
)

// Renderer turns suite groups into documents, computing the suite-level
// rollups (test count, summed time, failure and error counts).
type Renderer interface {
	Suite(group result.SuiteGroup) *TestSuite
	All(groups []result.SuiteGroup) *TestSuites
}

// RenderOption configures a renderer.
type RenderOption func(*renderer)

// WithSuffix appends the run-qualifying suffix to suite names. An empty
// suffix leaves names bare.
func WithSuffix(suffix string) RenderOption {
	return func(r *renderer) {
		r.suffix = suffix
	}
}

// WithAggregateOutput attaches the whole-run captured output at suite
// level. Used when per-test capture is disabled; the blocks are emitted
// even when empty.
func WithAggregateOutput(stdout, stderr string) RenderOption {
	return func(r *renderer) {
		r.aggregate = true
		r.aggStdout = stdout
		r.aggStderr = stderr
	}
}

// WithProperties attaches run-level properties to every suite, sorted
// by name for deterministic output.
func WithProperties(props map[string]string) RenderOption {
	return func(r *renderer) {
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)

		r.props = make([]Property, 0, len(names))
		for _, name := range names {
			r.props = append(r.props, Property{Name: name, Value: props[name]})
		}
	}
}

// WithStripANSI removes ANSI escape sequences from messages, traces and
// captured output before they are embedded.
func WithStripANSI(enabled bool) RenderOption {
	return func(r *renderer) {
		r.stripANSI = enabled
	}
}

// renderer implements Renderer.
type renderer struct {
	log       logrus.FieldLogger
	suffix    string
	aggregate bool
	aggStdout string
	aggStderr string
	props     []Property
	stripANSI bool
}

// NewRenderer creates a document renderer.
func NewRenderer(log logrus.FieldLogger, opts ...RenderOption) Renderer {
	r := &renderer{
		log: log.WithField("component", "junit_renderer"),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Suite renders one suite group as a standalone testsuite element.
func (r *renderer) Suite(group result.SuiteGroup) *TestSuite {
	suite := &TestSuite{
		Name:  r.suiteName(group.Suite),
		Tests: len(group.Records),
		Cases: make([]TestCase, 0, len(group.Records)),
	}

	var total time.Duration

	for _, rec := range group.Records {
		total += rec.Elapsed

		switch rec.Outcome {
		case result.OutcomeFailure:
			suite.Failures++
		case result.OutcomeError:
			suite.Errors++
		}

		suite.Cases = append(suite.Cases, r.testCase(group.Suite, rec))
	}

	suite.Time = formatSeconds(total)

	if len(r.props) > 0 {
		suite.Properties = &Properties{Properties: r.props}
	}

	if r.aggregate {
		suite.SystemOut = &Output{Content: r.clean(r.aggStdout)}
		suite.SystemErr = &Output{Content: r.clean(r.aggStderr)}
	}

	r.log.WithFields(logrus.Fields{
		"suite":    group.Suite,
		"tests":    suite.Tests,
		"failures": suite.Failures,
		"errors":   suite.Errors,
	}).Debug("rendered suite")

	return suite
}

// All renders the combined document with every suite nested, in the
// order the groups are given.
func (r *renderer) All(groups []result.SuiteGroup) *TestSuites {
	combined := &TestSuites{
		Suites: make([]TestSuite, 0, len(groups)),
	}

	for _, group := range groups {
		combined.Suites = append(combined.Suites, *r.Suite(group))
	}

	return combined
}

func (r *renderer) suiteName(suite string) string {
	if r.suffix == "" {
		return suite
	}

	return suite + "-" + r.suffix
}

func (r *renderer) testCase(suite string, rec result.Record) TestCase {
	tc := TestCase{
		Classname: suite,
		Name:      rec.Method(),
		Time:      formatSeconds(rec.Elapsed),
	}

	if rec.Outcome != result.OutcomeSuccess && rec.Fault != nil {
		detail := &Detail{
			Type:    rec.Fault.Kind,
			Message: r.clean(rec.Fault.Message),
			Content: r.clean(rec.Fault.Trace),
		}

		switch rec.Outcome {
		case result.OutcomeFailure:
			tc.Failure = detail
		case result.OutcomeError:
			tc.Error = detail
		case result.OutcomeSkipped:
			detail.Type = "skip"
			detail.Content = ""
			tc.Skipped = detail
		}
	}

	if rec.Stdout != "" {
		tc.SystemOut = &Output{Content: r.clean(rec.Stdout)}
	}
	if rec.Stderr != "" {
		tc.SystemErr = &Output{Content: r.clean(rec.Stderr)}
	}

	return tc
}

func (r *renderer) clean(s string) string {
	if r.stripANSI {
		s = stripansi.Strip(s)
	}

	return Sanitize(s)
}

// formatSeconds renders a duration as seconds with millisecond
// precision, the format time attributes use.
func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

// Compile-time interface compliance check
var _ Renderer = (*renderer)(nil)
