package runner

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethpandaops/reportoor/pkg/junit"
	"github.com/ethpandaops/reportoor/pkg/result"
)

func newTestLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func testConfig(output string, console io.Writer) Config {
	cfg := DefaultConfig()
	cfg.Output = output
	cfg.Console = console
	cfg.Stdout = io.Discard
	cfg.Stderr = io.Discard
	cfg.Suffix = "T"
	cfg.Verbosity = 0

	return cfg
}

func runDemo(t *testing.T, cfg Config) (*Report, string) {
	t.Helper()

	var console *bytes.Buffer
	if cfg.Console == nil {
		console = &bytes.Buffer{}
		cfg.Console = console
	}

	r, err := New(newTestLogger(), cfg)
	require.NoError(t, err)

	report, err := r.Run(context.Background(), NewDemoEngine())
	require.NoError(t, err)

	if buf, ok := cfg.Console.(*bytes.Buffer); ok {
		return report, buf.String()
	}

	return report, ""
}

func parseSuiteFile(t *testing.T, path string) junit.TestSuite {
	t.Helper()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var suite junit.TestSuite
	require.NoError(t, xml.Unmarshal(raw, &suite))

	return suite
}

func TestRunnerWritesDirectoryReports(t *testing.T) {
	dir := t.TempDir()

	report, _ := runDemo(t, testConfig(dir, nil))

	assert.Equal(t, 5, report.Summary.Total)
	assert.Equal(t, 2, report.Summary.Passed)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.Equal(t, 1, report.Summary.Errored)
	assert.Equal(t, 1, report.Summary.Skipped)
	assert.False(t, report.Summary.Successful())

	require.Len(t, report.Groups, 2)
	assert.Equal(t, "demo.ArithmeticSuite", report.Groups[0].Suite)
	assert.Equal(t, "demo.StorageSuite", report.Groups[1].Suite)

	arithmetic := parseSuiteFile(t, filepath.Join(dir, "TEST-demo.ArithmeticSuite-T.xml"))
	assert.Equal(t, "demo.ArithmeticSuite-T", arithmetic.Name)
	assert.Equal(t, 3, arithmetic.Tests)
	assert.Equal(t, 1, arithmetic.Failures)
	assert.Equal(t, 0, arithmetic.Errors)

	storage := parseSuiteFile(t, filepath.Join(dir, "TEST-demo.StorageSuite-T.xml"))
	assert.Equal(t, 2, storage.Tests)
	assert.Equal(t, 0, storage.Failures)
	assert.Equal(t, 1, storage.Errors)
}

func TestRunnerAggregateOutputInSuites(t *testing.T) {
	dir := t.TempDir()

	runDemo(t, testConfig(dir, nil))

	suite := parseSuiteFile(t, filepath.Join(dir, "TEST-demo.ArithmeticSuite-T.xml"))
	require.NotNil(t, suite.SystemOut)
	assert.Contains(t, suite.SystemOut.Content, "2 + 2 = 4")
	require.NotNil(t, suite.SystemErr)
	assert.Contains(t, suite.SystemErr.Content, "fast path enabled")

	for _, c := range suite.Cases {
		assert.Nil(t, c.SystemOut)
		assert.Nil(t, c.SystemErr)
	}
}

func TestRunnerPerTestCapture(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir, nil)
	cfg.PerTestCapture = true

	runDemo(t, cfg)

	suite := parseSuiteFile(t, filepath.Join(dir, "TEST-demo.ArithmeticSuite-T.xml"))
	assert.Nil(t, suite.SystemOut)
	assert.Nil(t, suite.SystemErr)

	require.Len(t, suite.Cases, 3)
	addition := suite.Cases[0]
	require.NotNil(t, addition.SystemOut)
	assert.Equal(t, "2 + 2 = 4\n", addition.SystemOut.Content)

	multiplication := suite.Cases[2]
	require.NotNil(t, multiplication.SystemErr)
	assert.Equal(t, "fast path enabled\n", multiplication.SystemErr.Content)
	assert.Nil(t, multiplication.SystemOut)
}

func TestRunnerDotProgress(t *testing.T) {
	cfg := testConfig(t.TempDir(), nil)
	cfg.Verbosity = 1

	_, console := runDemo(t, cfg)

	assert.Contains(t, console, "Running tests...")
	assert.Contains(t, console, ".F.ES")
	assert.Contains(t, console, "Ran 5 tests in ")
	assert.Contains(t, console, "FAILED (failures=1, errors=1, skipped=1)")
	assert.Contains(t, console, "Generating XML reports...")
}

func TestRunnerVerboseProgress(t *testing.T) {
	cfg := testConfig(t.TempDir(), nil)
	cfg.Verbosity = 2

	_, console := runDemo(t, cfg)

	assert.Contains(t, console, "  Adds two integers ... OK (")
	assert.Contains(t, console, "  Divides with remainder ... FAIL (")
	assert.Contains(t, console, "  Reads a key that does not exist ... ERROR (")
	assert.Contains(t, console, "  Writes to a read-only mount ... SKIP (")
}

func TestRunnerFaultListings(t *testing.T) {
	_, console := runDemo(t, testConfig(t.TempDir(), nil))

	assert.Contains(t, console, separatorThick)
	assert.Contains(t, console, "expected quotient 2, got 3")
	assert.Contains(t, console, "key \"answer\" absent")

	errorAt := strings.Index(console, "ERROR [")
	failAt := strings.Index(console, "FAIL [")
	require.GreaterOrEqual(t, errorAt, 0)
	require.GreaterOrEqual(t, failAt, 0)
	assert.Less(t, errorAt, failAt)
}

func TestRunnerIdentifiersWithoutDescriptions(t *testing.T) {
	cfg := testConfig(t.TempDir(), nil)
	cfg.Verbosity = 2
	cfg.Descriptions = false

	_, console := runDemo(t, cfg)

	assert.Contains(t, console, "  demo.ArithmeticSuite.test_addition ... OK (")
	assert.NotContains(t, console, "Adds two integers")
}

func TestRunnerSingleFileTarget(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(filepath.Join(dir, "out", "results.xml"), nil)

	runDemo(t, cfg)

	raw, err := os.ReadFile(filepath.Join(dir, "out", "results-T.xml"))
	require.NoError(t, err)

	var doc junit.TestSuites
	require.NoError(t, xml.Unmarshal(raw, &doc))
	require.Len(t, doc.Suites, 2)
	assert.Equal(t, "demo.ArithmeticSuite-T", doc.Suites[0].Name)
	assert.Equal(t, "demo.StorageSuite-T", doc.Suites[1].Name)
}

func TestRunnerStreamTarget(t *testing.T) {
	var stream bytes.Buffer

	unused := filepath.Join(t.TempDir(), "unused")
	cfg := testConfig(unused, nil)
	cfg.Stream = &stream

	runDemo(t, cfg)

	out := stream.String()
	assert.Equal(t, 2, strings.Count(out, "<?xml"))
	assert.Contains(t, out, `name="demo.ArithmeticSuite-T"`)
	assert.NoDirExists(t, unused)
}

func TestRunnerDefaultSuffixIsTimestamp(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir, nil)
	cfg.Suffix = ""

	runDemo(t, cfg)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^TEST-demo\.ArithmeticSuite-\d{14}\.xml$`)
	found := false

	for _, entry := range entries {
		if pattern.MatchString(entry.Name()) {
			found = true
		}
	}

	assert.True(t, found, "expected a timestamp-suffixed report, got %v", entries)
}

func TestRunnerTimingDisabled(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir, nil)
	cfg.Timing = false
	cfg.Verbosity = 2

	_, console := runDemo(t, cfg)

	assert.Contains(t, console, "OK (0.000s)")

	suite := parseSuiteFile(t, filepath.Join(dir, "TEST-demo.ArithmeticSuite-T.xml"))
	assert.Equal(t, "0.000", suite.Time)
}

type passingEngine struct{}

func (passingEngine) Run(_ context.Context, c result.Collector) error {
	c.TestStarted("pkg.QuietSuite.test_noop", "Does nothing")
	c.TestSucceeded("pkg.QuietSuite.test_noop")
	c.TestStopped("pkg.QuietSuite.test_noop")

	return nil
}

func TestRunnerVerdictOK(t *testing.T) {
	var console bytes.Buffer

	cfg := testConfig(t.TempDir(), &console)

	r, err := New(newTestLogger(), cfg)
	require.NoError(t, err)

	report, err := r.Run(context.Background(), passingEngine{})
	require.NoError(t, err)

	assert.True(t, report.Summary.Successful())
	assert.Contains(t, console.String(), "Ran 1 test in ")
	assert.Contains(t, console.String(), "\nOK\n")
	assert.NotContains(t, console.String(), "FAILED")
}

type failingEngine struct{}

func (failingEngine) Run(context.Context, result.Collector) error {
	return errors.New("engine exploded")
}

type panickingEngine struct{}

func (panickingEngine) Run(context.Context, result.Collector) error {
	panic("engine lost its mind")
}

func TestRunnerReusableAfterEnginePanic(t *testing.T) {
	cfg := testConfig(t.TempDir(), &bytes.Buffer{})

	r, err := New(newTestLogger(), cfg)
	require.NoError(t, err)

	require.Panics(t, func() {
		_, _ = r.Run(context.Background(), panickingEngine{})
	})

	// The deferred capture release must leave the runner usable.
	report, err := r.Run(context.Background(), passingEngine{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Total)
}

func TestRunnerEngineErrorSkipsReports(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")
	cfg := testConfig(dir, &bytes.Buffer{})

	r, err := New(newTestLogger(), cfg)
	require.NoError(t, err)

	_, err = r.Run(context.Background(), failingEngine{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run test engine")
	assert.Contains(t, err.Error(), "engine exploded")
	assert.NoDirExists(t, dir)
}

func TestDemoEngineHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	collector := result.NewCollector(newTestLogger())

	err := NewDemoEngine().Run(ctx, collector)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, collector.Results())
}
