package actions

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"REPORTOOR_OUTPUT",
		"REPORTOOR_SUFFIX",
		"REPORTOOR_VERBOSITY",
		"REPORTOOR_PER_TEST_CAPTURE",
		"REPORTOOR_TIMING",
		"REPORTOOR_ENCODING",
		"REPORTOOR_STRIP_ANSI",
	} {
		t.Setenv(key, "")
	}
}

func writeEventLog(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "run.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return path
}

const passingLog = `{"action":"start","test":"pkg.LoginSuite.test_ok"}
{"action":"pass","test":"pkg.LoginSuite.test_ok"}
{"action":"stop","test":"pkg.LoginSuite.test_ok"}
`

const failingLog = `{"action":"start","test":"pkg.LoginSuite.test_bad"}
{"action":"fail","test":"pkg.LoginSuite.test_bad","kind":"AssertionError","message":"nope"}
{"action":"stop","test":"pkg.LoginSuite.test_bad"}
`

func TestReplayWritesReports(t *testing.T) {
	clearEnv(t)

	output := t.TempDir()
	opts := ReplayOptions{
		EventsPath: writeEventLog(t, passingLog),
		Output:     output,
		Suffix:     "T",
		Verbosity:  0,
	}

	require.NoError(t, Replay(newTestLogger(), opts))
	assert.FileExists(t, filepath.Join(output, "TEST-pkg.LoginSuite-T.xml"))
}

func TestReplayFailedRunReturnsError(t *testing.T) {
	clearEnv(t)

	opts := ReplayOptions{
		EventsPath: writeEventLog(t, failingLog),
		Output:     t.TempDir(),
		Suffix:     "T",
		Verbosity:  0,
	}

	err := Replay(newTestLogger(), opts)
	require.ErrorIs(t, err, ErrRunFailed)
	assert.Contains(t, err.Error(), "failures=1")
}

func TestReplayMissingEventsPath(t *testing.T) {
	clearEnv(t)

	err := Replay(newTestLogger(), ReplayOptions{Verbosity: -1})
	require.ErrorIs(t, err, ErrEventsPathNotSet)
}

func TestReplayMissingEventLog(t *testing.T) {
	clearEnv(t)

	opts := ReplayOptions{
		EventsPath: filepath.Join(t.TempDir(), "absent.jsonl"),
		Output:     t.TempDir(),
		Verbosity:  0,
	}

	err := Replay(newTestLogger(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open event log")
}

func TestSelfTestWritesReports(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPORTOOR_SUFFIX", "T")

	output := t.TempDir()

	require.NoError(t, SelfTest(newTestLogger(), output, false))
	assert.FileExists(t, filepath.Join(output, "TEST-demo.ArithmeticSuite-T.xml"))
	assert.FileExists(t, filepath.Join(output, "TEST-demo.StorageSuite-T.xml"))
}
