package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "reports", cfg.Output)
	assert.Empty(t, cfg.Suffix)
	assert.Equal(t, 1, cfg.Verbosity)
	assert.False(t, cfg.PerTestCapture)
	assert.True(t, cfg.Timing)
	assert.Equal(t, "UTF-8", cfg.Encoding)
	assert.False(t, cfg.StripANSI)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPORTOOR_OUTPUT", "out/results.xml")
	t.Setenv("REPORTOOR_SUFFIX", "nightly")
	t.Setenv("REPORTOOR_VERBOSITY", "2")
	t.Setenv("REPORTOOR_PER_TEST_CAPTURE", "true")
	t.Setenv("REPORTOOR_TIMING", "false")
	t.Setenv("REPORTOOR_ENCODING", "ISO-8859-1")
	t.Setenv("REPORTOOR_STRIP_ANSI", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "out/results.xml", cfg.Output)
	assert.Equal(t, "nightly", cfg.Suffix)
	assert.Equal(t, 2, cfg.Verbosity)
	assert.True(t, cfg.PerTestCapture)
	assert.False(t, cfg.Timing)
	assert.Equal(t, "ISO-8859-1", cfg.Encoding)
	assert.True(t, cfg.StripANSI)
}

func TestLoadInvalidVerbosity(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPORTOOR_VERBOSITY", "loud")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REPORTOOR_VERBOSITY")
}

func TestLoadInvalidBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPORTOOR_TIMING", "maybe")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REPORTOOR_TIMING")
}

func TestLoadWithFileOverlay(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPORTOOR_OUTPUT", "from-env")
	t.Setenv("REPORTOOR_VERBOSITY", "2")

	path := filepath.Join(t.TempDir(), "reportoor.yaml")
	content := `output: from-file
strip_ansi: true
properties:
  branch: main
  zone: eu-west
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	// File wins where set, environment holds elsewhere.
	assert.Equal(t, "from-file", cfg.Output)
	assert.True(t, cfg.StripANSI)
	assert.Equal(t, 2, cfg.Verbosity)
	assert.Equal(t, map[string]string{"branch": "main", "zone": "eu-west"}, cfg.Properties)
}

func TestLoadWithFileExplicitZeroValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPORTOOR_VERBOSITY", "2")

	path := filepath.Join(t.TempDir(), "reportoor.yaml")
	content := `verbosity: 0
timing: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Verbosity)
	assert.False(t, cfg.Timing)
}

func TestLoadWithFileEmptyPath(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadWithFile("")
	require.NoError(t, err)
	assert.Equal(t, "reports", cfg.Output)
}

func TestLoadWithFileMissing(t *testing.T) {
	clearEnv(t)

	_, err := LoadWithFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadWithFileMalformed(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: [unclosed"), 0o644))

	_, err := LoadWithFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfigString(t *testing.T) {
	cfg := &Config{
		Output:    "reports",
		Verbosity: 1,
		Timing:    true,
		Encoding:  "UTF-8",
	}

	out := cfg.String()
	assert.Contains(t, out, "Current Configuration:")
	assert.Contains(t, out, "Output:              reports")
	assert.Contains(t, out, "Suffix:              (run timestamp)")
	assert.Contains(t, out, "Properties:          (none)")

	cfg.Suffix = "nightly"
	cfg.Properties = map[string]string{"a": "1", "b": "2"}

	out = cfg.String()
	assert.Contains(t, out, "Suffix:              nightly")
	assert.Contains(t, out, "Properties:          2 defined")
}
