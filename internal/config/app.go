// Package config handles configuration loading and management
package config

import (
	"github.com/ethpandaops/reportoor/pkg/runner"
)

// RunnerConfig translates the loaded application configuration into a
// runner configuration. Stream and console wiring stay with the
// caller.
func (c *Config) RunnerConfig() runner.Config {
	return runner.Config{
		Output:         c.Output,
		Suffix:         c.Suffix,
		Verbosity:      c.Verbosity,
		PerTestCapture: c.PerTestCapture,
		Timing:         c.Timing,
		Descriptions:   true,
		Encoding:       c.Encoding,
		StripANSI:      c.StripANSI,
		Properties:     c.Properties,
	}
}
