// Package config handles configuration loading and management
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Output         string
	Suffix         string
	Verbosity      int
	PerTestCapture bool
	Timing         bool
	Encoding       string
	StripANSI      bool
	Properties     map[string]string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if the file doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Output:   getEnv("REPORTOOR_OUTPUT", DefaultOutput),
		Suffix:   getEnv("REPORTOOR_SUFFIX", ""),
		Encoding: getEnv("REPORTOOR_ENCODING", DefaultEncoding),
	}

	// Parse numeric values
	verbosity, err := strconv.Atoi(getEnv("REPORTOOR_VERBOSITY", DefaultVerbosity))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORTOOR_VERBOSITY: %w", err)
	}
	cfg.Verbosity = verbosity

	perTest, err := strconv.ParseBool(getEnv("REPORTOOR_PER_TEST_CAPTURE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORTOOR_PER_TEST_CAPTURE: %w", err)
	}
	cfg.PerTestCapture = perTest

	timing, err := strconv.ParseBool(getEnv("REPORTOOR_TIMING", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORTOOR_TIMING: %w", err)
	}
	cfg.Timing = timing

	stripANSI, err := strconv.ParseBool(getEnv("REPORTOOR_STRIP_ANSI", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORTOOR_STRIP_ANSI: %w", err)
	}
	cfg.StripANSI = stripANSI

	return cfg, nil
}

// LoadWithFile loads the environment configuration and overlays values
// from an optional YAML file. File values win over environment values.
func LoadWithFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if path == "" {
		return cfg, nil
	}

	if err := cfg.applyFile(path); err != nil {
		return nil, err
	}

	return cfg, nil
}

// fileConfig mirrors Config with optional fields so the overlay only
// touches keys the file actually sets.
type fileConfig struct {
	Output         *string           `yaml:"output"`
	Suffix         *string           `yaml:"suffix"`
	Verbosity      *int              `yaml:"verbosity"`
	PerTestCapture *bool             `yaml:"per_test_capture"`
	Timing         *bool             `yaml:"timing"`
	Encoding       *string           `yaml:"encoding"`
	StripANSI      *bool             `yaml:"strip_ansi"`
	Properties     map[string]string `yaml:"properties"`
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if fc.Output != nil {
		c.Output = *fc.Output
	}
	if fc.Suffix != nil {
		c.Suffix = *fc.Suffix
	}
	if fc.Verbosity != nil {
		c.Verbosity = *fc.Verbosity
	}
	if fc.PerTestCapture != nil {
		c.PerTestCapture = *fc.PerTestCapture
	}
	if fc.Timing != nil {
		c.Timing = *fc.Timing
	}
	if fc.Encoding != nil {
		c.Encoding = *fc.Encoding
	}
	if fc.StripANSI != nil {
		c.StripANSI = *fc.StripANSI
	}
	if len(fc.Properties) > 0 {
		c.Properties = fc.Properties
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) String() string {
	suffixDisplay := c.Suffix
	if suffixDisplay == "" {
		suffixDisplay = "(run timestamp)"
	}

	propertiesDisplay := "(none)"
	if len(c.Properties) > 0 {
		propertiesDisplay = fmt.Sprintf("%d defined", len(c.Properties))
	}

	return fmt.Sprintf(`Current Configuration:
======================
Output:              %s
Suffix:              %s
Verbosity:           %d
Per-Test Capture:    %t
Timing:              %t
Encoding:            %s
Strip ANSI:          %t
Properties:          %s`,
		c.Output,
		suffixDisplay,
		c.Verbosity,
		c.PerTestCapture,
		c.Timing,
		c.Encoding,
		c.StripANSI,
		propertiesDisplay,
	)
}
