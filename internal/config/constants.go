package config

const (
	// DefaultOutput is the report destination used when none is configured.
	DefaultOutput = "reports"
	// DefaultEncoding is the charset report documents declare by default.
	DefaultEncoding = "UTF-8"
	// DefaultVerbosity prints one progress mark per completed test.
	DefaultVerbosity = "1"
	// EnvPrefix is the prefix shared by every reportoor environment variable.
	EnvPrefix = "REPORTOOR_"
)
