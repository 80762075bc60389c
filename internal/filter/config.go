package filter

import "fmt"

// Config is the run-wide filter configuration. It is not modified after
// Validate succeeds.
type Config struct {
	Offset    int // quality encoding offset, 33 or 64
	MinLength int // minimum retained read length, inclusive
	S35       bool
	Ns        bool
	PolyN     bool
}

// DefaultConfig enables every filter with Phred+33 scores and MinLength 1.
func DefaultConfig() Config {
	return Config{Offset: 33, MinLength: 1, S35: true, Ns: true, PolyN: true}
}

// InvalidConfigurationError reports a configuration value outside its domain.
type InvalidConfigurationError struct {
	Field  string
	Value  int
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

// Validate checks the configuration before any record is processed.
func (c Config) Validate() error {
	if c.Offset != 33 && c.Offset != 64 {
		return &InvalidConfigurationError{Field: "quality offset", Value: c.Offset, Reason: "must be 33 or 64"}
	}
	if c.MinLength < 1 {
		return &InvalidConfigurationError{Field: "minimum length", Value: c.MinLength, Reason: "must be at least 1"}
	}
	return nil
}
