package config

import "fmt"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`   // empty = no file; the interactive wizard then logs nowhere
}

// ValidLevels lists the accepted log levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Validate checks level and format.
func (c LoggingConfig) Validate() error {
	if !contains(ValidLevels, c.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Level, ValidLevels)
	}
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("invalid log format: %s (valid: json, console)", c.Format)
	}
	return nil
}
