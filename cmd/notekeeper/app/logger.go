package app

import (
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog"

	"github.com/agentstation/notekeeper/pkg/logging"
)

// logLevels are the names accepted by --log-level and LOG_LEVEL.
var logLevels = []string{"trace", "debug", "info", "warn", "error"}

// NewLogger builds the CLI logger from config. See determineLogLevel for
// how the level is chosen.
func NewLogger(config *Config) zerolog.Logger {
	return logging.New(logging.Config{
		Level:   determineLogLevel(config),
		Format:  config.LogFormat,
		Output:  config.LogOutput,
		NoColor: config.NoColor || os.Getenv("NO_COLOR") != "",
	})
}

// determineLogLevel picks the level: an explicit --log-level (or
// LOG_LEVEL) first, then -q, then -v, else info. -q wins over -v.
func determineLogLevel(config *Config) string {
	switch {
	case config.LogLevel != "":
		level := validateLogLevel(config.LogLevel)
		if level != config.LogLevel {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", config.LogLevel, level)
		}
		return level
	case config.Quiet:
		if config.Verbose {
			fmt.Fprintln(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet")
		}
		return "warn"
	case config.Verbose:
		return "debug"
	default:
		return "info"
	}
}

// validateLogLevel returns level when it is one of logLevels, else info.
func validateLogLevel(level string) string {
	if slices.Contains(logLevels, level) {
		return level
	}
	return "info"
}
