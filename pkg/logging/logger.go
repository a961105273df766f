// Package logging builds the zerolog loggers used by the notekeeper CLI and
// HTTP server and carries them through request contexts.
//
//	logger := logging.New(logging.ConfigFromEnv())
//	ctx := logging.WithLogger(context.Background(), &logger)
//	logging.FromContext(logging.WithNote(ctx, "groceries")).Info().Msg("Note created")
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger backs FromContext when a context carries no logger. It is
// configured from LOG_* variables until the CLI replaces it.
var defaultLogger = New(ConfigFromEnv())

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger, including zerolog's global
// log.Logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}
