// Package logging provides structured logging for formsync using zerolog.
// Terminals get human-readable console output, everything else gets JSON.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("api_url", url).Int("templates", n).Msg("Fetched templates")
//
//	ctx := logging.WithTemplate(ctx, externalID)
//	logging.FromContext(ctx).Debug().Msg("Syncing questions")
package logging

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// defaultLogger is used when a context carries no logger.
	defaultLogger = NewLoggerFromConfig(ConfigFromEnv())

	// Nop discards everything.
	Nop = zerolog.Nop()
)

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger, and zerolog's global one.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New creates a JSON logger on w at the global level.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(zerolog.GlobalLevel()).With().Timestamp().Logger()
}

// Debug starts a debug event on the default logger.
func Debug() *zerolog.Event { return defaultLogger.Debug() }

// Info starts an info event on the default logger.
func Info() *zerolog.Event { return defaultLogger.Info() }

// Warn starts a warning event on the default logger.
func Warn() *zerolog.Event { return defaultLogger.Warn() }

// Error starts an error event on the default logger.
func Error() *zerolog.Event { return defaultLogger.Error() }

// Err starts an error event carrying err on the default logger.
func Err(err error) *zerolog.Event { return defaultLogger.Err(err) }
