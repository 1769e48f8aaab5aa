// Package logging provides structured logging for personsync using zerolog.
// Console output is used when stderr is a terminal, JSON otherwise, so the
// same binary works interactively and inside an identity provider's log sink.
//
// Example usage:
//
//	log := logging.Default()
//	log.Debug().Int("status", 204).Str("email", email).Msg("received response")
//
//	// Carry a logger with request fields through a provisioning call
//	ctx := logging.WithRequestID(context.Background(), runID)
//	logging.Stat(logging.FromContext(ctx), constants.StatCreatingUser).
//	    Str("email", email).
//	    Send()
package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger zerolog.Logger

func init() {
	defaultLogger = NewLoggerFromConfig(envConfig())
}

// envConfig reads LOG_LEVEL, LOG_FORMAT and NO_COLOR. DEBUG=1 is honoured
// when no level is set.
func envConfig() *Config {
	cfg := DefaultConfig()
	cfg.TimeFormat = "kitchen"
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	switch level := os.Getenv("LOG_LEVEL"); {
	case level != "":
		cfg.Level = level
	case os.Getenv("DEBUG") != "":
		cfg.Level = "debug"
	}
	return cfg
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger, including zerolog's log.Logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}
