package app

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/personsync/pkg/logging"
)

// NewLogger builds the CLI logger. The level is, in order of precedence,
// --log-level or LOG_LEVEL, then -q, then -v, then info. Problems with the
// requested level are logged as warnings by the new logger itself.
func NewLogger(config *Config) zerolog.Logger {
	level, warnings := resolveLogLevel(config)

	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:     level.String(),
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level <= zerolog.DebugLevel,
	})
	for _, w := range warnings {
		logger.Warn().Msg(w)
	}
	return logger
}

// resolveLogLevel picks the level for config and reports anything that was
// ignored on the way.
func resolveLogLevel(config *Config) (zerolog.Level, []string) {
	var warnings []string

	if config.LogLevel != "" {
		level, err := parseLogLevel(config.LogLevel)
		if err == nil {
			return level, nil
		}
		warnings = append(warnings, fmt.Sprintf("%v, using info", err))
		return zerolog.InfoLevel, warnings
	}

	switch {
	case config.Quiet:
		if config.Verbose {
			warnings = append(warnings, "both --verbose and --quiet given, using --quiet")
		}
		return zerolog.WarnLevel, warnings
	case config.Verbose:
		return zerolog.DebugLevel, nil
	default:
		return zerolog.InfoLevel, nil
	}
}

// parseLogLevel accepts zerolog's level names, case-insensitively, plus
// "warning" and "off".
func parseLogLevel(s string) (zerolog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "warning":
		name = "warn"
	case "off", "none":
		name = "disabled"
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
