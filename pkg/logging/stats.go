package logging

import "github.com/rs/zerolog"

// StatField is the field that marks an event as a dashboard counter.
const StatField = "stat"

// Stat starts an info level event tagged as the named stat marker and
// returns it for the caller to add fields.
//
//	logging.Stat(logger, constants.StatUserExists).Str("email", mail).Msg(constants.StatUserExists)
func Stat(logger *zerolog.Logger, name string) *zerolog.Event {
	if logger == nil {
		logger = Default()
	}
	return logger.Info().Str(StatField, name)
}

// LogStat emits the named stat marker for subject in one call.
func LogStat(logger *zerolog.Logger, name, subject string) {
	Stat(logger, name).Str("email", subject).Msg(name)
}
