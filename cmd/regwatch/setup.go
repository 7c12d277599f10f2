package main

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setupLogger configures zerolog output and level and returns the logger.
// Production writes JSON with Unix timestamps; otherwise a console writer
// is used.
func setupLogger(out io.Writer, level string, production bool) zerolog.Logger {
	if production {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	lvl, known := parseLevel(level, production)
	zerolog.SetGlobalLevel(lvl)
	if !known {
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", level)
	}
	return log.Logger
}

// parseLevel maps a LOGLEVEL value to a zerolog level. An empty value picks
// warn in production and info otherwise.
func parseLevel(level string, production bool) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "fatal":
		return zerolog.FatalLevel, true
	case "panic":
		return zerolog.PanicLevel, true
	case "disabled":
		return zerolog.Disabled, true
	case "":
		if production {
			return zerolog.WarnLevel, true
		}
		return zerolog.InfoLevel, true
	default:
		return zerolog.InfoLevel, false
	}
}
