package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the service logger. Development gets a human readable console
// writer, every other environment writes JSON lines to stdout.
func New(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if isDevelopment(environment) {
		level = zerolog.DebugLevel
		writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
		return zerolog.New(writer).Level(level).With().Timestamp().Str("service", "tourbook").Logger()
	}

	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", "tourbook").Logger()
}

func isDevelopment(environment string) bool {
	switch strings.ToLower(strings.TrimSpace(environment)) {
	case "", "dev", "development", "local":
		return true
	default:
		return false
	}
}
