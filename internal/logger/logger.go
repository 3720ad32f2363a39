package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process-wide logger. JSON to stderr in production, a
// console writer when APP_ENV=development.
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if os.Getenv("APP_ENV") == "development" {
		l = l.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)
	}
	return l
}
