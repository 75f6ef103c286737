package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// NewDevelopment returns a new logger for development environments that logs
// to stderr in a human-friendly format.
func NewDevelopment() zerolog.Logger {
	return New(ModeDevelopment, os.Stderr)
}

// NewProduction returns a new logger for production environments that logs to
// stderr in JSON format.
func NewProduction() zerolog.Logger {
	return New(ModeProduction, os.Stderr)
}

// New returns a logger writing to w. Any mode other than ModeProduction gets
// the console format.
func New(mode string, w io.Writer) zerolog.Logger {
	if mode == ModeProduction {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
		return zerolog.New(w).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(output).With().Timestamp().Logger()
}

// WithLevel parses level and applies it to logger. An empty level leaves the
// logger unchanged.
func WithLevel(logger zerolog.Logger, level string) (zerolog.Logger, error) {
	if level == "" {
		return logger, nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return logger, err
	}
	return logger.Level(lvl), nil
}
