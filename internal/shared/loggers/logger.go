package loggers

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a wrapper around zerolog.Logger for convenience.
type Logger = zerolog.Logger

// Verbosity levels accepted by LevelForVerbosity.
const (
	VerbosityQuiet  = "quiet"
	VerbosityNormal = "normal"
	VerbosityDebug  = "debug"
)

// New creates a new zerolog logger based on the provided log level string.
// Returns an error if the log level string cannot be parsed.
func New(level string) (Logger, error) {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter is New with an explicit output, used for stderr diagnostics and tests.
func NewWithWriter(level string, w io.Writer) (Logger, error) {
	zerologLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	// Create logger with JSON output, timestamp, and specified level
	logger := zerolog.New(w).
		Level(zerologLevel).
		With().
		Timestamp().
		Caller().
		Logger()

	return logger, nil
}

// LevelForVerbosity maps a verbosity setting onto a zerolog level name.
// An explicit level always wins over the verbosity mapping.
func LevelForVerbosity(verbosity, level string) (string, error) {
	if level != "" {
		return level, nil
	}
	switch verbosity {
	case VerbosityQuiet:
		return zerolog.LevelErrorValue, nil
	case VerbosityNormal, "":
		return zerolog.LevelWarnValue, nil
	case VerbosityDebug:
		return zerolog.LevelDebugValue, nil
	}
	return "", fmt.Errorf("unknown verbosity %q", verbosity)
}

// Ctx extracts a logger from the context.
// Returns a no-op logger if no logger is found in context.
var Ctx = func(ctx context.Context) *Logger {
	return zerolog.Ctx(ctx)
}

// DebugEnabled reports whether diagnostics should carry the offending raw line.
func DebugEnabled(l *Logger) bool {
	return l.GetLevel() <= zerolog.DebugLevel
}
