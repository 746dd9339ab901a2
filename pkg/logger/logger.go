package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Log is the global logger. Every event carries the service name so the three
// binaries are distinguishable in aggregated output.
var Log zerolog.Logger

const serviceName = "joogo"

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	Log = zerolog.New(newWriter()).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Caller().
		Str("service", serviceName).
		Logger()
}

// newWriter picks the output format: LOG_FORMAT=json emits raw JSON lines for
// log shippers, anything else gets the human console writer.
func newWriter() io.Writer {
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		return os.Stdout
	}
	return zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}
}

// Component returns a child logger tagged with a component name, for
// long-running subsystems like the ingest watcher.
func Component(name string) zerolog.Logger {
	return Log.With().Str("component", name).Logger()
}

// SetLevel sets the global log level; unknown names fall back to info.
func SetLevel(levelStr string) {
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		Log.Warn().Str("level", levelStr).Msg("invalid log level, defaulting to info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	Log = Log.Level(level)
}
