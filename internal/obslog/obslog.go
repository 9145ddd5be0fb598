// Package obslog is a structured logger matching the method surface and
// message shape of the teacher's utils.Logger (Info/Warn/Error, an
// optional "[TIMESTAMP] LEVEL message" console line), backed by zerolog
// instead of the standard library's log.Logger. Progress messages
// specified in spec.md §6 are emitted exclusively through this logger.
package obslog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger pre-tagged with a run id.
type Logger struct {
	z zerolog.Logger
}

// Option configures a new Logger.
type Option func(*options)

type options struct {
	json   bool
	level  zerolog.Level
	writer io.Writer
}

// JSON switches the logger to line-delimited JSON output (suited to log
// aggregation) instead of the teacher's human-readable console format.
func JSON() Option { return func(o *options) { o.json = true } }

// Level sets the minimum level emitted. Accepts "debug", "info", "warn",
// "error"; unrecognized values fall back to "info".
func Level(level string) Option {
	return func(o *options) {
		lvl, err := zerolog.ParseLevel(level)
		if err != nil {
			lvl = zerolog.InfoLevel
		}
		o.level = lvl
	}
}

// Writer overrides the destination stream (default os.Stderr, matching
// spec.md §6's "Progress messages are emitted to standard error").
func Writer(w io.Writer) Option { return func(o *options) { o.writer = w } }

// New returns a Logger tagged with runID, applying the given options.
func New(runID string, opts ...Option) *Logger {
	o := &options{level: zerolog.InfoLevel, writer: os.Stderr}
	for _, opt := range opts {
		opt(o)
	}

	var w io.Writer = o.writer
	if !o.json {
		w = zerolog.ConsoleWriter{
			Out:        o.writer,
			NoColor:    true,
			TimeFormat: "2006-01-02T15:04:05Z07:00",
		}
	}

	z := zerolog.New(w).
		Level(o.level).
		With().
		Timestamp().
		Str("run_id", runID).
		Logger()
	return &Logger{z: z}
}

// Info logs a formatted informational message.
func (l *Logger) Info(format string, args ...any) {
	l.z.Info().Msgf(format, args...)
}

// Warn logs a formatted warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.z.Warn().Msgf(format, args...)
}

// Error logs a formatted error message.
func (l *Logger) Error(format string, args ...any) {
	l.z.Error().Msgf(format, args...)
}

// WithField returns a child Logger with one structured field attached,
// keeping the teacher's free-form message text.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{z: l.z.With().Interface(key, value).Logger()}
}
