// Package logger wraps zerolog behind the small surface kitout needs:
// leveled entries, derived field loggers, and the action tagging the
// reconciler attaches to every result. A nil *Logger is a valid no-op
// receiver, so collaborators log unconditionally.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options configure a logger at creation time. The zero value logs JSON at
// info level to stderr.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
}

// Logger is the run-wide structured logger.
type Logger struct {
	base zerolog.Logger
}

// New builds a Logger from Options. Log output goes to stderr by default so
// stdout stays clean for reports and --json payloads.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	base := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &Logger{base: base}, nil
}

// WithFields returns a derived logger that always writes the supplied fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}

	builder := l.base.With()
	for key, value := range fields {
		builder = builder.Interface(key, value)
	}

	derived := Logger{base: builder.Logger()}
	return &derived
}

// WithAction tags entries with a reconcile action's identity: the action
// kind (install_package, config_patch, ...) and its target.
func (l *Logger) WithAction(kind, target string) *Logger {
	return l.WithFields(map[string]any{"kind": kind, "target": target})
}

// WithError carries the error string on warn-level degradation entries,
// where the run continues despite the failure.
func (l *Logger) WithError(err error) *Logger {
	if l == nil || err == nil {
		return l
	}
	return l.WithFields(map[string]any{"error": err.Error()})
}

// Info writes an informational entry.
func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.base.Info().Msg(msg)
}

// Debug writes a debug entry when the level allows it.
func (l *Logger) Debug(msg string) {
	if l == nil {
		return
	}
	l.base.Debug().Msg(msg)
}

// Warn writes a warning entry.
func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.base.Warn().Msg(msg)
}

// Error writes an error entry with the supplied cause attached.
func (l *Logger) Error(err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}
