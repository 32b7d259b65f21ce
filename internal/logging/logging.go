// Package logging wires the tracer's diagnostic output through
// github.com/rs/zerolog, keeping the teacher's injected-logger shape
// (pkg/core.Logger's single Printf method, passed into the renderer by
// value rather than read off a process-wide global) but backed by
// structured logging instead of bare fmt.Printf, per the ambient-stack
// expansion in SPEC_FULL.md.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger extends the teacher's core.Logger DI interface: a Printf entry
// point for informational messages plus an Error method for reporting a
// failure, passed explicitly to its user, never a package-level global.
type Logger interface {
	Printf(format string, args ...interface{})
	Error(err error, msg string)
}

// zeroLogger adapts zerolog.Logger to Logger.
type zeroLogger struct {
	log zerolog.Logger
}

// New builds a console-formatted zerolog logger writing to w.
func New(w io.Writer) Logger {
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return &zeroLogger{log: zerolog.New(console).With().Timestamp().Logger()}
}

// NewDefault builds the stderr-backed logger used by internal/cliapp
// when no other writer is configured (the teacher's NewDefaultLogger
// equivalent).
func NewDefault() Logger {
	return New(os.Stderr)
}

func (l *zeroLogger) Printf(format string, args ...interface{}) {
	l.log.Info().Msg(fmt.Sprintf(format, args...))
}

func (l *zeroLogger) Error(err error, msg string) {
	l.log.Error().Err(err).Msg(msg)
}
