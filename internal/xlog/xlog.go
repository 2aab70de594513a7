// Package xlog is a thin structured-logging wrapper around
// charmbracelet/log, used by test helpers, example callers, and ev.Calc's
// optional query tracing (when a logger is attached). Library
// code in this module never logs on its own error paths (spec §7: "a
// returned error is the single source of truth"); xlog exists for callers
// that want the same log shape the teacher uses in its own binaries.
package xlog

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps a charmbracelet/log.Logger with fixed prefix and timestamp
// formatting, matching common/log's package-level InitLog/Info/Warn/Error
// shape but as a value instead of a package global, so a query's
// correlation ID (spec's google/uuid-stamped EV queries) can be attached
// via With without mutating shared state.
type Logger struct {
	l *log.Logger
}

// New builds a Logger that writes to stderr, prefixed with name.
func New(name string) *Logger {
	l := log.New(os.Stderr)
	l.SetPrefix(name)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)
	l.SetLevel(log.InfoLevel)
	return &Logger{l: l}
}

// SetLevel adjusts the minimum level logged ("debug", "info", "warn",
// "error"); unrecognized values leave the level unchanged.
func (lg *Logger) SetLevel(level string) {
	switch level {
	case "debug":
		lg.l.SetLevel(log.DebugLevel)
	case "info":
		lg.l.SetLevel(log.InfoLevel)
	case "warn":
		lg.l.SetLevel(log.WarnLevel)
	case "error":
		lg.l.SetLevel(log.ErrorLevel)
	}
}

// With returns a derived Logger carrying the given key/value pairs on
// every subsequent entry, e.g. With("query_id", id.String()).
func (lg *Logger) With(keyvals ...any) *Logger {
	return &Logger{l: lg.l.With(keyvals...)}
}

func (lg *Logger) Debug(msg string, keyvals ...any) { lg.l.Debug(msg, keyvals...) }
func (lg *Logger) Info(msg string, keyvals ...any)  { lg.l.Info(msg, keyvals...) }
func (lg *Logger) Warn(msg string, keyvals ...any)  { lg.l.Warn(msg, keyvals...) }
func (lg *Logger) Error(msg string, keyvals ...any) { lg.l.Error(msg, keyvals...) }
func (lg *Logger) Fatal(msg string, keyvals ...any) { lg.l.Fatal(msg, keyvals...) }
