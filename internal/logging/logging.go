// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package logging provides the structured logger used across confgen.
package logging

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Level is a logging severity.
type Level = log.Level

const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
)

// Config controls logger construction.
type Config struct {
	Output io.Writer
	Level  Level
	// JSON switches from the human-readable text format to JSON lines.
	JSON bool
	// Timestamps adds a time field to each record.
	Timestamps bool
}

// DefaultConfig logs at info level to stderr.
func DefaultConfig() Config {
	return Config{
		Output: os.Stderr,
		Level:  LevelInfo,
	}
}

// Logger wraps a charmbracelet logger with component scoping.
type Logger struct {
	l *log.Logger
}

// New creates a logger from cfg.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := log.Options{
		Level:           cfg.Level,
		ReportTimestamp: cfg.Timestamps,
	}
	if cfg.JSON {
		opts.Formatter = log.JSONFormatter
	}
	return &Logger{l: log.NewWithOptions(out, opts)}
}

// WithComponent returns a child logger tagged with component.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{l: l.l.With("component", component)}
}

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(keyvals ...any) *Logger {
	return &Logger{l: l.l.With(keyvals...)}
}

// SetLevel changes the minimum level in place.
func (l *Logger) SetLevel(level Level) {
	l.l.SetLevel(level)
}

func (l *Logger) Debug(msg string, keyvals ...any) { l.l.Debug(msg, keyvals...) }
func (l *Logger) Info(msg string, keyvals ...any)  { l.l.Info(msg, keyvals...) }
func (l *Logger) Warn(msg string, keyvals ...any)  { l.l.Warn(msg, keyvals...) }
func (l *Logger) Error(msg string, keyvals ...any) { l.l.Error(msg, keyvals...) }

var defaultLogger atomic.Pointer[Logger]

func init() {
	defaultLogger.Store(New(DefaultConfig()))
}

// Default returns the process-wide logger.
func Default() *Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger.Store(l)
	}
}

// WithComponent scopes the default logger.
func WithComponent(component string) *Logger {
	return Default().WithComponent(component)
}

// Error logs through the default logger.
func Error(msg string, keyvals ...any) { Default().Error(msg, keyvals...) }
