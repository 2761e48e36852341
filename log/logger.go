// Copyright (c) 2026 The Lockstake developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides structured key/value logging for the engine,
// built on log/slog with a silent default.
package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

const (
	LevelTrace = slog.Level(-8)
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger writes key/value pairs to a handler.
type Logger interface {
	// WithContext returns a new Logger that has this contextual pair in its context.
	WithContext(key string, value any) Logger

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
}

type logger struct {
	inner *slog.Logger
}

func (l *logger) WithContext(key string, value any) Logger {
	return &logger{l.inner.With(key, value)}
}

func (l *logger) write(level slog.Level, msg string, ctx []any) {
	l.inner.Log(context.Background(), level, msg, ctx...)
}

func (l *logger) Trace(msg string, ctx ...any) { l.write(LevelTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...any) { l.write(LevelDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...any)  { l.write(LevelInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...any)  { l.write(LevelWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...any) { l.write(LevelError, msg, ctx) }

var root atomic.Pointer[logger]

func init() {
	root.Store(&logger{slog.New(DiscardHandler())})
}

// SetDefault sets the root logger handler.
func SetDefault(handler slog.Handler) {
	root.Store(&logger{slog.New(handler)})
}

// New returns a root-level logger with the given contextual pairs.
func New(ctx ...any) Logger {
	return &logger{root.Load().inner.With(ctx...)}
}

// WithContext returns a root-level logger with the given contextual pair.
func WithContext(key string, value any) Logger {
	return root.Load().WithContext(key, value)
}

// Trace logs at trace level on the root logger.
func Trace(msg string, ctx ...any) { root.Load().Trace(msg, ctx...) }

// Debug logs at debug level on the root logger.
func Debug(msg string, ctx ...any) { root.Load().Debug(msg, ctx...) }

// Info logs at info level on the root logger.
func Info(msg string, ctx ...any) { root.Load().Info(msg, ctx...) }

// Warn logs at warn level on the root logger.
func Warn(msg string, ctx ...any) { root.Load().Warn(msg, ctx...) }

// Error logs at error level on the root logger.
func Error(msg string, ctx ...any) { root.Load().Error(msg, ctx...) }

// LevelFromVerbosity maps a numeric verbosity (0=error .. 4=trace) to a level.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return LevelError
	case v == 1:
		return LevelWarn
	case v == 2:
		return LevelInfo
	case v == 3:
		return LevelDebug
	default:
		return LevelTrace
	}
}

// NewStderrHandler builds a terminal handler writing to stderr at the given level.
func NewStderrHandler(level slog.Level, useColor bool) slog.Handler {
	var lvl slog.LevelVar
	lvl.Set(level)
	return NewTerminalHandlerWithLevel(os.Stderr, &lvl, useColor)
}
