package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog with accumulated scope context so call sites never touch
// slog directly. Chained helpers return copies; a Logger is safe to share.
type Logger struct {
	handler *slog.Logger
	scope   string
}

var base = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: levelFromEnv(),
}))

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func New(scope string) Logger {
	return Logger{
		handler: base.With("scope", scope),
		scope:   scope,
	}
}

func (l Logger) Function(name string) Logger {
	return Logger{
		handler: l.handler.With("function", name),
		scope:   l.scope,
	}
}

func (l Logger) File(name string) Logger {
	return Logger{
		handler: l.handler.With("file", name),
		scope:   l.scope,
	}
}

func (l Logger) Info(msg string, args ...any) {
	l.handler.Info(msg, args...)
}

func (l Logger) Debug(msg string, args ...any) {
	l.handler.Debug(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.handler.Warn(msg, args...)
}

// Err logs the error and returns it wrapped with msg, so callers can
// `return log.Err(...)` in one statement.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.handler.Error(msg, append(args, "error", err)...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs and returns a new error built from msg.
func (l Logger) Error(msg string, args ...any) error {
	l.handler.Error(msg, args...)
	return errors.New(msg)
}

// Er logs an error without returning one, for paths that swallow failures.
func (l Logger) Er(msg string, err error, args ...any) {
	l.handler.Error(msg, append(args, "error", err)...)
}

func (l Logger) ErMsg(msg string, args ...any) {
	l.handler.Error(msg, args...)
}

func (l Logger) ErrMsg(msg string, args ...any) error {
	l.handler.Error(msg, args...)
	return errors.New(msg)
}
