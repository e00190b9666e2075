// Package logging provides the subsystem-tagged structured logger used
// throughout the scraper, built on log/slog.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// LogLevel defines the severity of a log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes LogLevel satisfy fmt.Stringer.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// SlogLevel maps LogLevel to the corresponding slog.Level.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps a CLI-supplied level string ("debug", "info", "warn",
// "error") to a LogLevel, defaulting to LevelInfo for anything else.
func ParseLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a subsystem-tagged wrapper around a single *slog.Logger
// instance, threaded explicitly through the executor and its tasks
// rather than relying on slog's global default.
type Logger struct {
	slog *slog.Logger
}

// New builds a Logger writing text-formatted entries at or above level to
// output.
func New(level LogLevel, output io.Writer) *Logger {
	handler := slog.NewTextHandler(output, &slog.HandlerOptions{Level: level.SlogLevel()})
	return &Logger{slog: slog.New(handler)}
}

// NewForTest builds a Logger that discards output, for use in unit tests
// that need a non-nil logger but no visible output.
func NewForTest() *Logger {
	return New(LevelError, io.Discard)
}

func (l *Logger) log(level LogLevel, subsystem string, err error, messageFmt string, args ...any) {
	if l == nil || l.slog == nil {
		return
	}
	if !l.slog.Enabled(context.Background(), level.SlogLevel()) {
		return
	}
	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}
	attrs := []slog.Attr{slog.String("subsystem", subsystem)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.slog.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)
}

// Debug logs a debug-level message tagged with subsystem.
func (l *Logger) Debug(subsystem, messageFmt string, args ...any) { l.log(LevelDebug, subsystem, nil, messageFmt, args...) }

// Info logs an info-level message tagged with subsystem.
func (l *Logger) Info(subsystem, messageFmt string, args ...any) { l.log(LevelInfo, subsystem, nil, messageFmt, args...) }

// Warn logs a warn-level message tagged with subsystem.
func (l *Logger) Warn(subsystem, messageFmt string, args ...any) { l.log(LevelWarn, subsystem, nil, messageFmt, args...) }

// Error logs an error-level message tagged with subsystem, attaching err.
func (l *Logger) Error(subsystem string, err error, messageFmt string, args ...any) {
	l.log(LevelError, subsystem, err, messageFmt, args...)
}

// TruncateSessionID returns a truncated identifier for secure logging:
// enough characters to correlate log lines without printing a full
// secret-bearing session token. Format: first 8 chars + "..." for
// anything longer than 8 characters.
func TruncateSessionID(sessionID string) string {
	if len(sessionID) <= 8 {
		return sessionID
	}
	return sessionID[:8] + "..."
}

// NewDefault builds a Logger writing to os.Stderr at LevelInfo, for
// callers that have not yet parsed a --log-level flag.
func NewDefault() *Logger {
	return New(LevelInfo, os.Stderr)
}
