// Package logging provides the structured logger used across the terminal.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Fields carries structured key/value pairs for a log entry.
type Fields map[string]interface{}

var (
	mu      sync.RWMutex
	level   = new(slog.LevelVar)
	handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
)

// SetOutput redirects every logger to w. Intended for tests and the CLI.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// SetLevel parses a level name (debug, info, warn, error). Unknown names keep the current level.
func SetLevel(name string) {
	switch strings.ToLower(name) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "info":
		level.Set(slog.LevelInfo)
	case "warn", "warning":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	}
}

func current() slog.Handler {
	mu.RLock()
	defer mu.RUnlock()
	return handler
}

// LoggerV2 is a component-scoped structured logger.
type LoggerV2 struct {
	component string
}

// NewLoggerV2 creates a logger that tags every entry with the component name.
func NewLoggerV2(component string) *LoggerV2 {
	return &LoggerV2{component: component}
}

func (l *LoggerV2) Debug(msg string, fields ...Fields) { l.log(slog.LevelDebug, msg, fields) }
func (l *LoggerV2) Info(msg string, fields ...Fields)  { l.log(slog.LevelInfo, msg, fields) }
func (l *LoggerV2) Warn(msg string, fields ...Fields)  { l.log(slog.LevelWarn, msg, fields) }
func (l *LoggerV2) Error(msg string, fields ...Fields) { l.log(slog.LevelError, msg, fields) }

// Fatal logs at error level and exits the process.
func (l *LoggerV2) Fatal(msg string, fields ...Fields) {
	l.log(slog.LevelError, msg, fields)
	os.Exit(1)
}

// With returns a logger for a sub-component, e.g. "api-client.auth".
func (l *LoggerV2) With(sub string) *LoggerV2 {
	return &LoggerV2{component: l.component + "." + sub}
}

func (l *LoggerV2) log(lvl slog.Level, msg string, fields []Fields) {
	h := current()
	ctx := context.Background()
	if !h.Enabled(ctx, lvl) {
		return
	}
	attrs := make([]any, 0, 2+len(fields)*4)
	if l.component != "" {
		attrs = append(attrs, "component", l.component)
	}
	for _, f := range fields {
		for k, v := range f {
			attrs = append(attrs, k, v)
		}
	}
	slog.New(h).Log(ctx, lvl, msg, attrs...)
}

var std = NewLoggerV2("")

// Info logs with the package-level logger.
func Info(msg string, fields ...Fields) { std.Info(msg, fields...) }

// Infof logs a formatted message with the package-level logger.
func Infof(format string, args ...interface{}) {
	std.Info(fmt.Sprintf(format, args...))
}
