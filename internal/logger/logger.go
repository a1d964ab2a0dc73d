// Package logger provides structured logging for lightbox.
//
// It wraps log/slog behind a small package-level API so call sites stay
// terse: logger.Info("prefetch ready", "ref", ref). Level and format can
// be changed at runtime; output defaults to stderr.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Config holds logger configuration.
type Config struct {
	Level  string // DEBUG, INFO, WARN, ERROR
	Format string // text, json
	Output string // stdout, stderr, or a file path
}

var (
	mu       sync.RWMutex
	output   io.Writer = os.Stderr
	levelVar           = new(slog.LevelVar)
	format             = "text"
	slogger            = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar}))
)

// reconfigure rebuilds the handler from the current output and format.
// Callers must hold mu.
func reconfigure() {
	opts := &slog.HandlerOptions{Level: levelVar}
	if format == "json" {
		slogger = slog.New(slog.NewJSONHandler(output, opts))
	} else {
		slogger = slog.New(slog.NewTextHandler(output, opts))
	}
}

// Init initializes the logger from configuration.
// Output can be "stdout", "stderr", or a file path (opened in append mode).
func Init(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %q: %w", cfg.Output, err)
		}
		output = f
	}

	if cfg.Format != "" {
		f := strings.ToLower(cfg.Format)
		if f == "text" || f == "json" {
			format = f
		}
	}

	levelVar.Set(parseLevel(cfg.Level))
	reconfigure()
	return nil
}

// InitWithWriter routes log output to a custom writer.
// Primarily useful for tests.
func InitWithWriter(w io.Writer, level, fmtName string) {
	mu.Lock()
	defer mu.Unlock()

	output = w
	if fmtName == "json" || fmtName == "text" {
		format = fmtName
	}
	levelVar.Set(parseLevel(level))
	reconfigure()
}

// SetLevel sets the minimum log level. Invalid levels are ignored.
func SetLevel(level string) {
	switch strings.ToUpper(level) {
	case "DEBUG", "INFO", "WARN", "ERROR":
		levelVar.Set(parseLevel(level))
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return slogger
}

// Debug logs at debug level with structured fields.
func Debug(msg string, args ...any) { get().Debug(msg, args...) }

// Info logs at info level with structured fields.
func Info(msg string, args ...any) { get().Info(msg, args...) }

// Warn logs at warn level with structured fields.
func Warn(msg string, args ...any) { get().Warn(msg, args...) }

// Error logs at error level with structured fields.
func Error(msg string, args ...any) { get().Error(msg, args...) }

// With returns a slog.Logger with pre-bound attributes.
func With(args ...any) *slog.Logger { return get().With(args...) }
