// Package tui provides terminal user interface components and utilities.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// simpleHandler is a custom slog handler that writes messages without timestamps or level prefixes
type simpleHandler struct {
	writer    io.Writer
	debugMode bool
	quiet     *bool // Pointer to quiet flag so it can be changed dynamically
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	// Debug messages only enabled in debug mode
	if level == slog.LevelDebug {
		return h.debugMode
	}
	// Info, Warn, and Error are always enabled
	return true
}

func (h *simpleHandler) Handle(_ context.Context, record slog.Record) error {
	if *h.quiet {
		return nil // Suppress output when in quiet mode
	}
	_, err := fmt.Fprintln(h.writer, record.Message)
	return err
}

func (h *simpleHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *simpleHandler) WithGroup(_ string) slog.Handler {
	return h
}

// createLumberjackLogger creates a lumberjack logger with configuration from environment variables
func createLumberjackLogger(logFilePath string) *lumberjack.Logger {
	config := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    1,     // 1MB (in megabytes) - default
		MaxBackups: 2,     // Keep 2 old files - default
		MaxAge:     30,    // Keep for 30 days - default
		Compress:   false, // Never compress logs - default
	}

	// Override with environment variables
	if maxSizeStr := os.Getenv("TIDYGIT_LOG_MAX_SIZE"); maxSizeStr != "" {
		if maxSize, err := strconv.Atoi(maxSizeStr); err == nil && maxSize > 0 {
			config.MaxSize = maxSize
		}
	}

	if maxBackupsStr := os.Getenv("TIDYGIT_LOG_MAX_BACKUPS"); maxBackupsStr != "" {
		if maxBackups, err := strconv.Atoi(maxBackupsStr); err == nil && maxBackups >= 0 {
			config.MaxBackups = maxBackups
		}
	}

	if maxAgeStr := os.Getenv("TIDYGIT_LOG_MAX_AGE"); maxAgeStr != "" {
		if maxAge, err := strconv.Atoi(maxAgeStr); err == nil && maxAge > 0 {
			config.MaxAge = maxAge
		}
	}

	return config
}

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	// Enable if any handler is enabled
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	// Send to all handlers
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}

// Splog provides structured logging and output
type Splog struct {
	logger    *slog.Logger
	writer    *os.File
	logWriter io.WriteCloser // Lumberjack logger for file logging
	quiet     bool           // When true, suppresses all output (used during TUI mode)
}

// NewSplog creates a new splog instance with console-only logging
// Debug messages are enabled when the DEBUG environment variable is set
func NewSplog() *Splog {
	splog, _ := NewSplogWithLogFile("")
	return splog
}

// NewSplogWithLogFile creates a new splog instance with optional file logging
func NewSplogWithLogFile(logFilePath string) (*Splog, error) {
	writer := os.Stdout
	debugMode := os.Getenv("DEBUG") != ""
	splog := &Splog{
		writer: writer,
		quiet:  false,
	}

	consoleHandler := &simpleHandler{
		writer:    writer,
		debugMode: debugMode,
		quiet:     &splog.quiet,
	}

	var handlers []slog.Handler
	handlers = append(handlers, consoleHandler)

	// Set up file logging if path is provided
	if logFilePath != "" {
		logDir := filepath.Dir(logFilePath)
		if err := os.MkdirAll(logDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		lumberjackLogger := createLumberjackLogger(logFilePath)
		splog.logWriter = lumberjackLogger

		// File logs keep timestamps and every level
		fileHandler := slog.NewTextHandler(lumberjackLogger, &slog.HandlerOptions{
			Level: slog.LevelDebug,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{Key: a.Key, Value: slog.StringValue(a.Value.Time().Format("2006-01-02 15:04:05.000"))}
				}
				return a
			},
		})

		handlers = append(handlers, fileHandler)
	}

	splog.logger = slog.New(&multiHandler{handlers: handlers})

	return splog, nil
}

// SetQuiet sets the quiet mode for the logger.
// When quiet is true, all output is suppressed (used during TUI mode).
func (s *Splog) SetQuiet(quiet bool) {
	s.quiet = quiet
}

// IsQuiet returns whether the logger is in quiet mode.
func (s *Splog) IsQuiet() bool {
	return s.quiet
}

// logMessage is a helper to log a message using slog without format string validation
func (s *Splog) logMessage(level slog.Level, msg string) {
	s.logger.Log(context.Background(), level, msg)
}

// Info writes an info message
// The format parameter may be a variable string, which is safe as we use fmt.Sprintf internally
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Info(format string, args ...interface{}) {
	var msg string
	if len(args) == 0 {
		msg = format
	} else {
		msg = fmt.Sprintf(format, args...)
	}
	s.logMessage(slog.LevelInfo, msg)
}

// Newline writes a newline
func (s *Splog) Newline() {
	_, _ = fmt.Fprintln(s.writer)
}

// Warn writes a warning message
// The format parameter may be a variable string, which is safe as we use fmt.Sprintf internally
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Warn(format string, args ...interface{}) {
	var msg string
	if len(args) == 0 {
		msg = "⚠️  " + format
	} else {
		msg = fmt.Sprintf("⚠️  "+format, args...)
	}
	s.logMessage(slog.LevelWarn, msg)
}

// Error writes an error message
// The format parameter may be a variable string, which is safe as we use fmt.Sprintf internally
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Error(format string, args ...interface{}) {
	var msg string
	if len(args) == 0 {
		msg = "❌ " + format
	} else {
		msg = fmt.Sprintf("❌ "+format, args...)
	}
	s.logMessage(slog.LevelError, msg)
}

// Debug writes a debug message
// The format parameter may be a variable string, which is safe as we use fmt.Sprintf internally
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Debug(format string, args ...interface{}) {
	var msg string
	if len(args) == 0 {
		msg = format
	} else {
		msg = fmt.Sprintf(format, args...)
	}
	s.logMessage(slog.LevelDebug, msg)
}

// Tip writes a tip message
// The format parameter may be a variable string, which is safe as we use fmt.Sprintf internally
// nolint // format string validation is handled internally via fmt.Sprintf
func (s *Splog) Tip(format string, args ...interface{}) {
	var msg string
	if len(args) == 0 {
		msg = "💡 " + format
	} else {
		msg = fmt.Sprintf("💡 "+format, args...)
	}
	s.logMessage(slog.LevelInfo, msg)
}

// Close closes the log file if one was opened
func (s *Splog) Close() error {
	if s.logWriter != nil {
		return s.logWriter.Close()
	}
	return nil
}
