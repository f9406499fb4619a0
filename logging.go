package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pwntr/tinter"
)

// logFormat selects the log output format.
type logFormat string

const (
	logFormatAuto logFormat = "auto"
	logFormatText logFormat = "text"
	logFormatJSON logFormat = "json"
)

// logConfig is where and how the global slog logger writes.
type logConfig struct {
	file   string // "" for the default file, "-" for stderr
	format logFormat
	level  slog.Level
}

// parseLogFormat converts a string to a logFormat, returning logFormatAuto for unknown values.
func parseLogFormat(s string) logFormat {
	switch strings.ToLower(s) {
	case "text", "tint", "human":
		return logFormatText
	case "json":
		return logFormatJSON
	default:
		return logFormatAuto
	}
}

// parseLogLevel converts a string to a slog.Level, defaulting to Info.
func parseLogLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// isTTY reports whether w is a terminal.
func isTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// defaultLogPath is the log file used when --log-file is unset. The TUI owns
// the terminal, so logs never go to stderr by default.
func defaultLogPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating cache dir: %w", err)
	}
	return filepath.Join(dir, "pastel", "pastel.log"), nil
}

// openLogFile resolves cfg.file to a writer and its closer.
func openLogFile(file string) (io.Writer, func(), error) {
	if file == "-" {
		return os.Stderr, func() {}, nil
	}
	if file == "" {
		p, err := defaultLogPath()
		if err != nil {
			return nil, nil, err
		}
		file = p
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// newLogHandler picks tinter for terminals (or when asked for text) and JSON
// otherwise.
func newLogHandler(w io.Writer, format logFormat, level slog.Level) slog.Handler {
	useTint := format == logFormatText || (format == logFormatAuto && isTTY(w))
	if useTint {
		return tinter.NewHandler(w, &tinter.Options{
			Level:      level,
			TimeFormat: "15:04:05.000",
			NoColor:    !isTTY(w),
		})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
}

// setupLogging configures the global slog logger. Call once after flag/viper
// parsing. The returned func closes the log file.
func setupLogging(cfg logConfig) (func(), error) {
	w, closeFn, err := openLogFile(cfg.file)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(newLogHandler(w, cfg.format, cfg.level)))
	return closeFn, nil
}
