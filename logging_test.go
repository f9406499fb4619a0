package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLogFormat(t *testing.T) {
	tests := []struct {
		in   string
		want logFormat
	}{
		{"text", logFormatText},
		{"TINT", logFormatText},
		{"human", logFormatText},
		{"json", logFormatJSON},
		{"auto", logFormatAuto},
		{"bogus", logFormatAuto},
		{"", logFormatAuto},
	}
	for _, tt := range tests {
		if got := parseLogFormat(tt.in); got != tt.want {
			t.Errorf("parseLogFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogHandler(t *testing.T) {
	t.Run("auto on a buffer is JSON", func(t *testing.T) {
		var buf bytes.Buffer
		slog.New(newLogHandler(&buf, logFormatAuto, slog.LevelInfo)).Info("hello", "n", 1)

		var rec map[string]any
		if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
			t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
		}
		if rec["msg"] != "hello" {
			t.Errorf("msg = %v, want hello", rec["msg"])
		}
	})

	t.Run("text is uncolored off a terminal", func(t *testing.T) {
		var buf bytes.Buffer
		slog.New(newLogHandler(&buf, logFormatText, slog.LevelInfo)).Info("hello", "n", 1)
		out := buf.String()
		if !strings.Contains(out, "hello") || !strings.Contains(out, "n=1") {
			t.Errorf("text output = %q", out)
		}
		if strings.Contains(out, "\x1b[") {
			t.Errorf("text output should have no escape codes: %q", out)
		}
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		slog.New(newLogHandler(&buf, logFormatJSON, slog.LevelWarn)).Info("dropped")
		if buf.Len() != 0 {
			t.Errorf("info record written at warn level: %s", buf.String())
		}
	})
}

func TestSetupLogging_File(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "nested", "pastel.log")
	closeLog, err := setupLogging(logConfig{file: path, format: logFormatJSON, level: slog.LevelDebug})
	if err != nil {
		t.Fatal(err)
	}
	slog.Debug("written to file", "k", "v")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file = %q", data)
	}
}

func TestOpenLogFile_Stderr(t *testing.T) {
	w, closeFn, err := openLogFile("-")
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()
	if w != os.Stderr {
		t.Error(`"-" should log to stderr`)
	}
}

func TestDefaultLogPath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	p, err := defaultLogPath()
	if err != nil {
		t.Skipf("no cache dir: %v", err)
	}
	if filepath.Base(p) != "pastel.log" || filepath.Base(filepath.Dir(p)) != "pastel" {
		t.Errorf("defaultLogPath = %q", p)
	}
}
