package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/kylesnowschwartz/pastel/pasteboard"
)

// loadArgs parses args against the root command's flags and returns the
// merged config, without touching logging. HOME points at an empty temp dir
// so a developer's own config file never leaks in.
func loadArgs(t *testing.T, args ...string) (config, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd()
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	v := viper.New()
	if err := bindViper(cmd, v); err != nil {
		return config{}, err
	}
	return loadConfig(v)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pastel.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadArgs(t)
	if err != nil {
		t.Fatal(err)
	}
	want := pasteboard.HistoryConfig{
		Limit:        pasteboard.DefaultHistoryLimit,
		PollInterval: pasteboard.DefaultPollInterval,
		WatchFiles:   true,
		MaxFileSize:  pasteboard.DefaultMaxFileSize,
	}
	if cfg.history != want {
		t.Errorf("history = %+v, want %+v", cfg.history, want)
	}
	if cfg.dump {
		t.Error("dump should default to false")
	}
	if cfg.log.format != logFormatAuto {
		t.Errorf("log format = %q, want auto", cfg.log.format)
	}
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	path := writeConfig(t, `
history-limit = 50
poll-interval = "250ms"
watch-files = false
log-level = "debug"
`)
	cfg, err := loadArgs(t, "--config", path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.history.Limit != 50 {
		t.Errorf("limit = %d, want 50", cfg.history.Limit)
	}
	if cfg.history.PollInterval != 250*time.Millisecond {
		t.Errorf("poll interval = %s, want 250ms", cfg.history.PollInterval)
	}
	if cfg.history.WatchFiles {
		t.Error("watch-files should be false from the config file")
	}
	if cfg.log.level.String() != "DEBUG" {
		t.Errorf("log level = %s, want DEBUG", cfg.log.level)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeConfig(t, "history-limit = 50\nmax-file-size = 10\n")
	t.Setenv("PASTEL_MAX_FILE_SIZE", "1024")

	cfg, err := loadArgs(t, "--config", path, "--history-limit", "7")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.history.Limit != 7 {
		t.Errorf("limit = %d, want 7 (flag beats config file)", cfg.history.Limit)
	}
	if cfg.history.MaxFileSize != 1024 {
		t.Errorf("max file size = %d, want 1024 (env beats config file)", cfg.history.MaxFileSize)
	}
}

func TestLoadConfig_DumpFlag(t *testing.T) {
	cfg, err := loadArgs(t, "--dump")
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.dump {
		t.Error("--dump not picked up")
	}
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero limit", []string{"--history-limit", "0"}, "history-limit"},
		{"zero interval", []string{"--poll-interval", "0s"}, "poll-interval"},
		{"negative file size", []string{"--max-file-size=-1"}, "max-file-size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadArgs(t, tt.args...)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestBindViper_BadConfigFile(t *testing.T) {
	path := writeConfig(t, "history-limit = = nope")
	if _, err := loadArgs(t, "--config", path); err == nil {
		t.Error("expected an error for a malformed config file")
	}
}
