package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kylesnowschwartz/pastel/pasteboard"
)

// config is everything a command needs after flags, env and the config
// file have been merged.
type config struct {
	history pasteboard.HistoryConfig
	dump    bool
	log     logConfig
}

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and PASTEL_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → PASTEL_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("pastel")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/pastel/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pastel"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("PASTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "path to config file (overrides auto-discovery)")
}

// addHistoryFlags adds the polling engine flags to a command.
func addHistoryFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.Int("history-limit", pasteboard.DefaultHistoryLimit, "number of distinct items to keep")
	f.Duration("poll-interval", pasteboard.DefaultPollInterval, "how often to read the clipboard")
	f.Bool("watch-files", true, "refresh copied file references when the file changes")
	f.Int64("max-file-size", pasteboard.DefaultMaxFileSize, "largest file (bytes) whose content is loaded")
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("log-file", "", `log destination (default: user cache dir; "-" for stderr)`)
	f.String("log-format", "auto", "log format: auto|text|json")
	f.String("log-level", "info", "log level: debug|info|warn|error")
}

// loadConfig reads the merged settings out of v.
func loadConfig(v *viper.Viper) (config, error) {
	cfg := config{
		history: pasteboard.HistoryConfig{
			Limit:        v.GetInt("history-limit"),
			PollInterval: v.GetDuration("poll-interval"),
			WatchFiles:   v.GetBool("watch-files"),
			MaxFileSize:  v.GetInt64("max-file-size"),
		},
		dump: v.GetBool("dump"),
		log: logConfig{
			file:   v.GetString("log-file"),
			format: parseLogFormat(v.GetString("log-format")),
			level:  parseLogLevel(v.GetString("log-level")),
		},
	}

	if cfg.history.Limit < 1 {
		return config{}, fmt.Errorf("history-limit must be at least 1, got %d", cfg.history.Limit)
	}
	if cfg.history.PollInterval <= 0 {
		return config{}, fmt.Errorf("poll-interval must be positive, got %s", cfg.history.PollInterval)
	}
	if cfg.history.MaxFileSize < 0 {
		return config{}, fmt.Errorf("max-file-size must not be negative, got %d", cfg.history.MaxFileSize)
	}
	return cfg, nil
}

// resolve binds cmd's flags into a fresh viper, loads the config and sets up
// logging. The returned func closes the log file.
func resolve(cmd *cobra.Command) (config, func(), error) {
	v := viper.New()
	if err := bindViper(cmd, v); err != nil {
		return config{}, nil, err
	}
	cfg, err := loadConfig(v)
	if err != nil {
		return config{}, nil, err
	}
	closeLog, err := setupLogging(cfg.log)
	if err != nil {
		return config{}, nil, err
	}
	return cfg, closeLog, nil
}
