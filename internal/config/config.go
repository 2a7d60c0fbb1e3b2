// Package config loads application settings with viper. Invalid entries
// never abort startup: each becomes a ConfigError, reported once, and the
// built-in default stays in effect.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the resolved application configuration.
type Config struct {
	General  General           `mapstructure:"general"`
	Keybinds map[string]string `mapstructure:"keybinds"`

	// Errors collects invalid entries found while loading; the values
	// above already fall back to defaults for them.
	Errors []ConfigError `mapstructure:"-"`
}

// General holds the non-keybind settings.
type General struct {
	// MaxRecentCommits is how many commits the status screen lists.
	MaxRecentCommits int `mapstructure:"max_recent_commits"`
	// MaxLogEntries caps the log screen.
	MaxLogEntries int `mapstructure:"max_log_entries"`
	// ConfirmDestructive prompts before discard, hard reset, stash drop.
	ConfirmDestructive bool `mapstructure:"confirm_destructive"`
	// AutoExpandHunks shows hunk bodies without manual expansion.
	AutoExpandHunks bool `mapstructure:"auto_expand_hunks"`
	// CollapsedSections lists section IDs starting collapsed, e.g.
	// "recent" or "stashes".
	CollapsedSections []string `mapstructure:"collapsed_sections"`
	// Editor overrides $EDITOR for commit messages.
	Editor string `mapstructure:"editor"`
}

// ConfigError is one invalid config entry, kept for startup reporting.
type ConfigError struct {
	Key    string
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

// Load reads ~/.config/gex/config.yaml (or the current directory) plus
// GEX_-prefixed environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(configDirectory())
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("GEX")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is fine — use defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.validate()
	return cfg, nil
}

// validate replaces out-of-range values with defaults, recording each.
func (c *Config) validate() {
	if c.General.MaxRecentCommits < 0 {
		c.Errors = append(c.Errors, ConfigError{
			Key:    "general.max_recent_commits",
			Reason: fmt.Sprintf("must be >= 0, got %d", c.General.MaxRecentCommits),
		})
		c.General.MaxRecentCommits = 10
	}
	if c.General.MaxLogEntries < 1 {
		c.Errors = append(c.Errors, ConfigError{
			Key:    "general.max_log_entries",
			Reason: fmt.Sprintf("must be >= 1, got %d", c.General.MaxLogEntries),
		})
		c.General.MaxLogEntries = 256
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.max_recent_commits", 10)
	v.SetDefault("general.max_log_entries", 256)
	v.SetDefault("general.confirm_destructive", true)
	v.SetDefault("general.auto_expand_hunks", false)
	v.SetDefault("general.collapsed_sections", []string{})
	v.SetDefault("general.editor", "")
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gex")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "gex")
}
