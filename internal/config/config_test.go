package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func loadFrom(t *testing.T, yaml string) *Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("XDG_CONFIG_HOME", dir)

	// configDirectory appends the app name under XDG_CONFIG_HOME.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gex"), 0o755))
	require.NoError(t, os.Rename(
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "gex", "config.yaml")))

	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 10, cfg.General.MaxRecentCommits)
	require.Equal(t, 256, cfg.General.MaxLogEntries)
	require.True(t, cfg.General.ConfirmDestructive)
	require.False(t, cfg.General.AutoExpandHunks)
	require.Empty(t, cfg.Errors)
}

func TestLoadOverrides(t *testing.T) {
	cfg := loadFrom(t, `
general:
  max_recent_commits: 5
  confirm_destructive: false
keybinds:
  stage: a
`)
	require.Equal(t, 5, cfg.General.MaxRecentCommits)
	require.False(t, cfg.General.ConfirmDestructive)
	require.Equal(t, "a", cfg.Keybinds["stage"])
	require.Empty(t, cfg.Errors)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	cfg := loadFrom(t, `
general:
  max_recent_commits: -3
  max_log_entries: 0
`)
	require.Equal(t, 10, cfg.General.MaxRecentCommits)
	require.Equal(t, 256, cfg.General.MaxLogEntries)
	require.Len(t, cfg.Errors, 2)
	require.Contains(t, cfg.Errors[0].Error(), "max_recent_commits")
}
