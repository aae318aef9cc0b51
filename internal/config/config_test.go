package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks that broken tunables are rejected.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))
	require.NoError(t, Validate(Default()))

	noDir := Default()
	noDir.DataDir = ""
	require.NoError(t, Validate(noDir))
	require.Empty(t, noDir.DataDir)

	cases := map[string]func(*Config){
		"tiny grid":       func(c *Config) { c.Grid.Width = 3 },
		"zero speed":      func(c *Config) { c.StartSpeed = 0 },
		"speed below min": func(c *Config) { c.StartSpeed = c.MinSpeed - 1 },
		"golden chance":   func(c *Config) { c.GoldenFood.Chance = 0 },
		"event chance":    func(c *Config) { c.Events.Chance = 101 },
		"event timer":     func(c *Config) { c.Events.Timer = 0 },
		"frame interval":  func(c *Config) { c.FrameInterval = -time.Millisecond },
		"negative shrink": func(c *Config) { c.Events.SmallSnakeShrink = -1 },
	}

	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		require.Error(t, Validate(cfg), name)
	}
}

// TestLoadMissingFileGivesDefaults ensures the game starts without a config file.
func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

// TestLoadOverridesDefaults ensures partial YAML keeps the untouched defaults.
func TestLoadOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	contents := "grid:\n  width: 10\n  height: 8\nevents:\n  chance: 100\n  timer: 2s\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), DefaultFilePermissions))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Grid{Width: 10, Height: 8}, cfg.Grid)
	require.Equal(t, 100, cfg.Events.Chance)
	require.Equal(t, 2*time.Second, cfg.Events.Timer)
	require.Equal(t, 15, cfg.StartSpeed)
	require.Equal(t, 10*time.Second, cfg.Events.Duration)
}

// TestLoadRejectsGarbage ensures undecodable YAML is reported.
func TestLoadRejectsGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid: [1, 2"), DefaultFilePermissions))

	_, err := Load(path)
	require.Error(t, err)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := Default()
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.StartSpeed = 20

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)

	require.Error(t, Save(path, nil))
}

// TestResolveDataDir checks folder creation for an explicit data folder.
func TestResolveDataDir(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.DataDir = filepath.Join(t.TempDir(), "nested", "data")

	dir, err := cfg.ResolveDataDir()
	require.NoError(t, err)
	require.Equal(t, cfg.DataDir, dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
