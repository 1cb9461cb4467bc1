package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde expands to home", "~/music", filepath.Join(home, "music")},
		{"absolute path unchanged", "/var/lib/musicbox.db", "/var/lib/musicbox.db"},
		{"relative path unchanged", "data/musicbox.db", "data/musicbox.db"},
		{"empty string unchanged", "", ""},
		{"tilde only", "~", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) != 2 {
		t.Fatalf("getConfigPaths() returned %d paths, want 2", len(paths))
	}
	if paths[1] != "config.toml" {
		t.Errorf("last config path = %q, want %q", paths[1], "config.toml")
	}
	if filepath.Base(filepath.Dir(paths[0])) != "musicbox" {
		t.Errorf("first config path = %q, want it under a musicbox dir", paths[0])
	}
}

func TestGetPlaybackConfig_Defaults(t *testing.T) {
	got := DefaultPlayback()

	assert.True(t, got.Autoplay)
	assert.Equal(t, 2*time.Second, got.Cooldown)
	assert.Equal(t, 500*time.Millisecond, got.PositionInterval)
	assert.False(t, got.RequireCatalog)
	assert.Equal(t, 0, got.HistorySize)
}

func TestGetPlaybackConfig_Overrides(t *testing.T) {
	cfg := Config{Playback: PlaybackConfig{
		Autoplay:           boolPtr(false),
		CooldownMS:         250,
		PositionIntervalMS: 1000,
		RequireCatalog:     true,
		HistorySize:        -3,
	}}

	got := cfg.GetPlaybackConfig()

	assert.False(t, got.Autoplay)
	assert.Equal(t, 250*time.Millisecond, got.Cooldown)
	assert.Equal(t, time.Second, got.PositionInterval)
	assert.True(t, got.RequireCatalog)
	assert.Equal(t, 0, got.HistorySize)
}

func TestShouldSeedDemo(t *testing.T) {
	tests := []struct {
		name     string
		seed     *bool
		expected bool
	}{
		{"unset defaults to true", nil, true},
		{"explicit true", boolPtr(true), true},
		{"explicit false", boolPtr(false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{SeedDemo: tt.seed}
			if got := cfg.ShouldSeedDemo(); got != tt.expected {
				t.Errorf("ShouldSeedDemo() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, "info", (&Config{}).GetLogLevel())
	assert.Equal(t, "debug", (&Config{LogLevel: "debug"}).GetLogLevel())
}

func TestGetDataFile_Configured(t *testing.T) {
	cfg := Config{DataFile: "/tmp/custom.db"}

	got, err := cfg.GetDataFile()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", got)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
data_file = "/srv/music/box.db"
log_level = "debug"
seed_demo = false

[playback]
autoplay = false
cooldown_ms = 1500
require_catalog = true

[playlists]
allow_duplicates = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/srv/music/box.db", cfg.DataFile)
	assert.Equal(t, "debug", cfg.GetLogLevel())
	assert.False(t, cfg.ShouldSeedDemo())
	assert.True(t, cfg.Playlists.AllowDuplicates)

	pb := cfg.GetPlaybackConfig()
	assert.False(t, pb.Autoplay)
	assert.Equal(t, 1500*time.Millisecond, pb.Cooldown)
	assert.True(t, pb.RequireCatalog)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	assert.Error(t, err)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = [unterminated"), 0o600))

	_, err := Load(path)

	assert.Error(t, err)
}
