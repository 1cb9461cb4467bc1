package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appName        = "musicbox"
	configFileName = "config.toml"
	dbFileName     = "musicbox.db"
)

type Config struct {
	DataFile string `koanf:"data_file"` // sqlite snapshot, default under the XDG data dir
	LogLevel string `koanf:"log_level"` // zerolog level name (default: "info")
	SeedDemo *bool  `koanf:"seed_demo"` // seed demo tracks when nothing is persisted (default: true)

	Playback  PlaybackConfig  `koanf:"playback"`
	Playlists PlaylistsConfig `koanf:"playlists"`
}

// PlaybackConfig holds playback session settings.
type PlaybackConfig struct {
	Autoplay           *bool `koanf:"autoplay"`             // default: true
	CooldownMS         int   `koanf:"cooldown_ms"`          // end-of-track debounce (default: 2000)
	PositionIntervalMS int   `koanf:"position_interval_ms"` // position refresh period (default: 500)
	RequireCatalog     bool  `koanf:"require_catalog"`      // refuse to play tracks outside the catalog
	HistorySize        int   `koanf:"history_size"`         // 0 keeps everything
}

// PlaylistsConfig holds playlist registry settings.
type PlaylistsConfig struct {
	AllowDuplicates bool `koanf:"allow_duplicates"`
}

// Load reads the config files in priority order (last wins).
// A non-empty explicit path replaces the search and must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	if explicit != "" {
		if err := k.Load(file.Provider(expandPath(explicit)), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", explicit, err)
		}
	} else {
		for _, path := range getConfigPaths() {
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
					return nil, fmt.Errorf("load %s: %w", path, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.DataFile = expandPath(cfg.DataFile)

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/musicbox/config.toml
		filepath.Join(xdg.ConfigHome, appName, configFileName),
		// 2. ./config.toml (pwd, highest priority)
		configFileName,
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetDataFile returns the snapshot database path, creating the default
// data directory when no path is configured.
func (c *Config) GetDataFile() (string, error) {
	if c.DataFile != "" {
		return c.DataFile, nil
	}
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// GetLogLevel returns the log level with the default applied.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// ShouldSeedDemo reports whether demo data is seeded into an empty store.
func (c *Config) ShouldSeedDemo() bool {
	return c.SeedDemo == nil || *c.SeedDemo
}

// Playback is PlaybackConfig after defaults, in the types the engine uses.
type Playback struct {
	Autoplay         bool
	Cooldown         time.Duration
	PositionInterval time.Duration
	RequireCatalog   bool
	HistorySize      int
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() Playback {
	cfg := c.Playback

	// Apply defaults
	if cfg.CooldownMS <= 0 {
		cfg.CooldownMS = 2000
	}
	if cfg.PositionIntervalMS <= 0 {
		cfg.PositionIntervalMS = 500
	}
	if cfg.HistorySize < 0 {
		cfg.HistorySize = 0
	}

	return Playback{
		Autoplay:         cfg.Autoplay == nil || *cfg.Autoplay,
		Cooldown:         time.Duration(cfg.CooldownMS) * time.Millisecond,
		PositionInterval: time.Duration(cfg.PositionIntervalMS) * time.Millisecond,
		RequireCatalog:   cfg.RequireCatalog,
		HistorySize:      cfg.HistorySize,
	}
}

// DefaultPlayback returns the playback settings of an empty config.
func DefaultPlayback() Playback {
	return (&Config{}).GetPlaybackConfig()
}
