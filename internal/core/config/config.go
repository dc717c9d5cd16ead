// Package config handles configuration loading and validation for tablekit.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Theme    string         `yaml:"theme"`
	Toast    ToastConfig    `yaml:"toast"`
	Notifier NotifierConfig `yaml:"notifier"`
	Mute     []string       `yaml:"mute"`
	Database DatabaseConfig `yaml:"database"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// ToastConfig controls the transient alert presenter.
type ToastConfig struct {
	// HoldMS is how long a toast stays visible before auto-dismissing.
	HoldMS int `yaml:"hold_ms"`
}

// NotifierConfig controls the desktop notification and sound side-channel.
type NotifierConfig struct {
	Enabled bool     `yaml:"enabled"`
	Command []string `yaml:"command"`
	Sound   []string `yaml:"sound"`
	Asset   string   `yaml:"asset"`
}

// DatabaseConfig holds SQLite connection settings.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
	BusyTimeout  int `yaml:"busy_timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme: "tokyo-night",
		Toast: ToastConfig{
			HoldMS: 3000,
		},
		Notifier: NotifierConfig{
			Enabled: true,
			Command: []string{"notify-send"},
			Sound:   []string{"paplay"},
			Asset:   "/usr/share/sounds/freedesktop/stereo/message.oga",
		},
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.Toast.HoldMS == 0 {
		c.Toast.HoldMS = defaults.Toast.HoldMS
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
}
