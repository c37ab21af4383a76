// Package config handles loading awaybot.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nmthang/awaybot/internal/models"
)

// Config represents the awaybot.toml configuration file.
type Config struct {
	App   App    `toml:"app"`
	Kinds []Kind `toml:"kind"`
}

// App contains application-wide settings.
type App struct {
	// Timezone is the IANA zone all timestamps are recorded in.
	Timezone string `toml:"timezone"`
	// DatabasePath overrides the default sqlite location.
	DatabasePath string `toml:"database-path"`
	// NotifyAttempts caps delivery attempts per notification.
	NotifyAttempts int `toml:"notify-attempts"`
	// InitialSuperadmin is always treated as superadmin in every group.
	InitialSuperadmin string `toml:"initial-superadmin"`
}

// Kind is one activity catalog entry.
type Kind struct {
	Name         string `toml:"name"`
	Label        string `toml:"label"`
	LimitMinutes int    `toml:"limit-minutes"`
}

// Default returns the built-in configuration: UTC+7 reference zone and the
// standard six-activity catalog.
func Default() *Config {
	return &Config{
		App: App{
			Timezone:       "Asia/Bangkok",
			NotifyAttempts: 3,
		},
		Kinds: []Kind{
			{Name: "step-out", Label: "🚶 Step Out", LimitMinutes: 5},
			{Name: "smoke", Label: "🚬 Smoke Break", LimitMinutes: 5},
			{Name: "restroom-short", Label: "🚻 Restroom (short)", LimitMinutes: 10},
			{Name: "restroom-long", Label: "🚻 Restroom (long)", LimitMinutes: 15},
			{Name: "meal", Label: "🍚 Meal Pickup", LimitMinutes: 10},
			{Name: "dishes", Label: "🍽️ Dishes", LimitMinutes: 5},
		},
	}
}

// Load reads configuration from path. A missing file yields the defaults;
// a present but unparseable file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.App.NotifyAttempts <= 0 {
		cfg.App.NotifyAttempts = 3
	}
	return cfg, nil
}

// DefaultPath returns the conventional config location, ~/.awaybot/awaybot.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".awaybot", "awaybot.toml"), nil
}

// Catalog builds the immutable activity catalog from the configured kinds.
func (c *Config) Catalog() (*models.Catalog, error) {
	kinds := make([]models.ActivityKind, 0, len(c.Kinds))
	for _, k := range c.Kinds {
		label := k.Label
		if label == "" {
			label = k.Name
		}
		kinds = append(kinds, models.ActivityKind{
			Name:         k.Name,
			Label:        label,
			LimitMinutes: k.LimitMinutes,
		})
	}
	return models.NewCatalog(kinds)
}

// Location resolves the configured reference zone.
func (c *Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.App.Timezone)
}

// DatabasePath returns the sqlite path, defaulting to ~/.awaybot/awaybot.db.
func (c *Config) DatabasePath() (string, error) {
	if c.App.DatabasePath != "" {
		return c.App.DatabasePath, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".awaybot", "awaybot.db"), nil
}
