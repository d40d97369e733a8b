// Package config loads the YAML configuration for the game, the score store
// and the SSH server.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Config is the full application configuration.
type Config struct {
	Game     GameConfig      `yaml:"game"`
	Storage  StorageConfig   `yaml:"storage"`
	Server   ServerConfig    `yaml:"server"`
	Log      LogConfig       `yaml:"log"`
	Variants []VariantConfig `yaml:"variants"`
}

// GameConfig controls local play.
type GameConfig struct {
	Variant  string `yaml:"variant"`   // Variant started by `play` without an argument
	TickRate int    `yaml:"tick_rate"` // Platform ticks per second
	Player   string `yaml:"player"`    // Name stored with local scores, empty means $USER
}

// StorageConfig locates the scores database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig controls the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MetricsAddr string        `yaml:"metrics_address"` // Empty disables /metrics
}

// LogConfig controls the root logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// VariantConfig defines an extra board variant.
type VariantConfig struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Size        int    `yaml:"size"`
	Target      int    `yaml:"target"`
}

// Validate reports every invalid value in the config.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Game.Variant) == "" {
		errs = append(errs, errors.New("game.variant is required"))
	}
	if c.Game.TickRate < 1 || c.Game.TickRate > 240 {
		errs = append(errs, fmt.Errorf("game.tick_rate %d out of range [1, 240]", c.Game.TickRate))
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		errs = append(errs, errors.New("storage.path is required"))
	}
	if strings.TrimSpace(c.Server.Address) == "" {
		errs = append(errs, errors.New("server.address is required"))
	}
	if c.Server.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.idle_timeout %s is negative", c.Server.IdleTimeout))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	seen := make(map[string]bool)
	for i, v := range c.Variants {
		if strings.TrimSpace(v.ID) == "" {
			errs = append(errs, fmt.Errorf("variants[%d].id is required", i))
			continue
		}
		if seen[v.ID] {
			errs = append(errs, fmt.Errorf("variants[%d]: duplicate id %q", i, v.ID))
		}
		seen[v.ID] = true
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
