package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tui2048.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// DefaultConfig returns the built-in configuration, used when no file parses.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			Variant:  "2048",
			TickRate: 30,
		},
		Storage: StorageConfig{
			Path: "~/.tui2048/scores.db",
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
