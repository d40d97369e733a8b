package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the search directories.
const FileName = "tui2048.yaml"

// Source describes where a loaded config came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// Load reads the configuration.
// Search order: customPath -> ~/.tui2048/config.yaml -> ./configs/tui2048.yaml
// -> embedded default -> DefaultConfig.
// Files are decoded over DefaultConfig, so omitted keys keep their defaults.
// Only an explicit customPath that cannot be read or parsed is an error.
func Load(customPath string) (Config, Source, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, SourceCustom, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, SourceCustom, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	if path := UserConfigPath(); path != "" {
		if cfg, ok := tryFile(path); ok {
			return cfg, SourceUser, nil
		}
	}

	if cfg, ok := tryFile(filepath.Join("configs", FileName)); ok {
		return cfg, SourceLocal, nil
	}

	if cfg, err := Parse(defaultYAML); err == nil {
		return cfg, SourceEmbedded, nil
	}
	return DefaultConfig(), SourceBuiltin, nil
}

// Parse decodes YAML over DefaultConfig.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func tryFile(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, false
	}
	return cfg, true
}

// UserConfigPath returns ~/.tui2048/config.yaml, or empty if home is unknown.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tui2048", "config.yaml")
}

// Marshal encodes cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
