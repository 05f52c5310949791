package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the simulation configuration.
// Search order: customPath -> ~/.woods/config.yaml -> ./configs/woods.yaml -> embedded default
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/woods.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults, so a file only needs
// the keys it changes. Presets in the file are added to the built-in ones.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the limits are coherent and every preset is usable.
func (c Config) Validate() error {
	l := c.Limits
	if l.MinGrid < 1 || l.MaxGrid < l.MinGrid {
		return fmt.Errorf("config: grid limits %d..%d are invalid", l.MinGrid, l.MaxGrid)
	}
	if l.MinPlayers < 1 || l.MaxPlayers < l.MinPlayers {
		return fmt.Errorf("config: player limits %d..%d are invalid", l.MinPlayers, l.MaxPlayers)
	}
	if _, ok := c.Presets[c.DefaultPreset]; !ok {
		return fmt.Errorf("config: default preset %q is not defined", c.DefaultPreset)
	}
	for id, p := range c.Presets {
		if p.Grid.Width <= 0 || p.Grid.Height <= 0 {
			return fmt.Errorf("config: preset %q has invalid grid %dx%d", id, p.Grid.Width, p.Grid.Height)
		}
		switch p.Layout {
		case LayoutCorners, LayoutDiagonal:
		default:
			return fmt.Errorf("config: preset %q has unknown layout %q", id, p.Layout)
		}
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".woods", filename)
}
