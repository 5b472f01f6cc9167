package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads player settings.
// Search order: customPath -> ~/.arcade/settings.yaml -> ./configs/settings.yaml -> embedded default
func Load(customPath string) (*Settings, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings %s: %w", customPath, err)
		}
		cfg := Default()
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse settings %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if path := userSettingsPath(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			cfg := Default()
			if err := yaml.Unmarshal(data, cfg); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "settings.yaml")); err == nil {
		cfg := Default()
		if err := yaml.Unmarshal(data, cfg); err == nil {
			return cfg, nil
		}
	}

	cfg := Default()
	if err := yaml.Unmarshal(defaultSettingsYAML, cfg); err != nil {
		return Default(), nil
	}
	return cfg, nil
}

// userSettingsPath returns the path to the user settings file, or empty
// if home is unavailable.
func userSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "settings.yaml")
}
