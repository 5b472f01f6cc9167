// Package config provides YAML-based player settings with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// GameSettings holds the per-game presets.
type GameSettings struct {
	Speed      string `yaml:"speed"`      // slow, medium, fast
	Difficulty string `yaml:"difficulty"` // easy, normal, hard
}

// GeneralSettings holds settings that apply across games.
type GeneralSettings struct {
	Theme          string `yaml:"theme"` // classic, dark, neon, retro, minimal
	ShowHighScores bool   `yaml:"show_high_scores"`
	SoundEnabled   bool   `yaml:"sound_enabled"`
}

// Settings is the full player settings document. It satisfies the
// engine's settings lookup.
type Settings struct {
	General GeneralSettings         `yaml:"general"`
	Games   map[string]GameSettings `yaml:"games"`
}

// Get resolves a string setting for a game, falling back to the given
// default when the key is absent. The pseudo-game "general" addresses
// the cross-game section.
func (s *Settings) Get(gameID, key, def string) string {
	if gameID == "general" {
		switch key {
		case "theme":
			if s.General.Theme != "" {
				return s.General.Theme
			}
		case "show_high_scores":
			return strconv.FormatBool(s.General.ShowHighScores)
		case "sound_enabled":
			return strconv.FormatBool(s.General.SoundEnabled)
		}
		return def
	}

	g, ok := s.Games[gameID]
	if !ok {
		return def
	}
	switch key {
	case "speed":
		if g.Speed != "" {
			return g.Speed
		}
	case "difficulty":
		if g.Difficulty != "" {
			return g.Difficulty
		}
	}
	return def
}

// Set updates a setting in place. Unknown keys are rejected so a typo
// on the command line does not silently write a dead entry.
func (s *Settings) Set(gameID, key, value string) error {
	if gameID == "general" {
		switch key {
		case "theme":
			s.General.Theme = value
		case "show_high_scores", "sound_enabled":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("config: %s wants true/false, got %q", key, value)
			}
			if key == "show_high_scores" {
				s.General.ShowHighScores = b
			} else {
				s.General.SoundEnabled = b
			}
		default:
			return fmt.Errorf("config: unknown general setting %q", key)
		}
		return nil
	}

	switch key {
	case "speed":
		if value != "slow" && value != "medium" && value != "fast" {
			return fmt.Errorf("config: speed wants slow/medium/fast, got %q", value)
		}
	case "difficulty":
		if value != "easy" && value != "normal" && value != "hard" {
			return fmt.Errorf("config: difficulty wants easy/normal/hard, got %q", value)
		}
	default:
		return fmt.Errorf("config: unknown game setting %q", key)
	}

	if s.Games == nil {
		s.Games = make(map[string]GameSettings)
	}
	g := s.Games[gameID]
	if key == "speed" {
		g.Speed = value
	} else {
		g.Difficulty = value
	}
	s.Games[gameID] = g
	return nil
}

// GameIDs returns the games with explicit settings, sorted.
func (s *Settings) GameIDs() []string {
	ids := make([]string, 0, len(s.Games))
	for id := range s.Games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Save writes the settings to the user settings path, creating the
// directory if needed.
func (s *Settings) Save() error {
	path := userSettingsPath()
	if path == "" {
		return fmt.Errorf("config: cannot resolve home directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: cannot create settings dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: cannot encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: cannot write %s: %w", path, err)
	}
	return nil
}

// Env carries process-level overrides read from the environment.
type Env struct {
	DBPath string `env:"ARCADE_DB"`
	FPS    int    `env:"ARCADE_FPS"`
	Theme  string `env:"ARCADE_THEME"`
}

// LoadEnv parses the ARCADE_* environment overrides.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("config: cannot parse environment: %w", err)
	}
	return e, nil
}

// DefaultDBPath is where the scores database lives unless ARCADE_DB or
// the --db flag overrides it.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "arcade.db"
	}
	return filepath.Join(home, ".arcade", "arcade.db")
}
