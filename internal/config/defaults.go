package config

import (
	_ "embed"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// Default returns the hardcoded default settings: medium speed and
// normal difficulty everywhere, classic theme.
func Default() *Settings {
	return &Settings{
		General: GeneralSettings{
			Theme:          "classic",
			ShowHighScores: true,
			SoundEnabled:   false,
		},
		Games: map[string]GameSettings{
			"snake":       {Speed: "medium", Difficulty: "normal"},
			"pong":        {Speed: "medium", Difficulty: "normal"},
			"breakout":    {Speed: "medium", Difficulty: "normal"},
			"t2048":       {Speed: "medium", Difficulty: "normal"},
			"minesweeper": {Speed: "medium", Difficulty: "normal"},
			"sudoku":      {Speed: "medium", Difficulty: "normal"},
			"wordle":      {Speed: "medium", Difficulty: "normal"},
		},
	}
}
