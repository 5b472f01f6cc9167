// Package theme defines the named color palettes games draw with.
// A theme is plain data resolved once at session creation and handed to
// the game through the engine config, never ambient process state.
package theme

import "github.com/Querulantenkind/cli-game-collection/internal/core"

// Theme maps the recurring UI roles to screen colors.
type Theme struct {
	ID     string
	Name   string
	Border core.Color
	Text   core.Color
	Title  core.Color
	Accent core.Color
	Good   core.Color
	Danger core.Color
	Muted  core.Color
}

var themes = map[string]Theme{
	"classic": {
		ID: "classic", Name: "Classic",
		Border: core.ColorWhite, Text: core.ColorDefault, Title: core.ColorBrightWhite,
		Accent: core.ColorCyan, Good: core.ColorGreen, Danger: core.ColorRed,
		Muted: core.ColorGray,
	},
	"dark": {
		ID: "dark", Name: "Dark",
		Border: core.ColorGray, Text: core.ColorWhite, Title: core.ColorBrightBlue,
		Accent: core.ColorBlue, Good: core.ColorGreen, Danger: core.ColorBrightRed,
		Muted: core.ColorGray,
	},
	"neon": {
		ID: "neon", Name: "Neon",
		Border: core.ColorBrightMagenta, Text: core.ColorBrightCyan, Title: core.ColorBrightGreen,
		Accent: core.ColorBrightYellow, Good: core.ColorBrightGreen, Danger: core.ColorBrightRed,
		Muted: core.ColorMagenta,
	},
	"retro": {
		ID: "retro", Name: "Retro",
		Border: core.ColorYellow, Text: core.ColorGreen, Title: core.ColorBrightYellow,
		Accent: core.ColorOrange, Good: core.ColorBrightGreen, Danger: core.ColorRed,
		Muted: core.ColorYellow,
	},
	"minimal": {
		ID: "minimal", Name: "Minimal",
		Border: core.ColorGray, Text: core.ColorDefault, Title: core.ColorWhite,
		Accent: core.ColorWhite, Good: core.ColorDefault, Danger: core.ColorWhite,
		Muted: core.ColorGray,
	},
}

// Default is the theme used when none is configured.
func Default() Theme { return themes["classic"] }

// ByID resolves a theme id, falling back to the default for unknown ids.
func ByID(id string) Theme {
	if t, ok := themes[id]; ok {
		return t
	}
	return Default()
}

// IDs lists the available theme ids in a stable order.
func IDs() []string {
	return []string{"classic", "dark", "neon", "retro", "minimal"}
}
