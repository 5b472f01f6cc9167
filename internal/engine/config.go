package engine

import (
	"time"

	"github.com/Querulantenkind/cli-game-collection/internal/theme"
)

// Config is the per-session configuration, passed explicitly at
// creation and forwarded to the behavior's Init hook. There is no
// process-global settings state.
type Config struct {
	// Width and Height override the display surface size. Zero means
	// use what the Display reports.
	Width  int
	Height int

	// PollTimeout bounds each input poll. The loop stays responsive to
	// termination at this cadence regardless of game speed.
	PollTimeout time.Duration

	// MaxDelta clamps the delta-time charged to a single update, so a
	// stall (resize, suspend) never produces a huge simulated step.
	MaxDelta time.Duration

	// Speed and Difficulty scale the effective delta-time. Zero means
	// derive the factor from the settings service presets.
	Speed      float64
	Difficulty float64

	// Theme is the resolved color palette for the session.
	Theme theme.Theme

	// Seed feeds the behavior's RNG; zero lets the caller pick a
	// time-based seed.
	Seed int64

	// ResumeSlot, when 1..5, restores the save in that slot instead of
	// fresh initialization. A corrupt save falls back to fresh.
	ResumeSlot int

	// QuickSaveSlot is the slot written by the quick-save command and
	// by save-on-quit. Zero disables quick-saving.
	QuickSaveSlot int

	// SaveOnQuit writes a quick-save when the player quits mid-game.
	SaveOnQuit bool

	// AutoAck skips the game-over acknowledgment wait, terminating the
	// session as soon as the end screen has been rendered once.
	AutoAck bool
}

// DefaultConfig returns the engine defaults: 100ms input polling and a
// 250ms delta clamp.
func DefaultConfig() Config {
	return Config{
		PollTimeout: 100 * time.Millisecond,
		MaxDelta:    250 * time.Millisecond,
		Theme:       theme.Default(),
	}
}

// Preset factors applied to delta-time. Harder or faster means more
// simulated time per real second; polling cadence is unaffected.
var (
	speedScales = map[string]float64{
		"slow":   0.6,
		"medium": 1.0,
		"fast":   1.5,
	}
	difficultyScales = map[string]float64{
		"easy":   0.7,
		"normal": 1.0,
		"hard":   1.5,
	}
)

// effectiveScale resolves the combined delta-time factor for a game,
// preferring explicit config values over settings presets.
func (c Config) effectiveScale(settings SettingsService, gameID string) float64 {
	speed := c.Speed
	if speed <= 0 {
		speed = 1.0
		if settings != nil {
			if v, ok := speedScales[settings.Get(gameID, "speed", "medium")]; ok {
				speed = v
			}
		}
	}
	difficulty := c.Difficulty
	if difficulty <= 0 {
		difficulty = 1.0
		if settings != nil {
			if v, ok := difficultyScales[settings.Get(gameID, "difficulty", "normal")]; ok {
				difficulty = v
			}
		}
	}
	return speed * difficulty
}
