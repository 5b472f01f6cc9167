// Package engine implements the shared game lifecycle: the timed
// update/render loop, the run/pause/game-over state machine, and the
// bridge into the persistence services. Concrete games plug in through
// the Behavior interface; the terminal, the clock, and the stores are
// collaborators behind small interfaces so the engine itself stays
// free of platform dependencies.
package engine

import (
	"github.com/Querulantenkind/cli-game-collection/internal/core"
)

// Status is what a behavior reports about itself after each hook call.
type Status struct {
	Score int
	Over  bool
	Won   bool
}

// Behavior is the contract every game implements. The engine calls the
// hooks; a behavior never drives the loop itself.
//
// Update is only ever invoked while the session is running: never
// while paused, never after game over.
type Behavior interface {
	// ID is the stable identifier used for scores, stats, saves and
	// settings (e.g. "snake").
	ID() string

	// Title is the human-readable name for menus and headers.
	Title() string

	// MinSize declares the minimum display surface (height, width)
	// the game needs. The engine refuses to start below it.
	MinSize() (h, w int)

	// Init sets up fresh game state. Called once before the loop, and
	// again as a fallback when restoring a save fails.
	Init(cfg Config) error

	// HandleInput receives every key event the engine does not
	// intercept as a universal command. Returning false requests the
	// session to stop, equivalent to a quit command.
	HandleInput(ev core.KeyEvent) bool

	// Update advances the simulation by dt seconds of effective game
	// time (already scaled by speed and difficulty).
	Update(dt float64)

	// Draw renders the playing field into the screen buffer.
	Draw(dst *core.Screen)

	// DrawGameOver renders the end screen.
	DrawGameOver(dst *core.Screen, isNewHigh bool)

	// Status reports the current score and end condition.
	Status() Status

	// Snapshot exposes scalar game state for achievement evaluation.
	Snapshot() map[string]any

	// Serialize returns an opaque payload capturing the full game
	// state; the engine stores it without inspecting it.
	Serialize() ([]byte, error)

	// Deserialize reconstructs game state from a payload previously
	// produced by Serialize. Called after Init when resuming a save.
	Deserialize(payload []byte) error
}
