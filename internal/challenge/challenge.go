// Package challenge rotates a daily set of game challenges and tracks
// completion streaks.
package challenge

import "github.com/Querulantenkind/cli-game-collection/internal/engine"

// Kind says how a challenge's goal is measured.
type Kind string

const (
	KindScore   Kind = "score"   // final score at least Goal
	KindTime    Kind = "time"    // win within Goal seconds
	KindSpecial Kind = "special" // game-specific snapshot condition
)

// Challenge is one entry of the rotating pool.
type Challenge struct {
	ID          string
	GameID      string
	Name        string
	Description string
	Kind        Kind
	Goal        int
	Reward      int

	// special evaluates KindSpecial challenges against the session
	// snapshot; nil for the generic kinds.
	special func(snap map[string]any) bool
}

// Completed reports whether a finished session satisfies the challenge.
func (c Challenge) Completed(res *engine.Result, snap map[string]any) bool {
	if res == nil || res.GameID != c.GameID {
		return false
	}
	switch c.Kind {
	case KindScore:
		return res.Score >= c.Goal
	case KindTime:
		return res.Won && res.PlayTime <= float64(c.Goal)
	case KindSpecial:
		return c.special != nil && c.special(snap)
	}
	return false
}

func snapNum(snap map[string]any, key string) float64 {
	switch v := snap[key].(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	}
	return 0
}

// pool is every challenge the daily rotation can draw from.
var pool = []Challenge{
	{
		ID: "snake_200", GameID: "snake", Name: "Snake Sprint",
		Description: "Reach 200 points in Snake",
		Kind:        KindScore, Goal: 200, Reward: 15,
	},
	{
		ID: "snake_300", GameID: "snake", Name: "Snake Marathon",
		Description: "Reach 300 points in Snake",
		Kind:        KindScore, Goal: 300, Reward: 20,
	},
	{
		ID: "pong_shutout", GameID: "pong", Name: "Shutout",
		Description: "Win Pong without conceding a point",
		Kind:        KindSpecial, Reward: 20,
		special: func(snap map[string]any) bool {
			won, _ := snap["won"].(bool)
			return won && snapNum(snap, "opponent_score") == 0
		},
	},
	{
		ID: "breakout_win", GameID: "breakout", Name: "Brick Breaker",
		Description: "Clear the wall in Breakout",
		Kind:        KindSpecial, Goal: 1, Reward: 20,
		special: func(snap map[string]any) bool {
			won, _ := snap["won"].(bool)
			return won
		},
	},
	{
		ID: "breakout_200", GameID: "breakout", Name: "Heavy Hitter",
		Description: "Reach 200 points in Breakout",
		Kind:        KindScore, Goal: 200, Reward: 15,
	},
	{
		ID: "t2048_1024", GameID: "t2048", Name: "1024 Challenge",
		Description: "Build a 1024 tile in 2048",
		Kind:        KindSpecial, Goal: 1024, Reward: 20,
		special: func(snap map[string]any) bool {
			return snapNum(snap, "max_tile") >= 1024
		},
	},
	{
		ID: "minesweeper_90s", GameID: "minesweeper", Name: "Speed Sweeper",
		Description: "Win Minesweeper within 90 seconds",
		Kind:        KindTime, Goal: 90, Reward: 25,
	},
	{
		ID: "sudoku_clean", GameID: "sudoku", Name: "Clean Solve",
		Description: "Solve a sudoku with at most one mistake",
		Kind:        KindSpecial, Goal: 1, Reward: 25,
		special: func(snap map[string]any) bool {
			won, _ := snap["won"].(bool)
			return won && snapNum(snap, "mistakes") <= 1
		},
	},
	{
		ID: "wordle_4_guess", GameID: "wordle", Name: "Quick Wordle",
		Description: "Win Wordle in four guesses or less",
		Kind:        KindSpecial, Goal: 4, Reward: 20,
		special: func(snap map[string]any) bool {
			won, _ := snap["won"].(bool)
			g := snapNum(snap, "guesses_used")
			return won && g >= 1 && g <= 4
		},
	},
}

// Pool returns a copy of the full challenge pool.
func Pool() []Challenge {
	out := make([]Challenge, len(pool))
	copy(out, pool)
	return out
}
