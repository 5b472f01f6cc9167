// Package achievements defines the unlockable accomplishments and the
// service that evaluates them against end-of-session game snapshots.
package achievements

// Category groups achievements for display.
type Category string

const (
	CategoryScore      Category = "Score"
	CategoryPerfect    Category = "Perfect"
	CategoryStreak     Category = "Streak"
	CategoryFirst      Category = "First"
	CategorySpeed      Category = "Speed"
	CategoryMastery    Category = "Mastery"
	CategoryCollection Category = "Collection"
)

// Achievement couples a display record with its unlock condition. The
// condition reads the session snapshot; missing keys never unlock.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Points      int
	Condition   func(snap map[string]any) bool
}

// num reads a numeric snapshot value. Game snapshots carry ints; values
// restored from JSON come back as float64, so both are accepted.
func num(snap map[string]any, key string) float64 {
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

func flag(snap map[string]any, key string) bool {
	b, _ := snap[key].(bool)
	return b
}

func forGame(id string, cond func(snap map[string]any) bool) func(map[string]any) bool {
	return func(snap map[string]any) bool {
		g, _ := snap["game"].(string)
		return g == id && cond(snap)
	}
}

// Catalog is the full achievement list in display order.
var Catalog = []Achievement{
	// Snake
	{
		ID: "snake_100", Name: "Snake Charmer",
		Description: "Reach 100 points in Snake",
		Category:    CategoryScore, Points: 10,
		Condition: forGame("snake", func(s map[string]any) bool { return num(s, "score") >= 100 }),
	},
	{
		ID: "snake_500", Name: "Snake Master",
		Description: "Reach 500 points in Snake",
		Category:    CategoryScore, Points: 25,
		Condition: forGame("snake", func(s map[string]any) bool { return num(s, "score") >= 500 }),
	},
	{
		ID: "snake_perfect", Name: "Perfect Snake",
		Description: "Win Snake without dying",
		Category:    CategoryPerfect, Points: 30,
		Condition: forGame("snake", func(s map[string]any) bool { return flag(s, "won") }),
	},

	// Pong
	{
		ID: "pong_win", Name: "Pong Champion",
		Description: "Win a game of Pong",
		Category:    CategoryFirst, Points: 15,
		Condition: forGame("pong", func(s map[string]any) bool { return flag(s, "won") }),
	},
	{
		ID: "pong_5_0", Name: "Perfect Game",
		Description: "Win Pong 5-0",
		Category:    CategoryPerfect, Points: 30,
		Condition: forGame("pong", func(s map[string]any) bool {
			return flag(s, "won") && num(s, "player_score") == 5 && num(s, "opponent_score") == 0
		}),
	},

	// Breakout
	{
		ID: "breakout_win", Name: "Brick Breaker",
		Description: "Break all bricks in Breakout",
		Category:    CategoryFirst, Points: 20,
		Condition: forGame("breakout", func(s map[string]any) bool { return flag(s, "won") }),
	},
	{
		ID: "breakout_perfect", Name: "Perfect Breakout",
		Description: "Win Breakout without losing a life",
		Category:    CategoryPerfect, Points: 40,
		Condition: forGame("breakout", func(s map[string]any) bool {
			return flag(s, "won") && num(s, "lives") >= 3
		}),
	},

	// 2048
	{
		ID: "t2048_512", Name: "Halfway There",
		Description: "Reach a 512 tile in 2048",
		Category:    CategoryScore, Points: 15,
		Condition: forGame("t2048", func(s map[string]any) bool { return num(s, "max_tile") >= 512 }),
	},
	{
		ID: "t2048_2048", Name: "Perfect 2048",
		Description: "Reach the 2048 tile",
		Category:    CategoryPerfect, Points: 50,
		Condition: forGame("t2048", func(s map[string]any) bool { return num(s, "max_tile") >= 2048 }),
	},
	{
		ID: "t2048_4096", Name: "Beyond 2048",
		Description: "Reach a 4096 tile",
		Category:    CategoryMastery, Points: 75,
		Condition: forGame("t2048", func(s map[string]any) bool { return num(s, "max_tile") >= 4096 }),
	},

	// Minesweeper
	{
		ID: "minesweeper_win", Name: "Mine Sweeper",
		Description: "Win a game of Minesweeper",
		Category:    CategoryFirst, Points: 20,
		Condition: forGame("minesweeper", func(s map[string]any) bool { return flag(s, "won") }),
	},
	{
		ID: "minesweeper_fast", Name: "Speed Sweeper",
		Description: "Win Minesweeper in under 60 seconds",
		Category:    CategorySpeed, Points: 30,
		Condition: forGame("minesweeper", func(s map[string]any) bool {
			return flag(s, "won") && num(s, "play_time") < 60
		}),
	},

	// Wordle
	{
		ID: "wordle_win", Name: "Word Master",
		Description: "Win a game of Wordle",
		Category:    CategoryFirst, Points: 15,
		Condition: forGame("wordle", func(s map[string]any) bool { return flag(s, "won") }),
	},
	{
		ID: "wordle_1guess", Name: "Lucky Guess",
		Description: "Win Wordle in one guess",
		Category:    CategoryPerfect, Points: 50,
		Condition: forGame("wordle", func(s map[string]any) bool {
			return flag(s, "won") && num(s, "guesses_used") == 1
		}),
	},
	{
		ID: "wordle_3guesses", Name: "Word Expert",
		Description: "Win Wordle in three guesses or less",
		Category:    CategoryMastery, Points: 30,
		Condition: forGame("wordle", func(s map[string]any) bool {
			g := num(s, "guesses_used")
			return flag(s, "won") && g >= 1 && g <= 3
		}),
	},

	// Sudoku
	{
		ID: "sudoku_win", Name: "Number Cruncher",
		Description: "Solve a sudoku puzzle",
		Category:    CategoryFirst, Points: 20,
		Condition: forGame("sudoku", func(s map[string]any) bool { return flag(s, "won") }),
	},
	{
		ID: "sudoku_flawless", Name: "Flawless Logic",
		Description: "Solve a sudoku without mistakes or hints",
		Category:    CategoryPerfect, Points: 50,
		Condition: forGame("sudoku", func(s map[string]any) bool {
			return flag(s, "won") && num(s, "mistakes") == 0 && num(s, "hints_used") == 0
		}),
	},

	// Cross-game
	{
		ID: "first_high_score", Name: "High Scorer",
		Description: "Get your first high score",
		Category:    CategoryFirst, Points: 20,
		Condition: func(s map[string]any) bool { return flag(s, "is_new_high") },
	},
	{
		ID: "play_all", Name: "Game Explorer",
		Description: "Play every game at least once",
		Category:    CategoryCollection, Points: 50,
		Condition: func(s map[string]any) bool {
			return num(s, "games_played_count") >= float64(num(s, "catalog_size")) && num(s, "catalog_size") > 0
		},
	},
	{
		ID: "win_all", Name: "Master Gamer",
		Description: "Win every game at least once",
		Category:    CategoryCollection, Points: 100,
		Condition: func(s map[string]any) bool {
			return num(s, "games_won_count") >= float64(num(s, "catalog_size")) && num(s, "catalog_size") > 0
		},
	},
}

// ByID returns the catalog entry with the given id, or nil.
func ByID(id string) *Achievement {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}
