// arcade is a collection of terminal arcade games sharing one lifecycle
// engine and a common persistence layer.
//
// Usage:
//
//	arcade list                  - List available games
//	arcade play <game>           - Play a game
//	arcade menu                  - Interactive game picker
//	arcade scores <game>         - Show high scores for a game
//	arcade stats                 - Show per-game statistics
//	arcade achievements          - Show the achievement board
//	arcade challenge             - Show today's daily challenges
//	arcade saves <game>          - Manage save slots
//	arcade settings              - Inspect and change settings
//	arcade serve                 - Serve the dashboard over SSH
//
// Global flags:
//
//	--fps <rate>     - Input poll rate per second (default: 10)
//	--seed <value>   - RNG seed for reproducible gameplay
//	--db <path>      - Database path (default: ~/.arcade/arcade.db)
//	--config <path>  - Custom settings YAML
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Querulantenkind/cli-game-collection/internal/achievements"
	"github.com/Querulantenkind/cli-game-collection/internal/challenge"
	"github.com/Querulantenkind/cli-game-collection/internal/config"
	"github.com/Querulantenkind/cli-game-collection/internal/engine"
	"github.com/Querulantenkind/cli-game-collection/internal/registry"
	"github.com/Querulantenkind/cli-game-collection/internal/storage"

	// Import games to register them
	_ "github.com/Querulantenkind/cli-game-collection/internal/games/breakout"
	_ "github.com/Querulantenkind/cli-game-collection/internal/games/minesweeper"
	_ "github.com/Querulantenkind/cli-game-collection/internal/games/pong"
	_ "github.com/Querulantenkind/cli-game-collection/internal/games/snake"
	_ "github.com/Querulantenkind/cli-game-collection/internal/games/sudoku"
	_ "github.com/Querulantenkind/cli-game-collection/internal/games/t2048"
	_ "github.com/Querulantenkind/cli-game-collection/internal/games/wordle"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "arcade",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Play retro games in your terminal",
	Long: `Arcade is a terminal gaming collection: one shared game engine,
seven games, high scores, achievements, daily challenges and save slots.

Available commands:
  list          - Show all available games
  play          - Play a specific game directly
  menu          - Interactive game picker
  scores        - View high scores
  stats         - View per-game statistics
  achievements  - View the achievement board
  challenge     - View today's daily challenges
  saves         - Manage save slots
  settings      - Inspect and change settings
  serve         - Serve the read-only dashboard over SSH

Examples:
  arcade list
  arcade play snake
  arcade play wordle --resume-slot 2
  arcade menu
  arcade serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 10, "Input poll rate per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the arcade database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom settings YAML")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serveCmd)
}

// resolveDBPath picks the database location: --db flag, then ARCADE_DB,
// then the default under the home directory.
func resolveDBPath() string {
	if flagDBPath != "" {
		return flagDBPath
	}
	env, err := config.LoadEnv()
	if err == nil && env.DBPath != "" {
		return env.DBPath
	}
	return config.DefaultDBPath()
}

// openStore opens the database, exiting on failure. Callers close it.
func openStore() *storage.Store {
	store, err := storage.Open(resolveDBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// loadSettings loads the layered settings chain, warning instead of
// failing when a file is unreadable.
func loadSettings() *config.Settings {
	settings, err := config.Load(flagConfig)
	if err != nil {
		logger.Warn("settings not loaded, using defaults", "err", err)
		return config.Default()
	}
	return settings
}

// buildServices assembles the persistence bridge for a play session.
func buildServices(store *storage.Store, settings *config.Settings) engine.Services {
	svc := store.Services()
	svc.Settings = settings
	svc.Achievements = achievements.New(store, store, len(registry.List()), logger)
	return svc
}

func pollInterval() time.Duration {
	fps := flagFPS
	if !rootCmd.PersistentFlags().Changed("fps") {
		if env, err := config.LoadEnv(); err == nil && env.FPS > 0 {
			fps = env.FPS
		}
	}
	if fps <= 0 {
		fps = 10
	}
	return time.Second / time.Duration(fps)
}

func challengeService(store *storage.Store) *challenge.Service {
	return challenge.New(store, logger)
}
