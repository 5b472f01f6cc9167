package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Querulantenkind/cli-game-collection/internal/challenge"
	"github.com/Querulantenkind/cli-game-collection/internal/config"
	"github.com/Querulantenkind/cli-game-collection/internal/engine"
	"github.com/Querulantenkind/cli-game-collection/internal/platform/term"
	"github.com/Querulantenkind/cli-game-collection/internal/platform/tui"
	"github.com/Querulantenkind/cli-game-collection/internal/registry"
	"github.com/Querulantenkind/cli-game-collection/internal/storage"
	"github.com/Querulantenkind/cli-game-collection/internal/theme"
)

var (
	flagDifficulty string
	flagSpeed      string
	flagTheme      string
	flagResumeSlot int
	flagSaveSlot   int
	flagSaveOnQuit bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move (game-specific)
  P            - Pause/resume
  Ctrl+S       - Quick-save to the configured slot
  Q/Ctrl+C     - Quit

Difficulty presets: easy, normal, hard
Speed presets:      slow, medium, fast

Examples:
  arcade play snake
  arcade play pong --difficulty hard
  arcade play snake --speed fast --theme neon
  arcade play wordle --resume-slot 2
  arcade play minesweeper --save-on-quit`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, medium, fast")
	playCmd.Flags().StringVar(&flagTheme, "theme", "", "Color theme: classic, dark, neon, retro, minimal")
	playCmd.Flags().IntVar(&flagResumeSlot, "resume-slot", 0, "Restore the save in this slot (1-5) before starting")
	playCmd.Flags().IntVar(&flagSaveSlot, "slot", 1, "Slot used by quick-save (1-5)")
	playCmd.Flags().BoolVar(&flagSaveOnQuit, "save-on-quit", false, "Write a quick-save when quitting mid-game")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	settings := loadSettings()
	store := openStore()
	defer store.Close()

	if err := runGame(gameID, settings, store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runGame plays one session of gameID on the local terminal and prints
// the outcome. Shared by the play and menu commands.
func runGame(gameID string, settings *config.Settings, store *storage.Store) error {
	behavior, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	// Presets from flags override the settings file for this run only.
	if flagSpeed != "" {
		if err := settings.Set(gameID, "speed", flagSpeed); err != nil {
			return err
		}
	}
	if flagDifficulty != "" {
		if err := settings.Set(gameID, "difficulty", flagDifficulty); err != nil {
			return err
		}
	}

	cfg := engine.DefaultConfig()
	cfg.PollTimeout = pollInterval()
	cfg.Seed = flagSeed
	cfg.Theme = theme.ByID(resolveThemeID(settings))
	cfg.ResumeSlot = flagResumeSlot
	cfg.QuickSaveSlot = flagSaveSlot
	cfg.SaveOnQuit = flagSaveOnQuit

	terminal, err := term.Open()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	sess := engine.NewSession(behavior, terminal, terminal, buildServices(store, settings), cfg)
	res, runErr := sess.Run(context.Background())

	// Restore the terminal before writing anything to stdout.
	terminal.Close()

	if runErr != nil {
		var tooSmall *engine.DisplayTooSmallError
		if errors.As(runErr, &tooSmall) {
			return fmt.Errorf("terminal too small for %s: need at least %dx%d, have %dx%d",
				tooSmall.GameID, tooSmall.MinW, tooSmall.MinH, tooSmall.Width, tooSmall.Height)
		}
		if res == nil {
			return runErr
		}
		logger.Warn("session ended abnormally", "err", runErr)
	}

	completed := applyChallenges(store, behavior, res)
	fmt.Print(tui.ResultBanner(res.Score, res.Won, res.NewHighScore, res.Unlocked, completed))
	return nil
}

// applyChallenges checks the finished session against today's daily
// challenge set. Best effort.
func applyChallenges(store *storage.Store, behavior engine.Behavior, res *engine.Result) []challenge.Challenge {
	snap := behavior.Snapshot()
	if snap == nil {
		snap = map[string]any{}
	}
	snap["score"] = res.Score
	snap["won"] = res.Won
	snap["play_time"] = res.PlayTime

	completed, err := challengeService(store).Apply(res, snap)
	if err != nil {
		logger.Warn("challenge check failed", "game", res.GameID, "err", err)
		return nil
	}
	return completed
}

// resolveThemeID picks the theme: --theme flag, then ARCADE_THEME, then
// the settings file.
func resolveThemeID(settings *config.Settings) string {
	if flagTheme != "" {
		return flagTheme
	}
	if env, err := config.LoadEnv(); err == nil && env.Theme != "" {
		return env.Theme
	}
	return settings.Get("general", "theme", "classic")
}
