package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Querulantenkind/cli-game-collection/internal/platform/tui"
	"github.com/Querulantenkind/cli-game-collection/internal/registry"
	"github.com/Querulantenkind/cli-game-collection/internal/storage"
)

var flagStatsRecent int

var statsCmd = &cobra.Command{
	Use:   "stats [game]",
	Short: "Show per-game statistics",
	Long: `Display aggregated statistics: games played, won, lost, best
score, total play time. Without an argument all games are shown.

Examples:
  arcade stats
  arcade stats snake
  arcade stats snake --recent 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsRecent, "recent", 0, "Also list the N most recent sessions (single game only)")
}

func runStats(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if len(args) == 0 {
		all, err := store.AllStats()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(tui.StatsView(all))
		return
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		os.Exit(1)
	}

	st, err := store.Stats(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(tui.StatsView(map[string]*storage.GameStats{gameID: st}))

	if flagStatsRecent > 0 {
		sessions, err := store.RecentSessions(gameID, flagStatsRecent)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Recent sessions:")
		for _, s := range sessions {
			outcome := "lost"
			if s.Won {
				outcome = "won"
			}
			fmt.Printf("  %s  score %-6d %-4s  %s\n",
				s.CreatedAt.Format("2006-01-02 15:04"), s.Score, outcome, formatPlayTime(s.PlayTime))
		}
	}
}

func formatPlayTime(seconds float64) string {
	s := int(seconds)
	if s >= 60 {
		return fmt.Sprintf("%dm%02ds", s/60, s%60)
	}
	return fmt.Sprintf("%ds", s)
}
