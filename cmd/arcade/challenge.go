package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Querulantenkind/cli-game-collection/internal/platform/tui"
)

var flagChallengeHistory int

var challengeCmd = &cobra.Command{
	Use:     "challenge",
	Aliases: []string{"daily"},
	Short:   "Show today's daily challenges",
	Long: `Display today's three daily challenges, which of them you have
completed, and your current streak.

The set rotates every day; completing at least one challenge keeps the
streak alive.

Examples:
  arcade challenge
  arcade challenge --history 10`,
	Run: runChallenge,
}

func init() {
	challengeCmd.Flags().IntVar(&flagChallengeHistory, "history", 0, "Also list the N most recent completions")
}

func runChallenge(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	progress, err := challengeService(store).TodayProgress()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(tui.ChallengeView(progress))

	if flagChallengeHistory > 0 {
		history, err := store.ChallengeHistory(flagChallengeHistory)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println()
		fmt.Println("Recent completions:")
		for _, c := range history {
			fmt.Printf("  %s  %-20s  +%dp\n", c.Day, c.ChallengeID, c.Points)
		}
	}
}
