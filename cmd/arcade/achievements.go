package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Querulantenkind/cli-game-collection/internal/achievements"
	"github.com/Querulantenkind/cli-game-collection/internal/platform/tui"
	"github.com/Querulantenkind/cli-game-collection/internal/registry"
)

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach"},
	Short:   "Show the achievement board",
	Long: `Display all achievements with their unlock state and point totals.

Achievements unlock automatically when a game session ends and its
final state satisfies the condition.`,
	Run: runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	svc := achievements.New(store, store, len(registry.List()), logger)

	entries, err := svc.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	earned, total, err := svc.Points()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(tui.AchievementsView(entries, earned, total))
}
