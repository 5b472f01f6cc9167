package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Querulantenkind/cli-game-collection/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Show every registered game with its minimum terminal size and
your recorded best score.`,
	Run: runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	store := openStore()
	defer store.Close()

	fmt.Printf("%-14s %-14s %-10s %s\n", "ID", "TITLE", "MIN SIZE", "BEST")
	for _, g := range games {
		behavior, err := registry.Create(g.ID)
		if err != nil {
			continue
		}
		minH, minW := behavior.MinSize()

		best := "-"
		if high, err := store.HighScore(g.ID); err == nil && high > 0 {
			best = fmt.Sprintf("%d", high)
		}

		fmt.Printf("%-14s %-14s %-10s %s\n",
			g.ID, g.Title, fmt.Sprintf("%dx%d", minW, minH), best)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
