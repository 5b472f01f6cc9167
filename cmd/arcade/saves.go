package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Querulantenkind/cli-game-collection/internal/platform/tui"
	"github.com/Querulantenkind/cli-game-collection/internal/registry"
)

var savesCmd = &cobra.Command{
	Use:   "saves <game>",
	Short: "List a game's save slots",
	Long: `Show the 5 save slots of a game with their timestamps.

Examples:
  arcade saves snake
  arcade saves delete snake 2`,
	Args: cobra.ExactArgs(1),
	Run:  runSaves,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <game> <slot>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(2),
	Run:   runSavesDelete,
}

func init() {
	savesCmd.AddCommand(savesDeleteCmd)
}

func runSaves(cmd *cobra.Command, args []string) {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		os.Exit(1)
	}

	store := openStore()
	defer store.Close()

	infos, err := store.ListSaves(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(tui.SavesView(gameID, infos))
	fmt.Println()
	fmt.Printf("Resume with 'arcade play %s --resume-slot <n>'.\n", gameID)
}

func runSavesDelete(cmd *cobra.Command, args []string) {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		os.Exit(1)
	}
	slot, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: slot must be a number, got %q\n", args[1])
		os.Exit(1)
	}

	store := openStore()
	defer store.Close()

	if err := store.DeleteSave(gameID, slot); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted save slot %d of %s.\n", slot, gameID)
}
