package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Querulantenkind/cli-game-collection/internal/theme"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect and change settings",
	Long: `Read or write the layered settings: --config file, then
~/.arcade/settings.yaml, then ./configs/settings.yaml, then built-in
defaults.

Per-game keys:  speed (slow|medium|fast), difficulty (easy|normal|hard)
General keys:   theme, show_high_scores, sound_enabled
                (use game id "general")

Examples:
  arcade settings list
  arcade settings get snake speed
  arcade settings set snake speed fast
  arcade settings set general theme neon`,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all effective settings",
	Run:   runSettingsList,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <game> <key>",
	Short: "Read one setting",
	Args:  cobra.ExactArgs(2),
	Run:   runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <game> <key> <value>",
	Short: "Write one setting",
	Args:  cobra.ExactArgs(3),
	Run:   runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsListCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsList(cmd *cobra.Command, args []string) {
	settings := loadSettings()

	fmt.Println("general:")
	fmt.Printf("  theme:            %s  (available: %v)\n",
		settings.Get("general", "theme", "classic"), theme.IDs())
	fmt.Printf("  show_high_scores: %s\n", settings.Get("general", "show_high_scores", "true"))
	fmt.Printf("  sound_enabled:    %s\n", settings.Get("general", "sound_enabled", "false"))
	fmt.Println()

	for _, gameID := range settings.GameIDs() {
		fmt.Printf("%s:\n", gameID)
		fmt.Printf("  speed:      %s\n", settings.Get(gameID, "speed", "medium"))
		fmt.Printf("  difficulty: %s\n", settings.Get(gameID, "difficulty", "normal"))
	}
}

func runSettingsGet(cmd *cobra.Command, args []string) {
	settings := loadSettings()
	fmt.Println(settings.Get(args[0], args[1], ""))
}

func runSettingsSet(cmd *cobra.Command, args []string) {
	settings := loadSettings()

	if err := settings.Set(args[0], args[1], args[2]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := settings.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Set %s.%s = %s\n", args[0], args[1], args[2])
}
