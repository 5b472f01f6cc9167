package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Querulantenkind/cli-game-collection/internal/achievements"
	"github.com/Querulantenkind/cli-game-collection/internal/challenge"
	"github.com/Querulantenkind/cli-game-collection/internal/storage"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
)

// StatsView renders per-game aggregates as a text block.
func StatsView(all map[string]*storage.GameStats) string {
	if len(all) == 0 {
		return dimStyle.Render("No games played yet.")
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString(headerStyle.Render("STATISTICS"))
	b.WriteString("\n\n")
	for _, id := range ids {
		st := all[id]
		b.WriteString(headerStyle.Render(id))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  played %d  won %d  lost %d\n",
			st.GamesPlayed, st.GamesWon, st.GamesLost)
		fmt.Fprintf(&b, "  best score %d  total score %d  play time %s\n",
			st.BestScore, st.TotalScore, formatDuration(st.TotalPlayTime))
		if !st.LastPlayed.IsZero() {
			b.WriteString(dimStyle.Render(
				fmt.Sprintf("  last played %s", st.LastPlayed.Format("Jan 02 2006 15:04"))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatDuration(seconds float64) string {
	s := int(seconds)
	switch {
	case s >= 3600:
		return fmt.Sprintf("%dh%02dm", s/3600, s%3600/60)
	case s >= 60:
		return fmt.Sprintf("%dm%02ds", s/60, s%60)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// AchievementsView renders the achievement list with unlock state.
func AchievementsView(entries []achievements.Entry, earned, total int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("ACHIEVEMENTS"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d points", earned, total)))
	b.WriteString("\n\n")

	var category achievements.Category
	for _, e := range entries {
		if e.Category != category {
			category = e.Category
			b.WriteString(headerStyle.Render(string(category)))
			b.WriteString("\n")
		}
		mark := dimStyle.Render("[ ]")
		name := dimStyle.Render(e.Name)
		if e.Unlocked {
			mark = goodStyle.Render("[x]")
			name = goodStyle.Render(e.Name)
		}
		fmt.Fprintf(&b, "  %s %s - %s (%dp)\n", mark, name, e.Description, e.Points)
	}
	return b.String()
}

// ChallengeView renders today's challenge board with streak totals.
func ChallengeView(p *challenge.Progress) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("DAILY CHALLENGES - %s", p.Day)))
	b.WriteString("\n\n")
	for _, c := range p.Challenges {
		mark := dimStyle.Render("[ ]")
		if p.Done[c.ID] {
			mark = goodStyle.Render("[x]")
		}
		fmt.Fprintf(&b, "  %s %s - %s (+%dp)\n", mark, c.Name, c.Description, c.Reward)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Streak: %d  Best: %d  Total points: %d\n",
		p.Streak, p.BestStreak, p.Points)
	return b.String()
}

// SavesView renders a game's save slots.
func SavesView(gameID string, infos []storage.SaveInfo) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("SAVES - %s", gameID)))
	b.WriteString("\n\n")
	for _, info := range infos {
		if !info.Exists {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  slot %d: empty", info.Slot)))
			b.WriteString("\n")
			continue
		}
		desc := fmt.Sprintf("  slot %d: %s", info.Slot, info.CreatedAt.Format("Jan 02 15:04"))
		if score, ok := info.Metadata["score"]; ok {
			desc += fmt.Sprintf("  score %v", score)
		}
		b.WriteString(desc)
		b.WriteString("\n")
	}
	return b.String()
}

// ResultBanner renders the post-session summary line.
func ResultBanner(score int, won, newHigh bool, unlocked []string, completed []challenge.Challenge) string {
	var b strings.Builder
	outcome := dangerStyle.Render("Game over.")
	if won {
		outcome = goodStyle.Render("You won!")
	}
	fmt.Fprintf(&b, "%s Final score: %d\n", outcome, score)
	if newHigh {
		b.WriteString(goodStyle.Render("New high score!"))
		b.WriteString("\n")
	}
	for _, id := range unlocked {
		if a := achievements.ByID(id); a != nil {
			fmt.Fprintf(&b, "%s %s - %s\n",
				goodStyle.Render("Achievement unlocked:"), a.Name, a.Description)
		}
	}
	for _, c := range completed {
		fmt.Fprintf(&b, "%s %s (+%dp)\n",
			goodStyle.Render("Challenge completed:"), c.Name, c.Reward)
	}
	return b.String()
}
