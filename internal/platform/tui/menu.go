// Package tui provides the Bubble Tea screens around gameplay: the
// game picker, the scoreboard browser, and the SSH dashboard served
// via Wish. Gameplay itself runs outside Bubble Tea, straight on the
// terminal.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Querulantenkind/cli-game-collection/internal/registry"
	"github.com/Querulantenkind/cli-game-collection/internal/storage"
)

var (
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)
	menuMutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// MenuItem is one selectable game.
type MenuItem struct {
	GameID string
	Title  string
	High   int
}

// MenuModel is the Bubble Tea model for the game picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel builds the picker from the registry, annotated with high
// scores when a store is available.
func NewMenuModel(store *storage.Store, width, height int) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			if high, err := store.HighScore(g.ID); err == nil {
				item.High = high
			}
		}
		items = append(items, item)
	}
	return MenuModel{items: items, width: width, height: height}
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "up", "k", "w":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j", "s":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter", " ":
			if len(m.items) > 0 {
				sel := m.items[m.cursor]
				m.selected = &sel
				return m, tea.Quit
			}
		case "tab":
			m.openScoreboard = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  A R C A D E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuMutedStyle.Render("Select a game"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item.Title)
		}
		if item.High > 0 {
			line += menuMutedStyle.Render(fmt.Sprintf("  (best %d)", item.High))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuMutedStyle.Render(controls), m.width))
	b.WriteString("\n")
	return b.String()
}

// centerText centers text within the given width. Styled text is wider
// than it looks; measure with lipgloss.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is the outcome of one menu run.
type MenuResult struct {
	GameID          string
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the picker and reports what the player chose.
func RunMenu(store *storage.Store, width, height int) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, width, height), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{}, fmt.Errorf("tui: menu failed: %w", err)
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Quit: true}, nil
	}
	switch {
	case m.openScoreboard:
		return MenuResult{WantsScoreboard: true}, nil
	case m.selected != nil:
		return MenuResult{GameID: m.selected.GameID}, nil
	default:
		return MenuResult{Quit: true}, nil
	}
}
