package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Querulantenkind/cli-game-collection/internal/achievements"
	"github.com/Querulantenkind/cli-game-collection/internal/challenge"
	"github.com/Querulantenkind/cli-game-collection/internal/registry"
	"github.com/Querulantenkind/cli-game-collection/internal/storage"
)

type dashboardTab int

const (
	tabScores dashboardTab = iota
	tabStats
	tabAchievements
	tabChallenges
	tabCount
)

var tabNames = [tabCount]string{"Scores", "Stats", "Achievements", "Challenges"}

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("241"))
	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
)

// DashboardModel is the read-only board served over SSH: high scores,
// statistics, achievements and the daily challenge status. Gameplay stays
// local; remote sessions only browse.
type DashboardModel struct {
	store        *storage.Store
	achievements *achievements.Service
	challenges   *challenge.Service

	tab       dashboardTab
	board     ScoreboardModel
	body      string
	width     int
	height    int
	keys      BoardKeyMap
	loadError error
	quitting  bool
}

// NewDashboardModel builds a dashboard over an open store.
func NewDashboardModel(store *storage.Store, ach *achievements.Service, ch *challenge.Service, width, height int) DashboardModel {
	m := DashboardModel{
		store:        store,
		achievements: ach,
		challenges:   ch,
		board:        NewScoreboardModel(store, width, height-2),
		width:        width,
		height:       height,
		keys:         DefaultBoardKeyMap(),
	}
	m.loadBody()
	return m
}

// loadBody refreshes the text body for the non-score tabs.
func (m *DashboardModel) loadBody() {
	m.loadError = nil
	switch m.tab {
	case tabStats:
		all, err := m.store.AllStats()
		if err != nil {
			m.loadError = err
			return
		}
		m.body = StatsView(all)
	case tabAchievements:
		entries, err := m.achievements.List()
		if err != nil {
			m.loadError = err
			return
		}
		earned, total, err := m.achievements.Points()
		if err != nil {
			m.loadError = err
			return
		}
		m.body = AchievementsView(entries, earned, total)
	case tabChallenges:
		progress, err := m.challenges.TodayProgress()
		if err != nil {
			m.loadError = err
			return
		}
		m.body = ChallengeView(progress)
	}
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		board, _ := m.board.Update(tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 2})
		if b, ok := board.(ScoreboardModel); ok {
			m.board = b
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.tab = (m.tab + 1) % tabCount
			m.loadBody()
			return m, nil
		case "shift+tab":
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.loadBody()
			return m, nil
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.tab == tabScores {
		board, cmd := m.board.Update(msg)
		if b, ok := board.(ScoreboardModel); ok {
			m.board = b
		}
		if m.board.WantsBack() {
			m.quitting = true
			return m, tea.Quit
		}
		return m, cmd
	}
	return m, nil
}

func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	tabs := make([]string, 0, tabCount)
	for i, name := range tabNames {
		style := tabStyle
		if dashboardTab(i) == m.tab {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(name))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var body string
	switch {
	case m.loadError != nil:
		body = dangerStyle.Render("load error: " + m.loadError.Error())
	case m.tab == tabScores:
		body = m.board.View()
	default:
		body = m.body
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body)
}

func newDashboardServices(store *storage.Store) (*achievements.Service, *challenge.Service) {
	ach := achievements.New(store, store, len(registry.List()), nil)
	ch := challenge.New(store, nil)
	return ach, ch
}
