package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dotan232/SweetBarista/internal/config"
	"github.com/Dotan232/SweetBarista/internal/core"
	"github.com/Dotan232/SweetBarista/internal/storage"
)

// MenuItem is one selectable level in the menu.
type MenuItem struct {
	Level      int
	Difficulty config.DifficultyTier
	Time       float64
	Cups       int
	Speed      float64
	Best       int // best completed score, 0 if never completed
	Unlocked   bool
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	scrollOffset   int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel builds the level list. Unlocks come from progress, which may
// be nil to open level 1 only. store only supplies best scores and may be nil.
func NewMenuModel(store *storage.Store, progress *Progress, game config.BaristaConfig, cfg core.RuntimeConfig) MenuModel {
	var stats map[int]*storage.LevelStats
	if store != nil {
		if s, err := store.GetAllLevelStats(); err == nil {
			stats = s
		}
	}

	items := make([]MenuItem, 0, len(game.Levels))
	for _, l := range game.Levels {
		item := MenuItem{
			Level:      l.Level,
			Difficulty: l.Tier(),
			Time:       l.Time,
			Cups:       l.Cups,
			Speed:      l.Speed,
			Unlocked:   progress.Unlocked(l.Level),
		}
		if st, ok := stats[l.Level]; ok {
			item.Best = st.HighScore
		}
		items = append(items, item)
	}

	// Start on the first unfinished level
	cursor := min(progress.Cleared(), len(items)-1)

	m := MenuModel{
		items:     items,
		cursor:    max(cursor, 0),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	m.updateScroll()
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.updateScroll()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.updateScroll()
		}

	case MenuActionSelect:
		if len(m.items) > 0 && m.items[m.cursor].Unlocked {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// visibleRows is how many levels fit between the header and footer.
func (m MenuModel) visibleRows() int {
	return max(m.height-9, 3)
}

func (m *MenuModel) updateScroll() {
	rows := m.visibleRows()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+rows {
		m.scrollOffset = m.cursor - rows + 1
	}
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	menuLockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("S W E E T   B A R I S T A"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose a level", m.width))
	b.WriteString("\n\n")

	end := min(m.scrollOffset+m.visibleRows(), len(m.items))
	for i := m.scrollOffset; i < end; i++ {
		item := m.items[i]
		best := "-"
		if item.Best > 0 {
			best = fmt.Sprintf("%d", item.Best)
		}
		line := fmt.Sprintf("Level %2d  %-9s  %3.0fs  %d cups  best %5s",
			item.Level, item.Difficulty, item.Time, item.Cups, best)

		switch {
		case i == m.cursor:
			line = menuCursorStyle.Render("> " + line)
		case !item.Unlocked:
			line = menuLockedStyle.Render("  " + line)
		default:
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen level, or nil if none was chosen.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Level           int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the level picker and returns the selection.
func RunMenu(store *storage.Store, progress *Progress, game config.BaristaConfig, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, progress, game, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Level = m.Selected().Level
	default:
		result.Quit = true
	}
	return result, nil
}
