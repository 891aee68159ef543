package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Dotan232/SweetBarista/internal/config"
	"github.com/Dotan232/SweetBarista/internal/core"
	"github.com/Dotan232/SweetBarista/internal/games/barista"
	"github.com/Dotan232/SweetBarista/internal/storage"
)

// footerRows is the space below the playfield for the timer bar and help.
const footerRows = 2

// AudioControl is the audio backend the model drives. The game plays
// effects through it; the model flips it on and off.
type AudioControl interface {
	barista.SoundPlayer
	SetSoundEnabled(on bool)
	SoundEnabled() bool
	SetMusicEnabled(on bool)
	MusicEnabled() bool
}

// Options configures a game Model.
type Options struct {
	Game       config.BaristaConfig
	Runtime    core.RuntimeConfig
	StartLevel int
	Store      *storage.Store // nil runs without persistence
	Progress   *Progress      // levels completed here unlock the next one
	Audio      AudioControl   // nil runs silent
	Logger     *log.Logger
}

// Model is the Bubble Tea model for one Sweet Barista campaign.
type Model struct {
	game       *barista.Game
	screen     *core.Screen
	store      *storage.Store
	progress   *Progress
	audio      AudioControl
	logger     *log.Logger
	config     core.RuntimeConfig
	runID      string
	keyMapper  *KeyMapper
	help       help.Model
	timerBar   progress.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	exitOnBack bool // standalone program: leaving ends it
	runClosed  bool
}

// NewModel creates a new Bubble Tea model for a campaign.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	gameOpts := barista.Options{
		Config:     opts.Game,
		StartLevel: opts.StartLevel,
		Logger:     logger,
	}
	if opts.Audio != nil {
		gameOpts.Sound = opts.Audio
	}

	bar := progress.New(progress.WithGradient("#5A3A22", "#F5DEB3"), progress.WithoutPercentage())
	bar.Width = max(cfg.ScreenW-16, 10)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       barista.New(gameOpts),
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerRows, 1)),
		store:      opts.Store,
		progress:   opts.Progress,
		audio:      opts.Audio,
		logger:     logger,
		config:     cfg,
		runID:      uuid.NewString(),
		keyMapper:  NewKeyMapper(),
		help:       h,
		timerBar:   bar,
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	if m.store != nil {
		if err := m.store.StartRun(m.runID); err != nil {
			m.logger.Warn("could not record run", "run", m.runID, "error", err)
		}
	}

	return tickCmd(m.config)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.IsBack(msg) && m.canLeave() {
		m.closeRun(m.game.Session().TotalScore())
		m.backToMenu = true
		if m.exitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.closeRun(m.game.Session().TotalScore())
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionMute:
		// Handled here, the simulation never sees it
		m.toggleAudio()
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// canLeave reports whether the player may go back to the level menu
// without abandoning a level in progress.
func (m Model) canLeave() bool {
	switch m.game.Session().State() {
	case barista.StatePlaying:
		return false
	default:
		return true
	}
}

// handleResize processes window resize events. The simulation works in
// world coordinates, so only the screen buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-footerRows, 1))
	m.game.Resize(msg.Width, msg.Height)
	m.timerBar.Width = max(msg.Width-16, 10)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	session := m.game.Session()
	restarted := m.inputFrame.Has(core.ActionRestart) && session.State() != barista.StateMenu
	prevTotal := session.TotalScore()

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	m.saveResults()
	if restarted {
		// Restart wipes the campaign score, so the old run ends here
		m.closeRun(prevTotal)
	}
	if m.gameState.GameOver {
		m.closeRun(session.TotalScore())
	} else if m.runClosed && session.State() == barista.StatePlaying {
		// Played again after finishing: that is a new run
		m.openRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config)
}

func (m *Model) saveResults() {
	for _, r := range m.game.Session().DrainResults() {
		m.logger.Info("level finished",
			"run", m.runID,
			"level", r.Level,
			"completed", r.Completed,
			"score", r.Score,
		)
		if r.Completed {
			m.progress.Record(r.Level)
		}
		if m.store == nil {
			continue
		}
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SaveLevelResult(storage.LevelRecord{
			RunID:          m.runID,
			Level:          r.Level,
			Completed:      r.Completed,
			Score:          r.Score,
			TimeRemaining:  r.TimeRemaining,
			SugarDelivered: r.SugarDelivered,
			CupsCompleted:  r.CupsCompleted,
			CupsNeeded:     r.CupsNeeded,
		})
	}
}

// closeRun stores the final campaign score once.
func (m *Model) closeRun(total int) {
	if m.runClosed {
		return
	}
	m.saveResults()
	m.runClosed = true
	if m.store == nil {
		return
	}
	if err := m.store.FinishRun(m.runID, total); err != nil {
		m.logger.Warn("could not finish run", "run", m.runID, "error", err)
	}
}

func (m *Model) openRun() {
	m.runID = uuid.NewString()
	m.runClosed = false
	if m.store != nil {
		//nolint:errcheck // Best-effort, scores still save without a run row
		m.store.StartRun(m.runID)
	}
}

// toggleAudio mutes or unmutes effects and music together and remembers
// the choice.
func (m *Model) toggleAudio() {
	if m.audio == nil {
		return
	}
	on := !m.audio.SoundEnabled()
	m.audio.SetSoundEnabled(on)
	m.audio.SetMusicEnabled(on)
	m.logger.Debug("audio toggled", "on", on)

	if m.store != nil {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.store.SavePrefs(storage.Prefs{SoundEnabled: on, MusicEnabled: on})
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".barista", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

var (
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	snap := m.game.Snapshot()
	timer := fmt.Sprintf(" %s %s", m.timerBar.ViewAs(snap.TimerPercent/100), snap.DisplayTime)
	if snap.State != barista.StatePlaying && snap.State != barista.StatePaused {
		timer = ""
	}

	status := ""
	if m.audio != nil && !m.audio.SoundEnabled() {
		status = mutedStyle.Render(" [muted]")
	}

	return RenderScreen(m.screen) + "\n" +
		timer + "\n" +
		footerStyle.Render(" "+m.help.View(m.keyMapper.Keys())) + status
}

// Game exposes the running game.
func (m Model) Game() *barista.Game {
	return m.game
}

// RunID identifies the campaign in storage.
func (m Model) RunID() string {
	return m.runID
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the level menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for one campaign. It reports whether
// the player asked to go back to the level menu.
func Run(opts Options) (backToMenu bool, err error) {
	model := NewModel(opts)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
