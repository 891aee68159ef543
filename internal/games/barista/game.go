// Package barista implements Sweet Barista: a hand drops sugar cubes onto
// coffee cups riding a conveyor belt before the level timer runs out.
//
// The Session is the simulation. Game wraps it in the fixed-tick
// Reset/Step/Render contract the terminal platform drives.
package barista

import (
	"github.com/Dotan232/SweetBarista/internal/core"
)

// GameID identifies the game in storage and logs.
const GameID = "barista"

// Minimum terminal size for a readable playfield.
const (
	MinScreenW = 40
	MinScreenH = 16
)

// Game adapts a Session to the platform's tick loop.
type Game struct {
	opts    Options
	runtime core.RuntimeConfig
	session *Session
}

// New creates a game. The session is built on Reset.
func New(opts Options) *Game {
	return &Game{opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Sweet Barista"
}

// Reset discards the current session and starts a new one in the menu.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	opts := g.opts
	opts.Seed = runtime.Seed
	g.session = NewSession(opts)
	g.session.FinishLoading()
}

// Resize adapts rendering to a new terminal size without touching the
// simulation, which runs in world coordinates.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
}

// Step applies one frame of input and advances the simulation one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.session.Restart()
	}
	if in.Has(core.ActionPause) {
		g.session.TogglePause()
	}
	if in.Has(core.ActionDrop) || in.Has(core.ActionConfirm) {
		g.session.Confirm()
	}

	g.session.Update(g.runtime.TickSeconds())

	return core.StepResult{State: g.State()}
}

// State returns the platform-level status.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.TotalScore(),
		Level:    g.session.LevelNumber(),
		GameOver: g.session.State() == StateGameComplete,
		Paused:   g.session.State() == StatePaused,
	}
}

// Session exposes the underlying simulation.
func (g *Game) Session() *Session {
	return g.session
}

// Snapshot captures the current simulation state.
func (g *Game) Snapshot() Snapshot {
	return g.session.Snapshot()
}
