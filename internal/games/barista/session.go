package barista

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/Dotan232/SweetBarista/internal/config"
)

// SessionState is the coarse game mode, separate from the level's phase.
type SessionState int

const (
	StateLoading SessionState = iota
	StateMenu
	StatePlaying
	StatePaused
	StateLevelComplete
	StateLevelFailed
	StateGameComplete
)

// String returns the state name.
func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateLevelComplete:
		return "levelComplete"
	case StateLevelFailed:
		return "levelFailed"
	case StateGameComplete:
		return "gameComplete"
	default:
		return "unknown"
	}
}

// Options configures a Session. Zero values are replaced with defaults.
type Options struct {
	Config     config.BaristaConfig
	Seed       int64
	StartLevel int // first level of the campaign, 1 if unset
	Logger     *log.Logger
	Events     EventSink
	Sound      SoundPlayer
	Images     ImageSource
}

func (o Options) withDefaults() Options {
	if len(o.Config.Levels) == 0 {
		o.Config = config.DefaultBaristaConfig()
	}
	if o.StartLevel == 0 {
		o.StartLevel = 1
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Events == nil {
		o.Events = NopSink{}
	}
	if o.Sound == nil {
		o.Sound = NopSoundPlayer{}
	}
	if o.Images == nil {
		o.Images = NopImageSource{}
	}
	return o
}

// LevelResult summarises a finished level.
type LevelResult struct {
	Level          int
	Completed      bool
	Score          int
	TimeRemaining  float64
	SugarDelivered int
	CupsCompleted  int
	CupsNeeded     int
}

// Session owns the active level, its cups and the live sugar cubes, and
// advances them one frame at a time. It is not safe for concurrent use.
type Session struct {
	cfg    config.BaristaConfig
	rng    *rand.Rand
	log    *log.Logger
	events EventSink
	sound  SoundPlayer
	images ImageSource

	state       SessionState
	startLevel  int
	levelNumber int
	level       Level
	cups        []Cup
	cubes       []SugarCube
	hand        Hand
	conveyor    Conveyor

	sugarDelivered int
	totalScore     int
	frame          uint64
	results        []LevelResult
}

// NewSession creates a session in the loading state.
func NewSession(opts Options) *Session {
	opts = opts.withDefaults()
	s := &Session{
		cfg:        opts.Config,
		rng:        rand.New(rand.NewSource(opts.Seed)),
		log:        opts.Logger,
		events:     opts.Events,
		sound:      opts.Sound,
		images:     opts.Images,
		state:      StateLoading,
		startLevel: opts.StartLevel,
		hand:       newHand(opts.Config.Hand),
		conveyor:   newConveyor(opts.Config.Conveyor, opts.Config.Cups.PixelsPerSpeed),
	}
	s.levelNumber = s.resolveLevelNumber(opts.StartLevel)
	return s
}

// FinishLoading moves from loading to the menu once assets are ready.
func (s *Session) FinishLoading() bool {
	if s.state != StateLoading {
		return false
	}
	s.state = StateMenu
	s.log.Debug("session ready", "level", s.levelNumber)
	return true
}

// Start leaves the menu and begins the current level.
func (s *Session) Start() bool {
	if s.state != StateMenu {
		return false
	}
	s.beginLevel()
	return true
}

// StartAt selects the level to play from the menu. Unknown numbers fall
// back to the first level.
func (s *Session) StartAt(number int) bool {
	if s.state != StateMenu {
		return false
	}
	s.levelNumber = s.resolveLevelNumber(number)
	s.beginLevel()
	return true
}

// Confirm is the single primary action: start from the menu, drop while
// playing, advance after a win, retry after a loss, and restart the
// campaign after the last level.
func (s *Session) Confirm() bool {
	switch s.state {
	case StateMenu:
		return s.Start()
	case StatePlaying:
		return s.RequestDrop()
	case StateLevelComplete:
		return s.NextLevel()
	case StateLevelFailed:
		return s.RetryLevel()
	case StateGameComplete:
		return s.Restart()
	default:
		return false
	}
}

// RequestDrop spawns a cube at the hand when playing and the hand is idle
// with sugar. Other requests are ignored.
func (s *Session) RequestDrop() bool {
	if s.state != StatePlaying {
		return false
	}
	x, y, ok := s.hand.Drop()
	if !ok {
		return false
	}
	s.cubes = append(s.cubes, newSugarCube(s.rng, x, y, s.cfg.Sugar))
	s.emit(EventSugarDropped)
	return true
}

// Pause freezes a level in progress.
func (s *Session) Pause() bool {
	if s.state != StatePlaying || !s.level.Pause() {
		return false
	}
	s.state = StatePaused
	return true
}

// Resume continues a paused level.
func (s *Session) Resume() bool {
	if s.state != StatePaused || !s.level.Resume() {
		return false
	}
	s.state = StatePlaying
	return true
}

// TogglePause pauses or resumes depending on the current state.
func (s *Session) TogglePause() bool {
	if s.state == StatePaused {
		return s.Resume()
	}
	return s.Pause()
}

// NextLevel advances after a completed level. After the last configured
// level the session becomes gameComplete.
func (s *Session) NextLevel() bool {
	if s.state != StateLevelComplete {
		return false
	}
	if s.levelNumber >= s.cfg.LastLevel() {
		s.state = StateGameComplete
		s.cups = nil
		s.cubes = nil
		s.emit(EventGameComplete)
		s.log.Info("campaign complete", "score", s.totalScore)
		return true
	}
	s.levelNumber++
	s.beginLevel()
	return true
}

// RetryLevel rebuilds the failed level with fresh cups.
func (s *Session) RetryLevel() bool {
	if s.state != StateLevelFailed {
		return false
	}
	s.beginLevel()
	return true
}

// Restart returns to the menu at the starting level with a zero score.
// It is ignored while loading.
func (s *Session) Restart() bool {
	if s.state == StateLoading {
		return false
	}
	s.state = StateMenu
	s.levelNumber = s.resolveLevelNumber(s.startLevel)
	s.totalScore = 0
	s.cups = nil
	s.cubes = nil
	s.hand = newHand(s.cfg.Hand)
	return true
}

// Update advances the simulation by dt seconds. Only the playing state
// moves anything. Order: level, sugar cubes with collisions, pruning,
// cups, conveyor.
func (s *Session) Update(dt float64) {
	if s.state != StatePlaying || dt <= 0 {
		return
	}
	s.frame++

	if s.level.Update(dt, s.CupsCompleted(), len(s.cups), s.sugarDelivered) {
		s.emit(EventTimeWarning)
	}
	switch s.level.Phase {
	case PhaseComplete:
		s.finishLevel(true)
		return
	case PhaseFailed:
		s.finishLevel(false)
		return
	}

	s.hand.Update(dt)

	floorY := s.cfg.World.FloorY()
	for i := range s.cubes {
		cube := &s.cubes[i]
		if cube.Advance(dt, floorY) {
			s.emit(EventSugarMissed)
			continue
		}
		if cube.Falling() {
			s.resolve(cube)
		}
	}
	s.pruneCubes()

	speed := s.level.Config.Speed
	for i := range s.cups {
		s.cups[i].Advance(dt, speed, s.cfg.World.Width)
	}
	s.conveyor.Advance(dt, speed)
}

func (s *Session) resolve(cube *SugarCube) {
	idx, res := resolveCollision(cube, s.cups)
	switch res {
	case ResolutionAccepted:
		s.sugarDelivered++
		s.emit(EventSugarHit)
		if s.cups[idx].Completed {
			s.emit(EventCupCompleted)
		}
	case ResolutionOverfilled:
		s.emit(EventOverfill)
		s.log.Debug("cup overfilled", "cup", s.cups[idx].Name, "completed", s.CupsCompleted())
	}
}

// pruneCubes compacts the cube slice in place, keeping active cubes in order.
func (s *Session) pruneCubes() {
	kept := s.cubes[:0]
	for _, c := range s.cubes {
		if c.Active() {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(s.cubes); i++ {
		s.cubes[i] = SugarCube{}
	}
	s.cubes = kept
}

func (s *Session) beginLevel() {
	lvl, fellBack := NewLevel(s.cfg.Levels, s.levelNumber, s.rng, s.cfg.World.TimeWarningAt)
	if fellBack {
		s.log.Warn("unknown level, falling back", "requested", s.levelNumber, "level", lvl.Number())
	}
	s.levelNumber = lvl.Number()
	s.level = lvl

	layout := newSlotLayout(lvl.Config.Cups, s.cfg.Cups)
	s.cups = make([]Cup, lvl.Config.Cups)
	for i := range s.cups {
		s.cups[i] = newCup(s.rng, s.levelNumber, i, layout, s.cfg.Cups)
	}
	s.cubes = s.cubes[:0]
	s.hand = newHand(s.cfg.Hand)
	s.sugarDelivered = 0

	s.level.Start()
	s.state = StatePlaying
	s.log.Info("level started",
		"level", s.levelNumber,
		"difficulty", lvl.Config.Difficulty,
		"cups", len(s.cups),
		"sugar_needed", s.ExactSugarNeeded(),
		"sugar_target", lvl.TotalSugarTarget,
	)
}

func (s *Session) finishLevel(completed bool) {
	result := LevelResult{
		Level:          s.levelNumber,
		Completed:      completed,
		Score:          s.level.Score,
		TimeRemaining:  s.level.TimeRemaining,
		SugarDelivered: s.sugarDelivered,
		CupsCompleted:  s.level.CupsCompleted,
		CupsNeeded:     s.level.CupsNeeded,
	}
	s.results = append(s.results, result)

	if completed {
		s.state = StateLevelComplete
		s.totalScore += s.level.Score
		s.emit(EventLevelComplete)
		s.log.Info("level complete", "level", s.levelNumber, "score", s.level.Score, "total", s.totalScore)
		return
	}
	s.state = StateLevelFailed
	s.emit(EventLevelFailed)
	s.log.Info("level failed", "level", s.levelNumber, "cups", result.CupsCompleted, "needed", result.CupsNeeded)
}

func (s *Session) emit(e Event) {
	s.events.Emit(e)
	if name := e.SoundName(); name != "" {
		s.sound.PlaySound(name)
	}
}

func (s *Session) resolveLevelNumber(n int) int {
	if _, ok := s.cfg.Level(n); ok {
		return n
	}
	return s.cfg.Levels[0].Level
}

// CupsCompleted counts completed cups. It is derived from the cups, so an
// overfill lowers it by exactly one and it never goes below zero.
func (s *Session) CupsCompleted() int {
	n := 0
	for i := range s.cups {
		if s.cups[i].Completed {
			n++
		}
	}
	return n
}

// ExactSugarNeeded sums the requirements of the current cups.
func (s *Session) ExactSugarNeeded() int {
	n := 0
	for i := range s.cups {
		n += s.cups[i].Required
	}
	return n
}

// DrainResults returns level results recorded since the last call.
func (s *Session) DrainResults() []LevelResult {
	out := s.results
	s.results = nil
	return out
}

// State returns the session state.
func (s *Session) State() SessionState { return s.state }

// LevelNumber returns the current (or next) level number.
func (s *Session) LevelNumber() int { return s.levelNumber }

// Level returns a copy of the active level.
func (s *Session) Level() Level { return s.level }

// Cups returns the live cups. Callers must not modify them.
func (s *Session) Cups() []Cup { return s.cups }

// Cubes returns the live sugar cubes. Callers must not modify them.
func (s *Session) Cubes() []SugarCube { return s.cubes }

// Hand returns a copy of the hand.
func (s *Session) Hand() Hand { return s.hand }

// Conveyor returns a copy of the belt state.
func (s *Session) Conveyor() Conveyor { return s.conveyor }

// SugarDelivered returns cubes accepted by cups in the current level.
func (s *Session) SugarDelivered() int { return s.sugarDelivered }

// TotalScore returns the sum of completed level scores.
func (s *Session) TotalScore() int { return s.totalScore }

// Config returns the configuration the session runs with.
func (s *Session) Config() config.BaristaConfig { return s.cfg }

// Images returns the asset source for renderers.
func (s *Session) Images() ImageSource { return s.images }
