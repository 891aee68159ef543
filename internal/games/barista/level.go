package barista

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Dotan232/SweetBarista/internal/config"
)

// LevelPhase is the internal state of a level.
type LevelPhase int

const (
	PhaseNotStarted LevelPhase = iota
	PhaseRunning
	PhasePaused
	PhaseComplete
	PhaseFailed
)

// String returns the phase name.
func (p LevelPhase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseComplete:
		return "complete"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TimerColor classifies the remaining time for display.
type TimerColor int

const (
	TimerNormal  TimerColor = iota // more than half left
	TimerWarning                   // 20% to 50% left
	TimerDanger                    // under 20% left
)

// String returns the color class name.
func (c TimerColor) String() string {
	switch c {
	case TimerNormal:
		return "normal"
	case TimerWarning:
		return "warning"
	case TimerDanger:
		return "danger"
	default:
		return "unknown"
	}
}

// Level is one timed run of a level table entry.
type Level struct {
	Config           config.LevelConfig
	TimeRemaining    float64
	TotalSugarTarget int // drawn once from Config.TotalSugar
	Phase            LevelPhase
	Score            int

	CupsCompleted  int
	CupsNeeded     int
	SugarDelivered int

	warningAt float64
	warned    bool
}

// NewLevel builds the level with the given number. Unknown numbers fall
// back to the first entry of the table; fellBack reports when that happened.
func NewLevel(levels []config.LevelConfig, number int, rng *rand.Rand, warningAt float64) (lvl Level, fellBack bool) {
	var entry config.LevelConfig
	found := false
	for _, l := range levels {
		if l.Level == number {
			entry, found = l, true
			break
		}
	}
	if !found {
		entry = levels[0]
		fellBack = true
	}

	lo, hi := entry.TotalSugar[0], entry.TotalSugar[1]
	target := lo
	if hi > lo {
		target += rng.Intn(hi - lo + 1)
	}

	return Level{
		Config:           entry,
		TimeRemaining:    entry.Time,
		TotalSugarTarget: target,
		Phase:            PhaseNotStarted,
		CupsNeeded:       entry.Cups,
		warningAt:        warningAt,
	}, fellBack
}

// Number returns the level number.
func (l *Level) Number() int {
	return l.Config.Level
}

// Start begins the countdown.
func (l *Level) Start() {
	if l.Phase == PhaseNotStarted {
		l.Phase = PhaseRunning
	}
}

// Update advances the timer and checks the end conditions. It does nothing
// unless the level is running. The returned flag is true on the single
// update where the time warning threshold is crossed.
func (l *Level) Update(dt float64, cupsCompleted, cupsNeeded, sugarDelivered int) (timeWarning bool) {
	if l.Phase != PhaseRunning {
		return false
	}

	l.TimeRemaining = math.Max(0, l.TimeRemaining-dt)
	l.CupsCompleted = cupsCompleted
	l.CupsNeeded = cupsNeeded
	l.SugarDelivered = sugarDelivered

	if !l.warned && l.TimeRemaining <= l.warningAt {
		l.warned = true
		timeWarning = true
	}

	// All cups, never partial progress
	if cupsCompleted > 0 && cupsCompleted == cupsNeeded {
		l.Phase = PhaseComplete
		l.Score = l.computeScore()
		return timeWarning
	}
	if l.TimeRemaining <= 0 {
		l.Phase = PhaseFailed
	}
	return timeWarning
}

// Pause freezes the timer. Only a running level can be paused.
func (l *Level) Pause() bool {
	if l.Phase != PhaseRunning {
		return false
	}
	l.Phase = PhasePaused
	return true
}

// Resume unfreezes a paused level.
func (l *Level) Resume() bool {
	if l.Phase != PhasePaused {
		return false
	}
	l.Phase = PhaseRunning
	return true
}

// Finished reports whether the level completed or failed.
func (l *Level) Finished() bool {
	return l.Phase == PhaseComplete || l.Phase == PhaseFailed
}

func (l *Level) computeScore() int {
	timeBonus := int(math.Floor(math.Max(0, l.TimeRemaining) * 10))
	sugarBonus := 0
	if l.TotalSugarTarget > 0 {
		sugarBonus = int(math.Floor(100 * float64(l.SugarDelivered) / float64(l.TotalSugarTarget)))
	}
	return timeBonus + sugarBonus
}

// TimerPercent returns the remaining time as a percentage of the limit.
func (l *Level) TimerPercent() float64 {
	if l.Config.Time <= 0 {
		return 0
	}
	return l.TimeRemaining / l.Config.Time * 100
}

// TimerColor returns the display class of the remaining time.
func (l *Level) TimerColor() TimerColor {
	pct := l.TimerPercent()
	switch {
	case pct > 50:
		return TimerNormal
	case pct > 20:
		return TimerWarning
	default:
		return TimerDanger
	}
}

// SecondsLeft rounds the remaining time up to whole seconds.
func (l *Level) SecondsLeft() int {
	return int(math.Ceil(l.TimeRemaining))
}

// DisplayTime formats the remaining time as M:SS, truncating fractions.
func (l *Level) DisplayTime() string {
	secs := int(math.Floor(l.TimeRemaining))
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
