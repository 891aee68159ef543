package barista

import "github.com/Dotan232/SweetBarista/internal/config"

// HandState is the state of the hand that drops sugar.
type HandState int

const (
	HandIdle      HandState = iota // holding a cube, ready
	HandDropping                   // releasing
	HandReturning                  // fetching the next cube
)

// String returns the state name.
func (s HandState) String() string {
	switch s {
	case HandIdle:
		return "idle"
	case HandDropping:
		return "dropping"
	case HandReturning:
		return "returning"
	default:
		return "unknown"
	}
}

// Hand gates drops: one cube at a time, with a short cooldown.
type Hand struct {
	X, Y     float64
	Height   float64
	State    HandState
	HasSugar bool

	timer float64
	cfg   config.HandConfig
}

func newHand(cfg config.HandConfig) Hand {
	return Hand{
		X:        cfg.X,
		Y:        cfg.Y,
		Height:   cfg.Height,
		State:    HandIdle,
		HasSugar: true,
		cfg:      cfg,
	}
}

// CanDrop reports whether a drop would be accepted right now.
func (h *Hand) CanDrop() bool {
	return h.State == HandIdle && h.HasSugar
}

// DropPoint is where a released cube appears.
func (h *Hand) DropPoint() (x, y float64) {
	return h.X, h.Y + h.Height/2 + h.cfg.DropOffset
}

// Drop releases the held cube and returns its spawn point.
func (h *Hand) Drop() (x, y float64, ok bool) {
	if !h.CanDrop() {
		return 0, 0, false
	}
	x, y = h.DropPoint()
	h.State = HandDropping
	h.HasSugar = false
	h.timer = 0
	return x, y, true
}

// Update advances the drop and return animations.
func (h *Hand) Update(dt float64) {
	switch h.State {
	case HandDropping:
		h.timer += dt
		if h.timer >= h.cfg.DropDuration {
			h.State = HandReturning
			h.timer = 0
		}
	case HandReturning:
		h.timer += dt
		if h.timer >= h.cfg.ReturnDuration {
			h.State = HandIdle
			h.HasSugar = true
			h.timer = 0
		}
	}
}
