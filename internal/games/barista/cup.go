package barista

import (
	"math"
	"math/rand"

	"github.com/Dotan232/SweetBarista/internal/config"
	"github.com/Dotan232/SweetBarista/internal/core"
)

// SizeClass only affects how a cup looks.
type SizeClass int

const (
	SizeSmall SizeClass = iota
	SizeMedium
	SizeLarge
)

// String returns the size name.
func (s SizeClass) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	default:
		return "unknown"
	}
}

// slotLayout places cups on fixed slots left of the visible lane.
type slotLayout struct {
	start   float64
	spacing float64
}

func newSlotLayout(cupCount int, cfg config.CupConfig) slotLayout {
	spacing := cfg.SlotSpacing()
	return slotLayout{
		start:   -(float64(cupCount) * spacing) - cfg.OffscreenLead,
		spacing: spacing,
	}
}

func (l slotLayout) position(slot int) float64 {
	return l.start + float64(slot)*l.spacing
}

// Cup is one customer order riding the conveyor. Position is the cup center.
//
// Required, Name, SlotIndex and Size are fixed when the cup is created;
// only Current and Completed change during a level.
type Cup struct {
	X, Y          float64
	Width, Height float64
	Size          SizeClass
	Level         int
	SlotIndex     int
	Name          string
	Required      int
	Current       int
	Completed     bool
	Active        bool

	slotX      float64 // wrap target
	pxPerSpeed float64
	flashFor   float64 // overfill flash duration
	flashLeft  float64
}

func newCup(rng *rand.Rand, levelNumber, slot int, layout slotLayout, cfg config.CupConfig) Cup {
	size := cfg.Sizes[slot%len(cfg.Sizes)]
	x := layout.position(slot)
	return Cup{
		X:          x,
		Y:          cfg.Y,
		Width:      size.Width,
		Height:     size.Height,
		Size:       SizeClass(slot % len(cfg.Sizes)),
		Level:      levelNumber,
		SlotIndex:  slot,
		Name:       cfg.Names[rng.Intn(len(cfg.Names))],
		Required:   drawRequirement(rng, cfg.Distribution),
		Active:     true,
		slotX:      x,
		pxPerSpeed: cfg.PixelsPerSpeed,
		flashFor:   cfg.OverfillFlash,
	}
}

// drawRequirement picks 1, 2 or 3 cubes from the cumulative weights.
func drawRequirement(rng *rand.Rand, weights []float64) int {
	r := rng.Float64()
	cum := 0.0
	for i, w := range weights {
		cum += w
		if r < cum {
			return i + 1
		}
	}
	return len(weights)
}

// Bounds returns the collision box centered on the cup.
func (c *Cup) Bounds() core.RectF {
	return core.CenteredRect(c.X, c.Y, c.Width, c.Height)
}

// Progress returns the fill ratio in [0, 1].
func (c *Cup) Progress() float64 {
	if c.Required == 0 {
		return 0
	}
	return float64(c.Current) / float64(c.Required)
}

// Flashing reports whether the overfill flash is still showing.
func (c *Cup) Flashing() bool {
	return c.flashLeft > 0
}

// Advance moves the cup right by speed * pxPerSpeed * dt. Once the cup has
// fully left the lane it jumps back to its slot position. The order fields
// are never touched by a wrap. Returns true when a wrap happened.
func (c *Cup) Advance(dt, conveyorSpeed, laneWidth float64) (wrapped bool) {
	if c.flashLeft > 0 {
		c.flashLeft = math.Max(0, c.flashLeft-dt)
	}
	if !c.Active {
		return false
	}

	c.X += conveyorSpeed * c.pxPerSpeed * dt
	if c.X-c.Width/2 > laneWidth {
		c.X = c.slotX
		return true
	}
	return false
}

// CanAcceptSugar reports whether one more cube fits.
func (c *Cup) CanAcceptSugar() bool {
	return c.Active && c.Current < c.Required
}

// TryAcceptSugar adds one cube if it fits, completing the cup when the
// count reaches the requirement.
func (c *Cup) TryAcceptSugar() bool {
	if !c.CanAcceptSugar() {
		return false
	}
	c.Current++
	if c.Current == c.Required {
		c.Completed = true
	}
	return true
}

// TryOverfill resets a completed cup that received another cube.
func (c *Cup) TryOverfill() bool {
	if !c.Completed {
		return false
	}
	c.Current = 0
	c.Completed = false
	c.flashLeft = c.flashFor
	return true
}
