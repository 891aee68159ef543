package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate rejects configurations the simulation cannot run with.
func (c BaristaConfig) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return invalid("world size must be positive, got %vx%v", c.World.Width, c.World.Height)
	}
	if c.World.FloorOffset < 0 || c.World.FloorOffset >= c.World.Height {
		return invalid("floor offset %v outside the world", c.World.FloorOffset)
	}
	if c.Sugar.Size <= 0 || c.Sugar.Gravity <= 0 {
		return invalid("sugar size and gravity must be positive")
	}
	if c.Sugar.Damping <= 0 || c.Sugar.Damping > 1 {
		return invalid("sugar damping %v must be in (0, 1]", c.Sugar.Damping)
	}
	if c.Sugar.SplashDuration <= 0 || c.Sugar.BounceDuration <= 0 || c.Sugar.MaxLifetime <= 0 {
		return invalid("sugar durations must be positive")
	}
	if err := c.Cups.validate(); err != nil {
		return err
	}
	if c.Hand.DropDuration < 0 || c.Hand.ReturnDuration < 0 {
		return invalid("hand durations must not be negative")
	}
	if c.Conveyor.TextureWidth <= 0 {
		return invalid("conveyor texture width must be positive")
	}
	return validateLevels(c.Levels)
}

func (c CupConfig) validate() error {
	if len(c.Sizes) != 3 {
		return invalid("cups need exactly 3 sizes (small, medium, large), got %d", len(c.Sizes))
	}
	for _, s := range c.Sizes {
		if s.Width <= 0 || s.Height <= 0 {
			return invalid("cup size %q must have positive dimensions", s.Name)
		}
	}
	if len(c.Distribution) != 3 {
		return invalid("cup distribution needs 3 weights (1, 2, 3 cubes), got %d", len(c.Distribution))
	}
	sum := 0.0
	for _, w := range c.Distribution {
		if w < 0 {
			return invalid("cup distribution weight %v is negative", w)
		}
		sum += w
	}
	if math.Abs(sum-1) > 1e-6 {
		return invalid("cup distribution sums to %v, expected 1", sum)
	}
	if len(c.Names) == 0 {
		return invalid("customer name pool is empty")
	}
	if c.PixelsPerSpeed <= 0 {
		return invalid("pixels per speed unit must be positive")
	}
	return nil
}

func validateLevels(levels []LevelConfig) error {
	if len(levels) == 0 {
		return invalid("level table is empty")
	}
	for i, l := range levels {
		if l.Level != i+1 {
			return invalid("level %d listed at position %d, levels must be numbered 1..n in order", l.Level, i+1)
		}
		if l.Time <= 0 || l.Speed <= 0 || l.Cups <= 0 {
			return invalid("level %d needs positive time, speed and cups", l.Level)
		}
		if l.TotalSugar[0] <= 0 || l.TotalSugar[0] > l.TotalSugar[1] {
			return invalid("level %d sugar range %v is inverted or empty", l.Level, l.TotalSugar)
		}
	}
	return nil
}
