package barista

import (
	"math"
	"math/rand"

	"github.com/Dotan232/SweetBarista/internal/config"
	"github.com/Dotan232/SweetBarista/internal/core"
)

// CubeState is the lifecycle state of a sugar cube.
type CubeState int

const (
	CubeFalling   CubeState = iota // under gravity, eligible for collisions
	CubeSplashing                  // landed on the floor, fading out
	CubeBouncing                   // knocked off an overfilled cup
	CubeInactive                   // finished, pruned at the end of the frame
)

// String returns the state name.
func (s CubeState) String() string {
	switch s {
	case CubeFalling:
		return "falling"
	case CubeSplashing:
		return "splashing"
	case CubeBouncing:
		return "bouncing"
	case CubeInactive:
		return "inactive"
	default:
		return "unknown"
	}
}

// SugarCube is a single falling projectile. Position is the cube center.
type SugarCube struct {
	X, Y     float64
	VX, VY   float64
	Rotation float64
	Spin     float64 // rad/s
	Opacity  float64
	Scale    float64
	State    CubeState

	age          float64 // seconds alive, capped by MaxLifetime while falling
	animElapsed  float64 // seconds into the splash or bounce animation
	bounceStartY float64
	phys         config.SugarConfig
}

func newSugarCube(rng *rand.Rand, x, y float64, phys config.SugarConfig) SugarCube {
	return SugarCube{
		X:       x,
		Y:       y,
		VX:      (rng.Float64() - 0.5) * phys.DriftRange,
		VY:      phys.InitialVY,
		Spin:    (rng.Float64() - 0.5) * phys.SpinRange,
		Opacity: 1,
		Scale:   1,
		State:   CubeFalling,
		phys:    phys,
	}
}

// Falling reports whether the cube can still hit a cup.
func (c *SugarCube) Falling() bool {
	return c.State == CubeFalling
}

// Active reports whether the cube still needs updating or drawing.
func (c *SugarCube) Active() bool {
	return c.State != CubeInactive
}

// Bounds returns the collision box centered on the cube.
func (c *SugarCube) Bounds() core.RectF {
	return core.CenteredRect(c.X, c.Y, c.phys.Size, c.phys.Size)
}

// Advance moves the cube forward by dt seconds. It returns true on the
// frame the cube reaches floorY and starts splashing.
func (c *SugarCube) Advance(dt, floorY float64) (landed bool) {
	switch c.State {
	case CubeFalling:
		c.age += dt
		c.VY += c.phys.Gravity * dt
		c.X += c.VX * dt
		c.Y += c.VY * dt
		c.VX *= math.Pow(c.phys.Damping, dt*60)
		c.Rotation += c.Spin * dt

		if c.Y+c.phys.Size/2 >= floorY {
			c.Y = floorY - c.phys.Size/2
			c.VX, c.VY = 0, 0
			c.State = CubeSplashing
			c.animElapsed = 0
			return true
		}
		if c.age > c.phys.MaxLifetime {
			c.deactivate()
		}

	case CubeSplashing:
		c.animElapsed += dt
		p := c.animElapsed / c.phys.SplashDuration
		if p >= 1 {
			c.deactivate()
			return false
		}
		c.Opacity = core.ClampF(1-p, 0, 1)
		c.Scale = core.Lerp(1, 2.5, p)

	case CubeBouncing:
		c.animElapsed += dt
		p := c.animElapsed / c.phys.BounceDuration
		if p >= 1 {
			c.deactivate()
			return false
		}
		c.Y = c.bounceStartY - math.Sin(p*math.Pi)*c.phys.BounceHeight
		c.Opacity = core.ClampF(1-p, 0, 1)
		c.Scale = core.ClampF(core.Lerp(1, 0.5, p), 0.5, 1)
		c.Rotation += c.Spin * 2 * dt
	}
	return false
}

// Bounce knocks a falling cube off a cup. Cubes in any other state are
// left alone and false is returned.
func (c *SugarCube) Bounce() bool {
	if c.State != CubeFalling {
		return false
	}
	c.State = CubeBouncing
	c.animElapsed = 0
	c.bounceStartY = c.Y
	c.VX, c.VY = 0, 0
	return true
}

// consume removes a cube that landed inside a cup.
func (c *SugarCube) consume() {
	c.deactivate()
}

func (c *SugarCube) deactivate() {
	c.State = CubeInactive
	c.Opacity = 0
}
