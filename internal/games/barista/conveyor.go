package barista

import (
	"math"

	"github.com/Dotan232/SweetBarista/internal/config"
)

// Conveyor tracks the scroll offset of the belt texture.
type Conveyor struct {
	Offset float64

	textureWidth float64
	pxPerSpeed   float64
}

func newConveyor(cfg config.ConveyorConfig, pxPerSpeed float64) Conveyor {
	return Conveyor{
		textureWidth: cfg.TextureWidth,
		pxPerSpeed:   pxPerSpeed,
	}
}

// Advance scrolls the belt at the same rate the cups move.
func (c *Conveyor) Advance(dt, speed float64) {
	c.Offset = math.Mod(c.Offset+speed*c.pxPerSpeed*dt, c.textureWidth)
}

// Phase returns the offset as a fraction of the texture width.
func (c *Conveyor) Phase() float64 {
	return c.Offset / c.textureWidth
}
