// Package config provides YAML-based configuration for the Sweet Barista
// simulation: world geometry, sugar physics, cups, the hand, the conveyor
// and the ordered level table.
package config

// BaristaConfig contains all tunables of the simulation.
type BaristaConfig struct {
	World    WorldConfig    `yaml:"world"`
	Sugar    SugarConfig    `yaml:"sugar"`
	Cups     CupConfig      `yaml:"cups"`
	Hand     HandConfig     `yaml:"hand"`
	Conveyor ConveyorConfig `yaml:"conveyor"`
	Levels   []LevelConfig  `yaml:"levels"`
}

// WorldConfig describes the playfield in world pixels.
type WorldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	FloorOffset   float64 `yaml:"floor_offset"`    // floor sits this far above the bottom edge
	TimeWarningAt float64 `yaml:"time_warning_at"` // seconds left when the warning fires
}

// FloorY returns the y coordinate where falling sugar splashes.
func (w WorldConfig) FloorY() float64 {
	return w.Height - w.FloorOffset
}

// SugarConfig defines sugar cube physics and animation timing.
// Velocities are px/s, durations are seconds.
type SugarConfig struct {
	Size           float64 `yaml:"size"`
	Gravity        float64 `yaml:"gravity"`
	InitialVY      float64 `yaml:"initial_vy"`
	DriftRange     float64 `yaml:"drift_range"` // vx drawn from [-range/2, range/2)
	Damping        float64 `yaml:"damping"`     // horizontal damping factor per 1/60 s
	SpinRange      float64 `yaml:"spin_range"`  // rad/s, drawn like drift
	SplashDuration float64 `yaml:"splash_duration"`
	BounceDuration float64 `yaml:"bounce_duration"`
	BounceHeight   float64 `yaml:"bounce_height"`
	MaxLifetime    float64 `yaml:"max_lifetime"`
}

// CupSize is one entry of the small/medium/large size cycle.
type CupSize struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CupConfig defines cup layout and order generation.
type CupConfig struct {
	Y              float64   `yaml:"y"`
	SlotGap        float64   `yaml:"slot_gap"`        // added to the widest cup for slot spacing
	OffscreenLead  float64   `yaml:"offscreen_lead"`  // extra distance left of the first slot
	Sizes          []CupSize `yaml:"sizes"`           // cycled by slot index
	Distribution   []float64 `yaml:"distribution"`    // weights for 1, 2 and 3 cubes
	Names          []string  `yaml:"names"`           // customer name pool
	OverfillFlash  float64   `yaml:"overfill_flash"`  // seconds the red flash lasts
	PixelsPerSpeed float64   `yaml:"pixels_per_speed"` // px/s per conveyor speed unit
}

// SlotSpacing returns the fixed distance between two neighbouring slots.
func (c CupConfig) SlotSpacing() float64 {
	widest := 0.0
	for _, s := range c.Sizes {
		if s.Width > widest {
			widest = s.Width
		}
	}
	return widest + c.SlotGap
}

// HandConfig defines the dropping hand.
type HandConfig struct {
	X              float64 `yaml:"x"`
	Y              float64 `yaml:"y"`
	Height         float64 `yaml:"height"`
	DropOffset     float64 `yaml:"drop_offset"` // below the hand's bottom edge
	DropDuration   float64 `yaml:"drop_duration"`
	ReturnDuration float64 `yaml:"return_duration"`
}

// ConveyorConfig defines the belt texture scroll.
type ConveyorConfig struct {
	TextureWidth float64 `yaml:"texture_width"`
	Height       float64 `yaml:"height"`
}

// LevelConfig is one fixed record of the level table.
type LevelConfig struct {
	Level      int     `yaml:"level"`
	Time       float64 `yaml:"time"`
	Speed      float64 `yaml:"speed"`
	Cups       int     `yaml:"cups"`
	TotalSugar [2]int  `yaml:"total_sugar"`
	Difficulty string  `yaml:"difficulty"`
}

// Tier returns the parsed difficulty label of the level.
func (l LevelConfig) Tier() DifficultyTier {
	return ParseDifficulty(l.Difficulty)
}

// Level returns the table entry for the given 1-based level number.
// ok is false when the number is out of range.
func (c BaristaConfig) Level(number int) (LevelConfig, bool) {
	for _, l := range c.Levels {
		if l.Level == number {
			return l, true
		}
	}
	return LevelConfig{}, false
}

// LastLevel returns the highest configured level number.
func (c BaristaConfig) LastLevel() int {
	last := 0
	for _, l := range c.Levels {
		if l.Level > last {
			last = l.Level
		}
	}
	return last
}
