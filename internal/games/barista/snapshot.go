package barista

import "math"

// CupView is the read-only render state of one cup.
type CupView struct {
	X, Y          float64
	Width, Height float64
	Size          SizeClass
	Slot          int
	Name          string
	Required      int
	Current       int
	Completed     bool
	Progress      float64
	Flashing      bool
}

// CubeView is the read-only render state of one sugar cube.
type CubeView struct {
	X, Y     float64
	Rotation float64
	Opacity  float64
	Scale    float64
	State    CubeState
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	Frame uint64
	State SessionState

	Level          int
	LastLevel      int
	Difficulty     string
	TimeRemaining  float64
	TimeLimit      float64
	TimerPercent   float64
	TimerColor     TimerColor
	DisplayTime    string
	CupsCompleted  int
	CupsNeeded     int
	SugarDelivered int
	SugarTarget    int
	LevelScore     int
	TotalScore     int

	HandX, HandY float64
	HandState    HandState
	HandHasSugar bool

	ConveyorOffset float64

	Cups  []CupView
	Cubes []CubeView
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:          s.frame,
		State:          s.state,
		Level:          s.levelNumber,
		LastLevel:      s.cfg.LastLevel(),
		Difficulty:     s.level.Config.Difficulty,
		TimeRemaining:  s.level.TimeRemaining,
		TimeLimit:      s.level.Config.Time,
		TimerPercent:   s.level.TimerPercent(),
		TimerColor:     s.level.TimerColor(),
		DisplayTime:    s.level.DisplayTime(),
		CupsCompleted:  s.CupsCompleted(),
		CupsNeeded:     len(s.cups),
		SugarDelivered: s.sugarDelivered,
		SugarTarget:    s.level.TotalSugarTarget,
		LevelScore:     s.level.Score,
		TotalScore:     s.totalScore,
		HandX:          s.hand.X,
		HandY:          s.hand.Y,
		HandState:      s.hand.State,
		HandHasSugar:   s.hand.HasSugar,
		ConveyorOffset: s.conveyor.Offset,
		Cups:           make([]CupView, len(s.cups)),
		Cubes:          make([]CubeView, len(s.cubes)),
	}

	for i := range s.cups {
		c := &s.cups[i]
		snap.Cups[i] = CupView{
			X:         c.X,
			Y:         c.Y,
			Width:     c.Width,
			Height:    c.Height,
			Size:      c.Size,
			Slot:      c.SlotIndex,
			Name:      c.Name,
			Required:  c.Required,
			Current:   c.Current,
			Completed: c.Completed,
			Progress:  c.Progress(),
			Flashing:  c.Flashing(),
		}
	}
	for i := range s.cubes {
		c := &s.cubes[i]
		snap.Cubes[i] = CubeView{
			X:        c.X,
			Y:        c.Y,
			Rotation: c.Rotation,
			Opacity:  c.Opacity,
			Scale:    c.Scale,
			State:    c.State,
		}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Frame
	h = h*31 + uint64(snap.State)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)          //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.TimeRemaining)
	h = h*31 + uint64(snap.CupsCompleted)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.SugarDelivered) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.SugarTarget)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.TotalScore)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HandState)      //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.ConveyorOffset)

	for _, c := range snap.Cups {
		h = h*31 + math.Float64bits(c.X)
		h = h*31 + uint64(c.Required) //#nosec G115 -- hash computation
		h = h*31 + uint64(c.Current)  //#nosec G115 -- hash computation
		for _, r := range c.Name {
			h = h*31 + uint64(r) //#nosec G115 -- hash computation
		}
	}
	for _, c := range snap.Cubes {
		h = h*31 + math.Float64bits(c.X)
		h = h*31 + math.Float64bits(c.Y)
		h = h*31 + uint64(c.State) //#nosec G115 -- hash computation
	}
	return h
}
