package barista

// Resolution is the outcome of testing one cube against the cups.
type Resolution int

const (
	ResolutionNone       Resolution = iota // no cup touched
	ResolutionAccepted                     // cube went into the cup
	ResolutionOverfilled                   // completed cup was reset, cube bounced
)

// String returns the resolution name.
func (r Resolution) String() string {
	switch r {
	case ResolutionNone:
		return "none"
	case ResolutionAccepted:
		return "accepted"
	case ResolutionOverfilled:
		return "overfilled"
	default:
		return "unknown"
	}
}

// resolveCollision tests a falling cube against cups in creation order and
// resolves the first cup that reacts. A cube resolves against at most one
// cup per call. It returns the cup index, or -1 when nothing happened.
func resolveCollision(cube *SugarCube, cups []Cup) (int, Resolution) {
	if !cube.Falling() {
		return -1, ResolutionNone
	}

	bounds := cube.Bounds()
	for i := range cups {
		cup := &cups[i]
		if !bounds.Intersects(cup.Bounds()) {
			continue
		}
		if cup.TryAcceptSugar() {
			cube.consume()
			return i, ResolutionAccepted
		}
		if cup.TryOverfill() {
			cube.Bounce()
			return i, ResolutionOverfilled
		}
	}
	return -1, ResolutionNone
}
