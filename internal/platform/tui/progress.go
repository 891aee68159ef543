package tui

// Progress tracks which levels are open for one local process or one SSH
// session. It lives in memory only: stored results are score history and
// never unlock anything, so every new session starts at level 1.
type Progress struct {
	cleared int
}

// NewProgress returns progress with only the first level open.
func NewProgress() *Progress {
	return &Progress{}
}

// Record notes a completed level. Completing level n opens level n+1.
func (p *Progress) Record(level int) {
	if p == nil {
		return
	}
	p.cleared = max(p.cleared, level)
}

// Cleared returns the highest level completed in this session, or 0.
func (p *Progress) Cleared() int {
	if p == nil {
		return 0
	}
	return p.cleared
}

// Unlocked reports whether level may be picked from the menu.
func (p *Progress) Unlocked(level int) bool {
	return level <= p.Cleared()+1
}
