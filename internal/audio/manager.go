// Package audio synthesizes the game's sound effects and background music
// with beep. Every operation is safe without an audio device; the manager
// simply stays silent.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Manager plays named effects and an optional music loop.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	volume      float64
	initialized bool
	sound       bool
	musicOn     bool
}

// NewManager creates a manager with effects and music enabled. volume is
// clamped to [0, 1].
func NewManager(volume float64) *Manager {
	return &Manager{
		mixer:   &beep.Mixer{},
		volume:  min(max(volume, 0), 1),
		sound:   true,
		musicOn: true,
	}
}

// Initialize opens the speaker. Callers should treat an error as "no audio"
// rather than a fatal condition.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(m.mixer)
	m.initialized = true
	m.syncMusicLocked()
	return nil
}

// Cleanup stops everything. The manager can be initialized again.
// Music and mixer state are only touched under the speaker lock.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	if m.music != nil {
		m.music.Paused = true
	}
	m.mixer.Clear()
	speaker.Unlock()
	m.music = nil
	m.initialized = false
}

// PlaySound starts a named effect. Unknown names and calls while muted or
// uninitialized are ignored.
func (m *Manager) PlaySound(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || !m.sound {
		return
	}
	s := Effect(name, m.volume, sampleRate)
	if s == nil {
		return
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// SetSoundEnabled toggles effects.
func (m *Manager) SetSoundEnabled(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sound = on
}

// SoundEnabled reports whether effects play.
func (m *Manager) SoundEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sound
}

// SetMusicEnabled starts or pauses the music loop.
func (m *Manager) SetMusicEnabled(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.musicOn = on
	m.syncMusicLocked()
}

// MusicEnabled reports whether the music loop is wanted.
func (m *Manager) MusicEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.musicOn
}

// Available reports whether a speaker was opened.
func (m *Manager) Available() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

func (m *Manager) syncMusicLocked() {
	if !m.initialized {
		return
	}
	if m.music == nil {
		if !m.musicOn {
			return
		}
		m.music = &beep.Ctrl{Streamer: musicLoop(m.volume, sampleRate)}
		speaker.Lock()
		m.mixer.Add(m.music)
		speaker.Unlock()
		return
	}
	speaker.Lock()
	m.music.Paused = !m.musicOn
	speaker.Unlock()
}
