package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Dotan232/SweetBarista/internal/config"
	"github.com/Dotan232/SweetBarista/internal/core"
	"github.com/Dotan232/SweetBarista/internal/games/barista"
	"github.com/Dotan232/SweetBarista/internal/storage"
)

type fakeAudio struct {
	played []string
	sound  bool
	music  bool
}

func (a *fakeAudio) PlaySound(name string)   { a.played = append(a.played, name) }
func (a *fakeAudio) SetSoundEnabled(on bool) { a.sound = on }
func (a *fakeAudio) SoundEnabled() bool      { return a.sound }
func (a *fakeAudio) SetMusicEnabled(on bool) { a.music = on }
func (a *fakeAudio) MusicEnabled() bool      { return a.music }

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "barista.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, store *storage.Store, audio AudioControl) Model {
	t.Helper()
	m := NewModel(Options{
		Game:    config.DefaultBaristaConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7},
		Store:   store,
		Audio:   audio,
	})
	m.Init()
	return m
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	return send(t, m, TickMsg{})
}

func TestModelStartsInMenu(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m = tick(t, m)

	if got := m.Game().Session().State(); got != barista.StateMenu {
		t.Fatalf("state = %v, want menu", got)
	}
	if !strings.Contains(m.View(), "SPACE to start") {
		t.Error("menu overlay missing from view")
	}
}

func TestModelSpaceStartsLevel(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = tick(t, m)

	if got := m.Game().Session().State(); got != barista.StatePlaying {
		t.Fatalf("state = %v, want playing", got)
	}
	if !strings.Contains(m.View(), "0:59") {
		t.Error("expected timer in view")
	}
}

func TestModelBackBlockedWhilePlaying(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = tick(t, m)

	m = send(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Error("back should be ignored during a level")
	}

	m = send(t, m, runeKey('p'))
	m = tick(t, m)
	if got := m.Game().Session().State(); got != barista.StatePaused {
		t.Fatalf("state = %v, want paused", got)
	}
	m = send(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("back should leave a paused level")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil, nil)
	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() {
		t.Error("expected quitting")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestModelMuteTogglesAudioAndSavesPrefs(t *testing.T) {
	store := testStore(t)
	audio := &fakeAudio{sound: true, music: true}
	m := newTestModel(t, store, audio)

	m = send(t, m, runeKey('m'))
	if audio.sound || audio.music {
		t.Fatal("mute should switch sound and music off")
	}
	if !strings.Contains(m.View(), "[muted]") {
		t.Error("expected muted marker")
	}

	prefs, err := store.LoadPrefs()
	if err != nil {
		t.Fatalf("LoadPrefs failed: %v", err)
	}
	if prefs.SoundEnabled || prefs.MusicEnabled {
		t.Errorf("prefs = %+v, want both off", prefs)
	}

	send(t, m, runeKey('m'))
	if !audio.sound || !audio.music {
		t.Error("second press should switch audio back on")
	}
}

func TestModelSavesFailedLevel(t *testing.T) {
	store := testStore(t)
	audio := &fakeAudio{sound: true, music: true}
	m := newTestModel(t, store, audio)

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	// Never drop: the timer runs out
	for i := 0; i < 61*60 && m.Game().Session().State() != barista.StateLevelFailed; i++ {
		m = tick(t, m)
	}
	if got := m.Game().Session().State(); got != barista.StateLevelFailed {
		t.Fatalf("state = %v, want levelFailed", got)
	}

	records, err := store.RunResults(m.RunID())
	if err != nil {
		t.Fatalf("RunResults failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Completed || records[0].Level != 1 {
		t.Errorf("record = %+v, want failed level 1", records[0])
	}

	found := false
	for _, name := range audio.played {
		if name == barista.SoundLevelFail {
			found = true
		}
	}
	if !found {
		t.Errorf("played %v, want %s", audio.played, barista.SoundLevelFail)
	}
}

func TestModelRestartStartsNewRun(t *testing.T) {
	store := testStore(t)
	m := newTestModel(t, store, nil)

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	for i := 0; i < 61*60 && m.Game().Session().State() != barista.StateLevelFailed; i++ {
		m = tick(t, m)
	}
	if got := m.Game().Session().State(); got != barista.StateLevelFailed {
		t.Fatalf("state = %v, want levelFailed", got)
	}
	oldRun := m.RunID()

	m = send(t, m, runeKey('r'))
	m = tick(t, m)
	if got := m.Game().Session().State(); got != barista.StateMenu {
		t.Fatalf("state = %v, want menu after restart", got)
	}

	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != oldRun {
		t.Fatalf("finished runs = %+v, want only %s", runs, oldRun)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = tick(t, m)
	if got := m.Game().Session().State(); got != barista.StatePlaying {
		t.Fatalf("state = %v, want playing", got)
	}
	if m.RunID() == oldRun {
		t.Fatal("restarted campaign reused the old run id")
	}

	old, err := store.RunResults(oldRun)
	if err != nil {
		t.Fatalf("RunResults failed: %v", err)
	}
	if len(old) != 1 {
		t.Errorf("old run has %d records, want 1", len(old))
	}
	fresh, err := store.RunResults(m.RunID())
	if err != nil {
		t.Fatalf("RunResults failed: %v", err)
	}
	if len(fresh) != 0 {
		t.Errorf("new run has %d records, want 0", len(fresh))
	}
}

func TestProgressRecordsHighestLevel(t *testing.T) {
	p := NewProgress()
	if !p.Unlocked(1) || p.Unlocked(2) {
		t.Fatal("fresh progress should open level 1 only")
	}
	p.Record(3)
	p.Record(1)
	if p.Cleared() != 3 || !p.Unlocked(4) || p.Unlocked(5) {
		t.Errorf("cleared = %d, want 3 with level 4 open", p.Cleared())
	}

	var none *Progress
	none.Record(5)
	if none.Cleared() != 0 || !none.Unlocked(1) {
		t.Error("nil progress should behave as empty")
	}
}

func TestModelResizeKeepsSession(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = tick(t, m)
	before := m.Game().Snapshot()

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	after := m.Game().Snapshot()
	if after.Hash() != before.Hash() {
		t.Error("resize should not touch the simulation")
	}
	if lines := strings.Count(m.View(), "\n") + 1; lines != 30 {
		t.Errorf("view has %d lines, want 30", lines)
	}
}

func TestSessionModelFlow(t *testing.T) {
	store := testStore(t)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	s := NewSessionModel(store, config.DefaultBaristaConfig(), cfg, nil)

	update := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	update(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScores {
		t.Fatalf("screen = %v, want scores", s.screen)
	}
	if !strings.Contains(s.View(), "HIGH SCORES") {
		t.Error("scoreboard not shown")
	}

	update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", s.screen)
	}

	update(tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenGame || s.gameModel == nil {
		t.Fatal("enter should start the selected level")
	}

	update(runeKey('b'))
	if s.screen != screenMenu {
		t.Errorf("screen = %v, want menu after back", s.screen)
	}
	if s.SessionID() == "" {
		t.Error("session id missing")
	}
}

func TestScoreboardLevelTabs(t *testing.T) {
	store := testStore(t)
	for _, r := range []storage.LevelRecord{
		{RunID: "a", Level: 1, Completed: true, Score: 500},
		{RunID: "a", Level: 2, Completed: false},
		{RunID: "b", Level: 2, Completed: true, Score: 420},
	} {
		if _, err := store.SaveLevelResult(r); err != nil {
			t.Fatalf("SaveLevelResult failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, config.DefaultBaristaConfig(), 100, 30)
	if len(m.scores) != 2 {
		t.Fatalf("all tab has %d scores, want 2", len(m.scores))
	}
	if !strings.Contains(m.View(), "3 attempts, 2 served") {
		t.Errorf("missing stats line in:\n%s", m.View())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	next, _ = next.(ScoreboardModel).Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.tabs[m.tabCursor].Level != 2 {
		t.Fatalf("tab level = %d, want 2", m.tabs[m.tabCursor].Level)
	}
	if len(m.scores) != 1 || m.scores[0].Score != 420 {
		t.Errorf("level 2 scores = %+v", m.scores)
	}
	if !strings.Contains(m.View(), "2 attempts, 1 served (50%)") {
		t.Error("level 2 stats line wrong")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}
