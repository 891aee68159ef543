package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveLevelResult(LevelRecord{RunID: "r1", Level: 1, Completed: true, Score: 300}); err != nil {
		t.Fatalf("SaveLevelResult() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore(1)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("HighScore after reopen = %d, want 300", high)
	}
}

func TestStoreLevelResults(t *testing.T) {
	store := openTestStore(t)

	records := []LevelRecord{
		{RunID: "a", Level: 1, Completed: true, Score: 450, TimeRemaining: 30.5, SugarDelivered: 6, CupsCompleted: 3, CupsNeeded: 3},
		{RunID: "a", Level: 2, Completed: false, CupsCompleted: 3, CupsNeeded: 4},
		{RunID: "a", Level: 2, Completed: true, Score: 380, CupsCompleted: 4, CupsNeeded: 4},
		{RunID: "b", Level: 1, Completed: true, Score: 520, CupsCompleted: 3, CupsNeeded: 3},
		{RunID: "b", Level: 1, Completed: true, Score: 100, CupsCompleted: 3, CupsNeeded: 3},
	}
	for _, r := range records {
		if _, err := store.SaveLevelResult(r); err != nil {
			t.Fatalf("SaveLevelResult() failed: %v", err)
		}
	}

	top, err := store.TopScores(1, 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopScores(1, 2) returned %d records, want 2", len(top))
	}
	if top[0].Score != 520 || top[1].Score != 450 {
		t.Errorf("TopScores order = %d, %d, want 520, 450", top[0].Score, top[1].Score)
	}
	if top[1].TimeRemaining != 30.5 || top[1].SugarDelivered != 6 || !top[1].Completed {
		t.Errorf("record fields not round-tripped: %+v", top[1])
	}

	all, err := store.TopScores(0, 10)
	if err != nil {
		t.Fatalf("TopScores(0) failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("TopScores across levels returned %d, want 4 completed attempts", len(all))
	}

	run, err := store.RunResults("a")
	if err != nil {
		t.Fatalf("RunResults() failed: %v", err)
	}
	if len(run) != 3 || run[1].Completed {
		t.Errorf("RunResults(a) = %+v", run)
	}

	best, err := store.BestLevel()
	if err != nil {
		t.Fatalf("BestLevel() failed: %v", err)
	}
	if best != 2 {
		t.Errorf("BestLevel = %d, want 2", best)
	}
}

func TestStoreHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveLevelResult(LevelRecord{RunID: "a", Level: 3, Completed: false}); err != nil {
		t.Fatalf("SaveLevelResult() failed: %v", err)
	}

	high, err := store.HighScore(3)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore for a never-won level = %d, want 0", high)
	}

	best, err := store.BestLevel()
	if err != nil {
		t.Fatalf("BestLevel() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("BestLevel = %d, want 0", best)
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"low", "high", "open"} {
		if err := store.StartRun(id); err != nil {
			t.Fatalf("StartRun(%s) failed: %v", id, err)
		}
	}
	// Idempotent
	if err := store.StartRun("low"); err != nil {
		t.Fatalf("StartRun twice failed: %v", err)
	}

	store.SaveLevelResult(LevelRecord{RunID: "high", Level: 1, Completed: true, Score: 400})
	store.SaveLevelResult(LevelRecord{RunID: "high", Level: 2, Completed: true, Score: 500})
	store.SaveLevelResult(LevelRecord{RunID: "high", Level: 3, Completed: false})

	if err := store.FinishRun("low", 150); err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}
	if err := store.FinishRun("high", 900); err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}
	if err := store.FinishRun("missing", 1); err == nil {
		t.Error("FinishRun on an unknown run succeeded")
	}

	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("TopRuns returned %d runs, want 2 finished", len(runs))
	}
	if runs[0].RunID != "high" || runs[0].TotalScore != 900 {
		t.Errorf("top run = %+v", runs[0])
	}
	if runs[0].LevelsCompleted != 2 || runs[0].BestLevel != 2 {
		t.Errorf("top run levels = %d best %d, want 2 and 2", runs[0].LevelsCompleted, runs[0].BestLevel)
	}
	if runs[1].LevelsCompleted != 0 {
		t.Errorf("empty run LevelsCompleted = %d", runs[1].LevelsCompleted)
	}
}

func TestStoreLevelStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveLevelResult(LevelRecord{RunID: "a", Level: 1, Completed: true, Score: 100})
	store.SaveLevelResult(LevelRecord{RunID: "a", Level: 1, Completed: true, Score: 300})
	store.SaveLevelResult(LevelRecord{RunID: "a", Level: 1, Completed: false})
	store.SaveLevelResult(LevelRecord{RunID: "a", Level: 4, Completed: false})

	stats, err := store.GetAllLevelStats()
	if err != nil {
		t.Fatalf("GetAllLevelStats() failed: %v", err)
	}

	one := stats[1]
	if one == nil {
		t.Fatal("no stats for level 1")
	}
	if one.Attempts != 3 || one.Wins != 2 || one.HighScore != 300 || one.AvgScore != 200 {
		t.Errorf("level 1 stats = %+v", one)
	}
	if rate := one.WinRate(); rate < 0.66 || rate > 0.67 {
		t.Errorf("WinRate = %v, want 2/3", rate)
	}

	four := stats[4]
	if four == nil || four.Wins != 0 || four.HighScore != 0 {
		t.Errorf("level 4 stats = %+v", four)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.StartRun("a")
	store.SaveLevelResult(LevelRecord{RunID: "a", Level: 1, Completed: true, Score: 100})
	store.SavePrefs(Prefs{SoundEnabled: false, MusicEnabled: true})

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	top, _ := store.TopScores(0, 10)
	if len(top) != 0 {
		t.Errorf("scores left after clear: %d", len(top))
	}
	prefs, _ := store.LoadPrefs()
	if prefs.SoundEnabled {
		t.Error("ClearScores wiped preferences")
	}
}

func TestStorePrefs(t *testing.T) {
	store := openTestStore(t)

	prefs, err := store.LoadPrefs()
	if err != nil {
		t.Fatalf("LoadPrefs() failed: %v", err)
	}
	if prefs != DefaultPrefs() {
		t.Errorf("fresh prefs = %+v, want defaults", prefs)
	}

	want := Prefs{SoundEnabled: false, MusicEnabled: false}
	if err := store.SavePrefs(want); err != nil {
		t.Fatalf("SavePrefs() failed: %v", err)
	}
	got, err := store.LoadPrefs()
	if err != nil {
		t.Fatalf("LoadPrefs() failed: %v", err)
	}
	if got != want {
		t.Errorf("LoadPrefs = %+v, want %+v", got, want)
	}

	// Overwrite
	want.MusicEnabled = true
	store.SavePrefs(want)
	got, _ = store.LoadPrefs()
	if got != want {
		t.Errorf("after update LoadPrefs = %+v, want %+v", got, want)
	}
}
