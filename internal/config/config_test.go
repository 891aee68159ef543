package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultBaristaConfig(), cfg)
}

func TestDefaultLevelTable(t *testing.T) {
	cfg := DefaultBaristaConfig()

	require.Len(t, cfg.Levels, 15)
	assert.Equal(t, 15, cfg.LastLevel())

	first, ok := cfg.Level(1)
	require.True(t, ok)
	assert.Equal(t, 60.0, first.Time)
	assert.Equal(t, 1.3, first.Speed)
	assert.Equal(t, 3, first.Cups)
	assert.Equal(t, [2]int{5, 6}, first.TotalSugar)
	assert.Equal(t, TierTutorial, first.Tier())

	last, ok := cfg.Level(15)
	require.True(t, ok)
	assert.Equal(t, 17, last.Cups)
	assert.Equal(t, TierMaster, last.Tier())

	_, ok = cfg.Level(16)
	assert.False(t, ok)
	_, ok = cfg.Level(0)
	assert.False(t, ok)
}

func TestSlotSpacing(t *testing.T) {
	cfg := DefaultBaristaConfig()
	assert.Equal(t, 160.0, cfg.Cups.SlotSpacing())
}

func TestFloorY(t *testing.T) {
	cfg := DefaultBaristaConfig()
	assert.Equal(t, 670.0, cfg.World.FloorY())
}

func TestParsePartialOverride(t *testing.T) {
	doc := []byte(`
sugar:
  gravity: 240
levels:
  - { level: 1, time: 30, speed: 2, cups: 2, total_sugar: [3, 4], difficulty: Easy }
`)
	cfg, err := Parse(doc)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 240.0, cfg.Sugar.Gravity)
	assert.Equal(t, 16.0, cfg.Sugar.Size, "untouched keys keep their defaults")
	require.Len(t, cfg.Levels, 1)
	assert.Equal(t, 30.0, cfg.Levels[0].Time)
	assert.Len(t, cfg.Cups.Names, 32)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BaristaConfig)
	}{
		{"empty levels", func(c *BaristaConfig) { c.Levels = []LevelConfig{} }},
		{"inverted sugar range", func(c *BaristaConfig) { c.Levels[0].TotalSugar = [2]int{6, 5} }},
		{"zero cups", func(c *BaristaConfig) { c.Levels[2].Cups = 0 }},
		{"levels out of order", func(c *BaristaConfig) { c.Levels[0].Level = 2 }},
		{"distribution sum", func(c *BaristaConfig) { c.Cups.Distribution = []float64{0.3, 0.3, 0.3} }},
		{"distribution length", func(c *BaristaConfig) { c.Cups.Distribution = []float64{0.5, 0.5} }},
		{"no names", func(c *BaristaConfig) { c.Cups.Names = nil }},
		{"no sizes", func(c *BaristaConfig) { c.Cups.Sizes = nil }},
		{"damping above one", func(c *BaristaConfig) { c.Sugar.Damping = 1.5 }},
		{"zero texture", func(c *BaristaConfig) { c.Conveyor.TextureWidth = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultBaristaConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadBaristaCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hand:\n  x: 320\n"), 0o600))

	cfg, err := LoadBarista(path)
	require.NoError(t, err)
	assert.Equal(t, 320.0, cfg.Hand.X)
	assert.Len(t, cfg.Levels, 15)
}

func TestLoadBaristaCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadBarista(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("levels: [oops"), 0o600))
	_, err = LoadBarista(bad)
	assert.Error(t, err)

	invalidPath := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalidPath, []byte("cups:\n  distribution: [1, 1, 1]\n"), 0o600))
	_, err = LoadBarista(invalidPath)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadBaristaSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded defaults
	cfg, err := LoadBarista("")
	require.NoError(t, err)
	assert.Equal(t, 640.0, cfg.Hand.X)

	// Local configs directory
	require.NoError(t, os.MkdirAll(filepath.Join(work, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(work, "configs", "barista.yaml"), []byte("hand:\n  x: 100\n"), 0o600))
	cfg, err = LoadBarista("")
	require.NoError(t, err)
	assert.Equal(t, 100.0, cfg.Hand.X)

	// User directory wins over the local one
	userDir := filepath.Join(home, ".barista", "configs")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "barista.yaml"), []byte("hand:\n  x: 200\n"), 0o600))
	cfg, err = LoadBarista("")
	require.NoError(t, err)
	assert.Equal(t, 200.0, cfg.Hand.X)
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		label    string
		expected DifficultyTier
	}{
		{"Tutorial", TierTutorial},
		{"very hard", TierVeryHard},
		{"  Expert ", TierExpert},
		{"Impossible", TierUnknown},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, ParseDifficulty(tc.label), tc.label)
	}

	assert.Equal(t, 0.0, TierTutorial.Progress())
	assert.Equal(t, 1.0, TierMaster.Progress())
	assert.Equal(t, "Very Hard", TierVeryHard.String())
}
