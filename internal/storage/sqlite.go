// Package storage provides SQLite-based persistence for level results,
// finished runs and player preferences.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// LevelRecord is one finished attempt at a level.
type LevelRecord struct {
	ID             int64
	RunID          string
	Level          int
	Completed      bool
	Score          int
	TimeRemaining  float64
	SugarDelivered int
	CupsCompleted  int
	CupsNeeded     int
	CreatedAt      time.Time
}

// RunSummary is one campaign from start to quit or game complete.
type RunSummary struct {
	RunID           string
	TotalScore      int
	LevelsCompleted int
	BestLevel       int
	StartedAt       time.Time
	FinishedAt      time.Time
}

// Prefs are the persisted player settings.
type Prefs struct {
	SoundEnabled bool
	MusicEnabled bool
}

// DefaultPrefs has everything switched on.
func DefaultPrefs() Prefs {
	return Prefs{SoundEnabled: true, MusicEnabled: true}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			total_score INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME
		);

		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			completed INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			time_remaining REAL NOT NULL DEFAULT 0,
			sugar_delivered INTEGER NOT NULL DEFAULT 0,
			cups_completed INTEGER NOT NULL DEFAULT 0,
			cups_needed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_run ON level_results(run_id);
		CREATE INDEX IF NOT EXISTS idx_level_results_top ON level_results(level, score DESC);

		CREATE TABLE IF NOT EXISTS prefs (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartRun registers a new campaign. Starting an existing run is a no-op.
func (s *Store) StartRun(runID string) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO runs (run_id) VALUES (?)", runID)
	if err != nil {
		return fmt.Errorf("storage: cannot start run: %w", err)
	}
	return nil
}

// FinishRun stores the final score of a run.
func (s *Store) FinishRun(runID string, totalScore int) error {
	res, err := s.db.Exec(
		"UPDATE runs SET total_score = ?, finished_at = CURRENT_TIMESTAMP WHERE run_id = ?",
		totalScore, runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: unknown run %s", runID)
	}
	return nil
}

// SaveLevelResult records a finished level attempt.
// Returns the ID of the inserted record.
func (s *Store) SaveLevelResult(r LevelRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO level_results
		 (run_id, level, completed, score, time_remaining, sugar_delivered, cups_completed, cups_needed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Level, r.Completed, r.Score, r.TimeRemaining,
		r.SugarDelivered, r.CupsCompleted, r.CupsNeeded,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the best completed attempts at a level, or across
// all levels when level is 0. Results are ordered by score descending.
func (s *Store) TopScores(level, limit int) ([]LevelRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, level, completed, score, time_remaining,
		        sugar_delivered, cups_completed, cups_needed, created_at
		 FROM level_results
		 WHERE completed = 1 AND (? = 0 OR level = ?)
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		level, level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// RunResults lists every level attempt of a run in play order.
func (s *Store) RunResults(runID string) ([]LevelRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, level, completed, score, time_remaining,
		        sugar_delivered, cups_completed, cups_needed, created_at
		 FROM level_results
		 WHERE run_id = ?
		 ORDER BY id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]LevelRecord, error) {
	var records []LevelRecord
	for rows.Next() {
		var r LevelRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.RunID, &r.Level, &r.Completed, &r.Score, &r.TimeRemaining,
			&r.SugarDelivered, &r.CupsCompleted, &r.CupsNeeded, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// HighScore returns the best completed score for a level.
// Returns 0 if the level was never completed.
func (s *Store) HighScore(level int) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM level_results WHERE level = ? AND completed = 1",
		level,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// BestLevel returns the highest level ever completed, or 0.
func (s *Store) BestLevel() (int, error) {
	var level sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(level) FROM level_results WHERE completed = 1").Scan(&level); err != nil {
		return 0, fmt.Errorf("storage: cannot query best level: %w", err)
	}
	return int(level.Int64), nil
}

// TopRuns retrieves finished runs by total score.
func (s *Store) TopRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT r.run_id, r.total_score, r.started_at, r.finished_at,
		        COALESCE(SUM(l.completed), 0), COALESCE(MAX(CASE WHEN l.completed = 1 THEN l.level END), 0)
		 FROM runs r
		 LEFT JOIN level_results l ON l.run_id = r.run_id
		 WHERE r.finished_at IS NOT NULL
		 GROUP BY r.run_id
		 ORDER BY r.total_score DESC, r.started_at ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var started, finished any
		if err := rows.Scan(&r.RunID, &r.TotalScore, &started, &finished, &r.LevelsCompleted, &r.BestLevel); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.StartedAt = parseTime(started)
		r.FinishedAt = parseTime(finished)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearScores deletes all runs and level results. Preferences are kept.
func (s *Store) ClearScores() error {
	_, err := s.db.Exec("DELETE FROM level_results; DELETE FROM runs;")
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	Level      int
	Attempts   int
	Wins       int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// WinRate returns wins over attempts.
func (st *LevelStats) WinRate() float64 {
	if st.Attempts == 0 {
		return 0
	}
	return float64(st.Wins) / float64(st.Attempts)
}

// GetAllLevelStats retrieves statistics for every level that has been played.
func (s *Store) GetAllLevelStats() (map[int]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), SUM(completed),
		        COALESCE(MAX(CASE WHEN completed = 1 THEN score END), 0),
		        COALESCE(AVG(CASE WHEN completed = 1 THEN score END), 0),
		        MAX(created_at)
		 FROM level_results
		 GROUP BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.Level, &st.Attempts, &st.Wins, &st.HighScore, &st.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Level] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

const (
	prefSound = "sound_enabled"
	prefMusic = "music_enabled"
)

// LoadPrefs reads the stored preferences, using defaults for missing keys.
func (s *Store) LoadPrefs() (Prefs, error) {
	prefs := DefaultPrefs()

	rows, err := s.db.Query("SELECT key, value FROM prefs")
	if err != nil {
		return prefs, fmt.Errorf("storage: cannot query prefs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return prefs, fmt.Errorf("storage: cannot scan prefs: %w", err)
		}
		on, err := strconv.ParseBool(value)
		if err != nil {
			continue
		}
		switch key {
		case prefSound:
			prefs.SoundEnabled = on
		case prefMusic:
			prefs.MusicEnabled = on
		}
	}

	if err := rows.Err(); err != nil {
		return prefs, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return prefs, nil
}

// SavePrefs writes every preference.
func (s *Store) SavePrefs(p Prefs) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot save prefs: %w", err)
	}

	for key, on := range map[string]bool{prefSound: p.SoundEnabled, prefMusic: p.MusicEnabled} {
		if _, err := tx.Exec(
			"INSERT INTO prefs (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			key, strconv.FormatBool(on),
		); err != nil {
			return errors.Join(fmt.Errorf("storage: cannot save prefs: %w", err), tx.Rollback())
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot save prefs: %w", err)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
