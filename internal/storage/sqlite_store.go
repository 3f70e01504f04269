package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/MMR-MINGriyue/focusflow/internal/logger"
	"github.com/MMR-MINGriyue/focusflow/internal/models"
)

const schemaVersion = 1

var schema = []string{
	`CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS daily_stats (
		day TEXT PRIMARY KEY,
		focus_seconds INTEGER NOT NULL DEFAULT 0,
		break_seconds INTEGER NOT NULL DEFAULT 0,
		micro_break_count INTEGER NOT NULL DEFAULT 0,
		efficiency_percent INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS efficiency_scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		score INTEGER NOT NULL,
		recorded_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS adjustments (
		key TEXT PRIMARY KEY,
		value REAL NOT NULL
	)`,
}

// SQLiteStore persists the snapshot in a local SQLite database.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.createSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed defaults when the store is brand new
	if _, ok, err := s.LoadSnapshot(); err != nil {
		return err
	} else if !ok {
		defaults := models.Snapshot{
			Version:     models.SnapshotVersion,
			Mode:        models.ModeClassic,
			Settings:    models.DefaultSettings(),
			ScoreLog:    models.NewEfficiencyScoreLog(1),
			Adjustments: models.DefaultAdjustments(),
		}
		if err := s.SaveSnapshot(defaults); err != nil {
			return fmt.Errorf("failed to save default snapshot: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'focusflow init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema creation is idempotent, so an older database picks up any
	// missing tables here.
	if err := s.createSchema(); err != nil {
		return fmt.Errorf("failed to validate schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) LoadSnapshot() (models.Snapshot, bool, error) {
	if s.db == nil {
		return models.Snapshot{}, false, fmt.Errorf("storage not loaded")
	}

	meta, err := s.loadMeta()
	if err != nil {
		return models.Snapshot{}, false, err
	}
	if len(meta) == 0 {
		return models.Snapshot{}, false, nil
	}

	snapshot := models.Snapshot{Version: schemaVersion, Mode: models.ModeClassic}
	if meta["mode"] == string(models.ModeSmart) {
		snapshot.Mode = models.ModeSmart
	}

	settingsMap, err := s.loadSettingsMap()
	if err != nil {
		return models.Snapshot{}, false, err
	}
	snapshot.Settings, err = models.MapToSettings(settingsMap)
	if err != nil {
		// A corrupted settings row must never take the engine down; the
		// store simply reports that no snapshot exists.
		logger.Warn("Stored settings are unreadable, falling back to defaults", "path", s.path, "error", err)
		return models.Snapshot{}, false, nil
	}

	snapshot.DailyStats, err = s.loadLatestStats()
	if err != nil {
		return models.Snapshot{}, false, err
	}

	cap := 1
	if v, err := strconv.Atoi(meta["score_cap"]); err == nil && v > 0 {
		cap = v
	}
	snapshot.ScoreLog, err = s.loadScores(cap)
	if err != nil {
		return models.Snapshot{}, false, err
	}

	snapshot.Adjustments, err = s.loadAdjustments(meta)
	if err != nil {
		return models.Snapshot{}, false, err
	}

	return snapshot, true, nil
}

func (s *SQLiteStore) SaveSnapshot(snapshot models.Snapshot) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	metaStmt, err := tx.Prepare("INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer metaStmt.Close()

	metaValues := map[string]string{
		"schema_version":        fmt.Sprintf("%d", schemaVersion),
		"mode":                  string(snapshot.Mode),
		"score_cap":             fmt.Sprintf("%d", snapshot.ScoreLog.Cap),
		"last_adjustment_epoch": fmt.Sprintf("%d", snapshot.Adjustments.LastAdjustmentEpoch),
	}
	for key, value := range metaValues {
		if _, err := metaStmt.Exec(key, value); err != nil {
			return err
		}
	}

	settingsStmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer settingsStmt.Close()

	for key, value := range models.SettingsToMap(snapshot.Settings) {
		if _, err := settingsStmt.Exec(key, value); err != nil {
			return err
		}
	}

	if snapshot.DailyStats.Day != "" {
		_, err = tx.Exec(`INSERT OR REPLACE INTO daily_stats
			(day, focus_seconds, break_seconds, micro_break_count, efficiency_percent)
			VALUES (?, ?, ?, ?, ?)`,
			snapshot.DailyStats.Day,
			snapshot.DailyStats.FocusTimeSeconds,
			snapshot.DailyStats.BreakTimeSeconds,
			snapshot.DailyStats.MicroBreakCount,
			snapshot.DailyStats.EfficiencyPercent)
		if err != nil {
			return err
		}
	}

	// The score log is small and bounded; rewrite it wholesale.
	if _, err := tx.Exec("DELETE FROM efficiency_scores"); err != nil {
		return err
	}
	scoreStmt, err := tx.Prepare("INSERT INTO efficiency_scores (score, recorded_at) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer scoreStmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, score := range snapshot.ScoreLog.Scores {
		if _, err := scoreStmt.Exec(score, now); err != nil {
			return err
		}
	}

	adjStmt, err := tx.Prepare("INSERT OR REPLACE INTO adjustments (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer adjStmt.Close()

	if _, err := adjStmt.Exec("focus_multiplier", snapshot.Adjustments.FocusMultiplier); err != nil {
		return err
	}
	if _, err := adjStmt.Exec("break_multiplier", snapshot.Adjustments.BreakMultiplier); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) createSchema() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) loadMeta() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM meta")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		meta[key] = value
	}
	return meta, rows.Err()
}

func (s *SQLiteStore) loadSettingsMap() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

func (s *SQLiteStore) loadLatestStats() (models.DailySessionStats, error) {
	var stats models.DailySessionStats
	err := s.db.QueryRow(`SELECT day, focus_seconds, break_seconds, micro_break_count, efficiency_percent
		FROM daily_stats ORDER BY day DESC LIMIT 1`).Scan(
		&stats.Day, &stats.FocusTimeSeconds, &stats.BreakTimeSeconds,
		&stats.MicroBreakCount, &stats.EfficiencyPercent)
	if err == sql.ErrNoRows {
		return models.DailySessionStats{}, nil
	}
	if err != nil {
		return models.DailySessionStats{}, err
	}
	return stats, nil
}

func (s *SQLiteStore) loadScores(cap int) (models.EfficiencyScoreLog, error) {
	log := models.NewEfficiencyScoreLog(cap)

	rows, err := s.db.Query("SELECT score FROM efficiency_scores ORDER BY id")
	if err != nil {
		return log, err
	}
	defer rows.Close()

	for rows.Next() {
		var score int
		if err := rows.Scan(&score); err != nil {
			return log, err
		}
		log.Append(score)
	}
	return log, rows.Err()
}

func (s *SQLiteStore) loadAdjustments(meta map[string]string) (models.AdaptiveAdjustments, error) {
	adjustments := models.DefaultAdjustments()
	if v, err := strconv.ParseInt(meta["last_adjustment_epoch"], 10, 64); err == nil {
		adjustments.LastAdjustmentEpoch = v
	}

	rows, err := s.db.Query("SELECT key, value FROM adjustments")
	if err != nil {
		return adjustments, err
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var value float64
		if err := rows.Scan(&key, &value); err != nil {
			return adjustments, err
		}
		switch key {
		case "focus_multiplier":
			adjustments.FocusMultiplier = value
		case "break_multiplier":
			adjustments.BreakMultiplier = value
		}
	}
	return adjustments, rows.Err()
}
