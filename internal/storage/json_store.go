package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MMR-MINGriyue/focusflow/internal/logger"
	"github.com/MMR-MINGriyue/focusflow/internal/models"
)

// JSONStore persists the snapshot as a single indented JSON file.
type JSONStore struct {
	path     string
	snapshot *models.Snapshot
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	// Initialize with defaults
	s.snapshot = &models.Snapshot{
		Version:     models.SnapshotVersion,
		Mode:        models.ModeClassic,
		Settings:    models.DefaultSettings(),
		ScoreLog:    models.NewEfficiencyScoreLog(1),
		Adjustments: models.DefaultAdjustments(),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'focusflow init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	snapshot := &models.Snapshot{}
	if err := json.Unmarshal(data, snapshot); err != nil {
		// A corrupted snapshot must never take the engine down; the
		// store simply reports that no snapshot exists.
		logger.Warn("Snapshot file is unreadable, falling back to defaults", "path", s.path, "error", err)
		s.snapshot = nil
		return nil
	}

	s.snapshot = snapshot
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) LoadSnapshot() (models.Snapshot, bool, error) {
	if s.snapshot == nil {
		return models.Snapshot{}, false, nil
	}
	return *s.snapshot, true, nil
}

func (s *JSONStore) SaveSnapshot(snapshot models.Snapshot) error {
	snapshot.Version = models.SnapshotVersion
	s.snapshot = &snapshot
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}
