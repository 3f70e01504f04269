package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/MMR-MINGriyue/focusflow/internal/backup"
	"github.com/MMR-MINGriyue/focusflow/internal/clock"
	"github.com/MMR-MINGriyue/focusflow/internal/config"
	"github.com/MMR-MINGriyue/focusflow/internal/engine"
	"github.com/MMR-MINGriyue/focusflow/internal/logger"
	"github.com/MMR-MINGriyue/focusflow/internal/storage"
)

// Context is shared by all CLI commands.
type Context struct {
	Store  storage.Provider
	Config config.Config
}

// NewEngine constructs an engine against the context's store with
// production clock and randomness wiring.
func (c *Context) NewEngine() (*engine.Engine, error) {
	eng, err := engine.New(c.Store, clock.SystemClock{}, clock.NewPRNG(time.Now().UnixNano()), engine.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to construct engine: %w", err)
	}
	return eng, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// StoragePathFor resolves the snapshot path for the configured backend.
func StoragePathFor(cfg config.Config) (string, error) {
	if cfg.StoragePath != "" {
		return cfg.StoragePath, nil
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	if cfg.StorageBackend == "json" {
		return filepath.Join(dir, "focusflow.json"), nil
	}
	return filepath.Join(dir, "focusflow.db"), nil
}

// FormatClock renders seconds as MM:SS.
func FormatClock(seconds uint32) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
