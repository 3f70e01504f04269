package storage

import "github.com/MMR-MINGriyue/focusflow/internal/models"

// Provider persists engine snapshots. Implementations own their schema
// and its evolution; callers only see the snapshot record.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Snapshots
	// LoadSnapshot reports ok=false when no usable snapshot exists,
	// including when the stored data is corrupt; the engine then falls
	// back to defaults.
	LoadSnapshot() (snapshot models.Snapshot, ok bool, err error)
	SaveSnapshot(models.Snapshot) error

	// Utils
	GetConfigPath() string
}
