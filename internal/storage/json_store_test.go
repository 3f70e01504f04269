package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MMR-MINGriyue/focusflow/internal/models"
)

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "focusflow.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store
}

func TestJSONStore_InitSeedsDefaults(t *testing.T) {
	store := newTestJSONStore(t)

	snapshot, ok, err := store.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if !ok {
		t.Fatal("freshly initialized store has no snapshot")
	}
	if snapshot.Mode != models.ModeClassic {
		t.Errorf("seeded mode = %s, want classic", snapshot.Mode)
	}
	if snapshot.Settings != models.DefaultSettings() {
		t.Error("seeded settings differ from defaults")
	}
}

func TestJSONStore_InitRefusesExisting(t *testing.T) {
	store := newTestJSONStore(t)

	if err := store.Init(); err == nil {
		t.Error("expected error initializing over an existing store")
	}
}

func TestJSONStore_LoadMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "focusflow.json"))

	if err := store.Load(); err == nil {
		t.Error("expected error loading an uninitialized store")
	}
}

func TestJSONStore_SnapshotRoundTrip(t *testing.T) {
	store := newTestJSONStore(t)

	saved := models.Snapshot{
		Mode:        models.ModeSmart,
		Settings:    models.DefaultSettings(),
		DailyStats:  models.DailySessionStats{Day: "2026-08-29", FocusTimeSeconds: 3000, BreakTimeSeconds: 600, MicroBreakCount: 4, EfficiencyPercent: 83},
		ScoreLog:    models.EfficiencyScoreLog{Scores: []int{3, 4, 5}, Cap: 10},
		Adjustments: models.AdaptiveAdjustments{FocusMultiplier: 1.1, BreakMultiplier: 0.9, LastAdjustmentEpoch: 1700000000000},
	}
	if err := store.SaveSnapshot(saved); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	// Re-open from disk.
	reopened := NewJSONStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	snapshot, ok, err := reopened.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if !ok {
		t.Fatal("saved snapshot not found after reload")
	}

	if snapshot.Version != models.SnapshotVersion {
		t.Errorf("version = %d, want %d", snapshot.Version, models.SnapshotVersion)
	}
	if snapshot.Mode != models.ModeSmart {
		t.Errorf("mode = %s, want smart", snapshot.Mode)
	}
	if snapshot.DailyStats != saved.DailyStats {
		t.Errorf("daily stats = %+v, want %+v", snapshot.DailyStats, saved.DailyStats)
	}
	if len(snapshot.ScoreLog.Scores) != 3 || snapshot.ScoreLog.Scores[2] != 5 {
		t.Errorf("score log = %+v", snapshot.ScoreLog)
	}
	if snapshot.Adjustments != saved.Adjustments {
		t.Errorf("adjustments = %+v, want %+v", snapshot.Adjustments, saved.Adjustments)
	}
}

func TestJSONStore_CorruptFileFallsBack(t *testing.T) {
	store := newTestJSONStore(t)
	if err := os.WriteFile(store.GetConfigPath(), []byte("{not json"), 0600); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	reopened := NewJSONStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load must tolerate corrupt snapshots, got: %v", err)
	}

	_, ok, err := reopened.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if ok {
		t.Error("corrupt store must report no snapshot")
	}
}
