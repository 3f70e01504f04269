package storage

import (
	"path/filepath"
	"testing"

	"github.com/MMR-MINGriyue/focusflow/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "focusflow.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_InitSeedsDefaults(t *testing.T) {
	store := newTestSQLiteStore(t)

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
	if adj := snapshot.Adjustments; adj.FocusMultiplier != 1.0 || adj.BreakMultiplier != 1.0 {
		t.Errorf("seeded adjustments = %+v", adj)
	}
}

func TestSQLiteStore_InitIsIdempotent(t *testing.T) {
	store := newTestSQLiteStore(t)

	// Running init again over an existing database keeps its contents.
	saved := models.Snapshot{
		Mode:     models.ModeSmart,
		Settings: models.DefaultSettings(),
		ScoreLog: models.EfficiencyScoreLog{Scores: []int{4}, Cap: 10},
	}
	if err := store.SaveSnapshot(saved); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}

	snapshot, ok, err := store.LoadSnapshot()
	if err != nil || !ok {
		t.Fatalf("LoadSnapshot after re-init: ok=%v err=%v", ok, err)
	}
	if snapshot.Mode != models.ModeSmart {
		t.Errorf("re-init clobbered mode: %s", snapshot.Mode)
	}
}

func TestSQLiteStore_LoadMissingFile(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "focusflow.db"))

	if err := store.Load(); err == nil {
		t.Error("expected error loading an uninitialized store")
	}
}

func TestSQLiteStore_SnapshotRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	settings := models.DefaultSettings()
	settings.Smart.FocusDurationMin = 30
	settings.Smart.EnableMicroBreaks = false

	saved := models.Snapshot{
		Mode:        models.ModeSmart,
		Settings:    settings,
		DailyStats:  models.DailySessionStats{Day: "2026-08-29", FocusTimeSeconds: 3000, BreakTimeSeconds: 600, MicroBreakCount: 4, EfficiencyPercent: 83},
		ScoreLog:    models.EfficiencyScoreLog{Scores: []int{3, 4, 5}, Cap: 10},
		Adjustments: models.AdaptiveAdjustments{FocusMultiplier: 1.1, BreakMultiplier: 0.9, LastAdjustmentEpoch: 1700000000000},
	}
	if err := store.SaveSnapshot(saved); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewSQLiteStore(store.GetConfigPath())
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	snapshot, ok, err := reopened.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if !ok {
		t.Fatal("saved snapshot not found after reload")
	}

	if snapshot.Mode != models.ModeSmart {
		t.Errorf("mode = %s, want smart", snapshot.Mode)
	}
	if snapshot.Settings != settings {
		t.Errorf("settings = %+v, want %+v", snapshot.Settings, settings)
	}
	if snapshot.DailyStats != saved.DailyStats {
		t.Errorf("daily stats = %+v, want %+v", snapshot.DailyStats, saved.DailyStats)
	}
	if len(snapshot.ScoreLog.Scores) != 3 || snapshot.ScoreLog.Cap != 10 {
		t.Errorf("score log = %+v", snapshot.ScoreLog)
	}
	if snapshot.Adjustments != saved.Adjustments {
		t.Errorf("adjustments = %+v, want %+v", snapshot.Adjustments, saved.Adjustments)
	}
}

func TestSQLiteStore_ScoreOrderPreserved(t *testing.T) {
	store := newTestSQLiteStore(t)

	saved := models.Snapshot{
		Mode:     models.ModeClassic,
		Settings: models.DefaultSettings(),
		ScoreLog: models.EfficiencyScoreLog{Scores: []int{5, 1, 4, 2, 3}, Cap: 5},
	}
	if err := store.SaveSnapshot(saved); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	snapshot, _, err := store.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	for i, want := range saved.ScoreLog.Scores {
		if snapshot.ScoreLog.Scores[i] != want {
			t.Fatalf("score order lost: got %v, want %v", snapshot.ScoreLog.Scores, saved.ScoreLog.Scores)
		}
	}
}

func TestSQLiteStore_CorruptSettingsRowReportsNoSnapshot(t *testing.T) {
	store := newTestSQLiteStore(t)

	if _, err := store.db.Exec("UPDATE settings SET value = ? WHERE key = ?",
		"twenty-five", "classic_focus_duration_min"); err != nil {
		t.Fatalf("corrupting settings row: %v", err)
	}

	// Unparseable stored settings degrade to "no snapshot", never an
	// error that would take the engine down.
	_, ok, err := store.LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot returned error for corrupt settings: %v", err)
	}
	if ok {
		t.Error("corrupt settings row still reported a snapshot")
	}
}

func TestSQLiteStore_SaveBeforeLoadFails(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "focusflow.db"))

	if err := store.SaveSnapshot(models.Snapshot{}); err == nil {
		t.Error("expected error saving through an unloaded store")
	}
	if _, _, err := store.LoadSnapshot(); err == nil {
		t.Error("expected error reading through an unloaded store")
	}
}
