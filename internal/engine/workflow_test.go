package engine

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/MMR-MINGriyue/focusflow/internal/models"
	"github.com/MMR-MINGriyue/focusflow/internal/storage"
)

// Walks a full user workflow against a real SQLite store: initialize,
// run a smart session with ratings, shut down, and come back up in a
// fresh process with everything intact.
func TestWorkflow_SmartSessionSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focusflow.db")

	store := storage.NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	first, err := New(store, &testClock{now: time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)}, fixedRandom{}, Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	settings := quietSettings()
	if _, err := first.UpdateSettings(settings); err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if _, err := first.SwitchMode(models.ModeSmart, SwitchOptions{ResetOnSwitch: true}); err != nil {
		t.Fatalf("SwitchMode failed: %v", err)
	}

	first.Start()
	first.Tick(1500) // focus completes into a break
	if err := first.SubmitScore(5); err != nil {
		t.Fatalf("SubmitScore failed: %v", err)
	}
	first.Tick(300) // break completes into the next focus
	first.Tick(200) // partial focus

	first.Pause()
	if err := first.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Simulated restart.
	reopened := storage.NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	second, err := New(reopened, &testClock{now: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)}, fixedRandom{}, Options{})
	if err != nil {
		t.Fatalf("New after restart failed: %v", err)
	}

	if second.Mode() != models.ModeSmart {
		t.Errorf("restored mode = %s, want smart", second.Mode())
	}
	if second.Settings() != settings {
		t.Errorf("restored settings differ:\n got %+v\nwant %+v", second.Settings(), settings)
	}
	if adj := second.Adjustments(); adj.FocusMultiplier != 1.1 {
		t.Errorf("restored focus multiplier = %v, want 1.1", adj.FocusMultiplier)
	}
	if scores := second.ScoreLog().Scores; len(scores) != 1 || scores[0] != 5 {
		t.Errorf("restored score log = %v", scores)
	}

	stats := second.Stats()
	if stats.FocusTimeSeconds != 1700 {
		t.Errorf("restored focus time = %d, want 1700", stats.FocusTimeSeconds)
	}
	if stats.BreakTimeSeconds != 300 {
		t.Errorf("restored break time = %d, want 300", stats.BreakTimeSeconds)
	}

	// The next adjusted focus period reflects the raised multiplier.
	if total := second.State().TotalTimeSeconds; total != 1650 {
		t.Errorf("restored focus total = %d, want 1650", total)
	}
}
