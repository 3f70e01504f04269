package models

import "math"

// SessionState is the engine's current countdown position.
type SessionState struct {
	CurrentState     State  `json:"current_state"`
	TimeLeftSeconds  uint32 `json:"time_left_seconds"`
	TotalTimeSeconds uint32 `json:"total_time_seconds"`
	IsActive         bool   `json:"is_active"`
	Mode             Mode   `json:"mode"`
}

// MicroBreakSchedule tracks the next randomized micro-break trigger.
type MicroBreakSchedule struct {
	NextIntervalSec      uint32 `json:"next_interval_sec"`
	LastTriggerOffsetSec uint32 `json:"last_trigger_offset_sec"`
	TriggerCount         uint32 `json:"trigger_count"`
}

// AdaptiveAdjustments are the bounded duration multipliers for smart mode.
type AdaptiveAdjustments struct {
	FocusMultiplier     float64 `json:"focus_multiplier"`
	BreakMultiplier     float64 `json:"break_multiplier"`
	LastAdjustmentEpoch int64   `json:"last_adjustment_epoch"` // epoch millis of the last recompute
}

// DefaultAdjustments returns multipliers pinned at 1.0.
func DefaultAdjustments() AdaptiveAdjustments {
	return AdaptiveAdjustments{FocusMultiplier: 1.0, BreakMultiplier: 1.0}
}

// EfficiencyScoreLog is a bounded FIFO of the most recent user ratings.
// Oldest entries drop silently when the cap is exceeded.
type EfficiencyScoreLog struct {
	Scores []int `json:"scores"`
	Cap    int   `json:"cap"`
}

// NewEfficiencyScoreLog creates an empty log holding at most cap entries.
func NewEfficiencyScoreLog(cap int) EfficiencyScoreLog {
	if cap <= 0 {
		cap = 1
	}
	return EfficiencyScoreLog{Scores: []int{}, Cap: cap}
}

// Append adds a score, evicting the oldest entry beyond the cap.
func (l *EfficiencyScoreLog) Append(score int) {
	l.Scores = append(l.Scores, score)
	if l.Cap > 0 && len(l.Scores) > l.Cap {
		l.Scores = l.Scores[len(l.Scores)-l.Cap:]
	}
}

// Average returns the mean of the recorded scores, or 0 when empty.
func (l *EfficiencyScoreLog) Average() float64 {
	if len(l.Scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range l.Scores {
		sum += s
	}
	return float64(sum) / float64(len(l.Scores))
}

// DailySessionStats accumulates per-day focus/break totals.
type DailySessionStats struct {
	Day               string `json:"day"` // YYYY-MM-DD
	FocusTimeSeconds  uint32 `json:"focus_time_seconds"`
	BreakTimeSeconds  uint32 `json:"break_time_seconds"`
	MicroBreakCount   uint32 `json:"micro_break_count"`
	EfficiencyPercent uint32 `json:"efficiency_percent"`
}

// RecalculateEfficiency updates EfficiencyPercent from the current totals.
func (s *DailySessionStats) RecalculateEfficiency() {
	if s.FocusTimeSeconds == 0 {
		s.EfficiencyPercent = 0
		return
	}
	total := float64(s.FocusTimeSeconds + s.BreakTimeSeconds)
	s.EfficiencyPercent = uint32(math.Round(float64(s.FocusTimeSeconds) / total * 100))
}

// Snapshot is the versioned record persisted through the persistence
// gateway. Schema evolution is the gateway's responsibility.
type Snapshot struct {
	Version     int                 `json:"version"`
	Mode        Mode                `json:"mode"`
	Settings    Settings            `json:"settings"`
	DailyStats  DailySessionStats   `json:"daily_stats"`
	ScoreLog    EfficiencyScoreLog  `json:"efficiency_log"`
	Adjustments AdaptiveAdjustments `json:"adaptive_adjustments"`
}

// SnapshotVersion is the current snapshot schema version.
const SnapshotVersion = 1
