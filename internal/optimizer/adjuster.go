package optimizer

import (
	"fmt"
	"math"

	"github.com/MMR-MINGriyue/focusflow/internal/clock"
	"github.com/MMR-MINGriyue/focusflow/internal/constants"
	"github.com/MMR-MINGriyue/focusflow/internal/models"
)

// Adjuster turns recent efficiency ratings into bounded duration
// multipliers for smart mode. It never mutates engine state itself; the
// engine records scores into its log and applies the recomputed
// adjustments.
type Adjuster struct {
	clock clock.Clock
}

// New creates an Adjuster using the given clock for adjustment
// timestamps.
func New(clk clock.Clock) *Adjuster {
	return &Adjuster{clock: clk}
}

// RecordScore validates and appends a user rating to the bounded log.
// The oldest entry is evicted silently once the cap is exceeded.
func (a *Adjuster) RecordScore(log *models.EfficiencyScoreLog, score int) error {
	if score < constants.MinEfficiencyScore || score > constants.MaxEfficiencyScore {
		return fmt.Errorf("efficiency score %d out of range [%d, %d]",
			score, constants.MinEfficiencyScore, constants.MaxEfficiencyScore)
	}
	log.Append(score)
	return nil
}

// Recompute derives new adjustments from the score log. With adaptation
// disabled the multipliers stay pinned at 1.0. A low recent average
// shortens future focus periods one step, a high average lengthens them;
// both multipliers stay inside [0.8, 1.2].
//
// The break multiplier follows the same average branch as the focus
// multiplier, so low efficiency shortens breaks too. That mirrors the
// observed product behavior even though lengthening breaks under low
// efficiency would also be defensible.
func (a *Adjuster) Recompute(log models.EfficiencyScoreLog, current models.AdaptiveAdjustments, enabled bool) models.AdaptiveAdjustments {
	if !enabled {
		return models.DefaultAdjustments()
	}
	if len(log.Scores) == 0 {
		return current
	}

	next := current
	avg := log.Average()
	switch {
	case avg < constants.LowEfficiencyAverage:
		next.FocusMultiplier = stepDown(current.FocusMultiplier)
		next.BreakMultiplier = stepDown(current.BreakMultiplier)
	case avg > constants.HighEfficiencyAverage:
		next.FocusMultiplier = stepUp(current.FocusMultiplier)
		next.BreakMultiplier = stepUp(current.BreakMultiplier)
	default:
		return current
	}

	if next != current {
		next.LastAdjustmentEpoch = a.clock.Now().UnixMilli()
	}
	return next
}

// EffectiveFocusSeconds applies the focus multiplier to the smart focus
// duration.
func EffectiveFocusSeconds(settings models.SmartSettings, adjustments models.AdaptiveAdjustments) uint32 {
	return applyMultiplier(settings.FocusDurationMin, adjustments.FocusMultiplier)
}

// EffectiveBreakSeconds applies the break multiplier to the smart break
// duration.
func EffectiveBreakSeconds(settings models.SmartSettings, adjustments models.AdaptiveAdjustments) uint32 {
	return applyMultiplier(settings.BreakDurationMin, adjustments.BreakMultiplier)
}

func applyMultiplier(durationMin int, multiplier float64) uint32 {
	return uint32(math.Round(float64(durationMin) * 60 * multiplier))
}

// Multipliers move in fixed decimal steps; rounding after each step keeps
// repeated adjustments from drifting off the 0.1 grid.
func stepDown(m float64) float64 {
	next := math.Round((m-constants.MultiplierStep)*10) / 10
	return math.Max(constants.MinDurationMultiplier, next)
}

func stepUp(m float64) float64 {
	next := math.Round((m+constants.MultiplierStep)*10) / 10
	return math.Min(constants.MaxDurationMultiplier, next)
}
