package cli

import (
	"fmt"

	"github.com/MMR-MINGriyue/focusflow/internal/models"
)

type RateCmd struct {
	Score int `arg:"" help:"Efficiency rating for the last focus session (1-5)."`
}

func (c *RateCmd) Run(ctx *Context) error {
	eng, err := ctx.NewEngine()
	if err != nil {
		return err
	}

	if err := eng.SubmitScore(c.Score); err != nil {
		return err
	}
	if err := eng.Save(); err != nil {
		return fmt.Errorf("failed to save rating: %w", err)
	}

	log := eng.ScoreLog()
	fmt.Printf("Recorded score %d (%d of %d recent ratings, average %.1f)\n",
		c.Score, len(log.Scores), log.Cap, log.Average())

	if eng.Mode() == models.ModeSmart && eng.Settings().Smart.EnableAdaptiveAdjustment {
		adjustments := eng.Adjustments()
		fmt.Printf("Focus multiplier: %.1f, break multiplier: %.1f\n",
			adjustments.FocusMultiplier, adjustments.BreakMultiplier)
	}
	return nil
}
