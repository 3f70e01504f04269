package cli

import "fmt"

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	eng, err := ctx.NewEngine()
	if err != nil {
		return err
	}

	stats := eng.Stats()
	if stats.Day == "" {
		fmt.Println("No sessions recorded yet.")
		return nil
	}

	fmt.Printf("Stats for %s:\n", stats.Day)
	fmt.Printf("  Focus time:    %s\n", FormatClock(stats.FocusTimeSeconds))
	fmt.Printf("  Break time:    %s\n", FormatClock(stats.BreakTimeSeconds))
	fmt.Printf("  Micro breaks:  %d\n", stats.MicroBreakCount)
	fmt.Printf("  Efficiency:    %d%%\n", stats.EfficiencyPercent)
	return nil
}
