package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/MMR-MINGriyue/focusflow/internal/models"
)

type SettingsCmd struct {
	List   bool   `help:"List current settings."`
	Export string `help:"Write settings as JSON to this path ('-' for stdout)." type:"path"`
	Import string `help:"Replace settings from a JSON file." type:"path"`

	ClassicFocusMin      *int `help:"Classic focus duration in minutes."`
	ClassicBreakMin      *int `help:"Classic break duration in minutes."`
	ClassicMicroDuration *int `help:"Classic micro break duration in seconds."`

	SmartFocusMin    *int  `help:"Smart focus duration in minutes."`
	SmartBreakMin    *int  `help:"Smart break duration in minutes."`
	SmartMicroBreaks *bool `help:"Enable smart micro breaks."`
	SmartAdaptive    *bool `help:"Enable adaptive duration adjustment."`
	SmartForcedMin   *int  `help:"Continuous focus minutes before a forced break."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	eng, err := ctx.NewEngine()
	if err != nil {
		return err
	}
	settings := eng.Settings()

	if c.Export != "" {
		return exportSettings(settings, c.Export)
	}
	if c.Import != "" {
		imported, err := importSettings(c.Import)
		if err != nil {
			return err
		}
		result, err := eng.UpdateSettings(imported)
		if err != nil {
			return err
		}
		if result.HasWarnings() {
			fmt.Print(result.FormatReport())
		}
		fmt.Println("Settings imported successfully.")
		return nil
	}

	if c.List {
		printSettings(settings, eng.Mode())
		return nil
	}

	updated := false
	if c.ClassicFocusMin != nil {
		settings.Classic.FocusDurationMin = *c.ClassicFocusMin
		updated = true
	}
	if c.ClassicBreakMin != nil {
		settings.Classic.BreakDurationMin = *c.ClassicBreakMin
		updated = true
	}
	if c.ClassicMicroDuration != nil {
		settings.Classic.MicroBreakDurationSec = *c.ClassicMicroDuration
		updated = true
	}
	if c.SmartFocusMin != nil {
		settings.Smart.FocusDurationMin = *c.SmartFocusMin
		updated = true
	}
	if c.SmartBreakMin != nil {
		settings.Smart.BreakDurationMin = *c.SmartBreakMin
		updated = true
	}
	if c.SmartMicroBreaks != nil {
		settings.Smart.EnableMicroBreaks = *c.SmartMicroBreaks
		updated = true
	}
	if c.SmartAdaptive != nil {
		settings.Smart.EnableAdaptiveAdjustment = *c.SmartAdaptive
		updated = true
	}
	if c.SmartForcedMin != nil {
		settings.Smart.ForcedBreakThresholdMin = *c.SmartForcedMin
		updated = true
	}

	if updated {
		result, err := eng.UpdateSettings(settings)
		if err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		if result.HasWarnings() {
			fmt.Print(result.FormatReport())
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}

func printSettings(settings models.Settings, mode models.Mode) {
	fmt.Printf("Active mode: %s\n", mode)
	fmt.Println("\nClassic Settings:")
	fmt.Printf("  Focus Duration:        %d min\n", settings.Classic.FocusDurationMin)
	fmt.Printf("  Break Duration:        %d min\n", settings.Classic.BreakDurationMin)
	fmt.Printf("  Micro Break Interval:  %d-%d sec\n", settings.Classic.MicroBreakMinIntervalSec, settings.Classic.MicroBreakMaxIntervalSec)
	fmt.Printf("  Micro Break Duration:  %d sec\n", settings.Classic.MicroBreakDurationSec)
	fmt.Println("\nSmart Settings:")
	fmt.Printf("  Focus Duration:        %d min\n", settings.Smart.FocusDurationMin)
	fmt.Printf("  Break Duration:        %d min\n", settings.Smart.BreakDurationMin)
	fmt.Printf("  Micro Breaks Enabled:  %v\n", settings.Smart.EnableMicroBreaks)
	fmt.Printf("  Micro Break Interval:  %d-%d sec\n", settings.Smart.MicroBreakMinIntervalSec, settings.Smart.MicroBreakMaxIntervalSec)
	fmt.Printf("  Micro Break Duration:  %d-%d sec\n", settings.Smart.MicroBreakMinDurationSec, settings.Smart.MicroBreakMaxDurationSec)
	fmt.Printf("  Adaptive Adjustment:   %v\n", settings.Smart.EnableAdaptiveAdjustment)
	fmt.Printf("  Forced Break After:    %d min\n", settings.Smart.ForcedBreakThresholdMin)
	fmt.Printf("  Max Continuous Focus:  %d min\n", settings.Smart.MaxContinuousFocusTimeMin)
	fmt.Printf("  Circadian Optimization: %v\n", settings.Smart.EnableCircadianOptimization)
}

func exportSettings(settings models.Settings, path string) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	if path == "-" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings export: %w", err)
	}
	fmt.Printf("Settings exported to %s\n", path)
	return nil
}

func importSettings(path string) (models.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}
	var settings models.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return settings, nil
}
