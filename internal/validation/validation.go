package validation

import (
	"fmt"

	"github.com/MMR-MINGriyue/focusflow/internal/models"
)

// WarningType classifies a settings validation warning.
type WarningType string

const (
	WarningNonPositive    WarningType = "non_positive"
	WarningInvertedRange  WarningType = "inverted_range"
	WarningExceedsMaximum WarningType = "exceeds_maximum"
)

// Warning records a rejected settings field and the default it was
// replaced with. Settings input is user-editable and must degrade
// gracefully, so invalid fields never abort validation.
type Warning struct {
	Type        WarningType
	Field       string
	Description string
}

// Result contains the corrected settings and all warnings produced while
// validating.
type Result struct {
	Settings models.Settings
	Warnings []Warning
}

// HasWarnings returns true if any field was replaced.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// FormatReport returns a human-readable report of all warnings.
func (r *Result) FormatReport() string {
	if !r.HasWarnings() {
		return "Settings valid."
	}
	report := "Settings adjusted:\n"
	for _, w := range r.Warnings {
		report += fmt.Sprintf("- %s\n", w.Description)
	}
	return report
}

// Validator validates engine settings field by field.
type Validator struct{}

// New creates a new Validator.
func New() *Validator {
	return &Validator{}
}

// ValidateSettings checks every field of both mode sub-objects. Each
// out-of-range field is replaced with its default and reported; valid
// fields pass through untouched.
func (v *Validator) ValidateSettings(settings models.Settings) Result {
	defaults := models.DefaultSettings()
	result := Result{Settings: settings, Warnings: []Warning{}}

	checkPositive := func(field string, value *int, def int) {
		if *value <= 0 {
			result.Warnings = append(result.Warnings, Warning{
				Type:        WarningNonPositive,
				Field:       field,
				Description: fmt.Sprintf("%s must be > 0 (got %d), using default %d", field, *value, def),
			})
			*value = def
		}
	}

	c := &result.Settings.Classic
	cd := defaults.Classic
	checkPositive("classic.focus_duration_min", &c.FocusDurationMin, cd.FocusDurationMin)
	checkPositive("classic.break_duration_min", &c.BreakDurationMin, cd.BreakDurationMin)
	checkPositive("classic.micro_break_min_interval_sec", &c.MicroBreakMinIntervalSec, cd.MicroBreakMinIntervalSec)
	checkPositive("classic.micro_break_max_interval_sec", &c.MicroBreakMaxIntervalSec, cd.MicroBreakMaxIntervalSec)
	checkPositive("classic.micro_break_duration_sec", &c.MicroBreakDurationSec, cd.MicroBreakDurationSec)
	if c.MicroBreakMinIntervalSec > c.MicroBreakMaxIntervalSec {
		result.Warnings = append(result.Warnings, Warning{
			Type:  WarningInvertedRange,
			Field: "classic.micro_break_min_interval_sec",
			Description: fmt.Sprintf("classic micro break interval range inverted (%d > %d), using defaults %d..%d",
				c.MicroBreakMinIntervalSec, c.MicroBreakMaxIntervalSec, cd.MicroBreakMinIntervalSec, cd.MicroBreakMaxIntervalSec),
		})
		c.MicroBreakMinIntervalSec = cd.MicroBreakMinIntervalSec
		c.MicroBreakMaxIntervalSec = cd.MicroBreakMaxIntervalSec
	}

	s := &result.Settings.Smart
	sd := defaults.Smart
	checkPositive("smart.focus_duration_min", &s.FocusDurationMin, sd.FocusDurationMin)
	checkPositive("smart.break_duration_min", &s.BreakDurationMin, sd.BreakDurationMin)
	checkPositive("smart.micro_break_min_interval_sec", &s.MicroBreakMinIntervalSec, sd.MicroBreakMinIntervalSec)
	checkPositive("smart.micro_break_max_interval_sec", &s.MicroBreakMaxIntervalSec, sd.MicroBreakMaxIntervalSec)
	checkPositive("smart.micro_break_min_duration_sec", &s.MicroBreakMinDurationSec, sd.MicroBreakMinDurationSec)
	checkPositive("smart.micro_break_max_duration_sec", &s.MicroBreakMaxDurationSec, sd.MicroBreakMaxDurationSec)
	checkPositive("smart.forced_break_threshold_min", &s.ForcedBreakThresholdMin, sd.ForcedBreakThresholdMin)
	checkPositive("smart.max_continuous_focus_time_min", &s.MaxContinuousFocusTimeMin, sd.MaxContinuousFocusTimeMin)

	if s.MicroBreakMinIntervalSec > s.MicroBreakMaxIntervalSec {
		result.Warnings = append(result.Warnings, Warning{
			Type:  WarningInvertedRange,
			Field: "smart.micro_break_min_interval_sec",
			Description: fmt.Sprintf("smart micro break interval range inverted (%d > %d), using defaults %d..%d",
				s.MicroBreakMinIntervalSec, s.MicroBreakMaxIntervalSec, sd.MicroBreakMinIntervalSec, sd.MicroBreakMaxIntervalSec),
		})
		s.MicroBreakMinIntervalSec = sd.MicroBreakMinIntervalSec
		s.MicroBreakMaxIntervalSec = sd.MicroBreakMaxIntervalSec
	}
	if s.MicroBreakMinDurationSec > s.MicroBreakMaxDurationSec {
		result.Warnings = append(result.Warnings, Warning{
			Type:  WarningInvertedRange,
			Field: "smart.micro_break_min_duration_sec",
			Description: fmt.Sprintf("smart micro break duration range inverted (%d > %d), using defaults %d..%d",
				s.MicroBreakMinDurationSec, s.MicroBreakMaxDurationSec, sd.MicroBreakMinDurationSec, sd.MicroBreakMaxDurationSec),
		})
		s.MicroBreakMinDurationSec = sd.MicroBreakMinDurationSec
		s.MicroBreakMaxDurationSec = sd.MicroBreakMaxDurationSec
	}
	if s.ForcedBreakThresholdMin > s.MaxContinuousFocusTimeMin {
		result.Warnings = append(result.Warnings, Warning{
			Type:  WarningExceedsMaximum,
			Field: "smart.forced_break_threshold_min",
			Description: fmt.Sprintf("forced break threshold %d min exceeds max continuous focus time %d min, capping",
				s.ForcedBreakThresholdMin, s.MaxContinuousFocusTimeMin),
		})
		s.ForcedBreakThresholdMin = s.MaxContinuousFocusTimeMin
	}

	return result
}
