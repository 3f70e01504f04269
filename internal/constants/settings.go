package constants

const (
	// General Settings
	SettingMode = "mode"

	// Classic Settings
	SettingClassicFocusDurationMin         = "classic_focus_duration_min"
	SettingClassicBreakDurationMin         = "classic_break_duration_min"
	SettingClassicMicroBreakMinIntervalSec = "classic_micro_break_min_interval_sec"
	SettingClassicMicroBreakMaxIntervalSec = "classic_micro_break_max_interval_sec"
	SettingClassicMicroBreakDurationSec    = "classic_micro_break_duration_sec"

	// Smart Settings
	SettingSmartFocusDurationMin         = "smart_focus_duration_min"
	SettingSmartBreakDurationMin         = "smart_break_duration_min"
	SettingSmartEnableMicroBreaks        = "smart_enable_micro_breaks"
	SettingSmartMicroBreakMinIntervalSec = "smart_micro_break_min_interval_sec"
	SettingSmartMicroBreakMaxIntervalSec = "smart_micro_break_max_interval_sec"
	SettingSmartMicroBreakMinDurationSec = "smart_micro_break_min_duration_sec"
	SettingSmartMicroBreakMaxDurationSec = "smart_micro_break_max_duration_sec"
	SettingSmartEnableAdaptive           = "smart_enable_adaptive_adjustment"
	SettingSmartForcedBreakThresholdMin  = "smart_forced_break_threshold_min"
	SettingSmartEnableCircadian          = "smart_enable_circadian_optimization"
	SettingSmartMaxContinuousFocusMin    = "smart_max_continuous_focus_min"

	// Default Classic Settings Values
	DefaultClassicFocusDurationMin         = 25
	DefaultClassicBreakDurationMin         = 5
	DefaultClassicMicroBreakMinIntervalSec = 600
	DefaultClassicMicroBreakMaxIntervalSec = 600
	DefaultClassicMicroBreakDurationSec    = 30

	// Default Smart Settings Values
	DefaultSmartFocusDurationMin         = 25
	DefaultSmartBreakDurationMin         = 5
	DefaultSmartEnableMicroBreaks        = true
	DefaultSmartMicroBreakMinIntervalSec = 300
	DefaultSmartMicroBreakMaxIntervalSec = 900
	DefaultSmartMicroBreakMinDurationSec = 10
	DefaultSmartMicroBreakMaxDurationSec = 30
	DefaultSmartEnableAdaptive           = true
	DefaultSmartForcedBreakThresholdMin  = 120
	DefaultSmartEnableCircadian          = false
	DefaultSmartMaxContinuousFocusMin    = 180

	// Efficiency score bounds (user ratings are 1..5)
	MinEfficiencyScore = 1
	MaxEfficiencyScore = 5

	// Bounded efficiency history caps
	DefaultClassicScoreCap  = 5
	DefaultAdaptiveScoreCap = 10

	// Adaptive multiplier bounds and adjustment behavior
	MinDurationMultiplier = 0.8
	MaxDurationMultiplier = 1.2
	MultiplierStep        = 0.1
	LowEfficiencyAverage  = 3.0
	HighEfficiencyAverage = 4.0
)
