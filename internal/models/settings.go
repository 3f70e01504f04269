package models

// ClassicSettings configures fixed-interval scheduling.
type ClassicSettings struct {
	FocusDurationMin         int `json:"focus_duration_min"`           // focus period length in minutes
	BreakDurationMin         int `json:"break_duration_min"`           // break length in minutes
	MicroBreakMinIntervalSec int `json:"micro_break_min_interval_sec"` // lower bound between micro breaks in seconds
	MicroBreakMaxIntervalSec int `json:"micro_break_max_interval_sec"` // upper bound between micro breaks in seconds
	MicroBreakDurationSec    int `json:"micro_break_duration_sec"`     // micro break length in seconds
}

// SmartSettings configures adaptive scheduling.
type SmartSettings struct {
	FocusDurationMin            int  `json:"focus_duration_min"`
	BreakDurationMin            int  `json:"break_duration_min"`
	EnableMicroBreaks           bool `json:"enable_micro_breaks"`
	MicroBreakMinIntervalSec    int  `json:"micro_break_min_interval_sec"`
	MicroBreakMaxIntervalSec    int  `json:"micro_break_max_interval_sec"`
	MicroBreakMinDurationSec    int  `json:"micro_break_min_duration_sec"`
	MicroBreakMaxDurationSec    int  `json:"micro_break_max_duration_sec"`
	EnableAdaptiveAdjustment    bool `json:"enable_adaptive_adjustment"`
	ForcedBreakThresholdMin     int  `json:"forced_break_threshold_min"` // minutes of continuous focus before a break is mandatory
	EnableCircadianOptimization bool `json:"enable_circadian_optimization"`
	MaxContinuousFocusTimeMin   int  `json:"max_continuous_focus_time_min"`
}

// Settings is the full engine configuration for both modes.
type Settings struct {
	Classic ClassicSettings `json:"classic"`
	Smart   SmartSettings   `json:"smart"`
}
