package models

import (
	"fmt"

	"github.com/MMR-MINGriyue/focusflow/internal/constants"
)

// DefaultSettings returns the built-in configuration for both modes.
func DefaultSettings() Settings {
	return Settings{
		Classic: ClassicSettings{
			FocusDurationMin:         constants.DefaultClassicFocusDurationMin,
			BreakDurationMin:         constants.DefaultClassicBreakDurationMin,
			MicroBreakMinIntervalSec: constants.DefaultClassicMicroBreakMinIntervalSec,
			MicroBreakMaxIntervalSec: constants.DefaultClassicMicroBreakMaxIntervalSec,
			MicroBreakDurationSec:    constants.DefaultClassicMicroBreakDurationSec,
		},
		Smart: SmartSettings{
			FocusDurationMin:            constants.DefaultSmartFocusDurationMin,
			BreakDurationMin:            constants.DefaultSmartBreakDurationMin,
			EnableMicroBreaks:           constants.DefaultSmartEnableMicroBreaks,
			MicroBreakMinIntervalSec:    constants.DefaultSmartMicroBreakMinIntervalSec,
			MicroBreakMaxIntervalSec:    constants.DefaultSmartMicroBreakMaxIntervalSec,
			MicroBreakMinDurationSec:    constants.DefaultSmartMicroBreakMinDurationSec,
			MicroBreakMaxDurationSec:    constants.DefaultSmartMicroBreakMaxDurationSec,
			EnableAdaptiveAdjustment:    constants.DefaultSmartEnableAdaptive,
			ForcedBreakThresholdMin:     constants.DefaultSmartForcedBreakThresholdMin,
			EnableCircadianOptimization: constants.DefaultSmartEnableCircadian,
			MaxContinuousFocusTimeMin:   constants.DefaultSmartMaxContinuousFocusMin,
		},
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Unknown keys are ignored so older stores keep loading.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingClassicFocusDurationMin:
			if err := scanInt(key, value, &settings.Classic.FocusDurationMin); err != nil {
				return Settings{}, err
			}
		case constants.SettingClassicBreakDurationMin:
			if err := scanInt(key, value, &settings.Classic.BreakDurationMin); err != nil {
				return Settings{}, err
			}
		case constants.SettingClassicMicroBreakMinIntervalSec:
			if err := scanInt(key, value, &settings.Classic.MicroBreakMinIntervalSec); err != nil {
				return Settings{}, err
			}
		case constants.SettingClassicMicroBreakMaxIntervalSec:
			if err := scanInt(key, value, &settings.Classic.MicroBreakMaxIntervalSec); err != nil {
				return Settings{}, err
			}
		case constants.SettingClassicMicroBreakDurationSec:
			if err := scanInt(key, value, &settings.Classic.MicroBreakDurationSec); err != nil {
				return Settings{}, err
			}
		case constants.SettingSmartFocusDurationMin:
			if err := scanInt(key, value, &settings.Smart.FocusDurationMin); err != nil {
				return Settings{}, err
			}
		case constants.SettingSmartBreakDurationMin:
			if err := scanInt(key, value, &settings.Smart.BreakDurationMin); err != nil {
				return Settings{}, err
			}
		case constants.SettingSmartEnableMicroBreaks:
			settings.Smart.EnableMicroBreaks = value == "true"
		case constants.SettingSmartMicroBreakMinIntervalSec:
			if err := scanInt(key, value, &settings.Smart.MicroBreakMinIntervalSec); err != nil {
				return Settings{}, err
			}
		case constants.SettingSmartMicroBreakMaxIntervalSec:
			if err := scanInt(key, value, &settings.Smart.MicroBreakMaxIntervalSec); err != nil {
				return Settings{}, err
			}
		case constants.SettingSmartMicroBreakMinDurationSec:
			if err := scanInt(key, value, &settings.Smart.MicroBreakMinDurationSec); err != nil {
				return Settings{}, err
			}
		case constants.SettingSmartMicroBreakMaxDurationSec:
			if err := scanInt(key, value, &settings.Smart.MicroBreakMaxDurationSec); err != nil {
				return Settings{}, err
			}
		case constants.SettingSmartEnableAdaptive:
			settings.Smart.EnableAdaptiveAdjustment = value == "true"
		case constants.SettingSmartForcedBreakThresholdMin:
			if err := scanInt(key, value, &settings.Smart.ForcedBreakThresholdMin); err != nil {
				return Settings{}, err
			}
		case constants.SettingSmartEnableCircadian:
			settings.Smart.EnableCircadianOptimization = value == "true"
		case constants.SettingSmartMaxContinuousFocusMin:
			if err := scanInt(key, value, &settings.Smart.MaxContinuousFocusTimeMin); err != nil {
				return Settings{}, err
			}
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingClassicFocusDurationMin:         fmt.Sprintf("%d", settings.Classic.FocusDurationMin),
		constants.SettingClassicBreakDurationMin:         fmt.Sprintf("%d", settings.Classic.BreakDurationMin),
		constants.SettingClassicMicroBreakMinIntervalSec: fmt.Sprintf("%d", settings.Classic.MicroBreakMinIntervalSec),
		constants.SettingClassicMicroBreakMaxIntervalSec: fmt.Sprintf("%d", settings.Classic.MicroBreakMaxIntervalSec),
		constants.SettingClassicMicroBreakDurationSec:    fmt.Sprintf("%d", settings.Classic.MicroBreakDurationSec),
		constants.SettingSmartFocusDurationMin:           fmt.Sprintf("%d", settings.Smart.FocusDurationMin),
		constants.SettingSmartBreakDurationMin:           fmt.Sprintf("%d", settings.Smart.BreakDurationMin),
		constants.SettingSmartEnableMicroBreaks:          fmt.Sprintf("%v", settings.Smart.EnableMicroBreaks),
		constants.SettingSmartMicroBreakMinIntervalSec:   fmt.Sprintf("%d", settings.Smart.MicroBreakMinIntervalSec),
		constants.SettingSmartMicroBreakMaxIntervalSec:   fmt.Sprintf("%d", settings.Smart.MicroBreakMaxIntervalSec),
		constants.SettingSmartMicroBreakMinDurationSec:   fmt.Sprintf("%d", settings.Smart.MicroBreakMinDurationSec),
		constants.SettingSmartMicroBreakMaxDurationSec:   fmt.Sprintf("%d", settings.Smart.MicroBreakMaxDurationSec),
		constants.SettingSmartEnableAdaptive:             fmt.Sprintf("%v", settings.Smart.EnableAdaptiveAdjustment),
		constants.SettingSmartForcedBreakThresholdMin:    fmt.Sprintf("%d", settings.Smart.ForcedBreakThresholdMin),
		constants.SettingSmartEnableCircadian:            fmt.Sprintf("%v", settings.Smart.EnableCircadianOptimization),
		constants.SettingSmartMaxContinuousFocusMin:      fmt.Sprintf("%d", settings.Smart.MaxContinuousFocusTimeMin),
	}
}

func scanInt(key, value string, dst *int) error {
	if _, err := fmt.Sscanf(value, "%d", dst); err != nil {
		return fmt.Errorf("parsing %s: %w", key, err)
	}
	return nil
}
