package models

import (
	"encoding/json"
	"testing"

	"github.com/MMR-MINGriyue/focusflow/internal/constants"
)

func TestSettingsJSONRoundTrip(t *testing.T) {
	settings := DefaultSettings()
	settings.Classic.FocusDurationMin = 45
	settings.Classic.MicroBreakDurationSec = 20
	settings.Smart.FocusDurationMin = 50
	settings.Smart.EnableMicroBreaks = false
	settings.Smart.EnableCircadianOptimization = true
	settings.Smart.ForcedBreakThresholdMin = 90

	data, err := json.Marshal(settings)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var restored Settings
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if restored != settings {
		t.Errorf("round trip changed settings:\n got %+v\nwant %+v", restored, settings)
	}
}

func TestSettingsMapRoundTrip(t *testing.T) {
	settings := DefaultSettings()
	settings.Classic.FocusDurationMin = 45
	settings.Smart.EnableMicroBreaks = false
	settings.Smart.MicroBreakMaxDurationSec = 25

	restored, err := MapToSettings(SettingsToMap(settings))
	if err != nil {
		t.Fatalf("MapToSettings failed: %v", err)
	}

	if restored != settings {
		t.Errorf("round trip changed settings:\n got %+v\nwant %+v", restored, settings)
	}
}

func TestMapToSettings_UnknownKeysIgnored(t *testing.T) {
	data := SettingsToMap(DefaultSettings())
	data["some_future_setting"] = "42"

	restored, err := MapToSettings(data)
	if err != nil {
		t.Fatalf("MapToSettings failed: %v", err)
	}
	if restored != DefaultSettings() {
		t.Errorf("unknown key changed settings: %+v", restored)
	}
}

func TestMapToSettings_MissingKeysUseDefaults(t *testing.T) {
	restored, err := MapToSettings(map[string]string{
		constants.SettingClassicFocusDurationMin: "50",
	})
	if err != nil {
		t.Fatalf("MapToSettings failed: %v", err)
	}

	if restored.Classic.FocusDurationMin != 50 {
		t.Errorf("explicit key not applied: %d", restored.Classic.FocusDurationMin)
	}
	if restored.Classic.BreakDurationMin != constants.DefaultClassicBreakDurationMin {
		t.Errorf("missing key not defaulted: %d", restored.Classic.BreakDurationMin)
	}
}

func TestMapToSettings_BadValue(t *testing.T) {
	if _, err := MapToSettings(map[string]string{
		constants.SettingSmartFocusDurationMin: "soon",
	}); err == nil {
		t.Error("expected error for unparseable value")
	}
}
