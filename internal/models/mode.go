package models

import "fmt"

// Mode selects which settings sub-object and state set are active.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeSmart   Mode = "smart"
)

// ParseMode converts a user-supplied string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeClassic:
		return ModeClassic, nil
	case ModeSmart:
		return ModeSmart, nil
	default:
		return "", fmt.Errorf("invalid mode: %q (expected %q or %q)", s, ModeClassic, ModeSmart)
	}
}

// State represents the current session state.
type State string

const (
	StateFocus       State = "focus"
	StateBreak       State = "break"
	StateMicroBreak  State = "micro_break"
	StateForcedBreak State = "forced_break"
)

// ValidFor reports whether the state belongs to the given mode's state set.
func (s State) ValidFor(mode Mode) bool {
	switch s {
	case StateFocus, StateBreak, StateMicroBreak:
		return true
	case StateForcedBreak:
		return mode == ModeSmart
	default:
		return false
	}
}

// SoundKey identifies the cue played on entering a state.
type SoundKey string

const (
	SoundFocusStart       SoundKey = "focusStart"
	SoundBreakStart       SoundKey = "breakStart"
	SoundMicroBreakStart  SoundKey = "microBreakStart"
	SoundForcedBreakStart SoundKey = "forcedBreakStart"
)

// SoundKeyFor returns the cue key for entering the given state.
func SoundKeyFor(state State) SoundKey {
	switch state {
	case StateBreak:
		return SoundBreakStart
	case StateMicroBreak:
		return SoundMicroBreakStart
	case StateForcedBreak:
		return SoundForcedBreakStart
	default:
		return SoundFocusStart
	}
}
