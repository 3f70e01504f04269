package scheduler

import (
	"github.com/MMR-MINGriyue/focusflow/internal/clock"
	"github.com/MMR-MINGriyue/focusflow/internal/models"
)

// Scheduler decides when to insert a micro break during a focus period.
// Intervals are randomized inside the user-chosen bounds so the rhythm
// never becomes predictable enough to ignore.
type Scheduler struct {
	random clock.RandomSource
}

// New creates a Scheduler using the given random source.
func New(random clock.RandomSource) *Scheduler {
	return &Scheduler{random: random}
}

// ScheduleNext draws the next micro-break interval in seconds for the
// given mode. In classic mode the interval bounds are typically equal,
// which makes the draw a fixed interval.
func (s *Scheduler) ScheduleNext(settings models.Settings, mode models.Mode) uint32 {
	min, max := intervalBounds(settings, mode)
	if min >= max {
		return uint32(min)
	}
	return uint32(s.random.UniformInt(min, max))
}

// MicroBreakDuration draws the length in seconds of the micro break
// itself. Classic mode uses a fixed duration; smart mode draws inside the
// configured duration range.
func (s *Scheduler) MicroBreakDuration(settings models.Settings, mode models.Mode) uint32 {
	if mode == models.ModeClassic {
		return uint32(settings.Classic.MicroBreakDurationSec)
	}
	min := settings.Smart.MicroBreakMinDurationSec
	max := settings.Smart.MicroBreakMaxDurationSec
	if min >= max {
		return uint32(min)
	}
	return uint32(s.random.UniformInt(min, max))
}

// ShouldTrigger reports whether enough focus time has elapsed since the
// last trigger to start the scheduled micro break. Callers only consult
// this while focused and active, never while paused.
func (s *Scheduler) ShouldTrigger(elapsedFocusSec, lastTriggerOffsetSec, scheduledIntervalSec uint32) bool {
	if scheduledIntervalSec == 0 {
		return false
	}
	return elapsedFocusSec-lastTriggerOffsetSec >= scheduledIntervalSec
}

// Enabled reports whether micro breaks apply for the given mode and
// settings. Classic mode always schedules them; smart mode has a toggle.
func (s *Scheduler) Enabled(settings models.Settings, mode models.Mode) bool {
	if mode == models.ModeSmart {
		return settings.Smart.EnableMicroBreaks
	}
	return true
}

func intervalBounds(settings models.Settings, mode models.Mode) (int, int) {
	if mode == models.ModeSmart {
		return settings.Smart.MicroBreakMinIntervalSec, settings.Smart.MicroBreakMaxIntervalSec
	}
	return settings.Classic.MicroBreakMinIntervalSec, settings.Classic.MicroBreakMaxIntervalSec
}
