package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/MMR-MINGriyue/focusflow/internal/clock"
	"github.com/MMR-MINGriyue/focusflow/internal/constants"
	"github.com/MMR-MINGriyue/focusflow/internal/models"
	"github.com/MMR-MINGriyue/focusflow/internal/optimizer"
	"github.com/MMR-MINGriyue/focusflow/internal/scheduler"
	"github.com/MMR-MINGriyue/focusflow/internal/validation"
)

// Options contains runtime options for the Engine.
type Options struct {
	// Bounded efficiency history caps per mode. Zero values fall back
	// to the built-in defaults.
	ClassicScoreCap  int
	AdaptiveScoreCap int
}

// SwitchOptions controls how SwitchMode carries state into the new mode.
type SwitchOptions struct {
	// PreserveCurrentTime keeps the numeric remaining time across the
	// switch even though the total changes; the remaining time may then
	// exceed the new total so a running countdown never jumps.
	PreserveCurrentTime bool
	PauseBeforeSwitch   bool
	ResetOnSwitch       bool
}

// Engine owns the session state machine: the current state, the
// countdown, micro-break scheduling and adaptive adjustments. It is
// logically single-threaded; the driver serializes all calls. Methods
// return the events each transition produced and the driver dispatches
// them to the gateways afterwards.
type Engine struct {
	store     PersistenceGateway
	clock     clock.Clock
	scheduler *scheduler.Scheduler
	adjuster  *optimizer.Adjuster
	options   Options

	mode        models.Mode
	settings    models.Settings
	state       models.SessionState
	schedule    models.MicroBreakSchedule
	adjustments models.AdaptiveAdjustments
	scoreLog    models.EfficiencyScoreLog
	stats       models.DailySessionStats

	sessionID          string
	previousState      models.State
	elapsedFocusSec    uint32
	continuousFocusSec uint32
	stashedFocusLeft   uint32 // focus remaining while a micro break runs
	stashedFocusTotal  uint32
	started            bool
}

// New constructs an Engine, loading a persisted snapshot through the
// gateway once. A missing or unreadable snapshot falls back to fresh
// defaults. Loaded settings are re-validated so a hand-edited store never
// produces an invalid engine.
func New(store PersistenceGateway, clk clock.Clock, random clock.RandomSource, options Options) (*Engine, error) {
	if options.ClassicScoreCap <= 0 {
		options.ClassicScoreCap = constants.DefaultClassicScoreCap
	}
	if options.AdaptiveScoreCap <= 0 {
		options.AdaptiveScoreCap = constants.DefaultAdaptiveScoreCap
	}

	e := &Engine{
		store:       store,
		clock:       clk,
		scheduler:   scheduler.New(random),
		adjuster:    optimizer.New(clk),
		options:     options,
		mode:        models.ModeClassic,
		settings:    models.DefaultSettings(),
		adjustments: models.DefaultAdjustments(),
	}

	snapshot, ok, err := store.LoadSnapshot()
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	if ok {
		if snapshot.Mode == models.ModeSmart {
			e.mode = models.ModeSmart
		}
		result := validation.New().ValidateSettings(snapshot.Settings)
		e.settings = result.Settings
		e.adjustments = snapshot.Adjustments
		e.clampAdjustments()
		e.scoreLog = snapshot.ScoreLog
		e.stats = snapshot.DailyStats
	}
	e.scoreLog.Cap = e.scoreCap()
	if e.scoreLog.Scores == nil {
		e.scoreLog = models.NewEfficiencyScoreLog(e.scoreCap())
	}
	e.deriveFreshState()
	return e, nil
}

// State returns the current session state snapshot.
func (e *Engine) State() models.SessionState { return e.state }

// Mode returns the active mode.
func (e *Engine) Mode() models.Mode { return e.mode }

// Settings returns the active settings.
func (e *Engine) Settings() models.Settings { return e.settings }

// Adjustments returns the current adaptive adjustments.
func (e *Engine) Adjustments() models.AdaptiveAdjustments { return e.adjustments }

// Schedule returns the current micro-break schedule.
func (e *Engine) Schedule() models.MicroBreakSchedule { return e.schedule }

// Stats returns the accumulated daily stats.
func (e *Engine) Stats() models.DailySessionStats { return e.stats }

// ScoreLog returns the efficiency rating history.
func (e *Engine) ScoreLog() models.EfficiencyScoreLog { return e.scoreLog }

// SessionID identifies the current focus session.
func (e *Engine) SessionID() string { return e.sessionID }

// PreviousState returns the state before the most recent transition.
func (e *Engine) PreviousState() models.State { return e.previousState }

// Start activates the countdown. Starting an already active engine is a
// no-op. The first start of a session draws the first micro-break
// interval and anchors the focus-start offset.
func (e *Engine) Start() []Event {
	if e.state.IsActive {
		return nil
	}
	e.state.IsActive = true

	var events []Event
	if !e.started {
		e.started = true
		e.sessionID = uuid.NewString()
		e.elapsedFocusSec = 0
		if e.scheduler.Enabled(e.settings, e.mode) {
			e.schedule = models.MicroBreakSchedule{
				NextIntervalSec: e.scheduler.ScheduleNext(e.settings, e.mode),
			}
		}
	}
	events = append(events, Event{
		Type:  EventSound,
		State: e.state.CurrentState,
		Sound: models.SoundKeyFor(e.state.CurrentState),
	})
	return events
}

// Pause freezes the countdown, preserving remaining time exactly.
func (e *Engine) Pause() {
	e.state.IsActive = false
}

// Reset re-derives a fresh session state from the current settings and
// mode. Counters return to zero; the score log and adjustments persist
// across sessions.
func (e *Engine) Reset() {
	e.deriveFreshState()
}

// Tick advances the countdown by elapsed seconds (callers driven by a
// 1 Hz timer pass 1). Ticking while inactive is a no-op. When the
// countdown reaches zero the transition logic fires exactly once.
func (e *Engine) Tick(elapsedSec uint32) []Event {
	if !e.state.IsActive || elapsedSec == 0 {
		return nil
	}
	e.rolloverStats()

	if e.state.TimeLeftSeconds == 0 {
		// Countdown already exhausted and no new duration set yet.
		return nil
	}

	consumed := elapsedSec
	if consumed > e.state.TimeLeftSeconds {
		consumed = e.state.TimeLeftSeconds
	}
	e.state.TimeLeftSeconds -= consumed
	e.accumulateStats(consumed)

	if e.state.CurrentState == models.StateFocus {
		e.elapsedFocusSec += consumed
		e.continuousFocusSec += consumed

		if e.state.TimeLeftSeconds > 0 && e.microBreakDue() {
			return e.enterMicroBreak()
		}
	}

	if e.state.TimeLeftSeconds == 0 {
		return e.completeState()
	}
	return nil
}

// TransitionTo forces an explicit transition, used by skip. The next
// state's duration is derived from settings and, in smart mode, the
// adaptive adjustments. Transitioning to a state the current mode does
// not have is a silent no-op.
func (e *Engine) TransitionTo(next models.State) []Event {
	if !next.ValidFor(e.mode) {
		return nil
	}
	if next == models.StateMicroBreak {
		// A micro break stashes the interrupted focus countdown; from
		// any other state there is nothing to interrupt.
		if e.state.CurrentState != models.StateFocus {
			return nil
		}
		return e.enterMicroBreak()
	}
	return e.enterState(next, e.durationFor(next))
}

// TriggerMicroBreak forces an immediate micro break, independent of the
// scheduler's own timing. It is only honored while actively focused.
func (e *Engine) TriggerMicroBreak() []Event {
	if e.state.CurrentState != models.StateFocus || !e.state.IsActive {
		return nil
	}
	return e.enterMicroBreak()
}

// SwitchMode moves the engine to the given mode and persists the change.
func (e *Engine) SwitchMode(mode models.Mode, options SwitchOptions) ([]Event, error) {
	if options.PauseBeforeSwitch {
		e.state.IsActive = false
	}

	previousRemaining := e.state.TimeLeftSeconds
	e.mode = mode
	e.scoreLog.Cap = e.scoreCap()

	var events []Event
	if options.ResetOnSwitch {
		e.deriveFreshState()
	} else {
		// Recompute only the current logical state against the new
		// mode's settings.
		current := e.state.CurrentState
		if !current.ValidFor(mode) {
			current = models.StateBreak
		}
		total := e.durationFor(current)
		e.state.CurrentState = current
		e.state.TotalTimeSeconds = total
		e.state.TimeLeftSeconds = total
		e.state.Mode = mode
		if options.PreserveCurrentTime {
			e.state.TimeLeftSeconds = previousRemaining
		}
		if e.scheduler.Enabled(e.settings, e.mode) {
			e.schedule = models.MicroBreakSchedule{
				NextIntervalSec:      e.scheduler.ScheduleNext(e.settings, e.mode),
				LastTriggerOffsetSec: e.elapsedFocusSec,
				TriggerCount:         e.schedule.TriggerCount,
			}
		}
	}

	if err := e.Save(); err != nil {
		return events, fmt.Errorf("persisting mode switch: %w", err)
	}
	return events, nil
}

// UpdateSettings validates and replaces the engine settings, persisting
// the result. Invalid fields degrade to defaults; the returned result
// carries one warning per replaced field.
func (e *Engine) UpdateSettings(settings models.Settings) (validation.Result, error) {
	result := validation.New().ValidateSettings(settings)
	e.settings = result.Settings
	if err := e.Save(); err != nil {
		return result, fmt.Errorf("persisting settings: %w", err)
	}
	return result, nil
}

// SubmitScore records an efficiency rating and, in smart mode with
// adaptation enabled, recomputes the duration multipliers.
func (e *Engine) SubmitScore(score int) error {
	if err := e.adjuster.RecordScore(&e.scoreLog, score); err != nil {
		return err
	}
	enabled := e.mode == models.ModeSmart && e.settings.Smart.EnableAdaptiveAdjustment
	e.adjustments = e.adjuster.Recompute(e.scoreLog, e.adjustments, enabled)
	return nil
}

// Save flushes the current snapshot through the persistence gateway.
func (e *Engine) Save() error {
	return e.store.SaveSnapshot(models.Snapshot{
		Version:     models.SnapshotVersion,
		Mode:        e.mode,
		Settings:    e.settings,
		DailyStats:  e.stats,
		ScoreLog:    e.scoreLog,
		Adjustments: e.adjustments,
	})
}

func (e *Engine) scoreCap() int {
	if e.mode == models.ModeSmart {
		return e.options.AdaptiveScoreCap
	}
	return e.options.ClassicScoreCap
}

// deriveFreshState rebuilds the session from settings and mode: focus
// state, inactive, counters zeroed. Score log and adjustments survive.
func (e *Engine) deriveFreshState() {
	total := e.durationFor(models.StateFocus)
	e.state = models.SessionState{
		CurrentState:     models.StateFocus,
		TimeLeftSeconds:  total,
		TotalTimeSeconds: total,
		IsActive:         false,
		Mode:             e.mode,
	}
	e.schedule = models.MicroBreakSchedule{}
	e.previousState = models.StateFocus
	e.sessionID = ""
	e.elapsedFocusSec = 0
	e.continuousFocusSec = 0
	e.stashedFocusLeft = 0
	e.stashedFocusTotal = 0
	e.started = false
}

func (e *Engine) durationFor(state models.State) uint32 {
	if e.mode == models.ModeClassic {
		switch state {
		case models.StateBreak:
			return uint32(e.settings.Classic.BreakDurationMin) * 60
		case models.StateMicroBreak:
			return e.scheduler.MicroBreakDuration(e.settings, e.mode)
		default:
			return uint32(e.settings.Classic.FocusDurationMin) * 60
		}
	}
	switch state {
	case models.StateBreak, models.StateForcedBreak:
		return optimizer.EffectiveBreakSeconds(e.settings.Smart, e.adjustments)
	case models.StateMicroBreak:
		return e.scheduler.MicroBreakDuration(e.settings, e.mode)
	default:
		return optimizer.EffectiveFocusSeconds(e.settings.Smart, e.adjustments)
	}
}

func (e *Engine) microBreakDue() bool {
	if !e.scheduler.Enabled(e.settings, e.mode) {
		return false
	}
	return e.scheduler.ShouldTrigger(e.elapsedFocusSec, e.schedule.LastTriggerOffsetSec, e.schedule.NextIntervalSec)
}

// completeState runs the timer-expiry transition for the current state.
func (e *Engine) completeState() []Event {
	switch e.state.CurrentState {
	case models.StateFocus:
		if e.mode == models.ModeSmart &&
			e.continuousFocusSec >= uint32(e.settings.Smart.ForcedBreakThresholdMin)*60 {
			return e.enterState(models.StateForcedBreak, e.durationFor(models.StateForcedBreak))
		}
		return e.enterState(models.StateBreak, e.durationFor(models.StateBreak))
	case models.StateMicroBreak:
		return e.resumeFocus()
	default:
		// Break or ForcedBreak completed: the stretch of continuous
		// focus is over.
		e.continuousFocusSec = 0
		return e.enterState(models.StateFocus, e.durationFor(models.StateFocus))
	}
}

func (e *Engine) enterMicroBreak() []Event {
	e.stashedFocusLeft = e.state.TimeLeftSeconds
	e.stashedFocusTotal = e.state.TotalTimeSeconds
	duration := e.scheduler.MicroBreakDuration(e.settings, e.mode)
	events := e.enterState(models.StateMicroBreak, duration)

	e.schedule.LastTriggerOffsetSec = e.elapsedFocusSec
	e.schedule.TriggerCount++
	e.schedule.NextIntervalSec = e.scheduler.ScheduleNext(e.settings, e.mode)
	e.stats.MicroBreakCount++
	return events
}

// resumeFocus returns from a micro break to the interrupted focus period
// with its remaining time intact.
func (e *Engine) resumeFocus() []Event {
	e.previousState = e.state.CurrentState
	e.state.CurrentState = models.StateFocus
	e.state.TimeLeftSeconds = e.stashedFocusLeft
	e.state.TotalTimeSeconds = e.stashedFocusTotal
	e.stashedFocusLeft = 0
	e.stashedFocusTotal = 0
	e.stats.RecalculateEfficiency()

	return []Event{
		{
			Type:      EventStateChange,
			State:     models.StateFocus,
			Remaining: e.state.TimeLeftSeconds,
			Total:     e.state.TotalTimeSeconds,
		},
		{
			Type:  EventSound,
			State: models.StateFocus,
			Sound: models.SoundFocusStart,
		},
	}
}

func (e *Engine) enterState(next models.State, total uint32) []Event {
	from := e.state.CurrentState
	e.previousState = from
	e.state.CurrentState = next
	e.state.TotalTimeSeconds = total
	e.state.TimeLeftSeconds = total
	e.stats.RecalculateEfficiency()

	if next == models.StateFocus {
		// A new focus session begins.
		e.sessionID = uuid.NewString()
		e.elapsedFocusSec = 0
		if e.scheduler.Enabled(e.settings, e.mode) {
			e.schedule.LastTriggerOffsetSec = 0
			e.schedule.NextIntervalSec = e.scheduler.ScheduleNext(e.settings, e.mode)
		}
	}

	events := []Event{
		{
			Type:      EventStateChange,
			State:     next,
			Remaining: e.state.TimeLeftSeconds,
			Total:     total,
		},
		{
			Type:  EventSound,
			State: next,
			Sound: models.SoundKeyFor(next),
		},
	}

	switch next {
	case models.StateBreak:
		if from == models.StateFocus {
			events = append(events, Event{
				Type:  EventNotification,
				State: next,
				Notification: &Notification{
					Event: NotifyEfficiencyRatingRequested,
					Payload: NotificationPayload{
						DurationMinutes: e.focusDurationMinutes(),
						SessionType:     models.StateFocus,
						SessionID:       e.sessionID,
					},
				},
			})
		}
	case models.StateForcedBreak:
		events = append(events, Event{
			Type:  EventNotification,
			State: next,
			Notification: &Notification{
				Event: NotifyForcedBreakStarted,
				Payload: NotificationPayload{
					DurationMinutes: int(total / 60),
					SessionType:     next,
					SessionID:       e.sessionID,
				},
			},
		})
	case models.StateMicroBreak:
		events = append(events, Event{
			Type:  EventNotification,
			State: next,
			Notification: &Notification{
				Event: NotifyMicroBreakStarted,
				Payload: NotificationPayload{
					DurationMinutes: int(total / 60),
					SessionType:     next,
					SessionID:       e.sessionID,
				},
			},
		})
	}
	return events
}

func (e *Engine) focusDurationMinutes() int {
	if e.mode == models.ModeSmart {
		return int(optimizer.EffectiveFocusSeconds(e.settings.Smart, e.adjustments) / 60)
	}
	return e.settings.Classic.FocusDurationMin
}

func (e *Engine) accumulateStats(seconds uint32) {
	switch e.state.CurrentState {
	case models.StateFocus:
		e.stats.FocusTimeSeconds += seconds
	default:
		e.stats.BreakTimeSeconds += seconds
	}
}

// rolloverStats starts a fresh daily stats record when the day changes.
func (e *Engine) rolloverStats() {
	today := e.clock.Now().Format(constants.DateFormat)
	if e.stats.Day != today {
		e.stats = models.DailySessionStats{Day: today}
	}
}

func (e *Engine) clampAdjustments() {
	clamp := func(m float64) float64 {
		if m == 0 {
			// Zero means the snapshot predates adjustments.
			return 1.0
		}
		if m < constants.MinDurationMultiplier {
			return constants.MinDurationMultiplier
		}
		if m > constants.MaxDurationMultiplier {
			return constants.MaxDurationMultiplier
		}
		return m
	}
	e.adjustments.FocusMultiplier = clamp(e.adjustments.FocusMultiplier)
	e.adjustments.BreakMultiplier = clamp(e.adjustments.BreakMultiplier)
}
