package cli

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/MMR-MINGriyue/focusflow/internal/engine"
	"github.com/MMR-MINGriyue/focusflow/internal/logger"
	"github.com/MMR-MINGriyue/focusflow/internal/models"
	"github.com/MMR-MINGriyue/focusflow/internal/notifier"
	"github.com/MMR-MINGriyue/focusflow/internal/sound"
)

type RunCmd struct {
	Mode string `help:"Switch to this mode before starting (classic or smart)." enum:"classic,smart," default:""`
	For  int    `help:"Stop automatically after this many minutes (0 = run until quit)." default:"0"`
}

// command is one line of user input from the control prompt.
type command struct {
	name string
	arg  string
}

// Run drives the engine at the configured tick interval. The engine is
// not safe for concurrent use, so ticks, control commands and shutdown
// signals all funnel into a single select loop that owns every engine
// call.
func (c *RunCmd) Run(ctx *Context) error {
	eng, err := ctx.NewEngine()
	if err != nil {
		return err
	}

	if c.Mode != "" && models.Mode(c.Mode) != eng.Mode() {
		mode, err := models.ParseMode(c.Mode)
		if err != nil {
			return err
		}
		if _, err := eng.SwitchMode(mode, engine.SwitchOptions{ResetOnSwitch: true}); err != nil {
			return err
		}
	}

	notify := notifier.New()
	cues := sound.New()
	dispatch := func(events []engine.Event) {
		for _, event := range events {
			switch event.Type {
			case engine.EventStateChange:
				fmt.Printf("\n[%s] %s (%s)\n", eng.Mode(), event.State, FormatClock(event.Remaining))
			case engine.EventSound:
				if ctx.Config.SoundEnabled {
					if err := cues.Play(event.Sound); err != nil {
						logger.Warn("Sound cue failed", "key", event.Sound, "error", err)
					}
				}
			case engine.EventNotification:
				if event.Notification.Event == engine.NotifyEfficiencyRatingRequested {
					fmt.Println("How productive was that focus session? Enter: rate 1-5")
				}
				if ctx.Config.NotificationsEnabled {
					if err := notify.Notify(*event.Notification); err != nil {
						// The tray companion is optional; delivery
						// failures stay out of the user's way.
						logger.Debug("Notification delivery failed", "event", event.Notification.Event, "error", err)
					}
				}
			}
		}
	}

	commands := make(chan command)
	go readCommands(commands)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	tickInterval := time.Duration(ctx.Config.TickIntervalSec) * time.Second
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	var deadline time.Time
	if c.For > 0 {
		deadline = time.Now().Add(time.Duration(c.For) * time.Minute)
	}

	dispatch(eng.Start())
	state := eng.State()
	fmt.Printf("Session started: %s mode, %s state, %s remaining\n", eng.Mode(), state.CurrentState, FormatClock(state.TimeLeftSeconds))
	fmt.Println("Commands: pause, resume, skip, micro, rate <1-5>, status, quit")

	for {
		select {
		case <-ticker.C:
			dispatch(eng.Tick(uint32(ctx.Config.TickIntervalSec)))
			if !deadline.IsZero() && time.Now().After(deadline) {
				return c.shutdown(ctx, eng)
			}
		case <-signals:
			fmt.Println()
			return c.shutdown(ctx, eng)
		case cmd, ok := <-commands:
			if !ok {
				return c.shutdown(ctx, eng)
			}
			done, err := c.handle(eng, cmd, dispatch)
			if err != nil {
				fmt.Printf("%v\n", err)
			}
			if done {
				return c.shutdown(ctx, eng)
			}
		}
	}
}

func (c *RunCmd) handle(eng *engine.Engine, cmd command, dispatch func([]engine.Event)) (bool, error) {
	switch cmd.name {
	case "pause":
		eng.Pause()
		fmt.Println("Paused.")
	case "resume", "start":
		dispatch(eng.Start())
	case "skip":
		next := models.StateFocus
		if eng.State().CurrentState == models.StateFocus {
			next = models.StateBreak
		}
		dispatch(eng.TransitionTo(next))
	case "micro":
		dispatch(eng.TriggerMicroBreak())
	case "rate":
		score, err := strconv.Atoi(cmd.arg)
		if err != nil {
			return false, fmt.Errorf("usage: rate <1-5>")
		}
		if err := eng.SubmitScore(score); err != nil {
			return false, err
		}
		adjustments := eng.Adjustments()
		fmt.Printf("Recorded. Focus multiplier: %.1f, break multiplier: %.1f\n",
			adjustments.FocusMultiplier, adjustments.BreakMultiplier)
	case "status":
		state := eng.State()
		fmt.Printf("%s state, %s / %s, active=%v\n", state.CurrentState,
			FormatClock(state.TimeLeftSeconds), FormatClock(state.TotalTimeSeconds), state.IsActive)
	case "quit", "exit":
		return true, nil
	default:
		fmt.Println("Commands: pause, resume, skip, micro, rate <1-5>, status, quit")
	}
	return false, nil
}

func (c *RunCmd) shutdown(ctx *Context, eng *engine.Engine) error {
	eng.Pause()
	if err := eng.Save(); err != nil {
		return fmt.Errorf("failed to save session snapshot: %w", err)
	}
	ctx.PerformAutomaticBackup()
	stats := eng.Stats()
	fmt.Printf("Session saved. Today: %s focused, %s on breaks, %d micro breaks, %d%% efficiency\n",
		FormatClock(stats.FocusTimeSeconds), FormatClock(stats.BreakTimeSeconds),
		stats.MicroBreakCount, stats.EfficiencyPercent)
	return nil
}

func readCommands(out chan<- command) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(strings.ToLower(scanner.Text()))
		if len(fields) == 0 {
			continue
		}
		cmd := command{name: fields[0]}
		if len(fields) > 1 {
			cmd.arg = fields[1]
		}
		out <- cmd
	}
	close(out)
}
