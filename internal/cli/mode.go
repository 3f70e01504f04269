package cli

import (
	"fmt"

	"github.com/MMR-MINGriyue/focusflow/internal/engine"
	"github.com/MMR-MINGriyue/focusflow/internal/models"
)

type ModeCmd struct {
	Mode string `arg:"" help:"Target mode (classic or smart)." enum:"classic,smart"`

	PreserveTime bool `help:"Keep the numeric remaining time across the switch."`
	NoReset      bool `help:"Keep the current session state instead of re-deriving it."`
}

func (c *ModeCmd) Run(ctx *Context) error {
	mode, err := models.ParseMode(c.Mode)
	if err != nil {
		return err
	}

	eng, err := ctx.NewEngine()
	if err != nil {
		return err
	}

	if eng.Mode() == mode {
		fmt.Printf("Already in %s mode.\n", mode)
		return nil
	}

	_, err = eng.SwitchMode(mode, engine.SwitchOptions{
		PreserveCurrentTime: c.PreserveTime,
		PauseBeforeSwitch:   true,
		ResetOnSwitch:       !c.NoReset,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Switched to %s mode.\n", mode)
	return nil
}
