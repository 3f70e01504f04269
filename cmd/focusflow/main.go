package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/MMR-MINGriyue/focusflow/internal/cli"
	"github.com/MMR-MINGriyue/focusflow/internal/config"
	"github.com/MMR-MINGriyue/focusflow/internal/constants"
	"github.com/MMR-MINGriyue/focusflow/internal/errors"
	"github.com/MMR-MINGriyue/focusflow/internal/logger"
	"github.com/MMR-MINGriyue/focusflow/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Snapshot storage path (overrides the config file)." type:"path" default:""`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize focusflow storage."`
	Run      cli.RunCmd      `cmd:"" help:"Run a focus session." default:"1"`
	Mode     cli.ModeCmd     `cmd:"" help:"Switch between classic and smart mode."`
	Rate     cli.RateCmd     `cmd:"" help:"Rate the last focus session (1-5)."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show today's session stats."`
	Settings cli.SettingsCmd `cmd:"" help:"View and update engine settings."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage snapshot store backups."`
	Debugger cli.DebugCmd `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Focus/break session scheduler with adaptive smart mode"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load()
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if CLI.Config != "" {
		cfg.StoragePath = CLI.Config
		if strings.HasSuffix(CLI.Config, ".json") {
			cfg.StorageBackend = "json"
		}
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: configDir}); err != nil {
		errors.Fatal(err)
	}

	storagePath, err := cli.StoragePathFor(cfg)
	if err != nil {
		errors.Fatal(err)
	}

	var store storage.Provider
	if cfg.StorageBackend == "json" {
		store = storage.NewJSONStore(storagePath)
	} else {
		store = storage.NewSQLiteStore(storagePath)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
	}

	// The init command creates the store itself; everything else needs
	// it loaded first.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
