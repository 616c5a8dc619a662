package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/lockclock/internal/cli"
	"github.com/julianstephens/lockclock/internal/config"
	"github.com/julianstephens/lockclock/internal/constants"
	"github.com/julianstephens/lockclock/internal/errors"
	"github.com/julianstephens/lockclock/internal/logger"
	"github.com/julianstephens/lockclock/internal/storage"
)

var CLI struct {
	Version   kong.VersionFlag
	Config    string `help:"Settings store path. Paths ending in .json use a JSON file instead of SQLite." type:"path" default:"~/.config/lockclock/lockclock.db"`
	Providers string `help:"Provider config file (TOML)." type:"path" default:"~/.config/lockclock/providers.toml"`
	Debug     bool   `help:"Enable debug logging."`

	Init      cli.InitCmd     `cmd:"" help:"Initialize lockclock storage."`
	Tui       cli.TuiCmd      `cmd:"" help:"Open the widget settings screen." default:"1"`
	Settings  cli.SettingsCmd `cmd:"" help:"View or change widget settings."`
	Locate    cli.LocateCmd   `cmd:"" help:"Resolve and store the custom weather location."`
	Calendars struct {
		List   cli.CalendarsListCmd   `cmd:"" help:"List calendars and which are shown." default:"1"`
		Add    cli.CalendarsAddCmd    `cmd:"" help:"Add a local calendar."`
		Remove cli.CalendarsRemoveCmd `cmd:"" help:"Remove a local calendar."`
		Select cli.CalendarsSelectCmd `cmd:"" help:"Choose the calendars shown on the widget."`
	} `cmd:"" help:"Manage agenda calendars."`
	Keyring struct {
		Set    cli.KeyringSetCmd    `cmd:"" help:"Store the CalDAV password in the OS keyring."`
		Delete cli.KeyringDeleteCmd `cmd:"" help:"Remove the CalDAV password from the OS keyring."`
	} `cmd:"" help:"Manage CalDAV credentials."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Back up the settings store."`
		List    cli.BackupListCmd    `cmd:"" help:"List settings backups." default:"1"`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore settings from a backup."`
	} `cmd:"" help:"Manage settings backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Lock screen clock widget preferences"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	command := ctx.Command()
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
		Quiet:     strings.HasPrefix(command, "tui"),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	cfg, err := config.Load(CLI.Providers)
	if err != nil {
		errors.Fatal(err)
	}

	store := storage.New(CLI.Config)

	// init creates the store itself
	if !strings.HasPrefix(command, "init") {
		if err := store.Load(); err != nil {
			errors.Fatalf("%v (run '%s init' first)", err, constants.AppName)
		}
	}

	appCtx := cli.NewContext(store, cfg, CLI.Providers)
	runErr := ctx.Run(appCtx)
	if err := store.Close(); err != nil {
		logger.Warn("Failed to close store", "error", err)
	}
	if runErr != nil {
		errors.Fatal(runErr)
	}
}
