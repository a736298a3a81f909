package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/toyplan/internal/cli"
	"github.com/julianstephens/toyplan/internal/cli/backups"
	"github.com/julianstephens/toyplan/internal/cli/goals"
	"github.com/julianstephens/toyplan/internal/cli/settings"
	"github.com/julianstephens/toyplan/internal/cli/system"
	"github.com/julianstephens/toyplan/internal/cli/tasks"
	"github.com/julianstephens/toyplan/internal/cli/views"
	"github.com/julianstephens/toyplan/internal/constants"
	"github.com/julianstephens/toyplan/internal/errors"
	"github.com/julianstephens/toyplan/internal/logger"
	"github.com/julianstephens/toyplan/internal/scheduler"
	"github.com/julianstephens/toyplan/internal/utils"
)

type CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite path, .json path, PostgreSQL URL, or 'keyring'. PostgreSQL URLs must not embed a password; store one with 'toyplan keyring set' and pass 'keyring' instead." type:"string" default:"~/.config/toyplan/toyplan.db" env:"TOYPLAN_CONFIG"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd       `cmd:"" help:"Initialize toyplan storage."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Today    views.TodayCmd       `cmd:"" help:"Show tasks due today."`
	Schedule views.ScheduleCmd    `cmd:"" help:"Show the coming days."`
	Stats    views.StatsCmd       `cmd:"" help:"Show statistics."`
	Validate system.ValidateCmd   `cmd:"" help:"Check goals and tasks for conflicts."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Export   system.ExportCmd     `cmd:"" help:"Export all tracker data."`
	Import   system.ImportCmd     `cmd:"" help:"Replace all tracker data from an export."`
	Settings settings.SettingsCmd `cmd:"" help:"View or change settings."`
	Goal     struct {
		Add  goals.GoalAddCmd  `cmd:"" help:"Add a goal."`
		List goals.GoalListCmd `cmd:"" help:"List goals." default:"1"`
	} `cmd:"" help:"Manage goals."`
	Group struct {
		Add  goals.GroupAddCmd  `cmd:"" help:"Add a group to a goal."`
		List goals.GroupListCmd `cmd:"" help:"List groups." default:"1"`
	} `cmd:"" help:"Manage task groups."`
	Task struct {
		Add  tasks.TaskAddCmd  `cmd:"" help:"Add a task to a group."`
		List tasks.TaskListCmd `cmd:"" help:"List tasks." default:"1"`
		Done tasks.TaskDoneCmd `cmd:"" help:"Report one completion of a task."`
		Show tasks.TaskShowCmd `cmd:"" help:"Show task details."`
	} `cmd:"" help:"Manage tasks."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string, password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

// Commands that manage their own storage state.
var skipLoad = []string{"init", "doctor", "keyring"}

func main() {
	errors.Fatal(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) error {
	var flags CLI
	parser, err := kong.New(&flags,
		kong.Name(constants.AppName),
		kong.Description("Goals, task groups and recurring tasks, recomputed every day"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
		kong.Writers(out, os.Stderr),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	command := ctx.Command()
	appCtx := &cli.Context{
		Clock:     utils.RealClock{},
		Scheduler: scheduler.New(constants.DefaultHorizonDays),
		Out:       out,
	}

	if strings.HasPrefix(command, "keyring") {
		initLogger(defaultConfigDir(), flags.Debug)
		return ctx.Run(appCtx)
	}

	store, err := cli.OpenStore(flags.Config)
	if err != nil {
		initLogger(defaultConfigDir(), flags.Debug)
		return err
	}
	defer store.Close()

	configDir, err := cli.ConfigDir(store)
	if err != nil {
		return err
	}
	initLogger(configDir, flags.Debug)
	logger.Debug("Starting", "command", command, "store", store.GetConfigPath())

	appCtx.Store = store
	appCtx.ConfigDir = configDir

	if !shouldSkipLoad(command) {
		if err := store.Load(); err != nil {
			return err
		}
		appCtx.ApplySettings()
	}

	return ctx.Run(appCtx)
}

func shouldSkipLoad(command string) bool {
	for _, name := range skipLoad {
		if strings.HasPrefix(command, name) {
			return true
		}
	}
	return false
}

func defaultConfigDir() string {
	dir, err := cli.DefaultConfigDir()
	if err != nil {
		return "."
	}
	return dir
}

func initLogger(configDir string, debug bool) {
	if err := logger.Init(logger.Config{Debug: debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
}
