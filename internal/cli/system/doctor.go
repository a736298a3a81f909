package system

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/toyplan/internal/backup"
	"github.com/julianstephens/toyplan/internal/cli"
	"github.com/julianstephens/toyplan/internal/keyring"
	"github.com/julianstephens/toyplan/internal/lock"
	"github.com/julianstephens/toyplan/internal/storage"
	"github.com/julianstephens/toyplan/internal/storage/sqlite"
	"github.com/julianstephens/toyplan/internal/tracker"
	"github.com/julianstephens/toyplan/internal/validation"
)

type DoctorCmd struct{}

type checkLevel int

const (
	levelFail checkLevel = iota
	levelWarn
)

type check struct {
	name string
	// level decides whether a failing check fails the whole run.
	level checkLevel
	// needsStore checks are skipped when storage is unreachable.
	needsStore bool
	run        func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", level: levelFail, needsStore: true, run: checkSchemaVersion},
	{name: "Tracker data", level: levelFail, needsStore: true, run: checkTrackerData},
	{name: "Data validation", level: levelWarn, needsStore: true, run: checkValidation},
	{name: "Backups present", level: levelWarn, run: checkBackupsPresent},
	{name: "Instance lock", level: levelWarn, run: checkLock},
	{name: "OS keyring", level: levelWarn, run: checkKeyring},
	{name: "Clock/timezone", level: levelFail, run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true
	if err := ctx.Store.Load(); err != nil {
		ctx.Printf("❌ Storage reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		reachable = false
	} else {
		ctx.Printf("✓ Storage reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsStore && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.level == levelWarn:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		return errors.New("one or more checks failed")
	}
	ctx.Println("All checks passed.")
	return nil
}

type schemaVersioner interface {
	SchemaVersion() (current, latest int, err error)
}

func checkSchemaVersion(ctx *cli.Context) error {
	sv, ok := ctx.Store.(schemaVersioner)
	if !ok {
		return nil
	}
	current, latest, err := sv.SchemaVersion()
	if err != nil {
		return err
	}
	if current != latest {
		return fmt.Errorf("schema version %d, expected %d; run 'toyplan init' to migrate", current, latest)
	}
	return nil
}

func checkTrackerData(ctx *cli.Context) error {
	snapshot, err := ctx.Store.LoadSnapshot()
	if errors.Is(err, storage.ErrNoSnapshot) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = tracker.FromSnapshot(snapshot)
	return err
}

func checkValidation(ctx *cli.Context) error {
	data, err := ctx.LoadData()
	if err != nil {
		return err
	}
	result := validation.New().Validate(data.Snapshot(), ctx.Today())
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found; run 'toyplan validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups in %s; run 'toyplan backup create'", mgr.BackupDir())
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("newest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkLock(ctx *cli.Context) error {
	holder, err := lock.Inspect(ctx.ConfigDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("unreadable lockfile: %w", err)
	}
	if holder.Executable == "" {
		return fmt.Errorf("stale lockfile from pid %d; it will be replaced on next write", holder.PID)
	}
	return fmt.Errorf("held by %s (pid %d) since %s", holder.Executable, holder.PID, holder.Since.Format(time.DateTime))
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if now.Location() == nil {
		return errors.New("no local timezone")
	}
	return nil
}
