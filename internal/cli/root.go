package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/toyplan/internal/backup"
	"github.com/julianstephens/toyplan/internal/lock"
	"github.com/julianstephens/toyplan/internal/logger"
	"github.com/julianstephens/toyplan/internal/models"
	"github.com/julianstephens/toyplan/internal/scheduler"
	"github.com/julianstephens/toyplan/internal/storage"
	"github.com/julianstephens/toyplan/internal/storage/sqlite"
	"github.com/julianstephens/toyplan/internal/tracker"
	"github.com/julianstephens/toyplan/internal/utils"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Clock     utils.Clock
	// ConfigDir holds the lockfile, logs and, for file stores, the data.
	ConfigDir string
	Out       io.Writer
	In        io.Reader
}

func (c *Context) Today() models.Date {
	return utils.Today(c.Clock)
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.stdout(), args...)
}

func (c *Context) stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Confirm asks a yes/no question on the context's input. Anything but
// "y" or "yes" is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// Settings returns the stored settings, or the defaults when they cannot
// be read.
func (c *Context) Settings() models.Settings {
	settings, err := c.Store.GetSettings()
	if err != nil {
		logger.Warn("Failed to read settings, using defaults", "error", err)
		return models.DefaultSettings()
	}
	return settings
}

// ApplySettings sizes the scheduler to the stored horizon.
func (c *Context) ApplySettings() {
	c.Scheduler = scheduler.New(c.Settings().HorizonDays)
}

// LoadData rebuilds the tracker from the store and recomputes it for today.
// A store without tracker data yields the seed data, not yet saved.
func (c *Context) LoadData() (*tracker.Data, error) {
	today := c.Today()

	snapshot, err := c.Store.LoadSnapshot()
	if errors.Is(err, storage.ErrNoSnapshot) {
		logger.Info("No tracker data found, creating seed data", "today", today)
		data, err := tracker.New(today)
		if err != nil {
			return nil, fmt.Errorf("failed to create seed data: %w", err)
		}
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tracker data: %w", err)
	}

	data, err := tracker.FromSnapshot(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to restore tracker data: %w", err)
	}
	data.Recompute(today)
	return data, nil
}

func (c *Context) SaveData(data *tracker.Data) error {
	if err := c.Store.SaveSnapshot(data.Snapshot()); err != nil {
		return fmt.Errorf("failed to save tracker data: %w", err)
	}
	return nil
}

// Lock takes the instance lock in ConfigDir.
func (c *Context) Lock() (*lock.Lock, error) {
	l, err := lock.Acquire(c.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	return l, nil
}

// Mutate loads the tracker under the instance lock, applies fn, recomputes
// and saves. Nothing is saved when fn fails.
func (c *Context) Mutate(fn func(*tracker.Data) error) error {
	l, err := c.Lock()
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}()

	data, err := c.LoadData()
	if err != nil {
		return err
	}
	if err := fn(data); err != nil {
		return err
	}
	data.Recompute(c.Today())
	return c.SaveData(data)
}

// PerformAutomaticBackup backs up a SQLite store when auto backups are on.
// Failures are logged and never interrupt the caller.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	if !c.Settings().AutoBackup {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
