package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/toyplan/internal/cli"
	"github.com/julianstephens/toyplan/internal/logger"
	"github.com/julianstephens/toyplan/internal/storage"
	"github.com/julianstephens/toyplan/internal/tracker"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized toyplan storage at: %s\n", ctx.Store.GetConfigPath())

	if _, err := ctx.Store.LoadSnapshot(); err == nil {
		return nil
	} else if !errors.Is(err, storage.ErrNoSnapshot) {
		return fmt.Errorf("failed to read existing data: %w", err)
	}

	data, err := tracker.New(ctx.Today())
	if err != nil {
		return fmt.Errorf("failed to create seed data: %w", err)
	}
	if err := ctx.SaveData(data); err != nil {
		return err
	}
	ctx.Println("Created a starter goal, group and task.")
	return nil
}

// reset deletes a file store. Database servers are left alone.
func (c *InitCmd) reset(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			logger.Debug("Nothing to reset", "path", path)
			return nil
		}
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	ctx.Printf("Deleted existing database at: %s\n", path)
	return nil
}
