package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/toyplan/internal/cli"
	"github.com/julianstephens/toyplan/internal/logger"
	"github.com/julianstephens/toyplan/internal/storage"
	"github.com/julianstephens/toyplan/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	l, err := ctx.Lock()
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}()

	data, err := ctx.LoadData()
	if err != nil {
		return err
	}
	// Persist seed data and today's recompute before anything else happens.
	if err := ctx.SaveData(data); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	model := tui.NewModel(data, tui.Options{
		Store:     ctx.Store,
		Scheduler: ctx.Scheduler,
		Clock:     ctx.Clock,
		Settings:  ctx.Settings(),
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, ok := ctx.Store.(*storage.JSONStore); ok {
		stop, err := tui.StartWatcher(ctx.Store.GetConfigPath(), p)
		if err != nil {
			logger.Warn("Failed to watch data file, external edits will not be picked up", "error", err)
		} else {
			defer stop()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
