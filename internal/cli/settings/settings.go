package settings

import (
	"fmt"

	"github.com/julianstephens/toyplan/internal/cli"
	"github.com/julianstephens/toyplan/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	HorizonDays        *int  `help:"Days shown by the schedule view, including today."`
	DescriptionPreview *int  `help:"Characters of a task description shown in lists (0 hides it)."`
	AutoBackup         *bool `help:"Back up the SQLite database when the TUI starts and before imports."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Horizon Days:        %d\n", settings.HorizonDays)
		ctx.Printf("  Description Preview: %d\n", settings.DescriptionPreview)
		ctx.Printf("  Auto Backup:         %v\n", settings.AutoBackup)
		return nil
	}

	updated := false
	if c.HorizonDays != nil {
		settings.HorizonDays = *c.HorizonDays
		updated = true
	}
	if c.DescriptionPreview != nil {
		settings.DescriptionPreview = *c.DescriptionPreview
		updated = true
	}
	if c.AutoBackup != nil {
		settings.AutoBackup = *c.AutoBackup
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if err := validation.ValidateSettings(settings); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}
