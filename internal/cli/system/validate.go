package system

import (
	"errors"

	"github.com/julianstephens/toyplan/internal/cli"
	"github.com/julianstephens/toyplan/internal/validation"
)

type ValidateCmd struct {
	Strict bool `help:"Exit with an error when conflicts are found."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	data, err := ctx.LoadData()
	if err != nil {
		return err
	}

	result := validation.New().Validate(data.Snapshot(), ctx.Today())
	ctx.Printf("%s", result.FormatReport())
	if !result.HasConflicts() {
		ctx.Println()
	}
	if c.Strict && result.HasConflicts() {
		return errors.New("validation found conflicts")
	}
	return nil
}
