package tasks

import (
	"strings"

	"github.com/julianstephens/toyplan/internal/cli"
)

type TaskShowCmd struct {
	Task string `arg:"" help:"Task name, ID or ID prefix."`
}

func (c *TaskShowCmd) Run(ctx *cli.Context) error {
	data, err := ctx.LoadData()
	if err != nil {
		return err
	}
	task, err := cli.ResolveTask(data, c.Task)
	if err != nil {
		return err
	}

	ctx.Printf("%s\n", cli.TaskPath(data, task))
	ctx.Printf("  ID:          %s\n", task.ID)
	ctx.Printf("  Status:      %s\n", status(data.IsActive(task.ID), data.IsArchived(task.ID), task))
	ctx.Printf("  Dates:       %s .. %s, every %d day(s)\n", task.StartDate, task.EndDate, task.DateStep)
	ctx.Printf("  Progress:    %s\n", task.Progress())
	ctx.Printf("  Importance:  %d\n", task.Importance)
	if len(task.Tags) > 0 {
		ctx.Printf("  Tags:        %s\n", strings.Join(task.Tags, ", "))
	}
	if task.Description != "" {
		ctx.Printf("  Description: %s\n", task.Description)
	}
	return nil
}
