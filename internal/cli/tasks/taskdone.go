package tasks

import (
	"github.com/julianstephens/toyplan/internal/cli"
	"github.com/julianstephens/toyplan/internal/models"
	"github.com/julianstephens/toyplan/internal/tracker"
)

// TaskDoneCmd reports one completion of a task.
type TaskDoneCmd struct {
	Task string `arg:"" help:"Task name, ID or ID prefix."`
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	var (
		task     *models.Task
		finished bool
	)
	err := ctx.Mutate(func(data *tracker.Data) error {
		var err error
		if task, err = cli.ResolveTask(data, c.Task); err != nil {
			return err
		}
		finished, err = data.ReportProgress(task.ID)
		return err
	})
	if err != nil {
		return err
	}

	switch {
	case finished:
		ctx.Printf("Congratulations! You finished %s.\n", task.Name)
	case task.IsFinished:
		ctx.Printf("%s is already finished.\n", task.Name)
	default:
		ctx.Printf("Progress on %s: %s\n", task.Name, task.Progress())
	}
	return nil
}
