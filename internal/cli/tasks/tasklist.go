package tasks

import (
	"github.com/julianstephens/toyplan/internal/cli"
	"github.com/julianstephens/toyplan/internal/models"
)

type TaskListCmd struct {
	All     bool `short:"a" help:"Include archived and never-scheduled tasks."`
	ShowIDs bool `help:"Show task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	data, err := ctx.LoadData()
	if err != nil {
		return err
	}

	tasks := data.ActiveTasks()
	if c.All {
		tasks = data.AllTasks()
	}
	if len(tasks) == 0 {
		ctx.Println("No tasks found")
		return nil
	}

	preview := ctx.Settings().DescriptionPreview
	ctx.Println("Tasks:")
	for _, task := range tasks {
		idStr := ""
		if c.ShowIDs {
			idStr = " (ID: " + task.ID + ")"
		}
		ctx.Printf("  [%s] %s%s\n", status(data.IsActive(task.ID), data.IsArchived(task.ID), task), cli.TaskLine(data, task, preview), idStr)
	}
	return nil
}

func status(active, archived bool, task *models.Task) string {
	switch {
	case archived:
		return "archived"
	case task.IsFinished:
		return "finished"
	case active:
		return "active"
	default:
		return "inactive"
	}
}
