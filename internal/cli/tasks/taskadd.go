package tasks

import (
	"github.com/julianstephens/toyplan/internal/cli"
	"github.com/julianstephens/toyplan/internal/models"
	"github.com/julianstephens/toyplan/internal/tracker"
	"github.com/julianstephens/toyplan/internal/utils"
	"github.com/julianstephens/toyplan/internal/validation"
)

type TaskAddCmd struct {
	Name        string `arg:"" help:"Task name."`
	Group       string `short:"g" help:"Group name or ID." required:""`
	Goal        string `short:"G" help:"Goal name or ID, to pick the group when names repeat."`
	Start       string `short:"s" help:"Start date (YYYY-MM-DD, today, tomorrow, +N)." default:"today"`
	End         string `short:"e" help:"End date (YYYY-MM-DD, today, tomorrow, +N). Defaults to the start date."`
	Step        int    `help:"Repeat every N days." default:"1"`
	Importance  int    `short:"i" help:"Importance (0-100)." default:"0"`
	Times       int    `short:"n" help:"Completions needed to finish." default:"1"`
	Tags        string `short:"t" help:"Tags, separated by spaces or commas."`
	Description string `short:"d" help:"Free-form description."`
	Inactive    bool   `help:"Create the task without scheduling it."`
}

// Fields parses the flags into task fields relative to today.
func (c *TaskAddCmd) Fields(today models.Date) (models.TaskFields, error) {
	start, err := utils.ParseDateArg(c.Start, today)
	if err != nil {
		return models.TaskFields{}, err
	}
	end := start
	if c.End != "" {
		if end, err = utils.ParseDateArg(c.End, today); err != nil {
			return models.TaskFields{}, err
		}
	}
	fields := models.TaskFields{
		Name:          c.Name,
		StartDate:     start,
		EndDate:       end,
		DateStep:      c.Step,
		Importance:    c.Importance,
		ExpectedTimes: c.Times,
		Tags:          models.ParseTags(c.Tags),
		Description:   c.Description,
	}
	return fields, validation.ValidateTaskFields(fields)
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	fields, err := c.Fields(ctx.Today())
	if err != nil {
		return err
	}

	var task *models.Task
	err = ctx.Mutate(func(data *tracker.Data) error {
		group, err := cli.ResolveGroup(data, c.Goal, c.Group)
		if err != nil {
			return err
		}
		if c.Inactive {
			task, err = data.CreateTask(fields, group.ID)
		} else {
			task, err = data.AddTask(fields, group.ID)
		}
		return err
	})
	if err != nil {
		return err
	}

	ctx.Printf("Added task: %s (ID: %s)\n", task.Name, task.ID)
	return nil
}
