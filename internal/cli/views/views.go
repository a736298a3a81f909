package views

import (
	"fmt"

	"github.com/julianstephens/toyplan/internal/cli"
	"github.com/julianstephens/toyplan/internal/constants"
	"github.com/julianstephens/toyplan/internal/scheduler"
)

// TodayCmd lists the tasks due today.
type TodayCmd struct {
	ShowIDs bool `help:"Show task IDs." name:"show-ids"`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	data, err := ctx.LoadData()
	if err != nil {
		return err
	}

	today := ctx.Today()
	tasks := data.TodayTasks()
	ctx.Printf("Today (%s)\n", today.Format(constants.DisplayDateFormat))
	if len(tasks) == 0 {
		ctx.Println("  Nothing due today")
		return nil
	}

	preview := ctx.Settings().DescriptionPreview
	for _, task := range tasks {
		mark := " "
		if task.IsFinished {
			mark = "x"
		}
		idStr := ""
		if c.ShowIDs {
			idStr = " (ID: " + task.ID + ")"
		}
		ctx.Printf("  [%s] %s%s\n", mark, cli.TaskLine(data, task, preview), idStr)
	}
	ctx.Printf("\n%d finished today\n", len(data.TodayFinished()))
	return nil
}

// ScheduleCmd projects active tasks over the coming days.
type ScheduleCmd struct {
	Days int `short:"n" help:"Days to project, including today. Defaults to the horizon_days setting."`
}

func (c *ScheduleCmd) Run(ctx *cli.Context) error {
	data, err := ctx.LoadData()
	if err != nil {
		return err
	}

	sched := ctx.Scheduler
	if c.Days > 0 || sched == nil {
		sched = scheduler.New(c.Days)
	}
	today := ctx.Today()
	days := sched.Project(data.ActiveTasks(), today)

	ctx.Printf("Schedule for the next %d day(s)\n", sched.Horizon())
	if len(days) == 0 {
		ctx.Println("  Nothing scheduled")
		return nil
	}

	preview := ctx.Settings().DescriptionPreview
	for _, day := range days {
		ctx.Printf("\n%s %s\n", day.Date.Format(constants.DisplayDateFormat), relative(day.Offset))
		for _, task := range day.Tasks {
			ctx.Printf("  - %s\n", cli.TaskLine(data, task, preview))
		}
	}
	return nil
}

func relative(offset int) string {
	switch offset {
	case 0:
		return "(today)"
	case 1:
		return "(tomorrow)"
	}
	return fmt.Sprintf("(+%d)", offset)
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	data, err := ctx.LoadData()
	if err != nil {
		return err
	}

	stats := data.Stats()
	ctx.Println("Statistics")
	ctx.Printf("  First opened:       %s\n", stats.FirstOpened)
	ctx.Printf("  Goals:              %d\n", stats.Goals)
	ctx.Printf("  Tasks:              %d\n", stats.Tasks)
	ctx.Printf("  Finished today:     %d\n", stats.FinishedToday)
	ctx.Printf("  Finished all time:  %d\n", stats.FinishedAllTime)
	return nil
}
