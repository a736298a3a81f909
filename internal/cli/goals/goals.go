package goals

import (
	"github.com/julianstephens/toyplan/internal/cli"
	"github.com/julianstephens/toyplan/internal/models"
	"github.com/julianstephens/toyplan/internal/tracker"
)

type GoalAddCmd struct {
	Name string `arg:"" help:"Goal name."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	var goal *models.Goal
	err := ctx.Mutate(func(data *tracker.Data) error {
		var err error
		goal, err = data.CreateGoal(c.Name)
		return err
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added goal: %s (ID: %s)\n", goal.Name, goal.ID)
	return nil
}

// GoalListCmd prints the goal tree down to tasks.
type GoalListCmd struct {
	ShowIDs bool `help:"Show IDs." name:"show-ids"`
	Tasks   bool `short:"t" help:"Include tasks under each group."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	data, err := ctx.LoadData()
	if err != nil {
		return err
	}

	goals := data.AllGoals()
	if len(goals) == 0 {
		ctx.Println("No goals found")
		return nil
	}

	for _, goal := range goals {
		ctx.Printf("%s%s\n", goal.Name, c.id(goal.ID))
		for _, group := range data.GroupsOf(goal) {
			ctx.Printf("  %s%s\n", group.Name, c.id(group.ID))
			if !c.Tasks {
				continue
			}
			for _, task := range data.TasksOf(group) {
				ctx.Printf("    %s%s\n", task.String(), c.id(task.ID))
			}
		}
	}
	return nil
}

func (c *GoalListCmd) id(id string) string {
	if !c.ShowIDs {
		return ""
	}
	return " (ID: " + id + ")"
}

type GroupAddCmd struct {
	Name string `arg:"" help:"Group name."`
	Goal string `short:"G" help:"Goal name or ID." required:""`
}

func (c *GroupAddCmd) Run(ctx *cli.Context) error {
	var group *models.Group
	err := ctx.Mutate(func(data *tracker.Data) error {
		goal, err := cli.ResolveGoal(data, c.Goal)
		if err != nil {
			return err
		}
		group, err = data.CreateGroup(c.Name, goal.ID)
		return err
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added group: %s (ID: %s)\n", group.Name, group.ID)
	return nil
}

type GroupListCmd struct {
	Goal    string `short:"G" help:"Only list groups of this goal."`
	ShowIDs bool   `help:"Show IDs." name:"show-ids"`
}

func (c *GroupListCmd) Run(ctx *cli.Context) error {
	data, err := ctx.LoadData()
	if err != nil {
		return err
	}

	groups := data.AllGroups()
	if c.Goal != "" {
		goal, err := cli.ResolveGoal(data, c.Goal)
		if err != nil {
			return err
		}
		groups = data.GroupsOf(goal)
	}
	if len(groups) == 0 {
		ctx.Println("No groups found")
		return nil
	}

	for _, group := range groups {
		goalName := ""
		if goal, ok := data.Goal(group.GoalID); ok {
			goalName = goal.Name
		}
		idStr := ""
		if c.ShowIDs {
			idStr = " (ID: " + group.ID + ")"
		}
		ctx.Printf("  %s / %s%s - %d task(s)\n", goalName, group.Name, idStr, len(group.TaskIDs))
	}
	return nil
}
