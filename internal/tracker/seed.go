package tracker

import (
	"fmt"

	"github.com/julianstephens/toyplan/internal/constants"
	"github.com/julianstephens/toyplan/internal/models"
)

// New returns an aggregate for a first-time user: one goal, one group and
// one example task due today.
func New(today models.Date) (*Data, error) {
	d := NewEmpty()
	d.firstOpened = today
	d.isFirstOpen = true

	goal, err := d.CreateGoal(constants.SeedGoalName)
	if err != nil {
		return nil, fmt.Errorf("failed to seed goal: %w", err)
	}
	group, err := d.CreateGroup(constants.SeedGroupName, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to seed group: %w", err)
	}
	_, err = d.AddTask(models.TaskFields{
		Name:          constants.SeedTaskName,
		StartDate:     today,
		EndDate:       today,
		DateStep:      1,
		Importance:    0,
		ExpectedTimes: 1,
		Tags:          constants.SeedTaskTags,
		Description:   constants.SeedTaskDescription,
	}, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to seed task: %w", err)
	}

	d.Recompute(today)
	return d, nil
}
