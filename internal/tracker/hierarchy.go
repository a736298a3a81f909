package tracker

import (
	"strings"

	"github.com/julianstephens/toyplan/internal/errors"
	"github.com/julianstephens/toyplan/internal/models"
	"github.com/julianstephens/toyplan/internal/validation"
)

// CreateGoal adds a goal with no groups. Names need not be unique.
func (d *Data) CreateGoal(name string) (*models.Goal, error) {
	if err := validation.ValidateName("goal", name); err != nil {
		return nil, err
	}
	goal := &models.Goal{
		ID:       d.newID(),
		Name:     strings.TrimSpace(name),
		GroupIDs: []string{},
	}
	d.goals[goal.ID] = goal
	d.allGoals = append(d.allGoals, goal.ID)
	return goal, nil
}

// CreateGroup adds a group at the end of the goal's group list.
func (d *Data) CreateGroup(name, goalID string) (*models.Group, error) {
	if err := validation.ValidateName("group", name); err != nil {
		return nil, err
	}
	goal, ok := d.goals[goalID]
	if !ok {
		return nil, errors.NewReference("goal", goalID)
	}
	group := &models.Group{
		ID:      d.newID(),
		Name:    strings.TrimSpace(name),
		GoalID:  goal.ID,
		TaskIDs: []string{},
	}
	d.groups[group.ID] = group
	goal.GroupIDs = append(goal.GroupIDs, group.ID)
	d.allGroups = append(d.allGroups, group.ID)
	return group, nil
}

// CreateTask adds a task to the group's display list. It does not schedule
// the task: call Activate, or use AddTask for both steps.
func (d *Data) CreateTask(fields models.TaskFields, groupID string) (*models.Task, error) {
	if err := validation.ValidateTaskFields(fields); err != nil {
		return nil, err
	}
	group, ok := d.groups[groupID]
	if !ok {
		return nil, errors.NewReference("group", groupID)
	}
	task := &models.Task{
		ID:            d.newID(),
		Name:          strings.TrimSpace(fields.Name),
		StartDate:     fields.StartDate,
		EndDate:       fields.EndDate,
		DateStep:      fields.DateStep,
		Importance:    fields.Importance,
		ExpectedTimes: fields.ExpectedTimes,
		Tags:          models.NormalizeTags(fields.Tags),
		GroupID:       group.ID,
		Description:   fields.Description,
	}
	d.tasks[task.ID] = task
	group.TaskIDs = append(group.TaskIDs, task.ID)
	d.allTasks = append(d.allTasks, task.ID)
	return task, nil
}

// Activate puts a task into the active set that Recompute walks.
// Activating an active or archived task does nothing.
func (d *Data) Activate(taskID string) error {
	if _, ok := d.tasks[taskID]; !ok {
		return errors.NewReference("task", taskID)
	}
	if d.IsActive(taskID) || d.IsArchived(taskID) {
		return nil
	}
	d.active = append(d.active, taskID)
	return nil
}

// AddTask creates a task under groupID and activates it.
func (d *Data) AddTask(fields models.TaskFields, groupID string) (*models.Task, error) {
	task, err := d.CreateTask(fields, groupID)
	if err != nil {
		return nil, err
	}
	if err := d.Activate(task.ID); err != nil {
		return nil, err
	}
	return task, nil
}
