package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/toyplan/internal/models"
	"github.com/julianstephens/toyplan/internal/tracker"
	"github.com/julianstephens/toyplan/internal/utils"
)

// ResolveGoal finds a goal by ID or by name.
func ResolveGoal(data *tracker.Data, ref string) (*models.Goal, error) {
	if goal, ok := data.Goal(ref); ok {
		return goal, nil
	}
	var matches []*models.Goal
	for _, goal := range data.AllGoals() {
		if goal.Name == ref {
			matches = append(matches, goal)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("goal not found: %s", ref)
	case 1:
		return matches[0], nil
	}
	return nil, fmt.Errorf("goal name %q is ambiguous (%d matches), use its ID", ref, len(matches))
}

// ResolveGroup finds a group by ID or by name, optionally within goalRef.
func ResolveGroup(data *tracker.Data, goalRef, ref string) (*models.Group, error) {
	if group, ok := data.Group(ref); ok {
		return group, nil
	}

	candidates := data.AllGroups()
	if goalRef != "" {
		goal, err := ResolveGoal(data, goalRef)
		if err != nil {
			return nil, err
		}
		candidates = data.GroupsOf(goal)
	}

	var matches []*models.Group
	for _, group := range candidates {
		if group.Name == ref {
			matches = append(matches, group)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("group not found: %s", ref)
	case 1:
		return matches[0], nil
	}
	return nil, fmt.Errorf("group name %q is ambiguous (%d matches), pass --goal or use its ID", ref, len(matches))
}

// ResolveTask finds a task by ID, by name, or by a unique ID prefix.
func ResolveTask(data *tracker.Data, ref string) (*models.Task, error) {
	if task, ok := data.Task(ref); ok {
		return task, nil
	}

	var byName, byPrefix []*models.Task
	for _, task := range data.AllTasks() {
		if task.Name == ref {
			byName = append(byName, task)
		}
		if strings.HasPrefix(task.ID, ref) {
			byPrefix = append(byPrefix, task)
		}
	}
	for _, matches := range [][]*models.Task{byName, byPrefix} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return nil, fmt.Errorf("task %q is ambiguous (%d matches), use its ID", ref, len(matches))
		}
	}
	return nil, fmt.Errorf("task not found: %s", ref)
}

// TaskPath renders "goal / group / task".
func TaskPath(data *tracker.Data, task *models.Task) string {
	group, goal := data.Parents(task)
	if group == nil || goal == nil {
		return task.Name
	}
	return goal.Name + " / " + group.Name + " / " + task.Name
}

// TaskLine renders one task for list views: path, progress, tags and a
// description cut to preview runes.
func TaskLine(data *tracker.Data, task *models.Task, preview int) string {
	var b strings.Builder
	b.WriteString(TaskPath(data, task))
	fmt.Fprintf(&b, " [%s]", task.Progress())
	for _, tag := range task.Tags {
		b.WriteString(" #")
		b.WriteString(tag)
	}
	if task.Description != "" && preview > 0 {
		b.WriteString(" - ")
		b.WriteString(utils.Truncate(task.Description, preview))
	}
	return b.String()
}
