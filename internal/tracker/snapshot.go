package tracker

import (
	"fmt"
	"slices"

	"github.com/julianstephens/toyplan/internal/errors"
	"github.com/julianstephens/toyplan/internal/models"
	"github.com/julianstephens/toyplan/internal/validation"
)

// Snapshot copies the aggregate into its serializable form.
func (d *Data) Snapshot() models.Snapshot {
	s := models.Snapshot{
		Version:       models.SnapshotVersion,
		FirstOpened:   d.firstOpened,
		IsFirstOpen:   d.isFirstOpen,
		LastRecompute: d.lastRecompute,
		Goals:         make([]models.Goal, 0, len(d.allGoals)),
		Groups:        make([]models.Group, 0, len(d.allGroups)),
		Tasks:         make([]models.Task, 0, len(d.allTasks)),
		Buckets: models.Buckets{
			Active:        nonNil(d.active),
			Today:         nonNil(d.today),
			Past:          nonNil(d.past),
			TodayFinished: nonNil(d.todayFinished),
		},
	}
	for _, goal := range d.AllGoals() {
		g := *goal
		g.GroupIDs = nonNil(goal.GroupIDs)
		s.Goals = append(s.Goals, g)
	}
	for _, group := range d.AllGroups() {
		g := *group
		g.TaskIDs = nonNil(group.TaskIDs)
		s.Groups = append(s.Groups, g)
	}
	for _, task := range d.AllTasks() {
		t := *task
		t.Tags = nonNil(task.Tags)
		s.Tasks = append(s.Tasks, t)
	}
	return s
}

// FromSnapshot rebuilds an aggregate. Every ID a snapshot mentions must
// resolve, parent and child links must agree, and every task must pass
// field validation.
func FromSnapshot(s models.Snapshot) (*Data, error) {
	if s.Version > models.SnapshotVersion {
		return nil, fmt.Errorf("failed to load snapshot: version %d is newer than supported version %d", s.Version, models.SnapshotVersion)
	}

	d := NewEmpty()
	d.firstOpened = s.FirstOpened
	d.isFirstOpen = s.IsFirstOpen
	d.lastRecompute = s.LastRecompute

	for _, goal := range s.Goals {
		if err := validation.ValidateName("goal", goal.Name); err != nil {
			return nil, fmt.Errorf("goal %s: %w", goal.ID, err)
		}
		if _, dup := d.goals[goal.ID]; dup {
			return nil, errors.NewValidation("goal id", fmt.Sprintf("%s appears twice", goal.ID))
		}
		g := goal
		g.GroupIDs = nonNil(goal.GroupIDs)
		d.goals[g.ID] = &g
		d.allGoals = append(d.allGoals, g.ID)
	}

	for _, group := range s.Groups {
		if err := validation.ValidateName("group", group.Name); err != nil {
			return nil, fmt.Errorf("group %s: %w", group.ID, err)
		}
		if _, dup := d.groups[group.ID]; dup {
			return nil, errors.NewValidation("group id", fmt.Sprintf("%s appears twice", group.ID))
		}
		goal, ok := d.goals[group.GoalID]
		if !ok {
			return nil, errors.NewReference("goal", group.GoalID)
		}
		if !slices.Contains(goal.GroupIDs, group.ID) {
			return nil, errors.NewValidation("group", fmt.Sprintf("%s is not listed by goal %s", group.ID, goal.ID))
		}
		g := group
		g.TaskIDs = nonNil(group.TaskIDs)
		d.groups[g.ID] = &g
		d.allGroups = append(d.allGroups, g.ID)
	}

	for _, task := range s.Tasks {
		if err := validation.ValidateTask(task); err != nil {
			return nil, err
		}
		if _, dup := d.tasks[task.ID]; dup {
			return nil, errors.NewValidation("task id", fmt.Sprintf("%s appears twice", task.ID))
		}
		group, ok := d.groups[task.GroupID]
		if !ok {
			return nil, errors.NewReference("group", task.GroupID)
		}
		if !slices.Contains(group.TaskIDs, task.ID) {
			return nil, errors.NewValidation("task", fmt.Sprintf("%s is not listed by group %s", task.ID, group.ID))
		}
		t := task
		t.Tags = nonNil(task.Tags)
		d.tasks[t.ID] = &t
		d.allTasks = append(d.allTasks, t.ID)
	}

	for _, goal := range d.goals {
		for _, id := range goal.GroupIDs {
			group, ok := d.groups[id]
			if !ok {
				return nil, errors.NewReference("group", id)
			}
			if group.GoalID != goal.ID {
				return nil, errors.NewValidation("goal", fmt.Sprintf("%s lists group %s of goal %s", goal.ID, id, group.GoalID))
			}
		}
	}
	for _, group := range d.groups {
		for _, id := range group.TaskIDs {
			task, ok := d.tasks[id]
			if !ok {
				return nil, errors.NewReference("task", id)
			}
			if task.GroupID != group.ID {
				return nil, errors.NewValidation("group", fmt.Sprintf("%s lists task %s of group %s", group.ID, id, task.GroupID))
			}
		}
	}

	var err error
	if d.active, err = d.bucket(s.Buckets.Active); err != nil {
		return nil, err
	}
	if d.today, err = d.bucket(s.Buckets.Today); err != nil {
		return nil, err
	}
	if d.past, err = d.bucket(s.Buckets.Past); err != nil {
		return nil, err
	}
	if d.todayFinished, err = d.bucket(s.Buckets.TodayFinished); err != nil {
		return nil, err
	}

	// Archiving happens once, on finishing, so past only holds finished
	// tasks and today's finishes were all archived.
	for _, id := range d.past {
		if !d.tasks[id].IsFinished {
			return nil, errors.NewValidation("past", fmt.Sprintf("task %s is not finished", id))
		}
	}
	for _, id := range d.todayFinished {
		if !slices.Contains(d.past, id) {
			return nil, errors.NewValidation("today_finished", fmt.Sprintf("task %s is not archived", id))
		}
	}
	return d, nil
}

func (d *Data) bucket(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := d.tasks[id]; !ok {
			return nil, errors.NewReference("task", id)
		}
		if slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
