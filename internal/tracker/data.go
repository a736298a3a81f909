// Package tracker holds the root aggregate of goals, groups and tasks and
// the engine that sorts tasks into today/active/past buckets.
//
// Data is not safe for concurrent use. Callers serialize access; the CLI
// and TUI do so through the process lock in internal/lock.
package tracker

import (
	"slices"

	"github.com/google/uuid"

	"github.com/julianstephens/toyplan/internal/models"
)

// Data is the root aggregate. Entities live in arenas keyed by ID; parent
// links and buckets refer to them by ID only.
type Data struct {
	goals  map[string]*models.Goal
	groups map[string]*models.Group
	tasks  map[string]*models.Task

	allGoals  []string
	allGroups []string
	allTasks  []string

	active        []string
	today         []string
	past          []string
	todayFinished []string

	firstOpened   models.Date
	isFirstOpen   bool
	lastRecompute models.Date

	newID func() string
}

// NewEmpty returns an aggregate with no goals and no seed data.
func NewEmpty() *Data {
	return &Data{
		goals:  make(map[string]*models.Goal),
		groups: make(map[string]*models.Group),
		tasks:  make(map[string]*models.Task),
		newID:  uuid.NewString,
	}
}

func (d *Data) Goal(id string) (*models.Goal, bool) {
	g, ok := d.goals[id]
	return g, ok
}

func (d *Data) Group(id string) (*models.Group, bool) {
	g, ok := d.groups[id]
	return g, ok
}

func (d *Data) Task(id string) (*models.Task, bool) {
	t, ok := d.tasks[id]
	return t, ok
}

// AllGoals returns every goal in creation order.
func (d *Data) AllGoals() []*models.Goal {
	out := make([]*models.Goal, 0, len(d.allGoals))
	for _, id := range d.allGoals {
		out = append(out, d.goals[id])
	}
	return out
}

// AllGroups returns every group in creation order.
func (d *Data) AllGroups() []*models.Group {
	out := make([]*models.Group, 0, len(d.allGroups))
	for _, id := range d.allGroups {
		out = append(out, d.groups[id])
	}
	return out
}

// AllTasks returns every task of the display tree in creation order,
// whether or not it was ever activated.
func (d *Data) AllTasks() []*models.Task {
	return d.resolve(d.allTasks)
}

func (d *Data) GroupsOf(goal *models.Goal) []*models.Group {
	out := make([]*models.Group, 0, len(goal.GroupIDs))
	for _, id := range goal.GroupIDs {
		out = append(out, d.groups[id])
	}
	return out
}

func (d *Data) TasksOf(group *models.Group) []*models.Task {
	return d.resolve(group.TaskIDs)
}

// FindGoal returns the first goal called name.
func (d *Data) FindGoal(name string) (*models.Goal, bool) {
	for _, id := range d.allGoals {
		if d.goals[id].Name == name {
			return d.goals[id], true
		}
	}
	return nil, false
}

// FindGroup returns the first group called name under goal.
func (d *Data) FindGroup(goal *models.Goal, name string) (*models.Group, bool) {
	for _, id := range goal.GroupIDs {
		if d.groups[id].Name == name {
			return d.groups[id], true
		}
	}
	return nil, false
}

// Parents returns the group and goal a task belongs to.
func (d *Data) Parents(t *models.Task) (*models.Group, *models.Goal) {
	group := d.groups[t.GroupID]
	if group == nil {
		return nil, nil
	}
	return group, d.goals[group.GoalID]
}

func (d *Data) ActiveTasks() []*models.Task   { return d.resolve(d.active) }
func (d *Data) TodayTasks() []*models.Task    { return d.resolve(d.today) }
func (d *Data) PastTasks() []*models.Task     { return d.resolve(d.past) }
func (d *Data) TodayFinished() []*models.Task { return d.resolve(d.todayFinished) }

func (d *Data) IsActive(id string) bool  { return slices.Contains(d.active, id) }
func (d *Data) IsArchived(id string) bool { return slices.Contains(d.past, id) }

// FirstOpened is the date the aggregate was first created.
func (d *Data) FirstOpened() models.Date { return d.firstOpened }

// IsFirstOpen stays true until MarkOpened is called.
func (d *Data) IsFirstOpen() bool { return d.isFirstOpen }

// MarkOpened records that the onboarding view has been shown.
func (d *Data) MarkOpened() { d.isFirstOpen = false }

// LastRecompute is the day passed to the most recent Recompute.
func (d *Data) LastRecompute() models.Date { return d.lastRecompute }

func (d *Data) resolve(ids []string) []*models.Task {
	out := make([]*models.Task, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.tasks[id])
	}
	return out
}
