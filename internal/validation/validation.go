package validation

import (
	"fmt"
	"slices"

	"github.com/julianstephens/toyplan/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateGoalName  ConflictType = "duplicate_goal_name"
	ConflictDuplicateGroupName ConflictType = "duplicate_group_name"
	ConflictDuplicateTaskName  ConflictType = "duplicate_task_name"
	ConflictOverdueTask        ConflictType = "overdue_task"
	ConflictInactiveTask       ConflictType = "inactive_task"
)

// Conflict represents a detected problem in the goal tree or task buckets
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Names involved
	IDs         []string // IDs of the entities involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator inspects a snapshot for things worth warning about. None of the
// conflicts it reports block any operation.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// Validate checks the goal tree and buckets of s as of today.
func (v *Validator) Validate(s models.Snapshot, today models.Date) ValidationResult {
	var result ValidationResult

	goalNames := make(map[string][]string)
	var goalOrder []string
	for _, goal := range s.Goals {
		if _, ok := goalNames[goal.Name]; !ok {
			goalOrder = append(goalOrder, goal.Name)
		}
		goalNames[goal.Name] = append(goalNames[goal.Name], goal.ID)
	}
	for _, name := range goalOrder {
		if ids := goalNames[name]; len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateGoalName,
				Description: fmt.Sprintf("%d goals are named %q", len(ids), name),
				Items:       []string{name},
				IDs:         ids,
			})
		}
	}

	groups := make(map[string]models.Group, len(s.Groups))
	for _, g := range s.Groups {
		groups[g.ID] = g
	}
	tasks := make(map[string]models.Task, len(s.Tasks))
	for _, t := range s.Tasks {
		tasks[t.ID] = t
	}

	for _, goal := range s.Goals {
		children := make([]named, 0, len(goal.GroupIDs))
		for _, id := range goal.GroupIDs {
			if g, ok := groups[id]; ok {
				children = append(children, named{id: g.ID, name: g.Name})
			}
		}
		for _, dup := range duplicates(children) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateGroupName,
				Description: fmt.Sprintf("goal %q has %d groups named %q", goal.Name, len(dup.ids), dup.name),
				Items:       []string{goal.Name, dup.name},
				IDs:         dup.ids,
			})
		}
	}

	for _, group := range s.Groups {
		children := make([]named, 0, len(group.TaskIDs))
		for _, id := range group.TaskIDs {
			if t, ok := tasks[id]; ok {
				children = append(children, named{id: t.ID, name: t.Name})
			}
		}
		for _, dup := range duplicates(children) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTaskName,
				Description: fmt.Sprintf("group %q has %d tasks named %q", group.Name, len(dup.ids), dup.name),
				Items:       []string{group.Name, dup.name},
				IDs:         dup.ids,
			})
		}
	}

	for _, id := range s.Buckets.Active {
		t, ok := tasks[id]
		if !ok || t.IsFinished || !t.EndDate.Before(today) {
			continue
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictOverdueTask,
			Description: fmt.Sprintf("task %q ended on %s with progress %s", t.Name, t.EndDate, t.Progress()),
			Items:       []string{t.Name},
			IDs:         []string{t.ID},
		})
	}

	for _, t := range s.Tasks {
		if slices.Contains(s.Buckets.Active, t.ID) || slices.Contains(s.Buckets.Past, t.ID) {
			continue
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInactiveTask,
			Description: fmt.Sprintf("task %q is not scheduled", t.Name),
			Items:       []string{t.Name},
			IDs:         []string{t.ID},
		})
	}

	return result
}

type named struct {
	id   string
	name string
}

type duplicate struct {
	name string
	ids  []string
}

func duplicates(items []named) []duplicate {
	byName := make(map[string][]string)
	var order []string
	for _, it := range items {
		if _, ok := byName[it.name]; !ok {
			order = append(order, it.name)
		}
		byName[it.name] = append(byName[it.name], it.id)
	}
	var out []duplicate
	for _, name := range order {
		if ids := byName[name]; len(ids) > 1 {
			out = append(out, duplicate{name: name, ids: ids})
		}
	}
	return out
}
