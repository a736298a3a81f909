package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/toyplan/internal/errors"
	"github.com/julianstephens/toyplan/internal/models"
)

var today = models.NewDate(2024, time.June, 1)

func validTask(id, name, groupID string) models.Task {
	return models.Task{
		ID:            id,
		Name:          name,
		StartDate:     today,
		EndDate:       today.AddDays(3),
		DateStep:      1,
		ExpectedTimes: 1,
		GroupID:       groupID,
	}
}

func TestValidate_NoConflicts(t *testing.T) {
	s := models.Snapshot{
		Goals:  []models.Goal{{ID: "g1", Name: "Health", GroupIDs: []string{"gr1"}}},
		Groups: []models.Group{{ID: "gr1", Name: "Running", GoalID: "g1", TaskIDs: []string{"t1"}}},
		Tasks:  []models.Task{validTask("t1", "5k", "gr1")},
		Buckets: models.Buckets{
			Active: []string{"t1"},
		},
	}

	result := New().Validate(s, today)
	if result.HasConflicts() {
		t.Errorf("Expected no conflicts, got: %s", result.FormatReport())
	}
	if got := result.FormatReport(); got != "No conflicts detected." {
		t.Errorf("Unexpected report: %q", got)
	}
}

func TestValidate_Conflicts(t *testing.T) {
	overdue := validTask("t3", "late", "gr2")
	overdue.StartDate = today.AddDays(-5)
	overdue.EndDate = today.AddDays(-1)

	finishedLate := validTask("t4", "done", "gr2")
	finishedLate.StartDate = today.AddDays(-5)
	finishedLate.EndDate = today.AddDays(-1)
	finishedLate.FinishedTimes = 1
	finishedLate.IsFinished = true

	s := models.Snapshot{
		Goals: []models.Goal{
			{ID: "g1", Name: "Health", GroupIDs: []string{"gr1", "gr2"}},
			{ID: "g2", Name: "Health", GroupIDs: []string{"gr3"}},
		},
		Groups: []models.Group{
			{ID: "gr1", Name: "Running", GoalID: "g1", TaskIDs: []string{"t1", "t2"}},
			{ID: "gr2", Name: "Running", GoalID: "g1", TaskIDs: []string{"t3", "t4"}},
			{ID: "gr3", Name: "Running", GoalID: "g2", TaskIDs: []string{"t5"}},
		},
		Tasks: []models.Task{
			validTask("t1", "5k", "gr1"),
			validTask("t2", "5k", "gr1"),
			overdue,
			finishedLate,
			validTask("t5", "draft", "gr3"),
		},
		Buckets: models.Buckets{
			Active: []string{"t1", "t2", "t3", "t4"},
		},
	}

	result := New().Validate(s, today)

	counts := make(map[ConflictType]int)
	for _, c := range result.Conflicts {
		counts[c.Type]++
	}

	tests := []struct {
		conflict ConflictType
		want     int
	}{
		{ConflictDuplicateGoalName, 1},
		{ConflictDuplicateGroupName, 1},
		{ConflictDuplicateTaskName, 1},
		{ConflictOverdueTask, 1},
		{ConflictInactiveTask, 1},
	}
	for _, tt := range tests {
		if got := counts[tt.conflict]; got != tt.want {
			t.Errorf("%s: got %d conflicts, want %d", tt.conflict, got, tt.want)
		}
	}

	for _, c := range result.Conflicts {
		switch c.Type {
		case ConflictDuplicateGoalName:
			if len(c.IDs) != 2 || c.IDs[0] != "g1" || c.IDs[1] != "g2" {
				t.Errorf("Unexpected goal IDs: %v", c.IDs)
			}
		case ConflictOverdueTask:
			if c.IDs[0] != "t3" {
				t.Errorf("Expected t3 to be overdue, got %v", c.IDs)
			}
		case ConflictInactiveTask:
			if c.IDs[0] != "t5" {
				t.Errorf("Expected t5 to be inactive, got %v", c.IDs)
			}
		}
	}

	report := result.FormatReport()
	if !strings.HasPrefix(report, "Conflicts detected:\n") {
		t.Errorf("Unexpected report header: %q", report)
	}
	if !strings.Contains(report, `2 goals are named "Health"`) {
		t.Errorf("Report missing duplicate goal line: %q", report)
	}
}

func TestValidate_ArchivedTaskIsNotInactive(t *testing.T) {
	done := validTask("t1", "done", "gr1")
	done.FinishedTimes = 1
	done.IsFinished = true

	s := models.Snapshot{
		Goals:   []models.Goal{{ID: "g1", Name: "Health", GroupIDs: []string{"gr1"}}},
		Groups:  []models.Group{{ID: "gr1", Name: "Running", GoalID: "g1", TaskIDs: []string{"t1"}}},
		Tasks:   []models.Task{done},
		Buckets: models.Buckets{Past: []string{"t1"}},
	}

	if result := New().Validate(s, today); result.HasConflicts() {
		t.Errorf("Expected no conflicts, got: %s", result.FormatReport())
	}
}

func TestValidateTaskFields(t *testing.T) {
	base := models.TaskFields{
		Name:          "stretch",
		StartDate:     today,
		EndDate:       today,
		DateStep:      1,
		Importance:    50,
		ExpectedTimes: 1,
	}

	tests := []struct {
		name    string
		mutate  func(f *models.TaskFields)
		wantErr bool
	}{
		{"valid", func(f *models.TaskFields) {}, false},
		{"max importance", func(f *models.TaskFields) { f.Importance = 100 }, false},
		{"blank name", func(f *models.TaskFields) { f.Name = " \t" }, true},
		{"missing end", func(f *models.TaskFields) { f.EndDate = models.Date{} }, true},
		{"end before start", func(f *models.TaskFields) { f.EndDate = today.AddDays(-1) }, true},
		{"negative step", func(f *models.TaskFields) { f.DateStep = -2 }, true},
		{"importance over range", func(f *models.TaskFields) { f.Importance = 101 }, true},
		{"zero expected", func(f *models.TaskFields) { f.ExpectedTimes = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base
			tt.mutate(&f)
			err := ValidateTaskFields(f)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTaskFields() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.IsValidation(err) {
				t.Errorf("Expected a validation error, got %T", err)
			}
		})
	}
}

func TestValidateTask_Progress(t *testing.T) {
	tests := []struct {
		name     string
		finished int
		flag     bool
		wantErr  bool
	}{
		{"fresh", 0, false, false},
		{"partial", 1, false, false},
		{"complete", 3, true, false},
		{"over target", 4, true, true},
		{"negative", -1, false, true},
		{"flag without progress", 1, true, true},
		{"progress without flag", 3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask("t1", "reps", "gr1")
			task.ExpectedTimes = 3
			task.FinishedTimes = tt.finished
			task.IsFinished = tt.flag
			err := ValidateTask(task)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTask() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings models.Settings
		wantErr  bool
	}{
		{"defaults", models.DefaultSettings(), false},
		{"preview off", models.Settings{HorizonDays: 1, DescriptionPreview: 0}, false},
		{"zero horizon", models.Settings{HorizonDays: 0, DescriptionPreview: 20}, true},
		{"negative preview", models.Settings{HorizonDays: 7, DescriptionPreview: -5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSettings(tt.settings)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSettings(%+v) error = %v, wantErr %v", tt.settings, err, tt.wantErr)
			}
			if err != nil && !errors.IsValidation(err) {
				t.Errorf("expected a validation error, got %T", err)
			}
		})
	}
}
