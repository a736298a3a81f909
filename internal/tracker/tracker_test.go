package tracker

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/toyplan/internal/errors"
	"github.com/julianstephens/toyplan/internal/models"
)

var day0 = models.NewDate(2024, time.March, 10)

func fields(name string, start, end models.Date) models.TaskFields {
	return models.TaskFields{
		Name:          name,
		StartDate:     start,
		EndDate:       end,
		DateStep:      1,
		ExpectedTimes: 1,
	}
}

// newGroup returns an empty aggregate with a single goal and group.
func newGroup(t *testing.T) (*Data, *models.Group) {
	t.Helper()
	d := NewEmpty()
	seq := 0
	d.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	goal, err := d.CreateGoal("Health")
	require.NoError(t, err)
	group, err := d.CreateGroup("Running", goal.ID)
	require.NoError(t, err)
	return d, group
}

func ids(tasks []*models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestCreateHierarchy(t *testing.T) {
	d, group := newGroup(t)

	goal, ok := d.Goal(group.GoalID)
	require.True(t, ok)
	assert.Equal(t, []string{group.ID}, goal.GroupIDs)

	task, err := d.CreateTask(fields("5k", day0, day0), group.ID)
	require.NoError(t, err)
	assert.Equal(t, group.ID, task.GroupID)
	assert.Equal(t, []string{task.ID}, group.TaskIDs)
	assert.Equal(t, []*models.Task{task}, d.TasksOf(group))
	assert.Empty(t, d.ActiveTasks(), "created tasks are not scheduled")

	parentGroup, parentGoal := d.Parents(task)
	assert.Same(t, group, parentGroup)
	assert.Same(t, goal, parentGoal)
}

func TestCreateGoal_AllowsDuplicateNames(t *testing.T) {
	d := NewEmpty()
	a, err := d.CreateGoal("Read")
	require.NoError(t, err)
	b, err := d.CreateGoal("Read")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, d.AllGoals(), 2)

	found, ok := d.FindGoal("Read")
	require.True(t, ok)
	assert.Same(t, a, found)
}

func TestCreate_Validation(t *testing.T) {
	d, group := newGroup(t)

	_, err := d.CreateGoal("   ")
	assert.True(t, errors.IsValidation(err))
	assert.Len(t, d.AllGoals(), 1)

	_, err = d.CreateGroup("", group.GoalID)
	assert.True(t, errors.IsValidation(err))
	assert.Len(t, d.AllGroups(), 1)

	tests := []struct {
		name   string
		mutate func(f *models.TaskFields)
	}{
		{"empty name", func(f *models.TaskFields) { f.Name = "" }},
		{"end before start", func(f *models.TaskFields) { f.EndDate = day0.AddDays(-1) }},
		{"zero step", func(f *models.TaskFields) { f.DateStep = 0 }},
		{"importance too high", func(f *models.TaskFields) { f.Importance = 101 }},
		{"negative importance", func(f *models.TaskFields) { f.Importance = -1 }},
		{"zero expected", func(f *models.TaskFields) { f.ExpectedTimes = 0 }},
		{"missing start", func(f *models.TaskFields) { f.StartDate = models.Date{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fields("ok", day0, day0)
			tt.mutate(&f)
			task, err := d.AddTask(f, group.ID)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
			assert.Nil(t, task)
			assert.Empty(t, group.TaskIDs)
			assert.Empty(t, d.AllTasks())
			assert.Empty(t, d.ActiveTasks())
		})
	}
}

func TestCreate_UnknownParent(t *testing.T) {
	d := NewEmpty()

	_, err := d.CreateGroup("g", "missing")
	assert.True(t, errors.IsReference(err))

	_, err = d.CreateTask(fields("t", day0, day0), "missing")
	assert.True(t, errors.IsReference(err))

	assert.True(t, errors.IsReference(d.Activate("missing")))

	_, err = d.ReportProgress("missing")
	assert.True(t, errors.IsReference(err))
}

func TestActivate_Idempotent(t *testing.T) {
	d, group := newGroup(t)
	task, err := d.CreateTask(fields("t", day0, day0), group.ID)
	require.NoError(t, err)

	require.NoError(t, d.Activate(task.ID))
	require.NoError(t, d.Activate(task.ID))
	assert.Equal(t, []string{task.ID}, ids(d.ActiveTasks()))
}

func TestReportProgress(t *testing.T) {
	d, group := newGroup(t)
	f := fields("pushups", day0, day0.AddDays(5))
	f.ExpectedTimes = 3
	task, err := d.AddTask(f, group.ID)
	require.NoError(t, err)

	for i, want := range []bool{false, false, true, false, false} {
		finished, err := d.ReportProgress(task.ID)
		require.NoError(t, err)
		assert.Equal(t, want, finished, "call %d", i+1)
	}
	assert.Equal(t, 3, task.FinishedTimes)
	assert.True(t, task.IsFinished)
}

// A task due and finished today is archived but still shown for the day.
func TestRecompute_FinishedToday(t *testing.T) {
	d, group := newGroup(t)
	task, err := d.AddTask(fields("once", day0, day0), group.ID)
	require.NoError(t, err)

	finished, err := d.ReportProgress(task.ID)
	require.NoError(t, err)
	require.True(t, finished)
	d.Recompute(day0)

	assert.Equal(t, []string{task.ID}, ids(d.TodayTasks()))
	assert.Equal(t, []string{task.ID}, ids(d.PastTasks()))
	assert.Equal(t, []string{task.ID}, ids(d.TodayFinished()))
	assert.Equal(t, []string{task.ID}, ids(d.ActiveTasks()), "today-path keeps the task active")
	assert.True(t, task.IsFinished)
}

func TestRecompute_UnfinishedPastTaskStaysActive(t *testing.T) {
	d, group := newGroup(t)
	task, err := d.AddTask(fields("late", day0.AddDays(-3), day0.AddDays(-1)), group.ID)
	require.NoError(t, err)

	d.Recompute(day0)

	assert.Equal(t, []string{task.ID}, ids(d.ActiveTasks()))
	assert.Empty(t, d.TodayTasks())
	assert.Empty(t, d.PastTasks())
	assert.False(t, task.IsFinished)
}

func TestRecompute_FinishedPastTaskLeavesActive(t *testing.T) {
	d, group := newGroup(t)
	task, err := d.AddTask(fields("done", day0.AddDays(-3), day0.AddDays(-1)), group.ID)
	require.NoError(t, err)
	_, err = d.ReportProgress(task.ID)
	require.NoError(t, err)

	d.Recompute(day0)

	assert.Empty(t, d.ActiveTasks())
	assert.Empty(t, d.TodayTasks())
	assert.Empty(t, d.TodayFinished())
	assert.Equal(t, []string{task.ID}, ids(d.PastTasks()))
}

func TestRecompute_FutureTaskUntouched(t *testing.T) {
	d, group := newGroup(t)
	task, err := d.AddTask(fields("later", day0.AddDays(2), day0.AddDays(4)), group.ID)
	require.NoError(t, err)

	d.Recompute(day0)

	assert.Equal(t, []string{task.ID}, ids(d.ActiveTasks()))
	assert.Empty(t, d.TodayTasks())
	assert.Empty(t, d.PastTasks())
}

func TestRecompute_Idempotent(t *testing.T) {
	d, group := newGroup(t)
	a, err := d.AddTask(fields("a", day0, day0), group.ID)
	require.NoError(t, err)
	_, err = d.AddTask(fields("b", day0.AddDays(-2), day0.AddDays(-1)), group.ID)
	require.NoError(t, err)
	_, err = d.ReportProgress(a.ID)
	require.NoError(t, err)

	d.Recompute(day0)
	first := d.Snapshot()
	d.Recompute(day0)
	d.Recompute(day0)

	assert.Equal(t, first, d.Snapshot())
}

func TestRecompute_ArchivesAtMostOnce(t *testing.T) {
	d, group := newGroup(t)
	task, err := d.AddTask(fields("week", day0, day0.AddDays(6)), group.ID)
	require.NoError(t, err)
	_, err = d.ReportProgress(task.ID)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		d.Recompute(day0.AddDays(i))
	}

	assert.Equal(t, []string{task.ID}, ids(d.PastTasks()))
}

// Once archived on a due day, the past-path guard never fires again, so the
// task keeps its place in the active list after its window closes.
func TestRecompute_TodayArchivedTaskStaysActiveAfterWindow(t *testing.T) {
	d, group := newGroup(t)
	task, err := d.AddTask(fields("once", day0, day0), group.ID)
	require.NoError(t, err)
	_, err = d.ReportProgress(task.ID)
	require.NoError(t, err)

	d.Recompute(day0)
	d.Recompute(day0.AddDays(1))

	assert.Equal(t, []string{task.ID}, ids(d.ActiveTasks()))
	assert.Equal(t, []string{task.ID}, ids(d.PastTasks()))
	assert.Empty(t, d.TodayTasks())
}

func TestRecompute_TodayFinishedResetsOnNewDay(t *testing.T) {
	d, group := newGroup(t)
	task, err := d.AddTask(fields("week", day0, day0.AddDays(6)), group.ID)
	require.NoError(t, err)
	_, err = d.ReportProgress(task.ID)
	require.NoError(t, err)

	d.Recompute(day0)
	require.Len(t, d.TodayFinished(), 1)

	d.Recompute(day0)
	assert.Len(t, d.TodayFinished(), 1)

	d.Recompute(day0.AddDays(1))
	assert.Empty(t, d.TodayFinished())
	assert.Equal(t, []string{task.ID}, ids(d.TodayTasks()))
	assert.Equal(t, day0.AddDays(1), d.LastRecompute())
}

func TestRecompute_RemovalDoesNotSkipNeighbours(t *testing.T) {
	d, group := newGroup(t)
	var finished []string
	for i := 0; i < 3; i++ {
		task, err := d.AddTask(fields(fmt.Sprintf("t%d", i), day0.AddDays(-2), day0.AddDays(-1)), group.ID)
		require.NoError(t, err)
		_, err = d.ReportProgress(task.ID)
		require.NoError(t, err)
		finished = append(finished, task.ID)
	}

	d.Recompute(day0)

	assert.Empty(t, d.ActiveTasks())
	assert.Equal(t, finished, ids(d.PastTasks()))
}

func TestStats(t *testing.T) {
	d, group := newGroup(t)
	_, err := d.CreateGoal("Reading")
	require.NoError(t, err)

	yesterday := day0.AddDays(-1)
	for i := 0; i < 2; i++ {
		task, err := d.AddTask(fields(fmt.Sprintf("old%d", i), yesterday, yesterday), group.ID)
		require.NoError(t, err)
		_, err = d.ReportProgress(task.ID)
		require.NoError(t, err)
	}

	var current []*models.Task
	for i := 0; i < 5; i++ {
		task, err := d.AddTask(fields(fmt.Sprintf("now%d", i), day0, day0.AddDays(3)), group.ID)
		require.NoError(t, err)
		current = append(current, task)
	}
	_, err = d.ReportProgress(current[0].ID)
	require.NoError(t, err)

	d.Recompute(day0)
	require.Len(t, d.ActiveTasks(), 5)
	require.Len(t, d.PastTasks(), 3)

	stats := d.Stats()
	assert.Equal(t, 2, stats.Goals)
	assert.Equal(t, 7, stats.Tasks)
	assert.Equal(t, 1, stats.FinishedToday)
	assert.Equal(t, 3, stats.FinishedAllTime)
}

func TestNew_Seed(t *testing.T) {
	d, err := New(day0)
	require.NoError(t, err)

	require.Len(t, d.AllGoals(), 1)
	goal := d.AllGoals()[0]
	assert.Equal(t, "Daily", goal.Name)

	groups := d.GroupsOf(goal)
	require.Len(t, groups, 1)
	assert.Equal(t, "Default", groups[0].Name)

	tasks := d.TasksOf(groups[0])
	require.Len(t, tasks, 1)
	task := tasks[0]
	assert.Equal(t, "First task", task.Name)
	assert.Equal(t, 1, task.ExpectedTimes)
	assert.Equal(t, []string{"first-time", "tutorial"}, task.Tags)
	assert.Equal(t, day0, task.StartDate)
	assert.Equal(t, day0, task.EndDate)

	assert.Equal(t, []string{task.ID}, ids(d.ActiveTasks()))
	assert.Equal(t, []string{task.ID}, ids(d.TodayTasks()))
	assert.Equal(t, day0, d.FirstOpened())
	assert.True(t, d.IsFirstOpen())

	d.MarkOpened()
	assert.False(t, d.IsFirstOpen())
}

func TestSnapshotRoundTrip(t *testing.T) {
	d, err := New(day0)
	require.NoError(t, err)
	group := d.AllGroups()[0]
	task, err := d.AddTask(models.TaskFields{
		Name:          "stretch",
		StartDate:     day0,
		EndDate:       day0.AddDays(9),
		DateStep:      3,
		Importance:    40,
		ExpectedTimes: 2,
		Tags:          []string{"#health", "morning"},
		Description:   "ten minutes",
	}, group.ID)
	require.NoError(t, err)
	_, err = d.ReportProgress(task.ID)
	require.NoError(t, err)
	_, err = d.ReportProgress(d.TodayTasks()[0].ID)
	require.NoError(t, err)
	d.Recompute(day0)
	d.MarkOpened()

	snap := d.Snapshot()
	restored, err := FromSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, snap, restored.Snapshot())

	got, ok := restored.Task(task.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"health", "morning"}, got.Tags)
	assert.Equal(t, 1, got.FinishedTimes)
}

func TestSnapshot_IsACopy(t *testing.T) {
	d, err := New(day0)
	require.NoError(t, err)

	snap := d.Snapshot()
	snap.Buckets.Active[0] = "tampered"
	snap.Tasks[0].Tags[0] = "tampered"

	assert.NotEqual(t, "tampered", d.ActiveTasks()[0].ID)
	assert.NotEqual(t, "tampered", d.AllTasks()[0].Tags[0])
}

func TestFromSnapshot_Rejects(t *testing.T) {
	base := func(t *testing.T) models.Snapshot {
		d, err := New(day0)
		require.NoError(t, err)
		return d.Snapshot()
	}

	tests := []struct {
		name      string
		mutate    func(s *models.Snapshot)
		reference bool
	}{
		{"unknown bucket task", func(s *models.Snapshot) { s.Buckets.Past = []string{"nope"} }, true},
		{"group of unknown goal", func(s *models.Snapshot) { s.Groups[0].GoalID = "nope" }, true},
		{"goal lists unknown group", func(s *models.Snapshot) { s.Goals[0].GroupIDs = append(s.Goals[0].GroupIDs, "nope") }, true},
		{"task of unknown group", func(s *models.Snapshot) { s.Tasks[0].GroupID = "nope" }, true},
		{"progress beyond target", func(s *models.Snapshot) { s.Tasks[0].FinishedTimes = 5 }, false},
		{"finished flag mismatch", func(s *models.Snapshot) { s.Tasks[0].IsFinished = true }, false},
		{"blank goal name", func(s *models.Snapshot) { s.Goals[0].Name = "" }, false},
		{"unfinished task in past", func(s *models.Snapshot) { s.Buckets.Past = []string{s.Tasks[0].ID} }, false},
		{"unfinished task finished today", func(s *models.Snapshot) {
			s.Buckets.Past = []string{s.Tasks[0].ID}
			s.Buckets.TodayFinished = []string{s.Tasks[0].ID}
		}, false},
		{"finished today but not archived", func(s *models.Snapshot) {
			s.Tasks[0].FinishedTimes = s.Tasks[0].ExpectedTimes
			s.Tasks[0].IsFinished = true
			s.Buckets.TodayFinished = []string{s.Tasks[0].ID}
		}, false},
		{"group listed by two goals", func(s *models.Snapshot) {
			s.Goals = append(s.Goals, models.Goal{ID: "other", Name: "Other", GroupIDs: []string{s.Groups[0].ID}})
		}, false},
		{"task listed by two groups", func(s *models.Snapshot) {
			s.Goals[0].GroupIDs = append(s.Goals[0].GroupIDs, "other")
			s.Groups = append(s.Groups, models.Group{ID: "other", Name: "Other", GoalID: s.Goals[0].ID, TaskIDs: []string{s.Tasks[0].ID}})
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base(t)
			tt.mutate(&s)
			_, err := FromSnapshot(s)
			require.Error(t, err)
			assert.Equal(t, tt.reference, errors.IsReference(err), "error: %v", err)
			assert.Equal(t, !tt.reference, errors.IsValidation(err), "error: %v", err)
		})
	}
}

func TestFromSnapshot_FinishedTodayAccepted(t *testing.T) {
	d, err := New(day0)
	require.NoError(t, err)
	task := d.AllTasks()[0]
	finished, err := d.ReportProgress(task.ID)
	require.NoError(t, err)
	require.True(t, finished)
	d.Recompute(day0)

	restored, err := FromSnapshot(d.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, []string{task.ID}, ids(restored.PastTasks()))
	assert.Equal(t, 1, restored.Stats().FinishedToday)
}

func TestFromSnapshot_NewerVersion(t *testing.T) {
	_, err := FromSnapshot(models.Snapshot{Version: models.SnapshotVersion + 1})
	require.Error(t, err)
}
