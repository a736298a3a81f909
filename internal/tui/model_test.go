package tui

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/toyplan/internal/constants"
	"github.com/julianstephens/toyplan/internal/models"
	"github.com/julianstephens/toyplan/internal/storage"
	"github.com/julianstephens/toyplan/internal/tracker"
	"github.com/julianstephens/toyplan/internal/tui/components/today"
	"github.com/julianstephens/toyplan/internal/utils"
)

// 2024-03-10 is a Sunday.
var testNow = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.Local)

func newTestModel(t *testing.T) (Model, *storage.JSONStore, *utils.FakeClock) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "toyplan.json"))
	require.NoError(t, store.Init())

	clock := utils.NewFakeClock(testNow)
	data, err := tracker.New(utils.Today(clock))
	require.NoError(t, err)

	m := NewModel(data, Options{
		Store:    store,
		Clock:    clock,
		Settings: models.DefaultSettings(),
	})
	return m, store, clock
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return model
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func storedData(t *testing.T, store *storage.JSONStore) *tracker.Data {
	t.Helper()
	require.NoError(t, store.Load())
	snapshot, err := store.LoadSnapshot()
	require.NoError(t, err)
	data, err := tracker.FromSnapshot(snapshot)
	require.NoError(t, err)
	return data
}

func TestNewModel_FirstOpen(t *testing.T) {
	m, store, _ := newTestModel(t)

	assert.Contains(t, m.message, "Welcome to toyplan!")
	assert.Equal(t, constants.StateToday, m.state)
	assert.False(t, storedData(t, store).IsFirstOpen(), "first open flag should be cleared and saved")

	m2 := NewModel(storedData(t, store), Options{Store: store, Clock: m.clock, Settings: models.DefaultSettings()})
	assert.Empty(t, m2.message)
}

func TestReportProgress(t *testing.T) {
	m, store, _ := newTestModel(t)
	task := m.data.TodayTasks()[0]

	m = update(t, m, today.ReportProgressMsg{ID: task.ID})
	assert.Equal(t, "Congratulations! You finished First task.", m.message)
	assert.NoError(t, m.err)
	assert.Len(t, m.data.TodayFinished(), 1)

	saved := storedData(t, store)
	savedTask, ok := saved.Task(task.ID)
	require.True(t, ok)
	assert.True(t, savedTask.IsFinished)

	m = update(t, m, today.ReportProgressMsg{ID: task.ID})
	assert.Equal(t, "First task is already finished.", m.message)

	m = update(t, m, today.ReportProgressMsg{ID: "missing"})
	assert.Error(t, m.err)
}

func TestReportProgress_Partial(t *testing.T) {
	m, _, _ := newTestModel(t)
	group := m.data.AllGroups()[0]
	task, err := m.data.AddTask(models.TaskFields{
		Name:          "Pushups",
		StartDate:     m.today,
		EndDate:       m.today,
		DateStep:      1,
		ExpectedTimes: 3,
	}, group.ID)
	require.NoError(t, err)

	m = update(t, m, today.ReportProgressMsg{ID: task.ID})
	assert.Equal(t, "Pushups: 1/3", m.message)
}

// failingStore loads like a JSONStore but refuses every save.
type failingStore struct {
	*storage.JSONStore
}

func (failingStore) SaveSnapshot(models.Snapshot) error {
	return errors.New("disk full")
}

func TestReportProgress_SaveFailureStaysVisible(t *testing.T) {
	m, store, _ := newTestModel(t)
	m.store = failingStore{store}
	task := m.data.TodayTasks()[0]

	m = update(t, m, today.ReportProgressMsg{ID: task.ID})
	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "disk full")
	assert.Empty(t, m.message)
	assert.Contains(t, m.View(), "failed to save")
	assert.NotContains(t, m.View(), "Congratulations")

	saved, ok := storedData(t, store).Task(task.ID)
	require.True(t, ok)
	assert.False(t, saved.IsFinished)
}

func TestTabNavigation(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, constants.StateSchedule, m.state)
	m = update(t, m, keyRune('l'))
	assert.Equal(t, constants.StateGoals, m.state)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, constants.StateStats, m.state)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, constants.StateToday, m.state)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, constants.StateStats, m.state)
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, cmd := m.Update(keyRune('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestTick_DateChange(t *testing.T) {
	m, store, clock := newTestModel(t)
	task := m.data.TodayTasks()[0]
	m = update(t, m, today.ReportProgressMsg{ID: task.ID})

	m = update(t, m, tickMsg(clock.Now()))
	assert.Equal(t, models.NewDate(2024, time.March, 10), m.today, "same day changes nothing")
	assert.Len(t, m.data.TodayFinished(), 1)

	clock.Advance(24 * time.Hour)
	m = update(t, m, tickMsg(clock.Now()))
	assert.Equal(t, models.NewDate(2024, time.March, 11), m.today)
	assert.Empty(t, m.data.TodayTasks())
	assert.Empty(t, m.data.TodayFinished())
	assert.Equal(t, m.today, storedData(t, store).LastRecompute())
}

func TestForms(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = update(t, m, keyRune('a'))
	assert.Equal(t, constants.StateAddTask, m.state)
	require.NotNil(t, m.form)
	require.NotNil(t, m.taskForm)
	assert.Equal(t, "today", m.taskForm.Start)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, constants.StateToday, m.state)
	assert.Nil(t, m.form)

	m = update(t, m, keyRune('g'))
	assert.Equal(t, constants.StateAddGoal, m.state)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, constants.StateGoals, m.state)

	m = update(t, m, keyRune('n'))
	assert.Equal(t, constants.StateAddGroup, m.state)
	require.NotNil(t, m.nameForm)
}

func TestForms_RequireParents(t *testing.T) {
	clock := utils.NewFakeClock(testNow)
	m := NewModel(tracker.NewEmpty(), Options{Clock: clock, Settings: models.DefaultSettings()})

	m = update(t, m, keyRune('a'))
	assert.Equal(t, constants.StateToday, m.state)
	assert.Equal(t, "Add a group first (press 'n').", m.message)

	m = update(t, m, keyRune('n'))
	assert.Equal(t, constants.StateToday, m.state)
	assert.Equal(t, "Add a goal first (press 'g').", m.message)
}

func TestSubmitForm(t *testing.T) {
	m, store, _ := newTestModel(t)
	group := m.data.AllGroups()[0]

	m.state = constants.StateAddGoal
	m.nameForm = &NameFormModel{Name: "Reading"}
	m.submitForm()
	require.NoError(t, m.err)
	assert.Equal(t, "Added goal Reading", m.message)
	assert.Len(t, storedData(t, store).AllGoals(), 2)

	m.state = constants.StateAddTask
	m.taskForm = &TaskFormModel{
		Name:       "Read a chapter",
		GroupID:    group.ID,
		Start:      "today",
		End:        "+6",
		Step:       "2",
		Importance: "0",
		Times:      "1",
		Tags:       "books",
	}
	m.submitForm()
	require.NoError(t, m.err)
	assert.Equal(t, "Added task Read a chapter", m.message)
	assert.Len(t, m.data.TodayTasks(), 2)

	m.state = constants.StateAddGroup
	m.nameForm = &NameFormModel{Name: "Evening", ParentID: "missing"}
	m.submitForm()
	assert.Error(t, m.err)
	assert.Len(t, m.data.AllGroups(), 1)
}

func TestTaskFormModel_Fields(t *testing.T) {
	day := models.NewDate(2024, time.March, 10)

	fm := &TaskFormModel{Name: " Run ", Start: "tomorrow", Step: "3", Importance: "10", Times: "2", Tags: "#fitness, outdoor", Description: " loop "}
	fields, err := fm.Fields(day)
	require.NoError(t, err)
	assert.Equal(t, day.AddDays(1), fields.StartDate)
	assert.Equal(t, fields.StartDate, fields.EndDate)
	assert.Equal(t, 3, fields.DateStep)
	assert.Equal(t, 10, fields.Importance)
	assert.Equal(t, 2, fields.ExpectedTimes)
	assert.Equal(t, []string{"fitness", "outdoor"}, fields.Tags)
	assert.Equal(t, "loop", fields.Description)

	bad := []*TaskFormModel{
		{Name: "Run", Start: "today", Step: "x", Importance: "0", Times: "1"},
		{Name: "Run", Start: "today", Step: "1", Importance: "101", Times: "1"},
		{Name: "Run", Start: "today", End: "yesterday", Step: "1", Importance: "0", Times: "1"},
		{Name: "", Start: "today", Step: "1", Importance: "0", Times: "1"},
	}
	for _, fm := range bad {
		_, err := fm.Fields(day)
		assert.Error(t, err, "%+v", fm)
	}
}

func TestFileChanged_Reloads(t *testing.T) {
	m, store, _ := newTestModel(t)

	other := storage.NewJSONStore(store.GetConfigPath())
	data := storedData(t, other)
	_, err := data.CreateGoal("Edited elsewhere")
	require.NoError(t, err)
	require.NoError(t, other.SaveSnapshot(data.Snapshot()))

	m = update(t, m, FileChangedMsg{})
	require.NoError(t, m.err)
	assert.Len(t, m.data.AllGoals(), 2)
}

func TestFileChanged_IgnoredWhileFormOpen(t *testing.T) {
	m, store, _ := newTestModel(t)
	m = update(t, m, keyRune('g'))

	other := storage.NewJSONStore(store.GetConfigPath())
	data := storedData(t, other)
	_, err := data.CreateGoal("Edited elsewhere")
	require.NoError(t, err)
	require.NoError(t, other.SaveSnapshot(data.Snapshot()))

	m = update(t, m, FileChangedMsg{})
	assert.Len(t, m.data.AllGoals(), 1)
}

func TestView(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	for _, want := range []string{"Today", "Schedule", "Goals", "Stats", "Sun Mar 10", "Welcome to toyplan!"} {
		assert.Contains(t, view, want)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "First task")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "Daily")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "Finished all time")
}
