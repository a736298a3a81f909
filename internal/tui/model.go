package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/toyplan/internal/constants"
	"github.com/julianstephens/toyplan/internal/logger"
	"github.com/julianstephens/toyplan/internal/models"
	"github.com/julianstephens/toyplan/internal/scheduler"
	"github.com/julianstephens/toyplan/internal/storage"
	"github.com/julianstephens/toyplan/internal/tracker"
	"github.com/julianstephens/toyplan/internal/tui/components/goals"
	"github.com/julianstephens/toyplan/internal/tui/components/schedule"
	"github.com/julianstephens/toyplan/internal/tui/components/today"
	"github.com/julianstephens/toyplan/internal/utils"
)

// tickInterval is how often the model checks whether the date changed.
const tickInterval = time.Minute

// numTabs counts the tab states, which come first in SessionState.
const numTabs = 4

// Options carries the collaborators of the TUI.
type Options struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Clock     utils.Clock
	Settings  models.Settings
}

// tickMsg drives the date-change check.
type tickMsg time.Time

// FileChangedMsg is sent when the watched data file changes on disk.
type FileChangedMsg struct{}

type Model struct {
	data          *tracker.Data
	store         storage.Provider
	scheduler     *scheduler.Scheduler
	clock         utils.Clock
	settings      models.Settings
	today         models.Date
	state         constants.SessionState
	keys          KeyMap
	help          help.Model
	todayModel    today.Model
	scheduleModel schedule.Model
	goalsModel    goals.Model
	form          *huh.Form
	taskForm      *TaskFormModel
	nameForm      *NameFormModel
	message       string
	err           error
	quitting      bool
	width         int
	height        int
}

func NewModel(data *tracker.Data, opts Options) Model {
	sched := opts.Scheduler
	if sched == nil {
		sched = scheduler.New(opts.Settings.HorizonDays)
	}

	m := Model{
		data:          data,
		store:         opts.Store,
		scheduler:     sched,
		clock:         opts.Clock,
		settings:      opts.Settings,
		today:         utils.Today(opts.Clock),
		state:         constants.StateToday,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		todayModel:    today.New(0, 0),
		scheduleModel: schedule.New(0, 0),
		goalsModel:    goals.New(0, 0),
	}

	if data.IsFirstOpen() {
		m.message = "Welcome to toyplan! A starter task is waiting on the Today tab."
		data.MarkOpened()
		m.save()
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateToday:
		keys = append(keys, m.keys.Enter, m.keys.AddTask)
	case constants.StateGoals:
		keys = append(keys, m.keys.AddGoal, m.keys.AddGroup, m.keys.AddTask)
	case constants.StateAddTask, constants.StateAddGoal, constants.StateAddGroup:
		keys = []key.Binding{m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}
	actions := []key.Binding{m.keys.AddTask, m.keys.AddGoal, m.keys.AddGroup}
	return [][]key.Binding{global, navigation, actions}
}

// refresh pushes the aggregate into every component.
func (m *Model) refresh() {
	m.todayModel.SetData(m.data)
	m.goalsModel.SetData(m.data)
	days := m.scheduler.Project(m.data.ActiveTasks(), m.today)
	m.scheduleModel.SetSchedule(days, m.data, m.scheduler.Horizon(), m.settings.DescriptionPreview)
}

// save writes the aggregate. A failure is left in m.err for the status line.
func (m *Model) save() error {
	if m.store == nil {
		return nil
	}
	if err := m.store.SaveSnapshot(m.data.Snapshot()); err != nil {
		logger.Error("Failed to save tracker data", "error", err)
		m.err = fmt.Errorf("failed to save: %w", err)
		m.message = ""
		return m.err
	}
	return nil
}

// checkDate recomputes when the calendar date moved since the last check.
func (m *Model) checkDate() {
	now := utils.Today(m.clock)
	if now == m.today {
		return
	}
	logger.Info("Date changed, recomputing", "from", m.today, "to", now)
	m.today = now
	m.data.Recompute(now)
	m.save()
	m.refresh()
}

// reload replaces the aggregate with what is on disk.
func (m *Model) reload() {
	if m.store == nil {
		return
	}
	if err := m.store.Load(); err != nil {
		m.err = fmt.Errorf("failed to reload: %w", err)
		return
	}
	snapshot, err := m.store.LoadSnapshot()
	if err != nil {
		m.err = fmt.Errorf("failed to reload: %w", err)
		return
	}
	data, err := tracker.FromSnapshot(snapshot)
	if err != nil {
		m.err = fmt.Errorf("failed to reload: %w", err)
		return
	}
	data.Recompute(m.today)
	m.data = data
	m.refresh()
	logger.Debug("Reloaded tracker data from disk")
}

func (m *Model) reportProgress(id string) {
	task, ok := m.data.Task(id)
	if !ok {
		m.err = fmt.Errorf("task %s no longer exists", id)
		return
	}
	wasFinished := task.IsFinished
	finished, err := m.data.ReportProgress(id)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.message = ""
	m.data.Recompute(m.today)
	err = m.save()
	m.refresh()
	if err != nil {
		return
	}

	switch {
	case finished:
		m.message = fmt.Sprintf("Congratulations! You finished %s.", task.Name)
	case wasFinished:
		m.message = fmt.Sprintf("%s is already finished.", task.Name)
	default:
		m.message = fmt.Sprintf("%s: %s", task.Name, task.Progress())
	}
}
