package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/toyplan/internal/constants"
	"github.com/julianstephens/toyplan/internal/tui/components/today"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// tabs, status line and help
		h := msg.Height - 4
		m.todayModel.SetSize(msg.Width, h)
		m.scheduleModel.SetSize(msg.Width-4, h-2)
		m.goalsModel.SetSize(msg.Width-4, h-2)
		return m, nil

	case tickMsg:
		m.checkDate()
		return m, tick()

	case FileChangedMsg:
		if m.form == nil {
			m.reload()
		}
		return m, nil

	case today.ReportProgressMsg:
		m.reportProgress(msg.ID)
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.todayModel.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % numTabs
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + numTabs) % numTabs
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.AddTask):
			return m, m.openForm(constants.StateAddTask)
		case key.Matches(msg, m.keys.AddGoal):
			return m, m.openForm(constants.StateAddGoal)
		case key.Matches(msg, m.keys.AddGroup):
			return m, m.openForm(constants.StateAddGroup)
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateToday:
		m.todayModel, cmd = m.todayModel.Update(msg)
	case constants.StateSchedule:
		m.scheduleModel, cmd = m.scheduleModel.Update(msg)
	case constants.StateGoals:
		m.goalsModel, cmd = m.goalsModel.Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Cancel) {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitForm()
		m.closeForm()
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}
