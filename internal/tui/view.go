package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/toyplan/internal/constants"
	"github.com/julianstephens/toyplan/internal/tui/components/stats"
)

var tabTitles = []string{"Today", "Schedule", "Goals", "Stats"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateToday:
		content = m.todayModel.View()
	case constants.StateSchedule:
		content = docStyle.Render(m.scheduleModel.View())
	case constants.StateGoals:
		content = docStyle.Render(m.goalsModel.View())
	case constants.StateStats:
		content = docStyle.Render(stats.Render(m.data.Stats()))
	case constants.StateAddTask, constants.StateAddGoal, constants.StateAddGroup:
		if m.form != nil {
			content = docStyle.Render(m.form.View())
		}
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	tabs = append(tabs, inactiveTabStyle.Render(m.today.Format(constants.DisplayDateFormat)))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render("Error: " + m.err.Error())
	}
	if m.message != "" {
		return successStyle.Render(m.message)
	}
	return ""
}
