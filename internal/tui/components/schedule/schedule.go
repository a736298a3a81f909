package schedule

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/toyplan/internal/constants"
	"github.com/julianstephens/toyplan/internal/scheduler"
	"github.com/julianstephens/toyplan/internal/tracker"
	"github.com/julianstephens/toyplan/internal/utils"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	taskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	content  string
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.viewport.SetContent(m.content)
}

// SetSchedule renders days, naming each task's goal and group and cutting
// descriptions to preview runes.
func (m *Model) SetSchedule(days scheduler.Schedule, data *tracker.Data, horizon, preview int) {
	m.content = Render(days, data, horizon, preview)
	m.viewport.SetContent(m.content)
}

func Render(days scheduler.Schedule, data *tracker.Data, horizon, preview int) string {
	if len(days) == 0 {
		return fmt.Sprintf("Nothing scheduled in the next %d days.", horizon)
	}

	var b strings.Builder
	for i, day := range days {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(dayStyle.Render(day.Date.Format(constants.DisplayDateFormat)))
		b.WriteString(" ")
		b.WriteString(offsetStyle.Render(offsetLabel(day.Offset)))
		b.WriteString("\n")
		for _, task := range day.Tasks {
			b.WriteString("  ")
			b.WriteString(taskStyle.Render(task.Name))
			b.WriteString(" ")
			b.WriteString(task.Progress())
			if group, goal := data.Parents(task); group != nil && goal != nil {
				b.WriteString("  ")
				b.WriteString(pathStyle.Render(goal.Name + " / " + group.Name))
			}
			if task.Description != "" {
				b.WriteString("\n    ")
				b.WriteString(utils.Truncate(task.Description, preview))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func offsetLabel(offset int) string {
	switch offset {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	}
	return fmt.Sprintf("in %d days", offset)
}
