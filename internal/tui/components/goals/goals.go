package goals

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/toyplan/internal/tracker"
)

var (
	goalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	groupStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	archivedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model shows the goal > group > task tree.
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

func (m *Model) SetData(data *tracker.Data) {
	m.content = Render(data)
	m.viewport.SetContent(m.content)
}

func Render(data *tracker.Data) string {
	goals := data.AllGoals()
	if len(goals) == 0 {
		return "No goals yet. Press 'g' to add one."
	}

	var b strings.Builder
	for _, goal := range goals {
		b.WriteString(goalStyle.Render(goal.Name))
		b.WriteString("\n")
		groups := data.GroupsOf(goal)
		if len(groups) == 0 {
			b.WriteString("  (no groups, press 'n' to add one)\n")
		}
		for _, group := range groups {
			b.WriteString("  ")
			b.WriteString(groupStyle.Render(group.Name))
			b.WriteString("\n")
			for _, task := range data.TasksOf(group) {
				line := task.String()
				switch {
				case data.IsArchived(task.ID):
					line = archivedStyle.Render(line)
				case !data.IsActive(task.ID):
					line = inactiveStyle.Render(line + " (not scheduled)")
				}
				b.WriteString("    ")
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
