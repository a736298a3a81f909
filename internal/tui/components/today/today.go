package today

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/toyplan/internal/models"
	"github.com/julianstephens/toyplan/internal/tracker"
)

// ReportProgressMsg asks the parent model to count one completion.
type ReportProgressMsg struct {
	ID string
}

type Item struct {
	Task  models.Task
	Group string
	Goal  string
}

func (i Item) Title() string {
	if i.Task.IsFinished {
		return "✓ " + i.Task.Name
	}
	return i.Task.Name
}

func (i Item) Description() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s / %s | %s", i.Goal, i.Group, i.Task.Progress())
	for _, tag := range i.Task.Tags {
		b.WriteString(" #")
		b.WriteString(tag)
	}
	return b.String()
}

func (i Item) FilterValue() string { return i.Task.Name }

type KeyMap struct {
	Progress key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Progress: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "report progress"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Today"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Progress}
	}

	return Model{list: l, keys: keys}
}

// SetData rebuilds the items from the today bucket.
func (m *Model) SetData(data *tracker.Data) {
	tasks := data.TodayTasks()
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		item := Item{Task: *t}
		if group, goal := data.Parents(t); group != nil && goal != nil {
			item.Group = group.Name
			item.Goal = goal.Name
		}
		items = append(items, item)
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Progress) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ReportProgressMsg{ID: i.Task.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Filtering reports whether the list is capturing keystrokes.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  Nothing due today.\n  Press 'a' to add a task."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
