package stats

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/toyplan/internal/tracker"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(20)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)
)

func Render(s tracker.Stats) string {
	rows := []struct {
		label string
		value string
	}{
		{"First opened", s.FirstOpened.String()},
		{"Goals", fmt.Sprint(s.Goals)},
		{"Tasks", fmt.Sprint(s.Tasks)},
		{"Finished today", fmt.Sprint(s.FinishedToday)},
		{"Finished all time", fmt.Sprint(s.FinishedAllTime)},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(row.label), valueStyle.Render(row.value)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
