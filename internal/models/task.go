package models

import (
	"fmt"
	"strings"
)

// TaskFields holds the user-supplied attributes of a new task.
type TaskFields struct {
	Name          string
	StartDate     Date
	EndDate       Date
	DateStep      int
	Importance    int
	ExpectedTimes int
	Tags          []string
	Description   string
}

type Task struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	StartDate     Date     `json:"start_date" yaml:"start_date"`
	EndDate       Date     `json:"end_date" yaml:"end_date"`
	DateStep      int      `json:"date_step" yaml:"date_step"`
	Importance    int      `json:"importance" yaml:"importance"`
	ExpectedTimes int      `json:"expected_times" yaml:"expected_times"`
	Tags          []string `json:"tags" yaml:"tags"`
	GroupID       string   `json:"group_id" yaml:"group_id"`
	Description   string   `json:"description" yaml:"description"`
	FinishedTimes int      `json:"finished_times" yaml:"finished_times"`
	IsFinished    bool     `json:"is_finished" yaml:"is_finished"`
}

// RecordProgress counts one completion. It returns true only on the call
// that reaches ExpectedTimes; once finished it is a no-op returning false.
func (t *Task) RecordProgress() bool {
	if t.IsFinished {
		return false
	}
	t.FinishedTimes++
	if t.FinishedTimes >= t.ExpectedTimes {
		t.FinishedTimes = t.ExpectedTimes
		t.IsFinished = true
		return true
	}
	return false
}

// DueOn reports whether day falls inside [StartDate, EndDate].
func (t *Task) DueOn(day Date) bool {
	return day.Between(t.StartDate, t.EndDate)
}

// EndedBy reports whether EndDate <= day.
func (t *Task) EndedBy(day Date) bool {
	return !t.EndDate.After(day)
}

// StartedBy reports whether StartDate <= day.
func (t *Task) StartedBy(day Date) bool {
	return !t.StartDate.After(day)
}

// Progress renders the completion counter, e.g. "2/5".
func (t *Task) Progress() string {
	return fmt.Sprintf("%d/%d", t.FinishedTimes, t.ExpectedTimes)
}

func (t *Task) String() string {
	var b strings.Builder
	b.WriteString(t.Name)
	b.WriteString(" [")
	b.WriteString(t.Progress())
	b.WriteString("]")
	for _, tag := range t.Tags {
		b.WriteString(" #")
		b.WriteString(tag)
	}
	return b.String()
}

// NormalizeTags trims labels, drops blanks and repeats, and keeps the
// order in which they were entered.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// ParseTags splits user input on whitespace and commas.
func ParseTags(s string) []string {
	return NormalizeTags(strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	}))
}
