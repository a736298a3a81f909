package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/toyplan/internal/constants"
	"github.com/julianstephens/toyplan/internal/models"
	"github.com/julianstephens/toyplan/internal/utils"
	"github.com/julianstephens/toyplan/internal/validation"
)

type TaskFormModel struct {
	Name        string
	GroupID     string
	Start       string
	End         string
	Step        string
	Importance  string
	Times       string
	Tags        string
	Description string
}

// NameFormModel backs the goal and group forms. ParentID is the goal of a
// new group.
type NameFormModel struct {
	Name     string
	ParentID string
}

func newTaskFormModel() *TaskFormModel {
	return &TaskFormModel{
		Start:      "today",
		Step:       "1",
		Importance: "0",
		Times:      "1",
	}
}

// Fields converts the form into task fields. An empty end date means the
// start date.
func (fm *TaskFormModel) Fields(today models.Date) (models.TaskFields, error) {
	start, err := utils.ParseDateArg(fm.Start, today)
	if err != nil {
		return models.TaskFields{}, err
	}
	end := start
	if strings.TrimSpace(fm.End) != "" {
		if end, err = utils.ParseDateArg(fm.End, today); err != nil {
			return models.TaskFields{}, err
		}
	}
	step, err := atoi("step", fm.Step)
	if err != nil {
		return models.TaskFields{}, err
	}
	importance, err := atoi("importance", fm.Importance)
	if err != nil {
		return models.TaskFields{}, err
	}
	times, err := atoi("times", fm.Times)
	if err != nil {
		return models.TaskFields{}, err
	}

	fields := models.TaskFields{
		Name:          fm.Name,
		StartDate:     start,
		EndDate:       end,
		DateStep:      step,
		Importance:    importance,
		ExpectedTimes: times,
		Tags:          models.ParseTags(fm.Tags),
		Description:   strings.TrimSpace(fm.Description),
	}
	return fields, validation.ValidateTaskFields(fields)
}

func atoi(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", field)
	}
	return n, nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func (m Model) newTaskForm(fm *TaskFormModel) *huh.Form {
	var options []huh.Option[string]
	for _, goal := range m.data.AllGoals() {
		for _, group := range m.data.GroupsOf(goal) {
			options = append(options, huh.NewOption(goal.Name+" / "+group.Name, group.ID))
		}
	}
	dateValidator := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		_, err := utils.ParseDateArg(s, m.today)
		return err
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(required),
			huh.NewSelect[string]().
				Title("Group").
				Options(options...).
				Value(&fm.GroupID),
			huh.NewInput().
				Title("Start").
				Description("YYYY-MM-DD, today, tomorrow or +N").
				Value(&fm.Start).
				Validate(dateValidator),
			huh.NewInput().
				Title("End").
				Description("Empty for a single day").
				Value(&fm.End).
				Validate(dateValidator),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Repeat every N days").
				Value(&fm.Step).
				Validate(positive),
			huh.NewInput().
				Title(fmt.Sprintf("Importance (%d-%d)", constants.MinImportance, constants.MaxImportance)).
				Value(&fm.Importance),
			huh.NewInput().
				Title("Completions needed").
				Value(&fm.Times).
				Validate(positive),
			huh.NewInput().
				Title("Tags").
				Description("Separated by spaces or commas").
				Value(&fm.Tags),
			huh.NewText().
				Title("Description").
				Value(&fm.Description),
		),
	)
}

func positive(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	if n < 1 {
		return errors.New("must be at least 1")
	}
	return nil
}

func newGoalForm(fm *NameFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal name").
				Value(&fm.Name).
				Validate(required),
		),
	)
}

func (m Model) newGroupForm(fm *NameFormModel) *huh.Form {
	var options []huh.Option[string]
	for _, goal := range m.data.AllGoals() {
		options = append(options, huh.NewOption(goal.Name, goal.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Goal").
				Options(options...).
				Value(&fm.ParentID),
			huh.NewInput().
				Title("Group name").
				Value(&fm.Name).
				Validate(required),
		),
	)
}

// openForm switches to a form state, or explains why it cannot.
func (m *Model) openForm(state constants.SessionState) tea.Cmd {
	m.err = nil
	m.message = ""
	switch state {
	case constants.StateAddTask:
		if len(m.data.AllGroups()) == 0 {
			m.message = "Add a group first (press 'n')."
			return nil
		}
		m.taskForm = newTaskFormModel()
		m.form = m.newTaskForm(m.taskForm)
	case constants.StateAddGoal:
		m.nameForm = &NameFormModel{}
		m.form = newGoalForm(m.nameForm)
	case constants.StateAddGroup:
		if len(m.data.AllGoals()) == 0 {
			m.message = "Add a goal first (press 'g')."
			return nil
		}
		m.nameForm = &NameFormModel{}
		m.form = m.newGroupForm(m.nameForm)
	default:
		return nil
	}
	m.state = state
	return m.form.Init()
}

// submitForm applies a completed form to the aggregate. On failure the
// error is shown and nothing changes.
func (m *Model) submitForm() {
	var err error
	switch m.state {
	case constants.StateAddTask:
		var fields models.TaskFields
		if fields, err = m.taskForm.Fields(m.today); err == nil {
			var task *models.Task
			if task, err = m.data.AddTask(fields, m.taskForm.GroupID); err == nil {
				m.message = "Added task " + task.Name
			}
		}
	case constants.StateAddGoal:
		var goal *models.Goal
		if goal, err = m.data.CreateGoal(m.nameForm.Name); err == nil {
			m.message = "Added goal " + goal.Name
		}
	case constants.StateAddGroup:
		var group *models.Group
		if group, err = m.data.CreateGroup(m.nameForm.Name, m.nameForm.ParentID); err == nil {
			m.message = "Added group " + group.Name
		}
	}

	if err != nil {
		m.err = err
		return
	}
	m.data.Recompute(m.today)
	m.save()
	m.refresh()
}

// closeForm returns to the tab that best shows what the form changed.
func (m *Model) closeForm() {
	if m.state == constants.StateAddTask {
		m.state = constants.StateToday
	} else {
		m.state = constants.StateGoals
	}
	m.form = nil
	m.taskForm = nil
	m.nameForm = nil
}
