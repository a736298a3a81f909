package scheduler

import (
	"github.com/julianstephens/toyplan/internal/constants"
	"github.com/julianstephens/toyplan/internal/models"
)

// Day is one projected day. Offset counts days from today.
type Day struct {
	Offset int
	Date   models.Date
	Tasks  []*models.Task
}

// Schedule is ordered by ascending offset and never holds an empty Day.
type Schedule []Day

// Lookup returns the day at offset, if any task falls on it.
func (s Schedule) Lookup(offset int) (Day, bool) {
	for _, day := range s {
		if day.Offset == offset {
			return day, true
		}
	}
	return Day{}, false
}

// Len counts task occurrences across all days.
func (s Schedule) Len() int {
	n := 0
	for _, day := range s {
		n += len(day.Tasks)
	}
	return n
}

type Scheduler struct {
	horizon int
}

// New returns a projector covering horizon days starting today. A
// non-positive horizon falls back to the default.
func New(horizon int) *Scheduler {
	if horizon <= 0 {
		horizon = constants.DefaultHorizonDays
	}
	return &Scheduler{horizon: horizon}
}

func (s *Scheduler) Horizon() int {
	return s.horizon
}

// Project lays the started tasks out over the scheduler's horizon.
func (s *Scheduler) Project(tasks []*models.Task, today models.Date) Schedule {
	return Project(tasks, today, s.horizon)
}

// Project lays tasks out over the next horizon days, today being offset 0.
//
// Only tasks already started by today are projected. Each one is walked from
// max(start-today, 0) through min(end-today, horizon-1) in strides of its
// date step, so the stride is anchored on today rather than the start date.
// Tasks keep their input order within a day.
func Project(tasks []*models.Task, today models.Date, horizon int) Schedule {
	if horizon <= 0 {
		return Schedule{}
	}

	days := make([][]*models.Task, horizon)
	for _, task := range tasks {
		if !task.StartedBy(today) {
			continue
		}
		step := task.DateStep
		if step < constants.MinDateStep {
			step = constants.MinDateStep
		}
		first := max(today.DaysUntil(task.StartDate), 0)
		last := min(today.DaysUntil(task.EndDate), horizon-1)
		for offset := first; offset <= last; offset += step {
			days[offset] = append(days[offset], task)
		}
	}

	schedule := Schedule{}
	for offset, dayTasks := range days {
		if len(dayTasks) == 0 {
			continue
		}
		schedule = append(schedule, Day{
			Offset: offset,
			Date:   today.AddDays(offset),
			Tasks:  dayTasks,
		})
	}
	return schedule
}
