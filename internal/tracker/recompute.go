package tracker

import (
	"slices"

	"github.com/julianstephens/toyplan/internal/logger"
	"github.com/julianstephens/toyplan/internal/models"
)

// Recompute reclassifies every active task for the given day.
//
// A finished task due today is archived into the past list but stays
// active for the rest of its window, so it keeps showing in today's view.
// A finished task whose window has closed is archived and leaves the
// active list. Unfinished tasks are never archived.
//
// TodayFinished only describes one day: it is reset when today differs from
// the previous call. Calling Recompute again with the same day changes
// nothing.
func (d *Data) Recompute(today models.Date) {
	if today != d.lastRecompute {
		d.todayFinished = d.todayFinished[:0]
	}
	d.today = d.today[:0]

	for _, id := range slices.Clone(d.active) {
		task := d.tasks[id]
		switch {
		case task.DueOn(today):
			d.today = append(d.today, id)
			if task.IsFinished && !d.IsArchived(id) {
				d.past = append(d.past, id)
				d.todayFinished = append(d.todayFinished, id)
			}
		case task.EndedBy(today):
			if task.IsFinished && !d.IsArchived(id) {
				d.active = slices.DeleteFunc(d.active, func(other string) bool { return other == id })
				d.past = append(d.past, id)
			}
		}
	}

	d.lastRecompute = today
	logger.Debug("Recomputed buckets",
		"today", today.String(),
		"active", len(d.active),
		"due", len(d.today),
		"past", len(d.past),
		"finished_today", len(d.todayFinished))
}
