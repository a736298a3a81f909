package tracker

import "github.com/julianstephens/toyplan/internal/models"

// Stats is a read-only summary of the aggregate.
type Stats struct {
	FirstOpened     models.Date
	Goals           int
	Tasks           int
	FinishedToday   int
	FinishedAllTime int
}

// Stats derives the summary from the current buckets.
//
// Tasks counts active + past - finished today. Tasks archived today are
// still active, so they would be counted twice; the subtraction corrects for
// that only until the next day's Recompute clears TodayFinished, after which
// the count includes those tasks twice again.
func (d *Data) Stats() Stats {
	return Stats{
		FirstOpened:     d.firstOpened,
		Goals:           len(d.allGoals),
		Tasks:           len(d.active) + len(d.past) - len(d.todayFinished),
		FinishedToday:   len(d.todayFinished),
		FinishedAllTime: len(d.past),
	}
}
