package tracker

import (
	"github.com/julianstephens/toyplan/internal/errors"
	"github.com/julianstephens/toyplan/internal/logger"
)

// ReportProgress records one completion of a task. It returns true only for
// the call that finishes the task. Progress on a finished task is ignored.
func (d *Data) ReportProgress(taskID string) (bool, error) {
	task, ok := d.tasks[taskID]
	if !ok {
		return false, errors.NewReference("task", taskID)
	}
	if task.IsFinished {
		logger.Debug("Ignoring progress on finished task", "task", task.Name)
		return false, nil
	}
	finished := task.RecordProgress()
	logger.Debug("Recorded progress", "task", task.Name, "progress", task.Progress(), "finished", finished)
	return finished, nil
}
