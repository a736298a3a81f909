package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/toyplan/internal/constants"
	"github.com/julianstephens/toyplan/internal/errors"
	"github.com/julianstephens/toyplan/internal/models"
)

// ValidateName rejects empty or whitespace-only names.
func ValidateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewValidation(kind+" name", "must not be empty")
	}
	return nil
}

// ValidateTaskFields checks the attributes of a task about to be created.
func ValidateTaskFields(f models.TaskFields) error {
	if err := ValidateName("task", f.Name); err != nil {
		return err
	}
	if f.StartDate.IsZero() {
		return errors.NewValidation("start_date", "must be set")
	}
	if f.EndDate.IsZero() {
		return errors.NewValidation("end_date", "must be set")
	}
	if f.EndDate.Before(f.StartDate) {
		return errors.NewValidation("end_date", fmt.Sprintf("%s is before start date %s", f.EndDate, f.StartDate))
	}
	if f.DateStep < constants.MinDateStep {
		return errors.NewValidation("date_step", fmt.Sprintf("must be at least %d", constants.MinDateStep))
	}
	if f.Importance < constants.MinImportance || f.Importance > constants.MaxImportance {
		return errors.NewValidation("importance", fmt.Sprintf("must be between %d and %d", constants.MinImportance, constants.MaxImportance))
	}
	if f.ExpectedTimes < constants.MinExpectedTimes {
		return errors.NewValidation("expected_times", fmt.Sprintf("must be at least %d", constants.MinExpectedTimes))
	}
	return nil
}

// ValidateTask checks a stored task, including its progress counters.
func ValidateTask(t models.Task) error {
	err := ValidateTaskFields(models.TaskFields{
		Name:          t.Name,
		StartDate:     t.StartDate,
		EndDate:       t.EndDate,
		DateStep:      t.DateStep,
		Importance:    t.Importance,
		ExpectedTimes: t.ExpectedTimes,
	})
	if err != nil {
		return fmt.Errorf("task %s: %w", t.ID, err)
	}
	if t.FinishedTimes < 0 || t.FinishedTimes > t.ExpectedTimes {
		return fmt.Errorf("task %s: %w", t.ID, errors.NewValidation("finished_times",
			fmt.Sprintf("%d is outside 0..%d", t.FinishedTimes, t.ExpectedTimes)))
	}
	if t.IsFinished != (t.FinishedTimes == t.ExpectedTimes) {
		return fmt.Errorf("task %s: %w", t.ID, errors.NewValidation("is_finished",
			fmt.Sprintf("does not match progress %s", t.Progress())))
	}
	return nil
}

// ValidateSettings checks user-edited settings before they are saved.
func ValidateSettings(s models.Settings) error {
	if s.HorizonDays < 1 {
		return errors.NewValidation("horizon_days", "must be at least 1")
	}
	if s.DescriptionPreview < 0 {
		return errors.NewValidation("description_preview", "must not be negative")
	}
	return nil
}
