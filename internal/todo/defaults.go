package todo

import (
	"time"

	"github.com/nhle/loopwork/internal/model"
)

// ApplyDefaults fills the blanks in a create payload from the company's
// settings. The deadline preset is resolved against now; "none" falls back
// to today because a task always carries a deadline. A task without an
// assignee is assigned to its creator.
func ApplyDefaults(in model.CreateTaskInput, settings model.TaskSettings, now time.Time) model.CreateTaskInput {
	if in.Priority == "" {
		in.Priority = settings.DefaultPriority
	}
	if in.Deadline == nil {
		d := DeadlineFromPreset(settings.DefaultDeadline, now)
		in.Deadline = &d
	}
	if in.AssignedTo == "" {
		in.AssignedTo = in.CreatedBy
	}
	return in
}

// DeadlineFromPreset resolves a deadline preset relative to now.
func DeadlineFromPreset(preset string, now time.Time) time.Time {
	switch preset {
	case model.DeadlineTomorrow:
		return now.AddDate(0, 0, 1)
	case model.DeadlineNextWeek:
		return now.AddDate(0, 0, 7)
	default:
		return now
	}
}
