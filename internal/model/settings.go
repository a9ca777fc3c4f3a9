package model

// Deadline presets used when a task is created without a deadline.
const (
	DeadlineNone     = "none"
	DeadlineToday    = "today"
	DeadlineTomorrow = "tomorrow"
	DeadlineNextWeek = "nextWeek"
)

// Sort modes applied to a task list before it is grouped.
const (
	SortManual   = "manual"
	SortPriority = "priority"
	SortDeadline = "deadline"
)

// TaskSettings holds the per-company to-do list preferences.
type TaskSettings struct {
	DefaultPriority Priority `json:"default_priority" db:"default_priority"`
	DefaultDeadline string   `json:"default_deadline" db:"default_deadline"`
	DefaultSort     string   `json:"default_sort" db:"default_sort"`

	// AutoDeleteCompletedDays purges completed tasks after this many days.
	// Zero disables purging.
	AutoDeleteCompletedDays int `json:"auto_delete_completed_days" db:"auto_delete_completed_days"`

	// MaxOverdueTasks caps the urgent group for display. Zero is unlimited.
	MaxOverdueTasks int `json:"max_overdue_tasks" db:"max_overdue_tasks"`
}

// DefaultTaskSettings returns the settings used when none are stored.
func DefaultTaskSettings() TaskSettings {
	return TaskSettings{
		DefaultPriority: PriorityMedium,
		DefaultDeadline: DeadlineToday,
		DefaultSort:     SortManual,
	}
}
