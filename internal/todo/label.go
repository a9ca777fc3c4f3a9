package todo

import (
	"fmt"
	"time"

	"github.com/nhle/loopwork/internal/model"
)

// DeadlineLabel renders a deadline relative to now: "Today", "Tomorrow",
// "Yesterday", "N days overdue", or a short date. The year is only shown
// when it differs from now's.
func DeadlineLabel(deadline, now time.Time) string {
	local := deadline.In(now.Location())

	switch diff := daysBetween(now, local); {
	case diff == 0:
		return "Today"
	case diff == 1:
		return "Tomorrow"
	case diff == -1:
		return "Yesterday"
	case diff < 0:
		return fmt.Sprintf("%d days overdue", -diff)
	}

	if local.Year() != now.Year() {
		return local.Format("Jan 2, 2006")
	}
	return local.Format("Jan 2")
}

// IsOverdue reports whether an open task's deadline instant has passed.
func IsOverdue(t model.Task, now time.Time) bool {
	return !t.Completed && t.Deadline.Before(now)
}

// CountActive returns the number of tasks not yet completed.
func CountActive(tasks []model.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}
