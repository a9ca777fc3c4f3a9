package todo

import (
	"time"

	"github.com/nhle/loopwork/internal/model"
)

// upcomingDays is the last day offset (inclusive) that counts as upcoming.
const upcomingDays = 7

// Groups is a task list split by urgency.
type Groups struct {
	// Urgent holds open tasks due today or earlier.
	Urgent []model.Task `json:"urgent"`
	// Upcoming holds open tasks due tomorrow through seven days out.
	Upcoming []model.Task `json:"upcoming"`
	// Later holds open tasks due more than seven days out.
	Later     []model.Task `json:"later"`
	Completed []model.Task `json:"completed"`
}

// Len returns the number of tasks across all groups.
func (g Groups) Len() int {
	return len(g.Urgent) + len(g.Upcoming) + len(g.Later) + len(g.Completed)
}

// CapUrgent returns a copy of g with at most n urgent tasks.
// n <= 0 leaves the group intact.
func (g Groups) CapUrgent(n int) Groups {
	if n > 0 && len(g.Urgent) > n {
		g.Urgent = g.Urgent[:n:n]
	}
	return g
}

// Classify splits tasks into groups by comparing deadlines to now at
// calendar-day granularity in now's location. Completed tasks always land
// in Completed. Each group keeps the relative input order.
func Classify(tasks []model.Task, now time.Time) Groups {
	today := startOfDay(now)
	lastUpcoming := today.AddDate(0, 0, upcomingDays)

	g := Groups{
		Urgent:    []model.Task{},
		Upcoming:  []model.Task{},
		Later:     []model.Task{},
		Completed: []model.Task{},
	}
	for _, t := range tasks {
		if t.Completed {
			g.Completed = append(g.Completed, t)
			continue
		}

		day := startOfDay(t.Deadline.In(now.Location()))
		switch {
		case !day.After(today):
			g.Urgent = append(g.Urgent, t)
		case !day.After(lastUpcoming):
			g.Upcoming = append(g.Upcoming, t)
		default:
			g.Later = append(g.Later, t)
		}
	}
	return g
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween returns the number of calendar days from a to b, both taken
// in a's location.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	// Dates are rebuilt in UTC so the span is free of DST shifts.
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from) / (24 * time.Hour))
}
