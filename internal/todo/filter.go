package todo

import (
	"strings"

	"github.com/nhle/loopwork/internal/model"
)

// Filter returns the tasks matching both the status selector and the
// free-text query, in input order.
//
// A blank query matches everything. Otherwise a task matches when the
// lower-cased query is a substring of its title, notes or category.
func Filter(tasks []model.Task, query string, status model.StatusFilter) []model.Task {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchesStatus(t, status) {
			continue
		}
		if q != "" && !matchesQuery(t, q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesStatus(t model.Task, status model.StatusFilter) bool {
	switch status {
	case model.StatusActive:
		return !t.Completed
	case model.StatusCompleted:
		return t.Completed
	default:
		return true
	}
}

// matchesQuery expects q to be lower-cased and non-empty.
func matchesQuery(t model.Task, q string) bool {
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Notes), q) ||
		strings.Contains(strings.ToLower(t.Category), q)
}
