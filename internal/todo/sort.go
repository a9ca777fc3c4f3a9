package todo

import (
	"slices"

	"github.com/nhle/loopwork/internal/model"
)

// Sort returns a copy of tasks ordered by mode. The sort is stable, so ties
// keep their input order. SortManual, and any unknown mode, keeps the input
// order unchanged.
//
// Sort runs before Classify; Classify keeps whatever order it is given.
func Sort(tasks []model.Task, mode string) []model.Task {
	out := append([]model.Task(nil), tasks...)

	switch mode {
	case model.SortPriority:
		slices.SortStableFunc(out, func(a, b model.Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		})
	case model.SortDeadline:
		slices.SortStableFunc(out, func(a, b model.Task) int {
			return a.Deadline.Compare(b.Deadline)
		})
	}
	return out
}
