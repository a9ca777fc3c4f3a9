package todo

import (
	"time"

	"github.com/nhle/loopwork/internal/model"
)

// PurgeCompleted splits tasks into those to keep and completed tasks whose
// CompletedAt is at least days calendar days before now. days <= 0 keeps
// everything. A completed task without a CompletedAt is kept.
func PurgeCompleted(tasks []model.Task, now time.Time, days int) (kept, purged []model.Task) {
	kept = make([]model.Task, 0, len(tasks))
	if days <= 0 {
		return append(kept, tasks...), nil
	}

	for _, t := range tasks {
		if t.Completed && t.CompletedAt != nil && -daysBetween(now, *t.CompletedAt) >= days {
			purged = append(purged, t)
			continue
		}
		kept = append(kept, t)
	}
	return kept, purged
}
