package todo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/loopwork/internal/model"
)

func TestApplyDefaults(t *testing.T) {
	settings := model.TaskSettings{
		DefaultPriority: model.PriorityLow,
		DefaultDeadline: model.DeadlineTomorrow,
	}

	in := ApplyDefaults(model.CreateTaskInput{Title: "x", CreatedBy: "emp001"}, settings, refNow)

	assert.Equal(t, model.PriorityLow, in.Priority)
	require.NotNil(t, in.Deadline)
	assert.Equal(t, refNow.AddDate(0, 0, 1), *in.Deadline)
	assert.Equal(t, "emp001", in.AssignedTo)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	deadline := day(2026, 3, 1)
	in := model.CreateTaskInput{
		Title:      "x",
		Priority:   model.PriorityHigh,
		Deadline:   &deadline,
		CreatedBy:  "emp001",
		AssignedTo: "emp003",
	}

	out := ApplyDefaults(in, model.DefaultTaskSettings(), refNow)

	assert.Equal(t, in, out)
}

func TestDeadlineFromPreset(t *testing.T) {
	assert.Equal(t, refNow, DeadlineFromPreset(model.DeadlineToday, refNow))
	assert.Equal(t, refNow, DeadlineFromPreset(model.DeadlineNone, refNow))
	assert.Equal(t, refNow, DeadlineFromPreset("", refNow))
	assert.Equal(t, refNow.AddDate(0, 0, 1), DeadlineFromPreset(model.DeadlineTomorrow, refNow))
	assert.Equal(t, refNow.AddDate(0, 0, 7), DeadlineFromPreset(model.DeadlineNextWeek, refNow))
}

func TestSort(t *testing.T) {
	a := model.Task{ID: "a", Priority: model.PriorityLow, Deadline: day(2025, 10, 1)}
	b := model.Task{ID: "b", Priority: model.PriorityHigh, Deadline: day(2025, 12, 1)}
	c := model.Task{ID: "c", Priority: model.PriorityMedium, Deadline: day(2025, 10, 1)}
	d := model.Task{ID: "d", Priority: model.PriorityHigh, Deadline: day(2025, 9, 1)}
	tasks := []model.Task{a, b, c, d}

	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(Sort(tasks, model.SortManual)))
	assert.Equal(t, []string{"b", "d", "c", "a"}, ids(Sort(tasks, model.SortPriority)))
	assert.Equal(t, []string{"d", "a", "c", "b"}, ids(Sort(tasks, model.SortDeadline)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(tasks), "input order untouched")
}

func TestSortThenClassifyKeepsOrder(t *testing.T) {
	tasks := []model.Task{
		{ID: "low", Priority: model.PriorityLow, Deadline: refNow},
		{ID: "high", Priority: model.PriorityHigh, Deadline: refNow},
	}

	g := Classify(Sort(tasks, model.SortPriority), refNow)

	assert.Equal(t, []string{"high", "low"}, ids(g.Urgent))
}

func TestScope(t *testing.T) {
	tasks := []model.Task{
		{ID: "self", CreatedBy: "me", AssignedTo: "me"},
		{ID: "delegated", CreatedBy: "me", AssignedTo: "you"},
		{ID: "received", CreatedBy: "you", AssignedTo: "me"},
		{ID: "other", CreatedBy: "you", AssignedTo: "them"},
	}

	assert.Equal(t, []string{"self", "received"}, ids(Scope(tasks, "me", ScopeMine)))
	assert.Equal(t, []string{"delegated"}, ids(Scope(tasks, "me", ScopeCreated)))
}

func TestDeadlineLabel(t *testing.T) {
	tests := []struct {
		deadline time.Time
		want     string
	}{
		{time.Date(2025, 10, 22, 23, 59, 0, 0, time.UTC), "Today"},
		{day(2025, 10, 23), "Tomorrow"},
		{day(2025, 10, 21), "Yesterday"},
		{day(2025, 10, 19), "3 days overdue"},
		{day(2025, 11, 5), "Nov 5"},
		{day(2026, 1, 15), "Jan 15, 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, DeadlineLabel(tt.deadline, refNow))
		})
	}
}

func TestIsOverdue(t *testing.T) {
	past := task("a", refNow.Add(-time.Minute), false)
	done := task("b", refNow.Add(-time.Minute), true)
	future := task("c", refNow.Add(time.Minute), false)

	assert.True(t, IsOverdue(past, refNow))
	assert.False(t, IsOverdue(done, refNow))
	assert.False(t, IsOverdue(future, refNow))
}

func TestCountActive(t *testing.T) {
	tasks := []model.Task{task("a", refNow, false), task("b", refNow, true), task("c", refNow, false)}

	assert.Equal(t, 2, CountActive(tasks))
	assert.Equal(t, 0, CountActive(nil))
}

func TestPurgeCompleted(t *testing.T) {
	old := refNow.AddDate(0, 0, -8)
	recent := refNow.AddDate(0, 0, -2)

	stale := task("stale", refNow, true)
	stale.CompletedAt = &old
	fresh := task("fresh", refNow, true)
	fresh.CompletedAt = &recent
	open := task("open", refNow.AddDate(0, 0, -30), false)
	legacy := task("legacy", refNow, true)

	tasks := []model.Task{stale, fresh, open, legacy}

	kept, purged := PurgeCompleted(tasks, refNow, 7)
	assert.Equal(t, []string{"fresh", "open", "legacy"}, ids(kept))
	assert.Equal(t, []string{"stale"}, ids(purged))

	kept, purged = PurgeCompleted(tasks, refNow, 0)
	assert.Len(t, kept, 4)
	assert.Empty(t, purged)
}
