package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/loopwork/internal/model"
)

func filterFixture() []model.Task {
	return []model.Task{
		{ID: "1", Title: "Review Q4 Budget Report", Category: "Finance"},
		{ID: "2", Title: "Team standup", Notes: "discuss BUDGET overruns", Completed: true},
		{ID: "3", Title: "Order supplies", Category: "Office"},
		{ID: "4", Title: "Plan offsite", Notes: "", Category: "", Completed: true},
	}
}

func TestFilter(t *testing.T) {
	tasks := filterFixture()

	tests := []struct {
		name   string
		query  string
		status model.StatusFilter
		want   []string
	}{
		{"all no query", "", model.StatusAll, []string{"1", "2", "3", "4"}},
		{"title match is case insensitive", "budget report", model.StatusAll, []string{"1"}},
		{"matches title or notes", "budget", model.StatusAll, []string{"1", "2"}},
		{"matches category", "office", model.StatusAll, []string{"3"}},
		{"whitespace query is ignored", "   ", model.StatusActive, []string{"1", "3"}},
		{"query is trimmed", "  supplies ", model.StatusAll, []string{"3"}},
		{"completed only", "", model.StatusCompleted, []string{"2", "4"}},
		{"active only", "", model.StatusActive, []string{"1", "3"}},
		{"both axes apply", "budget", model.StatusCompleted, []string{"2"}},
		{"no match", "payroll", model.StatusAll, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(tasks, tt.query, tt.status)))
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	tasks := filterFixture()
	before := append([]model.Task(nil), tasks...)

	_ = Filter(tasks, "budget", model.StatusActive)

	assert.Equal(t, before, tasks)
}

func TestFilterCompletedMatchesSubset(t *testing.T) {
	tasks := filterFixture()

	for _, tk := range Filter(tasks, "", model.StatusCompleted) {
		assert.True(t, tk.Completed)
	}
	assert.Len(t, Filter(tasks, "", model.StatusCompleted), 2)
}
