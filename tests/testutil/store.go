package testutil

import (
	"testing"
	"time"

	"github.com/nhle/loopwork/internal/model"
	"github.com/nhle/loopwork/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// FixedClock returns a clock that always reports now.
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

// Task builds an open task for company ACME assigned to emp001.
func Task(id, title string, deadline time.Time) model.Task {
	return model.Task{
		ID:          id,
		Title:       title,
		Deadline:    deadline,
		Priority:    model.PriorityMedium,
		Tags:        []string{},
		CreatedBy:   "emp001",
		AssignedTo:  "emp001",
		CreatedAt:   deadline.AddDate(0, 0, -1),
		CompanyCode: "ACME",
	}
}
