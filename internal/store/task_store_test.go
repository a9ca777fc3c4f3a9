package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/loopwork/internal/model"
	"github.com/nhle/loopwork/internal/store"
	"github.com/nhle/loopwork/internal/todo"
	"github.com/nhle/loopwork/tests/testutil"
)

var base = time.Date(2025, 10, 22, 10, 0, 0, 0, time.UTC)

func TestCreateAndGetTask(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	doc := "circ-42"
	in := testutil.Task("t1", "Review Q4 Budget Report", base)
	in.Tags = []string{"finance", "q4"}
	in.Notes = "see attachment"
	in.SourceDocumentID = &doc
	require.NoError(t, s.CreateTask(ctx, in))

	got, err := s.GetTaskByID(ctx, "t1")
	require.NoError(t, err)

	assert.Equal(t, in.Title, got.Title)
	assert.True(t, in.Deadline.Equal(got.Deadline))
	assert.True(t, in.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, []string{"finance", "q4"}, got.Tags)
	assert.Equal(t, model.PriorityMedium, got.Priority)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
	require.NotNil(t, got.SourceDocumentID)
	assert.Equal(t, "circ-42", *got.SourceDocumentID)
}

func TestCreateTaskRejectsBlankTitle(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.CreateTask(context.Background(), testutil.Task("t1", "  ", base))

	var verr *todo.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestGetTaskByIDNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.GetTaskByID(context.Background(), "nope")

	var nf *todo.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestUpdateTaskPatch(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateTask(ctx, testutil.Task("t1", "Old", base)))

	title := "New"
	tags := []string{"a"}
	deadline := base.AddDate(0, 0, 3)
	require.NoError(t, s.UpdateTask(ctx, "t1", model.TaskPatch{
		Title:    &title,
		Tags:     &tags,
		Deadline: &deadline,
	}))

	got, err := s.GetTaskByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, []string{"a"}, got.Tags)
	assert.True(t, deadline.Equal(got.Deadline))
	assert.Equal(t, "emp001", got.AssignedTo, "absent fields untouched")
}

func TestUpdateTaskNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)
	title := "x"

	err := s.UpdateTask(context.Background(), "ghost", model.TaskPatch{Title: &title})
	var nf *todo.NotFoundError
	assert.ErrorAs(t, err, &nf)

	err = s.UpdateTask(context.Background(), "ghost", model.TaskPatch{})
	assert.ErrorAs(t, err, &nf)
}

func TestSetTaskCompletion(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateTask(ctx, testutil.Task("t1", "Ship", base)))

	at := base.Add(time.Hour)
	require.NoError(t, s.SetTaskCompletion(ctx, "t1", true, &at))

	got, err := s.GetTaskByID(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, at.Equal(*got.CompletedAt))

	require.NoError(t, s.SetTaskCompletion(ctx, "t1", false, nil))
	got, err = s.GetTaskByID(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)

	var nf *todo.NotFoundError
	assert.ErrorAs(t, s.SetTaskCompletion(ctx, "ghost", true, &at), &nf)
}

func TestDeleteTaskIsIdempotent(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateTask(ctx, testutil.Task("t1", "Gone", base)))

	require.NoError(t, s.DeleteTask(ctx, "t1"))
	require.NoError(t, s.DeleteTask(ctx, "t1"))

	tasks, err := s.GetTasks(ctx, store.TaskQuery{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestDeleteTasksBatch(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.CreateTask(ctx, testutil.Task(id, "task "+id, base)))
	}

	require.NoError(t, s.DeleteTasks(ctx, []string{"a", "c", "missing"}))
	require.NoError(t, s.DeleteTasks(ctx, nil))

	tasks, err := s.GetTasks(ctx, store.TaskQuery{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "b", tasks[0].ID)
}

func TestGetTasksQuery(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	mine := testutil.Task("mine", "Mine", base)
	delegated := testutil.Task("delegated", "Delegated", base.Add(time.Hour))
	delegated.AssignedTo = "emp002"
	foreign := testutil.Task("foreign", "Other company", base)
	foreign.CompanyCode = "GLOBEX"

	for _, tk := range []model.Task{delegated, mine, foreign} {
		require.NoError(t, s.CreateTask(ctx, tk))
	}

	all, err := s.GetTasks(ctx, store.TaskQuery{CompanyCode: "ACME"})
	require.NoError(t, err)
	assert.Equal(t, []string{"mine", "delegated"}, taskIDs(all), "oldest first")

	assigned, err := s.GetTasks(ctx, store.TaskQuery{CompanyCode: "ACME", AssignedTo: "emp002"})
	require.NoError(t, err)
	assert.Equal(t, []string{"delegated"}, taskIDs(assigned))

	created, err := s.GetTasks(ctx, store.TaskQuery{CreatedBy: "emp001"})
	require.NoError(t, err)
	assert.Len(t, created, 3)
}

func taskIDs(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
