package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/loopwork/internal/api"
	"github.com/nhle/loopwork/internal/model"
	"github.com/nhle/loopwork/internal/organizer"
	"github.com/nhle/loopwork/internal/store"
	"github.com/nhle/loopwork/tests/testutil"
)

var now = time.Date(2025, 10, 22, 10, 0, 0, 0, time.UTC)

type fixture struct {
	router *gin.Engine
	store  *store.SQLiteStore
	svc    *organizer.Service
}

func setup(t *testing.T, seed ...model.Task) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := testutil.NewTestStore(t)
	ctx := context.Background()
	for _, task := range seed {
		require.NoError(t, s.CreateTask(ctx, task))
	}
	require.NoError(t, s.UpsertEmployee(ctx, model.Employee{
		ID: "emp001", Name: "Mai Tran", CompanyCode: "ACME", UpdatedAt: now,
	}))

	logger, _ := logtest.NewNullLogger()
	log := logrus.NewEntry(logger)

	svc := organizer.New(s, log, organizer.Options{
		CompanyCode: "ACME",
		EmployeeID:  "emp001",
		Clock:       testutil.FixedClock(now),
	})
	require.NoError(t, svc.Load(ctx))

	router := api.NewRouter(log,
		api.NewTaskHandler(svc, log),
		api.NewEmployeeHandler(s, "ACME", log),
		api.NewLabelHandler(s, "ACME", log),
	)
	return fixture{router: router, store: s, svc: svc}
}

func (f fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func viewIDs(views []api.TaskView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func TestHealth(t *testing.T) {
	f := setup(t)
	w := f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBoard(t *testing.T) {
	f := setup(t,
		testutil.Task("t1", "Pay invoice", now.AddDate(0, 0, -2)),
		testutil.Task("t2", "Plan offsite", now.AddDate(0, 0, 1)),
		testutil.Task("t3", "Renew lease", now.AddDate(0, 0, 40)),
	)

	w := f.do(t, http.MethodGet, "/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)

	board := decode[api.BoardView](t, w)
	assert.Equal(t, []string{"t1"}, viewIDs(board.Urgent))
	assert.Equal(t, []string{"t2"}, viewIDs(board.Upcoming))
	assert.Equal(t, []string{"t3"}, viewIDs(board.Later))
	assert.Empty(t, board.Completed)
	assert.Equal(t, 3, board.Active)

	urgent := board.Urgent[0]
	assert.Equal(t, "2 days overdue", urgent.DeadlineLabel)
	assert.True(t, urgent.Overdue)
	assert.Equal(t, "Mai Tran", urgent.AssigneeName)
	assert.Equal(t, "Tomorrow", board.Upcoming[0].DeadlineLabel)
}

func TestBoardQuery(t *testing.T) {
	f := setup(t,
		testutil.Task("t1", "Pay invoice", now),
		testutil.Task("t2", "Plan offsite", now),
	)

	w := f.do(t, http.MethodGet, "/tasks?q=INVOICE&status=active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	board := decode[api.BoardView](t, w)
	assert.Equal(t, []string{"t1"}, viewIDs(board.Urgent))

	w = f.do(t, http.MethodGet, "/tasks?status=someday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTask(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/tasks", map[string]any{
		"title":    "Book flights",
		"priority": "High",
		"tags":     []string{"travel"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	view := decode[api.TaskView](t, w)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "Book flights", view.Title)
	assert.Equal(t, model.PriorityHigh, view.Priority)
	assert.Equal(t, []string{"travel"}, view.Tags)
	assert.Equal(t, "Today", view.DeadlineLabel)
	assert.Equal(t, "emp001", view.AssignedTo)

	stored, err := f.store.GetTaskByID(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, "Book flights", stored.Title)
}

func TestCreateTaskErrors(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name  string
		body  any
		field string
	}{
		{name: "invalid json", body: "{not json"},
		{name: "blank title", body: map[string]any{"title": "  "}, field: "title"},
		{name: "bad priority", body: map[string]any{"title": "x", "priority": "urgent"}, field: "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/tasks", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decode[api.ErrorResponse](t, w)
			assert.Equal(t, tt.field, resp.Field)
		})
	}

	assert.Empty(t, f.svc.Tasks())
}

func TestUpdateTask(t *testing.T) {
	f := setup(t, testutil.Task("t1", "Draft", now.AddDate(0, 0, 3)))

	w := f.do(t, http.MethodPatch, "/tasks/t1", map[string]any{"title": "Final", "notes": "v2"})
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[api.TaskView](t, w)
	assert.Equal(t, "Final", view.Title)
	assert.Equal(t, "v2", view.Notes)

	w = f.do(t, http.MethodPatch, "/tasks/missing", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPatch, "/tasks/t1", map[string]any{"title": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleTask(t *testing.T) {
	f := setup(t, testutil.Task("t1", "Ship", now))

	w := f.do(t, http.MethodPost, "/tasks/t1/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[api.TaskView](t, w)
	assert.True(t, view.Completed)
	assert.False(t, view.Overdue)

	board := decode[api.BoardView](t, f.do(t, http.MethodGet, "/tasks", nil))
	assert.Equal(t, []string{"t1"}, viewIDs(board.Completed))
	assert.Zero(t, board.Active)

	w = f.do(t, http.MethodPost, "/tasks/missing/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTask(t *testing.T) {
	f := setup(t, testutil.Task("t1", "Drop", now))

	w := f.do(t, http.MethodDelete, "/tasks/t1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodDelete, "/tasks/t1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	assert.Empty(t, f.svc.Tasks())
}

func TestSettings(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodGet, "/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.DefaultTaskSettings(), decode[model.TaskSettings](t, w))

	settings := model.DefaultTaskSettings()
	settings.MaxOverdueTasks = 5
	w = f.do(t, http.MethodPut, "/settings", settings)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, f.svc.Settings().MaxOverdueTasks)

	settings.DefaultPriority = "urgent"
	w = f.do(t, http.MethodPut, "/settings", settings)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployees(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodGet, "/employees", nil)
	require.Equal(t, http.StatusOK, w.Code)

	employees := decode[[]model.Employee](t, w)
	require.Len(t, employees, 1)
	assert.Equal(t, "Mai Tran", employees[0].Name)
}

func TestLabels(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPost, "/labels", map[string]any{"name": " Client ", "color": "#3B82F6"})
	require.Equal(t, http.StatusCreated, w.Code)
	label := decode[model.Label](t, w)
	assert.Equal(t, "Client", label.Name)
	assert.Equal(t, "ACME", label.CompanyCode)

	w = f.do(t, http.MethodPost, "/labels", map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "name", decode[api.ErrorResponse](t, w).Field)

	w = f.do(t, http.MethodGet, "/labels", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.Label](t, w), 1)

	w = f.do(t, http.MethodDelete, "/labels/"+label.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodDelete, "/labels/"+label.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
