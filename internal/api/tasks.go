package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nhle/loopwork/internal/model"
	"github.com/nhle/loopwork/internal/organizer"
	"github.com/nhle/loopwork/internal/todo"
)

// TaskService is the part of organizer.Service the HTTP layer needs.
type TaskService interface {
	Now() time.Time
	Board(query string, status model.StatusFilter) organizer.Board
	Create(ctx context.Context, in model.CreateTaskInput) (model.Task, error)
	Update(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error)
	Toggle(ctx context.Context, id string) (model.Task, error)
	Delete(ctx context.Context, id string) error
	EmployeeName(id string) string
	Settings() model.TaskSettings
	SaveSettings(ctx context.Context, settings model.TaskSettings) error
}

// TaskView is a task decorated for display.
type TaskView struct {
	model.Task
	DeadlineLabel string `json:"deadline_label"`
	Overdue       bool   `json:"overdue"`
	AssigneeName  string `json:"assignee_name"`
	CreatorName   string `json:"creator_name"`
}

// BoardView is the grouped task list returned by GET /tasks.
type BoardView struct {
	Urgent       []TaskView `json:"urgent"`
	Upcoming     []TaskView `json:"upcoming"`
	Later        []TaskView `json:"later"`
	Completed    []TaskView `json:"completed"`
	Active       int        `json:"active"`
	HiddenUrgent int        `json:"hidden_urgent"`
}

type Task struct {
	log *logrus.Entry
	svc TaskService
}

func NewTaskHandler(svc TaskService, log *logrus.Entry) *Task {
	return &Task{
		log: log,
		svc: svc,
	}
}

func (h *Task) EnrichRoutes(router *gin.Engine) {
	taskRoutes := router.Group("/tasks")
	taskRoutes.GET("", h.boardAction)
	taskRoutes.POST("", h.createTaskAction)
	taskRoutes.PATCH("/:taskID", h.updateTaskAction)
	taskRoutes.POST("/:taskID/toggle", h.toggleTaskAction)
	taskRoutes.DELETE("/:taskID", h.deleteTaskAction)

	router.GET("/settings", h.getSettingsAction)
	router.PUT("/settings", h.saveSettingsAction)
}

func (h *Task) boardAction(c *gin.Context) {
	const op = "api.Task.boardAction"
	log := h.log.WithField("operation", op)

	status, err := model.ParseStatusFilter(c.Query("status"))
	if err != nil {
		log.WithError(err).Debug("bad status filter")
		badRequest(c, err.Error())
		return
	}

	board := h.svc.Board(c.Query("q"), status)
	now := h.svc.Now()

	c.JSON(http.StatusOK, BoardView{
		Urgent:       h.views(board.Urgent, now),
		Upcoming:     h.views(board.Upcoming, now),
		Later:        h.views(board.Later, now),
		Completed:    h.views(board.Completed, now),
		Active:       board.Active,
		HiddenUrgent: board.HiddenUrgent,
	})
}

func (h *Task) createTaskAction(c *gin.Context) {
	const op = "api.Task.createTaskAction"
	log := h.log.WithField("operation", op)

	var in model.CreateTaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		log.WithError(err).Debug("invalid request body")
		badRequest(c, "invalid request structure")
		return
	}

	task, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		handleError(c, log, err)
		return
	}

	c.JSON(http.StatusCreated, h.view(task, h.svc.Now()))
}

func (h *Task) updateTaskAction(c *gin.Context) {
	const op = "api.Task.updateTaskAction"
	log := h.log.WithFields(logrus.Fields{"operation": op, "task_id": c.Param("taskID")})

	var patch model.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		log.WithError(err).Debug("invalid request body")
		badRequest(c, "invalid request structure")
		return
	}

	task, err := h.svc.Update(c.Request.Context(), c.Param("taskID"), patch)
	if err != nil {
		handleError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, h.view(task, h.svc.Now()))
}

func (h *Task) toggleTaskAction(c *gin.Context) {
	const op = "api.Task.toggleTaskAction"
	log := h.log.WithFields(logrus.Fields{"operation": op, "task_id": c.Param("taskID")})

	task, err := h.svc.Toggle(c.Request.Context(), c.Param("taskID"))
	if err != nil {
		handleError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, h.view(task, h.svc.Now()))
}

func (h *Task) deleteTaskAction(c *gin.Context) {
	const op = "api.Task.deleteTaskAction"
	log := h.log.WithFields(logrus.Fields{"operation": op, "task_id": c.Param("taskID")})

	if err := h.svc.Delete(c.Request.Context(), c.Param("taskID")); err != nil {
		handleError(c, log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Task) getSettingsAction(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Settings())
}

func (h *Task) saveSettingsAction(c *gin.Context) {
	const op = "api.Task.saveSettingsAction"
	log := h.log.WithField("operation", op)

	var settings model.TaskSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		log.WithError(err).Debug("invalid request body")
		badRequest(c, "invalid request structure")
		return
	}

	if err := h.svc.SaveSettings(c.Request.Context(), settings); err != nil {
		handleError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *Task) view(t model.Task, now time.Time) TaskView {
	return TaskView{
		Task:          t,
		DeadlineLabel: todo.DeadlineLabel(t.Deadline, now),
		Overdue:       todo.IsOverdue(t, now),
		AssigneeName:  h.svc.EmployeeName(t.AssignedTo),
		CreatorName:   h.svc.EmployeeName(t.CreatedBy),
	}
}

func (h *Task) views(tasks []model.Task, now time.Time) []TaskView {
	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, h.view(t, now))
	}
	return out
}
