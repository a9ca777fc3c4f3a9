package store

import (
	"context"
	"time"

	"github.com/nhle/loopwork/internal/model"
)

// TaskQuery selects the tasks to load for a company. Empty fields are
// not filtered on.
type TaskQuery struct {
	CompanyCode string
	AssignedTo  string
	CreatedBy   string
}

// Store defines the persistence interface for tasks and the records the
// to-do list reads alongside them.
type Store interface {
	// === Tasks ===

	CreateTask(ctx context.Context, task model.Task) error
	UpdateTask(ctx context.Context, id string, patch model.TaskPatch) error
	SetTaskCompletion(ctx context.Context, id string, completed bool, completedAt *time.Time) error
	DeleteTask(ctx context.Context, id string) error
	DeleteTasks(ctx context.Context, ids []string) error
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)
	GetTasks(ctx context.Context, q TaskQuery) ([]model.Task, error)

	// === Labels ===

	CreateLabel(ctx context.Context, label model.Label) (model.Label, error)
	GetLabels(ctx context.Context, companyCode string) ([]model.Label, error)
	DeleteLabel(ctx context.Context, id string) error

	// === Employee directory ===

	UpsertEmployee(ctx context.Context, e model.Employee) error
	GetEmployees(ctx context.Context, companyCode string) ([]model.Employee, error)
	GetEmployeeByID(ctx context.Context, id string) (*model.Employee, error)

	// === Settings ===

	GetSettings(ctx context.Context, companyCode string) (model.TaskSettings, error)
	SaveSettings(ctx context.Context, companyCode string, settings model.TaskSettings) error
}

var _ Store = (*SQLiteStore)(nil)
