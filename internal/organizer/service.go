package organizer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nhle/loopwork/internal/model"
	"github.com/nhle/loopwork/internal/store"
	"github.com/nhle/loopwork/internal/todo"
)

// unknownEmployee is shown for IDs missing from the directory.
const unknownEmployee = "Unknown"

// Options configures a Service.
type Options struct {
	CompanyCode string
	// EmployeeID is the signed-in employee. Empty disables scoping.
	EmployeeID string
	// Scope is todo.ScopeMine or todo.ScopeCreated.
	Scope string
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Board is the grouped to-do list shown to the user.
type Board struct {
	todo.Groups
	// Active counts open tasks in scope, ignoring the query and status filter.
	Active int `json:"active"`
	// HiddenUrgent counts urgent tasks dropped by the MaxOverdueTasks cap.
	HiddenUrgent int `json:"hidden_urgent"`
}

// Service owns a company's task collection. Mutations are serialized: each
// applies a todo transform, persists the change, then replaces the
// collection. Reads work on the current collection and never block on I/O.
type Service struct {
	store store.Store
	log   *logrus.Entry
	opts  Options

	mu        sync.RWMutex
	tasks     []model.Task
	settings  model.TaskSettings
	directory map[string]string
}

// New creates a Service. Call Load before serving reads.
func New(s store.Store, log *logrus.Entry, opts Options) *Service {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Scope == "" {
		opts.Scope = todo.ScopeMine
	}
	return &Service{
		store:     s,
		log:       log.WithField("company", opts.CompanyCode),
		opts:      opts,
		settings:  model.DefaultTaskSettings(),
		directory: map[string]string{},
	}
}

// Load replaces the in-memory state with the company's stored tasks,
// settings and employee directory.
func (s *Service) Load(ctx context.Context) error {
	const op = "organizer.Service.Load"

	tasks, err := s.store.GetTasks(ctx, store.TaskQuery{CompanyCode: s.opts.CompanyCode})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	settings, err := s.store.GetSettings(ctx, s.opts.CompanyCode)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	employees, err := s.store.GetEmployees(ctx, s.opts.CompanyCode)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	directory := make(map[string]string, len(employees))
	for _, e := range employees {
		directory[e.ID] = e.Name
	}

	s.mu.Lock()
	s.tasks = tasks
	s.settings = settings
	s.directory = directory
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"operation": op,
		"tasks":     len(tasks),
		"employees": len(employees),
	}).Debug("loaded task collection")
	return nil
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.opts.Clock()
}

// Tasks returns a copy of the tasks in scope, in stored order.
func (s *Service) Tasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scoped(s.tasks)
}

// Settings returns the company's to-do settings.
func (s *Service) Settings() model.TaskSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Board filters the tasks in scope, orders them by the company's default
// sort and groups them by deadline.
func (s *Service) Board(query string, status model.StatusFilter) Board {
	now := s.opts.Clock()

	s.mu.RLock()
	tasks := s.scoped(s.tasks)
	settings := s.settings
	s.mu.RUnlock()

	filtered := todo.Filter(tasks, query, status)
	groups := todo.Classify(todo.Sort(filtered, settings.DefaultSort), now)
	capped := groups.CapUrgent(settings.MaxOverdueTasks)

	return Board{
		Groups:       capped,
		Active:       todo.CountActive(tasks),
		HiddenUrgent: len(groups.Urgent) - len(capped.Urgent),
	}
}

// EmployeeName resolves an employee ID through the directory.
func (s *Service) EmployeeName(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if name, ok := s.directory[id]; ok {
		return name
	}
	return unknownEmployee
}

// Create adds a task. Blank fields are filled from the company settings,
// the signed-in employee and the company code.
func (s *Service) Create(ctx context.Context, in model.CreateTaskInput) (model.Task, error) {
	const op = "organizer.Service.Create"

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.Clock()
	if in.CompanyCode == "" {
		in.CompanyCode = s.opts.CompanyCode
	}
	if in.CreatedBy == "" {
		in.CreatedBy = s.opts.EmployeeID
	}
	in = todo.ApplyDefaults(in, s.settings, now)

	next, task, err := todo.Create(s.tasks, in, now)
	if err != nil {
		return model.Task{}, err
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return model.Task{}, fmt.Errorf("%s: %w", op, err)
	}
	s.tasks = next

	s.log.WithFields(logrus.Fields{
		"operation": op,
		"task_id":   task.ID,
	}).Info("task created")
	return task, nil
}

// Update applies a patch to a task and returns the updated task.
func (s *Service) Update(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	const op = "organizer.Service.Update"

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := todo.Update(s.tasks, id, patch)
	if err != nil {
		return model.Task{}, err
	}
	if err := s.store.UpdateTask(ctx, id, patch); err != nil {
		return model.Task{}, fmt.Errorf("%s: %w", op, err)
	}
	s.tasks = next

	task, _ := todo.Find(next, id)
	s.log.WithFields(logrus.Fields{
		"operation": op,
		"task_id":   id,
	}).Info("task updated")
	return task, nil
}

// Toggle flips a task between open and completed.
func (s *Service) Toggle(ctx context.Context, id string) (model.Task, error) {
	const op = "organizer.Service.Toggle"

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := todo.ToggleComplete(s.tasks, id, s.opts.Clock())
	if err != nil {
		return model.Task{}, err
	}
	task, _ := todo.Find(next, id)
	if err := s.store.SetTaskCompletion(ctx, id, task.Completed, task.CompletedAt); err != nil {
		return model.Task{}, fmt.Errorf("%s: %w", op, err)
	}
	s.tasks = next

	s.log.WithFields(logrus.Fields{
		"operation": op,
		"task_id":   id,
		"completed": task.Completed,
	}).Info("task toggled")
	return task, nil
}

// Delete removes a task. Unknown IDs are ignored.
func (s *Service) Delete(ctx context.Context, id string) error {
	const op = "organizer.Service.Delete"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.tasks = todo.Delete(s.tasks, id)

	s.log.WithFields(logrus.Fields{
		"operation": op,
		"task_id":   id,
	}).Info("task deleted")
	return nil
}

// PurgeCompleted deletes completed tasks older than the company's
// AutoDeleteCompletedDays setting and returns how many were removed.
func (s *Service) PurgeCompleted(ctx context.Context) (int, error) {
	const op = "organizer.Service.PurgeCompleted"

	s.mu.Lock()
	defer s.mu.Unlock()

	kept, purged := todo.PurgeCompleted(s.tasks, s.opts.Clock(), s.settings.AutoDeleteCompletedDays)
	if len(purged) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(purged))
	for _, t := range purged {
		ids = append(ids, t.ID)
	}
	if err := s.store.DeleteTasks(ctx, ids); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.tasks = kept

	s.log.WithFields(logrus.Fields{
		"operation": op,
		"purged":    len(purged),
	}).Info("purged completed tasks")
	return len(purged), nil
}

// SaveSettings stores new settings for the company.
func (s *Service) SaveSettings(ctx context.Context, settings model.TaskSettings) error {
	const op = "organizer.Service.SaveSettings"

	if !settings.DefaultPriority.Valid() {
		return &todo.ValidationError{Field: "default_priority", Reason: "must be High, Medium or Low"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveSettings(ctx, s.opts.CompanyCode, settings); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.settings = settings
	return nil
}

// scoped narrows tasks to the signed-in employee. Callers hold mu.
func (s *Service) scoped(tasks []model.Task) []model.Task {
	if s.opts.EmployeeID == "" {
		return append([]model.Task(nil), tasks...)
	}
	return todo.Scope(tasks, s.opts.EmployeeID, s.opts.Scope)
}
