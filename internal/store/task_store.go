package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/loopwork/internal/model"
	"github.com/nhle/loopwork/internal/todo"
)

const taskColumns = `id, title, deadline, priority, notes, category, tags,
	completed, completed_at, created_by, assigned_to, created_at,
	company_code, source_document_id`

// taskRow mirrors the tasks table; tags are stored as a JSON array.
type taskRow struct {
	ID               string     `db:"id"`
	Title            string     `db:"title"`
	Deadline         time.Time  `db:"deadline"`
	Priority         string     `db:"priority"`
	Notes            string     `db:"notes"`
	Category         string     `db:"category"`
	Tags             string     `db:"tags"`
	Completed        int        `db:"completed"`
	CompletedAt      *time.Time `db:"completed_at"`
	CreatedBy        string     `db:"created_by"`
	AssignedTo       string     `db:"assigned_to"`
	CreatedAt        time.Time  `db:"created_at"`
	CompanyCode      string     `db:"company_code"`
	SourceDocumentID *string    `db:"source_document_id"`
}

func (r taskRow) toModel() (model.Task, error) {
	t := model.Task{
		ID:               r.ID,
		Title:            r.Title,
		Deadline:         r.Deadline,
		Priority:         model.Priority(r.Priority),
		Notes:            r.Notes,
		Category:         r.Category,
		Completed:        r.Completed != 0,
		CompletedAt:      r.CompletedAt,
		CreatedBy:        r.CreatedBy,
		AssignedTo:       r.AssignedTo,
		CreatedAt:        r.CreatedAt,
		CompanyCode:      r.CompanyCode,
		SourceDocumentID: r.SourceDocumentID,
	}
	tags, err := decodeTags(r.Tags)
	if err != nil {
		return model.Task{}, fmt.Errorf("unmarshaling tags for task %s: %w", r.ID, err)
	}
	t.Tags = tags
	return t, nil
}

// CreateTask inserts a fully built task record.
func (s *SQLiteStore) CreateTask(ctx context.Context, task model.Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return &todo.ValidationError{Field: "title", Reason: "must not be empty"}
	}

	tags, err := encodeTags(task.Tags)
	if err != nil {
		return fmt.Errorf("marshaling tags for task %s: %w", task.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Deadline.UTC(), string(task.Priority),
		task.Notes, task.Category, tags,
		boolToInt(task.Completed), utcPtr(task.CompletedAt),
		task.CreatedBy, task.AssignedTo, task.CreatedAt.UTC(),
		task.CompanyCode, task.SourceDocumentID,
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	return nil
}

// UpdateTask writes the fields present in patch to the task with the
// given ID. An empty patch only checks that the task exists.
func (s *SQLiteStore) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) error {
	sets, args, err := buildTaskPatch(patch)
	if err != nil {
		return err
	}

	if len(sets) == 0 {
		_, err := s.GetTaskByID(ctx, id)
		return err
	}

	args = append(args, id)
	result, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ?",
		args...,
	)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return &todo.NotFoundError{ID: id}
	}
	return nil
}

// SetTaskCompletion records a completion toggle.
func (s *SQLiteStore) SetTaskCompletion(
	ctx context.Context,
	id string,
	completed bool,
	completedAt *time.Time,
) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET completed = ?, completed_at = ? WHERE id = ?",
		boolToInt(completed), utcPtr(completedAt), id,
	)
	if err != nil {
		return fmt.Errorf("setting completion on task %s: %w", id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return &todo.NotFoundError{ID: id}
	}
	return nil
}

// DeleteTask removes a task by ID. Deleting a missing task is not an error.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	return nil
}

// DeleteTasks removes a batch of tasks in one transaction.
func (s *SQLiteStore) DeleteTasks(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In("DELETE FROM tasks WHERE id IN (?)", ids)
	if err != nil {
		return fmt.Errorf("building batch delete: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return fmt.Errorf("deleting %d tasks: %w", len(ids), err)
	}

	return tx.Commit()
}

// GetTaskByID retrieves a single task by ID.
func (s *SQLiteStore) GetTaskByID(ctx context.Context, id string) (*model.Task, error) {
	var rows []taskRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, &todo.NotFoundError{ID: id}
	}

	task, err := rows[0].toModel()
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTasks retrieves tasks matching q, oldest first.
func (s *SQLiteStore) GetTasks(ctx context.Context, q TaskQuery) ([]model.Task, error) {
	var conditions []string
	var args []interface{}

	if q.CompanyCode != "" {
		conditions = append(conditions, "company_code = ?")
		args = append(args, q.CompanyCode)
	}
	if q.AssignedTo != "" {
		conditions = append(conditions, "assigned_to = ?")
		args = append(args, q.AssignedTo)
	}
	if q.CreatedBy != "" {
		conditions = append(conditions, "created_by = ?")
		args = append(args, q.CreatedBy)
	}

	query := "SELECT " + taskColumns + " FROM tasks"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at ASC, id ASC"

	var rows []taskRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}

	tasks := make([]model.Task, 0, len(rows))
	for _, r := range rows {
		t, err := r.toModel()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// buildTaskPatch turns the present patch fields into SET clauses.
func buildTaskPatch(patch model.TaskPatch) ([]string, []interface{}, error) {
	var sets []string
	var args []interface{}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, strings.TrimSpace(*patch.Title))
	}
	if patch.Deadline != nil {
		sets = append(sets, "deadline = ?")
		args = append(args, patch.Deadline.UTC())
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, string(*patch.Priority))
	}
	if patch.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *patch.Notes)
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
	}
	if patch.Tags != nil {
		tags, err := encodeTags(*patch.Tags)
		if err != nil {
			return nil, nil, fmt.Errorf("marshaling tags: %w", err)
		}
		sets = append(sets, "tags = ?")
		args = append(args, tags)
	}
	if patch.AssignedTo != nil {
		sets = append(sets, "assigned_to = ?")
		args = append(args, *patch.AssignedTo)
	}
	if patch.SourceDocumentID != nil {
		sets = append(sets, "source_document_id = ?")
		args = append(args, *patch.SourceDocumentID)
	}

	return sets, args, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeTags(raw string) ([]string, error) {
	tags := []string{}
	if raw == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
