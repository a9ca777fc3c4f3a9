package todo

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/loopwork/internal/model"
)

// Create validates in, builds a new open task and returns it appended to a
// copy of tasks. A nil deadline becomes now; an empty priority becomes Medium.
func Create(
	tasks []model.Task,
	in model.CreateTaskInput,
	now time.Time,
) ([]model.Task, model.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, model.Task{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if err := validatePriority(priority); err != nil {
		return nil, model.Task{}, err
	}

	deadline := now
	if in.Deadline != nil {
		deadline = *in.Deadline
	}

	task := model.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Deadline:    deadline,
		Priority:    priority,
		Notes:       in.Notes,
		Category:    in.Category,
		Tags:        copyTags(in.Tags),
		CreatedBy:   in.CreatedBy,
		AssignedTo:  in.AssignedTo,
		CreatedAt:   now,
		CompanyCode: in.CompanyCode,
	}
	if in.SourceDocumentID != nil {
		id := *in.SourceDocumentID
		task.SourceDocumentID = &id
	}

	out := make([]model.Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	out = append(out, task)
	return out, task, nil
}

// Update returns a copy of tasks in which the task with the given ID has
// the patch applied. Fields absent from the patch are preserved.
func Update(tasks []model.Task, id string, patch model.TaskPatch) ([]model.Task, error) {
	i := indexOf(tasks, id)
	if i < 0 {
		return nil, &NotFoundError{ID: id}
	}
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}

	out := append([]model.Task(nil), tasks...)
	out[i] = patch.Apply(out[i])
	if patch.Title != nil {
		out[i].Title = strings.TrimSpace(out[i].Title)
	}
	return out, nil
}

// ValidatePatch checks the fields a patch sets against task invariants.
func ValidatePatch(patch model.TaskPatch) error {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if patch.Priority != nil {
		return validatePriority(*patch.Priority)
	}
	return nil
}

// ToggleComplete flips the completion state of the task with the given ID.
// Completing sets CompletedAt to now; reopening clears it.
func ToggleComplete(tasks []model.Task, id string, now time.Time) ([]model.Task, error) {
	i := indexOf(tasks, id)
	if i < 0 {
		return nil, &NotFoundError{ID: id}
	}

	out := append([]model.Task(nil), tasks...)
	t := out[i]
	t.Completed = !t.Completed
	if t.Completed {
		at := now
		t.CompletedAt = &at
	} else {
		t.CompletedAt = nil
	}
	out[i] = t
	return out, nil
}

// Delete returns tasks without the task with the given ID. Deleting an
// unknown ID is a no-op.
func Delete(tasks []model.Task, id string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the task with the given ID.
func Find(tasks []model.Task, id string) (model.Task, bool) {
	i := indexOf(tasks, id)
	if i < 0 {
		return model.Task{}, false
	}
	return tasks[i], true
}

func indexOf(tasks []model.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func validatePriority(p model.Priority) error {
	if p.Valid() {
		return nil
	}
	return &ValidationError{Field: "priority", Reason: "must be High, Medium or Low"}
}

func copyTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return append([]string(nil), tags...)
}
