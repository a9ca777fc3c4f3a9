package todo

import "github.com/nhle/loopwork/internal/model"

// Task list scopes for an employee.
const (
	// ScopeMine selects tasks assigned to the employee.
	ScopeMine = "mine"
	// ScopeCreated selects tasks the employee created for someone else.
	ScopeCreated = "created"
)

// Scope returns the tasks visible to employeeID under the given scope.
// Self-assigned tasks only show up under ScopeMine.
func Scope(tasks []model.Task, employeeID, scope string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		switch scope {
		case ScopeCreated:
			if t.CreatedBy == employeeID && t.AssignedTo != employeeID {
				out = append(out, t)
			}
		default:
			if t.AssignedTo == employeeID {
				out = append(out, t)
			}
		}
	}
	return out
}
