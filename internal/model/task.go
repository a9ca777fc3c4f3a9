package model

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the informational urgency a user assigns to a task.
type Priority string

// Priority constants.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority parses a case-insensitive priority name.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Rank orders priorities for sorting (lower = more important).
// Unknown values sort after Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Valid reports whether p is one of the priority constants.
func (p Priority) Valid() bool {
	return p.Rank() < 3
}

// StatusFilter selects tasks by completion state.
type StatusFilter string

// Status filter constants.
const (
	StatusAll       StatusFilter = "All"
	StatusActive    StatusFilter = "Active"
	StatusCompleted StatusFilter = "Completed"
)

// ParseStatusFilter parses a case-insensitive status filter.
// An empty string selects StatusAll.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return StatusAll, nil
	case "active":
		return StatusActive, nil
	case "completed":
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("unknown status filter %q", s)
}

// Task is a unit of work in the to-do list.
type Task struct {
	ID       string    `json:"id" db:"id"`
	Title    string    `json:"title" db:"title"`
	Deadline time.Time `json:"deadline" db:"deadline"`
	Priority Priority  `json:"priority" db:"priority"`
	Notes    string    `json:"notes" db:"notes"`
	Category string    `json:"category" db:"category"`
	Tags     []string  `json:"tags" db:"-"`

	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`

	// CreatedBy and AssignedTo are employee IDs resolved by the directory.
	CreatedBy  string `json:"created_by" db:"created_by"`
	AssignedTo string `json:"assigned_to" db:"assigned_to"`

	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	CompanyCode string    `json:"company_code" db:"company_code"`

	// SourceDocumentID points back at a circulation report, if any.
	SourceDocumentID *string `json:"source_document_id,omitempty" db:"source_document_id"`
}

// CreateTaskInput is the payload accepted when creating a task.
// A nil Deadline or empty Priority is filled in from defaults.
type CreateTaskInput struct {
	Title            string     `json:"title"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Priority         Priority   `json:"priority,omitempty"`
	Notes            string     `json:"notes"`
	Category         string     `json:"category"`
	Tags             []string   `json:"tags"`
	CreatedBy        string     `json:"created_by"`
	AssignedTo       string     `json:"assigned_to"`
	CompanyCode      string     `json:"company_code"`
	SourceDocumentID *string    `json:"source_document_id,omitempty"`
}

// TaskPatch is a partial update. Nil fields are left untouched.
// Identity, creation and completion fields are not patchable.
type TaskPatch struct {
	Title            *string    `json:"title,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Priority         *Priority  `json:"priority,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	Category         *string    `json:"category,omitempty"`
	Tags             *[]string  `json:"tags,omitempty"`
	AssignedTo       *string    `json:"assigned_to,omitempty"`
	SourceDocumentID *string    `json:"source_document_id,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Deadline == nil && p.Priority == nil &&
		p.Notes == nil && p.Category == nil && p.Tags == nil &&
		p.AssignedTo == nil && p.SourceDocumentID == nil
}

// Apply returns a copy of t with the patch fields written over it.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Deadline != nil {
		t.Deadline = *p.Deadline
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Tags != nil {
		t.Tags = append([]string{}, (*p.Tags)...)
	}
	if p.AssignedTo != nil {
		t.AssignedTo = *p.AssignedTo
	}
	if p.SourceDocumentID != nil {
		id := *p.SourceDocumentID
		t.SourceDocumentID = &id
	}
	return t
}
