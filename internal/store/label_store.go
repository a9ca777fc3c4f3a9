package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/loopwork/internal/model"
	"github.com/nhle/loopwork/internal/todo"
)

// ErrLabelNotFound is returned when deleting a label that does not exist.
var ErrLabelNotFound = errors.New("label not found")

// CreateLabel inserts a new label and returns it with its ID and
// creation time filled in.
func (s *SQLiteStore) CreateLabel(ctx context.Context, label model.Label) (model.Label, error) {
	label.Name = strings.TrimSpace(label.Name)
	if label.Name == "" {
		return model.Label{}, &todo.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if label.ID == "" {
		label.ID = uuid.New().String()
	}
	label.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO labels (id, name, color, company_code, created_at) VALUES (?, ?, ?, ?, ?)",
		label.ID, label.Name, label.Color, label.CompanyCode, label.CreatedAt,
	)
	if err != nil {
		return model.Label{}, fmt.Errorf("creating label: %w", err)
	}
	return label, nil
}

// GetLabels returns a company's labels ordered by name.
func (s *SQLiteStore) GetLabels(ctx context.Context, companyCode string) ([]model.Label, error) {
	labels := []model.Label{}
	err := s.db.SelectContext(ctx, &labels,
		"SELECT id, name, color, company_code, created_at FROM labels WHERE company_code = ? ORDER BY name",
		companyCode,
	)
	if err != nil {
		return nil, fmt.Errorf("querying labels: %w", err)
	}
	return labels, nil
}

// DeleteLabel removes a label by ID.
func (s *SQLiteStore) DeleteLabel(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM labels WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting label %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("deleting label %s: %w", id, ErrLabelNotFound)
	}
	return nil
}
