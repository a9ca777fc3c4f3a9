package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/loopwork/internal/model"
)

// ErrEmployeeNotFound is returned when a directory lookup misses.
var ErrEmployeeNotFound = errors.New("employee not found")

const employeeColumns = "id, name, email, department, position, company_code, updated_at"

// UpsertEmployee inserts or replaces a directory entry.
func (s *SQLiteStore) UpsertEmployee(ctx context.Context, e model.Employee) error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("employee id must not be empty")
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("employee name must not be empty")
	}
	e.UpdatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO employees (`+employeeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Email, e.Department, e.Position, e.CompanyCode, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting employee %s: %w", e.ID, err)
	}
	return nil
}

// GetEmployees returns a company's directory ordered by name.
func (s *SQLiteStore) GetEmployees(ctx context.Context, companyCode string) ([]model.Employee, error) {
	employees := []model.Employee{}
	err := s.db.SelectContext(ctx, &employees,
		"SELECT "+employeeColumns+" FROM employees WHERE company_code = ? ORDER BY name",
		companyCode,
	)
	if err != nil {
		return nil, fmt.Errorf("querying employees: %w", err)
	}
	return employees, nil
}

// GetEmployeeByID looks up a single directory entry.
func (s *SQLiteStore) GetEmployeeByID(ctx context.Context, id string) (*model.Employee, error) {
	var e model.Employee
	err := s.db.GetContext(ctx, &e,
		"SELECT "+employeeColumns+" FROM employees WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("getting employee %s: %w", id, ErrEmployeeNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting employee %s: %w", id, err)
	}
	return &e, nil
}
