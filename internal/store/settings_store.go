package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nhle/loopwork/internal/model"
)

// GetSettings returns a company's to-do settings, or the defaults when
// none have been saved.
func (s *SQLiteStore) GetSettings(ctx context.Context, companyCode string) (model.TaskSettings, error) {
	var settings model.TaskSettings
	err := s.db.GetContext(ctx, &settings, `
		SELECT default_priority, default_deadline, default_sort,
			auto_delete_completed_days, max_overdue_tasks
		FROM task_settings WHERE company_code = ?`,
		companyCode,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultTaskSettings(), nil
	}
	if err != nil {
		return model.TaskSettings{}, fmt.Errorf("getting settings for %s: %w", companyCode, err)
	}
	return settings, nil
}

// SaveSettings stores a company's to-do settings.
func (s *SQLiteStore) SaveSettings(ctx context.Context, companyCode string, settings model.TaskSettings) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO task_settings (
			company_code, default_priority, default_deadline, default_sort,
			auto_delete_completed_days, max_overdue_tasks
		) VALUES (?, ?, ?, ?, ?, ?)`,
		companyCode, string(settings.DefaultPriority), settings.DefaultDeadline,
		settings.DefaultSort, settings.AutoDeleteCompletedDays, settings.MaxOverdueTasks,
	)
	if err != nil {
		return fmt.Errorf("saving settings for %s: %w", companyCode, err)
	}
	return nil
}
