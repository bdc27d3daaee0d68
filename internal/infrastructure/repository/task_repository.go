package repository

import (
	"context"
	"errors"
	"fmt"

	"storeseo-core/internal/domain"
	"storeseo-core/internal/infrastructure/repository/entity"
	"storeseo-core/internal/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a gorm-backed task ledger.
func NewTaskRepository(db *gorm.DB) ports.TaskLedger {
	return &taskRepository{db: db}
}

func (r *taskRepository) Record(ctx context.Context, task *domain.Task) error {
	if task.PublicID == "" {
		// Opaque external reference, safe to hand to API consumers.
		task.PublicID = uuid.NewString()
	}
	row := entity.TaskEntityFromDomain(task)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to record task: %w", err)
	}
	task.ID = row.ID
	task.CreatedAt = row.CreatedAt
	task.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var row entity.TaskEntity
	err := r.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return row.ToDomain(), nil
}

func (r *taskRepository) ListRecent(ctx context.Context, taskType domain.TaskType, limit int) ([]*domain.Task, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	query := r.db.WithContext(ctx).Order("id desc").Limit(limit)
	if taskType != "" {
		query = query.Where("task_type = ?", string(taskType))
	}

	var rows []entity.TaskEntity
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(rows))
	for i := range rows {
		tasks = append(tasks, rows[i].ToDomain())
	}
	return tasks, nil
}
