package entity

import (
	"time"

	"storeseo-core/internal/domain"
)

// TaskEntity is the relational shape of one audit ledger row.
type TaskEntity struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	PublicID    string `gorm:"uniqueIndex;not null"`
	StoreID     *int64 `gorm:"index"`
	TaskType    string `gorm:"not null;index"`
	Status      string `gorm:"not null"`
	Language    string
	InputData   string
	OutputData  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

func (TaskEntity) TableName() string { return "seo_tasks" }

// ToDomain converts the row to a domain entity.
func (e *TaskEntity) ToDomain() *domain.Task {
	return &domain.Task{
		ID:          e.ID,
		PublicID:    e.PublicID,
		StoreID:     e.StoreID,
		TaskType:    domain.TaskType(e.TaskType),
		Status:      domain.TaskStatus(e.Status),
		Language:    e.Language,
		InputData:   e.InputData,
		OutputData:  e.OutputData,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		CompletedAt: e.CompletedAt,
	}
}

// TaskEntityFromDomain converts a domain entity to its relational shape.
func TaskEntityFromDomain(task *domain.Task) *TaskEntity {
	return &TaskEntity{
		ID:          task.ID,
		PublicID:    task.PublicID,
		StoreID:     task.StoreID,
		TaskType:    string(task.TaskType),
		Status:      string(task.Status),
		Language:    task.Language,
		InputData:   task.InputData,
		OutputData:  task.OutputData,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		CompletedAt: task.CompletedAt,
	}
}
