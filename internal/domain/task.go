package domain

import "time"

// TaskType identifies which engine operation a ledger entry records.
type TaskType string

const (
	TaskTitleGeneration       TaskType = "title_generation"
	TaskDescriptionGeneration TaskType = "description_generation"
	TaskBlogGeneration        TaskType = "blog_generation"
	TaskKeywordGeneration     TaskType = "keyword_generation"
	TaskSEOAudit              TaskType = "seo_audit"
	TaskProductSync           TaskType = "product_sync"
	TaskArticleSync           TaskType = "article_sync"
)

// TaskStatus is the final disposition of a ledger entry.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	TaskFailed    TaskStatus = "failed"
)

// Task is one immutable row of the engine's audit ledger. Exactly one row is
// written per engine invocation; rows are never read back to drive behavior.
type Task struct {
	ID          int64      `json:"id"`
	PublicID    string     `json:"public_id"`
	StoreID     *int64     `json:"store_id,omitempty"`
	TaskType    TaskType   `json:"task_type"`
	Status      TaskStatus `json:"status"`
	Language    string     `json:"language"`
	InputData   string     `json:"input_data"`
	OutputData  string     `json:"output_data"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
