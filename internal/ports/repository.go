package ports

import (
	"context"

	"storeseo-core/internal/domain"
)

// StoreStats aggregates optimization progress for one store.
type StoreStats struct {
	TotalProducts     int64 `json:"total_products"`
	OptimizedProducts int64 `json:"optimized_products"`
}

// StoreRepository persists connected merchant accounts. Lookups return
// (nil, nil) when no row matches.
type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	GetByDomain(ctx context.Context, shopDomain string) (*domain.Store, error)
	Save(ctx context.Context, store *domain.Store) error
	Delete(ctx context.Context, id int64) error
}

// ProductRepository persists local product mirrors. The (store id, remote
// product id) pair is unique.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByRemoteID(ctx context.Context, storeID, remoteProductID int64) (*domain.Product, error)
	ListByStore(ctx context.Context, storeID int64, offset, limit int) ([]*domain.Product, int64, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	StatsByStore(ctx context.Context, storeID int64) (*StoreStats, error)
}

// ArticleRepository persists local blog article mirrors.
type ArticleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Article, error)
	GetByRemoteID(ctx context.Context, storeID, remoteArticleID int64) (*domain.Article, error)
	ListByStore(ctx context.Context, storeID int64, status domain.SyncStatus) ([]*domain.Article, error)
	Create(ctx context.Context, article *domain.Article) error
	Update(ctx context.Context, article *domain.Article) error
}

// KeywordRepository persists store-scoped keyword research records.
type KeywordRepository interface {
	Create(ctx context.Context, keyword *domain.Keyword) error
	ListByStore(ctx context.Context, storeID int64) ([]*domain.Keyword, error)
}

// TaskLedger is the append-only audit record of engine operations. Record is
// called exactly once per engine entry point; a failed write must never block
// the primary operation.
type TaskLedger interface {
	Record(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListRecent(ctx context.Context, taskType domain.TaskType, limit int) ([]*domain.Task, error)
}
