package repository

import (
	"context"
	"errors"
	"fmt"

	"storeseo-core/internal/domain"
	"storeseo-core/internal/infrastructure/repository/entity"
	"storeseo-core/internal/ports"

	"gorm.io/gorm"
)

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a gorm-backed store repository.
func NewStoreRepository(db *gorm.DB) ports.StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	var row entity.StoreEntity
	err := r.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return row.ToDomain(), nil
}

func (r *storeRepository) GetByDomain(ctx context.Context, shopDomain string) (*domain.Store, error) {
	var row entity.StoreEntity
	err := r.db.WithContext(ctx).Where("shop_domain = ?", shopDomain).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get store: %w", err)
	}
	return row.ToDomain(), nil
}

func (r *storeRepository) Save(ctx context.Context, store *domain.Store) error {
	row := entity.StoreEntityFromDomain(store)
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return fmt.Errorf("failed to save store: %w", err)
	}
	store.ID = row.ID
	store.CreatedAt = row.CreatedAt
	store.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *storeRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&entity.StoreEntity{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}
	return nil
}
