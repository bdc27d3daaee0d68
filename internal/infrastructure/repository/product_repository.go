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

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a gorm-backed product repository.
func NewProductRepository(db *gorm.DB) ports.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var row entity.ProductEntity
	err := r.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return row.ToDomain(), nil
}

func (r *productRepository) GetByRemoteID(ctx context.Context, storeID, remoteProductID int64) (*domain.Product, error) {
	var row entity.ProductEntity
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND remote_product_id = ?", storeID, remoteProductID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return row.ToDomain(), nil
}

func (r *productRepository) ListByStore(ctx context.Context, storeID int64, offset, limit int) ([]*domain.Product, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.ProductEntity{}).
		Where("store_id = ?", storeID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var rows []entity.ProductEntity
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*domain.Product, 0, len(rows))
	for i := range rows {
		products = append(products, rows[i].ToDomain())
	}
	return products, total, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	row := entity.ProductEntityFromDomain(product)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	product.ID = row.ID
	product.CreatedAt = row.CreatedAt
	product.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	row := entity.ProductEntityFromDomain(product)
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	product.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *productRepository) StatsByStore(ctx context.Context, storeID int64) (*ports.StoreStats, error) {
	var stats ports.StoreStats
	if err := r.db.WithContext(ctx).Model(&entity.ProductEntity{}).
		Where("store_id = ?", storeID).
		Count(&stats.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&entity.ProductEntity{}).
		Where("store_id = ? AND last_optimized IS NOT NULL", storeID).
		Count(&stats.OptimizedProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count optimized products: %w", err)
	}
	return &stats, nil
}
