package repository

import (
	"context"
	"fmt"

	"storeseo-core/internal/domain"
	"storeseo-core/internal/infrastructure/repository/entity"
	"storeseo-core/internal/ports"

	"gorm.io/gorm"
)

type keywordRepository struct {
	db *gorm.DB
}

// NewKeywordRepository creates a gorm-backed keyword repository.
func NewKeywordRepository(db *gorm.DB) ports.KeywordRepository {
	return &keywordRepository{db: db}
}

func (r *keywordRepository) Create(ctx context.Context, keyword *domain.Keyword) error {
	row := entity.KeywordEntityFromDomain(keyword)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create keyword: %w", err)
	}
	keyword.ID = row.ID
	keyword.CreatedAt = row.CreatedAt
	return nil
}

func (r *keywordRepository) ListByStore(ctx context.Context, storeID int64) ([]*domain.Keyword, error) {
	var rows []entity.KeywordEntity
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("id desc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list keywords: %w", err)
	}

	keywords := make([]*domain.Keyword, 0, len(rows))
	for i := range rows {
		keywords = append(keywords, rows[i].ToDomain())
	}
	return keywords, nil
}
