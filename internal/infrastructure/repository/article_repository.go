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

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a gorm-backed article repository.
func NewArticleRepository(db *gorm.DB) ports.ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	var row entity.ArticleEntity
	err := r.db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return row.ToDomain(), nil
}

func (r *articleRepository) GetByRemoteID(ctx context.Context, storeID, remoteArticleID int64) (*domain.Article, error) {
	var row entity.ArticleEntity
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND remote_article_id = ?", storeID, remoteArticleID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return row.ToDomain(), nil
}

func (r *articleRepository) ListByStore(ctx context.Context, storeID int64, status domain.SyncStatus) ([]*domain.Article, error) {
	query := r.db.WithContext(ctx).Where("store_id = ?", storeID)
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var rows []entity.ArticleEntity
	if err := query.Order("id desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	articles := make([]*domain.Article, 0, len(rows))
	for i := range rows {
		articles = append(articles, rows[i].ToDomain())
	}
	return articles, nil
}

func (r *articleRepository) Create(ctx context.Context, article *domain.Article) error {
	row := entity.ArticleEntityFromDomain(article)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	article.ID = row.ID
	article.CreatedAt = row.CreatedAt
	article.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *articleRepository) Update(ctx context.Context, article *domain.Article) error {
	row := entity.ArticleEntityFromDomain(article)
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	article.UpdatedAt = row.UpdatedAt
	return nil
}
