package entity

import (
	"encoding/json"
	"time"

	"storeseo-core/internal/domain"
)

// ProductEntity is the relational shape of a local product mirror. The
// (store_id, remote_product_id) pair is unique so pull-sync upserts stay
// idempotent.
type ProductEntity struct {
	ID              int64 `gorm:"primaryKey;autoIncrement"`
	StoreID         int64 `gorm:"not null;uniqueIndex:idx_products_store_remote"`
	RemoteProductID int64 `gorm:"not null;uniqueIndex:idx_products_store_remote"`
	Title           string
	Description     string
	SEOTitle        string
	SEODescription  string
	Keywords        string
	SEOScore        float64
	LastOptimized   *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ProductEntity) TableName() string { return "products" }

// ToDomain converts the row to a domain entity.
func (e *ProductEntity) ToDomain() *domain.Product {
	var keywords []string
	if e.Keywords != "" {
		_ = json.Unmarshal([]byte(e.Keywords), &keywords)
	}
	return &domain.Product{
		ID:              e.ID,
		StoreID:         e.StoreID,
		RemoteProductID: e.RemoteProductID,
		Title:           e.Title,
		Description:     e.Description,
		SEOTitle:        e.SEOTitle,
		SEODescription:  e.SEODescription,
		Keywords:        keywords,
		SEOScore:        e.SEOScore,
		LastOptimized:   e.LastOptimized,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// ProductEntityFromDomain converts a domain entity to its relational shape.
func ProductEntityFromDomain(product *domain.Product) *ProductEntity {
	keywords := ""
	if len(product.Keywords) > 0 {
		if encoded, err := json.Marshal(product.Keywords); err == nil {
			keywords = string(encoded)
		}
	}
	return &ProductEntity{
		ID:              product.ID,
		StoreID:         product.StoreID,
		RemoteProductID: product.RemoteProductID,
		Title:           product.Title,
		Description:     product.Description,
		SEOTitle:        product.SEOTitle,
		SEODescription:  product.SEODescription,
		Keywords:        keywords,
		SEOScore:        product.SEOScore,
		LastOptimized:   product.LastOptimized,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
}
