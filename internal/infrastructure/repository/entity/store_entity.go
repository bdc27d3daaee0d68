package entity

import (
	"encoding/json"
	"time"

	"storeseo-core/internal/domain"
)

// StoreEntity is the relational shape of a connected store. Settings are
// persisted as a JSON blob.
type StoreEntity struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	ShopDomain  string `gorm:"uniqueIndex;not null"`
	AccessToken string `gorm:"not null"`
	PlanType    string `gorm:"not null;default:free"`
	Settings    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (StoreEntity) TableName() string { return "stores" }

// ToDomain converts the row to a domain entity.
func (e *StoreEntity) ToDomain() *domain.Store {
	settings := map[string]string{}
	if e.Settings != "" {
		// A corrupt blob degrades to empty settings rather than failing reads.
		_ = json.Unmarshal([]byte(e.Settings), &settings)
	}
	return &domain.Store{
		ID:          e.ID,
		ShopDomain:  e.ShopDomain,
		AccessToken: e.AccessToken,
		PlanType:    domain.PlanType(e.PlanType),
		Settings:    settings,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// StoreEntityFromDomain converts a domain entity to its relational shape.
func StoreEntityFromDomain(store *domain.Store) *StoreEntity {
	settings := ""
	if len(store.Settings) > 0 {
		if encoded, err := json.Marshal(store.Settings); err == nil {
			settings = string(encoded)
		}
	}
	return &StoreEntity{
		ID:          store.ID,
		ShopDomain:  store.ShopDomain,
		AccessToken: store.AccessToken,
		PlanType:    string(store.PlanType),
		Settings:    settings,
		CreatedAt:   store.CreatedAt,
		UpdatedAt:   store.UpdatedAt,
	}
}
