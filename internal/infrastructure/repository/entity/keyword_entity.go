package entity

import (
	"time"

	"storeseo-core/internal/domain"
)

// KeywordEntity is the relational shape of a keyword research record.
type KeywordEntity struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	StoreID         int64  `gorm:"not null;index"`
	Keyword         string `gorm:"not null"`
	SearchVolume    int
	DifficultyScore int
	CurrentRank     int
	TargetRank      int
	CreatedAt       time.Time
}

func (KeywordEntity) TableName() string { return "keywords" }

// ToDomain converts the row to a domain entity.
func (e *KeywordEntity) ToDomain() *domain.Keyword {
	return &domain.Keyword{
		ID:              e.ID,
		StoreID:         e.StoreID,
		Keyword:         e.Keyword,
		SearchVolume:    e.SearchVolume,
		DifficultyScore: e.DifficultyScore,
		CurrentRank:     e.CurrentRank,
		TargetRank:      e.TargetRank,
		CreatedAt:       e.CreatedAt,
	}
}

// KeywordEntityFromDomain converts a domain entity to its relational shape.
func KeywordEntityFromDomain(keyword *domain.Keyword) *KeywordEntity {
	return &KeywordEntity{
		ID:              keyword.ID,
		StoreID:         keyword.StoreID,
		Keyword:         keyword.Keyword,
		SearchVolume:    keyword.SearchVolume,
		DifficultyScore: keyword.DifficultyScore,
		CurrentRank:     keyword.CurrentRank,
		TargetRank:      keyword.TargetRank,
		CreatedAt:       keyword.CreatedAt,
	}
}
