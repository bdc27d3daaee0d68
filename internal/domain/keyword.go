package domain

import "time"

// Keyword is a store-scoped keyword research record. It has an independent
// lifecycle and is never mutated by the sync engine.
type Keyword struct {
	ID              int64     `json:"id"`
	StoreID         int64     `json:"store_id"`
	Keyword         string    `json:"keyword"`
	SearchVolume    int       `json:"search_volume"`
	DifficultyScore int       `json:"difficulty_score"`
	CurrentRank     int       `json:"current_rank"`
	TargetRank      int       `json:"target_rank"`
	CreatedAt       time.Time `json:"created_at"`
}
