package domain

import "time"

// PlanType identifies the subscription tier of a connected store.
type PlanType string

const (
	PlanFree PlanType = "free"
	PlanPro  PlanType = "pro"
)

// Store represents a single connected merchant account. It is the root of all
// owned entities; shop domains are unique across stores.
type Store struct {
	ID          int64             `json:"id"`
	ShopDomain  string            `json:"shop_domain"`
	AccessToken string            `json:"-"`
	PlanType    PlanType          `json:"plan_type"`
	Settings    map[string]string `json:"settings"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// DefaultSettings returns the settings blob assigned to a newly connected store.
func DefaultSettings() map[string]string {
	return map[string]string{
		"language":      "en",
		"auto_optimize": "false",
	}
}
