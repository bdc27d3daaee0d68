package domain

import "time"

// Product is the local mirror of one remote catalog item. The pair
// (StoreID, RemoteProductID) is unique; SEOScore stays within [0,100].
type Product struct {
	ID              int64      `json:"id"`
	StoreID         int64      `json:"store_id"`
	RemoteProductID int64      `json:"remote_product_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	SEOTitle        string     `json:"seo_title"`
	SEODescription  string     `json:"seo_description"`
	Keywords        []string   `json:"keywords"`
	SEOScore        float64    `json:"seo_score"`
	LastOptimized   *time.Time `json:"last_optimized,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// HasSEOContent reports whether the product carries derived SEO fields ready
// to be pushed to the remote platform.
func (p Product) HasSEOContent() bool {
	return p.SEOTitle != "" && p.SEODescription != ""
}

// ApplySEO returns a copy of the product with new derived SEO content. The
// last-optimized stamp is only set once the push/commit succeeds, so it is
// left untouched here.
func (p Product) ApplySEO(title, description string, keywords []string, score float64) Product {
	p.SEOTitle = title
	p.SEODescription = description
	p.Keywords = keywords
	p.SEOScore = clampScore(score)
	return p
}

// MarkOptimized stamps the product after a successful remote push.
func (p Product) MarkOptimized(now time.Time) Product {
	t := now
	p.LastOptimized = &t
	return p
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
