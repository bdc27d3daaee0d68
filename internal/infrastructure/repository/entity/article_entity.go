package entity

import (
	"encoding/json"
	"time"

	"storeseo-core/internal/domain"
)

// ArticleEntity is the relational shape of a blog article. The sync state is
// flattened into a status column plus a nullable remote article id; the two
// are reassembled into a domain.SyncState on read so a synced row without a
// remote id degrades to a draft instead of producing an impossible state.
type ArticleEntity struct {
	ID              int64 `gorm:"primaryKey;autoIncrement"`
	StoreID         int64 `gorm:"not null;uniqueIndex:idx_articles_store_remote"`
	RemoteBlogID    int64
	RemoteArticleID *int64 `gorm:"uniqueIndex:idx_articles_store_remote"`
	Status          string `gorm:"not null;default:draft;index"`
	Title           string
	Content         string
	Summary         string
	Tags            string
	Language        string
	SEOScore        float64
	WordCount       int
	PublishedAt     *time.Time
	SyncedAt        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ArticleEntity) TableName() string { return "blog_articles" }

// ToDomain converts the row to a domain entity.
func (e *ArticleEntity) ToDomain() *domain.Article {
	state := domain.LocalOnly()
	if e.Status == string(domain.StatusSynced) && e.RemoteArticleID != nil {
		if s, err := domain.Synced(*e.RemoteArticleID); err == nil {
			state = s
		}
	}

	var tags []string
	if e.Tags != "" {
		_ = json.Unmarshal([]byte(e.Tags), &tags)
	}

	return &domain.Article{
		ID:           e.ID,
		StoreID:      e.StoreID,
		RemoteBlogID: e.RemoteBlogID,
		Sync:         state,
		Title:        e.Title,
		Content:      e.Content,
		Summary:      e.Summary,
		Tags:         tags,
		Language:     e.Language,
		SEOScore:     e.SEOScore,
		WordCount:    e.WordCount,
		PublishedAt:  e.PublishedAt,
		SyncedAt:     e.SyncedAt,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// ArticleEntityFromDomain converts a domain entity to its relational shape.
func ArticleEntityFromDomain(article *domain.Article) *ArticleEntity {
	var remoteID *int64
	if id, ok := article.Sync.RemoteID(); ok {
		remoteID = &id
	}

	tags := ""
	if len(article.Tags) > 0 {
		if encoded, err := json.Marshal(article.Tags); err == nil {
			tags = string(encoded)
		}
	}

	return &ArticleEntity{
		ID:              article.ID,
		StoreID:         article.StoreID,
		RemoteBlogID:    article.RemoteBlogID,
		RemoteArticleID: remoteID,
		Status:          string(article.Sync.Status()),
		Title:           article.Title,
		Content:         article.Content,
		Summary:         article.Summary,
		Tags:            tags,
		Language:        article.Language,
		SEOScore:        article.SEOScore,
		WordCount:       article.WordCount,
		PublishedAt:     article.PublishedAt,
		SyncedAt:        article.SyncedAt,
		CreatedAt:       article.CreatedAt,
		UpdatedAt:       article.UpdatedAt,
	}
}
