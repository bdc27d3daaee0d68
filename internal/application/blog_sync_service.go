package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storeseo-core/internal/domain"
	"storeseo-core/internal/ports"
	"storeseo-core/internal/seo"

	"github.com/rs/zerolog"
)

// blogCacheTTL bounds how long the remote blog listing is served from cache.
const blogCacheTTL = 5 * time.Minute

// BlogSyncService manages the lifecycle of blog articles: local drafting,
// publishing to the remote platform, pull-sync of remotely authored posts and
// the transitions between draft and synced states.
type BlogSyncService struct {
	stores        ports.StoreRepository
	articles      ports.ArticleRepository
	commerce      ports.CommerceClient
	encryptionSvc ports.EncryptionService
	cache         ports.Cache
	ledger        ports.TaskLedger
	detector      *seo.Detector
	logger        zerolog.Logger
}

// NewBlogSyncService creates a new blog sync orchestrator.
func NewBlogSyncService(
	stores ports.StoreRepository,
	articles ports.ArticleRepository,
	commerce ports.CommerceClient,
	encryptionSvc ports.EncryptionService,
	cache ports.Cache,
	ledger ports.TaskLedger,
	detector *seo.Detector,
	logger zerolog.Logger,
) *BlogSyncService {
	return &BlogSyncService{
		stores:        stores,
		articles:      articles,
		commerce:      commerce,
		encryptionSvc: encryptionSvc,
		cache:         cache,
		ledger:        ledger,
		detector:      detector,
		logger:        logger,
	}
}

// AvailableBlogs lists the remote blogs articles can be published into. The
// listing is cached per shop; cache errors degrade to a remote fetch.
func (s *BlogSyncService) AvailableBlogs(ctx context.Context, storeID int64) ([]ports.RemoteBlog, error) {
	store, token, err := loadCredentials(ctx, s.stores, s.encryptionSvc, storeID)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("blogs:%s", store.ShopDomain)
	if cached, ok, err := s.cache.Get(ctx, cacheKey); err != nil {
		s.logger.Warn().Err(err).Str("key", cacheKey).Msg("Blog cache read failed")
	} else if ok {
		var blogs []ports.RemoteBlog
		if err := json.Unmarshal([]byte(cached), &blogs); err == nil {
			return blogs, nil
		}
	}

	blogs, err := s.commerce.GetBlogs(ctx, store.ShopDomain, token)
	if err != nil {
		return nil, &domain.RemoteUnavailableError{Op: "list blogs", Err: err}
	}

	if payload, err := json.Marshal(blogs); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(payload), blogCacheTTL); err != nil {
			s.logger.Warn().Err(err).Str("key", cacheKey).Msg("Blog cache write failed")
		}
	}
	return blogs, nil
}

// CreateArticleInput carries a new local draft.
type CreateArticleInput struct {
	StoreID      int64    `json:"store_id"`
	RemoteBlogID int64    `json:"remote_blog_id"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Summary      string   `json:"summary"`
	Tags         []string `json:"tags"`
	Language     string   `json:"language"`
}

// CreateArticle stores a new article as a local draft. Nothing is sent to the
// remote platform until the article is published.
func (s *BlogSyncService) CreateArticle(ctx context.Context, input CreateArticleInput) (*domain.Article, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "title is required"}
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, &domain.ValidationError{Field: "content", Reason: "content is required"}
	}

	language := input.Language
	if language == "" {
		language, _ = s.detector.Detect(input.Content)
	} else if !seo.IsSupported(language) {
		return nil, &domain.ValidationError{Field: "language", Reason: fmt.Sprintf("unsupported language %q", language)}
	}

	article := &domain.Article{
		StoreID:      input.StoreID,
		RemoteBlogID: input.RemoteBlogID,
		Sync:         domain.LocalOnly(),
		Title:        input.Title,
		Content:      input.Content,
		Summary:      input.Summary,
		Tags:         input.Tags,
		Language:     language,
		SEOScore:     float64(seo.ScoreContent(input.Title, input.Summary, input.Content)),
		WordCount:    seo.WordCount(input.Content),
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	s.logger.Info().
		Int64("article_id", article.ID).
		Int64("store_id", article.StoreID).
		Str("language", article.Language).
		Msg("Created local article draft")
	return article, nil
}

// PublishArticle creates the remote record for a draft and transitions it to
// the synced state. Publishing an already synced article is rejected before
// any remote call is made.
func (s *BlogSyncService) PublishArticle(ctx context.Context, articleID int64) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up article: %w", err)
	}
	if article == nil {
		return nil, &domain.NotFoundError{Resource: "article", ID: articleID}
	}
	if article.Sync.IsSynced() {
		return nil, &domain.StateConflictError{Op: "publish", Reason: "article is already published to the remote platform"}
	}

	store, token, err := loadCredentials(ctx, s.stores, s.encryptionSvc, article.StoreID)
	if err != nil {
		return nil, err
	}

	remote, err := s.commerce.CreateArticle(ctx, store.ShopDomain, token, article.RemoteBlogID, ports.ArticleDraft{
		Title:   article.Title,
		Body:    article.Content,
		Summary: article.Summary,
		Tags:    article.Tags,
	})
	if err != nil {
		s.recordArticleSync(ctx, article.StoreID, "publish", articleID, domain.TaskFailed, err)
		return nil, &domain.RemoteUnavailableError{Op: "publish article", Err: err}
	}

	published, err := article.Publish(remote.ID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.articles.Update(ctx, &published); err != nil {
		// The remote record exists but the local state does not reflect it;
		// a later pull-sync reconciles the row.
		return nil, &domain.PersistenceFailure{Op: "publish article", Err: err}
	}

	s.logger.Info().
		Int64("article_id", published.ID).
		Int64("remote_article_id", remote.ID).
		Msg("Published article to remote platform")

	s.recordArticleSync(ctx, published.StoreID, "publish", articleID, domain.TaskCompleted, nil)
	return &published, nil
}

// UpdateArticleInput carries edits to an existing article. Nil fields are
// left unchanged.
type UpdateArticleInput struct {
	ArticleID int64     `json:"article_id"`
	Title     *string   `json:"title,omitempty"`
	Content   *string   `json:"content,omitempty"`
	Summary   *string   `json:"summary,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
}

// UpdateArticle commits the edit locally first, then pushes it to the remote
// platform when the article is synced. A failed push leaves the local edit in
// place and reports the remote failure; the synced-at stamp is only advanced
// after the remote accepts the update.
func (s *BlogSyncService) UpdateArticle(ctx context.Context, input UpdateArticleInput) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, input.ArticleID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up article: %w", err)
	}
	if article == nil {
		return nil, &domain.NotFoundError{Resource: "article", ID: input.ArticleID}
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, &domain.ValidationError{Field: "title", Reason: "title cannot be empty"}
		}
		article.Title = *input.Title
	}
	if input.Content != nil {
		if strings.TrimSpace(*input.Content) == "" {
			return nil, &domain.ValidationError{Field: "content", Reason: "content cannot be empty"}
		}
		article.Content = *input.Content
	}
	if input.Summary != nil {
		article.Summary = *input.Summary
	}
	if input.Tags != nil {
		article.Tags = *input.Tags
	}
	article.WordCount = seo.WordCount(article.Content)
	article.SEOScore = float64(seo.ScoreContent(article.Title, article.Summary, article.Content))

	if err := s.articles.Update(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to persist article edit: %w", err)
	}

	remoteID, synced := article.Sync.RemoteID()
	if !synced {
		return article, nil
	}

	store, token, err := loadCredentials(ctx, s.stores, s.encryptionSvc, article.StoreID)
	if err != nil {
		return article, err
	}

	_, err = s.commerce.UpdateArticle(ctx, store.ShopDomain, token, article.RemoteBlogID, remoteID, ports.ArticleDraft{
		Title:   article.Title,
		Body:    article.Content,
		Summary: article.Summary,
		Tags:    article.Tags,
	})
	if err != nil {
		s.recordArticleSync(ctx, article.StoreID, "update", article.ID, domain.TaskFailed, err)
		return article, &domain.RemoteUnavailableError{Op: "update article", Err: err}
	}

	restamped, err := article.Resync(time.Now().UTC())
	if err != nil {
		return article, err
	}
	if err := s.articles.Update(ctx, &restamped); err != nil {
		return article, &domain.PersistenceFailure{Op: "update article", Err: err}
	}

	s.recordArticleSync(ctx, restamped.StoreID, "update", restamped.ID, domain.TaskCompleted, nil)
	return &restamped, nil
}

// UnpublishArticle deletes the remote record and reverts the article to a
// local draft. Unpublishing a draft is a state conflict.
func (s *BlogSyncService) UnpublishArticle(ctx context.Context, articleID int64) (*domain.Article, error) {
	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up article: %w", err)
	}
	if article == nil {
		return nil, &domain.NotFoundError{Resource: "article", ID: articleID}
	}
	remoteID, synced := article.Sync.RemoteID()
	if !synced {
		return nil, &domain.StateConflictError{Op: "unpublish", Reason: "article has no remote record"}
	}

	store, token, err := loadCredentials(ctx, s.stores, s.encryptionSvc, article.StoreID)
	if err != nil {
		return nil, err
	}

	if err := s.commerce.DeleteArticle(ctx, store.ShopDomain, token, article.RemoteBlogID, remoteID); err != nil {
		s.recordArticleSync(ctx, article.StoreID, "unpublish", articleID, domain.TaskFailed, err)
		return nil, &domain.RemoteUnavailableError{Op: "unpublish article", Err: err}
	}

	draft, err := article.Unpublish()
	if err != nil {
		return nil, err
	}
	if err := s.articles.Update(ctx, &draft); err != nil {
		return nil, &domain.PersistenceFailure{Op: "unpublish article", Err: err}
	}

	s.logger.Info().
		Int64("article_id", draft.ID).
		Msg("Unpublished article, reverted to local draft")

	s.recordArticleSync(ctx, draft.StoreID, "unpublish", articleID, domain.TaskCompleted, nil)
	return &draft, nil
}

// PullArticles upserts local mirrors for every remote post in the given
// blog. Rows with local edits newer than their last sync are skipped rather
// than overwritten.
func (s *BlogSyncService) PullArticles(ctx context.Context, storeID, remoteBlogID int64) (*SyncResult, error) {
	store, token, err := loadCredentials(ctx, s.stores, s.encryptionSvc, storeID)
	if err != nil {
		return nil, err
	}

	remote, err := s.commerce.ListArticles(ctx, store.ShopDomain, token, remoteBlogID)
	if err != nil {
		s.recordArticleSync(ctx, storeID, "pull", 0, domain.TaskFailed, err)
		return nil, &domain.RemoteUnavailableError{Op: "pull-sync articles", Err: err}
	}

	now := time.Now().UTC()
	result := &SyncResult{Total: len(remote)}
	for i := range remote {
		ra := &remote[i]

		existing, err := s.articles.GetByRemoteID(ctx, storeID, ra.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up article %d: %w", ra.ID, err)
		}

		if existing == nil {
			state, err := domain.Synced(ra.ID)
			if err != nil {
				result.Skipped++
				continue
			}
			stamp := now
			article := &domain.Article{
				StoreID:      storeID,
				RemoteBlogID: ra.BlogID,
				Sync:         state,
				Title:        ra.Title,
				Content:      ra.BodyHTML,
				Summary:      ra.Summary,
				Tags:         ra.Tags,
				SEOScore:     float64(seo.ScoreContent(ra.Title, ra.Summary, ra.BodyHTML)),
				WordCount:    seo.WordCount(ra.BodyHTML),
				PublishedAt:  &stamp,
				SyncedAt:     &stamp,
			}
			article.Language, _ = s.detector.Detect(ra.BodyHTML)
			if err := s.articles.Create(ctx, article); err != nil {
				return nil, fmt.Errorf("failed to create article %d: %w", ra.ID, err)
			}
			result.Created++
			continue
		}

		if existing.Title == ra.Title && existing.Content == ra.BodyHTML && existing.Summary == ra.Summary {
			result.Updated++
			continue
		}

		// Local edits made after the last sync win over the remote copy. Row
		// stamping lands a moment after the sync stamp on every write, so
		// sub-second drift still counts as clean.
		if existing.SyncedAt != nil && existing.UpdatedAt.Sub(*existing.SyncedAt) > time.Second {
			result.Skipped++
			continue
		}

		existing.Title = ra.Title
		existing.Content = ra.BodyHTML
		existing.Summary = ra.Summary
		existing.Tags = ra.Tags
		existing.WordCount = seo.WordCount(ra.BodyHTML)
		existing.SEOScore = float64(seo.ScoreContent(ra.Title, ra.Summary, ra.BodyHTML))
		restamped, err := existing.Resync(now)
		if err != nil {
			// A local draft that collides with a remote id keeps its draft
			// state; only the content is refreshed.
			restamped = *existing
		}
		if err := s.articles.Update(ctx, &restamped); err != nil {
			return nil, fmt.Errorf("failed to update article %d: %w", ra.ID, err)
		}
		result.Updated++
	}

	s.logger.Info().
		Int64("store_id", storeID).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Msg("Article pull-sync completed")

	s.recordArticleSync(ctx, storeID, "pull", 0, domain.TaskCompleted, nil)
	return result, nil
}

// BatchItemResult reports the outcome of one article inside a batch publish.
type BatchItemResult struct {
	ArticleID int64  `json:"article_id"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// BatchResult aggregates the per-article outcomes of a batch publish.
type BatchResult struct {
	Results      []BatchItemResult `json:"results"`
	SuccessCount int               `json:"success_count"`
	TotalCount   int               `json:"total_count"`
}

// BatchPublish publishes a set of drafts, isolating failures: one article
// failing never aborts the rest, and every item reports its own outcome.
func (s *BlogSyncService) BatchPublish(ctx context.Context, articleIDs []int64) (*BatchResult, error) {
	if len(articleIDs) == 0 {
		return nil, &domain.ValidationError{Field: "article_ids", Reason: "at least one article id is required"}
	}

	result := &BatchResult{TotalCount: len(articleIDs)}
	for _, id := range articleIDs {
		item := BatchItemResult{ArticleID: id}
		if _, err := s.PublishArticle(ctx, id); err != nil {
			item.Error = err.Error()
		} else {
			item.Success = true
			result.SuccessCount++
		}
		result.Results = append(result.Results, item)
	}
	return result, nil
}

// ListArticles returns a store's articles, optionally filtered by sync
// status. An empty status returns every article.
func (s *BlogSyncService) ListArticles(ctx context.Context, storeID int64, status domain.SyncStatus) ([]*domain.Article, error) {
	switch status {
	case "", domain.StatusDraft, domain.StatusSynced:
	default:
		return nil, &domain.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}
	return s.articles.ListByStore(ctx, storeID, status)
}

// recordArticleSync writes one ledger row for an article sync operation.
// Failures are logged and swallowed.
func (s *BlogSyncService) recordArticleSync(ctx context.Context, storeID int64, op string, articleID int64, status domain.TaskStatus, opErr error) {
	payload := map[string]any{"store_id": storeID, "operation": op}
	if articleID > 0 {
		payload["article_id"] = articleID
	}
	if opErr != nil {
		payload["error"] = opErr.Error()
	}
	inputJSON, _ := json.Marshal(payload)

	now := time.Now().UTC()
	task := &domain.Task{
		StoreID:     &storeID,
		TaskType:    domain.TaskArticleSync,
		Status:      status,
		InputData:   string(inputJSON),
		CompletedAt: &now,
	}
	if err := s.ledger.Record(ctx, task); err != nil {
		s.logger.Warn().Err(err).Str("operation", op).Msg("Failed to record ledger entry")
	}
}
