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

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// remotePageSize is the page size used when pulling the remote catalog.
const remotePageSize = 250

// SyncResult reports the outcome of one pull-sync pass. Created + Updated +
// Skipped always equals Total.
type SyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// ProductSyncService keeps local product mirrors consistent with the remote
// catalog through explicit pull and push operations. No background polling is
// performed; every operation runs to completion within the calling request.
type ProductSyncService struct {
	stores        ports.StoreRepository
	products      ports.ProductRepository
	commerce      ports.CommerceClient
	encryptionSvc ports.EncryptionService
	ledger        ports.TaskLedger
	logger        zerolog.Logger
}

// NewProductSyncService creates a new product sync orchestrator.
func NewProductSyncService(
	stores ports.StoreRepository,
	products ports.ProductRepository,
	commerce ports.CommerceClient,
	encryptionSvc ports.EncryptionService,
	ledger ports.TaskLedger,
	logger zerolog.Logger,
) *ProductSyncService {
	return &ProductSyncService{
		stores:        stores,
		products:      products,
		commerce:      commerce,
		encryptionSvc: encryptionSvc,
		ledger:        ledger,
		logger:        logger,
	}
}

// PullProducts upserts local mirrors for every remote catalog item, keyed by
// (store id, remote product id). Local rows absent remotely are never
// deleted. Running the pass twice against unchanged remote data creates no
// new rows and leaves scores and timestamps untouched.
func (s *ProductSyncService) PullProducts(ctx context.Context, storeID int64) (*SyncResult, error) {
	store, token, err := loadCredentials(ctx, s.stores, s.encryptionSvc, storeID)
	if err != nil {
		return nil, err
	}

	remote, err := s.commerce.ListProducts(ctx, store.ShopDomain, token, remotePageSize)
	if err != nil {
		s.recordSync(ctx, storeID, domain.TaskProductSync, nil, domain.TaskFailed, err)
		return nil, &domain.RemoteUnavailableError{Op: "pull-sync products", Err: err}
	}

	result := &SyncResult{Total: len(remote)}
	for i := range remote {
		rp := &remote[i]
		remoteID := int64(rp.Id)

		signals := seo.ProductSignals{
			Title:       rp.Title,
			Description: rp.BodyHTML,
			HasImages:   len(rp.Images) > 0,
			HasTags:     rp.Tags != "",
			HasVariants: len(rp.Variants) > 0,
		}

		existing, err := s.products.GetByRemoteID(ctx, storeID, remoteID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up product %d: %w", remoteID, err)
		}

		if existing == nil {
			product := &domain.Product{
				StoreID:         storeID,
				RemoteProductID: remoteID,
				Title:           rp.Title,
				Description:     rp.BodyHTML,
				SEOScore:        seo.CompositeScore(signals),
			}
			if err := s.products.Create(ctx, product); err != nil {
				return nil, fmt.Errorf("failed to create product %d: %w", remoteID, err)
			}
			result.Created++
			continue
		}

		// Unchanged upstream content leaves the row untouched so repeated
		// pull-sync passes do not churn scores or timestamps.
		if existing.Title == rp.Title && existing.Description == rp.BodyHTML {
			result.Updated++
			continue
		}

		existing.Title = rp.Title
		existing.Description = rp.BodyHTML
		existing.SEOScore = seo.CompositeScore(signals)
		if err := s.products.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update product %d: %w", remoteID, err)
		}
		result.Updated++
	}

	s.logger.Info().
		Int64("store_id", storeID).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("total", result.Total).
		Msg("Product pull-sync completed")

	s.recordSync(ctx, storeID, domain.TaskProductSync, result, domain.TaskCompleted, nil)
	return result, nil
}

// OptimizeInput carries the derived SEO content to apply to a product.
type OptimizeInput struct {
	ProductID      int64    `json:"product_id"`
	SEOTitle       string   `json:"seo_title"`
	SEODescription string   `json:"seo_description"`
	Keywords       []string `json:"keywords"`
}

// OptimizeProduct persists the derived SEO content locally and pushes it to
// the remote platform. A push failure leaves the local text edit applied and
// reports the error; only the post-push stamp is withheld. A local commit
// failure after a successful push surfaces as a PersistenceFailure.
func (s *ProductSyncService) OptimizeProduct(ctx context.Context, input OptimizeInput) (*domain.Product, error) {
	if strings.TrimSpace(input.SEOTitle) == "" || strings.TrimSpace(input.SEODescription) == "" {
		return nil, &domain.ValidationError{Field: "seo_title", Reason: "seo title and description are required"}
	}

	product, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		return nil, &domain.NotFoundError{Resource: "product", ID: input.ProductID}
	}

	store, token, err := loadCredentials(ctx, s.stores, s.encryptionSvc, product.StoreID)
	if err != nil {
		return nil, err
	}

	score := seo.CompositeScore(seo.ProductSignals{
		Title:       input.SEOTitle,
		Description: input.SEODescription,
		HasTags:     len(input.Keywords) > 0,
	})
	updated := product.ApplySEO(input.SEOTitle, input.SEODescription, input.Keywords, score)
	if err := s.products.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to persist SEO content: %w", err)
	}

	pushed, err := s.pushSEO(ctx, store.ShopDomain, token, &updated)
	status := domain.TaskCompleted
	if err != nil {
		status = domain.TaskFailed
	}
	s.recordSync(ctx, product.StoreID, domain.TaskProductSync, pushed, status, err)
	if err != nil {
		return &updated, err
	}
	return pushed, nil
}

// PushProduct re-pushes already derived SEO content to the remote platform.
// Safe to re-issue: the remote update is idempotent at the remote id level.
func (s *ProductSyncService) PushProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		return nil, &domain.NotFoundError{Resource: "product", ID: productID}
	}
	if !product.HasSEOContent() {
		return nil, &domain.ValidationError{Field: "seo_title", Reason: "product has no SEO content to push"}
	}

	store, token, err := loadCredentials(ctx, s.stores, s.encryptionSvc, product.StoreID)
	if err != nil {
		return nil, err
	}
	return s.pushSEO(ctx, store.ShopDomain, token, product)
}

// pushSEO updates the remote item and stamps last-optimized on success.
func (s *ProductSyncService) pushSEO(ctx context.Context, shopDomain, token string, product *domain.Product) (*domain.Product, error) {
	remote := &goshopify.Product{
		Id:       uint64(product.RemoteProductID),
		Title:    product.SEOTitle,
		BodyHTML: product.SEODescription,
	}
	if _, err := s.commerce.UpdateProduct(ctx, shopDomain, token, remote); err != nil {
		return nil, &domain.RemoteUnavailableError{Op: "push product", Err: err}
	}

	stamped := product.MarkOptimized(time.Now().UTC())
	if err := s.products.Update(ctx, &stamped); err != nil {
		return nil, &domain.PersistenceFailure{Op: "push product", Err: err}
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Int64("remote_product_id", product.RemoteProductID).
		Msg("Pushed SEO content to remote platform")

	return &stamped, nil
}

// ApplyRemoteUpdate mirrors a remote-originated product edit into the local
// row. Unknown products are ignored; the remote platform is authoritative
// for rows it owns.
func (s *ProductSyncService) ApplyRemoteUpdate(ctx context.Context, storeID, remoteProductID int64, title, description string) error {
	product, err := s.products.GetByRemoteID(ctx, storeID, remoteProductID)
	if err != nil {
		return fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		return nil
	}
	if title != "" {
		product.Title = title
	}
	if description != "" {
		product.Description = description
	}
	if err := s.products.Update(ctx, product); err != nil {
		return fmt.Errorf("failed to apply remote update: %w", err)
	}
	return nil
}

// ListProducts returns one page of a store's local product mirrors with the
// total row count.
func (s *ProductSyncService) ListProducts(ctx context.Context, storeID int64, page, perPage int) ([]*domain.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.products.ListByStore(ctx, storeID, (page-1)*perPage, perPage)
}

// recordSync writes one ledger row for a sync operation. Failures are logged
// and swallowed.
func (s *ProductSyncService) recordSync(ctx context.Context, storeID int64, taskType domain.TaskType, output any, status domain.TaskStatus, opErr error) {
	payload := map[string]any{"store_id": storeID}
	if opErr != nil {
		payload["error"] = opErr.Error()
	}
	inputJSON, _ := json.Marshal(payload)

	var outputData string
	if output != nil {
		outputJSON, _ := json.Marshal(output)
		outputData = string(outputJSON)
	}

	now := time.Now().UTC()
	task := &domain.Task{
		StoreID:     &storeID,
		TaskType:    taskType,
		Status:      status,
		InputData:   string(inputJSON),
		OutputData:  outputData,
		CompletedAt: &now,
	}
	if err := s.ledger.Record(ctx, task); err != nil {
		s.logger.Warn().Err(err).Str("task_type", string(taskType)).Msg("Failed to record ledger entry")
	}
}
