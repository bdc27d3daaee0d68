package application

import (
	"context"
	"errors"
	"testing"

	"storeseo-core/internal/domain"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

func newProductFixture(commerce *stubCommerce) (*ProductSyncService, *memProducts, *memLedger, int64) {
	stores := newMemStores()
	products := newMemProducts()
	ledger := newMemLedger()
	svc := NewProductSyncService(stores, products, commerce, stubEncryption{}, ledger, zerolog.Nop())
	storeID := seedStore(stores)
	return svc, products, ledger, storeID
}

func remoteCatalog() []goshopify.Product {
	return []goshopify.Product{
		{
			Id:       101,
			Title:    "Premium Widget Pro 2000 - Extra Durable Model",
			BodyHTML: "A premium widget built from durable materials, with professional quality finish and a satisfaction guarantee for every buyer. Order now and upgrade your workshop with the best tool in its class today.",
			Tags:     "widget, tools",
			Images:   []goshopify.Image{{Id: 1}},
			Variants: []goshopify.Variant{{Id: 1}},
		},
		{
			Id:       102,
			Title:    "Widget",
			BodyHTML: "Too short",
		},
	}
}

func TestPullProductsCreatesMirrors(t *testing.T) {
	commerce := &stubCommerce{
		listProductsFn: func(ctx context.Context, shopDomain, token string, pageSize int) ([]goshopify.Product, error) {
			return remoteCatalog(), nil
		},
	}
	svc, products, ledger, storeID := newProductFixture(commerce)

	result, err := svc.PullProducts(context.Background(), storeID)
	if err != nil {
		t.Fatalf("PullProducts: %v", err)
	}
	if result.Created != 2 || result.Updated != 0 || result.Total != 2 {
		t.Fatalf("result = %+v, want 2 created of 2", result)
	}

	rich, _ := products.GetByRemoteID(context.Background(), storeID, 101)
	if rich == nil {
		t.Fatal("product 101 not mirrored")
	}
	if rich.SEOScore <= 0 || rich.SEOScore > 100 {
		t.Errorf("SEOScore = %v, want scored in (0,100]", rich.SEOScore)
	}
	poor, _ := products.GetByRemoteID(context.Background(), storeID, 102)
	if poor.SEOScore >= rich.SEOScore {
		t.Errorf("thin product scored %v, rich product %v; want rich higher", poor.SEOScore, rich.SEOScore)
	}

	if row := ledger.last(); row == nil || row.TaskType != domain.TaskProductSync || row.Status != domain.TaskCompleted {
		t.Errorf("ledger row = %+v, want completed product_sync", row)
	}
}

func TestPullProductsIsIdempotent(t *testing.T) {
	commerce := &stubCommerce{
		listProductsFn: func(ctx context.Context, shopDomain, token string, pageSize int) ([]goshopify.Product, error) {
			return remoteCatalog(), nil
		},
	}
	svc, products, _, storeID := newProductFixture(commerce)

	if _, err := svc.PullProducts(context.Background(), storeID); err != nil {
		t.Fatalf("first pull: %v", err)
	}
	before, _ := products.GetByRemoteID(context.Background(), storeID, 101)

	second, err := svc.PullProducts(context.Background(), storeID)
	if err != nil {
		t.Fatalf("second pull: %v", err)
	}
	if second.Created != 0 || second.Updated != 2 {
		t.Errorf("second pull = %+v, want 0 created 2 updated", second)
	}
	if products.count() != 2 {
		t.Errorf("rows = %d, want 2", products.count())
	}

	after, _ := products.GetByRemoteID(context.Background(), storeID, 101)
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Error("unchanged row was rewritten on the second pass")
	}
}

func TestPullProductsRefreshesChangedRows(t *testing.T) {
	catalog := remoteCatalog()
	commerce := &stubCommerce{
		listProductsFn: func(ctx context.Context, shopDomain, token string, pageSize int) ([]goshopify.Product, error) {
			return catalog, nil
		},
	}
	svc, products, _, storeID := newProductFixture(commerce)

	if _, err := svc.PullProducts(context.Background(), storeID); err != nil {
		t.Fatalf("first pull: %v", err)
	}

	catalog[1].Title = "Widget Max Edition With A Longer Title"
	result, err := svc.PullProducts(context.Background(), storeID)
	if err != nil {
		t.Fatalf("second pull: %v", err)
	}
	if result.Updated != 2 {
		t.Errorf("result = %+v, want 2 updated", result)
	}

	row, _ := products.GetByRemoteID(context.Background(), storeID, 102)
	if row.Title != "Widget Max Edition With A Longer Title" {
		t.Errorf("title = %q, want refreshed remote title", row.Title)
	}
}

func TestPullProductsRemoteFailure(t *testing.T) {
	commerce := &stubCommerce{
		listProductsFn: func(ctx context.Context, shopDomain, token string, pageSize int) ([]goshopify.Product, error) {
			return nil, errors.New("listing failed")
		},
	}
	svc, _, ledger, storeID := newProductFixture(commerce)

	_, err := svc.PullProducts(context.Background(), storeID)
	if !domain.IsRemoteUnavailable(err) {
		t.Fatalf("err = %v, want remote unavailable", err)
	}
	if row := ledger.last(); row == nil || row.Status != domain.TaskFailed {
		t.Errorf("ledger row = %+v, want failed", row)
	}
}

func TestPullProductsUnknownStore(t *testing.T) {
	svc, _, _, _ := newProductFixture(&stubCommerce{})
	if _, err := svc.PullProducts(context.Background(), 404); !domain.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func seedProduct(products *memProducts, storeID int64) int64 {
	product := &domain.Product{
		StoreID:         storeID,
		RemoteProductID: 101,
		Title:           "Widget",
		Description:     "Too short",
	}
	_ = products.Create(context.Background(), product)
	return product.ID
}

func TestOptimizeProductPushesAndStamps(t *testing.T) {
	var pushed *goshopify.Product
	commerce := &stubCommerce{
		updateProductFn: func(ctx context.Context, shopDomain, token string, product *goshopify.Product) (*goshopify.Product, error) {
			pushed = product
			return product, nil
		},
	}
	svc, products, ledger, storeID := newProductFixture(commerce)
	productID := seedProduct(products, storeID)

	result, err := svc.OptimizeProduct(context.Background(), OptimizeInput{
		ProductID:      productID,
		SEOTitle:       "Premium Widget Pro - Durable Construction",
		SEODescription: "A premium widget with professional build quality, designed for daily workshop use, backed by a full guarantee. Order now for the best value available this season and enjoy it.",
		Keywords:       []string{"widget", "durable"},
	})
	if err != nil {
		t.Fatalf("OptimizeProduct: %v", err)
	}
	if result.LastOptimized == nil {
		t.Error("LastOptimized should be stamped after a successful push")
	}
	if result.SEOScore <= 0 {
		t.Errorf("SEOScore = %v, want rescored", result.SEOScore)
	}
	if pushed == nil || pushed.Id != 101 {
		t.Fatalf("pushed = %+v, want remote update for product 101", pushed)
	}
	if pushed.Title != "Premium Widget Pro - Durable Construction" {
		t.Errorf("pushed title = %q, want SEO title", pushed.Title)
	}
	if row := ledger.last(); row == nil || row.Status != domain.TaskCompleted {
		t.Errorf("ledger row = %+v, want completed", row)
	}
}

func TestOptimizeProductPushFailureKeepsLocalEdit(t *testing.T) {
	commerce := &stubCommerce{
		updateProductFn: func(ctx context.Context, shopDomain, token string, product *goshopify.Product) (*goshopify.Product, error) {
			return nil, errors.New("remote down")
		},
	}
	svc, products, ledger, storeID := newProductFixture(commerce)
	productID := seedProduct(products, storeID)

	result, err := svc.OptimizeProduct(context.Background(), OptimizeInput{
		ProductID:      productID,
		SEOTitle:       "Premium Widget Pro",
		SEODescription: "Improved copy that never reached the remote platform.",
	})
	if !domain.IsRemoteUnavailable(err) {
		t.Fatalf("err = %v, want remote unavailable", err)
	}
	if result == nil || result.SEOTitle != "Premium Widget Pro" {
		t.Fatalf("result = %+v, want local edit returned", result)
	}
	if result.LastOptimized != nil {
		t.Error("LastOptimized must stay empty when the push fails")
	}

	stored, _ := products.GetByID(context.Background(), productID)
	if stored.SEOTitle != "Premium Widget Pro" {
		t.Errorf("stored SEOTitle = %q, local edit should be committed", stored.SEOTitle)
	}
	if row := ledger.last(); row == nil || row.Status != domain.TaskFailed {
		t.Errorf("ledger row = %+v, want failed", row)
	}
}

func TestOptimizeProductRequiresContent(t *testing.T) {
	svc, _, _, _ := newProductFixture(&stubCommerce{})
	_, err := svc.OptimizeProduct(context.Background(), OptimizeInput{ProductID: 1, SEOTitle: "  "})
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestPushProductWithoutSEOContent(t *testing.T) {
	svc, products, _, storeID := newProductFixture(&stubCommerce{})
	productID := seedProduct(products, storeID)

	_, err := svc.PushProduct(context.Background(), productID)
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestPushProductStampCommitFailure(t *testing.T) {
	commerce := &stubCommerce{
		updateProductFn: func(ctx context.Context, shopDomain, token string, product *goshopify.Product) (*goshopify.Product, error) {
			return product, nil
		},
	}
	svc, products, _, storeID := newProductFixture(commerce)
	product := &domain.Product{
		StoreID:         storeID,
		RemoteProductID: 101,
		Title:           "Widget",
		SEOTitle:        "Premium Widget",
		SEODescription:  "Already derived copy.",
	}
	_ = products.Create(context.Background(), product)

	// Fail the stamp commit that follows the successful remote push.
	products.updateErr = errors.New("disk full")
	products.failOnCall = 1

	_, err := svc.PushProduct(context.Background(), product.ID)
	if !domain.IsPersistenceFailure(err) {
		t.Fatalf("err = %v, want persistence failure", err)
	}
}

func TestApplyRemoteUpdateIgnoresUnknownProducts(t *testing.T) {
	svc, products, _, storeID := newProductFixture(&stubCommerce{})
	productID := seedProduct(products, storeID)

	if err := svc.ApplyRemoteUpdate(context.Background(), storeID, 9999, "New", "Body"); err != nil {
		t.Fatalf("unknown product should be a no-op, got %v", err)
	}

	if err := svc.ApplyRemoteUpdate(context.Background(), storeID, 101, "Remote title", ""); err != nil {
		t.Fatalf("ApplyRemoteUpdate: %v", err)
	}
	row, _ := products.GetByID(context.Background(), productID)
	if row.Title != "Remote title" {
		t.Errorf("title = %q, want remote edit applied", row.Title)
	}
	if row.Description != "Too short" {
		t.Errorf("description = %q, empty remote field must not blank the row", row.Description)
	}
}

func TestLedgerFailureNeverBlocksSync(t *testing.T) {
	commerce := &stubCommerce{
		listProductsFn: func(ctx context.Context, shopDomain, token string, pageSize int) ([]goshopify.Product, error) {
			return remoteCatalog(), nil
		},
	}
	svc, _, ledger, storeID := newProductFixture(commerce)
	ledger.failErr = errors.New("ledger down")

	result, err := svc.PullProducts(context.Background(), storeID)
	if err != nil {
		t.Fatalf("PullProducts must succeed despite ledger failure, got %v", err)
	}
	if result.Created != 2 {
		t.Errorf("result = %+v, want 2 created", result)
	}
}
