package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"storeseo-core/internal/domain"
	"storeseo-core/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
)

// In-memory port implementations for service tests.

type memStores struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Store
}

func newMemStores() *memStores {
	return &memStores{rows: map[int64]domain.Store{}}
}

func (m *memStores) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.rows[id]; ok {
		return &row, nil
	}
	return nil, nil
}

func (m *memStores) GetByDomain(ctx context.Context, shopDomain string) (*domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.ShopDomain == shopDomain {
			r := row
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memStores) Save(ctx context.Context, store *domain.Store) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if store.ID == 0 {
		m.nextID++
		store.ID = m.nextID
	}
	m.rows[store.ID] = *store
	return nil
}

func (m *memStores) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, id)
	return nil
}

type memProducts struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Product
	// updateErr fails the nth Update call (1-based) when set.
	updateErr   error
	failOnCall  int
	updateCalls int
}

func newMemProducts() *memProducts {
	return &memProducts{rows: map[int64]domain.Product{}}
}

func (m *memProducts) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.rows[id]; ok {
		return &row, nil
	}
	return nil, nil
}

func (m *memProducts) GetByRemoteID(ctx context.Context, storeID, remoteProductID int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.StoreID == storeID && row.RemoteProductID == remoteProductID {
			r := row
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memProducts) ListByStore(ctx context.Context, storeID int64, offset, limit int) ([]*domain.Product, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Product
	for _, row := range m.rows {
		if row.StoreID == storeID {
			r := row
			out = append(out, &r)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memProducts) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	product.ID = m.nextID
	product.CreatedAt = time.Now().UTC()
	product.UpdatedAt = product.CreatedAt
	m.rows[product.ID] = *product
	return nil
}

func (m *memProducts) Update(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.updateErr != nil && m.updateCalls == m.failOnCall {
		return m.updateErr
	}
	product.UpdatedAt = time.Now().UTC()
	m.rows[product.ID] = *product
	return nil
}

func (m *memProducts) StatsByStore(ctx context.Context, storeID int64) (*ports.StoreStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &ports.StoreStats{}
	for _, row := range m.rows {
		if row.StoreID == storeID {
			stats.TotalProducts++
			if row.LastOptimized != nil {
				stats.OptimizedProducts++
			}
		}
	}
	return stats, nil
}

func (m *memProducts) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type memArticles struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Article
}

func newMemArticles() *memArticles {
	return &memArticles{rows: map[int64]domain.Article{}}
}

func (m *memArticles) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.rows[id]; ok {
		return &row, nil
	}
	return nil, nil
}

func (m *memArticles) GetByRemoteID(ctx context.Context, storeID, remoteArticleID int64) (*domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if id, ok := row.Sync.RemoteID(); ok && row.StoreID == storeID && id == remoteArticleID {
			r := row
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memArticles) ListByStore(ctx context.Context, storeID int64, status domain.SyncStatus) ([]*domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Article
	for _, row := range m.rows {
		if row.StoreID != storeID {
			continue
		}
		if status != "" && row.Sync.Status() != status {
			continue
		}
		r := row
		out = append(out, &r)
	}
	return out, nil
}

func (m *memArticles) Create(ctx context.Context, article *domain.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	article.ID = m.nextID
	article.CreatedAt = time.Now().UTC()
	article.UpdatedAt = article.CreatedAt
	m.rows[article.ID] = *article
	return nil
}

func (m *memArticles) Update(ctx context.Context, article *domain.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	article.UpdatedAt = time.Now().UTC()
	m.rows[article.ID] = *article
	return nil
}

// seed inserts a row verbatim, bypassing the timestamp stamping, and
// returns the id it was stored under.
func (m *memArticles) seed(article domain.Article) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if article.ID == 0 {
		m.nextID++
		article.ID = m.nextID
	} else if article.ID > m.nextID {
		m.nextID = article.ID
	}
	m.rows[article.ID] = article
	return article.ID
}

func (m *memArticles) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type memKeywords struct {
	mu     sync.Mutex
	nextID int64
	rows   []domain.Keyword
}

func newMemKeywords() *memKeywords {
	return &memKeywords{}
}

func (m *memKeywords) Create(ctx context.Context, keyword *domain.Keyword) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	keyword.ID = m.nextID
	keyword.CreatedAt = time.Now().UTC()
	m.rows = append(m.rows, *keyword)
	return nil
}

func (m *memKeywords) ListByStore(ctx context.Context, storeID int64) ([]*domain.Keyword, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Keyword
	for i := range m.rows {
		if m.rows[i].StoreID == storeID {
			r := m.rows[i]
			out = append(out, &r)
		}
	}
	return out, nil
}

type memLedger struct {
	mu      sync.Mutex
	nextID  int64
	rows    []domain.Task
	failErr error
}

func newMemLedger() *memLedger {
	return &memLedger{}
}

func (m *memLedger) Record(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.nextID++
	task.ID = m.nextID
	task.CreatedAt = time.Now().UTC()
	m.rows = append(m.rows, *task)
	return nil
}

func (m *memLedger) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		if m.rows[i].ID == id {
			r := m.rows[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memLedger) ListRecent(ctx context.Context, taskType domain.TaskType, limit int) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Task
	for i := len(m.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if taskType == "" || m.rows[i].TaskType == taskType {
			r := m.rows[i]
			out = append(out, &r)
		}
	}
	return out, nil
}

func (m *memLedger) last() *domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rows) == 0 {
		return nil
	}
	r := m.rows[len(m.rows)-1]
	return &r
}

func (m *memLedger) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// stubCommerce implements the commerce port with overridable behavior per
// method. Unset methods fail loudly so tests declare what they exercise.
type stubCommerce struct {
	getShopFn       func(ctx context.Context, shopDomain, token string) (*goshopify.Shop, error)
	listProductsFn  func(ctx context.Context, shopDomain, token string, pageSize int) ([]goshopify.Product, error)
	updateProductFn func(ctx context.Context, shopDomain, token string, product *goshopify.Product) (*goshopify.Product, error)
	getBlogsFn      func(ctx context.Context, shopDomain, token string) ([]ports.RemoteBlog, error)
	listArticlesFn  func(ctx context.Context, shopDomain, token string, blogID int64) ([]ports.RemoteArticle, error)
	createArticleFn func(ctx context.Context, shopDomain, token string, blogID int64, draft ports.ArticleDraft) (*ports.RemoteArticle, error)
	updateArticleFn func(ctx context.Context, shopDomain, token string, blogID, articleID int64, draft ports.ArticleDraft) (*ports.RemoteArticle, error)
	deleteArticleFn func(ctx context.Context, shopDomain, token string, blogID, articleID int64) error

	createArticleCalls int
}

func (s *stubCommerce) GetShop(ctx context.Context, shopDomain, token string) (*goshopify.Shop, error) {
	if s.getShopFn == nil {
		return nil, fmt.Errorf("unexpected GetShop call")
	}
	return s.getShopFn(ctx, shopDomain, token)
}

func (s *stubCommerce) GetProduct(ctx context.Context, shopDomain, token string, productID int64) (*goshopify.Product, error) {
	return nil, fmt.Errorf("unexpected GetProduct call")
}

func (s *stubCommerce) UpdateProduct(ctx context.Context, shopDomain, token string, product *goshopify.Product) (*goshopify.Product, error) {
	if s.updateProductFn == nil {
		return nil, fmt.Errorf("unexpected UpdateProduct call")
	}
	return s.updateProductFn(ctx, shopDomain, token, product)
}

func (s *stubCommerce) ListProducts(ctx context.Context, shopDomain, token string, pageSize int) ([]goshopify.Product, error) {
	if s.listProductsFn == nil {
		return nil, fmt.Errorf("unexpected ListProducts call")
	}
	return s.listProductsFn(ctx, shopDomain, token, pageSize)
}

func (s *stubCommerce) GetBlogs(ctx context.Context, shopDomain, token string) ([]ports.RemoteBlog, error) {
	if s.getBlogsFn == nil {
		return nil, fmt.Errorf("unexpected GetBlogs call")
	}
	return s.getBlogsFn(ctx, shopDomain, token)
}

func (s *stubCommerce) ListArticles(ctx context.Context, shopDomain, token string, blogID int64) ([]ports.RemoteArticle, error) {
	if s.listArticlesFn == nil {
		return nil, fmt.Errorf("unexpected ListArticles call")
	}
	return s.listArticlesFn(ctx, shopDomain, token, blogID)
}

func (s *stubCommerce) CreateArticle(ctx context.Context, shopDomain, token string, blogID int64, draft ports.ArticleDraft) (*ports.RemoteArticle, error) {
	s.createArticleCalls++
	if s.createArticleFn == nil {
		return nil, fmt.Errorf("unexpected CreateArticle call")
	}
	return s.createArticleFn(ctx, shopDomain, token, blogID, draft)
}

func (s *stubCommerce) UpdateArticle(ctx context.Context, shopDomain, token string, blogID, articleID int64, draft ports.ArticleDraft) (*ports.RemoteArticle, error) {
	if s.updateArticleFn == nil {
		return nil, fmt.Errorf("unexpected UpdateArticle call")
	}
	return s.updateArticleFn(ctx, shopDomain, token, blogID, articleID, draft)
}

func (s *stubCommerce) DeleteArticle(ctx context.Context, shopDomain, token string, blogID, articleID int64) error {
	if s.deleteArticleFn == nil {
		return fmt.Errorf("unexpected DeleteArticle call")
	}
	return s.deleteArticleFn(ctx, shopDomain, token, blogID, articleID)
}

// stubEncryption prefixes instead of encrypting so tests can see through it.
type stubEncryption struct{}

func (stubEncryption) Encrypt(plaintext string) (string, error) {
	return "enc:" + plaintext, nil
}

func (stubEncryption) Decrypt(ciphertext string) (string, error) {
	return strings.TrimPrefix(ciphertext, "enc:"), nil
}

type stubCache struct {
	mu   sync.Mutex
	rows map[string]string
}

func newStubCache() *stubCache {
	return &stubCache{rows: map[string]string{}}
}

func (c *stubCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.rows[key]
	return v, ok, nil
}

func (c *stubCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows[key] = value
	return nil
}

// stubProvider returns a fixed completion or error.
type stubProvider struct {
	text  string
	err   error
	calls int
}

func (p *stubProvider) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.text, nil
}

// seedStore inserts a connected store and returns its id.
func seedStore(stores *memStores) int64 {
	store := &domain.Store{
		ShopDomain:  "example.myshopify.com",
		AccessToken: "enc:token",
		PlanType:    domain.PlanFree,
		Settings:    domain.DefaultSettings(),
	}
	_ = stores.Save(context.Background(), store)
	return store.ID
}
