package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storeseo-core/internal/ports"
	"storeseo-core/internal/seo"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// apiVersion is the Shopify Admin REST API version used for endpoints the
// go-shopify library does not cover.
const apiVersion = "2024-01"

type client struct {
	apiKey     string
	apiSecret  string
	app        goshopify.App
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Shopify client adapter.
func NewClient(apiKey, apiSecret string, logger zerolog.Logger) ports.CommerceClient {
	app := goshopify.App{
		ApiKey:    apiKey,
		ApiSecret: apiSecret,
	}
	return &client{
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		app:        app,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// createClient is a helper to create a goshopify client
func (c *client) createClient(shopDomain string, accessToken string) (*goshopify.Client, error) {
	client, err := goshopify.NewClient(c.app, shopDomain, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// Shop API

func (c *client) GetShop(ctx context.Context, shopDomain string, accessToken string) (*goshopify.Shop, error) {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	shop, err := client.Shop.Get(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}
	return shop, nil
}

// Product API

func (c *client) GetProduct(ctx context.Context, shopDomain string, accessToken string, productID int64) (*goshopify.Product, error) {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	product, err := client.Product.Get(ctx, uint64(productID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (c *client) UpdateProduct(ctx context.Context, shopDomain string, accessToken string, product *goshopify.Product) (*goshopify.Product, error) {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	updated, err := client.Product.Update(ctx, *product)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return updated, nil
}

func (c *client) ListProducts(ctx context.Context, shopDomain string, accessToken string, pageSize int) ([]goshopify.Product, error) {
	client, err := c.createClient(shopDomain, accessToken)
	if err != nil {
		return nil, err
	}
	products, err := client.Product.List(ctx, goshopify.ListOptions{Limit: pageSize})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Blog API
//
// The go-shopify library has no blog or article resources, so these go
// through the Admin REST API directly.

type remoteBlogPayload struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type remoteArticlePayload struct {
	ID          int64  `json:"id"`
	BlogID      int64  `json:"blog_id"`
	Title       string `json:"title"`
	BodyHTML    string `json:"body_html"`
	SummaryHTML string `json:"summary_html"`
	Tags        string `json:"tags"`
}

func (p *remoteArticlePayload) toPort() ports.RemoteArticle {
	return ports.RemoteArticle{
		ID:       p.ID,
		BlogID:   p.BlogID,
		Title:    p.Title,
		BodyHTML: p.BodyHTML,
		Summary:  p.SummaryHTML,
		Tags:     seo.SplitTags(p.Tags),
	}
}

func articleBody(draft ports.ArticleDraft) map[string]any {
	return map[string]any{
		"article": map[string]any{
			"title":        draft.Title,
			"body_html":    draft.Body,
			"summary_html": draft.Summary,
			"tags":         seo.JoinTags(draft.Tags),
		},
	}
}

func (c *client) GetBlogs(ctx context.Context, shopDomain string, accessToken string) ([]ports.RemoteBlog, error) {
	var payload struct {
		Blogs []remoteBlogPayload `json:"blogs"`
	}
	if err := c.doREST(ctx, shopDomain, accessToken, http.MethodGet, "blogs.json", nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	blogs := make([]ports.RemoteBlog, 0, len(payload.Blogs))
	for _, b := range payload.Blogs {
		blogs = append(blogs, ports.RemoteBlog{ID: b.ID, Title: b.Title})
	}
	return blogs, nil
}

func (c *client) ListArticles(ctx context.Context, shopDomain string, accessToken string, blogID int64) ([]ports.RemoteArticle, error) {
	var payload struct {
		Articles []remoteArticlePayload `json:"articles"`
	}
	path := fmt.Sprintf("blogs/%d/articles.json", blogID)
	if err := c.doREST(ctx, shopDomain, accessToken, http.MethodGet, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	articles := make([]ports.RemoteArticle, 0, len(payload.Articles))
	for i := range payload.Articles {
		articles = append(articles, payload.Articles[i].toPort())
	}
	return articles, nil
}

func (c *client) CreateArticle(ctx context.Context, shopDomain string, accessToken string, blogID int64, draft ports.ArticleDraft) (*ports.RemoteArticle, error) {
	var payload struct {
		Article remoteArticlePayload `json:"article"`
	}
	path := fmt.Sprintf("blogs/%d/articles.json", blogID)
	if err := c.doREST(ctx, shopDomain, accessToken, http.MethodPost, path, articleBody(draft), &payload); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}
	article := payload.Article.toPort()
	return &article, nil
}

func (c *client) UpdateArticle(ctx context.Context, shopDomain string, accessToken string, blogID int64, articleID int64, draft ports.ArticleDraft) (*ports.RemoteArticle, error) {
	var payload struct {
		Article remoteArticlePayload `json:"article"`
	}
	path := fmt.Sprintf("blogs/%d/articles/%d.json", blogID, articleID)
	if err := c.doREST(ctx, shopDomain, accessToken, http.MethodPut, path, articleBody(draft), &payload); err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}
	article := payload.Article.toPort()
	return &article, nil
}

func (c *client) DeleteArticle(ctx context.Context, shopDomain string, accessToken string, blogID int64, articleID int64) error {
	path := fmt.Sprintf("blogs/%d/articles/%d.json", blogID, articleID)
	if err := c.doREST(ctx, shopDomain, accessToken, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return nil
}

// doREST issues one Admin REST call with the access token header and decodes
// the response into out when non-nil.
func (c *client) doREST(ctx context.Context, shopDomain, accessToken, method, path string, body any, out any) error {
	url := fmt.Sprintf("%s/admin/api/%s/%s", baseURL(shopDomain), apiVersion, path)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// baseURL normalizes a shop domain into an https base URL.
func baseURL(shopDomain string) string {
	shopURL := shopDomain
	if !strings.Contains(shopURL, ".") {
		shopURL = shopURL + ".myshopify.com"
	}
	if !strings.HasPrefix(shopURL, "https://") && !strings.HasPrefix(shopURL, "http://") {
		shopURL = "https://" + shopURL
	}
	return shopURL
}
