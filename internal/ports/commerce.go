package ports

import (
	"context"

	goshopify "github.com/bold-commerce/go-shopify/v4"
)

// RemoteBlog is one blog container on the remote commerce platform.
type RemoteBlog struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// RemoteArticle is one blog post as the remote commerce platform returns it.
// Tags are already parsed out of the platform's comma-joined form.
type RemoteArticle struct {
	ID       int64    `json:"id"`
	BlogID   int64    `json:"blog_id"`
	Title    string   `json:"title"`
	BodyHTML string   `json:"body_html"`
	Summary  string   `json:"summary_html"`
	Tags     []string `json:"tags"`
}

// ArticleDraft carries the fields pushed when creating or updating a remote
// blog post.
type ArticleDraft struct {
	Title   string
	Body    string
	Summary string
	Tags    []string
}

// CommerceClient defines the remote commerce platform operations the sync
// engine depends on. Implementations must use finite timeouts on every call
// and translate transport failures into errors; they never panic through.
type CommerceClient interface {
	// Shop API
	GetShop(ctx context.Context, shopDomain, accessToken string) (*goshopify.Shop, error)

	// Product API
	GetProduct(ctx context.Context, shopDomain, accessToken string, productID int64) (*goshopify.Product, error)
	UpdateProduct(ctx context.Context, shopDomain, accessToken string, product *goshopify.Product) (*goshopify.Product, error)
	ListProducts(ctx context.Context, shopDomain, accessToken string, pageSize int) ([]goshopify.Product, error)

	// Blog API
	GetBlogs(ctx context.Context, shopDomain, accessToken string) ([]RemoteBlog, error)
	ListArticles(ctx context.Context, shopDomain, accessToken string, blogID int64) ([]RemoteArticle, error)
	CreateArticle(ctx context.Context, shopDomain, accessToken string, blogID int64, draft ArticleDraft) (*RemoteArticle, error)
	UpdateArticle(ctx context.Context, shopDomain, accessToken string, blogID, articleID int64, draft ArticleDraft) (*RemoteArticle, error)
	DeleteArticle(ctx context.Context, shopDomain, accessToken string, blogID, articleID int64) error
}
