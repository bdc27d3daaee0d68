package api

import (
	"io"
	"net/http"
	"strconv"

	"storeseo-core/internal/application"
	"storeseo-core/internal/domain"
	"storeseo-core/internal/infrastructure/shopify"
	"storeseo-core/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler bundles the application services behind the REST routes.
type Handler struct {
	storeSvc   *application.StoreService
	productSvc *application.ProductSyncService
	blogSvc    *application.BlogSyncService
	contentSvc *application.ContentService
	keywordSvc *application.KeywordService
	ledger     ports.TaskLedger
	stores     ports.StoreRepository
	verifier   *shopify.WebhookVerifier
	logger     zerolog.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(
	storeSvc *application.StoreService,
	productSvc *application.ProductSyncService,
	blogSvc *application.BlogSyncService,
	contentSvc *application.ContentService,
	keywordSvc *application.KeywordService,
	ledger ports.TaskLedger,
	stores ports.StoreRepository,
	verifier *shopify.WebhookVerifier,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		storeSvc:   storeSvc,
		productSvc: productSvc,
		blogSvc:    blogSvc,
		contentSvc: contentSvc,
		keywordSvc: keywordSvc,
		ledger:     ledger,
		stores:     stores,
		verifier:   verifier,
		logger:     logger,
	}
}

// Register mounts every route on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/stores/connect", h.connectStore)
		r.Get("/stores/{storeID}", h.storeStatus)
		r.Delete("/stores/{storeID}", h.disconnectStore)

		r.Post("/stores/{storeID}/products/sync", h.syncProducts)
		r.Get("/stores/{storeID}/products", h.listProducts)
		r.Post("/products/{productID}/optimize", h.optimizeProduct)
		r.Post("/products/{productID}/push", h.pushProduct)

		r.Get("/stores/{storeID}/blogs", h.listBlogs)
		r.Post("/stores/{storeID}/articles", h.createArticle)
		r.Get("/stores/{storeID}/articles", h.listArticles)
		r.Put("/articles/{articleID}", h.updateArticle)
		r.Post("/articles/{articleID}/publish", h.publishArticle)
		r.Post("/articles/{articleID}/unpublish", h.unpublishArticle)
		r.Post("/articles/batch-publish", h.batchPublish)
		r.Post("/stores/{storeID}/blogs/{blogID}/articles/sync", h.syncArticles)

		r.Post("/generate/title", h.generateTitle)
		r.Post("/generate/description", h.generateDescription)
		r.Post("/generate/blog", h.generateBlog)
		r.Post("/generate/keywords", h.generateKeywords)
		r.Post("/audit", h.auditContent)
		r.Post("/analyze/market", h.analyzeMarket)
		r.Post("/detect-language", h.detectLanguage)

		r.Post("/stores/{storeID}/keywords/research", h.researchKeywords)
		r.Get("/stores/{storeID}/keywords", h.listKeywords)

		r.Get("/tasks", h.listTasks)
		r.Get("/tasks/{taskID}", h.getTask)
	})

	r.Post("/webhooks/products/update", h.productWebhook)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, &domain.ValidationError{Field: name, Reason: "must be a positive integer"}
	}
	return id, nil
}

// Store endpoints

func (h *Handler) connectStore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShopDomain  string `json:"shop_domain"`
		AccessToken string `json:"access_token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	store, err := h.storeSvc.Connect(r.Context(), req.ShopDomain, req.AccessToken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, store)
}

func (h *Handler) storeStatus(w http.ResponseWriter, r *http.Request) {
	storeID, err := pathID(r, "storeID")
	if err != nil {
		writeError(w, err)
		return
	}
	status, err := h.storeSvc.Status(r.Context(), storeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *Handler) disconnectStore(w http.ResponseWriter, r *http.Request) {
	storeID, err := pathID(r, "storeID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.storeSvc.Disconnect(r.Context(), storeID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "disconnected"})
}

// Product endpoints

func (h *Handler) syncProducts(w http.ResponseWriter, r *http.Request) {
	storeID, err := pathID(r, "storeID")
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := h.productSvc.PullProducts(r.Context(), storeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	storeID, err := pathID(r, "storeID")
	if err != nil {
		writeError(w, err)
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	products, total, err := h.productSvc.ListProducts(r.Context(), storeID, page, perPage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"products": products,
		"total":    total,
	})
}

func (h *Handler) optimizeProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req application.OptimizeInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.ProductID = productID
	product, err := h.productSvc.OptimizeProduct(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) pushProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		writeError(w, err)
		return
	}
	product, err := h.productSvc.PushProduct(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Blog endpoints

func (h *Handler) listBlogs(w http.ResponseWriter, r *http.Request) {
	storeID, err := pathID(r, "storeID")
	if err != nil {
		writeError(w, err)
		return
	}
	blogs, err := h.blogSvc.AvailableBlogs(r.Context(), storeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blogs": blogs})
}

func (h *Handler) createArticle(w http.ResponseWriter, r *http.Request) {
	storeID, err := pathID(r, "storeID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req application.CreateArticleInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.StoreID = storeID
	article, err := h.blogSvc.CreateArticle(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, article)
}

func (h *Handler) listArticles(w http.ResponseWriter, r *http.Request) {
	storeID, err := pathID(r, "storeID")
	if err != nil {
		writeError(w, err)
		return
	}
	status := domain.SyncStatus(r.URL.Query().Get("status"))
	articles, err := h.blogSvc.ListArticles(r.Context(), storeID, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": articles})
}

func (h *Handler) updateArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "articleID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req application.UpdateArticleInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.ArticleID = articleID
	article, err := h.blogSvc.UpdateArticle(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (h *Handler) publishArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "articleID")
	if err != nil {
		writeError(w, err)
		return
	}
	article, err := h.blogSvc.PublishArticle(r.Context(), articleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (h *Handler) unpublishArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := pathID(r, "articleID")
	if err != nil {
		writeError(w, err)
		return
	}
	article, err := h.blogSvc.UnpublishArticle(r.Context(), articleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (h *Handler) batchPublish(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ArticleIDs []int64 `json:"article_ids"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	result, err := h.blogSvc.BatchPublish(r.Context(), req.ArticleIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) syncArticles(w http.ResponseWriter, r *http.Request) {
	storeID, err := pathID(r, "storeID")
	if err != nil {
		writeError(w, err)
		return
	}
	blogID, err := pathID(r, "blogID")
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := h.blogSvc.PullArticles(r.Context(), storeID, blogID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Content generation endpoints

func (h *Handler) generateTitle(w http.ResponseWriter, r *http.Request) {
	var req application.GenerateTitleInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.contentSvc.GenerateTitle(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) generateDescription(w http.ResponseWriter, r *http.Request) {
	var req application.GenerateDescriptionInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.contentSvc.GenerateDescription(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) generateBlog(w http.ResponseWriter, r *http.Request) {
	var req application.GenerateBlogInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.contentSvc.GenerateBlogArticle(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) generateKeywords(w http.ResponseWriter, r *http.Request) {
	var req application.GenerateKeywordsInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.contentSvc.GenerateKeywords(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) auditContent(w http.ResponseWriter, r *http.Request) {
	var req application.AuditInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.contentSvc.AuditContent(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) analyzeMarket(w http.ResponseWriter, r *http.Request) {
	var req application.MarketAnalysisInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.contentSvc.AnalyzeMarket(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) detectLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	out, err := h.contentSvc.DetectLanguage(req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Keyword endpoints

func (h *Handler) researchKeywords(w http.ResponseWriter, r *http.Request) {
	storeID, err := pathID(r, "storeID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req application.ResearchInput
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.StoreID = storeID
	keywords, err := h.keywordSvc.ResearchKeywords(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"keywords": keywords})
}

func (h *Handler) listKeywords(w http.ResponseWriter, r *http.Request) {
	storeID, err := pathID(r, "storeID")
	if err != nil {
		writeError(w, err)
		return
	}
	keywords, err := h.keywordSvc.ListKeywords(r.Context(), storeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"keywords": keywords})
}

// Task ledger endpoints

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	taskType := domain.TaskType(r.URL.Query().Get("type"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	tasks, err := h.ledger.ListRecent(r.Context(), taskType, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "taskID")
	if err != nil {
		writeError(w, err)
		return
	}
	task, err := h.ledger.GetByID(r.Context(), taskID)
	if err != nil {
		writeError(w, err)
		return
	}
	if task == nil {
		writeError(w, &domain.NotFoundError{Resource: "task", ID: taskID})
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Webhooks

// productWebhook mirrors remote product edits. The body must carry a valid
// HMAC signature; unknown shops and products are acknowledged without effect
// so the remote platform does not retry forever.
func (h *Handler) productWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, &domain.ValidationError{Field: "body", Reason: "unreadable payload"})
		return
	}
	if !h.verifier.Verify(r, body) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid webhook signature"})
		return
	}

	shopDomain := r.Header.Get("X-Shopify-Shop-Domain")
	store, err := h.stores.GetByDomain(r.Context(), shopDomain)
	if err != nil {
		writeError(w, err)
		return
	}
	if store == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	var payload struct {
		ID       int64  `json:"id"`
		Title    string `json:"title"`
		BodyHTML string `json:"body_html"`
	}
	if err := decodeJSONBytes(body, &payload); err != nil {
		writeError(w, err)
		return
	}

	if err := h.productSvc.ApplyRemoteUpdate(r.Context(), store.ID, payload.ID, payload.Title, payload.BodyHTML); err != nil {
		h.logger.Error().Err(err).Str("shop", shopDomain).Int64("remote_product_id", payload.ID).Msg("Failed to apply product webhook")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
