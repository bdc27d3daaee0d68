package main

import (
	"net/http"
	"os"

	"storeseo-core/internal/application"
	"storeseo-core/internal/infrastructure/ai"
	apiinfra "storeseo-core/internal/infrastructure/api"
	"storeseo-core/internal/infrastructure/cache"
	"storeseo-core/internal/infrastructure/encryption"
	metricsmiddleware "storeseo-core/internal/infrastructure/middleware"
	"storeseo-core/internal/infrastructure/repository"
	shopifyinfra "storeseo-core/internal/infrastructure/shopify"
	"storeseo-core/internal/ports"
	"storeseo-core/internal/seo"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	// Get configuration from environment
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = "sqlite://storeseo.db"
	}

	encryptionKey := os.Getenv("ENCRYPTION_KEY")
	if encryptionKey == "" {
		logger.Fatal().Msg("ENCRYPTION_KEY environment variable is required")
	}

	// Connect to the database
	db, err := repository.Open(databaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() {
		if err := repository.Close(db); err != nil {
			logger.Warn().Err(err).Msg("Failed to close database")
		}
	}()

	// Initialize infrastructure (implementations)
	encryptionService, err := encryption.NewService(encryptionKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}

	var cacheLayer ports.Cache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cacheLayer, err = cache.NewRedisCache(redisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
	} else {
		logger.Warn().Msg("REDIS_URL not set, caching disabled")
		cacheLayer = cache.NewNoopCache()
	}

	// Text generation provider: an OpenAI-compatible endpoint when an API key
	// is configured, otherwise the deterministic local provider.
	var provider ports.TextProvider
	if apiKey := os.Getenv("AI_API_KEY"); apiKey != "" {
		provider = ai.NewProvider(apiKey, os.Getenv("AI_BASE_URL"), os.Getenv("AI_MODEL"), logger)
	} else {
		logger.Warn().Msg("AI_API_KEY not set, using deterministic template generation")
		provider = ai.NewLocalProvider()
	}

	commerceClient := shopifyinfra.NewClient(
		os.Getenv("SHOPIFY_API_KEY"),
		os.Getenv("SHOPIFY_API_SECRET"),
		logger,
	)
	webhookVerifier := shopifyinfra.NewWebhookVerifier(os.Getenv("SHOPIFY_API_SECRET"))

	// Initialize repositories
	storeRepo := repository.NewStoreRepository(db)
	productRepo := repository.NewProductRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	keywordRepo := repository.NewKeywordRepository(db)
	taskLedger := repository.NewTaskRepository(db)

	detector := seo.NewDetector(os.Getenv("DEFAULT_LANGUAGE"))

	// Initialize application services
	storeService := application.NewStoreService(storeRepo, productRepo, commerceClient, encryptionService, logger)
	productService := application.NewProductSyncService(storeRepo, productRepo, commerceClient, encryptionService, taskLedger, logger)
	blogService := application.NewBlogSyncService(storeRepo, articleRepo, commerceClient, encryptionService, cacheLayer, taskLedger, detector, logger)
	contentService := application.NewContentService(provider, taskLedger, detector, logger)
	keywordService := application.NewKeywordService(keywordRepo, provider, taskLedger, logger)

	handler := apiinfra.NewHandler(
		storeService,
		productService,
		blogService,
		contentService,
		keywordService,
		taskLedger,
		storeRepo,
		webhookVerifier,
		logger,
	)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metricsmiddleware.Metrics())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	handler.Register(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("Starting API server")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
