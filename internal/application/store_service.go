package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storeseo-core/internal/domain"
	"storeseo-core/internal/ports"

	"github.com/rs/zerolog"
)

// StoreService manages connected merchant accounts: connection, credential
// rotation, status reporting, and uninstall cleanup.
type StoreService struct {
	stores        ports.StoreRepository
	products      ports.ProductRepository
	commerce      ports.CommerceClient
	encryptionSvc ports.EncryptionService
	logger        zerolog.Logger
}

// NewStoreService creates a new store management service.
func NewStoreService(
	stores ports.StoreRepository,
	products ports.ProductRepository,
	commerce ports.CommerceClient,
	encryptionSvc ports.EncryptionService,
	logger zerolog.Logger,
) *StoreService {
	return &StoreService{
		stores:        stores,
		products:      products,
		commerce:      commerce,
		encryptionSvc: encryptionSvc,
		logger:        logger,
	}
}

// Connect validates the credential against the remote platform and upserts
// the store record. An existing store (matched by domain) gets its credential
// rotated; a new store is created with default settings. The credential is
// encrypted before it reaches the persistent store.
func (s *StoreService) Connect(ctx context.Context, shopDomain, accessToken string) (*domain.Store, error) {
	if strings.TrimSpace(shopDomain) == "" {
		return nil, &domain.ValidationError{Field: "shop_domain", Reason: "is required"}
	}
	if strings.TrimSpace(accessToken) == "" {
		return nil, &domain.ValidationError{Field: "access_token", Reason: "is required"}
	}

	if _, err := s.commerce.GetShop(ctx, shopDomain, accessToken); err != nil {
		return nil, &domain.RemoteUnavailableError{Op: "connect", Err: err}
	}

	encrypted, err := s.encryptionSvc.Encrypt(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt access token: %w", err)
	}

	store, err := s.stores.GetByDomain(ctx, shopDomain)
	if err != nil {
		return nil, fmt.Errorf("failed to look up store: %w", err)
	}
	if store == nil {
		store = &domain.Store{
			ShopDomain: shopDomain,
			PlanType:   domain.PlanFree,
			Settings:   domain.DefaultSettings(),
		}
	}
	store.AccessToken = encrypted
	store.UpdatedAt = time.Now().UTC()

	if err := s.stores.Save(ctx, store); err != nil {
		return nil, fmt.Errorf("failed to save store: %w", err)
	}

	s.logger.Info().
		Str("shop_domain", shopDomain).
		Int64("store_id", store.ID).
		Msg("Store connected")

	return store, nil
}

// StoreStatus reports the current connection state and optimization
// statistics of a store.
type StoreStatus struct {
	Store            *domain.Store     `json:"store"`
	ConnectionStatus string            `json:"connection_status"`
	Stats            *ports.StoreStats `json:"statistics"`
	OptimizationRate float64           `json:"optimization_rate"`
}

// Status probes the remote connection and aggregates product optimization
// statistics for a store.
func (s *StoreService) Status(ctx context.Context, storeID int64) (*StoreStatus, error) {
	store, token, err := s.credentials(ctx, storeID)
	if err != nil {
		return nil, err
	}

	connection := "connected"
	if _, err := s.commerce.GetShop(ctx, store.ShopDomain, token); err != nil {
		s.logger.Warn().Err(err).Str("shop_domain", store.ShopDomain).Msg("Store connection probe failed")
		connection = "disconnected"
	}

	stats, err := s.products.StatsByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load store statistics: %w", err)
	}

	rate := 0.0
	if stats.TotalProducts > 0 {
		rate = float64(stats.OptimizedProducts) / float64(stats.TotalProducts) * 100
	}

	return &StoreStatus{
		Store:            store,
		ConnectionStatus: connection,
		Stats:            stats,
		OptimizationRate: rate,
	}, nil
}

// Disconnect removes a store on explicit uninstall.
func (s *StoreService) Disconnect(ctx context.Context, storeID int64) error {
	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return fmt.Errorf("failed to look up store: %w", err)
	}
	if store == nil {
		return &domain.NotFoundError{Resource: "store", ID: storeID}
	}
	if err := s.stores.Delete(ctx, storeID); err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}
	s.logger.Info().Int64("store_id", storeID).Str("shop_domain", store.ShopDomain).Msg("Store disconnected")
	return nil
}

// credentials loads a store and decrypts its access token.
func (s *StoreService) credentials(ctx context.Context, storeID int64) (*domain.Store, string, error) {
	return loadCredentials(ctx, s.stores, s.encryptionSvc, storeID)
}

// loadCredentials is shared by every service that talks to the remote
// platform on behalf of a store.
func loadCredentials(ctx context.Context, stores ports.StoreRepository, enc ports.EncryptionService, storeID int64) (*domain.Store, string, error) {
	store, err := stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up store: %w", err)
	}
	if store == nil {
		return nil, "", &domain.NotFoundError{Resource: "store", ID: storeID}
	}
	token, err := enc.Decrypt(store.AccessToken)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decrypt access token: %w", err)
	}
	return store, token, nil
}
