package dynamics

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Service orchestrates Dynamics Web API operations: authenticated product
// queries and raw account/contact lookups, with normalization applied to
// collection results. It is stateless; concurrent requests share nothing
// but the underlying HTTP client.
type Service struct {
	logger *zap.Logger
	client *Client
	mapper *Mapper
}

// NewService constructs a fully wired Dynamics service.
func NewService(logger *zap.Logger, client *Client) *Service {
	return &Service{
		logger: logger,
		client: client,
		mapper: NewMapper(),
	}
}

// FetchAllProducts returns the normalized full product set.
func (s *Service) FetchAllProducts(ctx context.Context, token string) (*ProductCollection, error) {
	raw, err := s.client.ListProducts(ctx, token)
	if err != nil {
		s.logger.Error("dynamics.fetch_products.failed", zap.Error(err))
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	result := s.mapper.NormalizeCollection(raw)

	s.logger.Info("dynamics.products_fetched",
		zap.Int64("total_count", result.TotalCount),
		zap.Int("returned", len(result.Items)))

	return result, nil
}

// FetchProductsByMarketplace returns the normalized product set restricted
// to a marketplace selector ("Financial", "Non-Financial", "All").
func (s *Service) FetchProductsByMarketplace(ctx context.Context, token, marketplaceType string) (*ProductCollection, error) {
	raw, err := s.client.ListProductsByMarketplace(ctx, token, marketplaceType)
	if err != nil {
		s.logger.Error("dynamics.fetch_marketplace_products.failed",
			zap.String("marketplace_type", marketplaceType),
			zap.Error(err))
		return nil, fmt.Errorf("fetch %s products: %w", marketplaceType, err)
	}

	result := s.mapper.NormalizeCollection(raw)

	s.logger.Info("dynamics.marketplace_products_fetched",
		zap.String("marketplace_type", marketplaceType),
		zap.Int64("total_count", result.TotalCount),
		zap.Int("returned", len(result.Items)))

	return result, nil
}

// FetchProductByID returns a single product record verbatim.
func (s *Service) FetchProductByID(ctx context.Context, token, productID string) (json.RawMessage, error) {
	raw, err := s.client.GetProduct(ctx, token, productID)
	if err != nil {
		s.logger.Error("dynamics.fetch_product.failed",
			zap.String("product_id", productID),
			zap.Error(err))
		return nil, fmt.Errorf("fetch product %s: %w", productID, err)
	}
	return raw, nil
}

// FetchAccountProfile returns the raw CRM payload for an account lookup.
func (s *Service) FetchAccountProfile(ctx context.Context, token, accountID string) (json.RawMessage, error) {
	raw, err := s.client.GetAccountProfile(ctx, token, accountID)
	if err != nil {
		s.logger.Error("dynamics.fetch_account_profile.failed",
			zap.String("account_id", accountID),
			zap.Error(err))
		return nil, fmt.Errorf("fetch account profile %s: %w", accountID, err)
	}
	return raw, nil
}

// FetchContactInfo returns the raw CRM payload for a contact lookup.
func (s *Service) FetchContactInfo(ctx context.Context, token, contactID string) (json.RawMessage, error) {
	raw, err := s.client.GetContact(ctx, token, contactID)
	if err != nil {
		s.logger.Error("dynamics.fetch_contact.failed",
			zap.String("contact_id", contactID),
			zap.Error(err))
		return nil, fmt.Errorf("fetch contact %s: %w", contactID, err)
	}
	return raw, nil
}
