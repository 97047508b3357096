package api

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/kf-platform/crm-proxy/internal/dynamics"
	"github.com/kf-platform/crm-proxy/internal/httpclient"
	"github.com/kf-platform/crm-proxy/internal/metrics"
)

// TokenAcquirer defines the token exchange operation used by the handler.
type TokenAcquirer interface {
	AcquireToken(ctx context.Context) (string, error)
}

// CRMService defines the Dynamics query operations used by the handler.
type CRMService interface {
	FetchAllProducts(ctx context.Context, token string) (*dynamics.ProductCollection, error)
	FetchProductsByMarketplace(ctx context.Context, token, marketplaceType string) (*dynamics.ProductCollection, error)
	FetchProductByID(ctx context.Context, token, productID string) (json.RawMessage, error)
	FetchAccountProfile(ctx context.Context, token, accountID string) (json.RawMessage, error)
	FetchContactInfo(ctx context.Context, token, contactID string) (json.RawMessage, error)
}

// tokenCookieMaxAge matches the browser session length the dashboard expects.
const tokenCookieMaxAge = 7 * 24 * 60 * 60 // seconds

// Handler handles HTTP API requests for token acquisition and CRM queries.
type Handler struct {
	logger      *zap.Logger
	tokens      TokenAcquirer
	crm         CRMService
	tokenCookie bool
}

// NewHandler creates a new Handler. When tokenCookie is true the get-token
// endpoint additionally sets a browser cookie carrying the token; the
// response body is identical either way.
func NewHandler(logger *zap.Logger, tokens TokenAcquirer, crm CRMService, tokenCookie bool) *Handler {
	return &Handler{
		logger:      logger,
		tokens:      tokens,
		crm:         crm,
		tokenCookie: tokenCookie,
	}
}

// GetTokenHandler performs the client-credentials exchange and hands the
// token to the caller. Nothing about the token is retained server side.
func (h *Handler) GetTokenHandler(c *fiber.Ctx) error {
	token, err := h.tokens.AcquireToken(c.Context())
	if err != nil {
		h.logger.Error("api.get_token.failed",
			zap.Int("upstream_status", upstreamStatus(err)),
			zap.Error(err))
		return c.Status(failureStatus(err)).JSON(fiber.Map{
			"error": "Failed to fetch token",
		})
	}

	if h.tokenCookie {
		c.Cookie(&fiber.Cookie{
			Name:     "token",
			Value:    token,
			HTTPOnly: true,
			Secure:   true,
			SameSite: fiber.CookieSameSiteNoneMode,
			MaxAge:   tokenCookieMaxAge,
		})
	}

	return c.Status(fiber.StatusOK).JSON(TokenResponse{
		Message: "Token fetched successfully",
		Token:   token,
	})
}

// GetAccountProfileHandler forwards the account lookup and returns the raw
// CRM payload.
func (h *Handler) GetAccountProfileHandler(c *fiber.Ctx) error {
	var req AccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "get_account_profile", err.Error())
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "get_account_profile", err.Error())
	}

	raw, err := h.crm.FetchAccountProfile(c.Context(), req.Token, req.AccountID)
	if err != nil {
		h.logger.Error("api.get_account_profile.failed",
			zap.String("accountid", req.AccountID),
			zap.Int("upstream_status", upstreamStatus(err)),
			zap.Error(err))
		return c.Status(failureStatus(err)).JSON(fiber.Map{
			"error": failureDetails(err),
		})
	}

	return c.Status(fiber.StatusOK).Type("json").Send(raw)
}

// GetContactInfoHandler forwards the contact lookup and returns the raw
// CRM payload.
func (h *Handler) GetContactInfoHandler(c *fiber.Ctx) error {
	var req AccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "get_contact_info", err.Error())
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "get_contact_info", err.Error())
	}

	raw, err := h.crm.FetchContactInfo(c.Context(), req.Token, req.AccountID)
	if err != nil {
		h.logger.Error("api.get_contact_info.failed",
			zap.String("accountid", req.AccountID),
			zap.Int("upstream_status", upstreamStatus(err)),
			zap.Error(err))
		return c.Status(failureStatus(err)).JSON(fiber.Map{
			"error": failureDetails(err),
		})
	}

	return c.Status(fiber.StatusOK).Type("json").Send(raw)
}

// ListProductsHandler returns the full normalized product set.
func (h *Handler) ListProductsHandler(c *fiber.Ctx) error {
	var req ProductListRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "list_products", err.Error())
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "list_products", err.Error())
	}

	products, err := h.crm.FetchAllProducts(c.Context(), req.Token)
	if err != nil {
		h.logger.Error("api.list_products.failed",
			zap.Int("upstream_status", upstreamStatus(err)),
			zap.Error(err))
		return c.Status(failureStatus(err)).JSON(ErrorResponse{
			Error:   "Failed to fetch products",
			Details: failureDetails(err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(ProductListResponse{
		Success:    true,
		Message:    "Products fetched successfully",
		TotalCount: products.TotalCount,
		Data:       products.Items,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// GetProductHandler returns a single product record.
func (h *Handler) GetProductHandler(c *fiber.Ctx) error {
	var req ProductByIDRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "get_product", err.Error())
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "get_product", err.Error())
	}

	product, err := h.crm.FetchProductByID(c.Context(), req.Token, req.ProductID)
	if err != nil {
		h.logger.Error("api.get_product.failed",
			zap.String("product_id", req.ProductID),
			zap.Int("upstream_status", upstreamStatus(err)),
			zap.Error(err))
		return c.Status(failureStatus(err)).JSON(ErrorResponse{
			Error:   "Failed to fetch product",
			Details: failureDetails(err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(ProductResponse{
		Success:   true,
		Message:   "Product fetched successfully",
		Data:      product,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// MarketplaceProductsHandler returns the normalized product set for a
// marketplace selector.
func (h *Handler) MarketplaceProductsHandler(c *fiber.Ctx) error {
	var req MarketplaceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "marketplace_products", err.Error())
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, "marketplace_products", err.Error())
	}

	products, err := h.crm.FetchProductsByMarketplace(c.Context(), req.Token, req.MarketplaceType)
	if err != nil {
		h.logger.Error("api.marketplace_products.failed",
			zap.String("marketplace_type", req.MarketplaceType),
			zap.Int("upstream_status", upstreamStatus(err)),
			zap.Error(err))
		return c.Status(failureStatus(err)).JSON(ErrorResponse{
			Error:   "Failed to fetch marketplace products",
			Details: failureDetails(err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(ProductListResponse{
		Success:    true,
		Message:    req.MarketplaceType + " products fetched successfully",
		TotalCount: products.TotalCount,
		Data:       products.Items,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// badRequest short-circuits a request that failed field validation. These
// never reach the network and are counted separately from upstream failures.
func badRequest(c *fiber.Ctx, operation, msg string) error {
	metrics.IncValidationFailure(operation)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// failureStatus maps a service error to the HTTP status returned to the
// caller: the upstream status when one is known, else 500.
func failureStatus(err error) int {
	var ue *httpclient.UpstreamError
	if errors.As(err, &ue) {
		return ue.Status
	}
	return fiber.StatusInternalServerError
}

// failureDetails extracts the upstream error body when present, else the
// error message.
func failureDetails(err error) any {
	var ue *httpclient.UpstreamError
	if errors.As(err, &ue) {
		if d := ue.Details(); d != nil {
			return d
		}
	}
	return err.Error()
}

// upstreamStatus reports the upstream status for logging, 0 when none.
func upstreamStatus(err error) int {
	var ue *httpclient.UpstreamError
	if errors.As(err, &ue) {
		return ue.Status
	}
	return 0
}
