package dynamics

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kf-platform/crm-proxy/internal/httpclient"
)

// Client wraps low-level HTTP communication with the Dynamics Web API.
// The bearer token is supplied per request by the caller; the client holds
// no credential state and a single instance serves all inbound requests.
type Client struct {
	logger  *zap.Logger
	exec    *httpclient.Executor
	baseURL string
}

// NewClient constructs a Dynamics Web API client rooted at baseURL
// (e.g. "https://org.crm15.dynamics.com/api/data/v9.2").
func NewClient(logger *zap.Logger, baseURL string) *Client {
	exec := httpclient.New(logger, &http.Client{Timeout: 30 * time.Second}, "dynamics")
	return &Client{
		logger:  logger,
		exec:    exec,
		baseURL: baseURL,
	}
}

// ListProducts fetches the full product entity set with a total count.
// GET {base}/products?$count=true
func (c *Client) ListProducts(ctx context.Context, token string) (*ODataCollection, error) {
	var out ODataCollection
	if err := c.getJSON(ctx, token, productsPath(""), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProductsByMarketplace fetches products restricted to a marketplace
// selector. GET {base}/products?$filter=...&$count=true
func (c *Client) ListProductsByMarketplace(ctx context.Context, token, marketplaceType string) (*ODataCollection, error) {
	var out ODataCollection
	if err := c.getJSON(ctx, token, productsPath(MarketplaceFilter(marketplaceType)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct fetches a single product by key.
// GET {base}/products({id})
func (c *Client) GetProduct(ctx context.Context, token, productID string) (json.RawMessage, error) {
	return c.getRaw(ctx, token, productByIDPath(productID))
}

// GetAccountProfile fetches the account record matching the given id.
// GET {base}/accounts?$filter=accountid eq '{id}'
func (c *Client) GetAccountProfile(ctx context.Context, token, accountID string) (json.RawMessage, error) {
	return c.getRaw(ctx, token, accountByIDPath(accountID))
}

// GetContact fetches a contact record by key.
// GET {base}/contacts({id})
func (c *Client) GetContact(ctx context.Context, token, contactID string) (json.RawMessage, error) {
	return c.getRaw(ctx, token, contactByIDPath(contactID))
}

// getJSON performs an authenticated GET request and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, token, path string, out any) error {
	req, err := c.newGetRequest(ctx, token, path)
	if err != nil {
		return err
	}
	return c.exec.DoJSON(ctx, req, out)
}

// getRaw performs an authenticated GET request and returns the body verbatim,
// for endpoints that forward the CRM payload untouched.
func (c *Client) getRaw(ctx context.Context, token, path string) (json.RawMessage, error) {
	req, err := c.newGetRequest(ctx, token, path)
	if err != nil {
		return nil, err
	}
	body, err := c.exec.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (c *Client) newGetRequest(ctx context.Context, token, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	setHeaders(req, token)
	return req, nil
}

// setHeaders sets the fixed headers required by the Dynamics Web API.
func setHeaders(req *http.Request, bearerToken string) {
	req.Header.Set("Authorization", "Bearer "+bearerToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("OData-Version", "4.0")
	req.Header.Set("OData-MaxVersion", "4.0")
}
