package api

// ProductListRequest is the payload for listing all products.
type ProductListRequest struct {
	Token string `json:"token"`
}

// ProductByIDRequest is the payload for fetching a single product.
type ProductByIDRequest struct {
	Token     string `json:"token"`
	ProductID string `json:"productId"`
}

// MarketplaceRequest is the payload for listing products by marketplace.
type MarketplaceRequest struct {
	Token           string `json:"token"`
	MarketplaceType string `json:"marketplaceType"`
}

// AccountRequest is the payload for the account-profile and contact-info
// lookups. The field name follows the CRM attribute rather than Go casing
// to stay wire compatible with the dashboard.
type AccountRequest struct {
	Token     string `json:"token"`
	AccountID string `json:"accountid"`
}
