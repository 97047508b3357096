package dynamics

//
// ────────────────────────────────────────────────
//   Identity Platform: Token Types
// ────────────────────────────────────────────────
//

// CredentialBundle holds the client-credentials grant parameters.
// It is read once at startup and immutable for the process lifetime.
type CredentialBundle struct {
	ClientID     string
	ClientSecret string
	Scope        string
	GrantType    string
}

// TokenResponse is the response from the Microsoft identity platform token
// endpoint. Expiry is reported by the provider but deliberately not tracked:
// the proxy hands the token to the caller and retains nothing.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

//
// ────────────────────────────────────────────────
//   Dynamics Web API: OData Payloads
// ────────────────────────────────────────────────
//

// ODataCollection is the raw shape of an OData entity-set response.
// Product records are opaque to the proxy except for the marketplace field,
// so entries stay generic maps.
type ODataCollection struct {
	Count *int64           `json:"@odata.count"`
	Value []map[string]any `json:"value"`
}

// ProductCollection is the normalized result handed to the API layer.
// TotalCount is always present, defaulting to 0 when the upstream payload
// carries no @odata.count.
type ProductCollection struct {
	TotalCount int64            `json:"totalCount"`
	Items      []map[string]any `json:"items"`
}

// ODataError is the structured error detail Dynamics returns on failure.
type ODataError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// ODataErrorResponse represents an error response from the Dynamics Web API.
type ODataErrorResponse struct {
	Error ODataError `json:"error"`
}

//
// ────────────────────────────────────────────────
//   Marketplace Classification
// ────────────────────────────────────────────────
//

// Dynamics stores the marketplace classification as an option-set code on
// kf_marketplace. Only the Financial code maps to the "Financial" label;
// every other value, including null and absent, reads as "Non-Financial".
const (
	MarketplaceField = "kf_marketplace"

	MarketplaceFinancialCode    int64 = 123950000
	MarketplaceNonFinancialCode int64 = 123950001

	MarketplaceFinancial    = "Financial"
	MarketplaceNonFinancial = "Non-Financial"
	MarketplaceAll          = "All"
)
