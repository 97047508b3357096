package api

import "encoding/json"

// TokenResponse is the body returned by the get-token endpoint.
type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ProductListResponse is the success envelope for product collection
// endpoints. Timestamp marks response construction, not the upstream fetch.
type ProductListResponse struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	TotalCount int64            `json:"totalCount"`
	Data       []map[string]any `json:"data"`
	Timestamp  string           `json:"timestamp"`
}

// ProductResponse is the success envelope for the single-product endpoint.
// Data carries the CRM record verbatim; there is no count for a by-key fetch.
type ProductResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

// ErrorResponse is the failure shape for product endpoints. Details carries
// the upstream error body when one exists, else the local error message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}
