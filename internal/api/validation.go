package api

import (
	"fmt"

	"github.com/google/uuid"
)

// Validate checks that ProductListRequest has all required fields.
func (r *ProductListRequest) Validate() error {
	if r.Token == "" {
		return fmt.Errorf("Token is required")
	}
	return nil
}

// Validate checks that ProductByIDRequest has all required fields and that
// the product id is a well-formed GUID. Dynamics keys are GUIDs; rejecting
// malformed ids here keeps arbitrary text out of the entity-by-key URL.
func (r *ProductByIDRequest) Validate() error {
	if r.Token == "" || r.ProductID == "" {
		return fmt.Errorf("Token and productId are required")
	}
	if _, err := uuid.Parse(r.ProductID); err != nil {
		return fmt.Errorf("productId must be a valid GUID")
	}
	return nil
}

// Validate checks that MarketplaceRequest has all required fields.
// The marketplace selector itself is not validated against the known set:
// unrecognized values fall back to the Non-Financial filter downstream.
func (r *MarketplaceRequest) Validate() error {
	if r.Token == "" || r.MarketplaceType == "" {
		return fmt.Errorf("Token and marketplaceType are required")
	}
	return nil
}

// Validate checks that AccountRequest has all required fields and a
// well-formed GUID identifier.
func (r *AccountRequest) Validate() error {
	if r.Token == "" || r.AccountID == "" {
		return fmt.Errorf("Token and accountid are required")
	}
	if _, err := uuid.Parse(r.AccountID); err != nil {
		return fmt.Errorf("accountid must be a valid GUID")
	}
	return nil
}
