package dynamics

import (
	"fmt"
	"net/url"
)

// MarketplaceFilter returns the OData $filter expression for a marketplace
// selector. "All" means no filter. Any unrecognized selector falls back to
// the Non-Financial clause rather than failing; callers that typo a selector
// get Non-Financial data. Kept for wire compatibility with the dashboard.
func MarketplaceFilter(marketplaceType string) string {
	switch marketplaceType {
	case MarketplaceFinancial:
		return fmt.Sprintf("%s eq %d", MarketplaceField, MarketplaceFinancialCode)
	case MarketplaceAll:
		return ""
	default:
		// Non-Financial and anything else: the classification is optional on
		// product records, so null counts as Non-Financial.
		return fmt.Sprintf("(%s eq %d or %s eq null)",
			MarketplaceField, MarketplaceNonFinancialCode, MarketplaceField)
	}
}

// productsPath builds the entity-set path for product list queries.
// $count=true is always requested so the normalizer can report totals.
func productsPath(filter string) string {
	if filter == "" {
		return "/products?$count=true"
	}
	return "/products?$filter=" + url.QueryEscape(filter) + "&$count=true"
}

// productByIDPath builds the entity-by-key path for a single product.
func productByIDPath(productID string) string {
	return fmt.Sprintf("/products(%s)", productID)
}

// accountByIDPath builds the filtered account lookup used by the profile
// endpoint. Dynamics expects the GUID quoted inside the filter expression.
func accountByIDPath(accountID string) string {
	return "/accounts?$filter=" + url.QueryEscape(fmt.Sprintf("accountid eq '%s'", accountID))
}

// contactByIDPath builds the entity-by-key path for a contact record.
func contactByIDPath(contactID string) string {
	return fmt.Sprintf("/contacts(%s)", contactID)
}
