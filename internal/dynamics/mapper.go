package dynamics

//
// ────────────────────────────────────────────────
//   Mapper – Normalizes Raw OData Payloads
// ────────────────────────────────────────────────
//

// Mapper translates raw OData payloads into the proxy's normalized shapes.
type Mapper struct{}

// NewMapper constructs a Mapper instance.
func NewMapper() *Mapper { return &Mapper{} }

// NormalizeCollection maps a raw OData collection into a ProductCollection.
// The transform is pure: the input is never mutated (each record is copied
// before the marketplace field is rewritten), item order is preserved, and
// a missing @odata.count defaults to 0 rather than disappearing.
func (m *Mapper) NormalizeCollection(raw *ODataCollection) *ProductCollection {
	result := &ProductCollection{
		Items: make([]map[string]any, 0, len(raw.Value)),
	}
	if raw.Count != nil {
		result.TotalCount = *raw.Count
	}

	for _, record := range raw.Value {
		item := make(map[string]any, len(record))
		for k, v := range record {
			item[k] = v
		}
		item[MarketplaceField] = MarketplaceLabel(record[MarketplaceField])
		result.Items = append(result.Items, item)
	}

	return result
}

// MarketplaceLabel maps a raw marketplace option-set value to its display
// label. Only the exact Financial code yields "Financial"; every other
// value, including null, absent, and non-numeric junk, is "Non-Financial".
func MarketplaceLabel(v any) string {
	switch code := v.(type) {
	case float64: // encoding/json decodes option-set codes as float64
		if int64(code) == MarketplaceFinancialCode {
			return MarketplaceFinancial
		}
	case int64:
		if code == MarketplaceFinancialCode {
			return MarketplaceFinancial
		}
	case int:
		if int64(code) == MarketplaceFinancialCode {
			return MarketplaceFinancial
		}
	}
	return MarketplaceNonFinancial
}
