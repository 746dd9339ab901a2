package ingest

// PriceFields is the resolved price pair. Nil means no candidate was present
// anywhere in the chain; a literal 0 is a valid price and survives resolution.
type PriceFields struct {
	SellingPrice *float64 `json:"selling_price"`
	CostPrice    *float64 `json:"cost_price"`
}

// priceCandidate is one (source, field) pair in a resolution chain. Sources
// are evaluated in order and the first *present* value wins: presence, not
// truthiness, so zero does not fall through to the next candidate.
type priceCandidate struct {
	source string // "meta" or "original"
	field  string
}

var sellingChain = []priceCandidate{
	{"meta", "selling_price"},
	{"meta", "price"},
	{"meta", "판매가"},
	{"original", "selling_price"},
	{"original", "price"},
	{"original", "판매가"},
}

var costChain = []priceCandidate{
	{"meta", "cost_price"},
	{"meta", "원가"},
	{"original", "cost_price"},
	{"original", "원가"},
}

// ResolvePrice resolves selling and cost price from item metadata, falling
// back to a secondary source (typically the originally ingested row) only when
// the primary source yields no candidate at all.
func ResolvePrice(meta map[string]interface{}, original map[string]interface{}) PriceFields {
	sources := map[string]map[string]interface{}{
		"meta":     meta,
		"original": original,
	}

	resolve := func(chain []priceCandidate) *float64 {
		for _, c := range chain {
			src := sources[c.source]
			if src == nil {
				continue
			}
			v, ok := lookupField(src, c.field)
			if !ok {
				continue
			}
			if f := ParseNumber(v); f != nil {
				return f
			}
		}
		return nil
	}

	return PriceFields{
		SellingPrice: resolve(sellingChain),
		CostPrice:    resolve(costChain),
	}
}

// lookupField finds a field by sanitized header name so "Selling Price" and
// "selling_price" hit the same candidate. A key that is present with a nil
// value counts as absent.
func lookupField(src map[string]interface{}, field string) (interface{}, bool) {
	want := normalizeHeader(field)
	for k, v := range src {
		if normalizeHeader(k) == want {
			if v == nil {
				return nil, false
			}
			if s, isStr := v.(string); isStr && s == "" {
				return nil, false
			}
			return v, true
		}
	}
	return nil, false
}
