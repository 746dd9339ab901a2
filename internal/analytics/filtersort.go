package analytics

import (
	"sort"
	"strings"

	"github.com/joogo-hq/joogo-backend/internal/domain"
)

// StockThresholds are the global fallbacks used when an item carries no safety
// quantity of its own.
type StockThresholds struct {
	Low  float64
	High float64
}

// FilterSortParams drives the inventory list pipeline. NullOrder is explicit
// because sorting nullable columns must not depend on a language default.
type FilterSortParams struct {
	SearchTerm  string
	StockFilter string // "" or one of the stock status constants
	SortKey     string // sku, name, qty, safe_qty, unit_cost, updated_at
	SortDir     string // asc (default) or desc
	NullsFirst  bool
	Thresholds  StockThresholds
}

// StockStatus classifies an item's quantity. Zero or negative stock is OUT
// regardless of the safety quantity; with a known safety quantity the bounds
// are qty < safe → LOW and qty >= 2*safe → PLENTY (boundary inclusive);
// otherwise the global thresholds apply.
func StockStatus(qty float64, safeQty *float64, th StockThresholds) string {
	if qty <= 0 {
		return domain.StockStatusOut
	}
	if safeQty != nil && *safeQty > 0 {
		switch {
		case qty < *safeQty:
			return domain.StockStatusLow
		case qty >= 2*(*safeQty):
			return domain.StockStatusPlenty
		default:
			return domain.StockStatusNormal
		}
	}
	switch {
	case qty < th.Low:
		return domain.StockStatusLow
	case qty >= th.High:
		return domain.StockStatusPlenty
	default:
		return domain.StockStatusNormal
	}
}

// BuildFilteredSorted filters items by free-text search and stock status, then
// sorts by the chosen key. Pure and deterministic: the input slice is not
// mutated and equal keys keep their relative input order (stable sort).
func BuildFilteredSorted(items []domain.InventoryItem, params FilterSortParams) []domain.InventoryItem {
	out := make([]domain.InventoryItem, 0, len(items))

	search := strings.ToLower(strings.TrimSpace(params.SearchTerm))
	statusFilter := strings.ToUpper(strings.TrimSpace(params.StockFilter))
	if statusFilter == "ALL" {
		statusFilter = ""
	}

	for _, it := range items {
		if search != "" && !matchesSearch(it, search) {
			continue
		}
		if statusFilter != "" && StockStatus(it.Qty, it.SafeQty, params.Thresholds) != statusFilter {
			continue
		}
		out = append(out, it)
	}

	desc := strings.EqualFold(params.SortDir, "desc")
	key := strings.ToLower(strings.TrimSpace(params.SortKey))

	sort.SliceStable(out, func(i, j int) bool {
		// Null placement is positional, like SQL NULLS FIRST/LAST: a null
		// key sorts to the chosen end regardless of direction.
		ni, nj := sortKeyIsNull(out[i], key), sortKeyIsNull(out[j], key)
		if ni != nj {
			if params.NullsFirst {
				return ni
			}
			return nj
		}
		c := compareItems(out[i], out[j], key)
		if desc {
			return c > 0
		}
		return c < 0
	})

	return out
}

// sortKeyIsNull reports whether the item's sort key is absent.
func sortKeyIsNull(a domain.InventoryItem, key string) bool {
	switch key {
	case "safe_qty":
		return a.SafeQty == nil
	case "unit_cost":
		return a.UnitCost == nil
	case "updated_at":
		return a.UpdatedAt == nil
	default:
		return false
	}
}

// matchesSearch is a case-insensitive substring match across name, option
// name and barcode; the first hit wins.
func matchesSearch(it domain.InventoryItem, search string) bool {
	for _, field := range []string{it.Name, it.OptionName, it.Barcode} {
		if field != "" && strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// compareItems returns <0, 0 or >0 in ascending terms. Null placement has
// already been decided by the caller; a nullable key only reaches its
// comparator with both values present or both absent.
func compareItems(a, b domain.InventoryItem, key string) int {
	switch key {
	case "qty":
		return compareFloat(a.Qty, b.Qty)
	case "safe_qty":
		return compareNullableFloat(a.SafeQty, b.SafeQty)
	case "unit_cost":
		return compareNullableFloat(a.UnitCost, b.UnitCost)
	case "updated_at":
		return compareNullableString(a.UpdatedAt, b.UpdatedAt)
	case "sku":
		return compareString(a.SKU, b.SKU)
	default:
		return compareString(a.Name, b.Name)
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareNullableFloat(a, b *float64) int {
	if a == nil || b == nil {
		return 0
	}
	return compareFloat(*a, *b)
}

func compareNullableString(a, b *string) int {
	if a == nil || b == nil {
		return 0
	}
	return compareString(*a, *b)
}
