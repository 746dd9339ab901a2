package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joogo-hq/joogo-backend/internal/domain"
)

func fptr(f float64) *float64 { return &f }
func sptr(s string) *string   { return &s }

var testThresholds = StockThresholds{Low: 10, High: 100}

func TestStockStatus(t *testing.T) {
	// Zero or negative stock is always OUT, even with a safety quantity.
	assert.Equal(t, domain.StockStatusOut, StockStatus(0, fptr(5), testThresholds))
	assert.Equal(t, domain.StockStatusOut, StockStatus(-1, nil, testThresholds))

	// With a safety quantity the item's own bounds apply.
	assert.Equal(t, domain.StockStatusLow, StockStatus(4, fptr(5), testThresholds))
	assert.Equal(t, domain.StockStatusNormal, StockStatus(5, fptr(5), testThresholds))
	assert.Equal(t, domain.StockStatusNormal, StockStatus(9, fptr(5), testThresholds))
	// Exactly twice the safety quantity is already PLENTY.
	assert.Equal(t, domain.StockStatusPlenty, StockStatus(10, fptr(5), testThresholds))

	// Without one, the global thresholds apply.
	assert.Equal(t, domain.StockStatusLow, StockStatus(9, nil, testThresholds))
	assert.Equal(t, domain.StockStatusNormal, StockStatus(50, nil, testThresholds))
	assert.Equal(t, domain.StockStatusPlenty, StockStatus(100, nil, testThresholds))
}

func sampleItems() []domain.InventoryItem {
	return []domain.InventoryItem{
		{SKU: "S3", Name: "Wool Gloves", OptionName: "Red", Barcode: "880001", Qty: 0},
		{SKU: "S1", Name: "Cotton Socks", Barcode: "880002", Qty: 50, SafeQty: fptr(20), UnitCost: fptr(1200), UpdatedAt: sptr("2025-02-01T00:00:00Z")},
		{SKU: "S2", Name: "wool hat", Qty: 5, UnitCost: fptr(800)},
		{SKU: "S4", Name: "Scarf", Qty: 200, UnitCost: nil},
	}
}

func TestBuildFilteredSortedSearch(t *testing.T) {
	got := BuildFilteredSorted(sampleItems(), FilterSortParams{SearchTerm: "WOOL", Thresholds: testThresholds})
	require.Len(t, got, 2)
	// Search is case-insensitive and matches name, option name or barcode.
	got = BuildFilteredSorted(sampleItems(), FilterSortParams{SearchTerm: "880002", Thresholds: testThresholds})
	require.Len(t, got, 1)
	assert.Equal(t, "S1", got[0].SKU)
}

func TestBuildFilteredSortedStockFilter(t *testing.T) {
	got := BuildFilteredSorted(sampleItems(), FilterSortParams{StockFilter: "out", Thresholds: testThresholds})
	require.Len(t, got, 1)
	assert.Equal(t, "S3", got[0].SKU)

	got = BuildFilteredSorted(sampleItems(), FilterSortParams{StockFilter: "ALL", Thresholds: testThresholds})
	assert.Len(t, got, 4)
}

func TestBuildFilteredSortedByQtyDesc(t *testing.T) {
	got := BuildFilteredSorted(sampleItems(), FilterSortParams{SortKey: "qty", SortDir: "desc", Thresholds: testThresholds})
	require.Len(t, got, 4)
	assert.Equal(t, "S4", got[0].SKU)
	assert.Equal(t, "S3", got[3].SKU)
}

func TestBuildFilteredSortedNullOrdering(t *testing.T) {
	// Ascending with nulls last: the item without a unit cost sorts to the end.
	got := BuildFilteredSorted(sampleItems(), FilterSortParams{SortKey: "unit_cost", Thresholds: testThresholds})
	require.Len(t, got, 4)
	assert.Nil(t, got[3].UnitCost)

	got = BuildFilteredSorted(sampleItems(), FilterSortParams{SortKey: "unit_cost", NullsFirst: true, Thresholds: testThresholds})
	assert.Nil(t, got[0].UnitCost)
}

func TestBuildFilteredSortedNullOrderingIgnoresDirection(t *testing.T) {
	items := []domain.InventoryItem{
		{SKU: "A", Name: "a", Qty: 1, UnitCost: fptr(5)},
		{SKU: "B", Name: "b", Qty: 1, UnitCost: nil},
	}

	// Nulls last stays last under desc; only the non-null values reverse.
	got := BuildFilteredSorted(items, FilterSortParams{SortKey: "unit_cost", SortDir: "desc", Thresholds: testThresholds})
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].SKU)
	assert.Nil(t, got[1].UnitCost)

	// And nulls first stays first under desc.
	got = BuildFilteredSorted(items, FilterSortParams{SortKey: "unit_cost", SortDir: "desc", NullsFirst: true, Thresholds: testThresholds})
	assert.Nil(t, got[0].UnitCost)

	// Present values still reverse around the pinned nulls.
	withCosts := []domain.InventoryItem{
		{SKU: "CHEAP", Name: "c", Qty: 1, UnitCost: fptr(100)},
		{SKU: "DEAR", Name: "d", Qty: 1, UnitCost: fptr(900)},
		{SKU: "NONE", Name: "n", Qty: 1},
	}
	got = BuildFilteredSorted(withCosts, FilterSortParams{SortKey: "unit_cost", SortDir: "desc", Thresholds: testThresholds})
	require.Len(t, got, 3)
	assert.Equal(t, "DEAR", got[0].SKU)
	assert.Equal(t, "CHEAP", got[1].SKU)
	assert.Nil(t, got[2].UnitCost)
}

func TestBuildFilteredSortedStable(t *testing.T) {
	items := []domain.InventoryItem{
		{SKU: "B", Name: "same", Qty: 10},
		{SKU: "A", Name: "same", Qty: 10},
	}
	got := BuildFilteredSorted(items, FilterSortParams{SortKey: "qty", Thresholds: testThresholds})
	require.Len(t, got, 2)
	// Equal keys keep input order.
	assert.Equal(t, "B", got[0].SKU)
	assert.Equal(t, "A", got[1].SKU)
}

func TestBuildFilteredSortedDoesNotMutateInput(t *testing.T) {
	items := sampleItems()
	BuildFilteredSorted(items, FilterSortParams{SortKey: "qty", SortDir: "desc", Thresholds: testThresholds})
	assert.Equal(t, "S3", items[0].SKU)
}
