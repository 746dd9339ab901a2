package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joogo-hq/joogo-backend/internal/domain"
)

func defaultParams() ReorderParams {
	return ReorderParams{
		LeadTimeDays:  7,
		Z:             1.65,
		UrgentGapDays: 3,
		ReviewGapDays: 7,
	}
}

func dailies(sku string, qtys ...float64) []domain.DailyQty {
	out := make([]domain.DailyQty, 0, len(qtys))
	for i, q := range qtys {
		out = append(out, domain.DailyQty{SKU: sku, SaleDate: "2025-01-0" + string(rune('1'+i)), Qty: q})
	}
	return out
}

func TestComputeReorderStatsFormula(t *testing.T) {
	// avg=10, sample std=sqrt(10): reorder point = 10*7 + sqrt(10)*sqrt(7)*1.65
	stock := 100.0
	stats := ComputeReorderStats(
		dailies("A", 10, 12, 8, 14, 6),
		[]domain.SKUMeta{{SKU: "A", StockOnHand: &stock}},
		defaultParams(),
	)

	require.Len(t, stats, 1)
	s := stats[0]
	assert.InDelta(t, 10.0, s.AvgDaily, 1e-9)
	assert.InDelta(t, 3.16228, s.StdDaily, 1e-4)
	assert.InDelta(t, 83.8049, s.ReorderPoint, 1e-3)
	assert.InDelta(t, 10.0, s.DaysOfSupply, 1e-9)
	assert.InDelta(t, (100-83.8049)/10, s.ReorderGapDays, 1e-3)
}

func TestComputeReorderStatsZeroDemandGuards(t *testing.T) {
	stock := 40.0
	stats := ComputeReorderStats(
		dailies("Z", 0, 0, 0),
		[]domain.SKUMeta{{SKU: "Z", StockOnHand: &stock}},
		defaultParams(),
	)

	require.Len(t, stats, 1)
	s := stats[0]
	assert.Equal(t, 0.0, s.AvgDaily)
	assert.Equal(t, 0.0, s.ReorderPoint)
	// No division by zero: zero average demand reports zero supply and gap.
	assert.Equal(t, 0.0, s.DaysOfSupply)
	assert.Equal(t, 0.0, s.ReorderGapDays)
}

func TestComputeReorderStatsSingleObservation(t *testing.T) {
	stats := ComputeReorderStats(dailies("S", 5), nil, defaultParams())
	require.Len(t, stats, 1)
	// n=1 has no sample variance; std stays 0 instead of NaN.
	assert.Equal(t, 0.0, stats[0].StdDaily)
	assert.InDelta(t, 35.0, stats[0].ReorderPoint, 1e-9)
}

func TestComputeReorderStatsMissingMetaDefaultsToZero(t *testing.T) {
	stats := ComputeReorderStats(dailies("M", 3, 3, 3), nil, defaultParams())
	require.Len(t, stats, 1)
	assert.Equal(t, 0.0, stats[0].StockOnHand)
	assert.Equal(t, 0.0, stats[0].UnitCost)
}

func TestComputeReorderStatsUrgencyBands(t *testing.T) {
	bigStock := 10000.0
	noStock := 0.0
	stats := ComputeReorderStats(
		append(dailies("URGENT", 10, 10, 10), dailies("STABLE", 10, 10, 10)...),
		[]domain.SKUMeta{
			{SKU: "URGENT", StockOnHand: &noStock},
			{SKU: "STABLE", StockOnHand: &bigStock},
		},
		defaultParams(),
	)

	require.Len(t, stats, 2)
	// Most urgent first.
	assert.Equal(t, "URGENT", stats[0].SKU)
	assert.Equal(t, domain.UrgencyUrgent, stats[0].Urgency)
	assert.Equal(t, "STABLE", stats[1].SKU)
	assert.Equal(t, domain.UrgencyStable, stats[1].Urgency)
}

func TestComputeReorderStatsDeterministicOrder(t *testing.T) {
	rows := append(dailies("B", 5, 5), dailies("A", 5, 5)...)
	stats := ComputeReorderStats(rows, nil, defaultParams())

	require.Len(t, stats, 2)
	// Equal gaps break ties by SKU.
	assert.Equal(t, "A", stats[0].SKU)
	assert.Equal(t, "B", stats[1].SKU)
}

func TestComputeReorderStatsZeroFill(t *testing.T) {
	params := defaultParams()
	params.ZeroFillDays = true
	params.RangeDays = 10

	// 5 observed days totalling 50 over a 10-day window: zero-fill halves the
	// average.
	stats := ComputeReorderStats(dailies("F", 10, 10, 10, 10, 10), nil, params)
	require.Len(t, stats, 1)
	assert.InDelta(t, 5.0, stats[0].AvgDaily, 1e-9)
}
