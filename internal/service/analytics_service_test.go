package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joogo-hq/joogo-backend/internal/analytics"
	"github.com/joogo-hq/joogo-backend/internal/cache"
	"github.com/joogo-hq/joogo-backend/internal/config"
	"github.com/joogo-hq/joogo-backend/internal/domain"
)

func testAnalyticsConfig() config.AnalyticsConfig {
	return config.AnalyticsConfig{
		LeadTimeDays:  7,
		ServiceLevelZ: 1.65,
		UrgentGapDays: 3,
		ReviewGapDays: 7,
		StockLowQty:   10,
		StockHighQty:  100,
	}
}

func TestGetReorderStatsUsesConfigDefaults(t *testing.T) {
	stock := 100.0
	repo := &fakeFactsRepo{
		dailies: []domain.DailyQty{
			{SKU: "A", SaleDate: "2025-01-01", Qty: 10},
			{SKU: "A", SaleDate: "2025-01-02", Qty: 10},
		},
		meta: []domain.SKUMeta{{SKU: "A", StockOnHand: &stock}},
	}
	svc := NewAnalyticsService(repo, cache.NewNoopReorderCache(), testAnalyticsConfig())

	stats, err := svc.GetReorderStats(context.Background(), "t1", ReorderQuery{From: "2025-01-01", To: "2025-01-02"})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	// avg 10 over lead time 7 with zero variance.
	assert.InDelta(t, 70.0, stats[0].ReorderPoint, 1e-9)
	assert.InDelta(t, 10.0, stats[0].DaysOfSupply, 1e-9)
}

func TestGetABC(t *testing.T) {
	repo := &fakeFactsRepo{
		revenues: []domain.SKURevenue{
			{SKU: "HEAD", Revenue: 960},
			{SKU: "TAIL", Revenue: 40},
		},
	}
	svc := NewAnalyticsService(repo, nil, testAnalyticsConfig())

	stats, err := svc.GetABC(context.Background(), "t1", "2025-01-01", "2025-01-31")
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "A", stats[0].Grade)
	assert.Equal(t, "C", stats[1].Grade)
}

func TestGetInventoryItemsAppliesConfigThresholds(t *testing.T) {
	repo := &fakeFactsRepo{
		items: []domain.InventoryItem{
			{SKU: "LOW", Name: "low", Qty: 5},
			{SKU: "OK", Name: "ok", Qty: 50},
		},
	}
	svc := NewAnalyticsService(repo, nil, testAnalyticsConfig())

	items, err := svc.GetInventoryItems(context.Background(), "t1", analytics.FilterSortParams{
		StockFilter: domain.StockStatusLow,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "LOW", items[0].SKU)
}
