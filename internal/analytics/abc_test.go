package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joogo-hq/joogo-backend/internal/domain"
)

func TestClassifyABCGrades(t *testing.T) {
	stats := ClassifyABC([]domain.SKURevenue{
		{SKU: "A1", Revenue: 850},
		{SKU: "B1", Revenue: 110},
		{SKU: "C1", Revenue: 40},
	})

	require.Len(t, stats, 3)
	assert.Equal(t, "A1", stats[0].SKU)
	assert.Equal(t, "A", stats[0].Grade)
	assert.Equal(t, "B", stats[1].Grade)
	assert.Equal(t, "C", stats[2].Grade)
	assert.InDelta(t, 0.85, stats[0].CumShare, 1e-9)
	assert.InDelta(t, 0.96, stats[1].CumShare, 1e-9)
	assert.InDelta(t, 1.0, stats[2].CumShare, 1e-9)
}

func TestClassifyABCDominantHeadStaysA(t *testing.T) {
	// A single SKU carrying more than 80% of revenue is still the head and
	// must grade A; the grade comes from the share accumulated before the
	// item, not after it.
	stats := ClassifyABC([]domain.SKURevenue{
		{SKU: "HEAD", Revenue: 900},
		{SKU: "TAIL", Revenue: 100},
	})

	require.Len(t, stats, 2)
	assert.Equal(t, "HEAD", stats[0].SKU)
	assert.Equal(t, "A", stats[0].Grade)
	assert.Equal(t, "B", stats[1].Grade)
}

func TestClassifyABCBoundary(t *testing.T) {
	// The item that crosses a cutoff keeps the better grade; an item whose
	// predecessors land exactly on a cutoff starts the next band.
	stats := ClassifyABC([]domain.SKURevenue{
		{SKU: "X", Revenue: 80},
		{SKU: "Y", Revenue: 15},
		{SKU: "Z", Revenue: 5},
	})

	require.Len(t, stats, 3)
	assert.Equal(t, "A", stats[0].Grade)
	assert.Equal(t, "B", stats[1].Grade)
	assert.Equal(t, "C", stats[2].Grade)
}

func TestClassifyABCZeroTotal(t *testing.T) {
	stats := ClassifyABC([]domain.SKURevenue{
		{SKU: "A", Revenue: 0},
		{SKU: "B", Revenue: 0},
	})

	require.Len(t, stats, 2)
	for _, s := range stats {
		assert.Equal(t, "C", s.Grade)
		assert.Equal(t, 0.0, s.Share)
		assert.Equal(t, 0.0, s.CumShare)
	}
}

func TestClassifyABCDeterministicTies(t *testing.T) {
	stats := ClassifyABC([]domain.SKURevenue{
		{SKU: "B", Revenue: 50},
		{SKU: "A", Revenue: 50},
	})

	require.Len(t, stats, 2)
	// Equal revenue ranks by SKU so output order is reproducible.
	assert.Equal(t, "A", stats[0].SKU)
	assert.Equal(t, "B", stats[1].SKU)
}

func TestClassifyABCDoesNotMutateInput(t *testing.T) {
	in := []domain.SKURevenue{
		{SKU: "LOW", Revenue: 1},
		{SKU: "HIGH", Revenue: 99},
	}
	ClassifyABC(in)
	assert.Equal(t, "LOW", in[0].SKU)
}

func TestClassifyABCEmpty(t *testing.T) {
	assert.Empty(t, ClassifyABC(nil))
}
