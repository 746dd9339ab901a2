// Package analytics holds the pure demand/replenishment math. Everything here
// is deterministic and free of I/O; repositories feed it aggregated rows.
package analytics

import (
	"math"
	"sort"

	"github.com/joogo-hq/joogo-backend/internal/domain"
)

// ReorderParams controls the reorder-point computation. Z is the service-level
// multiplier (1.65 ~ 95% single-sided service level); both it and the lead
// time come from the caller, not from constants buried in the math.
type ReorderParams struct {
	LeadTimeDays  float64
	Z             float64
	UrgentGapDays float64
	ReviewGapDays float64

	// ZeroFillDays treats days without a sales fact as zero-sale observations.
	// RangeDays is the full span of the requested window and is only used when
	// ZeroFillDays is set.
	ZeroFillDays bool
	RangeDays    int
}

// ComputeReorderStats derives per-SKU demand statistics and reorder points
// from (sku, day) quantity aggregates. Missing stock/cost metadata defaults to
// zero so no null ever reaches the arithmetic, and a SKU with zero average
// demand reports zero days of supply and zero gap rather than Inf/NaN.
func ComputeReorderStats(dailies []domain.DailyQty, meta []domain.SKUMeta, params ReorderParams) []domain.ReorderStat {
	type acc struct {
		sum   float64
		sumSq float64
		n     int
	}

	bySKU := make(map[string]*acc)
	for _, d := range dailies {
		a := bySKU[d.SKU]
		if a == nil {
			a = &acc{}
			bySKU[d.SKU] = a
		}
		a.sum += d.Qty
		a.sumSq += d.Qty * d.Qty
		a.n++
	}

	metaBySKU := make(map[string]domain.SKUMeta, len(meta))
	for _, m := range meta {
		metaBySKU[m.SKU] = m
	}

	stats := make([]domain.ReorderStat, 0, len(bySKU))
	for sku, a := range bySKU {
		n := a.n
		if params.ZeroFillDays && params.RangeDays > n {
			// Absent days become zero observations; sums are unchanged.
			n = params.RangeDays
		}

		avg := 0.0
		if n > 0 {
			avg = a.sum / float64(n)
		}

		std := 0.0
		if n > 1 {
			// Sample variance (n-1 denominator), clamped against float noise.
			variance := (a.sumSq - float64(n)*avg*avg) / float64(n-1)
			if variance > 0 {
				std = math.Sqrt(variance)
			}
		}

		reorderPoint := avg*params.LeadTimeDays + std*math.Sqrt(params.LeadTimeDays)*params.Z

		stock, cost := 0.0, 0.0
		if m, ok := metaBySKU[sku]; ok {
			if m.StockOnHand != nil {
				stock = *m.StockOnHand
			}
			if m.UnitCost != nil {
				cost = *m.UnitCost
			}
		}

		daysOfSupply := 0.0
		gapDays := 0.0
		if avg > 0 {
			daysOfSupply = stock / avg
			gapDays = (stock - reorderPoint) / avg
		}

		stats = append(stats, domain.ReorderStat{
			SKU:            sku,
			AvgDaily:       avg,
			StdDaily:       std,
			ReorderPoint:   reorderPoint,
			StockOnHand:    stock,
			UnitCost:       cost,
			DaysOfSupply:   daysOfSupply,
			ReorderGapDays: gapDays,
			Urgency:        classifyGap(gapDays, params),
		})
	}

	// Most urgent first; SKU breaks ties so output order is reproducible.
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].ReorderGapDays != stats[j].ReorderGapDays {
			return stats[i].ReorderGapDays < stats[j].ReorderGapDays
		}
		return stats[i].SKU < stats[j].SKU
	})

	return stats
}

func classifyGap(gapDays float64, params ReorderParams) string {
	switch {
	case gapDays <= params.UrgentGapDays:
		return domain.UrgencyUrgent
	case gapDays <= params.ReviewGapDays:
		return domain.UrgencyReview
	default:
		return domain.UrgencyStable
	}
}
