package analytics

import (
	"sort"

	"github.com/joogo-hq/joogo-backend/internal/domain"
)

// Pareto cutoffs for ABC grading, expressed as cumulative revenue share.
const (
	abcCutoffA = 0.80
	abcCutoffB = 0.95
)

// ClassifyABC ranks SKUs by revenue contribution and assigns Pareto grades:
// A for the head up to 80% cumulative share, B up to 95%, C for the tail.
// An item is graded by the cumulative share accumulated *before* it, so the
// item that crosses a cutoff keeps the better grade and the top earner is
// always A even when its share alone exceeds 80%. An item whose predecessors
// already sit exactly on a cutoff starts the next band. Zero-revenue SKUs
// contribute nothing and grade C; when total revenue is zero every SKU does.
func ClassifyABC(revenues []domain.SKURevenue) []domain.ABCStat {
	ranked := append([]domain.SKURevenue(nil), revenues...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		return ranked[i].SKU < ranked[j].SKU
	})

	total := 0.0
	for _, r := range ranked {
		total += r.Revenue
	}

	stats := make([]domain.ABCStat, 0, len(ranked))
	cum := 0.0
	for _, r := range ranked {
		stat := domain.ABCStat{SKU: r.SKU, Revenue: r.Revenue, Grade: "C"}
		if total > 0 {
			before := cum
			stat.Share = r.Revenue / total
			cum += stat.Share
			stat.CumShare = cum
			if r.Revenue > 0 {
				switch {
				case before < abcCutoffA:
					stat.Grade = "A"
				case before < abcCutoffB:
					stat.Grade = "B"
				}
			}
		}
		stats = append(stats, stat)
	}

	return stats
}
