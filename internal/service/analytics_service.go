package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/joogo-hq/joogo-backend/internal/analytics"
	"github.com/joogo-hq/joogo-backend/internal/cache"
	"github.com/joogo-hq/joogo-backend/internal/config"
	"github.com/joogo-hq/joogo-backend/internal/domain"
	"github.com/joogo-hq/joogo-backend/internal/repository"
)

// AnalyticsService serves the derived views: sales series, reorder points, ABC
// grades and the filtered inventory list. Reorder results go through the TTL
// cache; everything else is cheap enough to compute per request.
type AnalyticsService struct {
	repo  repository.FactsRepository
	cache cache.ReorderCache
	cfg   config.AnalyticsConfig
}

func NewAnalyticsService(repo repository.FactsRepository, cacheImpl cache.ReorderCache, cfg config.AnalyticsConfig) *AnalyticsService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReorderCache()
	}
	return &AnalyticsService{repo: repo, cache: cacheImpl, cfg: cfg}
}

// ReorderQuery is the parameter set for one reorder computation. Zero values
// fall back to the configured defaults.
type ReorderQuery struct {
	From         string
	To           string
	LeadTimeDays float64
	Z            float64
}

func (s *AnalyticsService) GetSalesSeries(ctx context.Context, tenantID, from, to, granularity string) ([]domain.SeriesPoint, error) {
	return s.repo.SalesSeries(ctx, tenantID, from, to, granularity)
}

func (s *AnalyticsService) GetAdSpend(ctx context.Context, tenantID, from, to, channel string) ([]domain.AdSpendPoint, error) {
	return s.repo.AdSpend(ctx, tenantID, from, to, channel)
}

func (s *AnalyticsService) GetWeatherHourly(ctx context.Context, tenantID, location string, limit int) ([]domain.WeatherHourlyPoint, error) {
	if limit <= 0 {
		limit = 24
	}
	return s.repo.WeatherHourly(ctx, tenantID, location, limit)
}

// GetReorderStats computes per-SKU reorder points over a date range, serving
// from cache when an identical query was answered within the TTL.
func (s *AnalyticsService) GetReorderStats(ctx context.Context, tenantID string, q ReorderQuery) ([]domain.ReorderStat, error) {
	q = s.withDefaults(q)

	key := cache.ReorderKey{
		TenantID:     tenantID,
		From:         q.From,
		To:           q.To,
		LeadTimeDays: q.LeadTimeDays,
		Z:            q.Z,
	}

	if stats, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return stats, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("reorder cache get failed")
	}

	dailies, err := s.repo.DailyQty(ctx, tenantID, q.From, q.To)
	if err != nil {
		return nil, err
	}
	meta, err := s.repo.SKUMeta(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	stats := analytics.ComputeReorderStats(dailies, meta, analytics.ReorderParams{
		LeadTimeDays:  q.LeadTimeDays,
		Z:             q.Z,
		UrgentGapDays: s.cfg.UrgentGapDays,
		ReviewGapDays: s.cfg.ReviewGapDays,
		ZeroFillDays:  s.cfg.ZeroFillDays,
		RangeDays:     rangeDays(q.From, q.To),
	})

	if err := s.cache.Set(ctx, key, stats); err != nil {
		log.Warn().Err(err).Msg("reorder cache set failed")
	}

	return stats, nil
}

// GetABC grades SKUs by cumulative revenue share over the range.
func (s *AnalyticsService) GetABC(ctx context.Context, tenantID, from, to string) ([]domain.ABCStat, error) {
	revenues, err := s.repo.RevenueBySKU(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	return analytics.ClassifyABC(revenues), nil
}

// GetInventoryItems returns the filtered, sorted inventory list.
func (s *AnalyticsService) GetInventoryItems(ctx context.Context, tenantID string, params analytics.FilterSortParams) ([]domain.InventoryItem, error) {
	items, err := s.repo.InventoryItems(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if params.Thresholds.Low == 0 && params.Thresholds.High == 0 {
		params.Thresholds = analytics.StockThresholds{Low: s.cfg.StockLowQty, High: s.cfg.StockHighQty}
	}

	return analytics.BuildFilteredSorted(items, params), nil
}

func (s *AnalyticsService) withDefaults(q ReorderQuery) ReorderQuery {
	if q.LeadTimeDays <= 0 {
		q.LeadTimeDays = float64(s.cfg.LeadTimeDays)
	}
	if q.Z <= 0 {
		q.Z = s.cfg.ServiceLevelZ
	}
	if q.To == "" {
		q.To = time.Now().UTC().Format("2006-01-02")
	}
	if q.From == "" {
		to, _ := time.Parse("2006-01-02", q.To)
		q.From = to.AddDate(0, 0, -30).Format("2006-01-02")
	}
	return q
}

// rangeDays counts the days in [from, to] inclusive; 0 when either bound is
// unparseable.
func rangeDays(from, to string) int {
	f, err1 := time.Parse("2006-01-02", from)
	t, err2 := time.Parse("2006-01-02", to)
	if err1 != nil || err2 != nil || t.Before(f) {
		return 0
	}
	return int(t.Sub(f).Hours()/24) + 1
}
