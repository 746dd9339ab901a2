package repository

import (
	"context"
	"time"

	"github.com/joogo-hq/joogo-backend/internal/domain"
)

// FactsRepository is the tenant-scoped store for sales, ad-spend and weather
// facts. All writes are natural-key upserts so re-ingesting a batch is a no-op.
type FactsRepository interface {
	UpsertSalesFacts(ctx context.Context, facts []domain.SalesFact) error
	UpsertAdSpend(ctx context.Context, tenantID string, points []domain.AdSpendPoint) error
	UpsertWeather(ctx context.Context, tenantID string, points []domain.WeatherHourlyPoint) error
	UpsertItems(ctx context.Context, tenantID string, items []domain.InventoryItem) error

	SalesSeries(ctx context.Context, tenantID, from, to, granularity string) ([]domain.SeriesPoint, error)
	AdSpend(ctx context.Context, tenantID, from, to, channel string) ([]domain.AdSpendPoint, error)
	WeatherHourly(ctx context.Context, tenantID, location string, limit int) ([]domain.WeatherHourlyPoint, error)

	DailyQty(ctx context.Context, tenantID, from, to string) ([]domain.DailyQty, error)
	SKUMeta(ctx context.Context, tenantID string) ([]domain.SKUMeta, error)
	RevenueBySKU(ctx context.Context, tenantID, from, to string) ([]domain.SKURevenue, error)
	InventoryItems(ctx context.Context, tenantID string) ([]domain.InventoryItem, error)

	DeleteTenant(ctx context.Context, tenantID string, hard bool) error
	RunTemplate(ctx context.Context, query string, args []interface{}) ([]map[string]interface{}, error)
}

// AuditRepository manages upload audit rows. Create writes the pending row;
// Finalize transitions it exactly once to completed or failed.
type AuditRepository interface {
	Create(ctx context.Context, audit *domain.UploadAudit) error
	Finalize(ctx context.Context, jobID, status, errorMessage string, rowsIngested, rowsInvalid int, since, until *time.Time) error
	GetByJobID(ctx context.Context, tenantID, jobID string) (*domain.UploadAudit, error)
}
