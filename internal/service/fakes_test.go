package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/joogo-hq/joogo-backend/internal/domain"
)

// In-memory repositories for service tests.

type fakeFactsRepo struct {
	facts        []domain.SalesFact
	items        []domain.InventoryItem
	dailies      []domain.DailyQty
	meta         []domain.SKUMeta
	revenues     []domain.SKURevenue
	templateRows []map[string]interface{}
	lastQuery    string
	lastArgs     []interface{}
	deleted      []string
	deletedHard  bool
}

func (f *fakeFactsRepo) UpsertSalesFacts(ctx context.Context, facts []domain.SalesFact) error {
	f.facts = append(f.facts, facts...)
	return nil
}

func (f *fakeFactsRepo) UpsertAdSpend(ctx context.Context, tenantID string, points []domain.AdSpendPoint) error {
	return nil
}

func (f *fakeFactsRepo) UpsertWeather(ctx context.Context, tenantID string, points []domain.WeatherHourlyPoint) error {
	return nil
}

func (f *fakeFactsRepo) UpsertItems(ctx context.Context, tenantID string, items []domain.InventoryItem) error {
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeFactsRepo) SalesSeries(ctx context.Context, tenantID, from, to, granularity string) ([]domain.SeriesPoint, error) {
	return nil, nil
}

func (f *fakeFactsRepo) AdSpend(ctx context.Context, tenantID, from, to, channel string) ([]domain.AdSpendPoint, error) {
	return nil, nil
}

func (f *fakeFactsRepo) WeatherHourly(ctx context.Context, tenantID, location string, limit int) ([]domain.WeatherHourlyPoint, error) {
	return nil, nil
}

func (f *fakeFactsRepo) DailyQty(ctx context.Context, tenantID, from, to string) ([]domain.DailyQty, error) {
	return f.dailies, nil
}

func (f *fakeFactsRepo) SKUMeta(ctx context.Context, tenantID string) ([]domain.SKUMeta, error) {
	return f.meta, nil
}

func (f *fakeFactsRepo) RevenueBySKU(ctx context.Context, tenantID, from, to string) ([]domain.SKURevenue, error) {
	return f.revenues, nil
}

func (f *fakeFactsRepo) InventoryItems(ctx context.Context, tenantID string) ([]domain.InventoryItem, error) {
	return f.items, nil
}

func (f *fakeFactsRepo) DeleteTenant(ctx context.Context, tenantID string, hard bool) error {
	f.deleted = append(f.deleted, tenantID)
	f.deletedHard = hard
	return nil
}

func (f *fakeFactsRepo) RunTemplate(ctx context.Context, query string, args []interface{}) ([]map[string]interface{}, error) {
	f.lastQuery = query
	f.lastArgs = args
	return f.templateRows, nil
}

type fakeAuditRepo struct {
	audits map[string]*domain.UploadAudit
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{audits: make(map[string]*domain.UploadAudit)}
}

func (f *fakeAuditRepo) Create(ctx context.Context, audit *domain.UploadAudit) error {
	cp := *audit
	f.audits[audit.JobID] = &cp
	return nil
}

func (f *fakeAuditRepo) Finalize(ctx context.Context, jobID, status, errorMessage string, rowsIngested, rowsInvalid int, since, until *time.Time) error {
	a, ok := f.audits[jobID]
	if !ok {
		return errors.New("audit not found")
	}
	a.Status = status
	a.ErrorMessage = errorMessage
	a.RowsIngested = rowsIngested
	a.RowsInvalid = rowsInvalid
	a.SinceTS = since
	a.UntilTS = until
	return nil
}

func (f *fakeAuditRepo) GetByJobID(ctx context.Context, tenantID, jobID string) (*domain.UploadAudit, error) {
	a, ok := f.audits[jobID]
	if !ok {
		return nil, nil
	}
	return a, nil
}

type fakeArchive struct {
	keys            []string
	deletedPrefixes []string
}

func (f *fakeArchive) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	f.keys = append(f.keys, key)
	return nil
}

func (f *fakeArchive) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, nil
}

func (f *fakeArchive) DeletePrefix(ctx context.Context, prefix string) error {
	f.deletedPrefixes = append(f.deletedPrefixes, prefix)
	return nil
}
