package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joogo-hq/joogo-backend/internal/cache"
	"github.com/joogo-hq/joogo-backend/internal/domain"
	"github.com/joogo-hq/joogo-backend/internal/ingest"
)

func newTestIngestService(facts *fakeFactsRepo, audits *fakeAuditRepo, archive *fakeArchive) *IngestService {
	pipeline := ingest.NewPipeline(facts, audits, 0)
	return NewIngestService(pipeline, facts, audits, archive, cache.NewNoopReorderCache())
}

func TestIngestCSVEndToEnd(t *testing.T) {
	facts := &fakeFactsRepo{}
	audits := newFakeAuditRepo()
	archive := &fakeArchive{}
	svc := newTestIngestService(facts, audits, archive)

	// One valid row, one row with neither date nor SKU.
	csv := strings.Join([]string{
		"날짜,상품코드,매출,수량,판매가",
		"2025.1.5,SKU-1,\"45,000\",3,\"15,000\"",
		",,100,1,",
	}, "\n")

	res, err := svc.IngestCSV(context.Background(), "t1", "sales.csv", "upload", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Invalid)
	assert.NotEmpty(t, res.JobID)

	require.Len(t, facts.facts, 1)
	fact := facts.facts[0]
	assert.Equal(t, "2025-01-05", fact.SaleDate)
	assert.Equal(t, "SKU-1", fact.SKU)
	assert.Equal(t, 45000.0, fact.Revenue)
	assert.Equal(t, domain.SourceTypeCSV, fact.SourceType)
	require.NotNil(t, fact.SellingPrice)
	assert.Equal(t, 15000.0, *fact.SellingPrice)

	// Raw file archived under the tenant prefix.
	require.Len(t, archive.keys, 1)
	assert.True(t, strings.HasPrefix(archive.keys[0], "tenant/t1/"))

	audit := audits.audits[res.JobID]
	require.NotNil(t, audit)
	assert.Equal(t, domain.JobStatusCompleted, audit.Status)
	assert.Equal(t, 1, audit.RowsIngested)
	assert.Equal(t, 1, audit.RowsInvalid)
}

func TestIngestCSVWideLayout(t *testing.T) {
	facts := &fakeFactsRepo{}
	svc := newTestIngestService(facts, newFakeAuditRepo(), &fakeArchive{})

	csv := strings.Join([]string{
		"상품코드,상품명,재고,20250101,20250102",
		"SKU-9,장갑,120,5,0",
	}, "\n")

	res, err := svc.IngestCSV(context.Background(), "t1", "stock.csv", "upload", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted, "one fact per date column")

	require.Len(t, facts.items, 1)
	assert.Equal(t, "SKU-9", facts.items[0].SKU)
	assert.Equal(t, 120.0, facts.items[0].Qty)
}

func TestIngestCSVEmptyFile(t *testing.T) {
	facts := &fakeFactsRepo{}
	audits := newFakeAuditRepo()
	svc := newTestIngestService(facts, audits, &fakeArchive{})

	res, err := svc.IngestCSV(context.Background(), "t1", "empty.csv", "upload", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inserted)
	assert.Empty(t, audits.audits)
}

func TestIngestRowsCountsInvalid(t *testing.T) {
	facts := &fakeFactsRepo{}
	svc := newTestIngestService(facts, newFakeAuditRepo(), &fakeArchive{})

	res, err := svc.IngestRows(context.Background(), "t1", IngestRequest{
		SourceType: domain.SourceTypeAPI,
		Rows: []map[string]interface{}{
			{"date": "2025-01-01", "sku": "A", "qty": 2},
			{"revenue": "100"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Invalid)
}

func TestIngestRowsPreservesZeroPrice(t *testing.T) {
	facts := &fakeFactsRepo{}
	svc := newTestIngestService(facts, newFakeAuditRepo(), &fakeArchive{})

	_, err := svc.IngestRows(context.Background(), "t1", IngestRequest{
		Rows: []map[string]interface{}{
			{"date": "2025-01-01", "sku": "A", "selling_price": "0"},
		},
	})
	require.NoError(t, err)

	require.Len(t, facts.facts, 1)
	require.NotNil(t, facts.facts[0].SellingPrice)
	assert.Equal(t, 0.0, *facts.facts[0].SellingPrice)
}

func TestResetTenant(t *testing.T) {
	facts := &fakeFactsRepo{}
	archive := &fakeArchive{}
	svc := newTestIngestService(facts, newFakeAuditRepo(), archive)

	require.NoError(t, svc.ResetTenant(context.Background(), "t1", false))
	assert.Equal(t, []string{"t1"}, facts.deleted)
	assert.False(t, facts.deletedHard)
	assert.Empty(t, archive.deletedPrefixes, "soft reset keeps archived uploads")

	require.NoError(t, svc.ResetTenant(context.Background(), "t1", true))
	assert.True(t, facts.deletedHard)
	assert.Equal(t, []string{"tenant/t1/"}, archive.deletedPrefixes)
}

func TestGetJobUnknown(t *testing.T) {
	svc := newTestIngestService(&fakeFactsRepo{}, newFakeAuditRepo(), &fakeArchive{})
	audit, err := svc.GetJob(context.Background(), "t1", "nope")
	require.NoError(t, err)
	assert.Nil(t, audit)
}
