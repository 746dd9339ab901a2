package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/joogo-hq/joogo-backend/internal/domain"
	"github.com/joogo-hq/joogo-backend/internal/repository"
)

const defaultChunkSize = 2000

// BatchContext carries the provenance for one ingestion batch. Provenance is
// stamped onto every fact at write time; it is never inferred afterwards.
type BatchContext struct {
	TenantID       string
	JobID          string
	SourceType     string
	SourceProvider string
	FileName       string
	IsSimulated    bool
}

// Result reports per-batch accounting. Committed counts rows that reached the
// store even when a later chunk failed.
type Result struct {
	Inserted int `json:"inserted"`
	Invalid  int `json:"invalid"`
}

// Pipeline stages normalized rows and performs chunked idempotent upserts,
// writing exactly one audit record per batch.
type Pipeline struct {
	facts     repository.FactsRepository
	audits    repository.AuditRepository
	chunkSize int
}

func NewPipeline(facts repository.FactsRepository, audits repository.AuditRepository, chunkSize int) *Pipeline {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Pipeline{facts: facts, audits: audits, chunkSize: chunkSize}
}

// IngestSales upserts a batch of normalized sales rows. An empty batch is a
// no-op and writes no audit record. invalidCount is the number of raw rows the
// caller rejected during normalization; it is recorded on the audit row.
func (p *Pipeline) IngestSales(ctx context.Context, bc BatchContext, rows []domain.IngestRow, invalidCount int) (Result, error) {
	res := Result{Invalid: invalidCount}
	if len(rows) == 0 {
		return res, nil
	}

	facts, items := p.expandRows(bc, rows)
	if len(facts) == 0 && len(items) == 0 {
		return res, nil
	}

	if err := p.audits.Create(ctx, &domain.UploadAudit{
		JobID:          bc.JobID,
		TenantID:       bc.TenantID,
		SourceType:     bc.SourceType,
		SourceProvider: bc.SourceProvider,
		FileName:       bc.FileName,
		Status:         domain.JobStatusPending,
	}); err != nil {
		return res, err
	}

	committed := 0
	for start := 0; start < len(facts); start += p.chunkSize {
		end := start + p.chunkSize
		if end > len(facts) {
			end = len(facts)
		}
		if err := p.facts.UpsertSalesFacts(ctx, facts[start:end]); err != nil {
			failure := fmt.Errorf("chunk starting at row %d failed after %d rows committed: %w", start, committed, err)
			p.markFailed(ctx, bc.JobID, failure, committed, invalidCount)
			res.Inserted = committed
			return res, failure
		}
		committed = end
	}

	if len(items) > 0 {
		if err := p.facts.UpsertItems(ctx, bc.TenantID, items); err != nil {
			failure := fmt.Errorf("item metadata upsert failed after %d rows committed: %w", committed, err)
			p.markFailed(ctx, bc.JobID, failure, committed, invalidCount)
			res.Inserted = committed
			return res, failure
		}
	}

	since, until := timeWindow(facts)
	if err := p.audits.Finalize(ctx, bc.JobID, domain.JobStatusCompleted, "", committed, invalidCount, since, until); err != nil {
		return Result{Inserted: committed, Invalid: invalidCount}, err
	}

	res.Inserted = committed
	return res, nil
}

// IngestAdSpend upserts ad-spend points on their natural key and records one
// audit row for the batch.
func (p *Pipeline) IngestAdSpend(ctx context.Context, bc BatchContext, points []domain.AdSpendPoint) (Result, error) {
	var res Result
	if len(points) == 0 {
		return res, nil
	}

	if err := p.audits.Create(ctx, &domain.UploadAudit{
		JobID:          bc.JobID,
		TenantID:       bc.TenantID,
		SourceType:     bc.SourceType,
		SourceProvider: bc.SourceProvider,
		FileName:       bc.FileName,
		Status:         domain.JobStatusPending,
	}); err != nil {
		return res, err
	}

	committed := 0
	for start := 0; start < len(points); start += p.chunkSize {
		end := start + p.chunkSize
		if end > len(points) {
			end = len(points)
		}
		if err := p.facts.UpsertAdSpend(ctx, bc.TenantID, points[start:end]); err != nil {
			failure := fmt.Errorf("chunk starting at row %d failed after %d rows committed: %w", start, committed, err)
			p.markFailed(ctx, bc.JobID, failure, committed, 0)
			res.Inserted = committed
			return res, failure
		}
		committed = end
	}

	var since, until *time.Time
	for i := range points {
		ts := points[i].TS
		if since == nil || ts.Before(*since) {
			t := ts
			since = &t
		}
		if until == nil || ts.After(*until) {
			t := ts
			until = &t
		}
	}

	if err := p.audits.Finalize(ctx, bc.JobID, domain.JobStatusCompleted, "", committed, 0, since, until); err != nil {
		return Result{Inserted: committed}, err
	}

	res.Inserted = committed
	return res, nil
}

// IngestWeather upserts hourly weather points on their natural key and records
// one audit row for the batch, same as the other fact streams.
func (p *Pipeline) IngestWeather(ctx context.Context, bc BatchContext, points []domain.WeatherHourlyPoint) (Result, error) {
	var res Result
	if len(points) == 0 {
		return res, nil
	}

	if err := p.audits.Create(ctx, &domain.UploadAudit{
		JobID:          bc.JobID,
		TenantID:       bc.TenantID,
		SourceType:     bc.SourceType,
		SourceProvider: bc.SourceProvider,
		FileName:       bc.FileName,
		Status:         domain.JobStatusPending,
	}); err != nil {
		return res, err
	}

	committed := 0
	for start := 0; start < len(points); start += p.chunkSize {
		end := start + p.chunkSize
		if end > len(points) {
			end = len(points)
		}
		if err := p.facts.UpsertWeather(ctx, bc.TenantID, points[start:end]); err != nil {
			failure := fmt.Errorf("chunk starting at row %d failed after %d rows committed: %w", start, committed, err)
			p.markFailed(ctx, bc.JobID, failure, committed, 0)
			res.Inserted = committed
			return res, failure
		}
		committed = end
	}

	var since, until *time.Time
	for i := range points {
		ts := points[i].TS
		if since == nil || ts.Before(*since) {
			t := ts
			since = &t
		}
		if until == nil || ts.After(*until) {
			t := ts
			until = &t
		}
	}

	if err := p.audits.Finalize(ctx, bc.JobID, domain.JobStatusCompleted, "", committed, 0, since, until); err != nil {
		return Result{Inserted: committed}, err
	}

	res.Inserted = committed
	return res, nil
}

// expandRows maps IngestRows to stored facts. Wide-layout rows contribute one
// fact per (date, qty) pair; rows with catalog metadata also feed the items
// table.
func (p *Pipeline) expandRows(bc BatchContext, rows []domain.IngestRow) ([]domain.SalesFact, []domain.InventoryItem) {
	facts := make([]domain.SalesFact, 0, len(rows))
	var items []domain.InventoryItem

	for _, row := range rows {
		base := domain.SalesFact{
			TenantID:       bc.TenantID,
			SKU:            row.SKU,
			Category:       row.Category,
			Region:         row.Region,
			Channel:        row.Channel,
			SellingPrice:   row.SellingPrice,
			CostPrice:      row.CostPrice,
			StockOnHand:    row.StockOnHand,
			SourceType:     bc.SourceType,
			SourceProvider: bc.SourceProvider,
			IngestJobID:    bc.JobID,
			IsSimulated:    bc.IsSimulated,
		}

		if len(row.DailyQty) > 0 {
			for date, qty := range row.DailyQty {
				fact := base
				fact.SaleDate = date
				fact.Qty = qty
				fact.EventTime = dateToTime(date)
				facts = append(facts, fact)
			}
		} else if row.SaleDate != "" {
			fact := base
			fact.SaleDate = row.SaleDate
			fact.Revenue = row.Revenue
			fact.Qty = row.Qty
			fact.EventTime = dateToTime(row.SaleDate)
			facts = append(facts, fact)
		}

		if row.SKU != "" && (row.StockOnHand != nil || row.Name != "" || row.Barcode != "") {
			item := domain.InventoryItem{
				SKU:        row.SKU,
				Name:       row.Name,
				OptionName: row.OptionName,
				Barcode:    row.Barcode,
				UnitCost:   row.CostPrice,
			}
			if row.StockOnHand != nil {
				item.Qty = *row.StockOnHand
			}
			items = append(items, item)
		}
	}

	return facts, items
}

func (p *Pipeline) markFailed(ctx context.Context, jobID string, cause error, committed, invalid int) {
	if err := p.audits.Finalize(ctx, jobID, domain.JobStatusFailed, cause.Error(), committed, invalid, nil, nil); err != nil {
		log.Error().Err(err).Str("job_id", jobID).Msg("failed to mark upload audit as failed")
	}
}

func timeWindow(facts []domain.SalesFact) (*time.Time, *time.Time) {
	var since, until *time.Time
	for i := range facts {
		ts := facts[i].EventTime
		if ts.IsZero() {
			continue
		}
		if since == nil || ts.Before(*since) {
			t := ts
			since = &t
		}
		if until == nil || ts.After(*until) {
			t := ts
			until = &t
		}
	}
	return since, until
}

func dateToTime(date string) time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
