package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/joogo-hq/joogo-backend/internal/cache"
	"github.com/joogo-hq/joogo-backend/internal/domain"
	"github.com/joogo-hq/joogo-backend/internal/ingest"
	"github.com/joogo-hq/joogo-backend/internal/repository"
	"github.com/joogo-hq/joogo-backend/internal/storage"
)

// IngestService turns raw uploads into stored facts. Every accepted batch gets
// a job ID, an archived copy of the raw file, and one audit row.
type IngestService struct {
	pipeline *ingest.Pipeline
	facts    repository.FactsRepository
	audits   repository.AuditRepository
	archive  storage.ObjectStorage
	cache    cache.ReorderCache
}

func NewIngestService(
	pipeline *ingest.Pipeline,
	facts repository.FactsRepository,
	audits repository.AuditRepository,
	archive storage.ObjectStorage,
	cacheImpl cache.ReorderCache,
) *IngestService {
	if archive == nil {
		archive = storage.NewNoopStorage()
	}
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReorderCache()
	}
	return &IngestService{
		pipeline: pipeline,
		facts:    facts,
		audits:   audits,
		archive:  archive,
		cache:    cacheImpl,
	}
}

// IngestRequest is the JSON ingestion payload: pre-structured rows from a
// connector rather than a raw file.
type IngestRequest struct {
	TenantID       string                      `json:"tenant_id,omitempty"`
	SourceType     string                      `json:"source_type"`
	SourceProvider string                      `json:"source_provider"`
	FileName       string                      `json:"file_name"`
	IsSimulated    bool                        `json:"is_simulated"`
	Rows           []map[string]interface{}    `json:"rows"`
	AdSpend        []domain.AdSpendPoint       `json:"ad_spend,omitempty"`
	Weather        []domain.WeatherHourlyPoint `json:"weather,omitempty"`
}

// IngestResponse reports the batch accounting back to the caller.
type IngestResponse struct {
	JobID    string `json:"job_id"`
	Inserted int    `json:"inserted"`
	Invalid  int    `json:"invalid"`
}

// IngestRows normalizes and stores a batch of structured rows. Rows lacking
// both a date and a SKU are counted invalid, not dropped silently.
func (s *IngestService) IngestRows(ctx context.Context, tenantID string, req IngestRequest) (*IngestResponse, error) {
	bc := ingest.BatchContext{
		TenantID:       tenantID,
		JobID:          uuid.NewString(),
		SourceType:     sourceTypeOrDefault(req.SourceType),
		SourceProvider: req.SourceProvider,
		FileName:       req.FileName,
		IsSimulated:    req.IsSimulated,
	}

	rows := make([]domain.IngestRow, 0, len(req.Rows))
	invalid := 0
	for _, raw := range req.Rows {
		row := ingest.NormalizeRow(raw)
		if row == nil {
			invalid++
			continue
		}
		prices := ingest.ResolvePrice(raw, nil)
		row.SellingPrice = prices.SellingPrice
		row.CostPrice = prices.CostPrice
		rows = append(rows, *row)
	}

	res, err := s.pipeline.IngestSales(ctx, bc, rows, invalid)
	if err != nil {
		return &IngestResponse{JobID: bc.JobID, Inserted: res.Inserted, Invalid: res.Invalid}, err
	}

	if len(req.AdSpend) > 0 {
		adBC := bc
		adBC.JobID = uuid.NewString()
		if _, err := s.pipeline.IngestAdSpend(ctx, adBC, req.AdSpend); err != nil {
			return &IngestResponse{JobID: bc.JobID, Inserted: res.Inserted, Invalid: res.Invalid}, err
		}
	}
	if len(req.Weather) > 0 {
		// Each stream audits under its own job so one replay is traceable
		// per table.
		wBC := bc
		wBC.JobID = uuid.NewString()
		if _, err := s.pipeline.IngestWeather(ctx, wBC, req.Weather); err != nil {
			return &IngestResponse{JobID: bc.JobID, Inserted: res.Inserted, Invalid: res.Invalid}, err
		}
	}

	s.invalidateCache(ctx, tenantID)

	return &IngestResponse{JobID: bc.JobID, Inserted: res.Inserted, Invalid: res.Invalid}, nil
}

// IngestCSV parses an uploaded CSV, archives the raw bytes and runs the rows
// through the pipeline. Layout (long vs wide stock-take) is detected once from
// the header row.
func (s *IngestService) IngestCSV(ctx context.Context, tenantID, fileName, sourceProvider string, r io.Reader) (*IngestResponse, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	bc := ingest.BatchContext{
		TenantID:       tenantID,
		JobID:          uuid.NewString(),
		SourceType:     domain.SourceTypeCSV,
		SourceProvider: sourceProvider,
		FileName:       fileName,
	}

	rows, invalid, err := parseCSV(data)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tenant/%s/%s/%s", tenantID, bc.JobID, fileName)
	if err := s.archive.Put(ctx, key, bytes.NewReader(data), int64(len(data)), "text/csv"); err != nil {
		// The archive is best-effort; the batch still proceeds.
		log.Warn().Err(err).Str("key", key).Msg("failed to archive upload")
	}

	res, err := s.pipeline.IngestSales(ctx, bc, rows, invalid)
	if err != nil {
		return &IngestResponse{JobID: bc.JobID, Inserted: res.Inserted, Invalid: res.Invalid}, err
	}

	s.invalidateCache(ctx, tenantID)

	return &IngestResponse{JobID: bc.JobID, Inserted: res.Inserted, Invalid: res.Invalid}, nil
}

// GetJob looks up an upload audit by job ID. A nil result means the job is
// unknown for this tenant.
func (s *IngestService) GetJob(ctx context.Context, tenantID, jobID string) (*domain.UploadAudit, error) {
	return s.audits.GetByJobID(ctx, tenantID, jobID)
}

// ResetTenant removes a tenant's rows. A hard reset also drops the audit trail
// and the archived uploads.
func (s *IngestService) ResetTenant(ctx context.Context, tenantID string, hard bool) error {
	if err := s.facts.DeleteTenant(ctx, tenantID, hard); err != nil {
		return err
	}
	if hard {
		if err := s.archive.DeletePrefix(ctx, fmt.Sprintf("tenant/%s/", tenantID)); err != nil {
			log.Warn().Err(err).Str("tenant_id", tenantID).Msg("failed to delete archived uploads")
		}
	}
	s.invalidateCache(ctx, tenantID)
	return nil
}

func (s *IngestService) invalidateCache(ctx context.Context, tenantID string) {
	if err := s.cache.InvalidateTenant(ctx, tenantID); err != nil {
		log.Warn().Err(err).Str("tenant_id", tenantID).Msg("failed to invalidate reorder cache")
	}
}

// parseCSV reads all records and normalizes them according to the detected
// layout. Short records are tolerated; rows with neither date nor SKU count
// as invalid.
func parseCSV(data []byte) ([]domain.IngestRow, int, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read csv header: %w", err)
	}

	layout := ingest.DetectLayout(header)

	var rows []domain.IngestRow
	invalid := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			invalid++
			continue
		}

		row := ingest.RowFromRecord(layout, header, record)
		if row == nil {
			invalid++
			continue
		}

		raw := make(map[string]interface{}, len(header))
		for i, col := range header {
			if i < len(record) {
				raw[col] = record[i]
			}
		}
		prices := ingest.ResolvePrice(raw, nil)
		row.SellingPrice = prices.SellingPrice
		row.CostPrice = prices.CostPrice

		rows = append(rows, *row)
	}

	return rows, invalid, nil
}

func sourceTypeOrDefault(st string) string {
	switch st {
	case domain.SourceTypeCSV, domain.SourceTypeAPI, domain.SourceTypeMock:
		return st
	default:
		return domain.SourceTypeAPI
	}
}

// DriveIngestFunc adapts the service for the Drive watcher: one call per
// downloaded file.
func (s *IngestService) DriveIngestFunc() func(ctx context.Context, tenantID, fileID, name string, data []byte) error {
	return func(ctx context.Context, tenantID, fileID, name string, data []byte) error {
		start := time.Now()
		res, err := s.IngestCSV(ctx, tenantID, name, "google_drive", bytes.NewReader(data))
		if err != nil {
			return err
		}
		log.Info().
			Str("tenant_id", tenantID).
			Str("file", name).
			Str("job_id", res.JobID).
			Int("inserted", res.Inserted).
			Int("invalid", res.Invalid).
			Dur("took", time.Since(start)).
			Msg("drive file ingested")
		return nil
	}
}
