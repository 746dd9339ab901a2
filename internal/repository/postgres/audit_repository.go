package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/joogo-hq/joogo-backend/internal/domain"
	"github.com/joogo-hq/joogo-backend/internal/repository"
)

type auditRepository struct {
	db *DB
}

func NewAuditRepository(db *DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, audit *domain.UploadAudit) error {
	query := `
		INSERT INTO upload_audits (
			job_id, tenant_id, source_type, source_provider, file_name, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.ExecContext(ctx, query,
		audit.JobID,
		audit.TenantID,
		audit.SourceType,
		audit.SourceProvider,
		audit.FileName,
		audit.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create upload audit: %w", err)
	}
	return nil
}

func (r *auditRepository) Finalize(ctx context.Context, jobID, status, errorMessage string, rowsIngested, rowsInvalid int, since, until *time.Time) error {
	query := `
		UPDATE upload_audits
		SET status = $2,
			error_message = $3,
			rows_ingested = $4,
			rows_invalid = $5,
			since_ts = $6,
			until_ts = $7
		WHERE job_id = $1 AND status = $8
	`
	res, err := r.db.ExecContext(ctx, query, jobID, status, errorMessage, rowsIngested, rowsInvalid, since, until, domain.JobStatusPending)
	if err != nil {
		return fmt.Errorf("failed to finalize upload audit %s: %w", jobID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("upload audit %s was not pending", jobID)
	}
	return nil
}

func (r *auditRepository) GetByJobID(ctx context.Context, tenantID, jobID string) (*domain.UploadAudit, error) {
	query := `
		SELECT job_id, tenant_id, source_type, source_provider, file_name, status,
		       COALESCE(error_message, '') AS error_message,
		       since_ts, until_ts, rows_ingested, rows_invalid, created_at
		FROM upload_audits
		WHERE tenant_id = $1 AND job_id = $2
	`

	var audit domain.UploadAudit
	if err := r.db.GetContext(ctx, &audit, query, tenantID, jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting upload audit %s: %w", jobID, err)
	}
	return &audit, nil
}
