// internal/domain/status.go
package domain

// Ingestion job lifecycle. A job never stays pending: it is finalized to
// completed or failed by the pipeline.
const (
	JobStatusPending   = "pending"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// Provenance source types.
const (
	SourceTypeCSV  = "csv"
	SourceTypeAPI  = "api"
	SourceTypeMock = "mock"
)

// Stock status classification for inventory items.
const (
	StockStatusOut    = "OUT"
	StockStatusLow    = "LOW"
	StockStatusNormal = "NORMAL"
	StockStatusPlenty = "PLENTY"
)

// Reorder urgency bins.
const (
	UrgencyUrgent = "urgent"
	UrgencyReview = "review"
	UrgencyStable = "stable"
)
