package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/joogo-hq/joogo-backend/internal/ask"
	"github.com/joogo-hq/joogo-backend/internal/repository"
)

// AskService answers free-text questions by routing them to a safelisted SQL
// template. The question text never reaches the database; only the template
// and its bounded parameters do.
type AskService struct {
	repo repository.FactsRepository
}

func NewAskService(repo repository.FactsRepository) *AskService {
	return &AskService{repo: repo}
}

// AskResponse carries the routed intent alongside the rows so the caller can
// render an answer and show how the question was interpreted.
type AskResponse struct {
	Intent     ask.Intent               `json:"intent"`
	Confidence float64                  `json:"confidence"`
	Slots      map[string]interface{}   `json:"slots"`
	SQL        string                   `json:"sql"`
	Columns    []string                 `json:"columns"`
	Rows       []map[string]interface{} `json:"rows"`
}

func (s *AskService) Ask(ctx context.Context, tenantID, question string) (*AskResponse, error) {
	result := ask.Route(question)

	query, args, err := ask.BuildSQL(result, tenantID, nil, "")
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.RunTemplate(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = make([]map[string]interface{}, 0)
	}

	log.Debug().
		Str("tenant_id", tenantID).
		Str("intent", string(result.Intent)).
		Float64("confidence", result.Confidence).
		Int("rows", len(rows)).
		Msg("question answered")

	return &AskResponse{
		Intent:     result.Intent,
		Confidence: result.Confidence,
		Slots:      result.Slots,
		SQL:        query,
		Columns:    ask.Columns(result.Intent),
		Rows:       rows,
	}, nil
}
