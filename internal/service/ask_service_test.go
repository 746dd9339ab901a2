package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joogo-hq/joogo-backend/internal/ask"
)

func TestAskRoutesAndRuns(t *testing.T) {
	repo := &fakeFactsRepo{
		templateRows: []map[string]interface{}{
			{"sku": "SKU-1", "revenue": 1000.0, "qty": 10.0},
		},
	}
	svc := NewAskService(repo)

	res, err := svc.Ask(context.Background(), "t1", "최근 30일 베스트 상품 상위 3개")
	require.NoError(t, err)
	assert.Equal(t, ask.IntentTopSKU, res.Intent)
	assert.Len(t, res.Rows, 1)
	assert.Equal(t, []string{"sku", "revenue", "qty"}, res.Columns)

	// Tenant and bounded slots bind as parameters.
	require.Len(t, repo.lastArgs, 3)
	assert.Equal(t, "t1", repo.lastArgs[0])
	assert.Equal(t, 30, repo.lastArgs[1])
	assert.Equal(t, 3, repo.lastArgs[2])
}

func TestAskFallbackNeverErrors(t *testing.T) {
	repo := &fakeFactsRepo{}
	svc := NewAskService(repo)

	res, err := svc.Ask(context.Background(), "t1", "완전 무관한 질문")
	require.NoError(t, err)
	assert.Equal(t, ask.IntentFallback, res.Intent)
	assert.NotNil(t, res.Rows, "empty result is an empty list, not null")
}
