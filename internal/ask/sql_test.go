package ask

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSQLTopSKU(t *testing.T) {
	result := Route("상위 5개 베스트 상품")
	query, args, err := BuildSQL(result, "t1", nil, "")
	require.NoError(t, err)

	assert.Contains(t, query, "FROM sales_facts")
	assert.Contains(t, query, "tenant_id = $1")
	// tenant, window and limit are all bound as parameters, nothing interpolated.
	require.Len(t, args, 3)
	assert.Equal(t, "t1", args[0])
	assert.Equal(t, 5, args[2])
}

func TestBuildSQLRejectsForeignTable(t *testing.T) {
	result := Route("베스트 상품")
	_, _, err := BuildSQL(result, "t1", nil, "upload_audits")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestBuildSQLRejectsForeignColumn(t *testing.T) {
	result := Route("베스트 상품")
	_, _, err := BuildSQL(result, "t1", []string{"tenant_id"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestBuildSQLAllowsListedColumns(t *testing.T) {
	result := Route("베스트 상품")
	_, _, err := BuildSQL(result, "t1", []string{"sku", "REVENUE"}, "sales_facts")
	assert.NoError(t, err)
}

func TestBuildSQLDefaultsSlots(t *testing.T) {
	// The fallback intent has no extracted slots beyond the window.
	result := Route("안녕")
	query, args, err := BuildSQL(result, "t1", nil, "")
	require.NoError(t, err)
	require.Len(t, args, 2)
	assert.Equal(t, defaultWindow, args[1])
	assert.Contains(t, query, "GROUP BY sale_date")
}

func TestBuildSQLNoStringInterpolation(t *testing.T) {
	// A hostile question changes nothing: the template is fixed per intent.
	result := Route("베스트 상품'; DROP TABLE sales_facts; --")
	query, _, err := BuildSQL(result, "t1", nil, "")
	require.NoError(t, err)
	assert.False(t, strings.Contains(query, "DROP"))
}

func TestColumnsCopy(t *testing.T) {
	cols := Columns(IntentTopSKU)
	require.NotEmpty(t, cols)
	cols[0] = "mutated"
	assert.Equal(t, "sku", Columns(IntentTopSKU)[0])
}

func TestTemplatesCoverAllIntents(t *testing.T) {
	for _, intent := range []Intent{
		IntentTopSKU, IntentSalesTrend, IntentAdPerformance,
		IntentInventoryLow, IntentWeatherImpact, IntentFallback,
	} {
		tpl, ok := templates[intent]
		require.True(t, ok, "missing template for %s", intent)
		assert.NotEmpty(t, tpl.Table)
		assert.NotEmpty(t, tpl.Columns)
		assert.Contains(t, tpl.SQL, "$1")
	}
}
