package ask

import (
	"fmt"
	"strings"
)

// Template is the safelisted query behind one intent. The table and column
// set are fixed; the only caller-controlled inputs are the bounded slot
// values, which bind as query parameters.
type Template struct {
	Table   string
	Columns []string
	SQL     string
}

var templates = map[Intent]Template{
	IntentTopSKU: {
		Table:   "sales_facts",
		Columns: []string{"sku", "revenue", "qty"},
		SQL: `SELECT sku, SUM(revenue) AS revenue, SUM(qty) AS qty
FROM sales_facts
WHERE tenant_id = $1 AND sale_date >= to_char(now() - ($2 || ' days')::interval, 'YYYY-MM-DD')
GROUP BY sku
ORDER BY revenue DESC
LIMIT $3`,
	},
	IntentSalesTrend: {
		Table:   "sales_facts",
		Columns: []string{"sale_date", "revenue", "qty"},
		SQL: `SELECT sale_date, SUM(revenue) AS revenue, SUM(qty) AS qty
FROM sales_facts
WHERE tenant_id = $1 AND sale_date >= to_char(now() - ($2 || ' days')::interval, 'YYYY-MM-DD')
GROUP BY sale_date
ORDER BY sale_date`,
	},
	IntentAdPerformance: {
		Table:   "ad_spend",
		Columns: []string{"channel", "campaign_id", "impressions", "clicks", "cost"},
		SQL: `SELECT channel, campaign_id, SUM(impressions) AS impressions, SUM(clicks) AS clicks, SUM(cost) AS cost
FROM ad_spend
WHERE tenant_id = $1 AND ts >= now() - ($2 || ' days')::interval
GROUP BY channel, campaign_id
ORDER BY cost DESC
LIMIT $3`,
	},
	IntentInventoryLow: {
		Table:   "items",
		Columns: []string{"sku", "name", "qty", "safe_qty"},
		SQL: `SELECT sku, name, qty, safe_qty
FROM items
WHERE tenant_id = $1 AND (qty <= 0 OR (safe_qty IS NOT NULL AND qty < safe_qty))
ORDER BY qty ASC
LIMIT $2`,
	},
	IntentWeatherImpact: {
		Table:   "weather_hourly",
		Columns: []string{"ts", "location", "temp_c", "rain_mm"},
		SQL: `SELECT ts, location, temp_c, rain_mm
FROM weather_hourly
WHERE tenant_id = $1 AND ts >= now() - ($2 || ' days')::interval
ORDER BY ts`,
	},
	IntentFallback: {
		Table:   "sales_facts",
		Columns: []string{"sale_date", "revenue"},
		SQL: `SELECT sale_date, SUM(revenue) AS revenue
FROM sales_facts
WHERE tenant_id = $1 AND sale_date >= to_char(now() - ($2 || ' days')::interval, 'YYYY-MM-DD')
GROUP BY sale_date
ORDER BY sale_date`,
	},
}

// BuildSQL returns the query and bind args for a routed question. Any
// requested column or table outside the intent's allowlist is rejected before
// anything reaches the store; this check is the boundary between free text
// and SQL-shaped input.
func BuildSQL(result RouteResult, tenantID string, requestedColumns []string, requestedTable string) (string, []interface{}, error) {
	tpl, ok := templates[result.Intent]
	if !ok {
		return "", nil, fmt.Errorf("unknown intent %q", result.Intent)
	}

	if requestedTable != "" && !strings.EqualFold(requestedTable, tpl.Table) {
		return "", nil, fmt.Errorf("table %q is not allowed for intent %s", requestedTable, result.Intent)
	}
	for _, col := range requestedColumns {
		if !columnAllowed(tpl, col) {
			return "", nil, fmt.Errorf("column %q is not allowed for intent %s", col, result.Intent)
		}
	}

	args := []interface{}{tenantID}
	switch result.Intent {
	case IntentTopSKU, IntentAdPerformance:
		args = append(args, slotInt(result.Slots, "window_days", defaultWindow), slotInt(result.Slots, "limit", defaultLimit))
	case IntentInventoryLow:
		args = append(args, slotInt(result.Slots, "limit", defaultLimit))
	default:
		args = append(args, slotInt(result.Slots, "window_days", defaultWindow))
	}

	return tpl.SQL, args, nil
}

// Columns exposes the allowlisted column set for an intent.
func Columns(intent Intent) []string {
	tpl, ok := templates[intent]
	if !ok {
		return nil
	}
	return append([]string(nil), tpl.Columns...)
}

func columnAllowed(tpl Template, col string) bool {
	for _, c := range tpl.Columns {
		if strings.EqualFold(c, col) {
			return true
		}
	}
	return false
}

func slotInt(slots map[string]interface{}, key string, fallback int) int {
	if slots == nil {
		return fallback
	}
	switch v := slots[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}
