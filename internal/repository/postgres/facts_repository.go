package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/joogo-hq/joogo-backend/internal/domain"
	"github.com/joogo-hq/joogo-backend/internal/repository"
)

type factsRepository struct {
	db *DB
}

func NewFactsRepository(db *DB) repository.FactsRepository {
	return &factsRepository{db: db}
}

// placeholderRows builds "($1,$2,...),($k,...)" for a multi-row insert.
func placeholderRows(rowCount, colCount int) string {
	rows := make([]string, 0, rowCount)
	arg := 1
	for i := 0; i < rowCount; i++ {
		ph := make([]string, colCount)
		for j := 0; j < colCount; j++ {
			ph[j] = fmt.Sprintf("$%d", arg)
			arg++
		}
		rows = append(rows, "("+strings.Join(ph, ", ")+")")
	}
	return strings.Join(rows, ", ")
}

func (r *factsRepository) UpsertSalesFacts(ctx context.Context, facts []domain.SalesFact) error {
	if len(facts) == 0 {
		return nil
	}

	const cols = 16
	query := `
		INSERT INTO sales_facts (
			tenant_id, sale_date, sku, category, region, channel,
			revenue, qty, selling_price, cost_price, stock_on_hand,
			source_type, source_provider, ingest_job_id, is_simulated, event_time
		) VALUES ` + placeholderRows(len(facts), cols) + `
		ON CONFLICT (tenant_id, sale_date, sku, channel) DO UPDATE SET
			category = EXCLUDED.category,
			region = EXCLUDED.region,
			revenue = EXCLUDED.revenue,
			qty = EXCLUDED.qty,
			selling_price = EXCLUDED.selling_price,
			cost_price = EXCLUDED.cost_price,
			stock_on_hand = EXCLUDED.stock_on_hand,
			source_type = EXCLUDED.source_type,
			source_provider = EXCLUDED.source_provider,
			ingest_job_id = EXCLUDED.ingest_job_id,
			is_simulated = EXCLUDED.is_simulated,
			event_time = EXCLUDED.event_time,
			ingest_time = NOW()
	`

	args := make([]interface{}, 0, len(facts)*cols)
	for _, f := range facts {
		args = append(args,
			f.TenantID, f.SaleDate, f.SKU, f.Category, f.Region, f.Channel,
			f.Revenue, f.Qty, f.SellingPrice, f.CostPrice, f.StockOnHand,
			f.SourceType, f.SourceProvider, f.IngestJobID, f.IsSimulated, f.EventTime,
		)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert sales facts: %w", err)
	}
	return nil
}

func (r *factsRepository) UpsertAdSpend(ctx context.Context, tenantID string, points []domain.AdSpendPoint) error {
	if len(points) == 0 {
		return nil
	}

	const cols = 7
	query := `
		INSERT INTO ad_spend (tenant_id, ts, channel, campaign_id, impressions, clicks, cost)
		VALUES ` + placeholderRows(len(points), cols) + `
		ON CONFLICT (tenant_id, ts, channel, campaign_id) DO UPDATE SET
			impressions = EXCLUDED.impressions,
			clicks = EXCLUDED.clicks,
			cost = EXCLUDED.cost
	`

	args := make([]interface{}, 0, len(points)*cols)
	for _, p := range points {
		args = append(args, tenantID, p.TS, p.Channel, p.CampaignID, p.Impressions, p.Clicks, p.Cost)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert ad spend: %w", err)
	}
	return nil
}

func (r *factsRepository) UpsertWeather(ctx context.Context, tenantID string, points []domain.WeatherHourlyPoint) error {
	if len(points) == 0 {
		return nil
	}

	const cols = 7
	query := `
		INSERT INTO weather_hourly (tenant_id, ts, location, temp_c, humidity, rain_mm, wind_mps)
		VALUES ` + placeholderRows(len(points), cols) + `
		ON CONFLICT (tenant_id, ts, location) DO UPDATE SET
			temp_c = EXCLUDED.temp_c,
			humidity = EXCLUDED.humidity,
			rain_mm = EXCLUDED.rain_mm,
			wind_mps = EXCLUDED.wind_mps
	`

	args := make([]interface{}, 0, len(points)*cols)
	for _, p := range points {
		args = append(args, tenantID, p.TS, p.Location, p.TempC, p.Humidity, p.RainMM, p.WindMPS)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert weather: %w", err)
	}
	return nil
}

func (r *factsRepository) UpsertItems(ctx context.Context, tenantID string, items []domain.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO items (tenant_id, sku, name, option_name, barcode, qty, safe_qty, unit_cost, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (tenant_id, sku) DO UPDATE SET
			name = COALESCE(NULLIF(EXCLUDED.name, ''), items.name),
			option_name = COALESCE(NULLIF(EXCLUDED.option_name, ''), items.option_name),
			barcode = COALESCE(NULLIF(EXCLUDED.barcode, ''), items.barcode),
			qty = EXCLUDED.qty,
			safe_qty = COALESCE(EXCLUDED.safe_qty, items.safe_qty),
			unit_cost = COALESCE(EXCLUDED.unit_cost, items.unit_cost),
			updated_at = NOW()
	`

	stmt, err := r.db.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare item upsert: %w", err)
	}
	defer stmt.Close()

	for _, it := range items {
		if _, err := stmt.ExecContext(ctx, tenantID, it.SKU, it.Name, it.OptionName, it.Barcode, it.Qty, it.SafeQty, it.UnitCost); err != nil {
			return fmt.Errorf("failed to upsert item %s: %w", it.SKU, err)
		}
	}
	return nil
}

var seriesBuckets = map[string]string{
	"day":   "day",
	"week":  "week",
	"month": "month",
}

func (r *factsRepository) SalesSeries(ctx context.Context, tenantID, from, to, granularity string) ([]domain.SeriesPoint, error) {
	bucket, ok := seriesBuckets[strings.ToLower(strings.TrimSpace(granularity))]
	if !ok {
		bucket = "day"
	}

	query := fmt.Sprintf(`
		SELECT to_char(date_trunc('%s', sale_date::date), 'YYYY-MM-DD') AS ts,
		       COALESCE(SUM(revenue), 0) AS value
		FROM sales_facts
		WHERE tenant_id = $1 AND sale_date >= $2 AND sale_date <= $3
		GROUP BY 1
		ORDER BY 1
	`, bucket)

	var points []domain.SeriesPoint
	if err := r.db.SelectContext(ctx, &points, query, tenantID, from, to); err != nil {
		return nil, fmt.Errorf("error getting sales series: %w", err)
	}
	return points, nil
}

func (r *factsRepository) AdSpend(ctx context.Context, tenantID, from, to, channel string) ([]domain.AdSpendPoint, error) {
	query := `
		SELECT ts, channel, campaign_id, impressions, clicks, cost
		FROM ad_spend
		WHERE tenant_id = $1 AND ts >= $2::timestamptz AND ts <= $3::timestamptz
	`
	args := []interface{}{tenantID, from, to}
	if channel != "" {
		query += " AND channel = $4"
		args = append(args, channel)
	}
	query += " ORDER BY ts"

	var points []domain.AdSpendPoint
	if err := r.db.SelectContext(ctx, &points, query, args...); err != nil {
		return nil, fmt.Errorf("error getting ad spend: %w", err)
	}
	return points, nil
}

func (r *factsRepository) WeatherHourly(ctx context.Context, tenantID, location string, limit int) ([]domain.WeatherHourlyPoint, error) {
	if limit <= 0 {
		limit = 24
	}

	query := `
		SELECT ts, location, temp_c, humidity, rain_mm, wind_mps
		FROM weather_hourly
		WHERE tenant_id = $1 AND location = $2
		ORDER BY ts DESC
		LIMIT $3
	`

	var points []domain.WeatherHourlyPoint
	if err := r.db.SelectContext(ctx, &points, query, tenantID, location, limit); err != nil {
		return nil, fmt.Errorf("error getting hourly weather: %w", err)
	}
	return points, nil
}

func (r *factsRepository) DailyQty(ctx context.Context, tenantID, from, to string) ([]domain.DailyQty, error) {
	query := `
		SELECT sku, sale_date, SUM(qty) AS qty
		FROM sales_facts
		WHERE tenant_id = $1 AND sale_date >= $2 AND sale_date <= $3
		GROUP BY sku, sale_date
		ORDER BY sku, sale_date
	`

	var rows []domain.DailyQty
	if err := r.db.SelectContext(ctx, &rows, query, tenantID, from, to); err != nil {
		return nil, fmt.Errorf("error getting daily quantities: %w", err)
	}
	return rows, nil
}

func (r *factsRepository) SKUMeta(ctx context.Context, tenantID string) ([]domain.SKUMeta, error) {
	// Most recent stock/cost metadata per SKU, from items first and the
	// latest fact row as fallback.
	query := `
		SELECT DISTINCT ON (f.sku)
		       f.sku,
		       COALESCE(i.qty, f.stock_on_hand) AS stock_on_hand,
		       COALESCE(i.unit_cost, f.cost_price) AS unit_cost
		FROM sales_facts f
		LEFT JOIN items i ON i.tenant_id = f.tenant_id AND i.sku = f.sku
		WHERE f.tenant_id = $1
		ORDER BY f.sku, f.event_time DESC
	`

	var rows []domain.SKUMeta
	if err := r.db.SelectContext(ctx, &rows, query, tenantID); err != nil {
		return nil, fmt.Errorf("error getting sku metadata: %w", err)
	}
	return rows, nil
}

func (r *factsRepository) RevenueBySKU(ctx context.Context, tenantID, from, to string) ([]domain.SKURevenue, error) {
	query := `
		SELECT sku, COALESCE(SUM(revenue), 0) AS revenue
		FROM sales_facts
		WHERE tenant_id = $1 AND sale_date >= $2 AND sale_date <= $3
		GROUP BY sku
		ORDER BY revenue DESC
	`

	var rows []domain.SKURevenue
	if err := r.db.SelectContext(ctx, &rows, query, tenantID, from, to); err != nil {
		return nil, fmt.Errorf("error getting revenue by sku: %w", err)
	}
	return rows, nil
}

func (r *factsRepository) InventoryItems(ctx context.Context, tenantID string) ([]domain.InventoryItem, error) {
	query := `
		SELECT sku, COALESCE(name, '') AS name, COALESCE(option_name, '') AS option_name,
		       COALESCE(barcode, '') AS barcode, qty, safe_qty, unit_cost,
		       to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"') AS updated_at
		FROM items
		WHERE tenant_id = $1
		ORDER BY sku
	`

	rows, err := r.db.QueryxContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error getting inventory items: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var it domain.InventoryItem
		if err := rows.Scan(&it.SKU, &it.Name, &it.OptionName, &it.Barcode, &it.Qty, &it.SafeQty, &it.UnitCost, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning inventory item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory items: %w", err)
	}
	return items, nil
}

func (r *factsRepository) DeleteTenant(ctx context.Context, tenantID string, hard bool) error {
	tables := []string{"sales_facts", "ad_spend", "weather_hourly", "items"}
	if hard {
		// Hard reset additionally clears the staged upload history.
		tables = append(tables, "upload_audits")
	}

	for _, table := range tables {
		query := fmt.Sprintf("DELETE FROM %s WHERE tenant_id = $1", table)
		if _, err := r.db.ExecContext(ctx, query, tenantID); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

func (r *factsRepository) RunTemplate(ctx context.Context, query string, args []interface{}) ([]map[string]interface{}, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("template query failed: %w", err)
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("error scanning template row: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template rows: %w", err)
	}
	return results, nil
}
