// internal/domain/models.go
package domain

import "time"

// IngestRow is a sales row after normalization. Revenue and Qty default to
// zero when the source cell is absent or unparseable; they are never negative.
type IngestRow struct {
	SaleDate string  `json:"sale_date" db:"sale_date"`
	SKU      string  `json:"sku" db:"sku"`
	Category string  `json:"category,omitempty" db:"category"`
	Region   string  `json:"region,omitempty" db:"region"`
	Channel  string  `json:"channel,omitempty" db:"channel"`
	Revenue  float64 `json:"revenue" db:"revenue"`
	Qty      float64 `json:"qty" db:"qty"`

	// Catalog metadata carried by stock-take files.
	Name       string `json:"name,omitempty" db:"name"`
	OptionName string `json:"option_name,omitempty" db:"option_name"`
	Barcode    string `json:"barcode,omitempty" db:"barcode"`

	// SellingPrice / CostPrice are resolved metadata; nil means unknown,
	// zero is a real price.
	SellingPrice *float64 `json:"selling_price,omitempty" db:"selling_price"`
	CostPrice    *float64 `json:"cost_price,omitempty" db:"cost_price"`

	// StockOnHand carries the stock-take quantity for wide-layout files.
	StockOnHand *float64 `json:"stock_on_hand,omitempty" db:"stock_on_hand"`

	// DailyQty holds per-day quantities parsed from YYYYMMDD wide columns,
	// keyed by normalized YYYY-MM-DD date.
	DailyQty map[string]float64 `json:"daily_qty,omitempty" db:"-"`
}

// AdSpendPoint is one ad-spend observation.
// Natural key: (ts, channel, campaign_id, tenant_id).
type AdSpendPoint struct {
	TS          time.Time `json:"ts" db:"ts"`
	Channel     string    `json:"channel" db:"channel"`
	CampaignID  string    `json:"campaign_id" db:"campaign_id"`
	Impressions int64     `json:"impressions" db:"impressions"`
	Clicks      int64     `json:"clicks" db:"clicks"`
	Cost        float64   `json:"cost" db:"cost"`
}

// WeatherHourlyPoint is one hourly weather observation.
// Natural key: (ts, location, tenant_id).
type WeatherHourlyPoint struct {
	TS       time.Time `json:"ts" db:"ts"`
	Location string    `json:"location" db:"location"`
	TempC    float64   `json:"temp_c" db:"temp_c"`
	Humidity float64   `json:"humidity" db:"humidity"`
	RainMM   float64   `json:"rain_mm" db:"rain_mm"`
	WindMPS  float64   `json:"wind_mps" db:"wind_mps"`
}

// SalesFact is a stored sales row. Provenance fields are set once at write
// time from the ingestion context and never inferred afterwards.
type SalesFact struct {
	TenantID       string    `json:"tenant_id" db:"tenant_id"`
	SaleDate       string    `json:"sale_date" db:"sale_date"`
	SKU            string    `json:"sku" db:"sku"`
	Category       string    `json:"category" db:"category"`
	Region         string    `json:"region" db:"region"`
	Channel        string    `json:"channel" db:"channel"`
	Revenue        float64   `json:"revenue" db:"revenue"`
	Qty            float64   `json:"qty" db:"qty"`
	SellingPrice   *float64  `json:"selling_price" db:"selling_price"`
	CostPrice      *float64  `json:"cost_price" db:"cost_price"`
	StockOnHand    *float64  `json:"stock_on_hand" db:"stock_on_hand"`
	SourceType     string    `json:"source_type" db:"source_type"`
	SourceProvider string    `json:"source_provider" db:"source_provider"`
	IngestJobID    string    `json:"ingest_job_id" db:"ingest_job_id"`
	IsSimulated    bool      `json:"is_simulated" db:"is_simulated"`
	EventTime      time.Time `json:"event_time" db:"event_time"`
	IngestTime     time.Time `json:"ingest_time" db:"ingest_time"`
}

// ReorderStat is the derived per-SKU demand/replenishment view. It is computed
// on demand and never persisted.
type ReorderStat struct {
	SKU            string  `json:"sku"`
	AvgDaily       float64 `json:"avg_daily"`
	StdDaily       float64 `json:"std_daily"`
	ReorderPoint   float64 `json:"reorder_point"`
	StockOnHand    float64 `json:"stock_on_hand"`
	UnitCost       float64 `json:"unit_cost"`
	DaysOfSupply   float64 `json:"days_of_supply"`
	ReorderGapDays float64 `json:"reorder_gap_days"`
	Urgency        string  `json:"urgency"`
}

// ABCStat is the revenue-contribution grade for one SKU.
type ABCStat struct {
	SKU      string  `json:"sku"`
	Revenue  float64 `json:"revenue"`
	Share    float64 `json:"share"`
	CumShare float64 `json:"cum_share"`
	Grade    string  `json:"grade"`
}

// UploadAudit records one ingestion batch. It is created in pending state
// before the first write and finalized exactly once.
type UploadAudit struct {
	JobID          string     `json:"job_id" db:"job_id"`
	TenantID       string     `json:"tenant_id" db:"tenant_id"`
	SourceType     string     `json:"source_type" db:"source_type"`
	SourceProvider string     `json:"source_provider" db:"source_provider"`
	FileName       string     `json:"file_name" db:"file_name"`
	Status         string     `json:"status" db:"status"`
	ErrorMessage   string     `json:"error_message,omitempty" db:"error_message"`
	SinceTS        *time.Time `json:"since_ts" db:"since_ts"`
	UntilTS        *time.Time `json:"until_ts" db:"until_ts"`
	RowsIngested   int        `json:"rows_ingested" db:"rows_ingested"`
	RowsInvalid    int        `json:"rows_invalid" db:"rows_invalid"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// InventoryItem is the per-SKU row shown on the inventory page.
type InventoryItem struct {
	SKU        string   `json:"sku"`
	Name       string   `json:"name"`
	OptionName string   `json:"option_name"`
	Barcode    string   `json:"barcode"`
	Qty        float64  `json:"qty"`
	SafeQty    *float64 `json:"safe_qty"`
	UnitCost   *float64 `json:"unit_cost"`
	UpdatedAt  *string  `json:"updated_at"`
}

// DailyQty is one (sku, day) demand observation aggregated from sales facts.
type DailyQty struct {
	SKU      string  `json:"sku" db:"sku"`
	SaleDate string  `json:"sale_date" db:"sale_date"`
	Qty      float64 `json:"qty" db:"qty"`
}

// SKUMeta is the most recent stock/cost metadata attached to a SKU's facts.
type SKUMeta struct {
	SKU         string   `json:"sku" db:"sku"`
	StockOnHand *float64 `json:"stock_on_hand" db:"stock_on_hand"`
	UnitCost    *float64 `json:"unit_cost" db:"unit_cost"`
}

// SKURevenue is total revenue per SKU over a range, for ABC grading.
type SKURevenue struct {
	SKU     string  `json:"sku" db:"sku"`
	Revenue float64 `json:"revenue" db:"revenue"`
}

// SeriesPoint is one bucket of a sales time series.
type SeriesPoint struct {
	TS    string  `json:"ts" db:"ts"`
	Value float64 `json:"value" db:"value"`
}
