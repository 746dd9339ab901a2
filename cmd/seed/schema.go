package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS sales_facts (
		tenant_id       TEXT NOT NULL,
		sale_date       TEXT NOT NULL,
		sku             TEXT NOT NULL,
		category        TEXT NOT NULL DEFAULT '',
		region          TEXT NOT NULL DEFAULT '',
		channel         TEXT NOT NULL DEFAULT '',
		revenue         DOUBLE PRECISION NOT NULL DEFAULT 0,
		qty             DOUBLE PRECISION NOT NULL DEFAULT 0,
		selling_price   DOUBLE PRECISION,
		cost_price      DOUBLE PRECISION,
		stock_on_hand   DOUBLE PRECISION,
		source_type     TEXT NOT NULL DEFAULT '',
		source_provider TEXT NOT NULL DEFAULT '',
		ingest_job_id   TEXT NOT NULL DEFAULT '',
		is_simulated    BOOLEAN NOT NULL DEFAULT FALSE,
		event_time      TIMESTAMPTZ,
		ingest_time     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (tenant_id, sale_date, sku, channel)
	)`,
	`CREATE TABLE IF NOT EXISTS ad_spend (
		tenant_id   TEXT NOT NULL,
		ts          TIMESTAMPTZ NOT NULL,
		channel     TEXT NOT NULL,
		campaign_id TEXT NOT NULL DEFAULT '',
		impressions BIGINT NOT NULL DEFAULT 0,
		clicks      BIGINT NOT NULL DEFAULT 0,
		cost        DOUBLE PRECISION NOT NULL DEFAULT 0,
		PRIMARY KEY (tenant_id, ts, channel, campaign_id)
	)`,
	`CREATE TABLE IF NOT EXISTS weather_hourly (
		tenant_id TEXT NOT NULL,
		ts        TIMESTAMPTZ NOT NULL,
		location  TEXT NOT NULL,
		temp_c    DOUBLE PRECISION NOT NULL DEFAULT 0,
		humidity  DOUBLE PRECISION NOT NULL DEFAULT 0,
		rain_mm   DOUBLE PRECISION NOT NULL DEFAULT 0,
		wind_mps  DOUBLE PRECISION NOT NULL DEFAULT 0,
		PRIMARY KEY (tenant_id, ts, location)
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		tenant_id   TEXT NOT NULL,
		sku         TEXT NOT NULL,
		name        TEXT,
		option_name TEXT,
		barcode     TEXT,
		qty         DOUBLE PRECISION NOT NULL DEFAULT 0,
		safe_qty    DOUBLE PRECISION,
		unit_cost   DOUBLE PRECISION,
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (tenant_id, sku)
	)`,
	`CREATE TABLE IF NOT EXISTS upload_audits (
		job_id          TEXT PRIMARY KEY,
		tenant_id       TEXT NOT NULL,
		source_type     TEXT NOT NULL DEFAULT '',
		source_provider TEXT NOT NULL DEFAULT '',
		file_name       TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'pending',
		error_message   TEXT NOT NULL DEFAULT '',
		since_ts        TIMESTAMPTZ,
		until_ts        TIMESTAMPTZ,
		rows_ingested   INTEGER NOT NULL DEFAULT 0,
		rows_invalid    INTEGER NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_facts_tenant_date ON sales_facts (tenant_id, sale_date)`,
	`CREATE INDEX IF NOT EXISTS idx_upload_audits_tenant ON upload_audits (tenant_id, created_at DESC)`,
}

func runSchema(c *cli.Context) error {
	db := dbFrom(c)
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(c.Context, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	fmt.Println("schema ready")
	return nil
}
