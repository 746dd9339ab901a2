package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/joogo-hq/joogo-backend/internal/ingest"
)

// runCSVImport loads a sales CSV straight into the facts table, using the same
// normalization path as the HTTP upload endpoint.
func runCSVImport(c *cli.Context) error {
	db := dbFrom(c)
	tenant := c.String("tenant")
	path := c.String("file")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read csv header: %w", err)
	}
	layout := ingest.DetectLayout(header)

	stmt, err := db.PrepareContext(c.Context, `
		INSERT INTO sales_facts (
			tenant_id, sale_date, sku, category, region, channel,
			revenue, qty, selling_price, cost_price, stock_on_hand,
			source_type, source_provider, ingest_job_id, is_simulated, event_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'csv', 'seed', 'seed-csv', FALSE, $12)
		ON CONFLICT (tenant_id, sale_date, sku, channel) DO UPDATE SET
			revenue = EXCLUDED.revenue,
			qty = EXCLUDED.qty,
			selling_price = EXCLUDED.selling_price,
			cost_price = EXCLUDED.cost_price,
			stock_on_hand = EXCLUDED.stock_on_hand
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare sales insert: %w", err)
	}
	defer stmt.Close()

	inserted, invalid := 0, 0
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

		dates := map[string]float64{}
		if len(row.DailyQty) > 0 {
			dates = row.DailyQty
		} else if row.SaleDate != "" {
			dates[row.SaleDate] = row.Qty
		}

		for date, qty := range dates {
			revenue := row.Revenue
			if len(row.DailyQty) > 0 {
				revenue = 0
			}
			eventTime, _ := time.Parse("2006-01-02", date)
			if _, err := stmt.ExecContext(c.Context,
				tenant, date, row.SKU, row.Category, row.Region, row.Channel,
				revenue, qty, row.SellingPrice, row.CostPrice, row.StockOnHand,
				eventTime,
			); err != nil {
				return fmt.Errorf("failed to insert csv row: %w", err)
			}
			inserted++
		}
	}

	fmt.Printf("imported %d rows (%d invalid) for tenant %s\n", inserted, invalid, tenant)
	return nil
}
