package main

import (
	"database/sql"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/urfave/cli/v2"
)

var (
	mockChannels  = []string{"web", "smartstore", "coupang"}
	mockRegions   = []string{"KR", "JP", "US"}
	mockCampaigns = []string{"brand", "retargeting", "search"}
)

// runMock generates reproducible sample data: a fixed RNG seed always yields
// the same rows, so repeated runs upsert identical facts.
func runMock(c *cli.Context) error {
	db := dbFrom(c)
	tenant := c.String("tenant")
	days := c.Int("days")
	skus := c.Int("skus")
	rng := rand.New(rand.NewSource(c.Int64("rng-seed")))

	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -days+1)

	if err := seedSales(c, db, rng, tenant, start, days, skus); err != nil {
		return err
	}
	if err := seedAds(c, db, rng, tenant, start, days); err != nil {
		return err
	}
	if err := seedWeather(c, db, rng, tenant, end); err != nil {
		return err
	}

	fmt.Printf("seeded %d days of mock data for tenant %s\n", days, tenant)
	return nil
}

func seedSales(c *cli.Context, db *sql.DB, rng *rand.Rand, tenant string, start time.Time, days, skus int) error {
	stmt, err := db.PrepareContext(c.Context, `
		INSERT INTO sales_facts (
			tenant_id, sale_date, sku, category, region, channel,
			revenue, qty, selling_price, cost_price,
			source_type, source_provider, ingest_job_id, is_simulated, event_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'mock', 'seed', 'seed-mock', TRUE, $11)
		ON CONFLICT (tenant_id, sale_date, sku, channel) DO UPDATE SET
			revenue = EXCLUDED.revenue,
			qty = EXCLUDED.qty
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare sales insert: %w", err)
	}
	defer stmt.Close()

	itemStmt, err := db.PrepareContext(c.Context, `
		INSERT INTO items (tenant_id, sku, name, qty, safe_qty, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id, sku) DO UPDATE SET
			qty = EXCLUDED.qty,
			safe_qty = EXCLUDED.safe_qty,
			unit_cost = EXCLUDED.unit_cost,
			updated_at = NOW()
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare item insert: %w", err)
	}
	defer itemStmt.Close()

	for s := 0; s < skus; s++ {
		sku := fmt.Sprintf("SKU-%04d", s+1)
		price := 5000 + rng.Float64()*45000
		cost := price * (0.4 + rng.Float64()*0.2)
		baseDemand := 1 + rng.Float64()*9

		for d := 0; d < days; d++ {
			day := start.AddDate(0, 0, d)
			// Weekly seasonality on top of noise.
			seasonal := 1 + 0.3*math.Sin(2*math.Pi*float64(day.Weekday())/7)
			qty := math.Max(0, math.Round(baseDemand*seasonal+rng.NormFloat64()*2))
			if qty == 0 {
				continue
			}
			channel := mockChannels[rng.Intn(len(mockChannels))]
			region := mockRegions[rng.Intn(len(mockRegions))]

			if _, err := stmt.ExecContext(c.Context,
				tenant, day.Format("2006-01-02"), sku, "mock", region, channel,
				qty*price, qty, price, cost, day,
			); err != nil {
				return fmt.Errorf("failed to insert mock sale: %w", err)
			}
		}

		stock := math.Round(baseDemand * (3 + rng.Float64()*20))
		safe := math.Round(baseDemand * 7)
		if _, err := itemStmt.ExecContext(c.Context,
			tenant, sku, fmt.Sprintf("Mock Item %04d", s+1), stock, safe, cost,
		); err != nil {
			return fmt.Errorf("failed to insert mock item: %w", err)
		}
	}

	return nil
}

func seedAds(c *cli.Context, db *sql.DB, rng *rand.Rand, tenant string, start time.Time, days int) error {
	stmt, err := db.PrepareContext(c.Context, `
		INSERT INTO ad_spend (tenant_id, ts, channel, campaign_id, impressions, clicks, cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, ts, channel, campaign_id) DO UPDATE SET
			impressions = EXCLUDED.impressions,
			clicks = EXCLUDED.clicks,
			cost = EXCLUDED.cost
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare ad spend insert: %w", err)
	}
	defer stmt.Close()

	for d := 0; d < days; d++ {
		day := start.AddDate(0, 0, d)
		for _, channel := range mockChannels {
			campaign := mockCampaigns[rng.Intn(len(mockCampaigns))]
			impressions := int64(1000 + rng.Intn(20000))
			clicks := int64(float64(impressions) * (0.005 + rng.Float64()*0.03))
			cost := float64(clicks) * (100 + rng.Float64()*400)

			if _, err := stmt.ExecContext(c.Context,
				tenant, day, channel, campaign, impressions, clicks, cost,
			); err != nil {
				return fmt.Errorf("failed to insert mock ad spend: %w", err)
			}
		}
	}

	return nil
}

func seedWeather(c *cli.Context, db *sql.DB, rng *rand.Rand, tenant string, end time.Time) error {
	stmt, err := db.PrepareContext(c.Context, `
		INSERT INTO weather_hourly (tenant_id, ts, location, temp_c, humidity, rain_mm, wind_mps)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (tenant_id, ts, location) DO UPDATE SET
			temp_c = EXCLUDED.temp_c,
			humidity = EXCLUDED.humidity,
			rain_mm = EXCLUDED.rain_mm,
			wind_mps = EXCLUDED.wind_mps
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare weather insert: %w", err)
	}
	defer stmt.Close()

	// 7 days of hourly observations leading up to the end date.
	for h := 0; h < 7*24; h++ {
		ts := end.Add(-time.Duration(h) * time.Hour)
		temp := 15 + 10*math.Sin(2*math.Pi*float64(ts.Hour())/24) + rng.NormFloat64()*2
		rain := 0.0
		if rng.Float64() < 0.15 {
			rain = rng.Float64() * 8
		}

		if _, err := stmt.ExecContext(c.Context,
			tenant, ts, "seoul", temp, 40+rng.Float64()*50, rain, 1+rng.Float64()*6,
		); err != nil {
			return fmt.Errorf("failed to insert mock weather: %w", err)
		}
	}

	return nil
}
