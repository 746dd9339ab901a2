// The seed CLI prepares a database for local development: it creates the
// schema, loads deterministic mock data, or imports a CSV export.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type dbKeyType struct{}

var dbKey dbKeyType

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newTenantFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "tenant",
		Usage:    "Tenant ID to seed",
		Required: true,
		EnvVars:  []string{"SEED_TENANT_ID"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) *sql.DB {
	db, _ := c.Context.Value(dbKey).(*sql.DB)
	return db
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Prepare the database with schema and sample data",
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Create tables if they do not exist",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runSchema,
			},
			{
				Name:  "mock",
				Usage: "Load deterministic mock sales, ads and weather data",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newTenantFlag(),
					&cli.IntFlag{
						Name:  "days",
						Usage: "Number of days of history to generate",
						Value: 90,
					},
					&cli.IntFlag{
						Name:  "skus",
						Usage: "Number of SKUs to generate",
						Value: 40,
					},
					&cli.Int64Flag{
						Name:  "rng-seed",
						Usage: "Seed for the generator, same seed gives same data",
						Value: 42,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runMock,
			},
			{
				Name:  "csv",
				Usage: "Import a sales CSV export",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newTenantFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to the CSV file",
						Required: true,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runCSVImport,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
