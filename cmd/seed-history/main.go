// seed-history fills the storefront database with a simulated multi-year
// order history: customer accounts, geocoded pickup orders and a summary.
//
// Usage:
//
//	go run ./cmd/seed-history --confirm [--config seed.yaml]
//	go run ./cmd/seed-history --dry-run [--config seed.yaml]
//	go run ./cmd/seed-history schema
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"storefront-seeder/internal/config"
	"storefront-seeder/internal/core"
	"storefront-seeder/internal/db"
	"storefront-seeder/internal/sim"

	"github.com/joho/godotenv"
)

const usage = `usage:
  seed-history --confirm [--config FILE]   generate and write orders to DATABASE_URL
  seed-history --dry-run [--config FILE]   simulate without a database
  seed-history schema                      print the config file JSON Schema`

func main() {
	_ = godotenv.Load()

	if len(os.Args) > 1 && os.Args[1] == "schema" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(config.Schema()); err != nil {
			log.Fatalf("Failed to encode schema: %v", err)
		}
		return
	}

	fs := flag.NewFlagSet("seed-history", flag.ExitOnError)
	confirm := fs.Bool("confirm", false, "write generated data to the database")
	dryRun := fs.Bool("dry-run", false, "run the simulation against in-memory stores")
	configPath := fs.String("config", "", "YAML run configuration (defaults when empty)")
	fs.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	_ = fs.Parse(os.Args[1:])

	if *confirm == *dryRun {
		fs.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := &sim.Runner{Config: cfg, Log: log.Default()}
	if *dryRun {
		log.Println("[RUN] dry run: nothing is written to the database")
		store := core.NewMemoryStore(nil, sim.DefaultBranches())
		runner.Customers, runner.Catalog, runner.Orders = store, store, store
	} else {
		pool, err := db.NewPool(ctx)
		if err != nil {
			log.Fatalf("Unable to connect to database: %v", err)
		}
		defer pool.Close()
		runner.Customers = core.NewCustomerService(pool)
		runner.Catalog = core.NewCatalogService(pool)
		runner.Orders = core.NewOrderService(pool)
	}

	summary, err := runner.Run(ctx)
	if summary != nil {
		summary.Write(os.Stdout)
	}
	if errors.Is(err, context.Canceled) {
		log.Fatalf("Run interrupted: %v (purge-generated --run-id removes partial data)", err)
	}
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	log.Printf("[SUMMARY] run %s complete (seed %d)", summary.RunID, summary.Seed)
}
