// purge-generated removes the orders and customer accounts written by
// seed-history. Customers are matched by the generator email domain and,
// with --run-id, by the run that created them.
//
// Usage: go run ./cmd/purge-generated --confirm [--config seed.yaml] [--run-id UUID]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"storefront-seeder/internal/config"
	"storefront-seeder/internal/core"
	"storefront-seeder/internal/db"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("purge-generated", flag.ExitOnError)
	confirm := fs.Bool("confirm", false, "actually delete the generated data")
	configPath := fs.String("config", "", "YAML run configuration holding the email domain")
	runIDFlag := fs.String("run-id", "", "only purge customers created by this run")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var runID *uuid.UUID
	if *runIDFlag != "" {
		id, err := uuid.Parse(*runIDFlag)
		if err != nil {
			log.Fatalf("Invalid --run-id %q: %v", *runIDFlag, err)
		}
		runID = &id
	}

	scope := "every run"
	if runID != nil {
		scope = "run " + runID.String()
	}
	if !*confirm {
		fmt.Fprintf(os.Stderr, "Would delete orders and customers @%s from %s. Re-run with --confirm.\n",
			cfg.Customers.EmailDomain, scope)
		os.Exit(2)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	log.Printf("[PURGE] deleting generated data @%s from %s...", cfg.Customers.EmailDomain, scope)
	res, err := core.NewOrderService(pool).DeleteGeneratedData(ctx, cfg.Customers.EmailDomain, runID)
	if err != nil {
		log.Fatalf("Failed to purge: %v", err)
	}
	log.Printf("[PURGE] removed %d orders and %d customers", res.OrdersDeleted, res.CustomersDeleted)
}
