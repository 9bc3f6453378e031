package sim

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront-seeder/internal/config"
	"storefront-seeder/internal/core"
	"storefront-seeder/internal/geo"
	"storefront-seeder/internal/random"
	"storefront-seeder/internal/refdata"

	"github.com/google/uuid"
)

// Runner executes one generator run against the given stores.
type Runner struct {
	Customers core.CustomerService
	Catalog   core.CatalogService
	Orders    core.OrderService
	Config    *config.Config
	Log       *log.Logger
	Now       func() time.Time
}

func (r *Runner) logger() *log.Logger {
	if r.Log != nil {
		return r.Log
	}
	return log.Default()
}

// LoadGeo builds the geographic catalog from the configured data files. A
// file that is missing or unreadable is logged and skipped.
func LoadGeo(data config.DataConfig, logger *log.Logger) *geo.Catalog {
	ds, err := geo.LoadDataset(data.BarangayDataset)
	if err != nil {
		logger.Printf("[GEO] warning: %v, using built-in cities", err)
		ds = nil
	}
	centroids, err := geo.LoadCentroids(data.BarangayCentroids...)
	if err != nil {
		logger.Printf("[GEO] warning: %v, continuing without centroids", err)
		centroids = nil
	}
	catalog := geo.Build(ds, centroids)
	if catalog.Empty() {
		logger.Println("[GEO] no barangay dataset loaded, using built-in city lists")
	}
	return catalog
}

// loadProducts returns nil when the catalog cannot be read, which switches
// composition to the static price tables.
func (r *Runner) loadProducts(ctx context.Context, logger *log.Logger) *ProductCatalog {
	products, err := r.Catalog.GetProducts(ctx)
	if err != nil {
		logger.Printf("[CATALOG] warning: failed to load products, using static price tables: %v", err)
		return nil
	}
	catalog := NewProductCatalog(products)
	logger.Printf("[CATALOG] %d active products (%d jerseys, %d balls, %d trophies, %d medals)",
		catalog.Len(), catalog.Count(core.KeyJerseys), catalog.Count(core.KeyBalls),
		catalog.Count(core.KeyTrophies), catalog.Count(core.KeyMedals))
	return catalog
}

func (r *Runner) loadBranches(ctx context.Context, logger *log.Logger) []core.Branch {
	branches, err := r.Catalog.GetBranches(ctx)
	if err != nil {
		logger.Printf("[CATALOG] warning: failed to load branches, using defaults: %v", err)
		return DefaultBranches()
	}
	var named []core.Branch
	for _, b := range branches {
		if b.Name = strings.TrimSpace(b.Name); b.Name != "" {
			named = append(named, b)
		}
	}
	if len(named) == 0 {
		logger.Println("[CATALOG] no branches found, using defaults")
		return DefaultBranches()
	}
	return named
}

// orderNumber is ORD-<order time ms>-<run counter>-<token>.
func orderNumber(at time.Time, counter int, src *random.Source) string {
	return fmt.Sprintf("ORD-%d-%d-%s", at.UnixMilli(), counter, src.Token(6))
}

// Run generates and persists the order history. Per-record failures are
// logged and counted in the summary; the run fails when the customer pool
// cannot be assembled or when no order could be written at all.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	logger := r.logger()
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	started := now()

	seed := r.Config.Run.Seed
	if seed == 0 {
		seed = started.UnixNano()
	}
	src := random.New(seed)
	logger.Printf("[RUN] random seed %d (set run.seed or SEED_RANDOM_SEED to replay)", seed)

	opts, err := ResolveOptions(r.Config, src, started)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve run options: %w", err)
	}
	runID, err := uuid.NewRandomFromReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to generate run id: %w", err)
	}
	logger.Printf("[RUN] run %s: %s .. %s, customer targets %v",
		runID, opts.Start.Format(config.DateLayout), opts.End.Format(config.DateLayout), opts.YearlyTargets)

	geoCatalog := LoadGeo(r.Config.Data, logger)
	products := r.loadProducts(ctx, logger)
	branches := NewBranchPicker(r.loadBranches(ctx, logger), refdata.BranchPriorityWeights)
	simCtx := NewSimulationContext(opts, products, geoCatalog, branches)

	summary := newSummary(seed, runID, opts.Start, opts.End)
	summary.LegacyCatalog = products == nil

	cohorts := NewCohortManager(r.Customers, src, opts, runID, logger)
	pool, err := cohorts.Prepare(ctx, opts.TotalCustomerTarget())
	if pool != nil {
		summary.ExistingCustomers = pool.ExistingCount
		summary.CreatedCustomers = pool.CreatedCount
		summary.FailedCustomers = pool.FailedCount
	}
	if err != nil {
		if pool != nil && opts.CleanupOrphans {
			summary.Cleanup, _ = RemoveOrphans(context.WithoutCancel(ctx), r.Customers, pool.CreatedIDs, opts.CleanupDelay, logger)
		}
		return summary, fmt.Errorf("failed to prepare customers: %w", err)
	}
	if len(pool.Customers) == 0 {
		return summary, fmt.Errorf("%w: no customers with role %q", ErrCustomerPoolUnavailable, opts.Role)
	}

	customers := AssignCohorts(src, pool.Customers, opts.LoyalShare, opts.EngagedShare, opts.YearlyTargets)
	selector := NewCustomerSelector(src, customers, opts.YearlyTargets, opts.Start.Year())
	composer := NewComposer(simCtx, src)
	designs := NewDesignRegistry(src)
	persister := NewPersister(r.Orders, opts.BatchSize, logger)

	record := func(written []core.Order) {
		for _, o := range written {
			summary.record(o)
		}
	}

	counter := 0
	for day := opts.Start; !day.After(opts.End); day = day.AddDate(0, 0, 1) {
		months := MonthsBetween(opts.Start, day)
		growth := GrowthMultiplier(months/12, months%12)
		_, orders := composer.OrdersForDay(day, growth)

		for _, o := range orders {
			id, _ := selector.Select(day)
			counter++
			o.UserID = id
			o.OrderNumber = orderNumber(o.OrderedAt, counter, src)
			designs.Assign(&o)
			summary.OrdersGenerated++
			summary.ItemsGenerated += o.TotalItems

			written, err := persister.Add(ctx, o)
			record(written)
			if err != nil {
				return summary, fmt.Errorf("failed to persist orders: %w", err)
			}
		}
		summary.Days++

		if day.Day() == 1 && (day.Month()-1)%3 == 0 {
			logger.Printf("[ORDERS] %s: %d orders, %d items so far (growth %.2f)",
				day.Format("2006-01"), summary.OrdersGenerated, summary.ItemsGenerated, growth)
		}
	}
	written, err := persister.Flush(ctx)
	record(written)
	if err != nil {
		return summary, fmt.Errorf("failed to persist orders: %w", err)
	}

	summary.Persist = persister.Stats()
	summary.Selection = selector.Stats()
	summary.Synthetic = composer.synthetic.count
	summary.Designs = designs.Len()
	logger.Printf("[PERSIST] %d orders written, %d failed", summary.Persist.Inserted, summary.Persist.Failed)

	if opts.CleanupOrphans && len(pool.CreatedIDs) > 0 {
		summary.Cleanup, err = RemoveOrphans(ctx, r.Customers, pool.CreatedIDs, opts.CleanupDelay, logger)
		if err != nil {
			return summary, fmt.Errorf("failed to clean up customers: %w", err)
		}
	}

	if summary.Persist.Inserted == 0 && summary.OrdersGenerated > 0 {
		return summary, ErrNothingPersisted
	}
	return summary, nil
}

