// Package sim is the order history simulation: customer cohorts, weighted
// customer and branch selection, the daily demand curve, order composition,
// address synthesis, persistence and the run loop tying them together.
package sim

import (
	"errors"
	"fmt"
	"time"

	"storefront-seeder/internal/config"
	"storefront-seeder/internal/geo"
	"storefront-seeder/internal/random"
)

var (
	// ErrCustomerPoolUnavailable means customer creation kept failing and the
	// pool could not be assembled.
	ErrCustomerPoolUnavailable = errors.New("customer pool unavailable")
	// ErrNothingPersisted means orders were generated but none could be written.
	ErrNothingPersisted = errors.New("no orders were persisted")
)

// Options are the resolved run parameters.
type Options struct {
	Start               time.Time
	End                 time.Time
	RecoveryEnd         time.Time
	Now                 time.Time
	YearlyTargets       []int
	LoyalShare          float64
	EngagedShare        float64
	Role                string
	EmailDomain         string
	CreationDelay       time.Duration
	MaxCreationFailures int
	BatchSize           int
	CleanupDelay        time.Duration
	CleanupOrphans      bool
}

// ResolveOptions draws each year's customer target from its configured range.
func ResolveOptions(cfg *config.Config, src *random.Source, now time.Time) (Options, error) {
	start, err := cfg.StartDate()
	if err != nil {
		return Options{}, err
	}
	end, err := cfg.EndDate()
	if err != nil {
		return Options{}, err
	}
	recovery, err := cfg.RecoveryEnd()
	if err != nil {
		return Options{}, err
	}
	if len(cfg.Customers.YearlyTargets) == 0 {
		return Options{}, fmt.Errorf("%w: no yearly targets", config.ErrInvalidConfig)
	}

	targets := make([]int, len(cfg.Customers.YearlyTargets))
	for i, r := range cfg.Customers.YearlyTargets {
		targets[i] = src.IntBetween(r.Min, r.Max)
	}

	return Options{
		Start:               start,
		End:                 end,
		RecoveryEnd:         recovery,
		Now:                 now,
		YearlyTargets:       targets,
		LoyalShare:          cfg.Customers.LoyalShare,
		EngagedShare:        cfg.Customers.EngagedShare,
		Role:                cfg.Customers.Role,
		EmailDomain:         cfg.Customers.EmailDomain,
		CreationDelay:       cfg.Customers.CreationDelay,
		MaxCreationFailures: cfg.Customers.MaxCreationFailures,
		BatchSize:           cfg.Persistence.BatchSize,
		CleanupDelay:        cfg.Persistence.CleanupDelay,
		CleanupOrphans:      cfg.Persistence.CleanupOrphans,
	}, nil
}

// TotalCustomerTarget is the pool size the run needs.
func (o Options) TotalCustomerTarget() int {
	total := 0
	for _, t := range o.YearlyTargets {
		total += t
	}
	return total
}

// SimulationContext holds what is built once before the day loop. Nothing in
// it changes while the run is in progress; run state lives in the selector,
// the composer and the design registry.
type SimulationContext struct {
	Options  Options
	Products *ProductCatalog // nil when the catalog could not be loaded
	Geo      *geo.Catalog
	Branches *BranchPicker
	Demand   DemandModel
}

// NewSimulationContext wires the read-only run inputs. A nil geo catalog is
// replaced with an empty one.
func NewSimulationContext(opts Options, products *ProductCatalog, geoCatalog *geo.Catalog, branches *BranchPicker) *SimulationContext {
	if geoCatalog == nil {
		geoCatalog = geo.Build(nil, nil)
	}
	return &SimulationContext{
		Options:  opts,
		Products: products,
		Geo:      geoCatalog,
		Branches: branches,
		Demand:   DemandModel{Start: opts.Start, RecoveryEnd: opts.RecoveryEnd},
	}
}
