package sim

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"storefront-seeder/internal/config"
	"storefront-seeder/internal/core"
	"storefront-seeder/internal/refdata"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Run.StartDate = "2023-02-01"
	cfg.Run.EndDate = "2023-05-31"
	cfg.Run.RecoveryEnd = "2023-02-01"
	cfg.Run.Seed = 99
	cfg.Customers.YearlyTargets = []config.TargetRange{{Min: 60, Max: 80}}
	cfg.Customers.CreationDelay = 0
	cfg.Persistence.BatchSize = 25
	cfg.Persistence.CleanupDelay = 0
	cfg.Data = config.DataConfig{}
	return cfg
}

var testBranches = []core.Branch{{ID: 1, Name: "LEMERY BRANCH"}, {ID: 2, Name: "CALAPAN BRANCH"}}

func newTestRunner(store *core.MemoryStore, cfg *config.Config) *Runner {
	return &Runner{
		Customers: store,
		Catalog:   store,
		Orders:    store,
		Config:    cfg,
		Log:       quietLogger(),
		Now:       func() time.Time { return day(2025, 11, 1) },
	}
}

func TestRunner_Run(t *testing.T) {
	store := core.NewMemoryStore(sampleProducts(), testBranches)
	summary, err := newTestRunner(store, testConfig()).Run(context.Background())
	require.NoError(t, err)

	orders := store.Orders()
	require.NotEmpty(t, orders)
	assert.Equal(t, 120, summary.Days)
	assert.Equal(t, len(orders), summary.Persist.Inserted)
	assert.Equal(t, len(orders), summary.Orders)
	assert.Equal(t, summary.OrdersGenerated, summary.Orders)
	assert.False(t, summary.LegacyCatalog)

	customers := map[uuid.UUID]bool{}
	for _, c := range store.Customers() {
		customers[c.ID] = true
	}
	numbers := map[string]bool{}
	revenue := decimal.Zero
	perCustomer := map[uuid.UUID]int{}
	for _, o := range orders {
		requireConsistentOrder(t, o)
		require.True(t, strings.HasPrefix(o.OrderNumber, "ORD-"), o.OrderNumber)
		require.False(t, numbers[o.OrderNumber], "duplicate %s", o.OrderNumber)
		numbers[o.OrderNumber] = true
		require.True(t, customers[o.UserID], "order for unknown customer")
		require.Contains(t, []string{"LEMERY BRANCH", "CALAPAN BRANCH"}, o.PickupLocation)
		perCustomer[o.UserID]++
		if o.Status != core.StatusCancelled {
			revenue = revenue.Add(o.Total)
		}
		for _, it := range o.Items {
			if it.IsJersey() {
				require.NotEmpty(t, it.DesignName)
			}
		}
	}
	assert.True(t, revenue.Equal(summary.Revenue))
	assert.Equal(t, len(perCustomer), summary.Buyers())

	// Created customers without orders were swept.
	for id := range customers {
		assert.Positive(t, perCustomer[id], "customer %s kept without orders", id)
	}
	assert.Equal(t, summary.CreatedCustomers-summary.Cleanup.Removed, len(customers))

	var out bytes.Buffer
	summary.Write(&out)
	assert.Contains(t, out.String(), "HISTORICAL ORDER SUMMARY")
	assert.Contains(t, out.String(), "LEMERY BRANCH")
}

func TestRunner_SameSeedReplays(t *testing.T) {
	run := func() []core.Order {
		store := core.NewMemoryStore(sampleProducts(), testBranches)
		_, err := newTestRunner(store, testConfig()).Run(context.Background())
		require.NoError(t, err)
		return store.Orders()
	}
	a, b := run(), run()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].OrderNumber, b[i].OrderNumber)
		assert.Equal(t, a[i].UserID, b[i].UserID)
		assert.True(t, a[i].Total.Equal(b[i].Total))
	}
}

type brokenCatalog struct{}

func (brokenCatalog) GetProducts(context.Context) ([]core.Product, error) {
	return nil, errors.New(`relation "products" does not exist`)
}

func (brokenCatalog) GetBranches(context.Context) ([]core.Branch, error) {
	return nil, errors.New(`relation "branches" does not exist`)
}

func TestRunner_BrokenCatalogDegrades(t *testing.T) {
	store := core.NewMemoryStore(nil, nil)
	r := newTestRunner(store, testConfig())
	r.Catalog = brokenCatalog{}

	summary, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, summary.LegacyCatalog)
	for _, o := range store.Orders() {
		requireConsistentOrder(t, o)
		require.Contains(t, refdata.DefaultBranches, o.PickupLocation)
	}
}

func TestRunner_NothingPersisted(t *testing.T) {
	store := core.NewMemoryStore(sampleProducts(), testBranches)
	store.InsertErr = func(core.Order) error { return errors.New("permission denied for table orders") }

	summary, err := newTestRunner(store, testConfig()).Run(context.Background())
	require.ErrorIs(t, err, ErrNothingPersisted)
	assert.Positive(t, summary.Persist.Failed)
	assert.Zero(t, summary.Persist.Inserted)
	assert.Empty(t, store.Customers(), "every created customer is an orphan")
}

func TestRunner_CustomerPoolUnavailable(t *testing.T) {
	store := core.NewMemoryStore(sampleProducts(), testBranches)
	store.CreateErr = func(core.CustomerInput) error { return errors.New("auth service down") }

	_, err := newTestRunner(store, testConfig()).Run(context.Background())
	require.ErrorIs(t, err, ErrCustomerPoolUnavailable)
	assert.Empty(t, store.Orders())
}

func TestRunner_Cancelled(t *testing.T) {
	store := core.NewMemoryStore(sampleProducts(), testBranches)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRunner(store, testConfig()).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.Customers())
}

func TestRunner_BranchAnchorFromCatalog(t *testing.T) {
	store := core.NewMemoryStore(sampleProducts(), []core.Branch{{ID: 1, Name: "TANAUAN BRANCH", City: "Tanauan"}})
	summary, err := newTestRunner(store, testConfig()).Run(context.Background())
	require.NoError(t, err)
	require.Positive(t, summary.Orders)

	home := 0
	for _, o := range store.Orders() {
		require.Equal(t, "TANAUAN BRANCH", o.PickupLocation)
		if o.DeliveryAddress.City == "Tanauan" {
			home++
		}
	}
	assert.InDelta(t, 0.72, float64(home)/float64(summary.Orders), 0.08)
}
