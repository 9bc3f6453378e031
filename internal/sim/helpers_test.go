package sim

import (
	"io"
	"log"
	"testing"
	"time"

	"storefront-seeder/internal/config"
	"storefront-seeder/internal/core"
	"storefront-seeder/internal/refdata"

	"github.com/davecgh/go-spew/spew"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, config.Location)
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testOptions() Options {
	return Options{
		Start:               day(2022, 1, 1),
		End:                 day(2025, 10, 31),
		RecoveryEnd:         day(2022, 7, 1),
		Now:                 day(2025, 11, 15),
		YearlyTargets:       []int{200, 250, 300, 250},
		LoyalShare:          0.12,
		EngagedShare:        0.38,
		Role:                "customer",
		EmailDomain:         "mail.example.test",
		MaxCreationFailures: 25,
		BatchSize:           10,
		CleanupOrphans:      true,
	}
}

func testContext(products *ProductCatalog) *SimulationContext {
	return NewSimulationContext(testOptions(), products, nil,
		NewBranchPicker(DefaultBranches(), refdata.BranchPriorityWeights))
}

func sampleProducts() []core.Product {
	return []core.Product{
		{
			ID: "J-1", Name: "Pro Sublimation Jersey", Category: "Jerseys", Price: decimal.NewFromInt(1200),
			JerseyPrices: map[string]decimal.Decimal{
				core.VariantFullSet:    decimal.NewFromInt(1200),
				core.VariantShirtOnly:  decimal.NewFromInt(750),
				core.VariantShortsOnly: decimal.NewFromInt(600),
			},
			FabricSurcharges:  map[string]decimal.Decimal{"Dri-Fit": decimal.NewFromInt(50)},
			CutTypeSurcharges: map[string]decimal.Decimal{"NBA Cut": decimal.NewFromInt(30)},
			IsActive:          true,
		},
		{ID: "H-1", Name: "Team Hoodie", Category: "Hoodies", Price: decimal.NewFromInt(950), IsActive: true},
		{ID: "U-1", Name: "Varsity Uniform", Category: "Uniforms", Price: decimal.NewFromInt(880), IsActive: true},
		{ID: "B-1", Name: "Molten Volleyball V5", Category: "Balls", Price: decimal.NewFromInt(2100), IsActive: true},
		{ID: "T-1", Name: "MVP Trophy Deluxe", Category: "Trophies", Price: decimal.NewFromInt(1100), IsActive: true},
		{ID: "M-1", Name: "Silver Medal", Category: "Medals", Price: decimal.NewFromInt(120), IsActive: true},
	}
}

// requireConsistentOrder checks the totals and roster invariants of o.
func requireConsistentOrder(t *testing.T, o core.Order) {
	t.Helper()
	dump := spew.Sdump(o)

	require.NotEmpty(t, o.Items, dump)
	require.True(t, o.Total.Equal(o.Subtotal.Add(o.ShippingCost)), dump)
	require.True(t, o.ShippingCost.IsZero(), dump)
	require.Equal(t, core.ShippingPickup, o.ShippingMethod)
	require.NotEmpty(t, o.PickupLocation)

	subtotal := decimal.Zero
	items := 0
	for _, it := range o.Items {
		subtotal = subtotal.Add(it.TotalPrice)
		items += it.Quantity
		require.True(t, it.PricePerUnit.IsPositive(), dump)
		require.Positive(t, it.Quantity, dump)
		if len(it.Members) > 0 {
			require.Len(t, it.Members, it.Quantity, dump)
			sum := decimal.Zero
			for _, m := range it.Members {
				sum = sum.Add(m.TotalPrice)
			}
			require.True(t, sum.Equal(it.TotalPrice), dump)
		}
	}
	require.True(t, subtotal.Equal(o.Subtotal), dump)
	require.Equal(t, items, o.TotalItems, dump)
	require.NotEmpty(t, o.DeliveryAddress.City, dump)
	require.NotEmpty(t, o.DeliveryAddress.Province, dump)
	require.True(t, InPhilippines(o.DeliveryAddress.Latitude, o.DeliveryAddress.Longitude), dump)
}
