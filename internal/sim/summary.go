package sim

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"storefront-seeder/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary is the end-of-run report. Order counts, items and revenue cover
// persisted orders only; revenue leaves out cancelled orders.
type Summary struct {
	Seed  int64
	RunID uuid.UUID
	Start time.Time
	End   time.Time

	Days            int
	OrdersGenerated int
	ItemsGenerated  int
	LegacyCatalog   bool
	Synthetic       int
	Designs         int

	Orders       int
	Items        int
	Revenue      decimal.Decimal
	OrdersByYear map[int]int
	ItemsByYear  map[int]int
	ByStatus     map[string]int
	ByBranch     map[string]int
	buyers       map[uuid.UUID]bool

	ExistingCustomers int
	CreatedCustomers  int
	FailedCustomers   int
	Selection         SelectorStats
	Persist           PersistStats
	Cleanup           CleanupStats
}

func newSummary(seed int64, runID uuid.UUID, start, end time.Time) *Summary {
	return &Summary{
		Seed:         seed,
		RunID:        runID,
		Start:        start,
		End:          end,
		Revenue:      decimal.Zero,
		OrdersByYear: map[int]int{},
		ItemsByYear:  map[int]int{},
		ByStatus:     map[string]int{},
		ByBranch:     map[string]int{},
		buyers:       map[uuid.UUID]bool{},
	}
}

// record counts a persisted order.
func (s *Summary) record(o core.Order) {
	s.Orders++
	s.Items += o.TotalItems
	year := o.OrderedAt.Year()
	s.OrdersByYear[year]++
	s.ItemsByYear[year] += o.TotalItems
	s.ByStatus[o.Status]++
	s.ByBranch[o.PickupLocation]++
	s.buyers[o.UserID] = true
	if o.Status != core.StatusCancelled {
		s.Revenue = s.Revenue.Add(o.Total)
	}
}

// Buyers is the number of distinct customers with a persisted order.
func (s *Summary) Buyers() int { return len(s.buyers) }

func (s *Summary) AverageItemsPerOrder() float64 {
	if s.Orders == 0 {
		return 0
	}
	return float64(s.Items) / float64(s.Orders)
}

// Months counts calendar months touched by the run, at least one.
func (s *Summary) Months() int {
	return max(1, MonthsBetween(s.Start, s.End)+1)
}

func (s *Summary) AverageOrdersPerMonth() float64 {
	return float64(s.Orders) / float64(s.Months())
}

func (s *Summary) AverageItemsPerMonth() float64 {
	return float64(s.Items) / float64(s.Months())
}

// SpendPerCustomer is revenue divided by distinct buyers.
func (s *Summary) SpendPerCustomer() decimal.Decimal {
	if len(s.buyers) == 0 {
		return decimal.Zero
	}
	return s.Revenue.Div(decimal.NewFromInt(int64(len(s.buyers)))).Round(2)
}

func sortedKeys[K int | string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Write prints the report as plain text.
func (s *Summary) Write(w io.Writer) {
	rule := strings.Repeat("-", 60)
	fmt.Fprintln(w, "\n--- HISTORICAL ORDER SUMMARY ---")
	fmt.Fprintf(w, "RUN:        %s (seed %d)\n", s.RunID, s.Seed)
	fmt.Fprintf(w, "RANGE:      %s .. %s (%d days)\n", s.Start.Format("2006-01-02"), s.End.Format("2006-01-02"), s.Days)
	if s.LegacyCatalog {
		fmt.Fprintln(w, "CATALOG:    unavailable, static price tables used")
	}
	fmt.Fprintf(w, "GENERATED:  %d orders, %d items\n", s.OrdersGenerated, s.ItemsGenerated)
	fmt.Fprintf(w, "PERSISTED:  %d orders (%d failed, %d batches, %d fell back to single rows)\n",
		s.Persist.Inserted, s.Persist.Failed, s.Persist.Batches, s.Persist.FallbackBatches)
	fmt.Fprintf(w, "ITEMS:      %d (%.1f per order, %.1f per month)\n", s.Items, s.AverageItemsPerOrder(), s.AverageItemsPerMonth())
	fmt.Fprintf(w, "ORDERS/MO:  %.1f\n", s.AverageOrdersPerMonth())
	fmt.Fprintf(w, "REVENUE:    %s\n", s.Revenue.StringFixed(2))
	fmt.Fprintf(w, "PER BUYER:  %s across %d buyers\n", s.SpendPerCustomer().StringFixed(2), s.Buyers())
	fmt.Fprintf(w, "SYNTHETIC:  %d products, %d jersey designs\n", s.Synthetic, s.Designs)
	fmt.Fprintf(w, "CUSTOMERS:  %d existing, %d created, %d creation failures\n",
		s.ExistingCustomers, s.CreatedCustomers, s.FailedCustomers)
	fmt.Fprintf(w, "CLEANUP:    %d removed, %d kept, %d failed\n", s.Cleanup.Removed, s.Cleanup.Skipped, s.Cleanup.Failed)

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-6s %8s %8s %8s %8s\n", "YEAR", "ORDERS", "ITEMS", "NEW", "ACTIVE")
	startYear := s.Start.Year()
	for _, year := range sortedKeys(s.OrdersByYear) {
		idx := year - startYear
		newCount, active := 0, 0
		if idx >= 0 && idx < len(s.Selection.YearlyUniqueCounts) {
			newCount = s.Selection.YearlyUniqueCounts[idx]
			active = s.Selection.YearlyActiveCounts[idx]
		}
		fmt.Fprintf(w, "%-6d %8d %8d %8d %8d\n", year, s.OrdersByYear[year], s.ItemsByYear[year], newCount, active)
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-30s %8s\n", "SEGMENT", "ORDERS")
	for _, seg := range core.Segments {
		fmt.Fprintf(w, "%-30s %8d\n", seg, s.Selection.SegmentOrderCounts[seg])
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-30s %8s\n", "BRANCH", "ORDERS")
	for _, branch := range sortedKeys(s.ByBranch) {
		fmt.Fprintf(w, "%-30s %8d\n", branch, s.ByBranch[branch])
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-30s %8s\n", "STATUS", "ORDERS")
	for _, status := range sortedKeys(s.ByStatus) {
		fmt.Fprintf(w, "%-30s %8d\n", status, s.ByStatus[status])
	}
	fmt.Fprintln(w, rule)
}
