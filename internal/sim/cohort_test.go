package sim

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"storefront-seeder/internal/core"
	"storefront-seeder/internal/random"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCohorts(store core.CustomerService, src *random.Source) *CohortManager {
	return NewCohortManager(store, src, testOptions(), uuid.MustParse("00000000-0000-4000-8000-000000000001"), quietLogger())
}

func TestCohortManager_FourYearScenario(t *testing.T) {
	store := core.NewMemoryStore(nil, nil)
	src := random.New(31)
	opts := testOptions()

	pool, err := newTestCohorts(store, src).Prepare(context.Background(), opts.TotalCustomerTarget())
	require.NoError(t, err)
	require.Len(t, pool.Customers, 1000)
	assert.Equal(t, 1000, pool.CreatedCount)
	assert.Len(t, pool.CreatedIDs, 1000)

	emails := map[string]bool{}
	for _, c := range store.Customers() {
		assert.True(t, strings.HasSuffix(c.Email, "@"+opts.EmailDomain), c.Email)
		assert.False(t, emails[c.Email], "duplicate email %s", c.Email)
		emails[c.Email] = true
		require.NotNil(t, c.RunID)
	}

	customers := AssignCohorts(src, pool.Customers, opts.LoyalShare, opts.EngagedShare, opts.YearlyTargets)
	selector := NewCustomerSelector(src, customers, opts.YearlyTargets, opts.Start.Year())
	for year := 2022; year <= 2025; year++ {
		for i := 0; i < 500; i++ {
			_, ok := selector.Select(day(year, time.Month(1+i%12), 1+i%28))
			require.True(t, ok)
		}
	}

	stats := selector.Stats()
	sum := 0
	for y, n := range stats.YearlyUniqueCounts {
		assert.Equal(t, opts.YearlyTargets[y], n, "year %d", y)
		assert.GreaterOrEqual(t, stats.YearlyActiveCounts[y], n)
		sum += n
	}
	assert.LessOrEqual(t, sum, len(pool.Customers))
	assert.Equal(t, 1000, stats.TotalCustomers)
	assert.Equal(t, []int{500, 500, 500, 500}, stats.YearlyOrderCounts)
}

func TestCohortManager_KeepsExistingCustomers(t *testing.T) {
	store := core.NewMemoryStore(nil, nil)
	store.AddCustomers(
		core.Customer{ID: uuid.New(), Email: "a@shop.test", Role: "customer"},
		core.Customer{ID: uuid.New(), Email: "b@shop.test", Role: "Customer"},
		core.Customer{ID: uuid.New(), Email: "admin@shop.test", Role: "admin"},
	)

	pool, err := newTestCohorts(store, random.New(32)).Prepare(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 2, pool.ExistingCount)
	assert.Equal(t, 3, pool.CreatedCount)
	assert.Len(t, pool.Customers, 5)
}

func TestCohortManager_AbortsAfterConsecutiveFailures(t *testing.T) {
	store := core.NewMemoryStore(nil, nil)
	store.CreateErr = func(core.CustomerInput) error { return errors.New("rate limited") }

	pool, err := newTestCohorts(store, random.New(33)).Prepare(context.Background(), 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCustomerPoolUnavailable)
	assert.Equal(t, 25, pool.FailedCount)
	assert.Zero(t, pool.CreatedCount)
}

func TestCohortManager_ToleratesIsolatedFailures(t *testing.T) {
	store := core.NewMemoryStore(nil, nil)
	calls := 0
	store.CreateErr = func(core.CustomerInput) error {
		calls++
		if calls%3 == 0 {
			return errors.New("transient")
		}
		return nil
	}

	pool, err := newTestCohorts(store, random.New(34)).Prepare(context.Background(), 40)
	require.NoError(t, err)
	assert.Len(t, pool.Customers, 40)
	assert.Positive(t, pool.FailedCount)
}

func TestCohortManager_StopsOnCancel(t *testing.T) {
	store := core.NewMemoryStore(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestCohorts(store, random.New(35)).Prepare(ctx, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func makeCustomers(n int) []core.Customer {
	out := make([]core.Customer, n)
	for i := range out {
		out[i] = core.Customer{ID: uuid.New()}
	}
	return out
}

func TestAssignCohorts_Partition(t *testing.T) {
	customers := makeCustomers(1000)
	got := AssignCohorts(random.New(36), customers, 0.12, 0.38, []int{200, 250, 300, 250})
	require.Len(t, got, 1000)

	segments := map[core.Segment]int{}
	buckets := map[int]int{}
	for _, c := range got {
		segments[c.Segment]++
		buckets[c.YearBucket]++
	}
	assert.Equal(t, 120, segments[core.SegmentLoyal])
	assert.Equal(t, 380, segments[core.SegmentEngaged])
	assert.Equal(t, 500, segments[core.SegmentCasual])
	assert.Equal(t, map[int]int{0: 200, 1: 250, 2: 300, 3: 250}, buckets)

	for _, c := range customers {
		assert.Empty(t, c.Segment, "input must not be modified")
	}
}

func TestAssignCohorts_LastYearAbsorbsRemainder(t *testing.T) {
	got := AssignCohorts(random.New(37), makeCustomers(50), 0.12, 0.38, []int{10, 10})
	buckets := map[int]int{}
	for _, c := range got {
		buckets[c.YearBucket]++
	}
	assert.Equal(t, map[int]int{0: 10, 1: 40}, buckets)
}

func TestAssignCohorts_SmallPoolKeepsEachSegment(t *testing.T) {
	got := AssignCohorts(random.New(38), makeCustomers(4), 0.12, 0.38, []int{4})
	segments := map[core.Segment]int{}
	for _, c := range got {
		segments[c.Segment]++
	}
	assert.Equal(t, 1, segments[core.SegmentLoyal])
	assert.Equal(t, 1, segments[core.SegmentEngaged])
	assert.Equal(t, 2, segments[core.SegmentCasual])
}

func TestAssignCohorts_ZeroShareLeavesSegmentEmpty(t *testing.T) {
	got := AssignCohorts(random.New(45), makeCustomers(100), 0, 0.38, []int{100})
	segments := map[core.Segment]int{}
	for _, c := range got {
		segments[c.Segment]++
	}
	assert.Zero(t, segments[core.SegmentLoyal])
	assert.Equal(t, 38, segments[core.SegmentEngaged])
	assert.Equal(t, 62, segments[core.SegmentCasual])

	got = AssignCohorts(random.New(46), makeCustomers(10), 0, 0, []int{10})
	for _, c := range got {
		assert.Equal(t, core.SegmentCasual, c.Segment)
	}
}

func TestCustomerSelector_LaterCohortsWaitForTheirYear(t *testing.T) {
	customers := AssignCohorts(random.New(39), makeCustomers(100), 0.12, 0.38, []int{20, 80})
	bucket := map[uuid.UUID]int{}
	for _, c := range customers {
		bucket[c.ID] = c.YearBucket
	}

	selector := NewCustomerSelector(random.New(40), customers, []int{20, 80}, 2022)
	for i := 0; i < 300; i++ {
		id, ok := selector.Select(day(2022, 6, 1))
		require.True(t, ok)
		require.Zero(t, bucket[id], "2022 order went to a 2023 cohort customer")
	}
	assert.Equal(t, 20, selector.Stats().YearlyUniqueCounts[0])
}

func TestCustomerSelector_LoyalCustomersRepeat(t *testing.T) {
	customers := AssignCohorts(random.New(41), makeCustomers(500), 0.12, 0.38, []int{50})
	selector := NewCustomerSelector(random.New(42), customers, []int{50}, 2022)
	for i := 0; i < 5000; i++ {
		selector.Select(day(2022, 3, 1))
	}
	stats := selector.Stats()
	total := 0
	for _, n := range stats.SegmentOrderCounts {
		total += n
	}
	assert.Equal(t, 5000, total)

	loyalOrders, loyalCustomers := 0, 0
	for _, c := range customers {
		if c.Segment == core.SegmentLoyal {
			loyalCustomers++
			loyalOrders += selector.OrderCount(c.ID)
		}
	}
	casualAvg := float64(stats.SegmentOrderCounts[core.SegmentCasual]) / 250
	assert.Greater(t, float64(loyalOrders)/float64(loyalCustomers), casualAvg)
}

func TestCustomerSelector_Empty(t *testing.T) {
	selector := NewCustomerSelector(random.New(43), nil, []int{10}, 2022)
	_, ok := selector.Select(day(2022, 1, 1))
	assert.False(t, ok)
}

func TestCustomerEmail_Sanitized(t *testing.T) {
	m := newTestCohorts(core.NewMemoryStore(nil, nil), random.New(44))
	email := m.customerEmail("José", "Dela Cruz")
	local, domain, ok := strings.Cut(email, "@")
	require.True(t, ok)
	assert.Equal(t, "mail.example.test", domain)
	assert.Regexp(t, `^[a-z0-9.]+$`, local)
	assert.True(t, strings.HasPrefix(local, "jos.delacruz."), local)
}
