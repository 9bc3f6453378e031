package sim

import (
	"context"
	"fmt"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"storefront-seeder/internal/core"
	"storefront-seeder/internal/random"
	"storefront-seeder/internal/refdata"

	"github.com/google/uuid"
)

// CustomerPool is the assembled customer pool for a run.
type CustomerPool struct {
	Customers     []core.Customer
	ExistingCount int
	CreatedCount  int
	CreatedIDs    []uuid.UUID
	FailedCount   int
}

// CohortManager loads and creates customer accounts, then labels them with a
// segment and a cohort year.
type CohortManager struct {
	store core.CustomerService
	src   *random.Source
	opts  Options
	runID uuid.UUID
	log   *log.Logger
	sleep func(context.Context, time.Duration) error
}

func NewCohortManager(store core.CustomerService, src *random.Source, opts Options, runID uuid.UUID, logger *log.Logger) *CohortManager {
	return &CohortManager{store: store, src: src, opts: opts, runID: runID, log: logger, sleep: sleepContext}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Prepare loads customers carrying the configured role and creates new
// accounts until the pool holds target customers. A single failed creation
// is logged and retried; MaxCreationFailures consecutive failures abort with
// ErrCustomerPoolUnavailable.
func (m *CohortManager) Prepare(ctx context.Context, target int) (*CustomerPool, error) {
	existing, err := m.store.ListCustomersByRole(ctx, m.opts.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing customers: %w", err)
	}
	pool := &CustomerPool{Customers: existing, ExistingCount: len(existing)}
	m.log.Printf("[CUSTOMERS] %d existing customers, target pool %d", len(existing), target)

	consecutive := 0
	for len(pool.Customers) < target {
		c, err := m.createOne(ctx)
		if err != nil {
			pool.FailedCount++
			consecutive++
			m.log.Printf("[CUSTOMERS] creation failed (%d in a row): %v", consecutive, err)
			if consecutive >= m.opts.MaxCreationFailures {
				return pool, fmt.Errorf("%w: %d consecutive creation failures, last: %v",
					ErrCustomerPoolUnavailable, consecutive, err)
			}
		} else {
			consecutive = 0
			pool.Customers = append(pool.Customers, *c)
			pool.CreatedIDs = append(pool.CreatedIDs, c.ID)
			pool.CreatedCount++
			if pool.CreatedCount%100 == 0 {
				m.log.Printf("[CUSTOMERS] created %d new customer accounts", pool.CreatedCount)
			}
		}
		if err := m.sleep(ctx, m.opts.CreationDelay); err != nil {
			return pool, err
		}
	}
	return pool, nil
}

func (m *CohortManager) createOne(ctx context.Context) (*core.Customer, error) {
	id, err := uuid.NewRandomFromReader(m.src)
	if err != nil {
		return nil, fmt.Errorf("failed to generate customer id: %w", err)
	}
	first := random.Pick(m.src, refdata.FirstNames)
	last := random.Pick(m.src, refdata.LastNames)
	runID := m.runID

	return m.store.CreateCustomer(ctx, core.CustomerInput{
		ID:       id,
		Email:    m.customerEmail(first, last),
		FullName: first + " " + last,
		Phone:    phoneNumber(m.src),
		Role:     m.opts.Role,
		RunID:    &runID,
	})
}

var emailUnsafe = regexp.MustCompile(`[^a-z0-9.]`)

// customerEmail builds first.last.<clock base36><4 random>@domain.
func (m *CohortManager) customerEmail(first, last string) string {
	stamp := strconv.FormatInt(m.opts.Now.UnixMilli(), 36)
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = "0123456789abcdefghijklmnopqrstuvwxyz"[m.src.Intn(36)]
	}
	local := strings.ToLower(fmt.Sprintf("%s.%s.%s%s", first, last, stamp, suffix))
	return emailUnsafe.ReplaceAllString(local, "") + "@" + m.opts.EmailDomain
}

func phoneNumber(src *random.Source) string {
	return fmt.Sprintf("%s%d", random.Pick(src, refdata.PhonePrefixes), src.IntBetween(1000000, 9999999))
}

// segmentSize is floor(total*share), at least one when share is positive.
func segmentSize(total int, share float64) int {
	if share <= 0 {
		return 0
	}
	return int(math.Max(1, math.Floor(float64(total)*share)))
}

// AssignCohorts shuffles customers, labels the first loyalShare of them
// loyal, the next engagedShare engaged and the rest casual, then hands out
// year buckets by walking targets in order. The last year takes whatever is
// left. The shuffled slice is returned; the input is not modified.
func AssignCohorts(src *random.Source, customers []core.Customer, loyalShare, engagedShare float64, targets []int) []core.Customer {
	shuffled := append([]core.Customer(nil), customers...)
	random.ShuffleSlice(src, shuffled)

	total := len(shuffled)
	if total == 0 {
		return shuffled
	}
	loyal := segmentSize(total, loyalShare)
	engaged := segmentSize(total, engagedShare)

	for i := range shuffled {
		switch {
		case i < loyal:
			shuffled[i].Segment = core.SegmentLoyal
		case i < loyal+engaged:
			shuffled[i].Segment = core.SegmentEngaged
		default:
			shuffled[i].Segment = core.SegmentCasual
		}
	}

	last := len(targets) - 1
	if last < 0 {
		last = 0
	}
	pointer := 0
	for y, target := range targets {
		allocation := target
		if y == last || allocation > total-pointer {
			allocation = total - pointer
		}
		for i := 0; i < allocation; i++ {
			shuffled[pointer].YearBucket = y
			pointer++
		}
	}
	for ; pointer < total; pointer++ {
		shuffled[pointer].YearBucket = last
	}
	return shuffled
}
