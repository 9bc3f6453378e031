package sim

import (
	"time"

	"storefront-seeder/internal/core"
	"storefront-seeder/internal/random"

	"github.com/google/uuid"
)

// Segment draw thresholds and repeat-purchase odds.
const (
	loyalThreshold     = 0.23
	engagedThreshold   = 0.60
	loyalRepeatChance  = 0.55
	engagedRepeatAfter = 2
	engagedRepeatOdds  = 0.30
)

// repeatPool is an insertion-ordered set, so draws replay from a seed.
type repeatPool struct {
	index map[uuid.UUID]bool
	ids   []uuid.UUID
}

func (p *repeatPool) add(id uuid.UUID) {
	if p.index == nil {
		p.index = map[uuid.UUID]bool{}
	}
	if p.index[id] {
		return
	}
	p.index[id] = true
	p.ids = append(p.ids, id)
}

// SelectorStats reports how the selector distributed orders.
//
// YearlyUniqueCounts counts customers by the year of their first order, so
// its sum never exceeds TotalCustomers. YearlyActiveCounts counts distinct
// customers ordering in each year.
type SelectorStats struct {
	YearlyUniqueCounts []int
	YearlyActiveCounts []int
	YearlyOrderCounts  []int
	SegmentOrderCounts map[core.Segment]int
	TotalCustomers     int
}

// CustomerSelector picks the customer for each order. It is stateful and not
// safe for concurrent use.
type CustomerSelector struct {
	src       *random.Source
	startYear int
	required  []int

	segments map[uuid.UUID]core.Segment
	all      []uuid.UUID
	// pools[y][s] holds segment s customers whose year bucket is <= y.
	pools     [][][]uuid.UUID
	newQueues [][]uuid.UUID

	firstUse     []int
	active       []map[uuid.UUID]bool
	yearOrders   []int
	orderCounts  map[uuid.UUID]int
	segmentCount map[core.Segment]int

	loyalRepeat   repeatPool
	engagedRepeat repeatPool
}

func segmentIndex(s core.Segment) int {
	switch s {
	case core.SegmentLoyal:
		return 0
	case core.SegmentEngaged:
		return 1
	default:
		return 2
	}
}

// NewCustomerSelector builds a selector over segmented customers. required
// holds each year's new-customer quota; its length is the number of years.
func NewCustomerSelector(src *random.Source, customers []core.Customer, required []int, startYear int) *CustomerSelector {
	years := len(required)
	if years == 0 {
		years = 1
		required = []int{0}
	}

	s := &CustomerSelector{
		src:          src,
		startYear:    startYear,
		required:     required,
		segments:     make(map[uuid.UUID]core.Segment, len(customers)),
		pools:        make([][][]uuid.UUID, years),
		newQueues:    make([][]uuid.UUID, years),
		firstUse:     make([]int, years),
		active:       make([]map[uuid.UUID]bool, years),
		yearOrders:   make([]int, years),
		orderCounts:  map[uuid.UUID]int{},
		segmentCount: map[core.Segment]int{},
	}

	byBucket := make([][][]uuid.UUID, years)
	for y := range byBucket {
		byBucket[y] = make([][]uuid.UUID, len(core.Segments))
		s.active[y] = map[uuid.UUID]bool{}
	}
	for _, c := range customers {
		bucket := c.YearBucket
		if bucket < 0 || bucket >= years {
			bucket = years - 1
		}
		seg := segmentIndex(c.Segment)
		s.segments[c.ID] = core.Segments[seg]
		s.all = append(s.all, c.ID)
		byBucket[bucket][seg] = append(byBucket[bucket][seg], c.ID)
		s.newQueues[bucket] = append(s.newQueues[bucket], c.ID)
	}

	for y := 0; y < years; y++ {
		s.pools[y] = make([][]uuid.UUID, len(core.Segments))
		for seg := range core.Segments {
			var pool []uuid.UUID
			if y > 0 {
				pool = append(pool, s.pools[y-1][seg]...)
			}
			s.pools[y][seg] = append(pool, byBucket[y][seg]...)
		}
		random.ShuffleSlice(src, s.newQueues[y])
	}
	return s
}

// YearIndex maps a date onto a cohort year, clamped to the configured years.
func (s *CustomerSelector) YearIndex(date time.Time) int {
	y := date.Year() - s.startYear
	if y < 0 {
		return 0
	}
	if y >= len(s.required) {
		return len(s.required) - 1
	}
	return y
}

// Select returns the customer for an order placed on date and records the
// pick. ok is false only when there are no customers at all.
func (s *CustomerSelector) Select(date time.Time) (id uuid.UUID, ok bool) {
	if len(s.all) == 0 {
		return uuid.Nil, false
	}
	year := s.YearIndex(date)

	id, ok = s.popNew(year)
	if !ok {
		id, ok = s.bySegment(year)
	}
	if !ok {
		id = random.Pick(s.src, s.all)
	}
	s.register(id, year)
	return id, true
}

// popNew takes the next unused customer from the year's cohort queue while
// the year's quota is unmet.
func (s *CustomerSelector) popNew(year int) (uuid.UUID, bool) {
	for s.firstUse[year] < s.required[year] && len(s.newQueues[year]) > 0 {
		id := s.newQueues[year][0]
		s.newQueues[year] = s.newQueues[year][1:]
		if s.orderCounts[id] == 0 {
			return id, true
		}
	}
	return uuid.Nil, false
}

func (s *CustomerSelector) bySegment(year int) (uuid.UUID, bool) {
	pools := s.pools[year]
	loyal, engaged, casual := pools[0], pools[1], pools[2]
	roll := s.src.Float64()

	if len(loyal) > 0 && roll < loyalThreshold {
		if len(s.loyalRepeat.ids) > 0 && s.src.Chance(loyalRepeatChance) {
			return random.Pick(s.src, s.loyalRepeat.ids), true
		}
		return random.Pick(s.src, loyal), true
	}
	if len(engaged) > 0 && roll < engagedThreshold {
		if len(s.engagedRepeat.ids) > 0 && s.src.Chance(engagedRepeatOdds) {
			return random.Pick(s.src, s.engagedRepeat.ids), true
		}
		return random.Pick(s.src, engaged), true
	}
	for _, pool := range [][]uuid.UUID{casual, engaged, loyal} {
		if len(pool) > 0 {
			return random.Pick(s.src, pool), true
		}
	}
	return uuid.Nil, false
}

func (s *CustomerSelector) register(id uuid.UUID, year int) {
	if s.orderCounts[id] == 0 {
		s.firstUse[year]++
	}
	s.active[year][id] = true
	s.yearOrders[year]++
	s.orderCounts[id]++

	seg := s.segments[id]
	s.segmentCount[seg]++
	switch {
	case seg == core.SegmentLoyal:
		s.loyalRepeat.add(id)
	case seg == core.SegmentEngaged && s.orderCounts[id] >= engagedRepeatAfter:
		s.engagedRepeat.add(id)
	}
}

// OrderCount returns how many orders id has been picked for.
func (s *CustomerSelector) OrderCount(id uuid.UUID) int {
	return s.orderCounts[id]
}

// Stats returns a snapshot of the selection counters.
func (s *CustomerSelector) Stats() SelectorStats {
	st := SelectorStats{
		YearlyUniqueCounts: append([]int(nil), s.firstUse...),
		YearlyActiveCounts: make([]int, len(s.active)),
		YearlyOrderCounts:  append([]int(nil), s.yearOrders...),
		SegmentOrderCounts: map[core.Segment]int{},
		TotalCustomers:     len(s.all),
	}
	for y, set := range s.active {
		st.YearlyActiveCounts[y] = len(set)
	}
	for _, seg := range core.Segments {
		st.SegmentOrderCounts[seg] = s.segmentCount[seg]
	}
	return st
}
