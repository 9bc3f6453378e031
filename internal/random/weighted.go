package random

import (
	"errors"
	"sort"
)

// ErrNoChoices is returned when a WeightedChoice is built from no positive weights.
var ErrNoChoices = errors.New("weighted choice needs at least one positive weight")

// WeightedChoice samples items in proportion to their weights. Thresholds are
// cumulative and normalized to 1, so Pick is a binary search.
type WeightedChoice[T any] struct {
	items      []T
	thresholds []float64
}

// Weighted pairs an item with its weight.
type Weighted[T any] struct {
	Item   T
	Weight float64
}

// NewWeightedChoice builds a choice from entries in the given order. Entries
// with a non-positive weight are skipped.
func NewWeightedChoice[T any](entries []Weighted[T]) (*WeightedChoice[T], error) {
	var total float64
	for _, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total <= 0 {
		return nil, ErrNoChoices
	}

	wc := &WeightedChoice[T]{}
	var cumulative float64
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		cumulative += e.Weight / total
		wc.items = append(wc.items, e.Item)
		wc.thresholds = append(wc.thresholds, cumulative)
	}
	wc.thresholds[len(wc.thresholds)-1] = 1
	return wc, nil
}

// Len returns the number of selectable items.
func (w *WeightedChoice[T]) Len() int { return len(w.items) }

// At returns the first item whose cumulative threshold is >= roll.
func (w *WeightedChoice[T]) At(roll float64) T {
	i := sort.SearchFloat64s(w.thresholds, roll)
	if i >= len(w.items) {
		i = len(w.items) - 1
	}
	return w.items[i]
}

// Pick draws one item.
func (w *WeightedChoice[T]) Pick(src *Source) T {
	return w.At(src.Float64())
}
