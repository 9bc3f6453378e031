package sim

import (
	"strings"

	"storefront-seeder/internal/core"
	"storefront-seeder/internal/random"
	"storefront-seeder/internal/refdata"
)

// DefaultBranches is refdata.DefaultBranches without city anchors.
func DefaultBranches() []core.Branch {
	branches := make([]core.Branch, len(refdata.DefaultBranches))
	for i, name := range refdata.DefaultBranches {
		branches[i] = core.Branch{ID: i + 1, Name: name}
	}
	return branches
}

func branchKey(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// BranchPicker draws pickup branches in proportion to their priority weight
// and remembers the city each branch is anchored to.
type BranchPicker struct {
	choice  *random.WeightedChoice[string]
	anchors map[string]string
}

// NewBranchPicker builds a picker over branches. Weights are looked up by
// uppercased name; unlisted branches weigh refdata.DefaultBranchWeight. An
// empty list yields a picker that always returns refdata.FallbackBranch.
func NewBranchPicker(branches []core.Branch, weights map[string]float64) *BranchPicker {
	entries := make([]random.Weighted[string], 0, len(branches))
	anchors := map[string]string{}
	for _, b := range branches {
		w, ok := weights[branchKey(b.Name)]
		if !ok || w <= 0 {
			w = refdata.DefaultBranchWeight
		}
		entries = append(entries, random.Weighted[string]{Item: b.Name, Weight: w})
		if city := strings.TrimSpace(b.City); city != "" {
			anchors[branchKey(b.Name)] = city
		}
	}
	choice, err := random.NewWeightedChoice(entries)
	if err != nil {
		return &BranchPicker{anchors: anchors}
	}
	return &BranchPicker{choice: choice, anchors: anchors}
}

// Anchor is the city recorded for branch, or "" when none was given.
func (p *BranchPicker) Anchor(branch string) string {
	if p == nil {
		return ""
	}
	return p.anchors[branchKey(branch)]
}

// At maps a roll in [0, 1] onto a branch.
func (p *BranchPicker) At(roll float64) string {
	if p.choice == nil {
		return refdata.FallbackBranch
	}
	return p.choice.At(roll)
}

// Pick draws a branch.
func (p *BranchPicker) Pick(src *random.Source) string {
	if p.choice == nil {
		return refdata.FallbackBranch
	}
	return p.choice.Pick(src)
}
