package sim

import (
	"fmt"
	"strings"

	"storefront-seeder/internal/core"
	"storefront-seeder/internal/random"
	"storefront-seeder/internal/refdata"

	"github.com/shopspring/decimal"
)

// ProductCatalog groups active products by catalog key. It is read-only
// once built.
type ProductCatalog struct {
	byKey map[string][]core.Product
	all   []core.Product
}

// NewProductCatalog indexes products in the given order.
func NewProductCatalog(products []core.Product) *ProductCatalog {
	c := &ProductCatalog{byKey: map[string][]core.Product{}}
	for _, p := range products {
		key := p.CatalogKey()
		c.byKey[key] = append(c.byKey[key], p)
		c.all = append(c.all, p)
	}
	return c
}

// Len is the number of indexed products.
func (c *ProductCatalog) Len() int { return len(c.all) }

// Count is the number of products under key.
func (c *ProductCatalog) Count(key string) int { return len(c.byKey[key]) }

// Pick returns a random product from the first non-empty primary key, then
// from the first non-empty fallback key. ok is false when none has products.
func (c *ProductCatalog) Pick(src *random.Source, primary []string, fallback []string) (core.Product, bool) {
	for _, keys := range [][]string{primary, fallback} {
		for _, key := range keys {
			if list := c.byKey[key]; len(list) > 0 {
				return random.Pick(src, list), true
			}
		}
	}
	return core.Product{}, false
}

// syntheticFactory fabricates products for categories the catalog lacks.
// Ids are SYN-<CATEGORY>-<n>-<token>, n counting up per run.
type syntheticFactory struct {
	src   *random.Source
	count int
}

func (f *syntheticFactory) id(category string) (string, string) {
	f.count++
	token := f.src.Token(4)
	return fmt.Sprintf("SYN-%s-%d-%s", strings.ToUpper(category), f.count, token), token
}

func pesos(v int) decimal.Decimal { return decimal.NewFromInt(int64(v)) }

func (f *syntheticFactory) jersey(sport, team string) core.Product {
	id, token := f.id("jersey")
	full := pesos(f.src.IntBetween(1180, 1420))
	return core.Product{
		ID:       id,
		Name:     fmt.Sprintf("Custom %s Jersey - %s %s", sport, teamLabel(team), token),
		Category: "Jerseys",
		Price:    full,
		JerseyPrices: map[string]decimal.Decimal{
			core.VariantFullSet:    full,
			core.VariantShirtOnly:  pesos(f.src.IntBetween(690, 890)),
			core.VariantShortsOnly: pesos(f.src.IntBetween(520, 680)),
		},
		IsActive:  true,
		Synthetic: true,
	}
}

func (f *syntheticFactory) apparel(category Category, team string) core.Product {
	id, token := f.id(string(category))
	label := strings.ToUpper(string(category[:1])) + string(category[1:])
	return core.Product{
		ID:        id,
		Name:      fmt.Sprintf("%s %s Set %s", teamLabel(team), label, token),
		Category:  apparelKeys[category],
		Price:     pesos(f.src.IntBetween(720, 1080)),
		IsActive:  true,
		Synthetic: true,
	}
}

func (f *syntheticFactory) ball() core.Product {
	sport := random.Pick(f.src, refdata.BallSports)
	id, token := f.id("ball")
	return core.Product{
		ID:        id,
		Name:      fmt.Sprintf("%s%s Velocity Ball %s", strings.ToUpper(sport[:1]), sport[1:], token),
		Category:  "Balls",
		Price:     pesos(f.src.IntBetween(1650, 2250)),
		IsActive:  true,
		Synthetic: true,
	}
}

func (f *syntheticFactory) trophy() core.Product {
	size := random.Pick(f.src, refdata.TrophySizes)
	id, token := f.id("trophy")
	return core.Product{
		ID:        id,
		Name:      fmt.Sprintf("%s Victory Trophy %s", size, token),
		Category:  "Trophies",
		Price:     pesos(f.src.IntBetween(820, 1450)),
		IsActive:  true,
		Synthetic: true,
	}
}

// medal is priced from the static medal table.
func (f *syntheticFactory) medal() (core.Product, string) {
	medalType := random.Pick(f.src, refdata.MedalTypes)
	id, token := f.id("medal")
	return core.Product{
		ID:        id,
		Name:      fmt.Sprintf("%s%s Achievement Medal %s", strings.ToUpper(medalType[:1]), medalType[1:], token),
		Category:  "Medals",
		Price:     pesos(int(refdata.MedalPricing[medalType])),
		IsActive:  true,
		Synthetic: true,
	}, medalType
}

func teamLabel(team string) string {
	if t := strings.TrimSpace(team); t != "" {
		return t
	}
	return "Elite Squad"
}
