package core

import (
	"context"
	"strings"

	"storefront-seeder/internal/refdata"

	"github.com/shopspring/decimal"
)

// Catalog keys group products by what the generator can do with them.
const (
	KeyJerseys     = "jerseys"
	KeyHoodies     = "hoodies"
	KeyUniforms    = "uniforms"
	KeyTShirts     = "tshirts"
	KeyLongSleeves = "longsleeves"
	KeyBalls       = "balls"
	KeyTrophies    = "trophies"
	KeyMedals      = "medals"
	KeyOthers      = "others"
)

// ApparelKeys are the catalog keys that hold wearable products.
var ApparelKeys = []string{KeyJerseys, KeyHoodies, KeyUniforms, KeyTShirts, KeyLongSleeves}

// Jersey variant keys used in JerseyPrices.
const (
	VariantFullSet    = "fullSet"
	VariantShirtOnly  = "shirtOnly"
	VariantShortsOnly = "shortsOnly"
)

// Product is a sellable catalog item.
// JerseyPrices is keyed by variant; the surcharge tables are keyed by fabric
// and cut type names and may be empty.
type Product struct {
	ID                string                     `json:"id"`
	Name              string                     `json:"name"`
	Category          string                     `json:"category"`
	Price             decimal.Decimal            `json:"price"`
	JerseyPrices      map[string]decimal.Decimal `json:"jersey_prices,omitempty"`
	FabricSurcharges  map[string]decimal.Decimal `json:"fabric_surcharges,omitempty"`
	CutTypeSurcharges map[string]decimal.Decimal `json:"cut_type_surcharges,omitempty"`
	IsActive          bool                       `json:"is_active"`
	Synthetic         bool                       `json:"synthetic,omitempty"`
}

// CatalogKey maps the product's free-form category label onto a catalog key.
func (p Product) CatalogKey() string {
	if key, ok := refdata.CategoryAliases[strings.ToLower(strings.TrimSpace(p.Category))]; ok {
		return key
	}
	return KeyOthers
}

// VariantPrice returns the jersey price for variant, falling back to Price.
func (p Product) VariantPrice(variant string) decimal.Decimal {
	if v, ok := p.JerseyPrices[variant]; ok && v.IsPositive() {
		return v
	}
	return p.Price
}

// Branch is a pickup location.
type Branch struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

// CatalogService reads the reference data a run needs.
type CatalogService interface {
	// GetProducts returns active products ordered by id.
	GetProducts(ctx context.Context) ([]Product, error)
	// GetBranches returns branches ordered by name.
	GetBranches(ctx context.Context) ([]Branch, error)
}
