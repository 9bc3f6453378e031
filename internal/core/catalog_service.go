package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type catalogService struct {
	pool *pgxpool.Pool
}

// NewCatalogService constructs a CatalogService backed by PostgreSQL.
func NewCatalogService(pool *pgxpool.Pool) CatalogService {
	return &catalogService{pool: pool}
}

func (s *catalogService) GetProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, category, price, jersey_prices, fabric_surcharges, cut_type_surcharges, is_active
		FROM products
		WHERE is_active = true
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		var category *string
		var price *decimal.Decimal
		var jerseyRaw, fabricRaw, cutRaw []byte
		if err := rows.Scan(&p.ID, &p.Name, &category, &price, &jerseyRaw, &fabricRaw, &cutRaw, &p.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if category != nil {
			p.Category = *category
		}
		if price != nil {
			p.Price = *price
		}
		if p.JerseyPrices, err = decodePriceTable(jerseyRaw); err != nil {
			return nil, fmt.Errorf("product %s jersey_prices: %w", p.ID, err)
		}
		if p.FabricSurcharges, err = decodePriceTable(fabricRaw); err != nil {
			return nil, fmt.Errorf("product %s fabric_surcharges: %w", p.ID, err)
		}
		if p.CutTypeSurcharges, err = decodePriceTable(cutRaw); err != nil {
			return nil, fmt.Errorf("product %s cut_type_surcharges: %w", p.ID, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}

// decodePriceTable accepts numbers or numeric strings as values.
func decodePriceTable(raw []byte) (map[string]decimal.Decimal, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var table map[string]decimal.Decimal
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *catalogService) GetBranches(ctx context.Context) ([]Branch, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, name, coalesce(city, '') FROM branches ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	defer rows.Close()

	var branches []Branch
	for rows.Next() {
		var b Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.City); err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read branches: %w", err)
	}
	return branches, nil
}
