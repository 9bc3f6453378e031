package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type customerService struct {
	pool *pgxpool.Pool
}

// NewCustomerService constructs a CustomerService backed by PostgreSQL.
func NewCustomerService(pool *pgxpool.Pool) CustomerService {
	return &customerService{pool: pool}
}

func (s *customerService) ListCustomersByRole(ctx context.Context, role string) ([]Customer, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, email, full_name, phone, role, generator_run_id, created_at
		FROM customers
		WHERE lower(role) = lower($1)
		ORDER BY created_at, id`,
		role,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Email, &c.FullName, &c.Phone, &c.Role, &c.RunID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}
	return customers, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, input CustomerInput) (*Customer, error) {
	c := &Customer{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO customers (id, email, full_name, phone, role, generator_run_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, full_name, phone, role, generator_run_id, created_at`,
		input.ID, input.Email, input.FullName, input.Phone, input.Role, input.RunID,
	).Scan(&c.ID, &c.Email, &c.FullName, &c.Phone, &c.Role, &c.RunID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create customer %q: %w", input.Email, err)
	}
	return c, nil
}

func (s *customerService) CountOrdersForCustomer(ctx context.Context, customerID uuid.UUID) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, "SELECT count(*) FROM orders WHERE user_id = $1", customerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders for customer %s: %w", customerID, err)
	}
	return n, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM customers WHERE id = $1", customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %s not found", customerID)
	}
	return nil
}
