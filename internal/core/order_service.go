package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const insertOrderSQL = `
	INSERT INTO orders (user_id, order_number, status, shipping_method, pickup_location,
	                    delivery_address, order_notes, subtotal_amount, shipping_cost, total_amount,
	                    total_items, order_items, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

type orderService struct {
	pool *pgxpool.Pool
}

// NewOrderService constructs an OrderService backed by PostgreSQL.
func NewOrderService(pool *pgxpool.Pool) OrderService {
	return &orderService{pool: pool}
}

func orderArgs(o Order) []any {
	return []any{
		o.UserID, o.OrderNumber, o.Status, o.ShippingMethod, o.PickupLocation,
		o.DeliveryAddress, o.Notes, o.Subtotal, o.ShippingCost, o.Total,
		o.TotalItems, o.Items, o.OrderedAt, o.SettledAt,
	}
}

func (s *orderService) InsertOrders(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, o := range orders {
		batch.Queue(insertOrderSQL, orderArgs(o)...)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert batch of %d orders: %w", len(orders), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit orders: %w", err)
	}
	return nil
}

func (s *orderService) InsertOrder(ctx context.Context, o Order) error {
	if _, err := s.pool.Exec(ctx, insertOrderSQL, orderArgs(o)...); err != nil {
		return fmt.Errorf("failed to insert order %s: %w", o.OrderNumber, err)
	}
	return nil
}

func (s *orderService) DeleteGeneratedData(ctx context.Context, emailDomain string, runID *uuid.UUID) (PurgeResult, error) {
	var res PurgeResult

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const generated = `
		SELECT id FROM customers
		WHERE right(lower(email), length($1::text) + 1) = '@' || lower($1::text)
		  AND ($2::uuid IS NULL OR generator_run_id = $2)`

	tag, err := tx.Exec(ctx, "DELETE FROM orders WHERE user_id IN ("+generated+")", emailDomain, runID)
	if err != nil {
		return res, fmt.Errorf("failed to delete generated orders: %w", err)
	}
	res.OrdersDeleted = tag.RowsAffected()

	tag, err = tx.Exec(ctx, "DELETE FROM customers WHERE id IN ("+generated+")", emailDomain, runID)
	if err != nil {
		return res, fmt.Errorf("failed to delete generated customers: %w", err)
	}
	res.CustomersDeleted = tag.RowsAffected()

	if err := tx.Commit(ctx); err != nil {
		return res, fmt.Errorf("failed to commit purge: %w", err)
	}
	return res, nil
}
