package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Segment is a fixed loyalty tier controlling how often a customer repeats.
type Segment string

const (
	SegmentLoyal   Segment = "loyal"
	SegmentEngaged Segment = "engaged"
	SegmentCasual  Segment = "casual"
)

// Segments lists the tiers in selection priority order.
var Segments = []Segment{SegmentLoyal, SegmentEngaged, SegmentCasual}

// Customer is a storefront customer account.
// Segment and YearBucket are assigned per run and never persisted.
type Customer struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Phone      string     `json:"phone"`
	Role       string     `json:"role"`
	RunID      *uuid.UUID `json:"generator_run_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	Segment    Segment    `json:"-"`
	YearBucket int        `json:"-"`
}

// CustomerInput is used when creating a new customer account.
// ID is supplied by the caller so ids follow the run's random source.
type CustomerInput struct {
	ID       uuid.UUID
	Email    string
	FullName string
	Phone    string
	Role     string
	RunID    *uuid.UUID
}

// CustomerService provides customer account storage.
type CustomerService interface {
	// ListCustomersByRole returns every customer carrying role, oldest first.
	ListCustomersByRole(ctx context.Context, role string) ([]Customer, error)
	CreateCustomer(ctx context.Context, input CustomerInput) (*Customer, error)
	CountOrdersForCustomer(ctx context.Context, customerID uuid.UUID) (int, error)
	DeleteCustomer(ctx context.Context, customerID uuid.UUID) error
}
