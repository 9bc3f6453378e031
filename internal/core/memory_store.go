package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	_ CustomerService = (*MemoryStore)(nil)
	_ CatalogService  = (*MemoryStore)(nil)
	_ OrderService    = (*MemoryStore)(nil)
)

// MemoryStore implements CustomerService, CatalogService and OrderService in
// process memory. It backs dry runs and tests.
//
// CreateErr and InsertErr, when set, inject per-record failures. A batch
// insert fails as a whole if InsertErr fails any of its orders.
type MemoryStore struct {
	mu        sync.Mutex
	customers []Customer
	emails    map[string]bool
	orders    []Order
	products  []Product
	branches  []Branch

	CreateErr func(CustomerInput) error
	InsertErr func(Order) error
	Now       func() time.Time
}

// NewMemoryStore returns a store seeded with the given catalog.
func NewMemoryStore(products []Product, branches []Branch) *MemoryStore {
	return &MemoryStore{
		emails:   map[string]bool{},
		products: products,
		branches: branches,
		Now:      time.Now,
	}
}

// AddCustomers seeds existing accounts.
func (m *MemoryStore) AddCustomers(customers ...Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range customers {
		m.emails[strings.ToLower(c.Email)] = true
		m.customers = append(m.customers, c)
	}
}

// Customers returns a copy of every stored customer.
func (m *MemoryStore) Customers() []Customer {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Customer, len(m.customers))
	copy(out, m.customers)
	return out
}

// Orders returns a copy of every stored order.
func (m *MemoryStore) Orders() []Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Order, len(m.orders))
	copy(out, m.orders)
	return out
}

func (m *MemoryStore) ListCustomersByRole(ctx context.Context, role string) ([]Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Customer
	for _, c := range m.customers {
		if strings.EqualFold(c.Role, role) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MemoryStore) CreateCustomer(ctx context.Context, input CustomerInput) (*Customer, error) {
	if m.CreateErr != nil {
		if err := m.CreateErr(input); err != nil {
			return nil, fmt.Errorf("create customer %q: %w", input.Email, err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(input.Email)
	if m.emails[key] {
		return nil, fmt.Errorf("create customer %q: email already registered", input.Email)
	}
	c := Customer{
		ID:        input.ID,
		Email:     input.Email,
		FullName:  input.FullName,
		Phone:     input.Phone,
		Role:      input.Role,
		RunID:     input.RunID,
		CreatedAt: m.Now(),
	}
	m.emails[key] = true
	m.customers = append(m.customers, c)
	return &c, nil
}

func (m *MemoryStore) CountOrdersForCustomer(ctx context.Context, customerID uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, o := range m.orders {
		if o.UserID == customerID {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) DeleteCustomer(ctx context.Context, customerID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.customers {
		if c.ID == customerID {
			delete(m.emails, strings.ToLower(c.Email))
			m.customers = append(m.customers[:i], m.customers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("customer %s not found", customerID)
}

func (m *MemoryStore) GetProducts(ctx context.Context) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Product
	for _, p := range m.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) GetBranches(ctx context.Context) ([]Branch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Branch, len(m.branches))
	copy(out, m.branches)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStore) InsertOrders(ctx context.Context, orders []Order) error {
	if m.InsertErr != nil {
		for _, o := range orders {
			if err := m.InsertErr(o); err != nil {
				return fmt.Errorf("failed to insert batch of %d orders: %w", len(orders), err)
			}
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, orders...)
	return nil
}

func (m *MemoryStore) InsertOrder(ctx context.Context, o Order) error {
	if m.InsertErr != nil {
		if err := m.InsertErr(o); err != nil {
			return fmt.Errorf("failed to insert order %s: %w", o.OrderNumber, err)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, o)
	return nil
}

func (m *MemoryStore) DeleteGeneratedData(ctx context.Context, emailDomain string, runID *uuid.UUID) (PurgeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	suffix := "@" + strings.ToLower(emailDomain)
	generated := map[uuid.UUID]bool{}
	var kept []Customer
	for _, c := range m.customers {
		match := strings.HasSuffix(strings.ToLower(c.Email), suffix)
		if match && runID != nil {
			match = c.RunID != nil && *c.RunID == *runID
		}
		if match {
			generated[c.ID] = true
			delete(m.emails, strings.ToLower(c.Email))
			continue
		}
		kept = append(kept, c)
	}

	var res PurgeResult
	var orders []Order
	for _, o := range m.orders {
		if generated[o.UserID] {
			res.OrdersDeleted++
			continue
		}
		orders = append(orders, o)
	}
	res.CustomersDeleted = int64(len(m.customers) - len(kept))
	m.customers = kept
	m.orders = orders
	return res, nil
}
