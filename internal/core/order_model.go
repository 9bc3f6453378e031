package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses written by the generator.
const (
	StatusDelivered = "picked_up_delivered"
	StatusPending   = "pending"
	StatusCancelled = "cancelled"
)

// ShippingPickup is the only shipping method for walk-in history.
const ShippingPickup = "pickup"

// Order is one storefront order.
//
// Totals satisfy Total = Subtotal + ShippingCost, Subtotal = Σ item TotalPrice
// and TotalItems = Σ item Quantity. UserID and OrderNumber are stamped when the
// order is persisted.
type Order struct {
	UserID          uuid.UUID       `json:"user_id"`
	OrderNumber     string          `json:"order_number"`
	Status          string          `json:"status"`
	ShippingMethod  string          `json:"shipping_method"`
	PickupLocation  string          `json:"pickup_location"`
	DeliveryAddress Address         `json:"delivery_address"`
	Notes           string          `json:"order_notes"`
	Subtotal        decimal.Decimal `json:"subtotal_amount"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	Total           decimal.Decimal `json:"total_amount"`
	TotalItems      int             `json:"total_items"`
	Items           []OrderItem     `json:"order_items"`
	OrderedAt       time.Time       `json:"created_at"`
	SettledAt       time.Time       `json:"updated_at"` // pickup date for apparel, else OrderedAt
	IsApparel       bool            `json:"-"`
}

// OrderItem is one line of an order. Only the detail block matching the
// item's ProductType is set.
type OrderItem struct {
	ProductID    string          `json:"id,omitempty"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	ProductType  string          `json:"product_type"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Synthetic    bool            `json:"synthetic,omitempty"`

	// Apparel
	Sport       string       `json:"sport,omitempty"`
	Variant     string       `json:"variantKey,omitempty"`
	CutType     string       `json:"cut_type,omitempty"`
	SizeType    string       `json:"sizeType,omitempty"`
	IsTeamOrder bool         `json:"isTeamOrder"`
	TeamName    string       `json:"team_name,omitempty"`
	DesignName  string       `json:"design_name,omitempty"`
	Members     []TeamMember `json:"team_members,omitempty"`

	Ball      *BallDetails   `json:"ball_details,omitempty"`
	Trophy    *TrophyDetails `json:"trophy_details,omitempty"`
	MedalType string         `json:"medal_type,omitempty"`
}

// IsJersey reports whether the item carries a jersey design name.
func (it OrderItem) IsJersey() bool {
	return it.ProductType == "jersey" || it.ProductType == "sublimation"
}

// TeamMember is one roster entry of an apparel item. A nil size means the
// piece was not ordered: shorts-only entries have no JerseySize and
// shirt-only entries have no ShortsSize.
type TeamMember struct {
	FirstName  string          `json:"firstName"`
	Surname    string          `json:"surname"`
	Number     int             `json:"jerseyNumber"`
	SizingType string          `json:"sizingType"`
	JerseySize *string         `json:"jerseySize"`
	ShortsSize *string         `json:"shortsSize"`
	Fabric     string          `json:"fabric"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type BallDetails struct {
	SportType string `json:"sportType"`
	Brand     string `json:"brand"`
	BallSize  string `json:"ballSize"`
	Material  string `json:"material"`
}

type TrophyDetails struct {
	TrophyType    string `json:"trophyType"`
	Size          string `json:"size"`
	Material      string `json:"material"`
	EngravingText string `json:"engravingText"`
	Occasion      string `json:"occasion"`
}

// Address is a geocoded delivery address. City and Province are always set.
type Address struct {
	Address      string  `json:"address"`
	Street       string  `json:"street"`
	Barangay     string  `json:"barangay"`
	BarangayCode *string `json:"barangay_code"`
	City         string  `json:"city"`
	Province     string  `json:"province"`
	Region       string  `json:"region"`
	PostalCode   string  `json:"postal_code"`
	Phone        string  `json:"phone"`
	Receiver     string  `json:"receiver"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// PurgeResult reports what DeleteGeneratedData removed.
type PurgeResult struct {
	OrdersDeleted    int64
	CustomersDeleted int64
}

// OrderService writes generated orders.
type OrderService interface {
	// InsertOrders writes all orders in one transaction; any failure rolls
	// the whole batch back.
	InsertOrders(ctx context.Context, orders []Order) error
	InsertOrder(ctx context.Context, order Order) error
	// DeleteGeneratedData removes orders and customers whose email ends in
	// @emailDomain. A non-nil runID limits the purge to that run's customers.
	DeleteGeneratedData(ctx context.Context, emailDomain string, runID *uuid.UUID) (PurgeResult, error)
}
