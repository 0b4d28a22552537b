package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to another.
// Cancellation is allowed until the order ships; delivered and cancelled are
// terminal.
func CanTransition(from, to OrderStatus) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusConfirmed || to == OrderStatusCancelled
	case OrderStatusConfirmed:
		return to == OrderStatusShipped || to == OrderStatusCancelled
	case OrderStatusShipped:
		return to == OrderStatusDelivered
	}
	return false
}

// ShippingInfo is captured at checkout. All fields are required.
type ShippingInfo struct {
	Address string
	City    string
	State   string
	Zip     string
	Phone   string
}

func (s ShippingInfo) Complete() bool {
	return s.Address != "" && s.City != "" && s.State != "" && s.Zip != "" && s.Phone != ""
}

// Order is immutable once created except for status transitions.
type Order struct {
	ID        string
	AccountID string
	Total     decimal.Decimal
	Status    OrderStatus
	Shipping  ShippingInfo
	CreatedAt time.Time
	// LineCount is populated on listings; zero when not loaded.
	LineCount int
}

// OrderLine captures the unit price at purchase time, not a live reference
// to the vehicle's price.
type OrderLine struct {
	ID        string
	OrderID   string
	VehicleID string
	Quantity  int
	UnitPrice decimal.Decimal
}

func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
