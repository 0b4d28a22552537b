package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one (account, vehicle, quantity) pending-purchase record.
// Unique per (account, vehicle) pair; re-adding increments quantity.
type CartLine struct {
	ID        string
	AccountID string
	VehicleID string
	Quantity  int
	AddedAt   time.Time
}

// CartItem is a cart line joined with current vehicle display fields.
// The price and name are read-time denormalizations, not stored.
type CartItem struct {
	CartLine
	Make      string
	Model     string
	Year      int
	UnitPrice decimal.Decimal
	Image     string
	Thumbnail string
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
