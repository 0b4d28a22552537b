package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WishlistItem marks a vehicle an account wants to revisit later.
type WishlistItem struct {
	ID        string
	AccountID string
	VehicleID string
	AddedAt   time.Time
	// Joined vehicle display fields, populated on listings.
	Make      string
	Model     string
	Year      int
	Price     decimal.Decimal
	Thumbnail string
}
