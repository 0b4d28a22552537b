package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated        = errors.New("authentication required")
	ErrForbidden              = errors.New("forbidden")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrVehicleNotFound        = errors.New("vehicle not found")
	ErrClassificationNotFound = errors.New("classification not found")
	ErrCartLineNotFound       = errors.New("cart line not found")
	ErrOrderNotFound          = errors.New("order not found")
	ErrCurrencyNotFound       = errors.New("currency not found")
	ErrWishlistDuplicate      = errors.New("vehicle already on wishlist")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrInvalidRating          = errors.New("rating must be between 1 and 5")
	ErrInvalidStatus          = errors.New("invalid order status")
	ErrInvalidTransition      = errors.New("invalid order status transition")
	ErrShippingIncomplete     = errors.New("shipping details incomplete")
	ErrInvalidID              = errors.New("invalid id")
	ErrNameRequired           = errors.New("name required")
	ErrDuplicateName          = errors.New("name already exists")
	ErrInvalidPrice           = errors.New("invalid price")
)

// ErrInsufficientStock is the match target for InsufficientStockError.
var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError names the vehicle that could not be reserved and
// the quantities involved, for error messages and API payloads.
type InsufficientStockError struct {
	VehicleID string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for vehicle %s: available %d, requested %d",
		e.VehicleID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
