package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Classification groups vehicles for browsing (SUV, Sports, Classic, ...).
type Classification struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Vehicle is a sellable catalog item. Quantity is the quantity on hand and
// must never go negative; it is mutated only through reserve/restore.
type Vehicle struct {
	ID               string
	ClassificationID string
	Make             string
	Model            string
	Year             int
	Description      string
	Color            string
	Miles            int
	Price            decimal.Decimal
	Quantity         int
	Image            string
	Thumbnail        string
	CreatedAt        time.Time
}

// DisplayName is used in stock warnings and confirmation messages.
func (v Vehicle) DisplayName() string {
	return fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
}

// VehicleFilter narrows catalog listings. Zero values mean "no constraint".
type VehicleFilter struct {
	ClassificationID string
	Keyword          string
	Make             string
	Color            string
	Year             int
	MinPrice         decimal.Decimal
	MaxPrice         decimal.Decimal
	MaxMiles         int
	SortBy           string
}
