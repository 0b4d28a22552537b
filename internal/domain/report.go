package domain

import "github.com/shopspring/decimal"

// StatusSales is one row of the admin sales report.
type StatusSales struct {
	Status  OrderStatus
	Orders  int
	Revenue decimal.Decimal
}
