package domain

import "github.com/shopspring/decimal"

// Currency holds a display currency and its exchange rate against the base
// currency (USD, rate 1.0). Prices are stored in USD and converted at read
// time for display only.
type Currency struct {
	Code   string
	Name   string
	Symbol string
	Rate   decimal.Decimal
}

// Convert returns the given base (USD) amount in this currency, rounded to
// two decimal places.
func (c Currency) Convert(base decimal.Decimal) decimal.Decimal {
	return base.Mul(c.Rate).Round(2)
}
