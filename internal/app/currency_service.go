package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

type CurrencyRepository interface {
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
	GetCurrency(ctx context.Context, code string) (domain.Currency, error)
}

// CurrencyService converts base (USD) amounts for display. Rates live in
// the currencies table, seeded by migration.
type CurrencyService struct {
	repo CurrencyRepository
}

func NewCurrencyService(repo CurrencyRepository) *CurrencyService {
	return &CurrencyService{repo: repo}
}

func (s *CurrencyService) List(ctx context.Context) ([]domain.Currency, error) {
	return s.repo.ListCurrencies(ctx)
}

func (s *CurrencyService) Get(ctx context.Context, code string) (domain.Currency, error) {
	if code == "" {
		return domain.Currency{}, domain.ErrCurrencyNotFound
	}
	return s.repo.GetCurrency(ctx, code)
}

func (s *CurrencyService) Convert(ctx context.Context, amount decimal.Decimal, code string) (decimal.Decimal, error) {
	currency, err := s.Get(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}
	return currency.Convert(amount), nil
}
