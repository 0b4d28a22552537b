package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

type CurrencyRepository struct {
	pool *pgxpool.Pool
}

func NewCurrencyRepository(pool *pgxpool.Pool) *CurrencyRepository {
	return &CurrencyRepository{pool: pool}
}

func (r *CurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	const q = `SELECT code, name, symbol, rate FROM currencies ORDER BY code ASC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	defer rows.Close()

	var currencies []domain.Currency
	for rows.Next() {
		var c domain.Currency
		if err := rows.Scan(&c.Code, &c.Name, &c.Symbol, &c.Rate); err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		currencies = append(currencies, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate currencies: %w", rows.Err())
	}
	return currencies, nil
}

func (r *CurrencyRepository) GetCurrency(ctx context.Context, code string) (domain.Currency, error) {
	const q = `SELECT code, name, symbol, rate FROM currencies WHERE code = $1`

	var c domain.Currency
	err := r.pool.QueryRow(ctx, q, strings.ToUpper(code)).Scan(&c.Code, &c.Name, &c.Symbol, &c.Rate)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Currency{}, domain.ErrCurrencyNotFound
		}
		return domain.Currency{}, fmt.Errorf("get currency: %w", err)
	}
	return c, nil
}
