package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) ListItems(ctx context.Context, accountID string) ([]domain.CartItem, error) {
	const q = `
SELECT cl.id, cl.account_id, cl.vehicle_id, cl.quantity, cl.added_at,
       v.make, v.model, v.year, v.price, v.image, v.thumbnail
FROM cart_lines cl
JOIN vehicles v ON v.id = cl.vehicle_id
WHERE cl.account_id = $1
ORDER BY cl.added_at DESC`

	rows, err := query(ctx, r.pool, q, accountID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		err := rows.Scan(
			&item.ID, &item.AccountID, &item.VehicleID, &item.Quantity, &item.AddedAt,
			&item.Make, &item.Model, &item.Year, &item.UnitPrice, &item.Image, &item.Thumbnail,
		)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		if isInvalidUUID(rows.Err()) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("iterate cart items: %w", rows.Err())
	}
	return items, nil
}

// UpsertLine adds quantity to an existing (account, vehicle) line instead of
// duplicating it.
func (r *CartRepository) UpsertLine(ctx context.Context, line domain.CartLine) (domain.CartLine, error) {
	const stmt = `
INSERT INTO cart_lines (id, account_id, vehicle_id, quantity, added_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (account_id, vehicle_id)
DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
RETURNING id, account_id, vehicle_id, quantity, added_at`

	var out domain.CartLine
	err := queryRow(ctx, r.pool, stmt,
		line.ID, line.AccountID, line.VehicleID, line.Quantity, line.AddedAt,
	).Scan(&out.ID, &out.AccountID, &out.VehicleID, &out.Quantity, &out.AddedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.CartLine{}, domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.CartLine{}, domain.ErrVehicleNotFound
		}
		return domain.CartLine{}, fmt.Errorf("upsert cart line: %w", err)
	}
	return out, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, accountID, lineID string, quantity int) error {
	tag, err := exec(ctx, r.pool,
		`UPDATE cart_lines SET quantity = $3 WHERE id = $1 AND account_id = $2`,
		lineID, accountID, quantity,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update cart quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartLineNotFound
	}
	return nil
}

func (r *CartRepository) DeleteLine(ctx context.Context, accountID, lineID string) error {
	_, err := exec(ctx, r.pool,
		`DELETE FROM cart_lines WHERE id = $1 AND account_id = $2`,
		lineID, accountID,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete cart line: %w", err)
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, accountID string) error {
	_, err := exec(ctx, r.pool, `DELETE FROM cart_lines WHERE account_id = $1`, accountID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
