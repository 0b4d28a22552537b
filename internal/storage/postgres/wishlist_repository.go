package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

type WishlistRepository struct {
	pool *pgxpool.Pool
}

func NewWishlistRepository(pool *pgxpool.Pool) *WishlistRepository {
	return &WishlistRepository{pool: pool}
}

func (r *WishlistRepository) ListItems(ctx context.Context, accountID string) ([]domain.WishlistItem, error) {
	const q = `
SELECT w.id, w.account_id, w.vehicle_id, w.added_at,
       v.make, v.model, v.year, v.price, v.thumbnail
FROM wishlist_items w
JOIN vehicles v ON v.id = w.vehicle_id
WHERE w.account_id = $1
ORDER BY w.added_at DESC`

	rows, err := query(ctx, r.pool, q, accountID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	defer rows.Close()

	var items []domain.WishlistItem
	for rows.Next() {
		var item domain.WishlistItem
		err := rows.Scan(&item.ID, &item.AccountID, &item.VehicleID, &item.AddedAt,
			&item.Make, &item.Model, &item.Year, &item.Price, &item.Thumbnail)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate wishlist: %w", rows.Err())
	}
	return items, nil
}

func (r *WishlistRepository) AddItem(ctx context.Context, item domain.WishlistItem) (domain.WishlistItem, error) {
	const stmt = `
INSERT INTO wishlist_items (id, account_id, vehicle_id, added_at)
VALUES ($1, $2, $3, $4)
RETURNING id, account_id, vehicle_id, added_at`

	var out domain.WishlistItem
	err := queryRow(ctx, r.pool, stmt,
		item.ID, item.AccountID, item.VehicleID, item.AddedAt,
	).Scan(&out.ID, &out.AccountID, &out.VehicleID, &out.AddedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.WishlistItem{}, domain.ErrInvalidID
		}
		if isUniqueViolation(err) {
			return domain.WishlistItem{}, domain.ErrWishlistDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.WishlistItem{}, domain.ErrVehicleNotFound
		}
		return domain.WishlistItem{}, fmt.Errorf("add wishlist item: %w", err)
	}
	return out, nil
}

func (r *WishlistRepository) DeleteItem(ctx context.Context, accountID, itemID string) error {
	_, err := exec(ctx, r.pool,
		`DELETE FROM wishlist_items WHERE id = $1 AND account_id = $2`,
		itemID, accountID,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	return nil
}
