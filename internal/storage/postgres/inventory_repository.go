package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

type InventoryRepository struct {
	pool *pgxpool.Pool
}

func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

const vehicleColumns = `id, classification_id, make, model, year, description, color, miles, price, quantity, image, thumbnail, created_at`

func scanVehicle(row pgx.Row) (domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(
		&v.ID, &v.ClassificationID, &v.Make, &v.Model, &v.Year, &v.Description,
		&v.Color, &v.Miles, &v.Price, &v.Quantity, &v.Image, &v.Thumbnail, &v.CreatedAt,
	)
	return v, err
}

func (r *InventoryRepository) GetVehicle(ctx context.Context, vehicleID string) (domain.Vehicle, error) {
	q := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	v, err := scanVehicle(queryRow(ctx, r.pool, q, vehicleID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Vehicle{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Vehicle{}, domain.ErrVehicleNotFound
		}
		return domain.Vehicle{}, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

// sortColumns whitelists ORDER BY targets for catalog listings.
var sortColumns = map[string]string{
	"make":  "make ASC, model ASC",
	"price": "price ASC",
	"year":  "year DESC",
	"miles": "miles ASC",
}

// ListVehicles builds the WHERE clause from whichever filters are set.
func (r *InventoryRepository) ListVehicles(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ClassificationID != "" {
		conds = append(conds, "classification_id = "+arg(filter.ClassificationID))
	}
	if filter.Keyword != "" {
		p := arg("%" + filter.Keyword + "%")
		conds = append(conds, "(make ILIKE "+p+" OR model ILIKE "+p+" OR description ILIKE "+p+")")
	}
	if filter.Make != "" {
		conds = append(conds, "make ILIKE "+arg(filter.Make))
	}
	if filter.Color != "" {
		conds = append(conds, "color ILIKE "+arg(filter.Color))
	}
	if filter.Year > 0 {
		conds = append(conds, "year = "+arg(filter.Year))
	}
	if filter.MinPrice.IsPositive() {
		conds = append(conds, "price >= "+arg(filter.MinPrice))
	}
	if filter.MaxPrice.IsPositive() {
		conds = append(conds, "price <= "+arg(filter.MaxPrice))
	}
	if filter.MaxMiles > 0 {
		conds = append(conds, "miles <= "+arg(filter.MaxMiles))
	}

	q := `SELECT ` + vehicleColumns + ` FROM vehicles`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	orderBy, ok := sortColumns[filter.SortBy]
	if !ok {
		orderBy = sortColumns["make"]
	}
	q += " ORDER BY " + orderBy

	rows, err := query(ctx, r.pool, q, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if rows.Err() != nil {
		if isInvalidUUID(rows.Err()) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("iterate vehicles: %w", rows.Err())
	}
	return vehicles, nil
}

func (r *InventoryRepository) GetStock(ctx context.Context, vehicleID string) (int, error) {
	var quantity int
	err := queryRow(ctx, r.pool, `SELECT quantity FROM vehicles WHERE id = $1`, vehicleID).Scan(&quantity)
	if err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return 0, domain.ErrVehicleNotFound
		}
		return 0, fmt.Errorf("get stock: %w", err)
	}
	return quantity, nil
}

// ReserveStock is a guarded decrement: the row-level write serializes
// competing reservations, and zero rows affected means the stock check
// failed at decrement time.
func (r *InventoryRepository) ReserveStock(ctx context.Context, vehicleID string, quantity int) error {
	tag, err := exec(ctx, r.pool,
		`UPDATE vehicles SET quantity = quantity - $2 WHERE id = $1 AND quantity >= $2`,
		vehicleID, quantity,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("reserve stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		available, err := r.GetStock(ctx, vehicleID)
		if err != nil {
			return err
		}
		return &domain.InsufficientStockError{
			VehicleID: vehicleID,
			Available: available,
			Requested: quantity,
		}
	}
	return nil
}

func (r *InventoryRepository) RestoreStock(ctx context.Context, vehicleID string, quantity int) error {
	tag, err := exec(ctx, r.pool,
		`UPDATE vehicles SET quantity = quantity + $2 WHERE id = $1`,
		vehicleID, quantity,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("restore stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

func (r *InventoryRepository) ListLowStock(ctx context.Context, threshold int) ([]domain.Vehicle, error) {
	q := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE quantity <= $1 ORDER BY quantity ASC, make ASC`
	rows, err := query(ctx, r.pool, q, threshold)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate vehicles: %w", rows.Err())
	}
	return vehicles, nil
}
