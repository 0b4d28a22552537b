package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) CreateClassification(ctx context.Context, classification domain.Classification) error {
	const stmt = `INSERT INTO classifications (id, name, created_at) VALUES ($1, $2, $3)`

	_, err := r.pool.Exec(ctx, stmt, classification.ID, classification.Name, classification.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("create classification: %w", err)
	}
	return nil
}

func (r *AdminRepository) ListClassifications(ctx context.Context) ([]domain.Classification, error) {
	const q = `SELECT id, name, created_at FROM classifications ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}
	defer rows.Close()

	var classifications []domain.Classification
	for rows.Next() {
		var c domain.Classification
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan classification: %w", err)
		}
		classifications = append(classifications, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate classifications: %w", rows.Err())
	}
	return classifications, nil
}

func (r *AdminRepository) CreateVehicle(ctx context.Context, vehicle domain.Vehicle) error {
	const stmt = `
INSERT INTO vehicles (id, classification_id, make, model, year, description, color, miles, price, quantity, image, thumbnail, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, stmt,
		vehicle.ID, vehicle.ClassificationID, vehicle.Make, vehicle.Model, vehicle.Year,
		vehicle.Description, vehicle.Color, vehicle.Miles, vehicle.Price, vehicle.Quantity,
		vehicle.Image, vehicle.Thumbnail, vehicle.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrClassificationNotFound
		}
		return fmt.Errorf("create vehicle: %w", err)
	}
	return nil
}

// SalesByStatus excludes nothing: cancelled orders appear with their own
// row so the report shows lost revenue too.
func (r *AdminRepository) SalesByStatus(ctx context.Context) ([]domain.StatusSales, error) {
	const q = `
SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0)
FROM orders
GROUP BY status
ORDER BY status ASC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sales by status: %w", err)
	}
	defer rows.Close()

	var report []domain.StatusSales
	for rows.Next() {
		var row domain.StatusSales
		if err := rows.Scan(&row.Status, &row.Orders, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scan sales row: %w", err)
		}
		report = append(report, row)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate sales rows: %w", rows.Err())
	}
	return report, nil
}

func (r *AdminRepository) ListAllOrders(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	const q = `
SELECT o.id, o.account_id, o.total_amount, o.status,
       o.shipping_address, o.shipping_city, o.shipping_state, o.shipping_zip, o.shipping_phone,
       o.created_at, COUNT(ol.id)
FROM orders o
LEFT JOIN order_lines ol ON ol.order_id = o.id
GROUP BY o.id
ORDER BY o.created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		err := rows.Scan(
			&o.ID, &o.AccountID, &o.Total, &o.Status,
			&o.Shipping.Address, &o.Shipping.City, &o.Shipping.State,
			&o.Shipping.Zip, &o.Shipping.Phone, &o.CreatedAt, &o.LineCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate orders: %w", rows.Err())
	}
	return orders, nil
}
