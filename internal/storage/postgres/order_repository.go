package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetVehicleForUpdate locks the vehicle row for the rest of the transaction,
// so the stock re-check and price capture read the state that the decrement
// will see.
func (r *OrderRepository) GetVehicleForUpdate(ctx context.Context, vehicleID string) (domain.Vehicle, error) {
	const q = `SELECT id, make, model, year, price, quantity FROM vehicles WHERE id = $1 FOR UPDATE`

	var v domain.Vehicle
	err := queryRow(ctx, r.pool, q, vehicleID).
		Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Price, &v.Quantity)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Vehicle{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Vehicle{}, domain.ErrVehicleNotFound
		}
		return domain.Vehicle{}, fmt.Errorf("get vehicle for update: %w", err)
	}
	return v, nil
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	const stmt = `
INSERT INTO orders (id, account_id, total_amount, status, shipping_address, shipping_city, shipping_state, shipping_zip, shipping_phone, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := exec(ctx, r.pool, stmt,
		order.ID, order.AccountID, order.Total, order.Status,
		order.Shipping.Address, order.Shipping.City, order.Shipping.State,
		order.Shipping.Zip, order.Shipping.Phone, order.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *OrderRepository) CreateOrderLine(ctx context.Context, line domain.OrderLine) error {
	const stmt = `
INSERT INTO order_lines (id, order_id, vehicle_id, quantity, unit_price)
VALUES ($1, $2, $3, $4, $5)`

	_, err := exec(ctx, r.pool, stmt,
		line.ID, line.OrderID, line.VehicleID, line.Quantity, line.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("create order line: %w", err)
	}
	return nil
}

// DecrementStock keeps the guard even though the caller holds the row lock;
// zero rows affected surfaces as an insufficient-stock failure rather than a
// negative quantity.
func (r *OrderRepository) DecrementStock(ctx context.Context, vehicleID string, quantity int) error {
	tag, err := exec(ctx, r.pool,
		`UPDATE vehicles SET quantity = quantity - $2 WHERE id = $1 AND quantity >= $2`,
		vehicleID, quantity,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var available int
		if err := queryRow(ctx, r.pool, `SELECT quantity FROM vehicles WHERE id = $1`, vehicleID).Scan(&available); err != nil {
			if err == pgx.ErrNoRows {
				return domain.ErrVehicleNotFound
			}
			return fmt.Errorf("read stock after failed decrement: %w", err)
		}
		return &domain.InsufficientStockError{
			VehicleID: vehicleID,
			Available: available,
			Requested: quantity,
		}
	}
	return nil
}

func (r *OrderRepository) IncrementStock(ctx context.Context, vehicleID string, quantity int) error {
	tag, err := exec(ctx, r.pool,
		`UPDATE vehicles SET quantity = quantity + $2 WHERE id = $1`,
		vehicleID, quantity,
	)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

func (r *OrderRepository) ClearCart(ctx context.Context, accountID string) error {
	_, err := exec(ctx, r.pool, `DELETE FROM cart_lines WHERE account_id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

const orderColumns = `id, account_id, total_amount, status, shipping_address, shipping_city, shipping_state, shipping_zip, shipping_phone, created_at`

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.AccountID, &o.Total, &o.Status,
		&o.Shipping.Address, &o.Shipping.City, &o.Shipping.State,
		&o.Shipping.Zip, &o.Shipping.Phone, &o.CreatedAt,
	)
	return o, err
}

func (r *OrderRepository) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(queryRow(ctx, r.pool, q, orderID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Order{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetOrderForUpdate locks the order row for the rest of the transaction.
// Status transitions read through this so two concurrent transitions
// serialize; the second one sees the committed status, not the stale one.
func (r *OrderRepository) GetOrderForUpdate(ctx context.Context, orderID string) (domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	o, err := scanOrder(queryRow(ctx, r.pool, q, orderID))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Order{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("get order for update: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) ListOrderLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	const q = `
SELECT id, order_id, vehicle_id, quantity, unit_price
FROM order_lines
WHERE order_id = $1
ORDER BY vehicle_id ASC`

	rows, err := query(ctx, r.pool, q, orderID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.VehicleID, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, line)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate order lines: %w", rows.Err())
	}
	return lines, nil
}

func (r *OrderRepository) ListOrdersByAccount(ctx context.Context, accountID string) ([]domain.Order, error) {
	const q = `
SELECT o.id, o.account_id, o.total_amount, o.status,
       o.shipping_address, o.shipping_city, o.shipping_state, o.shipping_zip, o.shipping_phone,
       o.created_at, COUNT(ol.id)
FROM orders o
LEFT JOIN order_lines ol ON ol.order_id = o.id
WHERE o.account_id = $1
GROUP BY o.id
ORDER BY o.created_at DESC`

	rows, err := query(ctx, r.pool, q, accountID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list orders: %w", err)
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

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	tag, err := exec(ctx, r.pool, `UPDATE orders SET status = $2 WHERE id = $1`, orderID, status)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
