package app

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/nyashachimutapira/cse-motors-api/internal/clock"
	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

type OrderRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetVehicleForUpdate(ctx context.Context, vehicleID string) (domain.Vehicle, error)
	CreateOrder(ctx context.Context, order domain.Order) error
	CreateOrderLine(ctx context.Context, line domain.OrderLine) error
	DecrementStock(ctx context.Context, vehicleID string, quantity int) error
	IncrementStock(ctx context.Context, vehicleID string, quantity int) error
	ClearCart(ctx context.Context, accountID string) error
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
	GetOrderForUpdate(ctx context.Context, orderID string) (domain.Order, error)
	ListOrderLines(ctx context.Context, orderID string) ([]domain.OrderLine, error)
	ListOrdersByAccount(ctx context.Context, accountID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}

// OrderService creates immutable orders from cart snapshots, adjusting stock
// and clearing the cart inside a single transaction.
type OrderService struct {
	repo  OrderRepository
	clock clock.Clock
}

func NewOrderService(repo OrderRepository, clk clock.Clock) *OrderService {
	return &OrderService{repo: repo, clock: clk}
}

type CreateOrderInput struct {
	AccountID string
	Shipping  domain.ShippingInfo
	Lines     []domain.CartLine
}

// CreateOrder runs the whole checkout write as one transaction: stock is
// re-read under row locks immediately before the decrement, so the advisory
// pre-checks made during cart view cannot oversell. Unit prices are captured
// at this moment. Any failure rolls back with no partial effects.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (domain.Order, error) {
	if in.AccountID == "" {
		return domain.Order{}, domain.ErrUnauthenticated
	}
	if len(in.Lines) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}
	if !in.Shipping.Complete() {
		return domain.Order{}, domain.ErrShippingIncomplete
	}

	// Lock vehicle rows in a stable order so concurrent checkouts over the
	// same vehicles cannot deadlock.
	lines := make([]domain.CartLine, len(in.Lines))
	copy(lines, in.Lines)
	sort.Slice(lines, func(i, j int) bool { return lines[i].VehicleID < lines[j].VehicleID })

	now := s.clock.Now()
	var result domain.Order

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		prices := make(map[string]decimal.Decimal, len(lines))
		total := decimal.Zero
		for _, line := range lines {
			vehicle, err := s.repo.GetVehicleForUpdate(txCtx, line.VehicleID)
			if err != nil {
				return err
			}
			if vehicle.Quantity < line.Quantity {
				return &domain.InsufficientStockError{
					VehicleID: line.VehicleID,
					Available: vehicle.Quantity,
					Requested: line.Quantity,
				}
			}
			prices[line.VehicleID] = vehicle.Price
			total = total.Add(vehicle.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		order := domain.Order{
			ID:        newID(),
			AccountID: in.AccountID,
			Total:     total,
			Status:    domain.OrderStatusConfirmed,
			Shipping:  in.Shipping,
			CreatedAt: now,
			LineCount: len(lines),
		}
		if err := s.repo.CreateOrder(txCtx, order); err != nil {
			return err
		}

		for _, line := range lines {
			orderLine := domain.OrderLine{
				ID:        newID(),
				OrderID:   order.ID,
				VehicleID: line.VehicleID,
				Quantity:  line.Quantity,
				UnitPrice: prices[line.VehicleID],
			}
			if err := s.repo.CreateOrderLine(txCtx, orderLine); err != nil {
				return err
			}
			if err := s.repo.DecrementStock(txCtx, line.VehicleID, line.Quantity); err != nil {
				return err
			}
		}

		if err := s.repo.ClearCart(txCtx, in.AccountID); err != nil {
			return err
		}

		result = order
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return result, nil
}

type OrderDetail struct {
	Order domain.Order
	Lines []domain.OrderLine
}

// GetOrder returns an order with its lines, refusing callers that do not
// own it.
func (s *OrderService) GetOrder(ctx context.Context, accountID, orderID string) (OrderDetail, error) {
	if accountID == "" {
		return OrderDetail{}, domain.ErrUnauthenticated
	}

	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return OrderDetail{}, err
	}
	if order.AccountID != accountID {
		return OrderDetail{}, domain.ErrForbidden
	}

	lines, err := s.repo.ListOrderLines(ctx, orderID)
	if err != nil {
		return OrderDetail{}, err
	}
	return OrderDetail{Order: order, Lines: lines}, nil
}

func (s *OrderService) ListOrders(ctx context.Context, accountID string) ([]domain.Order, error) {
	if accountID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.ListOrdersByAccount(ctx, accountID)
}

// CancelOrder restores stock for every line and flips the status. This runs
// in its own transaction, separate from the original checkout; new
// reservations may race it, which only makes stock available again.
func (s *OrderService) CancelOrder(ctx context.Context, accountID, orderID string) (domain.Order, error) {
	if accountID == "" {
		return domain.Order{}, domain.ErrUnauthenticated
	}

	var result domain.Order
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		// Lock the order row so a racing cancel or ship sees our committed
		// status instead of the stale one; without this two cancels would
		// both pass the transition check and restore stock twice.
		order, err := s.repo.GetOrderForUpdate(txCtx, orderID)
		if err != nil {
			return err
		}
		if order.AccountID != accountID {
			return domain.ErrForbidden
		}
		if !domain.CanTransition(order.Status, domain.OrderStatusCancelled) {
			return domain.ErrInvalidTransition
		}

		lines, err := s.repo.ListOrderLines(txCtx, orderID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := s.repo.IncrementStock(txCtx, line.VehicleID, line.Quantity); err != nil {
				return err
			}
		}
		if err := s.repo.UpdateStatus(txCtx, orderID, domain.OrderStatusCancelled); err != nil {
			return err
		}

		order.Status = domain.OrderStatusCancelled
		result = order
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return result, nil
}

// UpdateStatus moves an order along pending -> confirmed -> shipped ->
// delivered. Cancellation must go through CancelOrder so stock is restored.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error) {
	if !domain.ValidStatus(status) {
		return domain.Order{}, domain.ErrInvalidStatus
	}
	if status == domain.OrderStatusCancelled {
		return domain.Order{}, domain.ErrInvalidTransition
	}

	var result domain.Order
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		order, err := s.repo.GetOrderForUpdate(txCtx, orderID)
		if err != nil {
			return err
		}
		if !domain.CanTransition(order.Status, status) {
			return domain.ErrInvalidTransition
		}
		if err := s.repo.UpdateStatus(txCtx, orderID, status); err != nil {
			return err
		}
		order.Status = status
		result = order
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return result, nil
}
