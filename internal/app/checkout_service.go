package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

// CartReader is the slice of CartService the checkout flow needs.
type CartReader interface {
	GetCart(ctx context.Context, accountID string) ([]domain.CartItem, error)
}

// StockReader is the advisory stock view; the authoritative check happens
// inside the order transaction.
type StockReader interface {
	GetStock(ctx context.Context, vehicleID string) (int, error)
}

// OrderWriter creates the order atomically (stock decrement + cart clear).
type OrderWriter interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (domain.Order, error)
}

// CheckoutService is the caller-facing facade over cart, stock, and order
// writing. It validates preconditions and leaves atomicity to the writer.
type CheckoutService struct {
	cart   CartReader
	stock  StockReader
	orders OrderWriter
}

func NewCheckoutService(cart CartReader, stock StockReader, orders OrderWriter) *CheckoutService {
	return &CheckoutService{cart: cart, stock: stock, orders: orders}
}

// CheckoutLine pairs a cart item with its advisory stock state for UI
// warnings.
type CheckoutLine struct {
	Item      domain.CartItem
	InStock   bool
	Available int
}

type CheckoutView struct {
	Lines []CheckoutLine
	Total decimal.Decimal
}

// ViewCheckout loads the cart with a per-line stock pre-check. The stock
// flags are advisory only and may be stale by the time the order is placed.
func (s *CheckoutService) ViewCheckout(ctx context.Context, accountID string) (CheckoutView, error) {
	if accountID == "" {
		return CheckoutView{}, domain.ErrUnauthenticated
	}

	items, err := s.cart.GetCart(ctx, accountID)
	if err != nil {
		return CheckoutView{}, err
	}
	if len(items) == 0 {
		return CheckoutView{}, domain.ErrEmptyCart
	}

	view := CheckoutView{
		Lines: make([]CheckoutLine, 0, len(items)),
		Total: decimal.Zero,
	}
	for _, item := range items {
		available, err := s.stock.GetStock(ctx, item.VehicleID)
		if err != nil {
			return CheckoutView{}, err
		}
		view.Lines = append(view.Lines, CheckoutLine{
			Item:      item,
			InStock:   available >= item.Quantity,
			Available: available,
		})
		view.Total = view.Total.Add(item.Subtotal())
	}
	return view, nil
}

type PlaceOrderInput struct {
	AccountID string
	Shipping  domain.ShippingInfo
}

// PlaceOrder validates shipping, re-loads the cart, fast-fails on an
// advisory stock check, then delegates to the order writer, whose own
// re-check under the transaction is the one that counts.
func (s *CheckoutService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (domain.Order, error) {
	if in.AccountID == "" {
		return domain.Order{}, domain.ErrUnauthenticated
	}
	if !in.Shipping.Complete() {
		return domain.Order{}, domain.ErrShippingIncomplete
	}

	items, err := s.cart.GetCart(ctx, in.AccountID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(items) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}

	lines := make([]domain.CartLine, 0, len(items))
	for _, item := range items {
		available, err := s.stock.GetStock(ctx, item.VehicleID)
		if err != nil {
			return domain.Order{}, err
		}
		if available < item.Quantity {
			return domain.Order{}, &domain.InsufficientStockError{
				VehicleID: item.VehicleID,
				Available: available,
				Requested: item.Quantity,
			}
		}
		lines = append(lines, item.CartLine)
	}

	return s.orders.CreateOrder(ctx, CreateOrderInput{
		AccountID: in.AccountID,
		Shipping:  in.Shipping,
		Lines:     lines,
	})
}
