package app

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

func TestCheckoutService_ViewCheckout(t *testing.T) {
	t.Parallel()

	t.Run("flags short-stocked lines", func(t *testing.T) {
		cart := &stubCartReader{items: []domain.CartItem{
			{
				CartLine:  domain.CartLine{ID: "line-1", VehicleID: "veh-1", Quantity: 2},
				UnitPrice: decimal.NewFromInt(100),
			},
			{
				CartLine:  domain.CartLine{ID: "line-2", VehicleID: "veh-2", Quantity: 4},
				UnitPrice: decimal.NewFromInt(50),
			},
		}}
		stock := &stubStockReader{stock: map[string]int{"veh-1": 5, "veh-2": 1}}
		svc := NewCheckoutService(cart, stock, &stubOrderWriter{})

		view, err := svc.ViewCheckout(context.Background(), "acct-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(view.Lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(view.Lines))
		}
		if !view.Lines[0].InStock {
			t.Fatalf("expected line 1 in stock")
		}
		if view.Lines[1].InStock {
			t.Fatalf("expected line 2 short-stocked")
		}
		if view.Lines[1].Available != 1 {
			t.Fatalf("expected available 1, got %d", view.Lines[1].Available)
		}
		if got := view.Total.StringFixed(2); got != "400.00" {
			t.Fatalf("expected total 400.00, got %s", got)
		}
	})

	t.Run("empty cart returns error", func(t *testing.T) {
		svc := NewCheckoutService(&stubCartReader{}, &stubStockReader{}, &stubOrderWriter{})

		_, err := svc.ViewCheckout(context.Background(), "acct-1")
		if err != domain.ErrEmptyCart {
			t.Fatalf("expected ErrEmptyCart, got %v", err)
		}
	})

	t.Run("missing account returns error", func(t *testing.T) {
		svc := NewCheckoutService(&stubCartReader{}, &stubStockReader{}, &stubOrderWriter{})

		_, err := svc.ViewCheckout(context.Background(), "")
		if err != domain.ErrUnauthenticated {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})
}

func TestCheckoutService_PlaceOrder(t *testing.T) {
	t.Parallel()

	t.Run("delegates the cart snapshot to the writer", func(t *testing.T) {
		cart := &stubCartReader{items: []domain.CartItem{
			{
				CartLine:  domain.CartLine{ID: "line-1", AccountID: "acct-1", VehicleID: "veh-1", Quantity: 2},
				UnitPrice: decimal.NewFromInt(100),
			},
		}}
		stock := &stubStockReader{stock: map[string]int{"veh-1": 5}}
		writer := &stubOrderWriter{order: domain.Order{ID: "order-1", Status: domain.OrderStatusConfirmed}}
		svc := NewCheckoutService(cart, stock, writer)

		order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
			AccountID: "acct-1",
			Shipping:  testShipping,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if order.ID != "order-1" {
			t.Fatalf("expected order-1, got %s", order.ID)
		}
		if len(writer.got.Lines) != 1 || writer.got.Lines[0].VehicleID != "veh-1" {
			t.Fatalf("expected writer to receive the cart line, got %+v", writer.got.Lines)
		}
	})

	t.Run("fast-fails on advisory stock check", func(t *testing.T) {
		cart := &stubCartReader{items: []domain.CartItem{
			{
				CartLine:  domain.CartLine{ID: "line-1", VehicleID: "veh-1", Quantity: 10},
				UnitPrice: decimal.NewFromInt(100),
			},
		}}
		stock := &stubStockReader{stock: map[string]int{"veh-1": 5}}
		writer := &stubOrderWriter{}
		svc := NewCheckoutService(cart, stock, writer)

		_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
			AccountID: "acct-1",
			Shipping:  testShipping,
		})

		var stockErr *domain.InsufficientStockError
		if !errors.As(err, &stockErr) {
			t.Fatalf("expected InsufficientStockError, got %v", err)
		}
		if writer.called {
			t.Fatalf("expected writer not to be called")
		}
	})

	t.Run("incomplete shipping returns error", func(t *testing.T) {
		svc := NewCheckoutService(&stubCartReader{}, &stubStockReader{}, &stubOrderWriter{})

		_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
			AccountID: "acct-1",
			Shipping:  domain.ShippingInfo{City: "Harare"},
		})
		if err != domain.ErrShippingIncomplete {
			t.Fatalf("expected ErrShippingIncomplete, got %v", err)
		}
	})

	t.Run("empty cart returns error", func(t *testing.T) {
		svc := NewCheckoutService(&stubCartReader{}, &stubStockReader{}, &stubOrderWriter{})

		_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
			AccountID: "acct-1",
			Shipping:  testShipping,
		})
		if err != domain.ErrEmptyCart {
			t.Fatalf("expected ErrEmptyCart, got %v", err)
		}
	})
}

type stubCartReader struct {
	items []domain.CartItem
}

func (s *stubCartReader) GetCart(_ context.Context, _ string) ([]domain.CartItem, error) {
	return s.items, nil
}

type stubStockReader struct {
	stock map[string]int
}

func (s *stubStockReader) GetStock(_ context.Context, vehicleID string) (int, error) {
	stock, ok := s.stock[vehicleID]
	if !ok {
		return 0, domain.ErrVehicleNotFound
	}
	return stock, nil
}

type stubOrderWriter struct {
	order  domain.Order
	got    CreateOrderInput
	called bool
}

func (s *stubOrderWriter) CreateOrder(_ context.Context, in CreateOrderInput) (domain.Order, error) {
	s.called = true
	s.got = in
	return s.order, nil
}
