package app

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nyashachimutapira/cse-motors-api/internal/clock"
	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

func TestCartService_AddItem(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)

	t.Run("adds a new line", func(t *testing.T) {
		repo := newFakeCartRepo()
		svc := NewCartService(repo, clock.NewFixed(now))

		line, err := svc.AddItem(context.Background(), AddItemInput{
			AccountID: "acct-1",
			VehicleID: "veh-1",
			Quantity:  2,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if line.ID == "" {
			t.Fatalf("expected line ID to be set")
		}
		if line.Quantity != 2 {
			t.Fatalf("expected quantity 2, got %d", line.Quantity)
		}
		if line.AddedAt != now {
			t.Fatalf("expected added_at %v, got %v", now, line.AddedAt)
		}
	})

	t.Run("re-adding the same vehicle increments quantity", func(t *testing.T) {
		repo := newFakeCartRepo()
		svc := NewCartService(repo, clock.NewFixed(now))

		if _, err := svc.AddItem(context.Background(), AddItemInput{
			AccountID: "acct-1", VehicleID: "veh-1", Quantity: 2,
		}); err != nil {
			t.Fatalf("first add: %v", err)
		}
		line, err := svc.AddItem(context.Background(), AddItemInput{
			AccountID: "acct-1", VehicleID: "veh-1", Quantity: 3,
		})
		if err != nil {
			t.Fatalf("second add: %v", err)
		}
		if line.Quantity != 5 {
			t.Fatalf("expected merged quantity 5, got %d", line.Quantity)
		}
		if len(repo.lines["acct-1"]) != 1 {
			t.Fatalf("expected a single line, got %d", len(repo.lines["acct-1"]))
		}
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		svc := NewCartService(newFakeCartRepo(), clock.NewFixed(now))

		_, err := svc.AddItem(context.Background(), AddItemInput{
			AccountID: "acct-1", VehicleID: "veh-1", Quantity: 0,
		})
		if err != domain.ErrInvalidQuantity {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("missing account is rejected", func(t *testing.T) {
		svc := NewCartService(newFakeCartRepo(), clock.NewFixed(now))

		_, err := svc.AddItem(context.Background(), AddItemInput{
			VehicleID: "veh-1", Quantity: 1,
		})
		if err != domain.ErrUnauthenticated {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})
}

func TestCartService_UpdateQuantity(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)

	t.Run("sets the quantity", func(t *testing.T) {
		repo := newFakeCartRepo()
		svc := NewCartService(repo, clock.NewFixed(now))

		line, err := svc.AddItem(context.Background(), AddItemInput{
			AccountID: "acct-1", VehicleID: "veh-1", Quantity: 2,
		})
		if err != nil {
			t.Fatalf("add: %v", err)
		}

		if err := svc.UpdateQuantity(context.Background(), "acct-1", line.ID, 4); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := repo.lines["acct-1"][0].Quantity; got != 4 {
			t.Fatalf("expected quantity 4, got %d", got)
		}
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		svc := NewCartService(newFakeCartRepo(), clock.NewFixed(now))

		err := svc.UpdateQuantity(context.Background(), "acct-1", "line-1", 0)
		if err != domain.ErrInvalidQuantity {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("missing line returns error", func(t *testing.T) {
		svc := NewCartService(newFakeCartRepo(), clock.NewFixed(now))

		err := svc.UpdateQuantity(context.Background(), "acct-1", "missing", 2)
		if err != domain.ErrCartLineNotFound {
			t.Fatalf("expected ErrCartLineNotFound, got %v", err)
		}
	})
}

func TestCartService_RemoveAndClear(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)

	t.Run("remove is idempotent", func(t *testing.T) {
		svc := NewCartService(newFakeCartRepo(), clock.NewFixed(now))

		if err := svc.RemoveItem(context.Background(), "acct-1", "missing"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("clear empties the cart and repeats safely", func(t *testing.T) {
		repo := newFakeCartRepo()
		svc := NewCartService(repo, clock.NewFixed(now))

		if _, err := svc.AddItem(context.Background(), AddItemInput{
			AccountID: "acct-1", VehicleID: "veh-1", Quantity: 1,
		}); err != nil {
			t.Fatalf("add: %v", err)
		}

		if err := svc.Clear(context.Background(), "acct-1"); err != nil {
			t.Fatalf("first clear: %v", err)
		}
		if len(repo.lines["acct-1"]) != 0 {
			t.Fatalf("expected empty cart")
		}
		if err := svc.Clear(context.Background(), "acct-1"); err != nil {
			t.Fatalf("second clear: %v", err)
		}
	})
}

type fakeCartRepo struct {
	lines map[string][]domain.CartLine
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{lines: make(map[string][]domain.CartLine)}
}

func (f *fakeCartRepo) ListItems(_ context.Context, accountID string) ([]domain.CartItem, error) {
	out := make([]domain.CartItem, 0, len(f.lines[accountID]))
	for _, line := range f.lines[accountID] {
		out = append(out, domain.CartItem{
			CartLine:  line,
			UnitPrice: decimal.NewFromInt(100),
		})
	}
	return out, nil
}

func (f *fakeCartRepo) UpsertLine(_ context.Context, line domain.CartLine) (domain.CartLine, error) {
	for i, existing := range f.lines[line.AccountID] {
		if existing.VehicleID == line.VehicleID {
			existing.Quantity += line.Quantity
			f.lines[line.AccountID][i] = existing
			return existing, nil
		}
	}
	f.lines[line.AccountID] = append(f.lines[line.AccountID], line)
	return line, nil
}

func (f *fakeCartRepo) UpdateQuantity(_ context.Context, accountID, lineID string, quantity int) error {
	for i, line := range f.lines[accountID] {
		if line.ID == lineID {
			line.Quantity = quantity
			f.lines[accountID][i] = line
			return nil
		}
	}
	return domain.ErrCartLineNotFound
}

func (f *fakeCartRepo) DeleteLine(_ context.Context, accountID, lineID string) error {
	lines := f.lines[accountID]
	for i, line := range lines {
		if line.ID == lineID {
			f.lines[accountID] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeCartRepo) Clear(_ context.Context, accountID string) error {
	delete(f.lines, accountID)
	return nil
}
