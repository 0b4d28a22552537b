package app

import (
	"context"

	"github.com/nyashachimutapira/cse-motors-api/internal/clock"
	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

type CartRepository interface {
	ListItems(ctx context.Context, accountID string) ([]domain.CartItem, error)
	UpsertLine(ctx context.Context, line domain.CartLine) (domain.CartLine, error)
	UpdateQuantity(ctx context.Context, accountID, lineID string, quantity int) error
	DeleteLine(ctx context.Context, accountID, lineID string) error
	Clear(ctx context.Context, accountID string) error
}

type CartService struct {
	repo  CartRepository
	clock clock.Clock
}

func NewCartService(repo CartRepository, clk clock.Clock) *CartService {
	return &CartService{repo: repo, clock: clk}
}

func (s *CartService) GetCart(ctx context.Context, accountID string) ([]domain.CartItem, error) {
	if accountID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.ListItems(ctx, accountID)
}

type AddItemInput struct {
	AccountID string
	VehicleID string
	Quantity  int
}

// AddItem upserts a cart line: re-adding the same vehicle increments the
// existing quantity. Stock is not checked here; only checkout enforces it.
func (s *CartService) AddItem(ctx context.Context, in AddItemInput) (domain.CartLine, error) {
	if in.AccountID == "" {
		return domain.CartLine{}, domain.ErrUnauthenticated
	}
	if in.VehicleID == "" {
		return domain.CartLine{}, domain.ErrInvalidID
	}
	if in.Quantity <= 0 {
		return domain.CartLine{}, domain.ErrInvalidQuantity
	}

	line := domain.CartLine{
		ID:        newID(),
		AccountID: in.AccountID,
		VehicleID: in.VehicleID,
		Quantity:  in.Quantity,
		AddedAt:   s.clock.Now(),
	}
	return s.repo.UpsertLine(ctx, line)
}

func (s *CartService) UpdateQuantity(ctx context.Context, accountID, lineID string, quantity int) error {
	if accountID == "" {
		return domain.ErrUnauthenticated
	}
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return s.repo.UpdateQuantity(ctx, accountID, lineID, quantity)
}

// RemoveItem is idempotent: removing an absent line is not an error.
func (s *CartService) RemoveItem(ctx context.Context, accountID, lineID string) error {
	if accountID == "" {
		return domain.ErrUnauthenticated
	}
	return s.repo.DeleteLine(ctx, accountID, lineID)
}

// Clear is idempotent.
func (s *CartService) Clear(ctx context.Context, accountID string) error {
	if accountID == "" {
		return domain.ErrUnauthenticated
	}
	return s.repo.Clear(ctx, accountID)
}
