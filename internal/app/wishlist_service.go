package app

import (
	"context"

	"github.com/nyashachimutapira/cse-motors-api/internal/clock"
	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

type WishlistRepository interface {
	ListItems(ctx context.Context, accountID string) ([]domain.WishlistItem, error)
	AddItem(ctx context.Context, item domain.WishlistItem) (domain.WishlistItem, error)
	DeleteItem(ctx context.Context, accountID, itemID string) error
}

type WishlistService struct {
	repo  WishlistRepository
	clock clock.Clock
}

func NewWishlistService(repo WishlistRepository, clk clock.Clock) *WishlistService {
	return &WishlistService{repo: repo, clock: clk}
}

func (s *WishlistService) List(ctx context.Context, accountID string) ([]domain.WishlistItem, error) {
	if accountID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.ListItems(ctx, accountID)
}

func (s *WishlistService) Add(ctx context.Context, accountID, vehicleID string) (domain.WishlistItem, error) {
	if accountID == "" {
		return domain.WishlistItem{}, domain.ErrUnauthenticated
	}
	if vehicleID == "" {
		return domain.WishlistItem{}, domain.ErrInvalidID
	}

	item := domain.WishlistItem{
		ID:        newID(),
		AccountID: accountID,
		VehicleID: vehicleID,
		AddedAt:   s.clock.Now(),
	}
	return s.repo.AddItem(ctx, item)
}

// Remove is idempotent.
func (s *WishlistService) Remove(ctx context.Context, accountID, itemID string) error {
	if accountID == "" {
		return domain.ErrUnauthenticated
	}
	return s.repo.DeleteItem(ctx, accountID, itemID)
}
