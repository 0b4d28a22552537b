package app

import (
	"context"

	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

type InventoryRepository interface {
	GetVehicle(ctx context.Context, vehicleID string) (domain.Vehicle, error)
	ListVehicles(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error)
	GetStock(ctx context.Context, vehicleID string) (int, error)
	ReserveStock(ctx context.Context, vehicleID string, quantity int) error
	RestoreStock(ctx context.Context, vehicleID string, quantity int) error
	ListLowStock(ctx context.Context, threshold int) ([]domain.Vehicle, error)
}

// InventoryService is the stock ledger plus catalog reads. Reserve and
// Restore are the only paths that mutate quantity on hand.
type InventoryService struct {
	repo InventoryRepository
}

func NewInventoryService(repo InventoryRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

func (s *InventoryService) GetVehicle(ctx context.Context, vehicleID string) (domain.Vehicle, error) {
	if vehicleID == "" {
		return domain.Vehicle{}, domain.ErrInvalidID
	}
	return s.repo.GetVehicle(ctx, vehicleID)
}

func (s *InventoryService) ListVehicles(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error) {
	return s.repo.ListVehicles(ctx, filter)
}

func (s *InventoryService) GetStock(ctx context.Context, vehicleID string) (int, error) {
	if vehicleID == "" {
		return 0, domain.ErrInvalidID
	}
	return s.repo.GetStock(ctx, vehicleID)
}

// Reserve decrements quantity on hand, failing without side effects when
// fewer than quantity units are available.
func (s *InventoryService) Reserve(ctx context.Context, vehicleID string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return s.repo.ReserveStock(ctx, vehicleID, quantity)
}

// Restore returns previously reserved units, used on cancellation.
func (s *InventoryService) Restore(ctx context.Context, vehicleID string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return s.repo.RestoreStock(ctx, vehicleID, quantity)
}

// IsInStock is advisory only; checkout re-checks under its transaction.
func (s *InventoryService) IsInStock(ctx context.Context, vehicleID string, quantity int) (bool, error) {
	stock, err := s.repo.GetStock(ctx, vehicleID)
	if err != nil {
		return false, err
	}
	return stock >= quantity, nil
}

const defaultLowStockThreshold = 2

func (s *InventoryService) LowStock(ctx context.Context, threshold int) ([]domain.Vehicle, error) {
	if threshold <= 0 {
		threshold = defaultLowStockThreshold
	}
	return s.repo.ListLowStock(ctx, threshold)
}
