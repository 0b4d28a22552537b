package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nyashachimutapira/cse-motors-api/internal/clock"
	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

type AdminRepository interface {
	CreateClassification(ctx context.Context, classification domain.Classification) error
	ListClassifications(ctx context.Context) ([]domain.Classification, error)
	CreateVehicle(ctx context.Context, vehicle domain.Vehicle) error
	SalesByStatus(ctx context.Context) ([]domain.StatusSales, error)
	ListAllOrders(ctx context.Context, limit, offset int) ([]domain.Order, error)
}

type AdminService struct {
	repo  AdminRepository
	clock clock.Clock
}

func NewAdminService(repo AdminRepository, clk clock.Clock) *AdminService {
	return &AdminService{repo: repo, clock: clk}
}

func (s *AdminService) CreateClassification(ctx context.Context, name string) (domain.Classification, error) {
	if name == "" {
		return domain.Classification{}, domain.ErrNameRequired
	}

	classification := domain.Classification{
		ID:        newID(),
		Name:      name,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateClassification(ctx, classification); err != nil {
		return domain.Classification{}, err
	}
	return classification, nil
}

func (s *AdminService) ListClassifications(ctx context.Context) ([]domain.Classification, error) {
	return s.repo.ListClassifications(ctx)
}

type CreateVehicleInput struct {
	ClassificationID string
	Make             string
	Model            string
	Year             int
	Description      string
	Color            string
	Miles            int
	Price            decimal.Decimal
	Quantity         int
	Image            string
	Thumbnail        string
}

func (s *AdminService) CreateVehicle(ctx context.Context, in CreateVehicleInput) (domain.Vehicle, error) {
	if in.ClassificationID == "" {
		return domain.Vehicle{}, domain.ErrInvalidID
	}
	if in.Make == "" || in.Model == "" {
		return domain.Vehicle{}, domain.ErrNameRequired
	}
	if !in.Price.IsPositive() {
		return domain.Vehicle{}, domain.ErrInvalidPrice
	}
	if in.Quantity < 0 || in.Miles < 0 {
		return domain.Vehicle{}, domain.ErrInvalidQuantity
	}

	vehicle := domain.Vehicle{
		ID:               newID(),
		ClassificationID: in.ClassificationID,
		Make:             in.Make,
		Model:            in.Model,
		Year:             in.Year,
		Description:      in.Description,
		Color:            in.Color,
		Miles:            in.Miles,
		Price:            in.Price,
		Quantity:         in.Quantity,
		Image:            in.Image,
		Thumbnail:        in.Thumbnail,
		CreatedAt:        s.clock.Now(),
	}
	if err := s.repo.CreateVehicle(ctx, vehicle); err != nil {
		return domain.Vehicle{}, err
	}
	return vehicle, nil
}

// SalesReport groups confirmed and fulfilled orders by status with revenue.
func (s *AdminService) SalesReport(ctx context.Context) ([]domain.StatusSales, error) {
	return s.repo.SalesByStatus(ctx)
}

const (
	defaultOrdersPageSize = 50
	maxOrdersPageSize     = 200
)

func (s *AdminService) ListAllOrders(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = defaultOrdersPageSize
	}
	if limit > maxOrdersPageSize {
		limit = maxOrdersPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListAllOrders(ctx, limit, offset)
}
