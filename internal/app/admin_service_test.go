package app

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nyashachimutapira/cse-motors-api/internal/clock"
	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

func TestAdminService_CreateClassification(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)

	t.Run("creates a classification", func(t *testing.T) {
		repo := newFakeAdminRepo()
		svc := NewAdminService(repo, clock.NewFixed(now))

		classification, err := svc.CreateClassification(context.Background(), "SUV")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if classification.ID == "" {
			t.Fatalf("expected ID to be set")
		}
		if classification.Name != "SUV" {
			t.Fatalf("expected name SUV, got %s", classification.Name)
		}
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		repo := newFakeAdminRepo()
		svc := NewAdminService(repo, clock.NewFixed(now))

		if _, err := svc.CreateClassification(context.Background(), "SUV"); err != nil {
			t.Fatalf("first create: %v", err)
		}
		_, err := svc.CreateClassification(context.Background(), "SUV")
		if err != domain.ErrDuplicateName {
			t.Fatalf("expected ErrDuplicateName, got %v", err)
		}
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		svc := NewAdminService(newFakeAdminRepo(), clock.NewFixed(now))

		_, err := svc.CreateClassification(context.Background(), "")
		if err != domain.ErrNameRequired {
			t.Fatalf("expected ErrNameRequired, got %v", err)
		}
	})
}

func TestAdminService_CreateVehicle(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)

	valid := CreateVehicleInput{
		ClassificationID: "class-1",
		Make:             "Toyota",
		Model:            "Corolla",
		Year:             2021,
		Price:            decimal.NewFromInt(15000),
		Quantity:         3,
	}

	t.Run("creates a vehicle", func(t *testing.T) {
		repo := newFakeAdminRepo()
		repo.classifications["class-1"] = domain.Classification{ID: "class-1", Name: "Sedan"}
		svc := NewAdminService(repo, clock.NewFixed(now))

		vehicle, err := svc.CreateVehicle(context.Background(), valid)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if vehicle.ID == "" {
			t.Fatalf("expected ID to be set")
		}
		if vehicle.CreatedAt != now {
			t.Fatalf("expected created_at %v, got %v", now, vehicle.CreatedAt)
		}
	})

	t.Run("unknown classification is rejected", func(t *testing.T) {
		svc := NewAdminService(newFakeAdminRepo(), clock.NewFixed(now))

		_, err := svc.CreateVehicle(context.Background(), valid)
		if err != domain.ErrClassificationNotFound {
			t.Fatalf("expected ErrClassificationNotFound, got %v", err)
		}
	})

	t.Run("input validation", func(t *testing.T) {
		svc := NewAdminService(newFakeAdminRepo(), clock.NewFixed(now))

		in := valid
		in.ClassificationID = ""
		if _, err := svc.CreateVehicle(context.Background(), in); err != domain.ErrInvalidID {
			t.Fatalf("expected ErrInvalidID, got %v", err)
		}

		in = valid
		in.Make = ""
		if _, err := svc.CreateVehicle(context.Background(), in); err != domain.ErrNameRequired {
			t.Fatalf("expected ErrNameRequired, got %v", err)
		}

		in = valid
		in.Price = decimal.Zero
		if _, err := svc.CreateVehicle(context.Background(), in); err != domain.ErrInvalidPrice {
			t.Fatalf("expected ErrInvalidPrice, got %v", err)
		}

		in = valid
		in.Quantity = -1
		if _, err := svc.CreateVehicle(context.Background(), in); err != domain.ErrInvalidQuantity {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})
}

func TestAdminService_ListAllOrders(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)

	repo := newFakeAdminRepo()
	svc := NewAdminService(repo, clock.NewFixed(now))

	t.Run("clamps page size", func(t *testing.T) {
		if _, err := svc.ListAllOrders(context.Background(), 0, -5); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if repo.lastLimit != defaultOrdersPageSize {
			t.Fatalf("expected default limit %d, got %d", defaultOrdersPageSize, repo.lastLimit)
		}
		if repo.lastOffset != 0 {
			t.Fatalf("expected offset clamped to 0, got %d", repo.lastOffset)
		}

		if _, err := svc.ListAllOrders(context.Background(), 10000, 20); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if repo.lastLimit != maxOrdersPageSize {
			t.Fatalf("expected limit clamped to %d, got %d", maxOrdersPageSize, repo.lastLimit)
		}
	})
}

type fakeAdminRepo struct {
	classifications map[string]domain.Classification
	vehicles        map[string]domain.Vehicle
	lastLimit       int
	lastOffset      int
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{
		classifications: make(map[string]domain.Classification),
		vehicles:        make(map[string]domain.Vehicle),
	}
}

func (f *fakeAdminRepo) CreateClassification(_ context.Context, classification domain.Classification) error {
	for _, existing := range f.classifications {
		if existing.Name == classification.Name {
			return domain.ErrDuplicateName
		}
	}
	f.classifications[classification.ID] = classification
	return nil
}

func (f *fakeAdminRepo) ListClassifications(_ context.Context) ([]domain.Classification, error) {
	var out []domain.Classification
	for _, classification := range f.classifications {
		out = append(out, classification)
	}
	return out, nil
}

func (f *fakeAdminRepo) CreateVehicle(_ context.Context, vehicle domain.Vehicle) error {
	if _, ok := f.classifications[vehicle.ClassificationID]; !ok {
		return domain.ErrClassificationNotFound
	}
	f.vehicles[vehicle.ID] = vehicle
	return nil
}

func (f *fakeAdminRepo) SalesByStatus(_ context.Context) ([]domain.StatusSales, error) {
	return nil, nil
}

func (f *fakeAdminRepo) ListAllOrders(_ context.Context, limit, offset int) ([]domain.Order, error) {
	f.lastLimit = limit
	f.lastOffset = offset
	return nil, nil
}
