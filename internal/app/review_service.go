package app

import (
	"context"

	"github.com/nyashachimutapira/cse-motors-api/internal/clock"
	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

type ReviewRepository interface {
	UpsertReview(ctx context.Context, review domain.Review) (domain.Review, error)
	ListByVehicle(ctx context.Context, vehicleID string) ([]domain.Review, error)
	RatingSummary(ctx context.Context, vehicleID string) (domain.RatingSummary, error)
}

type ReviewService struct {
	repo  ReviewRepository
	clock clock.Clock
}

func NewReviewService(repo ReviewRepository, clk clock.Clock) *ReviewService {
	return &ReviewService{repo: repo, clock: clk}
}

type AddReviewInput struct {
	AccountID string
	VehicleID string
	Rating    int
	Text      string
}

// AddReview records one review per (vehicle, account); submitting again
// replaces the earlier rating and text.
func (s *ReviewService) AddReview(ctx context.Context, in AddReviewInput) (domain.Review, error) {
	if in.AccountID == "" {
		return domain.Review{}, domain.ErrUnauthenticated
	}
	if in.VehicleID == "" {
		return domain.Review{}, domain.ErrInvalidID
	}
	if in.Rating < 1 || in.Rating > 5 {
		return domain.Review{}, domain.ErrInvalidRating
	}

	review := domain.Review{
		ID:        newID(),
		VehicleID: in.VehicleID,
		AccountID: in.AccountID,
		Rating:    in.Rating,
		Text:      in.Text,
		CreatedAt: s.clock.Now(),
	}
	return s.repo.UpsertReview(ctx, review)
}

func (s *ReviewService) ListForVehicle(ctx context.Context, vehicleID string) ([]domain.Review, error) {
	if vehicleID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListByVehicle(ctx, vehicleID)
}

// Summary returns a zero-valued summary when the vehicle has no reviews.
func (s *ReviewService) Summary(ctx context.Context, vehicleID string) (domain.RatingSummary, error) {
	if vehicleID == "" {
		return domain.RatingSummary{}, domain.ErrInvalidID
	}
	return s.repo.RatingSummary(ctx, vehicleID)
}
