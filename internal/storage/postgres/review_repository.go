package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// UpsertReview replaces an account's earlier review of the same vehicle.
func (r *ReviewRepository) UpsertReview(ctx context.Context, review domain.Review) (domain.Review, error) {
	const stmt = `
INSERT INTO reviews (id, vehicle_id, account_id, rating, review_text, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (vehicle_id, account_id)
DO UPDATE SET rating = EXCLUDED.rating, review_text = EXCLUDED.review_text, created_at = EXCLUDED.created_at
RETURNING id, vehicle_id, account_id, rating, review_text, created_at`

	var out domain.Review
	err := queryRow(ctx, r.pool, stmt,
		review.ID, review.VehicleID, review.AccountID, review.Rating, review.Text, review.CreatedAt,
	).Scan(&out.ID, &out.VehicleID, &out.AccountID, &out.Rating, &out.Text, &out.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Review{}, domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.Review{}, domain.ErrVehicleNotFound
		}
		return domain.Review{}, fmt.Errorf("upsert review: %w", err)
	}
	return out, nil
}

func (r *ReviewRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]domain.Review, error) {
	const q = `
SELECT id, vehicle_id, account_id, rating, review_text, created_at
FROM reviews
WHERE vehicle_id = $1
ORDER BY created_at DESC`

	rows, err := query(ctx, r.pool, q, vehicleID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var review domain.Review
		err := rows.Scan(&review.ID, &review.VehicleID, &review.AccountID,
			&review.Rating, &review.Text, &review.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate reviews: %w", rows.Err())
	}
	return reviews, nil
}

func (r *ReviewRepository) RatingSummary(ctx context.Context, vehicleID string) (domain.RatingSummary, error) {
	const q = `
SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0), COUNT(*)
FROM reviews
WHERE vehicle_id = $1`

	summary := domain.RatingSummary{VehicleID: vehicleID}
	err := queryRow(ctx, r.pool, q, vehicleID).Scan(&summary.AverageRating, &summary.ReviewCount)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.RatingSummary{}, domain.ErrInvalidID
		}
		return domain.RatingSummary{}, fmt.Errorf("rating summary: %w", err)
	}
	return summary, nil
}
