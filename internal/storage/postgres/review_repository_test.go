package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
	"github.com/nyashachimutapira/cse-motors-api/internal/testutil"
)

func TestReviewRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewReviewRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("UpsertReview replaces an earlier review", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		_, vehicleID := testutil.InsertClassificationAndVehicle(t, ctx, pool, "Sedan", "100.00", 5)

		first, err := repo.UpsertReview(ctx, domain.Review{
			ID:        uuid.NewString(),
			VehicleID: vehicleID,
			AccountID: testAccountID,
			Rating:    2,
			Text:      "meh",
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("first upsert: %v", err)
		}

		second, err := repo.UpsertReview(ctx, domain.Review{
			ID:        uuid.NewString(),
			VehicleID: vehicleID,
			AccountID: testAccountID,
			Rating:    5,
			Text:      "grew on me",
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("second upsert: %v", err)
		}
		if second.ID != first.ID {
			t.Fatalf("expected the same review row, got %s and %s", first.ID, second.ID)
		}
		if second.Rating != 5 || second.Text != "grew on me" {
			t.Fatalf("unexpected review: %+v", second)
		}

		list, err := repo.ListByVehicle(ctx, vehicleID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("expected one review, got %d", len(list))
		}
	})

	t.Run("UpsertReview rejects unknown vehicle", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		_, err := repo.UpsertReview(ctx, domain.Review{
			ID:        uuid.NewString(),
			VehicleID: "00000000-0000-0000-0000-000000000001",
			AccountID: testAccountID,
			Rating:    3,
			CreatedAt: time.Now().UTC(),
		})
		if err != domain.ErrVehicleNotFound {
			t.Fatalf("expected ErrVehicleNotFound, got %v", err)
		}
	})

	t.Run("RatingSummary averages across accounts", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		_, vehicleID := testutil.InsertClassificationAndVehicle(t, ctx, pool, "Sedan", "100.00", 5)

		for i, rating := range []int{5, 4} {
			_, err := repo.UpsertReview(ctx, domain.Review{
				ID:        uuid.NewString(),
				VehicleID: vehicleID,
				AccountID: uuid.NewString(),
				Rating:    rating,
				CreatedAt: time.Now().UTC(),
			})
			if err != nil {
				t.Fatalf("upsert %d: %v", i, err)
			}
		}

		summary, err := repo.RatingSummary(ctx, vehicleID)
		if err != nil {
			t.Fatalf("summary: %v", err)
		}
		if summary.ReviewCount != 2 {
			t.Fatalf("expected 2 reviews, got %d", summary.ReviewCount)
		}
		if summary.AverageRating != 4.5 {
			t.Fatalf("expected average 4.5, got %f", summary.AverageRating)
		}
	})

	t.Run("RatingSummary is zero for unreviewed vehicle", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		_, vehicleID := testutil.InsertClassificationAndVehicle(t, ctx, pool, "Sedan", "100.00", 5)

		summary, err := repo.RatingSummary(ctx, vehicleID)
		if err != nil {
			t.Fatalf("summary: %v", err)
		}
		if summary.ReviewCount != 0 || summary.AverageRating != 0 {
			t.Fatalf("expected zero summary, got %+v", summary)
		}
	})
}
