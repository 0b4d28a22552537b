package domain

import "time"

// Review is one account's rating (1-5) and optional text for a vehicle.
// One review per (vehicle, account); re-submitting replaces it.
type Review struct {
	ID        string
	VehicleID string
	AccountID string
	Rating    int
	Text      string
	CreatedAt time.Time
}

// RatingSummary is zero-valued when a vehicle has no reviews yet.
type RatingSummary struct {
	VehicleID     string
	AverageRating float64
	ReviewCount   int
}
