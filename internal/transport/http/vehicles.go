package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nyashachimutapira/cse-motors-api/internal/app"
	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

// VehicleCatalog is the minimal interface needed for public catalog reads.
type VehicleCatalog interface {
	ListVehicles(ctx context.Context, filter domain.VehicleFilter) ([]domain.Vehicle, error)
	GetVehicle(ctx context.Context, vehicleID string) (domain.Vehicle, error)
}

// PriceConverter resolves a display currency for price conversion.
type PriceConverter interface {
	Get(ctx context.Context, code string) (domain.Currency, error)
}

type vehicleResponse struct {
	ID               string `json:"id"`
	ClassificationID string `json:"classification_id"`
	Make             string `json:"make"`
	Model            string `json:"model"`
	Year             int    `json:"year"`
	Description      string `json:"description,omitempty"`
	Color            string `json:"color,omitempty"`
	Miles            int    `json:"miles"`
	Price            string `json:"price"`
	Quantity         int    `json:"quantity"`
	Image            string `json:"image,omitempty"`
	Thumbnail        string `json:"thumbnail,omitempty"`
	// Converted display price, only when ?currency= is given.
	DisplayPrice    string `json:"display_price,omitempty"`
	DisplayCurrency string `json:"display_currency,omitempty"`
}

func toVehicleResponse(v domain.Vehicle, currency *domain.Currency) vehicleResponse {
	resp := vehicleResponse{
		ID:               v.ID,
		ClassificationID: v.ClassificationID,
		Make:             v.Make,
		Model:            v.Model,
		Year:             v.Year,
		Description:      v.Description,
		Color:            v.Color,
		Miles:            v.Miles,
		Price:            v.Price.StringFixed(2),
		Quantity:         v.Quantity,
		Image:            v.Image,
		Thumbnail:        v.Thumbnail,
	}
	if currency != nil {
		resp.DisplayPrice = currency.Symbol + currency.Convert(v.Price).StringFixed(2)
		resp.DisplayCurrency = currency.Code
	}
	return resp
}

// resolveCurrency loads the display currency when the request asks for one.
func resolveCurrency(r *http.Request, converter PriceConverter) (*domain.Currency, error) {
	code := r.URL.Query().Get("currency")
	if code == "" {
		return nil, nil
	}
	currency, err := converter.Get(r.Context(), code)
	if err != nil {
		return nil, err
	}
	return &currency, nil
}

func parseVehicleFilter(r *http.Request) domain.VehicleFilter {
	q := r.URL.Query()
	filter := domain.VehicleFilter{
		ClassificationID: q.Get("classification_id"),
		Keyword:          q.Get("keyword"),
		Make:             q.Get("make"),
		Color:            q.Get("color"),
		SortBy:           q.Get("sort"),
	}
	if year, err := strconv.Atoi(q.Get("year")); err == nil {
		filter.Year = year
	}
	if miles, err := strconv.Atoi(q.Get("max_miles")); err == nil {
		filter.MaxMiles = miles
	}
	if min, err := decimal.NewFromString(q.Get("min_price")); err == nil {
		filter.MinPrice = min
	}
	if max, err := decimal.NewFromString(q.Get("max_price")); err == nil {
		filter.MaxPrice = max
	}
	return filter
}

// HandleVehicles returns an HTTP handler for the public catalog listing.
func HandleVehicles(catalog VehicleCatalog, converter PriceConverter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		currency, err := resolveCurrency(r, converter)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		vehicles, err := catalog.ListVehicles(r.Context(), parseVehicleFilter(r))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]vehicleResponse, 0, len(vehicles))
		for _, v := range vehicles {
			resp = append(resp, toVehicleResponse(v, currency))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// ReviewService is the minimal interface needed for vehicle review routes.
type ReviewService interface {
	AddReview(ctx context.Context, in app.AddReviewInput) (domain.Review, error)
	ListForVehicle(ctx context.Context, vehicleID string) ([]domain.Review, error)
	Summary(ctx context.Context, vehicleID string) (domain.RatingSummary, error)
}

// HandleVehicle serves /vehicles/{id} and /vehicles/{id}/reviews.
func HandleVehicle(catalog VehicleCatalog, converter PriceConverter, reviews ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		switch {
		case len(parts) == 2 && parts[0] == "vehicles" && parts[1] != "":
			handleVehicleDetail(w, r, catalog, converter, reviews, parts[1])
		case len(parts) == 3 && parts[0] == "vehicles" && parts[1] != "" && parts[2] == "reviews":
			handleVehicleReviews(w, r, reviews, parts[1])
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

type vehicleDetailResponse struct {
	vehicleResponse
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

func handleVehicleDetail(w http.ResponseWriter, r *http.Request, catalog VehicleCatalog, converter PriceConverter, reviews ReviewService, vehicleID string) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		return
	}

	currency, err := resolveCurrency(r, converter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	vehicle, err := catalog.GetVehicle(r.Context(), vehicleID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	summary, err := reviews.Summary(r.Context(), vehicleID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, vehicleDetailResponse{
		vehicleResponse: toVehicleResponse(vehicle, currency),
		AverageRating:   summary.AverageRating,
		ReviewCount:     summary.ReviewCount,
	})
}

type createReviewRequest struct {
	Rating int    `json:"rating"`
	Text   string `json:"text,omitempty"`
}

type reviewResponse struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicle_id"`
	AccountID string    `json:"account_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toReviewResponse(review domain.Review) reviewResponse {
	return reviewResponse{
		ID:        review.ID,
		VehicleID: review.VehicleID,
		AccountID: review.AccountID,
		Rating:    review.Rating,
		Text:      review.Text,
		CreatedAt: review.CreatedAt,
	}
}

func handleVehicleReviews(w http.ResponseWriter, r *http.Request, reviews ReviewService, vehicleID string) {
	switch r.Method {
	case http.MethodGet:
		list, err := reviews.ListForVehicle(r.Context(), vehicleID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]reviewResponse, 0, len(list))
		for _, review := range list {
			resp = append(resp, toReviewResponse(review))
		}
		writeJSON(w, http.StatusOK, resp)
	case http.MethodPost:
		var req createReviewRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		review, err := reviews.AddReview(r.Context(), app.AddReviewInput{
			AccountID: accountID(r),
			VehicleID: vehicleID,
			Rating:    req.Rating,
			Text:      req.Text,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toReviewResponse(review))
	default:
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	}
}
