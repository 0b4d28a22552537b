package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

// WishlistService is the minimal interface needed for wishlist routes.
type WishlistService interface {
	List(ctx context.Context, accountID string) ([]domain.WishlistItem, error)
	Add(ctx context.Context, accountID, vehicleID string) (domain.WishlistItem, error)
	Remove(ctx context.Context, accountID, itemID string) error
}

type wishlistItemResponse struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicle_id"`
	Make      string    `json:"make,omitempty"`
	Model     string    `json:"model,omitempty"`
	Year      int       `json:"year,omitempty"`
	Price     string    `json:"price,omitempty"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

func toWishlistItemResponse(item domain.WishlistItem) wishlistItemResponse {
	resp := wishlistItemResponse{
		ID:        item.ID,
		VehicleID: item.VehicleID,
		Make:      item.Make,
		Model:     item.Model,
		Year:      item.Year,
		Thumbnail: item.Thumbnail,
		AddedAt:   item.AddedAt,
	}
	if !item.Price.IsZero() {
		resp.Price = item.Price.StringFixed(2)
	}
	return resp
}

type addWishlistItemRequest struct {
	VehicleID string `json:"vehicle_id"`
}

// HandleWishlist serves GET /wishlist and POST /wishlist.
func HandleWishlist(svc WishlistService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			items, err := svc.List(r.Context(), accountID(r))
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]wishlistItemResponse, 0, len(items))
			for _, item := range items {
				resp = append(resp, toWishlistItemResponse(item))
			}
			writeJSON(w, http.StatusOK, resp)
		case http.MethodPost:
			var req addWishlistItemRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			item, err := svc.Add(r.Context(), accountID(r), req.VehicleID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toWishlistItemResponse(item))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleWishlistItem serves DELETE /wishlist/items/{id}.
func HandleWishlistItem(svc WishlistService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 3 || parts[0] != "wishlist" || parts[1] != "items" || parts[2] == "" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		if err := svc.Remove(r.Context(), accountID(r), parts[2]); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
