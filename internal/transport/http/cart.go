package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nyashachimutapira/cse-motors-api/internal/app"
	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

// CartService is the minimal interface needed for cart routes.
type CartService interface {
	GetCart(ctx context.Context, accountID string) ([]domain.CartItem, error)
	AddItem(ctx context.Context, in app.AddItemInput) (domain.CartLine, error)
	UpdateQuantity(ctx context.Context, accountID, lineID string, quantity int) error
	RemoveItem(ctx context.Context, accountID, lineID string) error
	Clear(ctx context.Context, accountID string) error
}

type cartItemResponse struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicle_id"`
	Quantity  int       `json:"quantity"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	UnitPrice string    `json:"unit_price"`
	Subtotal  string    `json:"subtotal"`
	AddedAt   time.Time `json:"added_at"`
}

type cartResponse struct {
	Items []cartItemResponse `json:"items"`
	Total string             `json:"total"`
}

func toCartResponse(items []domain.CartItem) cartResponse {
	resp := cartResponse{Items: make([]cartItemResponse, 0, len(items))}
	total := decimal.Zero
	for _, item := range items {
		resp.Items = append(resp.Items, cartItemResponse{
			ID:        item.ID,
			VehicleID: item.VehicleID,
			Quantity:  item.Quantity,
			Make:      item.Make,
			Model:     item.Model,
			Year:      item.Year,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Subtotal:  item.Subtotal().StringFixed(2),
			AddedAt:   item.AddedAt,
		})
		total = total.Add(item.Subtotal())
	}
	resp.Total = total.StringFixed(2)
	return resp
}

// HandleCart serves GET /cart and DELETE /cart (clear).
func HandleCart(svc CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			items, err := svc.GetCart(r.Context(), accountID(r))
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toCartResponse(items))
		case http.MethodDelete:
			if err := svc.Clear(r.Context(), accountID(r)); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type addCartItemRequest struct {
	VehicleID string `json:"vehicle_id"`
	Quantity  int    `json:"quantity,omitempty"`
}

type cartLineResponse struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicle_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// HandleCartItems serves POST /cart/items.
func HandleCartItems(svc CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req addCartItemRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		// Quantity defaults to 1 when the client omits it.
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		line, err := svc.AddItem(r.Context(), app.AddItemInput{
			AccountID: accountID(r),
			VehicleID: req.VehicleID,
			Quantity:  req.Quantity,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, cartLineResponse{
			ID:        line.ID,
			VehicleID: line.VehicleID,
			Quantity:  line.Quantity,
			AddedAt:   line.AddedAt,
		})
	}
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// HandleCartItem serves PATCH and DELETE on /cart/items/{id}.
func HandleCartItem(svc CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lineID, ok := parseCartItemPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodPatch:
			var req updateCartItemRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			if err := svc.UpdateQuantity(r.Context(), accountID(r), lineID, req.Quantity); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		case http.MethodDelete:
			if err := svc.RemoveItem(r.Context(), accountID(r), lineID); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func parseCartItemPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[0] != "cart" || parts[1] != "items" || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}
