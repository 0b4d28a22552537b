package http

import (
	"context"
	"net/http"

	"github.com/nyashachimutapira/cse-motors-api/internal/app"
	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

// CheckoutFlow is the minimal interface needed for checkout routes.
type CheckoutFlow interface {
	ViewCheckout(ctx context.Context, accountID string) (app.CheckoutView, error)
	PlaceOrder(ctx context.Context, in app.PlaceOrderInput) (domain.Order, error)
}

type checkoutLineResponse struct {
	cartItemResponse
	InStock   bool `json:"in_stock"`
	Available int  `json:"available"`
}

type checkoutViewResponse struct {
	Lines []checkoutLineResponse `json:"lines"`
	Total string                 `json:"total"`
}

type placeOrderRequest struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Phone   string `json:"phone,omitempty"`
}

// HandleCheckout serves GET /checkout (review) and POST /checkout (place
// the order).
func HandleCheckout(svc CheckoutFlow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			view, err := svc.ViewCheckout(r.Context(), accountID(r))
			if err != nil {
				writeDomainError(w, err)
				return
			}

			resp := checkoutViewResponse{
				Lines: make([]checkoutLineResponse, 0, len(view.Lines)),
				Total: view.Total.StringFixed(2),
			}
			for _, line := range view.Lines {
				item := line.Item
				resp.Lines = append(resp.Lines, checkoutLineResponse{
					cartItemResponse: cartItemResponse{
						ID:        item.ID,
						VehicleID: item.VehicleID,
						Quantity:  item.Quantity,
						Make:      item.Make,
						Model:     item.Model,
						Year:      item.Year,
						UnitPrice: item.UnitPrice.StringFixed(2),
						Subtotal:  item.Subtotal().StringFixed(2),
						AddedAt:   item.AddedAt,
					},
					InStock:   line.InStock,
					Available: line.Available,
				})
			}
			writeJSON(w, http.StatusOK, resp)
		case http.MethodPost:
			var req placeOrderRequest
			if !decodeJSON(w, r, &req) {
				return
			}

			order, err := svc.PlaceOrder(r.Context(), app.PlaceOrderInput{
				AccountID: accountID(r),
				Shipping: domain.ShippingInfo{
					Address: req.Address,
					City:    req.City,
					State:   req.State,
					Zip:     req.Zip,
					Phone:   req.Phone,
				},
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toOrderResponse(order))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}
