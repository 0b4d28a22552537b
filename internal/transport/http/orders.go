package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/nyashachimutapira/cse-motors-api/internal/app"
	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

// OrderService is the minimal interface needed for order routes.
type OrderService interface {
	ListOrders(ctx context.Context, accountID string) ([]domain.Order, error)
	GetOrder(ctx context.Context, accountID, orderID string) (app.OrderDetail, error)
	CancelOrder(ctx context.Context, accountID, orderID string) (domain.Order, error)
}

type shippingResponse struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Phone   string `json:"phone,omitempty"`
}

type orderResponse struct {
	ID        string           `json:"id"`
	Total     string           `json:"total"`
	Status    string           `json:"status"`
	Shipping  shippingResponse `json:"shipping"`
	LineCount int              `json:"line_count"`
	CreatedAt time.Time        `json:"created_at"`
}

func toOrderResponse(order domain.Order) orderResponse {
	return orderResponse{
		ID:     order.ID,
		Total:  order.Total.StringFixed(2),
		Status: string(order.Status),
		Shipping: shippingResponse{
			Address: order.Shipping.Address,
			City:    order.Shipping.City,
			State:   order.Shipping.State,
			Zip:     order.Shipping.Zip,
			Phone:   order.Shipping.Phone,
		},
		LineCount: order.LineCount,
		CreatedAt: order.CreatedAt,
	}
}

type orderLineResponse struct {
	ID        string `json:"id"`
	VehicleID string `json:"vehicle_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

type orderDetailResponse struct {
	orderResponse
	Lines []orderLineResponse `json:"lines"`
}

func toOrderDetailResponse(detail app.OrderDetail) orderDetailResponse {
	resp := orderDetailResponse{
		orderResponse: toOrderResponse(detail.Order),
		Lines:         make([]orderLineResponse, 0, len(detail.Lines)),
	}
	// GetOrder does not join the line count the way listings do; the loaded
	// lines are authoritative here.
	resp.LineCount = len(detail.Lines)
	for _, line := range detail.Lines {
		resp.Lines = append(resp.Lines, orderLineResponse{
			ID:        line.ID,
			VehicleID: line.VehicleID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice.StringFixed(2),
			Subtotal:  line.Subtotal().StringFixed(2),
		})
	}
	return resp
}

// HandleOrders serves GET /orders, the caller's order history.
func HandleOrders(svc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		orders, err := svc.ListOrders(r.Context(), accountID(r))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]orderResponse, 0, len(orders))
		for _, order := range orders {
			resp = append(resp, toOrderResponse(order))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleOrder serves GET /orders/{id} and POST /orders/{id}/cancel.
func HandleOrder(svc OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		switch {
		case len(parts) == 2 && parts[0] == "orders" && parts[1] != "":
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			detail, err := svc.GetOrder(r.Context(), accountID(r), parts[1])
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toOrderDetailResponse(detail))
		case len(parts) == 3 && parts[0] == "orders" && parts[1] != "" && parts[2] == "cancel":
			if r.Method != http.MethodPost {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			order, err := svc.CancelOrder(r.Context(), accountID(r), parts[1])
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toOrderResponse(order))
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}
