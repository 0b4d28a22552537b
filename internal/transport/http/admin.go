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

// AdminService is the minimal interface needed for back-office routes.
type AdminService interface {
	CreateClassification(ctx context.Context, name string) (domain.Classification, error)
	ListClassifications(ctx context.Context) ([]domain.Classification, error)
	CreateVehicle(ctx context.Context, in app.CreateVehicleInput) (domain.Vehicle, error)
	SalesReport(ctx context.Context) ([]domain.StatusSales, error)
	ListAllOrders(ctx context.Context, limit, offset int) ([]domain.Order, error)
}

// OrderStatusUpdater moves orders along the fulfilment pipeline.
type OrderStatusUpdater interface {
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error)
}

// LowStockLister reports vehicles at or below a restock threshold.
type LowStockLister interface {
	LowStock(ctx context.Context, threshold int) ([]domain.Vehicle, error)
}

type classificationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type createClassificationRequest struct {
	Name string `json:"name"`
}

// HandleAdminClassifications serves GET and POST /admin/classifications.
func HandleAdminClassifications(svc AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list, err := svc.ListClassifications(r.Context())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]classificationResponse, 0, len(list))
			for _, c := range list {
				resp = append(resp, classificationResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
			}
			writeJSON(w, http.StatusOK, resp)
		case http.MethodPost:
			var req createClassificationRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			classification, err := svc.CreateClassification(r.Context(), strings.TrimSpace(req.Name))
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, classificationResponse{
				ID:        classification.ID,
				Name:      classification.Name,
				CreatedAt: classification.CreatedAt,
			})
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

type createVehicleRequest struct {
	ClassificationID string `json:"classification_id"`
	Make             string `json:"make"`
	Model            string `json:"model"`
	Year             int    `json:"year"`
	Description      string `json:"description,omitempty"`
	Color            string `json:"color,omitempty"`
	Miles            int    `json:"miles,omitempty"`
	Price            string `json:"price"`
	Quantity         int    `json:"quantity"`
	Image            string `json:"image,omitempty"`
	Thumbnail        string `json:"thumbnail,omitempty"`
}

// HandleAdminVehicles serves POST /admin/vehicles.
func HandleAdminVehicles(svc AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createVehicleRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		price, err := decimal.NewFromString(req.Price)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidPrice, "invalid price")
			return
		}

		vehicle, err := svc.CreateVehicle(r.Context(), app.CreateVehicleInput{
			ClassificationID: req.ClassificationID,
			Make:             req.Make,
			Model:            req.Model,
			Year:             req.Year,
			Description:      req.Description,
			Color:            req.Color,
			Miles:            req.Miles,
			Price:            price,
			Quantity:         req.Quantity,
			Image:            req.Image,
			Thumbnail:        req.Thumbnail,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toVehicleResponse(vehicle, nil))
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// HandleAdminOrders serves GET /admin/orders (paginated, all accounts) and
// PATCH /admin/orders/{id}/status.
func HandleAdminOrders(svc AdminService, statuses OrderStatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		switch {
		case len(parts) == 2 && parts[0] == "admin" && parts[1] == "orders":
			if r.Method != http.MethodGet {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			q := r.URL.Query()
			limit, _ := strconv.Atoi(q.Get("limit"))
			offset, _ := strconv.Atoi(q.Get("offset"))
			orders, err := svc.ListAllOrders(r.Context(), limit, offset)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]orderResponse, 0, len(orders))
			for _, order := range orders {
				resp = append(resp, toOrderResponse(order))
			}
			writeJSON(w, http.StatusOK, resp)
		case len(parts) == 4 && parts[0] == "admin" && parts[1] == "orders" && parts[2] != "" && parts[3] == "status":
			if r.Method != http.MethodPatch {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			var req updateOrderStatusRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			order, err := statuses.UpdateStatus(r.Context(), parts[2], domain.OrderStatus(req.Status))
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

type statusSalesResponse struct {
	Status  string `json:"status"`
	Orders  int    `json:"orders"`
	Revenue string `json:"revenue"`
}

// HandleAdminSalesReport serves GET /admin/reports/sales.
func HandleAdminSalesReport(svc AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		report, err := svc.SalesReport(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]statusSalesResponse, 0, len(report))
		for _, row := range report {
			resp = append(resp, statusSalesResponse{
				Status:  string(row.Status),
				Orders:  row.Orders,
				Revenue: row.Revenue.StringFixed(2),
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleAdminLowStock serves GET /admin/reports/low-stock. An optional
// ?threshold= overrides the default.
func HandleAdminLowStock(inventory LowStockLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		threshold, _ := strconv.Atoi(r.URL.Query().Get("threshold"))
		vehicles, err := inventory.LowStock(r.Context(), threshold)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]vehicleResponse, 0, len(vehicles))
		for _, v := range vehicles {
			resp = append(resp, toVehicleResponse(v, nil))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
