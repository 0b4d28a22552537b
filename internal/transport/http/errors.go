package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeUnauthenticated    = "unauthenticated"
	codeForbidden          = "forbidden"
	codeEmptyCart          = "empty_cart"
	codeVehicleNotFound    = "vehicle_not_found"
	codeClassNotFound      = "classification_not_found"
	codeCartLineNotFound   = "cart_line_not_found"
	codeOrderNotFound      = "order_not_found"
	codeCurrencyNotFound   = "currency_not_found"
	codeWishlistDuplicate  = "wishlist_duplicate"
	codeInsufficientStock  = "insufficient_stock"
	codeInvalidQuantity    = "invalid_quantity"
	codeInvalidRating      = "invalid_rating"
	codeInvalidStatus      = "invalid_status"
	codeInvalidTransition  = "invalid_status_transition"
	codeShippingIncomplete = "shipping_incomplete"
	codeInvalidID          = "invalid_id"
	codeNameRequired       = "name_required"
	codeDuplicateName      = "duplicate_name"
	codeInvalidPrice       = "invalid_price"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	// Populated for insufficient-stock errors only.
	VehicleID string `json:"vehicle_id,omitempty"`
	Available *int   `json:"available,omitempty"`
	Requested *int   `json:"requested,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeErrorResponse(w, status, errorResponse{Error: msg, Code: code})
}

func writeErrorResponse(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(resp)
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps the closed domain error set onto HTTP statuses.
// Anything outside the set is a store failure and stays opaque to clients.
func writeDomainError(w http.ResponseWriter, err error) {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		writeErrorResponse(w, http.StatusConflict, errorResponse{
			Error:     stockErr.Error(),
			Code:      codeInsufficientStock,
			VehicleID: stockErr.VehicleID,
			Available: &stockErr.Available,
			Requested: &stockErr.Requested,
		})
		return
	}

	switch err {
	case domain.ErrUnauthenticated:
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, err.Error())
	case domain.ErrForbidden:
		writeError(w, http.StatusForbidden, codeForbidden, err.Error())
	case domain.ErrEmptyCart:
		writeError(w, http.StatusBadRequest, codeEmptyCart, err.Error())
	case domain.ErrVehicleNotFound:
		writeError(w, http.StatusNotFound, codeVehicleNotFound, err.Error())
	case domain.ErrClassificationNotFound:
		writeError(w, http.StatusNotFound, codeClassNotFound, err.Error())
	case domain.ErrCartLineNotFound:
		writeError(w, http.StatusNotFound, codeCartLineNotFound, err.Error())
	case domain.ErrOrderNotFound:
		writeError(w, http.StatusNotFound, codeOrderNotFound, err.Error())
	case domain.ErrCurrencyNotFound:
		writeError(w, http.StatusNotFound, codeCurrencyNotFound, err.Error())
	case domain.ErrWishlistDuplicate:
		writeError(w, http.StatusConflict, codeWishlistDuplicate, err.Error())
	case domain.ErrInvalidQuantity:
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	case domain.ErrInvalidRating:
		writeError(w, http.StatusBadRequest, codeInvalidRating, err.Error())
	case domain.ErrInvalidStatus:
		writeError(w, http.StatusBadRequest, codeInvalidStatus, err.Error())
	case domain.ErrInvalidTransition:
		writeError(w, http.StatusConflict, codeInvalidTransition, err.Error())
	case domain.ErrShippingIncomplete:
		writeError(w, http.StatusBadRequest, codeShippingIncomplete, err.Error())
	case domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case domain.ErrNameRequired:
		writeError(w, http.StatusBadRequest, codeNameRequired, err.Error())
	case domain.ErrDuplicateName:
		writeError(w, http.StatusConflict, codeDuplicateName, err.Error())
	case domain.ErrInvalidPrice:
		writeError(w, http.StatusBadRequest, codeInvalidPrice, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
