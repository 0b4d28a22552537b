package http

import (
	"context"
	"net/http"

	"github.com/nyashachimutapira/cse-motors-api/internal/domain"
)

// CurrencyLister is the minimal interface needed for the currencies route.
type CurrencyLister interface {
	List(ctx context.Context) ([]domain.Currency, error)
}

type currencyResponse struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Rate   string `json:"rate"`
}

// HandleCurrencies serves GET /currencies, the supported display currencies
// with their USD rates.
func HandleCurrencies(svc CurrencyLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		currencies, err := svc.List(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]currencyResponse, 0, len(currencies))
		for _, c := range currencies {
			resp = append(resp, currencyResponse{
				Code:   c.Code,
				Name:   c.Name,
				Symbol: c.Symbol,
				Rate:   c.Rate.String(),
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
