package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warescan/warescan-backend/api/responses"
	"github.com/warescan/warescan-backend/api/validators"
	"github.com/warescan/warescan-backend/internal/ledger"
	pkgerrors "github.com/warescan/warescan-backend/pkg/errors"
	"github.com/warescan/warescan-backend/pkg/logger"
)

type adjustStockRequest struct {
	Barcode       string `json:"barcode" validate:"required"`
	QuantityDelta *int   `json:"quantity_delta" validate:"required"`
}

// AdjustStock applies a signed stock movement and returns the updated product.
func AdjustStock(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		var payload adjustStockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Adjust(r.Context(), ledger.AdjustInput{
			Barcode:       payload.Barcode,
			QuantityDelta: *payload.QuantityDelta,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdjustmentHistory lists the audit trail of a product, newest first.
func AdjustmentHistory(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		entries, err := svc.History(r.Context(), chi.URLParam(r, "barcode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entries)
	}
}
