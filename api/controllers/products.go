package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warescan/warescan-backend/api/responses"
	"github.com/warescan/warescan-backend/api/validators"
	"github.com/warescan/warescan-backend/internal/catalog"
	pkgerrors "github.com/warescan/warescan-backend/pkg/errors"
	"github.com/warescan/warescan-backend/pkg/logger"
)

type createProductRequest struct {
	Barcode      string `json:"barcode" validate:"required"`
	Name         string `json:"name" validate:"required"`
	InitialStock int    `json:"initial_stock" validate:"gte=0"`
	Warehouse    string `json:"warehouse"`
	MinimumStock *int   `json:"minimum_stock" validate:"omitempty,gte=0"`
}

type scanRequest struct {
	Barcode string `json:"barcode" validate:"required"`
}

// CreateProduct registers a new catalog row.
func CreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), catalog.CreateProductInput{
			Barcode:      payload.Barcode,
			Name:         payload.Name,
			InitialStock: payload.InitialStock,
			Warehouse:    payload.Warehouse,
			MinimumStock: payload.MinimumStock,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// GetProduct returns a single product by its barcode path parameter.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		product, err := svc.GetProduct(r.Context(), chi.URLParam(r, "barcode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ListProducts returns the catalog, optionally filtered by the warehouse
// query parameter.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products, err := svc.ListProducts(r.Context(), r.URL.Query().Get("warehouse"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// ScanProduct is the scanner-terminal entry point: it accepts a barcode in
// the body and answers with the same payload as GetProduct.
func ScanProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload scanRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), payload.Barcode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
