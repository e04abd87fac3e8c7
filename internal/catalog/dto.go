package catalog

import (
	"time"

	"github.com/warescan/warescan-backend/internal/lowstock"
	"github.com/warescan/warescan-backend/pkg/db/models"
)

// ProductDTO is the product payload returned to clients. The low-stock fields
// are derived from the stored row on every read, never persisted.
type ProductDTO struct {
	Barcode      string    `json:"barcode"`
	Name         string    `json:"name"`
	Stock        int       `json:"stock"`
	Warehouse    string    `json:"warehouse"`
	MinimumStock int       `json:"minimum_stock"`
	LastChanged  time.Time `json:"last_changed"`
	IsLowStock   bool      `json:"is_low_stock"`
	Warning      *string   `json:"warning,omitempty"`
}

// NewProductDTO maps a stored product row onto the response shape and attaches
// the derived low-stock signal.
func NewProductDTO(product *models.Product) *ProductDTO {
	signal := lowstock.Evaluate(product.Stock, product.MinimumStock)
	return &ProductDTO{
		Barcode:      product.Barcode,
		Name:         product.Name,
		Stock:        product.Stock,
		Warehouse:    product.Warehouse,
		MinimumStock: product.MinimumStock,
		LastChanged:  product.LastChanged,
		IsLowStock:   signal.IsLowStock,
		Warning:      signal.Warning,
	}
}

// NewProductDTOs maps a slice of rows, preserving order.
func NewProductDTOs(products []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, *NewProductDTO(&products[i]))
	}
	return dtos
}
