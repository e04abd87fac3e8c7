package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/warescan/warescan-backend/pkg/db"
	"github.com/warescan/warescan-backend/pkg/db/models"
	pkgerrors "github.com/warescan/warescan-backend/pkg/errors"
	"github.com/warescan/warescan-backend/pkg/logger"
)

// Service defines the catalog operations exposed to the API layer.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, barcode string) (*ProductDTO, error)
	ListProducts(ctx context.Context, warehouse string) ([]ProductDTO, error)
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// CreateProductInput captures the data required to register a product.
type CreateProductInput struct {
	Barcode      string `json:"barcode" validate:"required"`
	Name         string `json:"name" validate:"required"`
	InitialStock int    `json:"initial_stock" validate:"gte=0"`
	Warehouse    string `json:"warehouse"`
	MinimumStock *int   `json:"minimum_stock" validate:"omitempty,gte=0"`
}

// NewService wires a catalog service with its repository.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	barcode := strings.TrimSpace(input.Barcode)
	if barcode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "barcode is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.InitialStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "initial stock must not be negative")
	}

	minimum := models.DefaultMinimumStock
	if input.MinimumStock != nil {
		if *input.MinimumStock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum stock must not be negative")
		}
		minimum = *input.MinimumStock
	}

	product := &models.Product{
		Barcode:      barcode,
		Name:         name,
		Stock:        input.InitialStock,
		Warehouse:    strings.TrimSpace(input.Warehouse),
		MinimumStock: minimum,
		LastChanged:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "products_pkey") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("product %s already exists", barcode))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating product")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithBarcode(ctx, barcode), "product created")
	}
	return NewProductDTO(product), nil
}

func (s *service) GetProduct(ctx context.Context, barcode string) (*ProductDTO, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "barcode is required")
	}

	product, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", barcode))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return NewProductDTO(product), nil
}

func (s *service) ListProducts(ctx context.Context, warehouse string) ([]ProductDTO, error) {
	products, err := s.repo.List(ctx, strings.TrimSpace(warehouse))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}
	return NewProductDTOs(products), nil
}
