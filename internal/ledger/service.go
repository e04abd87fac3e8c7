package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/warescan/warescan-backend/internal/catalog"
	"github.com/warescan/warescan-backend/pkg/db"
	"github.com/warescan/warescan-backend/pkg/db/models"
	pkgerrors "github.com/warescan/warescan-backend/pkg/errors"
	"github.com/warescan/warescan-backend/pkg/logger"
	"github.com/warescan/warescan-backend/pkg/metrics"
)

// Service applies stock adjustments and exposes the audit trail.
type Service interface {
	Adjust(ctx context.Context, input AdjustInput) (*catalog.ProductDTO, error)
	History(ctx context.Context, barcode string) ([]models.AdjustmentEntry, error)
}

// AdjustInput captures one signed stock movement. A zero delta is legal and
// still produces an audit entry.
type AdjustInput struct {
	Barcode       string `json:"barcode" validate:"required"`
	QuantityDelta int    `json:"quantity_delta"`
}

type service struct {
	client   *db.Client
	repo     Repository
	products *catalog.Repository
	logg     *logger.Logger
	metrics  *metrics.LedgerMetrics
}

// NewService wires the adjustment service. Metrics and logger may be nil.
func NewService(client *db.Client, repo Repository, products *catalog.Repository, logg *logger.Logger, ledgerMetrics *metrics.LedgerMetrics) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("adjustment repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{
		client:   client,
		repo:     repo,
		products: products,
		logg:     logg,
		metrics:  ledgerMetrics,
	}, nil
}

// Adjust moves stock by the signed delta and appends exactly one audit entry,
// both inside a single transaction. The non-negativity check runs twice: once
// against the loaded row for a fast, well-formed rejection, and again inside
// the guarded UPDATE, which is what actually protects against a concurrent
// adjustment draining the stock between read and write.
func (s *service) Adjust(ctx context.Context, input AdjustInput) (*catalog.ProductDTO, error) {
	barcode := strings.TrimSpace(input.Barcode)
	if barcode == "" {
		return nil, s.reject(ctx, pkgerrors.New(pkgerrors.CodeValidation, "barcode is required"))
	}

	start := time.Now()
	var updated models.Product

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		products := s.products.WithTx(tx)

		current, err := products.FindByBarcode(ctx, barcode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", barcode))
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
		}

		if current.Stock+input.QuantityDelta < 0 {
			return insufficientStock(barcode, current.Stock, input.QuantityDelta)
		}

		now := time.Now().UTC()
		affected, err := products.AdjustStock(ctx, barcode, input.QuantityDelta, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "applying stock adjustment")
		}
		if affected == 0 {
			// a concurrent writer consumed the remaining stock after our read
			return insufficientStock(barcode, current.Stock, input.QuantityDelta)
		}

		entry := &models.AdjustmentEntry{
			Barcode:       barcode,
			QuantityDelta: input.QuantityDelta,
			Timestamp:     now,
		}
		if err := s.repo.WithTx(tx).Create(ctx, entry); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "appending adjustment entry")
		}

		reloaded, err := products.FindByBarcode(ctx, barcode)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reloading product")
		}
		updated = *reloaded
		return nil
	})
	if err != nil {
		return nil, s.reject(ctx, err)
	}

	s.metrics.IncCommitted(updated.Warehouse)
	s.metrics.ObserveDuration(updated.Warehouse, time.Since(start))
	if s.logg != nil {
		fields := map[string]any{"barcode": barcode, "quantity_delta": input.QuantityDelta, "stock": updated.Stock}
		s.logg.Info(s.logg.WithFields(ctx, fields), "stock adjusted")
	}
	return catalog.NewProductDTO(&updated), nil
}

// History returns all adjustment entries for the barcode, newest first. An
// unknown barcode yields an empty slice rather than an error.
func (s *service) History(ctx context.Context, barcode string) ([]models.AdjustmentEntry, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "barcode is required")
	}

	entries, err := s.repo.ListByBarcode(ctx, barcode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing adjustment entries")
	}
	return entries, nil
}

func (s *service) reject(ctx context.Context, err error) error {
	s.metrics.IncRejected(rejectionReason(err))
	if s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("adjustment rejected: %v", err))
	}
	return err
}

func insufficientStock(barcode string, stock, delta int) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeInsufficientStock,
		fmt.Sprintf("adjustment of %d would drive stock of %s negative", delta, barcode)).
		WithDetails(map[string]any{
			"barcode":        barcode,
			"stock":          stock,
			"quantity_delta": delta,
		})
}

func rejectionReason(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return "internal"
	}
	switch typed.Code() {
	case pkgerrors.CodeInsufficientStock:
		return "insufficient_stock"
	case pkgerrors.CodeNotFound:
		return "not_found"
	case pkgerrors.CodeValidation:
		return "validation"
	default:
		return "dependency"
	}
}
