package catalog

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/warescan/warescan-backend/pkg/db/models"
)

// Repository wraps persistence for catalog rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// FindByBarcode loads a single product row.
func (r *Repository) FindByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "barcode = ?", barcode).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products in creation order, optionally filtered by warehouse.
// The warehouse match is exact and case-sensitive.
func (r *Repository) List(ctx context.Context, warehouse string) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Order("created_at ASC, barcode ASC")
	if warehouse != "" {
		query = query.Where("warehouse = ?", warehouse)
	}
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// AdjustStock applies a signed delta with the non-negativity guard pushed into
// the UPDATE itself, so concurrent adjustments on the same barcode serialize
// on the row. Returns the number of rows updated: zero means the row is gone
// or the delta would have driven stock negative.
func (r *Repository) AdjustStock(ctx context.Context, barcode string, delta int, changedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("barcode = ? AND stock + ? >= 0", barcode, delta).
		Updates(map[string]any{
			"stock":        gorm.Expr("stock + ?", delta),
			"last_changed": changedAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
