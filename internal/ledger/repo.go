package ledger

import (
	"context"

	"gorm.io/gorm"

	"github.com/warescan/warescan-backend/pkg/db/models"
)

// Repository manages persistence for adjustment entries. Entries are
// append-only: nothing here updates or deletes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.AdjustmentEntry) error
	ListByBarcode(ctx context.Context, barcode string) ([]models.AdjustmentEntry, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an adjustment repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.AdjustmentEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListByBarcode returns entries newest first. The id tiebreak keeps entries
// sharing a timestamp in reverse insertion order.
func (r *repository) ListByBarcode(ctx context.Context, barcode string) ([]models.AdjustmentEntry, error) {
	var entries []models.AdjustmentEntry
	if err := r.db.WithContext(ctx).
		Where("barcode = ?", barcode).
		Order("timestamp DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
