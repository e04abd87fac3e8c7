package catalog

import (
	"context"
	"time"

	"gorm.io/gorm/clause"

	"github.com/warescan/warescan-backend/pkg/db"
	"github.com/warescan/warescan-backend/pkg/db/models"
	"github.com/warescan/warescan-backend/pkg/logger"
)

// SeedDemoData inserts the demo catalog used by local environments. Existing
// rows are left untouched, so re-running a dev server is safe.
func SeedDemoData(ctx context.Context, client *db.Client, logg *logger.Logger) error {
	now := time.Now().UTC()
	demo := []models.Product{
		{Barcode: "12345", Name: "Schrauben M3", Stock: 10, Warehouse: "Werkstatt", MinimumStock: models.DefaultMinimumStock, LastChanged: now},
		{Barcode: "99999", Name: "Muttern M5", Stock: 15, Warehouse: "Werkstatt", MinimumStock: models.DefaultMinimumStock, LastChanged: now},
	}

	for i := range demo {
		result := client.DB().WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&demo[i])
		if result.Error != nil {
			return result.Error
		}
		if logg != nil && result.RowsAffected > 0 {
			logg.Info(logg.WithBarcode(ctx, demo[i].Barcode), "seeded demo product")
		}
	}
	return nil
}
