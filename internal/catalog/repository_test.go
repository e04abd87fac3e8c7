package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/warescan/warescan-backend/pkg/db"
	"github.com/warescan/warescan-backend/pkg/db/models"
)

func mustCreateProduct(t *testing.T, repo *Repository, barcode, name, warehouse string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Barcode:      barcode,
		Name:         name,
		Stock:        stock,
		Warehouse:    warehouse,
		MinimumStock: models.DefaultMinimumStock,
		LastChanged:  time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), product); err != nil {
		t.Fatalf("create product %s: %v", barcode, err)
	}
	return product
}

func TestRepositoryCreateRejectsDuplicateBarcode(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	mustCreateProduct(t, repo, "12345", "Schrauben M3", "Werkstatt", 10)

	err := repo.Create(context.Background(), &models.Product{
		Barcode: "12345",
		Name:    "Other",
	})
	if err == nil {
		t.Fatal("expected duplicate barcode to fail")
	}
	if !db.IsUniqueViolation(err, "products_pkey") {
		t.Fatalf("expected unique violation, got %v", err)
	}
}

func TestRepositoryFindByBarcode(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	mustCreateProduct(t, repo, "12345", "Schrauben M3", "Werkstatt", 10)

	product, err := repo.FindByBarcode(context.Background(), "12345")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if product.Name != "Schrauben M3" || product.Stock != 10 {
		t.Fatalf("unexpected product %+v", product)
	}

	if _, err := repo.FindByBarcode(context.Background(), "00000"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestRepositoryListFiltersByWarehouse(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	mustCreateProduct(t, repo, "12345", "Schrauben M3", "Werkstatt", 10)
	mustCreateProduct(t, repo, "99999", "Muttern M5", "Werkstatt", 15)
	mustCreateProduct(t, repo, "55555", "Kabelbinder", "Lager 2", 100)

	all, err := repo.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 products, got %d", len(all))
	}

	filtered, err := repo.List(context.Background(), "Werkstatt")
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if len(filtered) != 2 {
		t.Fatalf("expected 2 products in Werkstatt, got %d", len(filtered))
	}
	for _, product := range filtered {
		if product.Warehouse != "Werkstatt" {
			t.Fatalf("unexpected warehouse %q", product.Warehouse)
		}
	}

	// the filter is exact, not fuzzy
	none, err := repo.List(context.Background(), "werkstatt")
	if err != nil {
		t.Fatalf("case-sensitive list failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected exact-match filter, got %d rows", len(none))
	}
}

func TestRepositoryAdjustStockGuardsNegative(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	mustCreateProduct(t, repo, "12345", "Schrauben M3", "Werkstatt", 10)

	ctx := context.Background()
	now := time.Now().UTC()

	affected, err := repo.AdjustStock(ctx, "12345", -3, now)
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}

	product, err := repo.FindByBarcode(ctx, "12345")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if product.Stock != 7 {
		t.Fatalf("expected stock 7, got %d", product.Stock)
	}

	affected, err = repo.AdjustStock(ctx, "12345", -8, now)
	if err != nil {
		t.Fatalf("guarded adjust failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected guard to reject, got %d rows affected", affected)
	}

	product, err = repo.FindByBarcode(ctx, "12345")
	if err != nil {
		t.Fatalf("reload after reject failed: %v", err)
	}
	if product.Stock != 7 {
		t.Fatalf("stock changed after rejected adjustment: %d", product.Stock)
	}

	affected, err = repo.AdjustStock(ctx, "00000", 1, now)
	if err != nil {
		t.Fatalf("missing-row adjust failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected no rows for unknown barcode, got %d", affected)
	}
}
