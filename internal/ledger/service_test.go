package ledger

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/warescan/warescan-backend/internal/catalog"
	"github.com/warescan/warescan-backend/pkg/db"
	"github.com/warescan/warescan-backend/pkg/db/models"
	pkgerrors "github.com/warescan/warescan-backend/pkg/errors"
)

type ledgerFixture struct {
	svc      Service
	conn     *gorm.DB
	products *catalog.Repository
}

func newFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	conn := openTestDB(t)
	products := catalog.NewRepository(conn)
	svc, err := NewService(db.NewWithConn(conn), NewRepository(conn), products, nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &ledgerFixture{svc: svc, conn: conn, products: products}
}

func (f *ledgerFixture) mustSeedProduct(t *testing.T, barcode string, stock int) {
	t.Helper()
	product := &models.Product{
		Barcode:      barcode,
		Name:         "Schrauben M3",
		Stock:        stock,
		Warehouse:    "Werkstatt",
		MinimumStock: models.DefaultMinimumStock,
		LastChanged:  time.Now().UTC(),
	}
	if err := f.products.Create(context.Background(), product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
}

func (f *ledgerFixture) entryCount(t *testing.T, barcode string) int64 {
	t.Helper()
	var count int64
	if err := f.conn.Model(&models.AdjustmentEntry{}).Where("barcode = ?", barcode).Count(&count).Error; err != nil {
		t.Fatalf("count entries: %v", err)
	}
	return count
}

func TestAdjustIncreasesStockAndLogsEntry(t *testing.T) {
	f := newFixture(t)
	f.mustSeedProduct(t, "12345", 10)

	dto, err := f.svc.Adjust(context.Background(), AdjustInput{Barcode: "12345", QuantityDelta: 5})
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if dto.Stock != 15 {
		t.Fatalf("expected stock 15, got %d", dto.Stock)
	}
	if got := f.entryCount(t, "12345"); got != 1 {
		t.Fatalf("expected exactly 1 entry, got %d", got)
	}

	entries, err := f.svc.History(context.Background(), "12345")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(entries) != 1 || entries[0].QuantityDelta != 5 {
		t.Fatalf("unexpected history %+v", entries)
	}
	if entries[0].Timestamp.IsZero() {
		t.Fatal("entry timestamp not set")
	}
}

func TestAdjustDecreaseShowsNewestFirstInHistory(t *testing.T) {
	f := newFixture(t)
	f.mustSeedProduct(t, "12345", 10)
	ctx := context.Background()

	if _, err := f.svc.Adjust(ctx, AdjustInput{Barcode: "12345", QuantityDelta: 5}); err != nil {
		t.Fatalf("first adjust failed: %v", err)
	}
	dto, err := f.svc.Adjust(ctx, AdjustInput{Barcode: "12345", QuantityDelta: -3})
	if err != nil {
		t.Fatalf("second adjust failed: %v", err)
	}
	if dto.Stock != 12 {
		t.Fatalf("expected stock 12, got %d", dto.Stock)
	}

	entries, err := f.svc.History(ctx, "12345")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].QuantityDelta != -3 || entries[1].QuantityDelta != 5 {
		t.Fatalf("expected newest first, got %+v", entries)
	}
}

func TestAdjustRejectsInsufficientStock(t *testing.T) {
	f := newFixture(t)
	f.mustSeedProduct(t, "12345", 0)
	ctx := context.Background()

	_, err := f.svc.Adjust(ctx, AdjustInput{Barcode: "12345", QuantityDelta: -5})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	product, err := f.products.FindByBarcode(ctx, "12345")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if product.Stock != 0 {
		t.Fatalf("rejected adjustment mutated stock: %d", product.Stock)
	}
	if got := f.entryCount(t, "12345"); got != 0 {
		t.Fatalf("rejected adjustment logged %d entries", got)
	}
}

func TestAdjustToExactlyZeroSucceeds(t *testing.T) {
	f := newFixture(t)
	f.mustSeedProduct(t, "12345", 5)

	dto, err := f.svc.Adjust(context.Background(), AdjustInput{Barcode: "12345", QuantityDelta: -5})
	if err != nil {
		t.Fatalf("adjust to zero failed: %v", err)
	}
	if dto.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", dto.Stock)
	}
}

func TestAdjustZeroDeltaStillLogsEntry(t *testing.T) {
	f := newFixture(t)
	f.mustSeedProduct(t, "12345", 10)

	dto, err := f.svc.Adjust(context.Background(), AdjustInput{Barcode: "12345", QuantityDelta: 0})
	if err != nil {
		t.Fatalf("zero-delta adjust failed: %v", err)
	}
	if dto.Stock != 10 {
		t.Fatalf("expected stock unchanged at 10, got %d", dto.Stock)
	}
	if got := f.entryCount(t, "12345"); got != 1 {
		t.Fatalf("expected zero-delta entry to be logged, got %d entries", got)
	}
}

func TestAdjustUnknownBarcode(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Adjust(context.Background(), AdjustInput{Barcode: "00000", QuantityDelta: 1})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if got := f.entryCount(t, "00000"); got != 0 {
		t.Fatalf("unknown barcode logged %d entries", got)
	}
}

func TestAdjustValidatesBarcode(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Adjust(context.Background(), AdjustInput{Barcode: "   ", QuantityDelta: 1})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdjustUpdatesLastChanged(t *testing.T) {
	f := newFixture(t)
	f.mustSeedProduct(t, "12345", 10)
	ctx := context.Background()

	before, err := f.products.FindByBarcode(ctx, "12345")
	if err != nil {
		t.Fatalf("load before: %v", err)
	}

	time.Sleep(5 * time.Millisecond)
	dto, err := f.svc.Adjust(ctx, AdjustInput{Barcode: "12345", QuantityDelta: 1})
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if !dto.LastChanged.After(before.LastChanged) {
		t.Fatalf("expected last_changed to advance: before=%v after=%v", before.LastChanged, dto.LastChanged)
	}
}

func TestHistoryValidatesBarcode(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.History(context.Background(), "")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	entries, err := f.svc.History(context.Background(), "00000")
	if err != nil {
		t.Fatalf("history for unknown barcode failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(entries))
	}
}
