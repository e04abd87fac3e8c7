package models

import "time"

// DefaultMinimumStock is applied when a product is created without an
// explicit threshold.
const DefaultMinimumStock = 20

// Product is one catalog row per physical article. The barcode is the primary
// key and never changes after creation; stock only moves through the
// adjustment ledger.
type Product struct {
	Barcode      string    `gorm:"column:barcode;primaryKey" json:"barcode"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Stock        int       `gorm:"column:stock;not null;default:0" json:"stock"`
	Warehouse    string    `gorm:"column:warehouse" json:"warehouse"`
	MinimumStock int       `gorm:"column:minimum_stock;not null;default:20" json:"minimum_stock"`
	LastChanged  time.Time `gorm:"column:last_changed" json:"last_changed"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
