package models

import "time"

// AdjustmentEntry is one immutable audit record per committed stock
// adjustment. Entries reference products by barcode without a live foreign
// key, so history survives even if a product row disappears later.
type AdjustmentEntry struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Barcode       string    `gorm:"column:barcode;not null;index" json:"barcode"`
	QuantityDelta int       `gorm:"column:quantity_delta;not null" json:"quantity_delta"`
	Timestamp     time.Time `gorm:"column:timestamp;not null" json:"timestamp"`
}
