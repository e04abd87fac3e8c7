package lowstock

// Warning is the message attached to every low-stock product. The wording is
// fixed and matches what the warehouse terminals already display.
const Warning = "Mindestbestand unterschritten"

// Signal is the derived low-stock state for a single product. It is never
// persisted; callers recompute it from the current stock level on every read.
type Signal struct {
	IsLowStock bool    `json:"is_low_stock"`
	Warning    *string `json:"warning,omitempty"`
}

// Evaluate compares stock against the product's minimum. Stock exactly at the
// minimum is not low; only stock strictly below it trips the signal.
func Evaluate(stock, minimumStock int) Signal {
	if stock >= minimumStock {
		return Signal{}
	}
	warning := Warning
	return Signal{IsLowStock: true, Warning: &warning}
}
