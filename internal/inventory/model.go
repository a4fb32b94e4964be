package inventory

import "time"

// InventoryItem is a stocked asset the events team draws on: furniture,
// linens, serving equipment and dry goods.
type InventoryItem struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	Quantity      int        `json:"quantity"`
	Unit          string     `json:"unit"`
	ReorderLevel  int        `json:"reorder_level"`
	Supplier      *string    `json:"supplier,omitempty"`
	LastRestocked *time.Time `json:"last_restocked,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// LowStock reports whether the item has drained to its reorder level.
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.ReorderLevel
}
