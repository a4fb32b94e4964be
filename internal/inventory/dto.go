package inventory

type CreateItemRequest struct {
	Name         string  `json:"name" validate:"required"`
	Category     string  `json:"category" validate:"required"`
	Quantity     int     `json:"quantity" validate:"min=0"`
	Unit         string  `json:"unit" validate:"required"`
	ReorderLevel int     `json:"reorder_level" validate:"min=0"`
	Supplier     *string `json:"supplier,omitempty"`
}

// AdjustQuantityRequest moves stock by a signed delta. Restock deltas also
// stamp last_restocked.
type AdjustQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type ListItemsRequest struct {
	Category *string
	LowStock bool
	Limit    int
	Offset   int
}
