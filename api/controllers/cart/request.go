package cart

// AddItemRequest adds one unit of the product's addressed variant. The
// server resolves the variant from the selection; clients never pick SKUs
// directly.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	// Open controls whether the storefront should pop the cart drawer after
	// the add; echoed back, never persisted.
	Open bool `json:"open,omitempty"`
}

// UpdateItemRequest sets a line item's quantity outright. Zero removes it.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}
