package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// OptionNotApplicable is the sentinel stored for an option axis a product
// does not have.
const OptionNotApplicable = "N/A"

// LineItem is one cart entry: a variant reference plus a snapshot of its
// display attributes taken at add time. Catalog changes after the add do not
// retroactively alter the entry.
type LineItem struct {
	ProductID   string          `json:"productId"`
	VariantID   int64           `json:"variantId"`
	ProductName string          `json:"productName"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// Cart holds the ordered line items for one browsing session. It is not safe
// for concurrent mutation; callers operate on it sequentially per session.
type Cart struct {
	items []LineItem
	open  bool
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// FromItems rebuilds a cart from a persisted item list, preserving order.
func FromItems(items []LineItem) *Cart {
	c := &Cart{items: make([]LineItem, len(items))}
	copy(c.items, items)
	return c
}

// Add merges the item into the cart. An existing entry for the same variant
// gets its quantity incremented by one and keeps its original snapshot
// fields; otherwise the item is appended with quantity one.
func (c *Cart) Add(item LineItem) {
	for i := range c.items {
		if c.items[i].VariantID == item.VariantID {
			c.items[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	c.items = append(c.items, item)
}

// Remove deletes the entry for the variant. Absent variants are a no-op.
func (c *Cart) Remove(variantID int64) {
	for i := range c.items {
		if c.items[i].VariantID == variantID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the entry's quantity outright. A quantity of zero or less
// removes the entry. Absent variants are a no-op.
func (c *Cart) SetQuantity(variantID int64, quantity int) {
	if quantity <= 0 {
		c.Remove(variantID)
		return
	}
	for i := range c.items {
		if c.items[i].VariantID == variantID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns the line items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Count is the sum of all quantities.
func (c *Cart) Count() int {
	sum := 0
	for _, item := range c.items {
		sum += item.Quantity
	}
	return sum
}

// Total is the sum of unit price times quantity over all items. Totals are
// always derived from the items, never stored.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Open marks the cart drawer visible. Presentation state only; not persisted.
func (c *Cart) Open() {
	c.open = true
}

// Close marks the cart drawer hidden.
func (c *Cart) Close() {
	c.open = false
}

// IsOpen reports the drawer visibility flag.
func (c *Cart) IsOpen() bool {
	return c.open
}

// MarshalItems serializes the item list for persistence. An empty cart
// serializes to an empty list, not an absence of state.
func (c *Cart) MarshalItems() ([]byte, error) {
	items := c.items
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(items)
}

// UnmarshalItems parses a persisted item list.
func UnmarshalItems(data []byte) ([]LineItem, error) {
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}
