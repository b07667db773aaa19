package cart

import (
	cartsvc "github.com/poundtowntx/storefront-backend/internal/cart"
)

// CartView is the wire shape of a session cart.
type CartView struct {
	Items []ItemView `json:"items"`
	Count int        `json:"count"`
	Total string     `json:"total"`
	Open  bool       `json:"open"`
}

// ItemView mirrors one persisted line item.
type ItemView struct {
	ProductID   string `json:"productId"`
	VariantID   int64  `json:"variantId"`
	ProductName string `json:"productName"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

func newCartView(c *cartsvc.Cart, open bool) CartView {
	items := c.Items()
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, ItemView{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			Size:        item.Size,
			Color:       item.Color,
			Price:       item.Price.StringFixed(2),
			Quantity:    item.Quantity,
			ImageURL:    item.ImageURL,
		})
	}
	return CartView{
		Items: views,
		Count: c.Count(),
		Total: c.Total().StringFixed(2),
		Open:  open,
	}
}
