package printful

import (
	"encoding/json"
	"strconv"
)

// envelope is the wire shape of every Printful v1 response.
type envelope struct {
	Code   int             `json:"code"`
	Result json.RawMessage `json:"result"`
	Error  *apiError       `json:"error,omitempty"`
}

type apiError struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// SyncProduct is a store product summary as returned by GET /store/products.
type SyncProduct struct {
	ID           int64  `json:"id"`
	ExternalID   string `json:"external_id"`
	Name         string `json:"name"`
	Variants     int    `json:"variants"`
	Synced       int    `json:"synced"`
	ThumbnailURL string `json:"thumbnail_url"`
	IsIgnored    bool   `json:"is_ignored"`
}

// ProductDetail pairs a sync product with its purchasable variants.
type ProductDetail struct {
	SyncProduct  SyncProduct   `json:"sync_product"`
	SyncVariants []SyncVariant `json:"sync_variants"`
}

// SyncVariant is one purchasable SKU of a product.
type SyncVariant struct {
	ID          int64           `json:"id"`
	ExternalID  string          `json:"external_id"`
	SyncProduct int64           `json:"sync_product_id"`
	Name        string          `json:"name"`
	Synced      bool            `json:"synced"`
	VariantID   int64           `json:"variant_id"`
	RetailPrice string          `json:"retail_price"`
	Currency    string          `json:"currency"`
	SKU         *string         `json:"sku"`
	Files       []File          `json:"files"`
	Options     []VariantOption `json:"options"`
}

// File is a preview or print file attached to a variant.
type File struct {
	ID           int64  `json:"id"`
	Type         string `json:"type"`
	URL          string `json:"url"`
	PreviewURL   string `json:"preview_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Visible      bool   `json:"visible"`
}

// VariantOption is a single option key/value pair (e.g. size, color).
// Values arrive as either strings or numbers on the wire.
type VariantOption struct {
	ID    string      `json:"id"`
	Value OptionValue `json:"value"`
}

// OptionValue normalizes string and numeric option values to a string.
type OptionValue string

func (v *OptionValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = OptionValue(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = OptionValue(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

func (v OptionValue) String() string {
	return string(v)
}

// Recipient is the shipping destination for an order or rate request.
type Recipient struct {
	Name        string `json:"name,omitempty"`
	Address1    string `json:"address1,omitempty"`
	Address2    string `json:"address2,omitempty"`
	City        string `json:"city,omitempty"`
	StateCode   string `json:"state_code,omitempty"`
	CountryCode string `json:"country_code"`
	Zip         string `json:"zip,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// OrderItem references one fulfillable variant and a quantity.
type OrderItem struct {
	SyncVariantID int64 `json:"sync_variant_id"`
	Quantity      int   `json:"quantity"`
}

// OrderRequest is the POST /orders payload.
type OrderRequest struct {
	Recipient Recipient   `json:"recipient"`
	Items     []OrderItem `json:"items"`
}

// Order is the provider's view of a created or confirmed order.
type Order struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"external_id"`
	Status     string    `json:"status"`
	Created    int64     `json:"created"`
	Updated    int64     `json:"updated"`
	Recipient  Recipient `json:"recipient"`
	Costs      *Costs    `json:"costs,omitempty"`
}

// Costs carries the provider-calculated charges for an order.
type Costs struct {
	Currency string `json:"currency"`
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

// ShippingRateRequest is the POST /shipping/rates payload.
type ShippingRateRequest struct {
	Recipient Recipient   `json:"recipient"`
	Items     []OrderItem `json:"items,omitempty"`
}

// ShippingRate is one available shipping option with its cost.
type ShippingRate struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Rate            string `json:"rate"`
	Currency        string `json:"currency"`
	MinDeliveryDays int    `json:"minDeliveryDays"`
	MaxDeliveryDays int    `json:"maxDeliveryDays"`
}
