package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/poundtowntx/storefront-backend/pkg/enums"
)

// Order is the local record of an order submitted to the fulfillment provider.
// The recipient and line items are snapshots taken at checkout time.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	ProviderOrderID *int64            `gorm:"column:provider_order_id"`
	Status          enums.OrderStatus `gorm:"column:status;not null;default:'draft'"`
	RecipientName   string            `gorm:"column:recipient_name;not null"`
	Address1        string            `gorm:"column:address1;not null"`
	Address2        *string           `gorm:"column:address2"`
	City            string            `gorm:"column:city;not null"`
	StateCode       string            `gorm:"column:state_code;not null"`
	CountryCode     string            `gorm:"column:country_code;not null"`
	Zip             string            `gorm:"column:zip;not null"`
	Email           string            `gorm:"column:email;not null"`
	Phone           *string           `gorm:"column:phone"`
	Subtotal        decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Currency        string            `gorm:"column:currency;not null;default:'USD'"`
	Items           []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
