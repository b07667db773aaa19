package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/poundtowntx/storefront-backend/internal/cart"
	"github.com/poundtowntx/storefront-backend/pkg/db/models"
	"github.com/poundtowntx/storefront-backend/pkg/enums"
	pkgerrors "github.com/poundtowntx/storefront-backend/pkg/errors"
	"github.com/poundtowntx/storefront-backend/pkg/logger"
	"github.com/poundtowntx/storefront-backend/pkg/printful"
)

// RecipientInput is the validated shipping destination from the checkout form.
type RecipientInput struct {
	Name        string
	Address1    string
	Address2    string
	City        string
	StateCode   string
	CountryCode string
	Zip         string
	Email       string
	Phone       string
}

type providerClient interface {
	CreateOrder(ctx context.Context, req printful.OrderRequest) (*printful.Order, error)
	ConfirmOrder(ctx context.Context, orderID int64) (*printful.Order, error)
}

type cartReader interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
	Clear(ctx context.Context, sessionID string) (*cart.Cart, error)
}

type orderWriter interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
}

// Service submits the session's cart to the fulfillment provider.
type Service interface {
	Submit(ctx context.Context, sessionID string, recipient RecipientInput) (*models.Order, error)
}

type service struct {
	provider providerClient
	carts    cartReader
	orders   orderWriter
	logg     *logger.Logger
}

// NewService wires the checkout flow.
func NewService(provider providerClient, carts cartReader, orders orderWriter, logg *logger.Logger) (Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider client required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{
		provider: provider,
		carts:    carts,
		orders:   orders,
		logg:     logg,
	}, nil
}

// Submit creates a draft order from the cart, confirms it best-effort,
// records it locally, and clears the cart. A failed external call leaves the
// cart untouched.
func (s *service) Submit(ctx context.Context, sessionID string, recipient RecipientInput) (*models.Order, error) {
	sessionCart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sessionCart.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	items := sessionCart.Items()
	request := printful.OrderRequest{
		Recipient: toProviderRecipient(recipient),
		Items:     make([]printful.OrderItem, 0, len(items)),
	}
	for _, item := range items {
		request.Items = append(request.Items, printful.OrderItem{
			SyncVariantID: item.VariantID,
			Quantity:      item.Quantity,
		})
	}

	created, err := s.provider.CreateOrder(ctx, request)
	if err != nil {
		return nil, err
	}

	status := enums.OrderStatusConfirmed
	if _, err := s.provider.ConfirmOrder(ctx, created.ID); err != nil {
		// The draft exists at the provider and can be confirmed manually, so
		// checkout still succeeds.
		status = enums.OrderStatusDraft
		if s.logg != nil {
			errCtx := s.logg.WithField(ctx, "provider_order_id", created.ID)
			s.logg.Warn(errCtx, "order created but not confirmed")
		}
	}

	record := buildOrderRecord(created.ID, status, recipient, sessionCart)
	saved, err := s.orders.Create(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record order")
	}

	if _, err := s.carts.Clear(ctx, sessionID); err != nil {
		// The order went through; a stale cart is recoverable on next load.
		if s.logg != nil {
			s.logg.Warn(s.logg.WithCartSession(ctx, sessionID), "failed to clear cart after checkout")
		}
	}

	return saved, nil
}

func buildOrderRecord(providerOrderID int64, status enums.OrderStatus, recipient RecipientInput, sessionCart *cart.Cart) *models.Order {
	items := sessionCart.Items()
	record := &models.Order{
		ProviderOrderID: &providerOrderID,
		Status:          status,
		RecipientName:   recipient.Name,
		Address1:        recipient.Address1,
		Address2:        optional(recipient.Address2),
		City:            recipient.City,
		StateCode:       recipient.StateCode,
		CountryCode:     recipient.CountryCode,
		Zip:             recipient.Zip,
		Email:           recipient.Email,
		Phone:           optional(recipient.Phone),
		Subtotal:        sessionCart.Total(),
		Currency:        "USD",
		Items:           make([]models.OrderLineItem, 0, len(items)),
	}
	for _, item := range items {
		record.Items = append(record.Items, models.OrderLineItem{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			Size:        item.Size,
			Color:       item.Color,
			UnitPrice:   item.Price,
			Quantity:    item.Quantity,
			LineTotal:   item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
			ImageURL:    optional(item.ImageURL),
		})
	}
	return record
}

func toProviderRecipient(recipient RecipientInput) printful.Recipient {
	return printful.Recipient{
		Name:        recipient.Name,
		Address1:    recipient.Address1,
		Address2:    recipient.Address2,
		City:        recipient.City,
		StateCode:   recipient.StateCode,
		CountryCode: recipient.CountryCode,
		Zip:         recipient.Zip,
		Email:       recipient.Email,
		Phone:       recipient.Phone,
	}
}

func optional(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
