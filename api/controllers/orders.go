package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/poundtowntx/storefront-backend/api/responses"
	"github.com/poundtowntx/storefront-backend/internal/orders"
	"github.com/poundtowntx/storefront-backend/pkg/db/models"
	pkgerrors "github.com/poundtowntx/storefront-backend/pkg/errors"
	"github.com/poundtowntx/storefront-backend/pkg/logger"
)

// OrderFetch serves a recorded order for the confirmation page.
func OrderFetch(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		order, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderView(order))
	}
}

type orderView struct {
	ID              uuid.UUID       `json:"id"`
	ProviderOrderID *int64          `json:"providerOrderId,omitempty"`
	Status          string          `json:"status"`
	RecipientName   string          `json:"recipientName"`
	City            string          `json:"city"`
	StateCode       string          `json:"stateCode"`
	CountryCode     string          `json:"countryCode"`
	Email           string          `json:"email"`
	Subtotal        string          `json:"subtotal"`
	Currency        string          `json:"currency"`
	Items           []orderItemView `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type orderItemView struct {
	ProductID   string `json:"productId"`
	VariantID   int64  `json:"variantId"`
	ProductName string `json:"productName"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int    `json:"quantity"`
	LineTotal   string `json:"lineTotal"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

func newOrderView(order *models.Order) orderView {
	items := make([]orderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		view := orderItemView{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			Size:        item.Size,
			Color:       item.Color,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal.StringFixed(2),
		}
		if item.ImageURL != nil {
			view.ImageURL = *item.ImageURL
		}
		items = append(items, view)
	}
	return orderView{
		ID:              order.ID,
		ProviderOrderID: order.ProviderOrderID,
		Status:          order.Status.String(),
		RecipientName:   order.RecipientName,
		City:            order.City,
		StateCode:       order.StateCode,
		CountryCode:     order.CountryCode,
		Email:           order.Email,
		Subtotal:        order.Subtotal.StringFixed(2),
		Currency:        order.Currency,
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}
