package controllers

import (
	"context"
	"net/http"

	"github.com/poundtowntx/storefront-backend/api/responses"
	"github.com/poundtowntx/storefront-backend/api/validators"
	pkgerrors "github.com/poundtowntx/storefront-backend/pkg/errors"
	"github.com/poundtowntx/storefront-backend/pkg/logger"
	"github.com/poundtowntx/storefront-backend/pkg/printful"
)

type shippingClient interface {
	CalculateShipping(ctx context.Context, req printful.ShippingRateRequest) ([]printful.ShippingRate, error)
}

type shippingRatesRequest struct {
	CountryCode string `json:"countryCode" validate:"required,len=2"`
	StateCode   string `json:"stateCode,omitempty"`
}

// ShippingRates proxies the provider's rate estimate for a destination.
func ShippingRates(client shippingClient, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping client unavailable"))
			return
		}

		var payload shippingRatesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rates, err := client.CalculateShipping(r.Context(), printful.ShippingRateRequest{
			Recipient: printful.Recipient{
				CountryCode: payload.CountryCode,
				StateCode:   payload.StateCode,
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rates)
	}
}
