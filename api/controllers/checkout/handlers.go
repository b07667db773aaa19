package checkout

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/poundtowntx/storefront-backend/api/middleware"
	"github.com/poundtowntx/storefront-backend/api/responses"
	"github.com/poundtowntx/storefront-backend/api/validators"
	checkoutsvc "github.com/poundtowntx/storefront-backend/internal/checkout"
	pkgerrors "github.com/poundtowntx/storefront-backend/pkg/errors"
	"github.com/poundtowntx/storefront-backend/pkg/logger"
)

// SubmitRequest is the checkout form payload.
type SubmitRequest struct {
	Name        string `json:"name" validate:"required"`
	Address1    string `json:"address1" validate:"required"`
	Address2    string `json:"address2,omitempty"`
	City        string `json:"city" validate:"required"`
	StateCode   string `json:"stateCode" validate:"required"`
	CountryCode string `json:"countryCode" validate:"required,len=2"`
	Zip         string `json:"zip" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone,omitempty"`
}

// SubmitResponse confirms the recorded order.
type SubmitResponse struct {
	OrderID         uuid.UUID `json:"orderId"`
	ProviderOrderID *int64    `json:"providerOrderId,omitempty"`
	Status          string    `json:"status"`
	Subtotal        string    `json:"subtotal"`
	CreatedAt       time.Time `json:"createdAt"`
}

// CheckoutSubmit forwards the session's cart to the fulfillment provider.
func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.CartSessionFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart session missing"))
			return
		}

		var payload SubmitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Submit(r.Context(), sessionID, checkoutsvc.RecipientInput{
			Name:        payload.Name,
			Address1:    payload.Address1,
			Address2:    payload.Address2,
			City:        payload.City,
			StateCode:   payload.StateCode,
			CountryCode: payload.CountryCode,
			Zip:         payload.Zip,
			Email:       payload.Email,
			Phone:       payload.Phone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, SubmitResponse{
			OrderID:         order.ID,
			ProviderOrderID: order.ProviderOrderID,
			Status:          order.Status.String(),
			Subtotal:        order.Subtotal.StringFixed(2),
			CreatedAt:       order.CreatedAt,
		})
	}
}
