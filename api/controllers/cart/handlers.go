package cart

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/poundtowntx/storefront-backend/api/middleware"
	"github.com/poundtowntx/storefront-backend/api/responses"
	"github.com/poundtowntx/storefront-backend/api/validators"
	cartsvc "github.com/poundtowntx/storefront-backend/internal/cart"
	"github.com/poundtowntx/storefront-backend/internal/catalog"
	pkgerrors "github.com/poundtowntx/storefront-backend/pkg/errors"
	"github.com/poundtowntx/storefront-backend/pkg/logger"
)

// CartFetch returns the session's current cart.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(cart, false))
	}
}

// CartAddItem resolves the selection to a variant and merges one unit into
// the cart.
func CartAddItem(svc cartsvc.Service, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resolved, err := catalogSvc.ResolveVariant(r.Context(), payload.ProductID, catalog.Selection{
			Size:  payload.Size,
			Color: payload.Color,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := newLineItem(payload.ProductID, resolved)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.Add(r.Context(), sessionID, item)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newCartView(cart, payload.Open))
	}
}

// CartUpdateItem sets a line item's quantity; zero removes it.
func CartUpdateItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variantID, err := variantIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload UpdateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.SetQuantity(r.Context(), sessionID, variantID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(cart, false))
	}
}

// CartRemoveItem deletes a line item. Removing an absent variant succeeds.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variantID, err := variantIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.Remove(r.Context(), sessionID, variantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(cart, false))
	}
}

// CartClear empties the session's cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.Clear(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(cart, false))
	}
}

func newLineItem(productID string, resolved *catalog.ResolvedVariant) (cartsvc.LineItem, error) {
	price, err := decimal.NewFromString(resolved.Variant.RetailPrice)
	if err != nil {
		return cartsvc.LineItem{}, pkgerrors.Wrap(pkgerrors.CodeInconsistency, err, "variant has no usable price")
	}

	size := resolved.Selection.Size
	if len(resolved.View.Options.Sizes) == 0 {
		size = cartsvc.OptionNotApplicable
	}
	color := resolved.Selection.Color
	if len(resolved.View.Options.Colors) == 0 {
		color = cartsvc.OptionNotApplicable
	}

	return cartsvc.LineItem{
		ProductID:   productID,
		VariantID:   resolved.Variant.ID,
		ProductName: resolved.View.Product.Name,
		Size:        size,
		Color:       color,
		Price:       price,
		ImageURL:    catalog.PreviewImage(resolved.Variant),
	}, nil
}

func sessionFromContext(r *http.Request) (string, error) {
	sessionID := middleware.CartSessionFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "cart session missing")
	}
	return sessionID, nil
}

func variantIDParam(r *http.Request) (int64, error) {
	variantID, err := strconv.ParseInt(chi.URLParam(r, "variantId"), 10, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant id")
	}
	return variantID, nil
}
