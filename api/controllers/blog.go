package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/poundtowntx/storefront-backend/api/responses"
	"github.com/poundtowntx/storefront-backend/internal/blog"
	pkgerrors "github.com/poundtowntx/storefront-backend/pkg/errors"
	"github.com/poundtowntx/storefront-backend/pkg/logger"
)

// BlogList serves the published posts, newest first.
func BlogList(svc blog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "blog service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.List(r.Context()))
	}
}

// BlogPost serves one post by slug.
func BlogPost(svc blog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "blog service unavailable"))
			return
		}

		slug := chi.URLParam(r, "slug")
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "post slug is required"))
			return
		}

		post, err := svc.Get(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, post)
	}
}
