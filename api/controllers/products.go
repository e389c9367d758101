package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/brightcart/storefront-backend/api/middleware"
	"github.com/brightcart/storefront-backend/api/responses"
	"github.com/brightcart/storefront-backend/api/validators"
	"github.com/brightcart/storefront-backend/internal/catalog"
	"github.com/brightcart/storefront-backend/internal/history"
	pkgerrors "github.com/brightcart/storefront-backend/pkg/errors"
	"github.com/brightcart/storefront-backend/pkg/logger"
)

// ProductsList returns published products, optionally filtered by category,
// tag or a name query.
func ProductsList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := catalog.ListFilter{
			Category: validators.SanitizeString(r.URL.Query().Get("category"), 128),
			Tag:      validators.SanitizeString(r.URL.Query().Get("tag"), 64),
			Query:    validators.SanitizeString(r.URL.Query().Get("q"), 128),
			Limit:    limit,
			Offset:   offset,
		}

		products, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

// ProductBySlug returns a published product and, when the request carries a
// cart session, records the view in the browsing history.
func ProductBySlug(svc catalog.Service, views *history.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "slug is required"))
			return
		}

		product, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if views != nil {
			sessionID := middleware.CartSessionFromContext(r.Context())
			if sessionID == "" {
				sessionID = strings.TrimSpace(r.Header.Get("X-Cart-Session"))
			}
			if sessionID != "" {
				if err := views.Record(r.Context(), sessionID, product.ID); err != nil && logg != nil {
					logg.Warn(r.Context(), "history.record failed")
				}
			}
		}

		responses.WriteSuccess(w, map[string]any{"product": product})
	}
}
