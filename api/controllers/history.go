package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/brightcart/storefront-backend/api/middleware"
	"github.com/brightcart/storefront-backend/api/responses"
	"github.com/brightcart/storefront-backend/api/validators"
	"github.com/brightcart/storefront-backend/internal/catalog"
	"github.com/brightcart/storefront-backend/internal/history"
	pkgerrors "github.com/brightcart/storefront-backend/pkg/errors"
	"github.com/brightcart/storefront-backend/pkg/logger"
)

// HistoryList returns the session's recently viewed products, newest first.
func HistoryList(views *history.Service, repo *catalog.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.CartSessionFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart session id is required"))
			return
		}

		ids, err := views.List(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := repo.FindByIDs(r.Context(), ids)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load viewed products"))
			return
		}

		// preserve recency ordering from the history list
		byID := make(map[string]catalog.Product, len(products))
		for _, p := range products {
			byID[p.ID.String()] = p
		}
		ordered := make([]catalog.Product, 0, len(ids))
		for _, id := range ids {
			if p, ok := byID[id.String()]; ok {
				ordered = append(ordered, p)
			}
		}

		responses.WriteSuccess(w, map[string]any{"products": ordered})
	}
}

// RecordViewBody marks a product as viewed by the session.
type RecordViewBody struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
}

// HistoryRecord adds a product to the front of the session's history.
func HistoryRecord(views *history.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.CartSessionFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart session id is required"))
			return
		}

		var payload RecordViewBody
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := views.Record(r.Context(), sessionID, payload.ProductID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "recorded"})
	}
}

// HistoryClear drops the session's browsing history.
func HistoryClear(views *history.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.CartSessionFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart session id is required"))
			return
		}

		if err := views.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
