package controllers

import (
	"net/http"

	"github.com/brightcart/storefront-backend/api/responses"
	"github.com/brightcart/storefront-backend/internal/delivery"
	"github.com/brightcart/storefront-backend/pkg/logger"
)

// DeliveryOptions returns the delivery option menu offered at checkout.
func DeliveryOptions(est *delivery.Estimator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, err := est.Options(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"options": options})
	}
}
