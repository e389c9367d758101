package middleware

import (
	"net/http"
	"strings"

	"github.com/brightcart/storefront-backend/api/responses"
	pkgerrors "github.com/brightcart/storefront-backend/pkg/errors"
	"github.com/brightcart/storefront-backend/pkg/logger"
)

const cartSessionHeader = "X-Cart-Session"

// CartSession resolves the cart session id for the request: the
// X-Cart-Session header when present, otherwise the authenticated user id.
// Requests carrying neither are rejected.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(cartSessionHeader))
			if sessionID == "" {
				sessionID = UserIDFromContext(r.Context())
			}
			if sessionID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart session id is required"))
				return
			}

			ctx := WithCartSession(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithCartSession(ctx, sessionID)
			}

			w.Header().Set(cartSessionHeader, sessionID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
