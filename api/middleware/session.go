package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-core/api/responses"
	"github.com/angelmondragon/storefront-core/api/validators"
	"github.com/angelmondragon/storefront-core/pkg/logger"
)

const SessionIDHeader = "X-Session-Id"

// Session resolves the cart/notification session from X-Session-Id, minting a new
// one when the header is absent. The resolved ID is echoed on the response.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(SessionIDHeader))
			if sessionID == "" {
				sessionID = uuid.NewString()
			} else if err := validators.ValidateVar("session_id", sessionID, "uuid4"); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			w.Header().Set(SessionIDHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
