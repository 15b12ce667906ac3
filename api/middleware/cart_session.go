package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
)

// CartSessionHeader carries the shopper session between the storefront and the API.
const CartSessionHeader = "X-Cart-Session"

const maxCartSessionLen = 64

// CartSession resolves the shopper session from the request header, minting a
// new one when it is absent or unusable, and echoes it on the response.
func CartSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(CartSessionHeader))
			if !validSessionID(sessionID) {
				sessionID = uuid.NewString()
			}

			w.Header().Set(CartSessionHeader, sessionID)

			ctx := WithCartSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validSessionID(value string) bool {
	if value == "" || len(value) > maxCartSessionLen {
		return false
	}
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
