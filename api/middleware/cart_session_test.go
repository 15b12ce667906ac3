package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartSessionKeepsValidHeader(t *testing.T) {
	var seen string
	handler := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CartSessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set(CartSessionHeader, "shopper-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "shopper-123", seen)
	assert.Equal(t, "shopper-123", rec.Header().Get(CartSessionHeader))
}

func TestCartSessionMintsWhenMissingOrInvalid(t *testing.T) {
	cases := map[string]string{
		"missing":   "",
		"too long":  strings.Repeat("a", maxCartSessionLen+1),
		"bad chars": "shopper:1/../",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			var seen string
			handler := CartSession(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = CartSessionIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
			if header != "" {
				req.Header.Set(CartSessionHeader, header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			_, err := uuid.Parse(seen)
			require.NoError(t, err)
			assert.Equal(t, seen, rec.Header().Get(CartSessionHeader))
		})
	}
}

func TestCartSessionIDFromContextWithoutValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, CartSessionIDFromContext(req.Context()))
}
