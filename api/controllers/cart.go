package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Hasan-Creations/MobiSwap/api/middleware"
	"github.com/Hasan-Creations/MobiSwap/api/responses"
	"github.com/Hasan-Creations/MobiSwap/api/validators"
	"github.com/Hasan-Creations/MobiSwap/internal/cart"
	"github.com/Hasan-Creations/MobiSwap/internal/catalog"
	pkgerrors "github.com/Hasan-Creations/MobiSwap/pkg/errors"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
)

type cartSessions interface {
	Get(ctx context.Context, sessionID string) (*cart.Store, error)
}

type productLookup interface {
	GetByID(string) (catalog.Product, bool)
}

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"notblank"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func CartGet(carts cartSessions, logg *logger.Logger) http.HandlerFunc {
	return withCart(carts, logg, func(w http.ResponseWriter, r *http.Request, store *cart.Store) {
		responses.WriteSuccess(w, store.Snapshot())
	})
}

func CartClear(carts cartSessions, logg *logger.Logger) http.HandlerFunc {
	return withCart(carts, logg, func(w http.ResponseWriter, r *http.Request, store *cart.Store) {
		store.Clear(r.Context())
		responses.WriteSuccess(w, store.Snapshot())
	})
}

// CartAddItem adds one unit of a catalog product to the session cart.
func CartAddItem(carts cartSessions, products productLookup, logg *logger.Logger) http.HandlerFunc {
	return withCart(carts, logg, func(w http.ResponseWriter, r *http.Request, store *cart.Store) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := products.GetByID(strings.TrimSpace(payload.ProductID))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		store.Add(r.Context(), product)
		responses.WriteSuccess(w, store.Snapshot())
	})
}

// CartUpdateItem sets the quantity of a line item; zero or less removes it.
func CartUpdateItem(carts cartSessions, logg *logger.Logger) http.HandlerFunc {
	return withCart(carts, logg, func(w http.ResponseWriter, r *http.Request, store *cart.Store) {
		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.UpdateQuantity(r.Context(), chi.URLParam(r, "productId"), *payload.Quantity)
		responses.WriteSuccess(w, store.Snapshot())
	})
}

func CartRemoveItem(carts cartSessions, logg *logger.Logger) http.HandlerFunc {
	return withCart(carts, logg, func(w http.ResponseWriter, r *http.Request, store *cart.Store) {
		store.Remove(r.Context(), chi.URLParam(r, "productId"))
		responses.WriteSuccess(w, store.Snapshot())
	})
}

func withCart(carts cartSessions, logg *logger.Logger, fn func(http.ResponseWriter, *http.Request, *cart.Store)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if carts == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart registry unavailable"))
			return
		}

		store, err := carts.Get(r.Context(), middleware.CartSessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fn(w, r, store)
	}
}
