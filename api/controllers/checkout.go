package controllers

import (
	"context"
	"net/http"

	"github.com/Hasan-Creations/MobiSwap/api/middleware"
	"github.com/Hasan-Creations/MobiSwap/api/responses"
	"github.com/Hasan-Creations/MobiSwap/api/validators"
	"github.com/Hasan-Creations/MobiSwap/internal/checkout"
	"github.com/Hasan-Creations/MobiSwap/internal/orders"
	pkgerrors "github.com/Hasan-Creations/MobiSwap/pkg/errors"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
)

type orderPlacer interface {
	PlaceOrder(ctx context.Context, sessionID string, in checkout.CheckoutInput) (*orders.OrderDTO, error)
}

// CheckoutPlaceOrder turns the session cart into an order.
func CheckoutPlaceOrder(svc orderPlacer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkout.CheckoutInput
		if err := validators.DecodeJSON(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), middleware.CartSessionIDFromContext(r.Context()), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
