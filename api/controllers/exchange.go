package controllers

import (
	"context"
	"net/http"

	"github.com/Hasan-Creations/MobiSwap/api/responses"
	"github.com/Hasan-Creations/MobiSwap/api/validators"
	"github.com/Hasan-Creations/MobiSwap/internal/exchange"
	pkgerrors "github.com/Hasan-Creations/MobiSwap/pkg/errors"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
)

type exchangeSubmitter interface {
	Submit(ctx context.Context, in exchange.SubmitInput) (*exchange.RequestDTO, error)
}

func ExchangeSubmit(svc exchangeSubmitter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "exchange service unavailable"))
			return
		}

		var payload exchange.SubmitInput
		if err := validators.DecodeJSON(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.Submit(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}
