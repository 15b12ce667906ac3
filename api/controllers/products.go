package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Hasan-Creations/MobiSwap/api/responses"
	"github.com/Hasan-Creations/MobiSwap/api/validators"
	"github.com/Hasan-Creations/MobiSwap/internal/catalog"
	"github.com/Hasan-Creations/MobiSwap/pkg/enums"
	pkgerrors "github.com/Hasan-Creations/MobiSwap/pkg/errors"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
)

type productReader interface {
	Filter(catalog.Filter) []catalog.Product
	GetByID(string) (catalog.Product, bool)
}

// ProductsList returns the catalog, optionally narrowed by featured flag and condition.
func ProductsList(products productReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featured, err := validators.ParseQueryBool(r, "featured")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := catalog.Filter{Featured: featured}
		if raw := validators.SanitizeString(r.URL.Query().Get("condition"), 32); raw != "" {
			condition := enums.ProductCondition(raw)
			if !condition.IsValid() {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "invalid condition").
						WithDetails(map[string]string{"condition": "must be one of New, Used - Like New, Used - Good, Used - Fair"}))
				return
			}
			filter.Condition = condition
		}

		responses.WriteSuccess(w, products.Filter(filter))
	}
}

func ProductDetail(products productReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "productId"))
		product, ok := products.GetByID(id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, product)
	}
}
