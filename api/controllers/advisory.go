package controllers

import (
	"context"
	"net/http"

	"github.com/Hasan-Creations/MobiSwap/api/responses"
	"github.com/Hasan-Creations/MobiSwap/api/validators"
	"github.com/Hasan-Creations/MobiSwap/internal/advisory"
	"github.com/Hasan-Creations/MobiSwap/internal/catalog"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
	"github.com/Hasan-Creations/MobiSwap/pkg/validation"
)

const fallbackRecommendations = 3

type valuationEstimator interface {
	EstimateValue(context.Context, advisory.ValuationRequest) (*advisory.ValuationResult, error)
}

type phoneRecommender interface {
	RecommendPhones(context.Context, advisory.RecommendationRequest) (*advisory.RecommendationResult, error)
}

type productResolver interface {
	Resolve(ids []string) []catalog.Product
	Featured(limit int) []catalog.Product
}

// Form-size caps applied at the HTTP edge before a model call is spent.
type valuationBounds struct {
	Model     string `json:"model" validate:"max=100"`
	Condition string `json:"condition" validate:"max=50"`
	Storage   string `json:"storage" validate:"max=50"`
	Issues    string `json:"issues" validate:"max=1000"`
}

type recommendationBounds struct {
	Query string `json:"query" validate:"max=1000"`
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// recommendationsResponse carries the raw ids from the model and the products
// they resolve to. Fallback is set when nothing resolved and featured phones
// are shown instead.
type recommendationsResponse struct {
	Recommendations []string          `json:"recommendations"`
	Products        []catalog.Product `json:"products"`
	Fallback        bool              `json:"fallback"`
}

func AdvisoryValuation(gw valuationEstimator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload advisory.ValuationRequest
		if err := validators.DecodeJSON(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := validation.Struct(valuationBounds{
			Model:     payload.Model,
			Condition: payload.Condition,
			Storage:   deref(payload.Storage),
			Issues:    deref(payload.Issues),
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := gw.EstimateValue(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdvisoryRecommendations asks the model for up to three phone ids and
// resolves them against the live catalog.
func AdvisoryRecommendations(gw phoneRecommender, products productResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload advisory.RecommendationRequest
		if err := validators.DecodeJSON(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := validation.Struct(recommendationBounds{Query: payload.Query}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := gw.RecommendPhones(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := recommendationsResponse{
			Recommendations: result.Recommendations,
			Products:        products.Resolve(result.Recommendations),
		}
		if len(resp.Products) == 0 {
			resp.Products = products.Featured(fallbackRecommendations)
			resp.Fallback = true
		}

		responses.WriteSuccess(w, resp)
	}
}
