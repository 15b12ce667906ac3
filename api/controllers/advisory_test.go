package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hasan-Creations/MobiSwap/internal/advisory"
	"github.com/Hasan-Creations/MobiSwap/internal/catalog"
	pkgerrors "github.com/Hasan-Creations/MobiSwap/pkg/errors"
	"github.com/Hasan-Creations/MobiSwap/pkg/llm"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
)

func gatewayReturning(out string, err error) *advisory.Gateway {
	gen := llm.GeneratorFunc(func(context.Context, llm.Prompt) (json.RawMessage, error) {
		if err != nil {
			return nil, err
		}
		return json.RawMessage(out), nil
	})
	return advisory.NewGateway(gen, catalog.Default(), logger.Nop(), nil)
}

func TestAdvisoryValuation(t *testing.T) {
	gw := gatewayReturning(`{"estimatedValueLow":50000,"estimatedValueHigh":65000,"explanation":"Clean unit."}`, nil)

	rec := httptest.NewRecorder()
	AdvisoryValuation(gw, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/v1/advisory/valuation",
		`{"model":"Pixel 7","condition":"Good","storage":"128GB"}`, "", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got advisory.ValuationResult
	decodeData(t, rec, &got)
	assert.Equal(t, 50000.0, got.EstimatedValueLow)
	assert.Equal(t, 65000.0, got.EstimatedValueHigh)
	assert.Equal(t, "Clean unit.", got.Explanation)
}

func TestAdvisoryValuationFailures(t *testing.T) {
	t.Run("invalid input", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AdvisoryValuation(gatewayReturning("", nil), testLogger()).ServeHTTP(rec,
			newRequest(http.MethodPost, "/api/v1/advisory/valuation", `{"model":"","condition":"Good"}`, "", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, string(pkgerrors.CodeValidation), errorCode(t, rec))
	})

	t.Run("no output", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AdvisoryValuation(gatewayReturning("", llm.ErrNoOutput), testLogger()).ServeHTTP(rec,
			newRequest(http.MethodPost, "/api/v1/advisory/valuation", `{"model":"Pixel 7","condition":"Fair"}`, "", nil))
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, string(pkgerrors.CodeGenerationFailed), errorCode(t, rec))
		assert.Contains(t, rec.Body.String(), "Could not generate a valuation for the device.")
	})
}

func TestAdvisoryRecommendationsResolvesIDs(t *testing.T) {
	gw := gatewayReturning(`{"recommendations":["5","99","2"]}`, nil)

	rec := httptest.NewRecorder()
	AdvisoryRecommendations(gw, catalog.Default(), testLogger()).ServeHTTP(rec,
		newRequest(http.MethodPost, "/api/v1/advisory/recommendations", `{"query":"cheap phone with good camera"}`, "", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got recommendationsResponse
	decodeData(t, rec, &got)
	assert.Equal(t, []string{"5", "99", "2"}, got.Recommendations)
	require.Len(t, got.Products, 2)
	assert.Equal(t, "5", got.Products[0].ID)
	assert.Equal(t, "2", got.Products[1].ID)
	assert.False(t, got.Fallback)
}

func TestAdvisoryRecommendationsFallsBackToFeatured(t *testing.T) {
	gw := gatewayReturning("", llm.ErrNoOutput)

	rec := httptest.NewRecorder()
	AdvisoryRecommendations(gw, catalog.Default(), testLogger()).ServeHTTP(rec,
		newRequest(http.MethodPost, "/api/v1/advisory/recommendations", `{"query":"gaming"}`, "", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got recommendationsResponse
	decodeData(t, rec, &got)
	assert.Empty(t, got.Recommendations)
	assert.NotNil(t, got.Recommendations)
	assert.True(t, got.Fallback)
	require.Len(t, got.Products, 3)
	for _, p := range got.Products {
		assert.True(t, p.Featured)
	}
}

func TestAdvisoryRecommendationsDependencyFailure(t *testing.T) {
	gw := gatewayReturning("", errors.New("connection reset"))

	rec := httptest.NewRecorder()
	AdvisoryRecommendations(gw, catalog.Default(), testLogger()).ServeHTTP(rec,
		newRequest(http.MethodPost, "/api/v1/advisory/recommendations", `{"query":"gaming"}`, "", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, string(pkgerrors.CodeDependency), errorCode(t, rec))
}

func TestAdvisoryFormCapsRejectBeforeModelCall(t *testing.T) {
	calls := 0
	gen := llm.GeneratorFunc(func(context.Context, llm.Prompt) (json.RawMessage, error) {
		calls++
		return json.RawMessage(`{"recommendations":[]}`), nil
	})
	gw := advisory.NewGateway(gen, catalog.Default(), logger.Nop(), nil)

	rec := httptest.NewRecorder()
	AdvisoryValuation(gw, testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/v1/advisory/valuation",
		`{"model":"`+strings.Repeat("m", 101)+`","condition":"Good"}`, "", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"model"`)

	rec = httptest.NewRecorder()
	AdvisoryRecommendations(gw, catalog.Default(), testLogger()).ServeHTTP(rec, newRequest(http.MethodPost, "/api/v1/advisory/recommendations",
		`{"query":"`+strings.Repeat("q", 1001)+`"}`, "", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"query"`)

	assert.Equal(t, 0, calls)
}
