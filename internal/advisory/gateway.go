package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Hasan-Creations/MobiSwap/internal/catalog"
	pkgerrors "github.com/Hasan-Creations/MobiSwap/pkg/errors"
	"github.com/Hasan-Creations/MobiSwap/pkg/llm"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
	"github.com/Hasan-Creations/MobiSwap/pkg/metrics"
	"github.com/Hasan-Creations/MobiSwap/pkg/validation"
)

const (
	opEstimateValue   = "estimate_value"
	opRecommendPhones = "recommend_phones"
)

// ProductSource lists the catalog the recommender chooses from.
type ProductSource interface {
	All() []catalog.Product
}

// Gateway runs the two model-backed advisory flows. It holds no per-call
// state; each call makes exactly one generator request.
type Gateway struct {
	gen      llm.Generator
	products ProductSource
	log      *logger.Logger
	metrics  *metrics.AdvisoryMetrics
}

func NewGateway(gen llm.Generator, products ProductSource, logg *logger.Logger, m *metrics.AdvisoryMetrics) *Gateway {
	if gen == nil {
		gen = llm.Unavailable{}
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Gateway{gen: gen, products: products, log: logg, metrics: m}
}

// EstimateValue asks the model for a PKR price range for a used device.
// Any failure to obtain a well-formed result is a CodeGenerationFailed error.
func (g *Gateway) EstimateValue(ctx context.Context, req ValuationRequest) (*ValuationResult, error) {
	start := time.Now()
	ctx = g.log.WithOperation(ctx, opEstimateValue)

	req.Model = strings.TrimSpace(req.Model)
	req.Condition = strings.TrimSpace(req.Condition)
	if err := validation.Struct(req); err != nil {
		g.metrics.Observe(opEstimateValue, metrics.OutcomeInvalidInput, time.Since(start))
		return nil, err
	}

	raw, err := g.gen.Generate(ctx, valuationPrompt(req))
	if err != nil && !errors.Is(err, llm.ErrNoOutput) {
		g.metrics.Observe(opEstimateValue, metrics.OutcomeFailed, time.Since(start))
		g.log.Error(ctx, "valuation generation failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeGenerationFailed, err, valuationFailedMessage)
	}

	result, decodeErr := decodeValuation(raw)
	if err != nil || decodeErr != nil {
		cause := err
		if cause == nil {
			cause = decodeErr
		}
		g.metrics.Observe(opEstimateValue, metrics.OutcomeNoOutput, time.Since(start))
		g.log.Warn(g.log.WithField(ctx, "reason", cause.Error()), "valuation produced no usable output")
		return nil, pkgerrors.Wrap(pkgerrors.CodeGenerationFailed, cause, valuationFailedMessage)
	}

	g.metrics.Observe(opEstimateValue, metrics.OutcomeSucceeded, time.Since(start))
	return result, nil
}

// RecommendPhones asks the model for up to three catalog ids matching the
// shopper's query. No usable output is a successful empty result; ids are
// returned verbatim and may not resolve against the live catalog.
func (g *Gateway) RecommendPhones(ctx context.Context, req RecommendationRequest) (*RecommendationResult, error) {
	start := time.Now()
	ctx = g.log.WithOperation(ctx, opRecommendPhones)

	req.Query = strings.TrimSpace(req.Query)
	if err := validation.Struct(req); err != nil {
		g.metrics.Observe(opRecommendPhones, metrics.OutcomeInvalidInput, time.Since(start))
		return nil, err
	}

	var products []catalog.Product
	if g.products != nil {
		products = g.products.All()
	}
	if products == nil {
		products = []catalog.Product{}
	}
	productsJSON, err := json.Marshal(products)
	if err != nil {
		g.metrics.Observe(opRecommendPhones, metrics.OutcomeFailed, time.Since(start))
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode catalog")
	}

	raw, err := g.gen.Generate(ctx, recommendationPrompt(req.Query, productsJSON))
	if err != nil && !errors.Is(err, llm.ErrNoOutput) {
		g.metrics.Observe(opRecommendPhones, metrics.OutcomeFailed, time.Since(start))
		g.log.Error(ctx, "recommendation generation failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, recommendFailedMessage)
	}

	ids, decodeErr := decodeRecommendations(raw)
	if err != nil || decodeErr != nil {
		reason := "no output"
		if decodeErr != nil && err == nil {
			reason = decodeErr.Error()
		}
		g.metrics.Observe(opRecommendPhones, metrics.OutcomeNoOutput, time.Since(start))
		g.log.Warn(g.log.WithField(ctx, "reason", reason), "recommendation produced no usable output")
		return &RecommendationResult{Recommendations: []string{}}, nil
	}

	g.metrics.Observe(opRecommendPhones, metrics.OutcomeSucceeded, time.Since(start))
	return &RecommendationResult{Recommendations: ids}, nil
}

type valuationPayload struct {
	EstimatedValueLow  *float64 `json:"estimatedValueLow"`
	EstimatedValueHigh *float64 `json:"estimatedValueHigh"`
	Explanation        *string  `json:"explanation"`
}

func decodeValuation(raw json.RawMessage) (*ValuationResult, error) {
	var payload valuationPayload
	if err := decodeStrict(raw, &payload); err != nil {
		return nil, err
	}
	if payload.EstimatedValueLow == nil || payload.EstimatedValueHigh == nil || payload.Explanation == nil {
		return nil, errors.New("valuation is missing required fields")
	}
	if strings.TrimSpace(*payload.Explanation) == "" {
		return nil, errors.New("valuation explanation is empty")
	}
	return &ValuationResult{
		EstimatedValueLow:  *payload.EstimatedValueLow,
		EstimatedValueHigh: *payload.EstimatedValueHigh,
		Explanation:        *payload.Explanation,
	}, nil
}

type recommendationPayload struct {
	Recommendations *[]string `json:"recommendations"`
}

func decodeRecommendations(raw json.RawMessage) ([]string, error) {
	var payload recommendationPayload
	if err := decodeStrict(raw, &payload); err != nil {
		return nil, err
	}
	if payload.Recommendations == nil {
		return nil, errors.New("recommendations missing")
	}
	ids := *payload.Recommendations
	if len(ids) > maxRecommendations {
		ids = ids[:maxRecommendations]
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

// decodeStrict rejects empty payloads, unknown keys and trailing data.
func decodeStrict(raw json.RawMessage, dest any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return llm.ErrNoOutput
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("decode model output: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("unexpected data after model output")
	}
	return nil
}
