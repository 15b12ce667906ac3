package advisory

// ValuationRequest describes a used phone offered for trade-in.
type ValuationRequest struct {
	Model     string  `json:"model" validate:"notblank"`
	Condition string  `json:"condition" validate:"notblank"`
	Storage   *string `json:"storage,omitempty"`
	Issues    *string `json:"issues,omitempty"`
}

// ValuationResult is a price range in PKR with a one-sentence rationale.
type ValuationResult struct {
	EstimatedValueLow  float64 `json:"estimatedValueLow"`
	EstimatedValueHigh float64 `json:"estimatedValueHigh"`
	Explanation        string  `json:"explanation"`
}

type RecommendationRequest struct {
	Query string `json:"query" validate:"notblank"`
}

// RecommendationResult holds up to three product ids as the model returned
// them; extra ids past the third are dropped. Recommendations is never nil.
type RecommendationResult struct {
	Recommendations []string `json:"recommendations"`
}

const (
	maxRecommendations = 3

	valuationFailedMessage = "Could not generate a valuation for the device."
	recommendFailedMessage = "Recommendation service is unavailable."
)
