package model

import "encoding/json"

// DefaultHorizon is the prediction horizon in days when none is given.
const DefaultHorizon = 30

// Operation identifies a kind of inference call.
type Operation string

const (
	OpPredict           Operation = "predict"
	OpSocialInsights    Operation = "social_insights"
	OpMarketOverview    Operation = "market_overview"
	OpPortfolioAnalysis Operation = "portfolio_analysis"
)

// InferenceRequest describes one call to the inference service.
type InferenceRequest struct {
	Operation Operation
	Symbol    string
	Horizon   int
	Symbols   string // raw comma-joined list, portfolio analysis only
}

// InferenceResponse is the reply of the predict and news-sentiment endpoints.
// Predictions and Shap are loosely typed because the model output varies.
type InferenceResponse struct {
	Symbol      string           `json:"symbol"`
	Horizon     int              `json:"horizon"`
	Predictions []map[string]any `json:"predictions"`
	Shap        []map[string]any `json:"shap"`
	Sentiment   map[string]any   `json:"sentiment"`
	Explanation string           `json:"explanation"`
}

// OpaqueJSON is an inference reply the gateway passes through untouched.
type OpaqueJSON = json.RawMessage
