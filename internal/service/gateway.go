package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/intelvestor/gateway/internal/inference"
	"github.com/intelvestor/gateway/internal/model"
)

// Gateway errors.
var (
	ErrInvalidHorizon = errors.New("horizon must be an integer")
	ErrMissingSymbols = errors.New("symbols query parameter is required")

	// ErrUpstreamFailure matches any failed inference call, whatever the cause.
	ErrUpstreamFailure = inference.ErrUpstream
)

// InferenceClient is the downstream inference service.
type InferenceClient interface {
	Predict(ctx context.Context, symbol string, horizon int) (*model.InferenceResponse, error)
	NewsSentiment(ctx context.Context, symbol string) (*model.InferenceResponse, error)
	MarketOverview(ctx context.Context) (model.OpaqueJSON, error)
	PortfolioAnalysis(ctx context.Context, symbols string) (model.OpaqueJSON, error)
}

// PortfolioSource supplies holdings for the portfolio listing.
type PortfolioSource interface {
	Holdings(ctx context.Context) ([]model.Holding, error)
}

// GatewayService turns inbound requests into inference calls.
// It holds no per-request state; every call goes downstream.
type GatewayService struct {
	client    InferenceClient
	portfolio PortfolioSource
}

// NewGatewayService creates a new GatewayService.
// A nil portfolio source falls back to the demo holdings.
func NewGatewayService(client InferenceClient, portfolio PortfolioSource) *GatewayService {
	if portfolio == nil {
		portfolio = DemoPortfolio{}
	}
	return &GatewayService{
		client:    client,
		portfolio: portfolio,
	}
}

// BuildRequest validates the inputs of op and returns the request to send.
// Nothing is sent downstream when it fails.
func BuildRequest(op model.Operation, rc model.RequestContext) (model.InferenceRequest, error) {
	req := model.InferenceRequest{Operation: op}

	switch op {
	case model.OpPredict:
		symbol, err := ValidateSymbol(rc.Param("symbol"))
		if err != nil {
			return req, err
		}
		horizon, err := parseHorizon(rc.QueryValue("horizon"))
		if err != nil {
			return req, err
		}
		req.Symbol = symbol
		req.Horizon = horizon

	case model.OpSocialInsights:
		symbol, err := ValidateSymbol(rc.Param("symbol"))
		if err != nil {
			return req, err
		}
		req.Symbol = symbol

	case model.OpPortfolioAnalysis:
		symbols := rc.QueryValue("symbols")
		if strings.TrimSpace(symbols) == "" {
			return req, ErrMissingSymbols
		}
		req.Symbols = symbols

	case model.OpMarketOverview:
		// no inputs

	default:
		return req, fmt.Errorf("unknown operation %q", op)
	}

	return req, nil
}

// Predict returns the model's forecast for a symbol.
func (s *GatewayService) Predict(ctx context.Context, rc model.RequestContext) (*model.InferenceResponse, error) {
	req, err := BuildRequest(model.OpPredict, rc)
	if err != nil {
		return nil, err
	}
	return s.client.Predict(withRequestID(ctx, rc), req.Symbol, req.Horizon)
}

// SocialInsights returns news and social sentiment for a symbol, with the
// prediction fields removed.
func (s *GatewayService) SocialInsights(ctx context.Context, rc model.RequestContext) (*model.InferenceResponse, error) {
	req, err := BuildRequest(model.OpSocialInsights, rc)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.NewsSentiment(withRequestID(ctx, rc), req.Symbol)
	if err != nil {
		return nil, err
	}
	return ShapeSocialInsights(resp), nil
}

// MarketOverview returns the inference service's market summary untouched.
func (s *GatewayService) MarketOverview(ctx context.Context, rc model.RequestContext) (model.OpaqueJSON, error) {
	return s.client.MarketOverview(withRequestID(ctx, rc))
}

// PortfolioAnalysis forwards the raw symbol list for analysis. Individual
// symbols are not validated; they travel as one query value.
func (s *GatewayService) PortfolioAnalysis(ctx context.Context, rc model.RequestContext) (model.OpaqueJSON, error) {
	req, err := BuildRequest(model.OpPortfolioAnalysis, rc)
	if err != nil {
		return nil, err
	}
	return s.client.PortfolioAnalysis(withRequestID(ctx, rc), req.Symbols)
}

// Portfolio lists holdings. TotalValue is always zero.
func (s *GatewayService) Portfolio(ctx context.Context, rc model.RequestContext) (*model.Portfolio, error) {
	holdings, err := s.portfolio.Holdings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}
	return &model.Portfolio{
		Holdings:   holdings,
		TotalValue: decimal.Zero,
	}, nil
}

func parseHorizon(raw string) (int, error) {
	if raw == "" {
		return model.DefaultHorizon, nil
	}
	horizon, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidHorizon, raw)
	}
	return horizon, nil
}

func withRequestID(ctx context.Context, rc model.RequestContext) context.Context {
	return inference.ContextWithRequestID(ctx, rc.RequestID)
}
