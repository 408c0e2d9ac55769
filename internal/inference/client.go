// Package inference is the HTTP client for the downstream ML inference service.
//
// Each call is issued once: there are no retries, and every failure, whether
// transport, timeout, non-2xx status or undecodable body, comes back as an
// *Error matching ErrUpstream.
package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/oklog/ulid/v2"

	"github.com/intelvestor/gateway/internal/metrics"
	"github.com/intelvestor/gateway/internal/model"
)

// DefaultBaseURL is the inference service address inside the compose network.
const DefaultBaseURL = "http://ml:8000"

// Endpoint paths on the inference service.
const (
	PathPredict           = "/ml/predict"
	PathNewsSentiment     = "/ml/news-sentiment/{symbol}"
	PathMarketOverview    = "/ml/market-overview"
	PathPortfolioAnalysis = "/ml/portfolio-analysis"
)

// RequestIDHeader carries the correlation id on outbound calls.
const RequestIDHeader = "X-Request-ID"

// Config configures a Client.
type Config struct {
	BaseURL        string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	Logger         *slog.Logger
	Metrics        metrics.Recorder
}

// Client issues requests to the inference service.
type Client struct {
	rest    *resty.Client
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewClient creates a Client. An empty BaseURL falls back to DefaultBaseURL.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.NewNoop()
	}

	rest := resty.NewWithClient(newHTTPClient(cfg.ConnectTimeout, cfg.ReadTimeout)).
		SetBaseURL(baseURL).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "intelvestor-gateway/1.0")

	return &Client{
		rest:    rest,
		logger:  logger.With("component", "inference.client"),
		metrics: recorder,
	}
}

// BaseURL returns the configured inference service address.
func (c *Client) BaseURL() string {
	return c.rest.BaseURL
}

// Predict calls POST /ml/predict with symbol and horizon as query parameters.
func (c *Client) Predict(ctx context.Context, symbol string, horizon int) (*model.InferenceResponse, error) {
	req := c.newRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParams(map[string]string{
			"symbol":  symbol,
			"horizon": strconv.Itoa(horizon),
		})

	var out model.InferenceResponse
	if err := c.do(ctx, string(model.OpPredict), req, http.MethodPost, PathPredict, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// NewsSentiment calls GET /ml/news-sentiment/{symbol}.
// The symbol is path-escaped by the client.
func (c *Client) NewsSentiment(ctx context.Context, symbol string) (*model.InferenceResponse, error) {
	req := c.newRequest(ctx).SetPathParam("symbol", symbol)

	var out model.InferenceResponse
	if err := c.do(ctx, string(model.OpSocialInsights), req, http.MethodGet, PathNewsSentiment, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarketOverview calls GET /ml/market-overview and returns the body as-is.
func (c *Client) MarketOverview(ctx context.Context) (model.OpaqueJSON, error) {
	var out json.RawMessage
	if err := c.do(ctx, string(model.OpMarketOverview), c.newRequest(ctx), http.MethodGet, PathMarketOverview, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PortfolioAnalysis calls GET /ml/portfolio-analysis with the raw symbol list.
func (c *Client) PortfolioAnalysis(ctx context.Context, symbols string) (model.OpaqueJSON, error) {
	req := c.newRequest(ctx).SetQueryParam("symbols", symbols)

	var out json.RawMessage
	if err := c.do(ctx, string(model.OpPortfolioAnalysis), req, http.MethodGet, PathPortfolioAnalysis, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = ulid.Make().String()
	}
	return c.rest.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID)
}

// do executes req and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, op string, req *resty.Request, method, path string, out any) error {
	start := time.Now()
	requestID := req.Header.Get(RequestIDHeader)

	c.logger.DebugContext(ctx, "calling inference service",
		slog.String("op", op),
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", requestID),
	)

	err := c.execute(op, req, method, path, out)
	duration := time.Since(start)

	if err != nil {
		c.metrics.ObserveInferenceCall(op, string(KindOf(err)), duration)
		c.logger.ErrorContext(ctx, "inference call failed",
			slog.String("op", op),
			slog.String("kind", string(KindOf(err))),
			slog.String("error", err.Error()),
			slog.String("request_id", requestID),
			slog.Float64("duration_ms", float64(duration.Microseconds())/1000),
		)
		return err
	}

	c.metrics.ObserveInferenceCall(op, "success", duration)
	c.logger.InfoContext(ctx, "inference call succeeded",
		slog.String("op", op),
		slog.String("request_id", requestID),
		slog.Float64("duration_ms", float64(duration.Microseconds())/1000),
	)
	return nil
}

func (c *Client) execute(op string, req *resty.Request, method, path string, out any) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		return transportError(op, err)
	}

	if !resp.IsSuccess() {
		return &Error{
			Op:         op,
			Kind:       KindStatus,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("%s", truncate(resp.String(), 256)),
		}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &Error{Op: op, Kind: KindDecode, Err: err}
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
