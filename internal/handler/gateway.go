package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/intelvestor/gateway/internal/handler/dto"
	"github.com/intelvestor/gateway/internal/inference"
	"github.com/intelvestor/gateway/internal/model"
	"github.com/intelvestor/gateway/internal/service"
)

// GatewayHandler serves the stock, market and portfolio endpoints.
type GatewayHandler struct {
	svc    *service.GatewayService
	logger *slog.Logger
}

// NewGatewayHandler creates a new GatewayHandler.
func NewGatewayHandler(svc *service.GatewayService, logger *slog.Logger) *GatewayHandler {
	return &GatewayHandler{
		svc:    svc,
		logger: logger,
	}
}

// Predict handles GET /api/stocks/{symbol}/predict.
func (h *GatewayHandler) Predict(w http.ResponseWriter, r *http.Request) {
	rc := requestContext(r)
	h.logger.Info("predict_requested", "symbol", rc.Param("symbol"), "request_id", rc.RequestID)

	resp, err := h.svc.Predict(r.Context(), rc)
	if err != nil {
		h.handleServiceError(w, rc, model.OpPredict, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SocialInsights handles GET /api/stocks/{symbol}/social.
func (h *GatewayHandler) SocialInsights(w http.ResponseWriter, r *http.Request) {
	rc := requestContext(r)
	h.logger.Info("social_insights_requested", "symbol", rc.Param("symbol"), "request_id", rc.RequestID)

	resp, err := h.svc.SocialInsights(r.Context(), rc)
	if err != nil {
		h.handleServiceError(w, rc, model.OpSocialInsights, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// MarketOverview handles GET /api/market/overview.
func (h *GatewayHandler) MarketOverview(w http.ResponseWriter, r *http.Request) {
	rc := requestContext(r)

	raw, err := h.svc.MarketOverview(r.Context(), rc)
	if err != nil {
		h.handleServiceError(w, rc, model.OpMarketOverview, err)
		return
	}
	writeRawJSON(w, http.StatusOK, raw)
}

// PortfolioAnalysis handles GET /api/portfolio/analyze.
func (h *GatewayHandler) PortfolioAnalysis(w http.ResponseWriter, r *http.Request) {
	rc := requestContext(r)

	raw, err := h.svc.PortfolioAnalysis(r.Context(), rc)
	if err != nil {
		h.handleServiceError(w, rc, model.OpPortfolioAnalysis, err)
		return
	}
	writeRawJSON(w, http.StatusOK, raw)
}

// Portfolio handles GET /api/portfolio.
func (h *GatewayHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	rc := requestContext(r)

	portfolio, err := h.svc.Portfolio(r.Context(), rc)
	if err != nil {
		h.handleServiceError(w, rc, "portfolio", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToPortfolioResponse(portfolio))
}

// upstreamMessages are the outward messages for a failed inference call.
// The cause is logged, never returned.
var upstreamMessages = map[model.Operation]string{
	model.OpPredict:           "failed to get prediction from inference service",
	model.OpSocialInsights:    "failed to get social insights from inference service",
	model.OpMarketOverview:    "failed to get market overview from inference service",
	model.OpPortfolioAnalysis: "failed to get portfolio analysis from inference service",
}

func (h *GatewayHandler) handleServiceError(w http.ResponseWriter, rc model.RequestContext, op model.Operation, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidSymbol):
		writeError(w, http.StatusBadRequest, "INVALID_SYMBOL", err.Error())
	case errors.Is(err, service.ErrInvalidHorizon):
		writeError(w, http.StatusBadRequest, "INVALID_HORIZON", "horizon must be an integer")
	case errors.Is(err, service.ErrMissingSymbols):
		writeError(w, http.StatusBadRequest, "MISSING_SYMBOLS", "symbols query parameter is required")
	case errors.Is(err, service.ErrUpstreamFailure):
		h.logger.Error("inference_failed",
			"operation", op,
			"kind", inference.KindOf(err),
			"error", err,
			"request_id", rc.RequestID,
		)
		writeError(w, http.StatusBadGateway, "UPSTREAM_FAILURE", upstreamMessages[op])
	default:
		h.logger.Error("internal_error", "operation", op, "error", err, "request_id", rc.RequestID)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
	}
}
