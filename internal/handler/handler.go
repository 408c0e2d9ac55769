// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/intelvestor/gateway/internal/handler/dto"
	"github.com/intelvestor/gateway/internal/middleware"
	"github.com/intelvestor/gateway/internal/model"
)

// Handler serves the service-level endpoints.
type Handler struct {
	version string
}

// New creates a new Handler instance.
func New(version string) *Handler {
	return &Handler{version: version}
}

// Hello identifies the service.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "intelvestor-gateway",
		"version": h.version,
	})
}

// NotFound handles 404 responses.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Default().Debug("response encode failed", "error", err)
	}
}

// writeRawJSON writes an already encoded JSON body.
func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// requestContext collects what the gateway needs from an inbound request.
// chi matches on RawPath when the URL has one, leaving params escaped, so
// only then are they unescaped. Otherwise they are already decoded once.
func requestContext(r *http.Request) model.RequestContext {
	escaped := r.URL.RawPath != ""
	params := map[string]string{}
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, key := range rctx.URLParams.Keys {
			value := rctx.URLParams.Values[i]
			if escaped {
				if unescaped, err := url.PathUnescape(value); err == nil {
					value = unescaped
				}
			}
			params[key] = value
		}
	}
	return model.RequestContext{
		RequestID:  middleware.GetRequestID(r.Context()),
		PathParams: params,
		Query:      r.URL.Query(),
	}
}
