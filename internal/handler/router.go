package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/intelvestor/gateway/internal/middleware"
)

// RouterConfig wires handlers and middleware settings into the router.
type RouterConfig struct {
	Logger             *slog.Logger
	Version            string
	IsDevelopment      bool
	CORS               middleware.CORSConfig
	MaxRequestBodySize int64
	RateLimit          middleware.RateLimitConfig

	Health  *HealthHandler
	Gateway *GatewayHandler
	Users   *UserHandler
	// Metrics serves /metrics when non-nil.
	Metrics http.Handler
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RateLimit.Logger == nil {
		cfg.RateLimit.Logger = logger
	}
	h := New(cfg.Version)

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment}))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	if cfg.Health != nil {
		r.Get("/healthz", cfg.Health.Healthz)
		r.Get("/readyz", cfg.Health.Readyz)
	}
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}
	r.Get("/", h.Hello)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit))
		r.Use(middleware.RequireAuthorization(logger))

		if g := cfg.Gateway; g != nil {
			r.Get("/stocks/{symbol}/predict", g.Predict)
			r.Get("/stocks/{symbol}/social", g.SocialInsights)
			r.Get("/market/overview", g.MarketOverview)
			r.Get("/portfolio/analyze", g.PortfolioAnalysis)
			r.Get("/portfolio", g.Portfolio)
		}

		if u := cfg.Users; u != nil {
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.Identity(logger))
				r.Post("/sync", u.Sync)
				r.Get("/me", u.Me)
			})
		}
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
