// Package main is the entrypoint for the Intelvestor API gateway.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/intelvestor/gateway/internal/cache"
	"github.com/intelvestor/gateway/internal/config"
	"github.com/intelvestor/gateway/internal/handler"
	"github.com/intelvestor/gateway/internal/inference"
	"github.com/intelvestor/gateway/internal/metrics"
	"github.com/intelvestor/gateway/internal/middleware"
	"github.com/intelvestor/gateway/internal/repository"
	"github.com/intelvestor/gateway/internal/server"
	"github.com/intelvestor/gateway/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration; a missing .env is not an error
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		repo.Close()
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to Redis")

	// Metrics
	var recorder metrics.Recorder = metrics.NewNoop()
	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		prom := metrics.NewPrometheus(nil)
		recorder = prom
		metricsHandler = prom.Handler()
	}

	// Initialize services
	mlClient := inference.NewClient(inference.Config{
		BaseURL:        cfg.MLServiceURL,
		ConnectTimeout: cfg.MLConnectTimeout,
		ReadTimeout:    cfg.MLReadTimeout,
		Logger:         logger,
		Metrics:        recorder,
	})
	gatewayService := service.NewGatewayService(mlClient, service.DemoPortfolio{})
	userService := service.NewUserService(repo, recorder, logger)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins

	r := handler.NewRouter(handler.RouterConfig{
		Logger:             logger,
		Version:            cfg.AppVersion,
		IsDevelopment:      cfg.IsDevelopment(),
		CORS:               corsCfg,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		RateLimit: middleware.RateLimitConfig{
			Logger:            logger,
			Limiter:           cacheClient,
			Metrics:           recorder,
			Enabled:           cfg.RateLimitEnabled,
			RequestsPerMinute: cfg.RateLimitRPM,
			Burst:             cfg.RateLimitBurst,
		},
		Health:  handler.NewHealthHandler(repo, cacheClient),
		Gateway: handler.NewGatewayHandler(gatewayService, logger),
		Users:   handler.NewUserHandler(userService, logger),
		Metrics: metricsHandler,
	})

	srv := server.New(r, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	// LIFO: Redis closes before the database pool.
	srv.OnShutdown("database", func(ctx context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("redis", func(ctx context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"version", cfg.AppVersion,
		"ml_service_url", redactURL(mlClient.BaseURL()),
		"rate_limit_enabled", cfg.RateLimitEnabled,
		"metrics_enabled", cfg.MetricsEnabled,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h).With("service", "intelvestor-gateway")
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
